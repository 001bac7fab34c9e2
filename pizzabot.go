// Package pizzabot exposes the ordering session from the top-level module so
// callers can embed the bot without importing each sub-package.
package pizzabot

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/orchestrator"
	"github.com/goliatone/go-pizzabot/pkg/render"
)

// Record aliases order.Record for callers that only need the collected order.
type Record = order.Record

// Session aliases orchestrator.Session.
type Session = orchestrator.Session

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Run takes a single order on the configured console and returns the
// confirmed record.
func Run(ctx context.Context, options ...orchestrator.Option) (Record, error) {
	session, err := orchestrator.New(options...).Run(ctx)
	return session.Record, err
}

// EmbeddedTemplates exposes the built-in review and summary templates so
// callers can copy or extend them without importing the render package.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
