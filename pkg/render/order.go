package render

import (
	"strings"

	"github.com/goliatone/go-pizzabot/pkg/order"
)

// OrderRenderer renders the review screen and the narration summary for a
// record.
type OrderRenderer interface {
	Review(rec order.Record) (string, error)
	Summary(rec order.Record) (string, error)
}

// OrderOption configures a TemplateRenderer.
type OrderOption func(*TemplateRenderer)

// WithReviewTemplate overrides the review template name.
func WithReviewTemplate(name string) OrderOption {
	return func(r *TemplateRenderer) {
		if name = strings.TrimSpace(name); name != "" {
			r.review = name
		}
	}
}

// WithSummaryTemplate overrides the summary template name.
func WithSummaryTemplate(name string) OrderOption {
	return func(r *TemplateRenderer) {
		if name = strings.TrimSpace(name); name != "" {
			r.summary = name
		}
	}
}

// TemplateRenderer renders orders through an Engine.
type TemplateRenderer struct {
	engine  *Engine
	review  string
	summary string
}

var _ OrderRenderer = (*TemplateRenderer)(nil)

// NewOrderRenderer builds a renderer over engine. A nil engine uses the
// embedded templates.
func NewOrderRenderer(engine *Engine, options ...OrderOption) (*TemplateRenderer, error) {
	if engine == nil {
		var err error
		engine, err = NewEngine()
		if err != nil {
			return nil, err
		}
	}
	r := &TemplateRenderer{
		engine:  engine,
		review:  ReviewTemplate,
		summary: SummaryTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Review lists every field of the record, one per line.
func (r *TemplateRenderer) Review(rec order.Record) (string, error) {
	return r.render(r.review, rec)
}

// Summary renders the text read back to the customer once the order is
// confirmed.
func (r *TemplateRenderer) Summary(rec order.Record) (string, error) {
	return r.render(r.summary, rec)
}

func (r *TemplateRenderer) render(name string, rec order.Record) (string, error) {
	out, err := r.engine.RenderTemplate(name, viewData(rec))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func viewData(rec order.Record) map[string]any {
	toppings := rec.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	return map[string]any{
		"pizza":            rec.Text(order.FieldPizza),
		"size":             rec.Text(order.FieldSize),
		"toppings":         toppings,
		"allergies":        rec.Text(order.FieldAllergies),
		"special_requests": rec.Text(order.FieldSpecialRequests),
		"name":             rec.Text(order.FieldName),
		"address":          rec.Text(order.FieldAddress),
	}
}
