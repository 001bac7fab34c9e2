// Package finalize closes an order: it persists the confirmed record, tells the
// customer, and reads the summary back through a narrator.
package finalize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pizzabot/pkg/collab"
	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/render"
	"github.com/goliatone/go-pizzabot/pkg/store"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

// Messages shown while finalizing.
const (
	ConfirmedMessage = "Awesome! Your order is confirmed. We'll start preparing your delicious pizza right away!"
	SpeakingMessage  = "Speaking summary..."
	persistFailed    = "Sorry, we could not save your order. Here it is so nothing is lost:"
)

var (
	// ErrNilStore is returned by New without a store.
	ErrNilStore = errors.New("finalize: store is required")
	// ErrNilDriver is returned by New without a prompt driver.
	ErrNilDriver = errors.New("finalize: driver is required")
)

// PersistError reports that the confirmed record could not be written.
type PersistError struct {
	Location string
	Err      error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("finalize: persist order to %s: %v", e.Location, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Result describes a finished order.
type Result struct {
	Location string
	Summary  string
	// NarrationErr holds the narrator failure, if any. It never fails Finalize.
	NarrationErr error
}

// Option configures a Finalizer.
type Option func(*Finalizer)

// WithNarrator sets the narrator. Without one the summary is only rendered.
func WithNarrator(narrator collab.Narrator) Option {
	return func(f *Finalizer) {
		f.narrator = narrator
	}
}

// WithRenderer overrides the summary renderer.
func WithRenderer(renderer render.OrderRenderer) Option {
	return func(f *Finalizer) {
		if renderer != nil {
			f.renderer = renderer
		}
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *Finalizer) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Finalizer runs the closing steps of a session.
type Finalizer struct {
	driver   tui.PromptDriver
	store    store.Store
	renderer render.OrderRenderer
	narrator collab.Narrator
	logger   logrus.FieldLogger
}

// New builds a Finalizer writing through st and talking through driver.
func New(driver tui.PromptDriver, st store.Store, options ...Option) (*Finalizer, error) {
	if driver == nil {
		return nil, ErrNilDriver
	}
	if st == nil {
		return nil, ErrNilStore
	}
	f := &Finalizer{driver: driver, store: st}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.renderer == nil {
		renderer, err := render.NewOrderRenderer(nil)
		if err != nil {
			return nil, fmt.Errorf("finalize: renderer: %w", err)
		}
		f.renderer = renderer
	}
	if f.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		f.logger = l
	}
	return f, nil
}

// Finalize persists rec, announces the confirmation and narrates the summary.
// The record is always written before narration starts. A persistence failure
// prints the record and returns a *PersistError; narration failures are logged
// and reported in Result only.
func (f *Finalizer) Finalize(ctx context.Context, rec order.Record) (Result, error) {
	result := Result{Location: f.store.Location()}
	log := f.logger.WithField("location", result.Location)

	if err := f.store.Save(ctx, rec); err != nil {
		log.WithError(err).Error("order not persisted")
		f.dump(ctx, rec)
		return result, &PersistError{Location: result.Location, Err: err}
	}
	log.Info("order persisted")

	summary, err := f.renderer.Summary(rec)
	if err != nil {
		return result, fmt.Errorf("finalize: render summary: %w", err)
	}
	result.Summary = summary

	if err := f.driver.Say(ctx, tui.ToneSuccess, ConfirmedMessage); err != nil {
		return result, err
	}

	if f.narrator == nil {
		return result, nil
	}
	if err := f.driver.Say(ctx, tui.ToneReview, SpeakingMessage); err != nil {
		return result, err
	}
	if err := f.narrator.Narrate(ctx, render.SpeechText(summary)); err != nil {
		log.WithError(err).Warn("narration failed")
		result.NarrationErr = err
	}
	return result, nil
}

// dump prints the record so the customer keeps it when the file is lost.
// Driver failures are ignored; the persistence error is what gets reported.
func (f *Finalizer) dump(ctx context.Context, rec order.Record) {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		f.logger.WithError(err).Error("encode order for display")
		return
	}
	_ = f.driver.Say(ctx, tui.ToneError, persistFailed)
	_ = f.driver.Info(ctx, string(data))
}
