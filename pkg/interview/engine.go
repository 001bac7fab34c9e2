package interview

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

// Engine walks the field catalog in order and fills a record.
type Engine struct {
	driver tui.PromptDriver
	fields []order.Definition
	logger logrus.FieldLogger
}

// NewEngine builds an interview engine on top of driver.
func NewEngine(driver tui.PromptDriver, options ...Option) (*Engine, error) {
	if driver == nil {
		return nil, ErrNilDriver
	}
	s := newSettings(options)
	return &Engine{
		driver: driver,
		fields: s.fields,
		logger: s.logger,
	}, nil
}

// Run asks every field once, in catalog order. Each field is re-asked until
// its validator accepts the answer; rejected answers are never written. Run
// returns early only when the driver fails (abort, cancelled context), leaving
// already answered fields in place.
func (e *Engine) Run(ctx context.Context, rec *order.Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	for _, def := range e.fields {
		cfg := tui.InputConfig{
			Message: def.Prompt,
			Tone:    tui.TonePrompt,
		}
		if err := e.ask(ctx, def, cfg, rec); err != nil {
			return err
		}
	}
	return nil
}

// ask is the retry loop shared by the interview and corrections: prompt,
// validate, report the rejection and prompt again, or store the value.
func (e *Engine) ask(ctx context.Context, def order.Definition, cfg tui.InputConfig, rec *order.Record) error {
	log := e.logger.WithField("field", def.Key)
	for {
		answer, err := e.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}

		value, err := order.Validate(def.Field, answer)
		if err != nil {
			var rejection *order.RejectionError
			if !errors.As(err, &rejection) {
				return err
			}
			log.WithField("answer", answer).Debug("answer rejected")
			if err := e.driver.Say(ctx, tui.ToneError, rejection.Error()); err != nil {
				return err
			}
			continue
		}

		if err := rec.Set(def.Field, value); err != nil {
			return err
		}
		log.Debug("answer accepted")
		return nil
	}
}
