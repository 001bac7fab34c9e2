package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/render"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

const (
	reviewHeading  = "Here's your final order:"
	confirmMessage = "Does everything look correct? (yes/no):"
	invalidField   = "Sorry, that's not a valid field. Please try again."
	confirmAnswer  = "yes"
)

// Corrector runs the review loop on a complete record.
type Corrector struct {
	driver   tui.PromptDriver
	renderer render.OrderRenderer
	asker    *Engine
	logger   logrus.FieldLogger
}

// NewCorrector builds a correction loop. Corrections reuse the Engine retry
// loop so they validate exactly like the interview.
func NewCorrector(driver tui.PromptDriver, renderer render.OrderRenderer, options ...Option) (*Corrector, error) {
	if driver == nil {
		return nil, ErrNilDriver
	}
	if renderer == nil {
		return nil, errors.New("interview: order renderer is nil")
	}
	asker, err := NewEngine(driver, options...)
	if err != nil {
		return nil, err
	}
	return &Corrector{
		driver:   driver,
		renderer: renderer,
		asker:    asker,
		logger:   asker.logger,
	}, nil
}

// Confirmed applies the yes/no policy used for every confirmation: the answer
// is trimmed and lower-cased and must equal "yes".
func Confirmed(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == confirmAnswer
}

// Run shows the record and asks for confirmation until the customer answers
// yes. Any other answer asks which field to change; unknown names leave the
// record untouched and restart the loop.
func (c *Corrector) Run(ctx context.Context, rec *order.Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	if !rec.Complete() {
		return fmt.Errorf("%w: missing %s", ErrIncompleteRecord, strings.Join(rec.Missing(), ", "))
	}

	for round := 1; ; round++ {
		if err := c.show(ctx, *rec); err != nil {
			return err
		}

		answer, err := c.driver.Input(ctx, tui.InputConfig{
			Message: confirmMessage,
			Tone:    tui.ToneReview,
		})
		if err != nil {
			return err
		}
		if Confirmed(answer) {
			c.logger.WithField("rounds", round).Debug("order confirmed")
			return nil
		}

		if err := c.correct(ctx, rec); err != nil {
			return err
		}
	}
}

func (c *Corrector) show(ctx context.Context, rec order.Record) error {
	review, err := c.renderer.Review(rec)
	if err != nil {
		return fmt.Errorf("interview: render review: %w", err)
	}
	if err := c.driver.Say(ctx, tui.ToneReview, reviewHeading); err != nil {
		return err
	}
	return c.driver.Info(ctx, review)
}

func (c *Corrector) correct(ctx context.Context, rec *order.Record) error {
	name, err := c.driver.Input(ctx, tui.InputConfig{
		Message: "What would you like to change? (" + strings.Join(order.ChangeableNames(), ", ") + ")",
		Tone:    tui.ToneCorrection,
	})
	if err != nil {
		return err
	}

	field, err := order.ParseField(name)
	if err != nil {
		c.logger.WithField("name", name).Debug("unknown field in correction")
		return c.driver.Say(ctx, tui.ToneError, invalidField)
	}
	def, _ := order.Lookup(field)

	cfg := tui.InputConfig{
		Message: "Please enter the new " + strings.ToLower(def.Label) + ":",
		Tone:    tui.ToneCorrection,
	}
	if err := c.asker.ask(ctx, def, cfg, rec); err != nil {
		return err
	}
	c.logger.WithField("field", def.Key).Info("order field corrected")
	return nil
}
