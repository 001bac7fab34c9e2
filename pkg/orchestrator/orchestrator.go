package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pizzabot/pkg/collab"
	"github.com/goliatone/go-pizzabot/pkg/finalize"
	"github.com/goliatone/go-pizzabot/pkg/interview"
	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/render"
	"github.com/goliatone/go-pizzabot/pkg/store"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

// IntroMessage opens every session, before the generated greeting.
const IntroMessage = "Hello! I'm your pizza assistant. Let's build your order!"

// Template keys looked up in the console theme.
const (
	themeReviewTemplate  = "order.review"
	themeSummaryTemplate = "order.summary"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDriver injects the console driver.
func WithDriver(driver tui.PromptDriver) Option {
	return func(o *Orchestrator) {
		o.driver = driver
	}
}

// WithStdio sets the streams used by the default driver and console narrator.
func WithStdio(stdio tui.Stdio) Option {
	return func(o *Orchestrator) {
		o.stdio = stdio
	}
}

// WithTheme sets the console theme. Its template entries select the review
// and summary templates.
func WithTheme(theme tui.Theme) Option {
	return func(o *Orchestrator) {
		o.theme = theme
		o.themeSet = true
	}
}

// WithGreeter injects the greeting collaborator.
func WithGreeter(greeter collab.Greeter) Option {
	return func(o *Orchestrator) {
		o.greeter = greeter
	}
}

// WithNarrator injects the narration collaborator.
func WithNarrator(narrator collab.Narrator) Option {
	return func(o *Orchestrator) {
		o.narrator = narrator
	}
}

// WithStore injects where confirmed orders are written.
func WithStore(st store.Store) Option {
	return func(o *Orchestrator) {
		o.store = st
	}
}

// WithRenderer injects the review and summary renderer.
func WithRenderer(renderer render.OrderRenderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithTemplateDir lets templates on disk override the embedded ones.
func WithTemplateDir(dir string) Option {
	return func(o *Orchestrator) {
		o.templateDir = dir
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(o *Orchestrator) {
		o.sessionID = id
	}
}

// Orchestrator runs ordering sessions.
type Orchestrator struct {
	driver        tui.PromptDriver
	stdio         tui.Stdio
	theme         tui.Theme
	themeSet      bool
	greeter       collab.Greeter
	narrator      collab.Narrator
	store         store.Store
	renderer      render.OrderRenderer
	templateDir   string
	logger        logrus.FieldLogger
	sessionID     string
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// collaborators get console defaults: the process streams, the default theme,
// a static greeting, a console narrator and final_order.json.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.stdio.In == nil || o.stdio.Out == nil {
		std := tui.DefaultStdio()
		if o.stdio.In == nil {
			o.stdio.In = std.In
		}
		if o.stdio.Out == nil {
			o.stdio.Out = std.Out
		}
		if o.stdio.Err == nil {
			o.stdio.Err = std.Err
		}
	}
	if !o.themeSet {
		theme, err := tui.LoadTheme(tui.DefaultManifest(), "")
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.theme = theme
	}
	if o.driver == nil {
		o.driver = tui.NewDriver(o.stdio, o.theme)
	}
	if o.greeter == nil {
		o.greeter = collab.StaticGreeter(collab.DefaultGreeting)
	}
	if o.narrator == nil {
		o.narrator = collab.NewConsoleNarrator(o.stdio.Out)
	}
	if o.store == nil {
		o.store = store.NewFile(store.DefaultPath)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}
	if o.renderer == nil {
		renderer, err := o.defaultRenderer()
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.renderer = renderer
	}
}

func (o *Orchestrator) defaultRenderer() (render.OrderRenderer, error) {
	var engineOpts []render.Option
	if o.templateDir != "" {
		engineOpts = append(engineOpts, render.WithBaseDir(o.templateDir))
	}
	engine, err := render.NewEngine(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: template engine: %w", err)
	}
	var rendererOpts []render.OrderOption
	if name, ok := o.theme.Template(themeReviewTemplate); ok {
		rendererOpts = append(rendererOpts, render.WithReviewTemplate(name))
	}
	if name, ok := o.theme.Template(themeSummaryTemplate); ok {
		rendererOpts = append(rendererOpts, render.WithSummaryTemplate(name))
	}
	return render.NewOrderRenderer(engine, rendererOpts...)
}

// Session is the outcome of a completed run.
type Session struct {
	ID     string
	Record order.Record
	Result finalize.Result
}

// Run executes greeting, interview, correction loop and finalization. It
// returns the partially filled record alongside any error so callers can
// report what was collected before an abort.
func (o *Orchestrator) Run(ctx context.Context) (Session, error) {
	if ctx == nil {
		return Session{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return Session{}, err
	}

	session := Session{ID: o.sessionID}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	log := o.logger.WithField("session_id", session.ID)
	log.Info("session started")

	if err := o.greet(ctx, log); err != nil {
		return session, err
	}

	engine, err := interview.NewEngine(o.driver, interview.WithLogger(log))
	if err != nil {
		return session, err
	}
	if err := engine.Run(ctx, &session.Record); err != nil {
		return session, fmt.Errorf("orchestrator: interview: %w", err)
	}

	corrector, err := interview.NewCorrector(o.driver, o.renderer, interview.WithLogger(log))
	if err != nil {
		return session, err
	}
	if err := corrector.Run(ctx, &session.Record); err != nil {
		return session, fmt.Errorf("orchestrator: review: %w", err)
	}

	finalizer, err := finalize.New(o.driver, o.store,
		finalize.WithNarrator(o.narrator),
		finalize.WithRenderer(o.renderer),
		finalize.WithLogger(log),
	)
	if err != nil {
		return session, err
	}
	session.Result, err = finalizer.Finalize(ctx, session.Record)
	if err != nil {
		return session, err
	}
	log.WithField("location", session.Result.Location).Info("session finished")
	return session, nil
}

// greet shows the intro line and the generated greeting. A failing greeter
// falls back to the static greeting.
func (o *Orchestrator) greet(ctx context.Context, log logrus.FieldLogger) error {
	if err := o.driver.Say(ctx, tui.ToneGreeting, IntroMessage); err != nil {
		return err
	}
	greeting, err := o.greeter.Greet(ctx, collab.GreetingInstruction)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.WithError(err).Warn("greeting unavailable, using fallback")
		greeting = collab.DefaultGreeting
	}
	return o.driver.Say(ctx, tui.ToneGreeting, greeting)
}
