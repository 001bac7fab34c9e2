package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pizzabot/internal/config"
	"github.com/goliatone/go-pizzabot/pkg/collab"
	"github.com/goliatone/go-pizzabot/pkg/finalize"
	"github.com/goliatone/go-pizzabot/pkg/orchestrator"
	"github.com/goliatone/go-pizzabot/pkg/store"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

type orderFlags struct {
	output           string
	format           string
	theme            string
	noColor          bool
	logLevel         string
	greetingEndpoint string
	noNarration      bool
	templateDir      string
}

func newOrderCmd(root *rootFlags) *cobra.Command {
	flags := &orderFlags{}
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Start an ordering session (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root, flags)
			if err != nil {
				return err
			}
			return runOrder(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "where to write the confirmed order")
	f.StringVar(&flags.format, "format", "", "order file format: json or yaml (default from extension)")
	f.StringVar(&flags.theme, "theme", "", "console theme variant")
	f.BoolVar(&flags.noColor, "no-color", false, "disable colors")
	f.StringVar(&flags.logLevel, "log-level", "", "diagnostic log level (panic..trace)")
	f.StringVar(&flags.greetingEndpoint, "greeting-endpoint", "", "text generation endpoint for the greeting")
	f.BoolVar(&flags.noNarration, "no-narration", false, "print the summary instead of speaking it")
	f.StringVar(&flags.templateDir, "template-dir", "", "directory with review/summary template overrides")
	return cmd
}

// loadConfig resolves files and environment, then applies the flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command, root *rootFlags, flags *orderFlags) (config.Config, error) {
	cfg, err := config.Load(config.Sources{File: root.configFile, EnvFile: root.envFile})
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output.Path = flags.output
	}
	if changed("format") {
		cfg.Output.Format = flags.format
	}
	if changed("theme") {
		cfg.Theme.Variant = flags.theme
	}
	if flags.noColor {
		cfg.Theme.Variant = tui.VariantPlain
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("greeting-endpoint") {
		cfg.Greeting.Endpoint = flags.greetingEndpoint
	}
	if flags.noNarration {
		cfg.Narration.Enabled = false
	}
	if changed("template-dir") {
		cfg.TemplateDir = flags.templateDir
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(cfg.LogLevel())
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: cfg.Theme.Variant == tui.VariantPlain})
	return logger
}

func runOrder(cmd *cobra.Command, cfg config.Config) error {
	// Interrupt cancels ctx; both drivers abandon a pending prompt on cancel.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sessionID := uuid.NewString()
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	log := logger.WithField("session_id", sessionID)

	theme, err := tui.LoadTheme(tui.DefaultManifest(), cfg.Theme.Variant)
	if err != nil {
		return err
	}
	stdio := tui.Stdio{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}

	orch := orchestrator.New(
		orchestrator.WithStdio(stdio),
		orchestrator.WithTheme(theme),
		orchestrator.WithGreeter(buildGreeter(cfg)),
		orchestrator.WithNarrator(buildNarrator(cfg, stdio.Out)),
		orchestrator.WithStore(store.NewFile(cfg.Output.Path, store.WithFormat(store.Format(cfg.Output.Format)))),
		orchestrator.WithTemplateDir(cfg.TemplateDir),
		orchestrator.WithLogger(logger),
		orchestrator.WithSessionID(sessionID),
	)

	session, err := orch.Run(ctx)
	switch {
	case err == nil:
		if session.Result.NarrationErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "narration unavailable: %v\n", session.Result.NarrationErr)
		}
		return nil
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		log.WithError(err).Info("session aborted")
		return errors.New("order cancelled")
	default:
		var persistErr *finalize.PersistError
		if errors.As(err, &persistErr) {
			log.WithError(persistErr.Err).Error("order not saved")
		}
		return err
	}
}

func buildGreeter(cfg config.Config) collab.Greeter {
	if cfg.Greeting.Endpoint == "" {
		return collab.StaticGreeter(collab.DefaultGreeting)
	}
	return collab.NewHTTPGreeter(cfg.Greeting.Endpoint,
		collab.WithGreeterClient(&http.Client{Timeout: cfg.Greeting.Timeout}),
		collab.WithGreeterToken(cfg.Greeting.Token),
		collab.WithResultPath(cfg.Greeting.ResultPath),
		collab.WithMaxNewTokens(cfg.Greeting.MaxNewTokens),
	)
}

func buildNarrator(cfg config.Config, out io.Writer) collab.Narrator {
	if !cfg.Narration.Enabled {
		return collab.NewConsoleNarrator(out)
	}
	return collab.NewSpeechNarrator(
		collab.WithSpeechClient(&http.Client{Timeout: cfg.Narration.Timeout}),
		collab.WithSpeechEndpoint(cfg.Narration.Endpoint),
		collab.WithLanguage(cfg.Narration.Language),
		collab.WithAudioPath(cfg.Narration.AudioPath),
		collab.WithPlayer(collab.NewCommandPlayer(cfg.Narration.Player)),
	)
}
