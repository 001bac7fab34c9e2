package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// Tone tags a bot message so the theme can style it.
type Tone string

const (
	TonePlain      Tone = "plain"
	ToneGreeting   Tone = "greeting"
	TonePrompt     Tone = "prompt"
	ToneError      Tone = "error"
	ToneReview     Tone = "review"
	ToneCorrection Tone = "correction"
	ToneSuccess    Tone = "success"
)

// InputConfig configures a single line question.
type InputConfig struct {
	Message string
	Help    string
	// Tone styles the question; TonePrompt when empty.
	Tone Tone
}

// PromptDriver abstracts the console so conversation logic can be tested
// without a terminal and callers can swap implementations. Every call blocks
// until it completes; answers are returned trimmed.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	// Say prints a bot message styled by tone.
	Say(ctx context.Context, tone Tone, msg string) error
	// Info prints a line verbatim.
	Info(ctx context.Context, msg string) error
}

// Stdio groups the streams a driver reads from and writes to.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStdio returns the process streams.
func DefaultStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// NewDriver picks the survey driver when stdin and stdout are terminals and
// the line driver otherwise (pipes, redirected files).
func NewDriver(stdio Stdio, theme Theme) PromptDriver {
	in, inOK := stdio.In.(*os.File)
	out, outOK := stdio.Out.(*os.File)
	if inOK && outOK && isatty.IsTerminal(in.Fd()) && isatty.IsTerminal(out.Fd()) {
		return NewSurveyDriver(in, out, stdio.Err, theme)
	}
	return NewLineDriver(stdio.In, stdio.Out, theme)
}

type surveyDriver struct {
	in    terminal.FileReader
	out   terminal.FileWriter
	err   io.Writer
	theme Theme
}

// NewSurveyDriver builds an interactive driver on top of survey.
func NewSurveyDriver(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer, theme Theme) PromptDriver {
	return &surveyDriver{in: in, out: out, err: errOut, theme: theme}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: d.theme.Bot(toneOr(cfg.Tone, TonePrompt), cfg.Message),
		Help:    cfg.Help,
	}
	err := survey.AskOne(prompt, &out,
		survey.WithStdio(d.in, d.out, d.err),
		survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Text = ""
		}),
	)
	if err != nil {
		return "", translateSurveyErr(err)
	}
	return strings.TrimSpace(out), nil
}

func (d *surveyDriver) Say(ctx context.Context, tone Tone, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, d.theme.Bot(tone, msg))
	return err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

type lineDriver struct {
	in    *bufio.Reader
	out   io.Writer
	theme Theme
}

// NewLineDriver builds a driver that prints each question on its own line and
// reads one line of input per answer. Input returns ctx.Err() as soon as ctx
// is cancelled, even while a read is still blocked.
func NewLineDriver(in io.Reader, out io.Writer, theme Theme) PromptDriver {
	if out == nil {
		out = io.Discard
	}
	return &lineDriver{in: bufio.NewReader(in), out: out, theme: theme}
}

func (d *lineDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(d.out, d.theme.Bot(toneOr(cfg.Tone, TonePrompt), cfg.Message)); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(d.out, d.theme.UserPrefix); err != nil {
		return "", err
	}

	line, err := d.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: end of input", ErrAborted)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type lineResult struct {
	line string
	err  error
}

// readLine returns as soon as ctx is done. The pending read keeps running and
// its line is dropped, so the driver must not be reused after cancellation.
func (d *lineDriver) readLine(ctx context.Context) (string, error) {
	done := make(chan lineResult, 1)
	go func() {
		line, err := d.in.ReadString('\n')
		done <- lineResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.line, res.err
	}
}

func (d *lineDriver) Say(ctx context.Context, tone Tone, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, d.theme.Bot(tone, msg))
	return err
}

func (d *lineDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: end of input", ErrAborted)
	}
	return err
}

func toneOr(tone, fallback Tone) Tone {
	if tone == "" {
		return fallback
	}
	return tone
}
