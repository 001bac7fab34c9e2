package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

type said struct {
	tone tui.Tone
	msg  string
}

type stubDriver struct {
	inputs   []string
	inputPos int
	asked    []string
	said     []said
	info     []string
}

func (s *stubDriver) Input(ctx context.Context, cfg tui.InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.asked = append(s.asked, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return strings.TrimSpace(val), nil
}

func (s *stubDriver) Say(_ context.Context, tone tui.Tone, msg string) error {
	s.said = append(s.said, said{tone: tone, msg: msg})
	return nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func (s *stubDriver) rejections() []string {
	var out []string
	for _, m := range s.said {
		if m.tone == tui.ToneError {
			out = append(out, m.msg)
		}
	}
	return out
}

type failingRenderer struct{}

func (failingRenderer) Review(order.Record) (string, error) {
	return "", errors.New("boom")
}

func (failingRenderer) Summary(order.Record) (string, error) {
	return "", errors.New("boom")
}
