package pizzabot

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-pizzabot/pkg/collab"
	"github.com/goliatone/go-pizzabot/pkg/orchestrator"
	"github.com/goliatone/go-pizzabot/pkg/store"
	"github.com/goliatone/go-pizzabot/pkg/tui"
)

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"review.tpl", "summary.tpl"} {
		data, err := fs.ReadFile(EmbeddedTemplates(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	script := "Four Cheese\nsmall\nbasil\nnone\nnone\nJo\n5 Bay Rd\nyes\n"
	rec, err := Run(context.Background(),
		orchestrator.WithDriver(tui.NewLineDriver(strings.NewReader(script), &out, tui.PlainTheme())),
		orchestrator.WithTheme(tui.PlainTheme()),
		orchestrator.WithNarrator(collab.NewConsoleNarrator(&out)),
		orchestrator.WithStore(store.NewFile(filepath.Join(t.TempDir(), "order.json"))),
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Pizza == nil || *rec.Pizza != "Four Cheese" {
		t.Fatalf("unexpected pizza in %+v", rec)
	}
	if len(rec.Toppings) != 1 || rec.Toppings[0] != "basil" {
		t.Fatalf("unexpected toppings %v", rec.Toppings)
	}
}
