package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pizzabot/pkg/order"
	"github.com/goliatone/go-pizzabot/pkg/render"
)

func filledRecord() order.Record {
	return order.Record{
		Pizza:           str("Hawaiian"),
		Size:            str("large"),
		Toppings:        []string{},
		Allergies:       str("peanuts"),
		SpecialRequests: str(""),
		Name:            str("Sam"),
		Address:         str("1 Main St"),
	}
}

func newCorrector(t *testing.T, driver *stubDriver) *Corrector {
	t.Helper()
	renderer, err := render.NewOrderRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	c, err := NewCorrector(driver, renderer)
	if err != nil {
		t.Fatalf("new corrector: %v", err)
	}
	return c
}

func TestCorrector_YesLeavesRecordUnchanged(t *testing.T) {
	driver := &stubDriver{inputs: []string{"yes"}}
	rec := filledRecord()

	if err := newCorrector(t, driver).Run(context.Background(), &rec); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(filledRecord(), rec); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
	if len(driver.info) != 1 {
		t.Fatalf("expected one review, got %d", len(driver.info))
	}
	if driver.asked[0] != confirmMessage {
		t.Fatalf("expected confirmation prompt, got %q", driver.asked[0])
	}
}

func TestCorrector_ChangesSize(t *testing.T) {
	driver := &stubDriver{inputs: []string{"no", "size", "medium size", "yes"}}
	rec := filledRecord()

	if err := newCorrector(t, driver).Run(context.Background(), &rec); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := filledRecord()
	want.Size = str("medium")
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if len(driver.info) != 2 {
		t.Fatalf("expected the review to be shown twice, got %d", len(driver.info))
	}
	if driver.asked[2] != "Please enter the new size:" {
		t.Fatalf("unexpected value prompt %q", driver.asked[2])
	}
}

func TestCorrector_UnknownFieldLeavesRecordUnchanged(t *testing.T) {
	driver := &stubDriver{inputs: []string{"no", "crust", "yes"}}
	rec := filledRecord()

	if err := newCorrector(t, driver).Run(context.Background(), &rec); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(filledRecord(), rec); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{invalidField}, driver.rejections()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	// back to the confirmation prompt right after the unknown name
	if driver.asked[2] != confirmMessage {
		t.Fatalf("expected confirmation after unknown field, got %q", driver.asked[2])
	}
}

func TestCorrector_RevalidatesCorrections(t *testing.T) {
	driver := &stubDriver{inputs: []string{"nope", "PIZZA", "calzone", "pepperoni please", " YES "}}
	rec := filledRecord()

	if err := newCorrector(t, driver).Run(context.Background(), &rec); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := rec.Text(order.FieldPizza); got != "Pepperoni" {
		t.Fatalf("expected Pepperoni, got %q", got)
	}
	pizzaDef, _ := order.Lookup(order.FieldPizza)
	if diff := cmp.Diff([]string{pizzaDef.Reject}, driver.rejections()); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
}

func TestCorrector_ChangesToppingsAndSpecialRequests(t *testing.T) {
	driver := &stubDriver{inputs: []string{
		"no", "toppings", "olives, ham",
		"no", "special requests", "extra crispy",
		"yes",
	}}
	rec := filledRecord()

	if err := newCorrector(t, driver).Run(context.Background(), &rec); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"olives", "ham"}, rec.Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Text(order.FieldSpecialRequests); got != "extra crispy" {
		t.Fatalf("unexpected special requests %q", got)
	}
}

func TestCorrector_RequiresCompleteRecord(t *testing.T) {
	rec := filledRecord()
	rec.Address = nil
	err := newCorrector(t, &stubDriver{}).Run(context.Background(), &rec)
	if !errors.Is(err, ErrIncompleteRecord) {
		t.Fatalf("expected ErrIncompleteRecord, got %v", err)
	}
}

func TestCorrector_RendererFailure(t *testing.T) {
	c, err := NewCorrector(&stubDriver{inputs: []string{"yes"}}, failingRenderer{})
	if err != nil {
		t.Fatalf("new corrector: %v", err)
	}
	rec := filledRecord()
	if err := c.Run(context.Background(), &rec); err == nil {
		t.Fatalf("expected render error")
	}
}

func TestConfirmed(t *testing.T) {
	for _, answer := range []string{"yes", "YES", " Yes "} {
		if !Confirmed(answer) {
			t.Fatalf("expected %q to confirm", answer)
		}
	}
	for _, answer := range []string{"y", "yes please", "no", ""} {
		if Confirmed(answer) {
			t.Fatalf("expected %q not to confirm", answer)
		}
	}
}
