// Package testsupport holds fixtures shared by package tests: validated
// records, scripted console answers and golden file helpers.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goliatone/go-pizzabot/pkg/order"
)

// HawaiianAnswers are the interview answers of the reference order, in
// catalog order.
var HawaiianAnswers = []string{"Hawaiian", "medium", "none", "peanuts", "", "Sam", "1 Main St"}

// HawaiianSummary is the rendered summary of the reference order.
const HawaiianSummary = "Your order summary:\n" +
	"Pizza: medium Hawaiian\n" +
	"Toppings: None\n" +
	"Allergies: peanuts\n" +
	"Special Requests: None\n" +
	"Delivery Address: 1 Main St\n" +
	"Customer Name: Sam"

// Record validates answers (one per field, catalog order) and returns the
// filled record. Tests fail fast on rejected answers.
func Record(t *testing.T, answers ...string) order.Record {
	t.Helper()

	fields := order.Fields()
	if len(answers) != len(fields) {
		t.Fatalf("testsupport: want %d answers, got %d", len(fields), len(answers))
	}
	var rec order.Record
	for i, def := range fields {
		value, err := order.Validate(def.Field, answers[i])
		if err != nil {
			t.Fatalf("testsupport: validate %s: %v", def.Key, err)
		}
		if err := rec.Set(def.Field, value); err != nil {
			t.Fatalf("testsupport: set %s: %v", def.Key, err)
		}
	}
	return rec
}

// HawaiianRecord returns the reference order.
func HawaiianRecord(t *testing.T) order.Record {
	t.Helper()
	return Record(t, HawaiianAnswers...)
}

// Script joins console answers into newline terminated input.
func Script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// HawaiianScript is the console input of the reference order, confirmed on
// the first review.
func HawaiianScript() string {
	return Script(append(append([]string(nil), HawaiianAnswers...), "yes")...)
}

// GoldenOrderPath locates the persisted JSON of the reference order.
func GoldenOrderPath() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", "hawaiian_order.json")
	}
	return filepath.Join(filepath.Dir(file), "testdata", "hawaiian_order.json")
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
