package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pizzabot/pkg/order"
)

func str(s string) *string { return &s }

func confirmedRecord() order.Record {
	return order.Record{
		Pizza:           str("Hawaiian"),
		Size:            str("medium"),
		Toppings:        []string{},
		Allergies:       str("peanuts"),
		SpecialRequests: str(""),
		Name:            str("Sam"),
		Address:         str("1 Main St"),
	}
}

func TestFile_SaveWritesIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_order.json")
	f := NewFile(path)

	if err := f.Save(context.Background(), confirmedRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := `{
    "pizza": "Hawaiian",
    "size": "medium",
    "toppings": [],
    "allergies": "peanuts",
    "specialRequests": "",
    "name": "Sam",
    "address": "1 Main St"
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	unanswered := confirmedRecord()
	unanswered.Toppings = nil
	unanswered.Name = nil

	records := map[string]order.Record{
		"empty toppings": confirmedRecord(),
		"unset toppings": unanswered,
	}
	for _, name := range []string{"order.json", "order.yaml"} {
		for label, rec := range records {
			t.Run(name+"/"+label, func(t *testing.T) {
				f := NewFile(filepath.Join(t.TempDir(), "nested", name))
				if err := f.Save(context.Background(), rec); err != nil {
					t.Fatalf("save: %v", err)
				}
				got, err := f.Load(context.Background())
				if err != nil {
					t.Fatalf("load: %v", err)
				}
				if diff := cmp.Diff(rec, got); diff != "" {
					t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
				}
				if (rec.Toppings == nil) != (got.Toppings == nil) {
					t.Fatalf("toppings presence changed: want nil=%v, got nil=%v", rec.Toppings == nil, got.Toppings == nil)
				}
			})
		}
	}
}

func TestEncode_YAMLKeepsUnsetToppingsNull(t *testing.T) {
	rec := confirmedRecord()
	rec.Toppings = nil
	data, err := Encode(rec, FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), "toppings: null\n") {
		t.Fatalf("expected null toppings, got:\n%s", data)
	}

	data, err = Encode(confirmedRecord(), FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), "toppings: []\n") {
		t.Fatalf("expected empty toppings list, got:\n%s", data)
	}
}

func TestFile_FormatFromExtension(t *testing.T) {
	cases := map[string]Format{
		"a.json": FormatJSON,
		"a.yml":  FormatYAML,
		"a.YAML": FormatYAML,
		"a":      FormatJSON,
	}
	for path, want := range cases {
		if got := NewFile(path).Format(); got != want {
			t.Fatalf("%s: want %s, got %s", path, want, got)
		}
	}
	if got := NewFile("a.json", WithFormat(FormatYAML)).Format(); got != FormatYAML {
		t.Fatalf("explicit format ignored: %s", got)
	}
	if got := NewFile("").Location(); got != DefaultPath {
		t.Fatalf("expected default path, got %q", got)
	}
}

func TestFile_SaveRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_order.json")
	f := NewFile(path)
	if err := f.Save(context.Background(), confirmedRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, _ := os.ReadFile(path)

	bad := confirmedRecord()
	bad.Pizza = str("Calzone")
	err := f.Save(context.Background(), bad)
	if !errors.Is(err, order.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("previous order overwritten by rejected save")
	}
}

func TestFile_LoadRejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.json")
	if err := os.WriteFile(path, []byte(`{"pizza":"Hawaiian"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFile(path).Load(context.Background()); !errors.Is(err, order.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestFile_LoadMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	if _, err := Encode(confirmedRecord(), Format("xml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Decode([]byte("{}"), Format("xml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFile_SaveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "order.json")
	if err := NewFile(path).Save(ctx, confirmedRecord()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file written despite cancelled context")
	}
}
