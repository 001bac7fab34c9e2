// Package store persists a confirmed order as a single flat file.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pizzabot/pkg/order"
)

// Format controls how a record is serialized.
type Format string

const (
	// FormatJSON writes an indented JSON object.
	FormatJSON Format = "json"
	// FormatYAML writes a YAML mapping.
	FormatYAML Format = "yaml"
)

// DefaultPath is where orders are written when no path is configured.
const DefaultPath = "final_order.json"

// ErrUnsupportedFormat is returned for formats other than json and yaml.
var ErrUnsupportedFormat = errors.New("store: unsupported format")

// Store persists records.
type Store interface {
	Save(ctx context.Context, rec order.Record) error
	Location() string
}

// Option configures a File store.
type Option func(*File)

// WithFormat selects the serialization format. Without it the format follows
// the file extension (.yaml/.yml for YAML, JSON otherwise).
func WithFormat(format Format) Option {
	return func(f *File) {
		if format != "" {
			f.format = Format(strings.ToLower(string(format)))
		}
	}
}

// WithPermissions sets the mode of written files.
func WithPermissions(perm os.FileMode) Option {
	return func(f *File) {
		if perm != 0 {
			f.perm = perm
		}
	}
}

// File stores a record in a single file, replacing it atomically.
type File struct {
	path   string
	format Format
	perm   os.FileMode
}

var _ Store = (*File)(nil)

// NewFile builds a file store for path.
func NewFile(path string, options ...Option) *File {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	f := &File{path: path, perm: 0o644}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.format == "" {
		f.format = formatFromPath(path)
	}
	return f
}

// Location reports the file path.
func (f *File) Location() string {
	return f.path
}

// Format reports the serialization format.
func (f *File) Format() Format {
	return f.format
}

// Save validates rec against the order schema and writes it. The previous
// file, if any, is only replaced once the new content is fully written.
func (f *File) Save(ctx context.Context, rec order.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRecord(rec); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	data, err := Encode(rec, f.format)
	if err != nil {
		return err
	}
	return writeAtomic(f.path, data, f.perm)
}

// Load reads the file back, validating it against the order schema.
func (f *File) Load(ctx context.Context) (order.Record, error) {
	if err := ctx.Err(); err != nil {
		return order.Record{}, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return order.Record{}, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	rec, err := Decode(data, f.format)
	if err != nil {
		return order.Record{}, fmt.Errorf("store: %s: %w", f.path, err)
	}
	return rec, nil
}

// Encode serializes rec in the given format.
func Encode(rec order.Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(rec, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("store: encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(newYAMLDocument(rec)); err != nil {
			return nil, fmt.Errorf("store: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("store: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Decode parses data in the given format after checking it against the order
// schema.
func Decode(data []byte, format Format) (order.Record, error) {
	var rec order.Record
	switch format {
	case FormatJSON, "":
		if err := order.ValidateDocument(data); err != nil {
			return rec, err
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return rec, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return rec, fmt.Errorf("decode yaml: %w", err)
		}
		if err := order.ValidateValue(doc); err != nil {
			return rec, err
		}
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return rec, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return rec, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return rec, nil
}

// yamlDocument mirrors order.Record for YAML output. yaml.v3 writes a nil
// slice as [], so toppings goes through an interface to keep unset lists null.
type yamlDocument struct {
	Pizza           *string `yaml:"pizza"`
	Size            *string `yaml:"size"`
	Toppings        any     `yaml:"toppings"`
	Allergies       *string `yaml:"allergies"`
	SpecialRequests *string `yaml:"specialRequests"`
	Name            *string `yaml:"name"`
	Address         *string `yaml:"address"`
}

func newYAMLDocument(rec order.Record) yamlDocument {
	doc := yamlDocument{
		Pizza:           rec.Pizza,
		Size:            rec.Size,
		Allergies:       rec.Allergies,
		SpecialRequests: rec.SpecialRequests,
		Name:            rec.Name,
		Address:         rec.Address,
	}
	if rec.Toppings != nil {
		doc.Toppings = rec.Toppings
	}
	return doc
}

func validateRecord(rec order.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return order.ValidateDocument(raw)
}

func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("store: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("store: rename %s: %w", path, err)
	}
	return nil
}
