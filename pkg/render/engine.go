package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures the template engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
}

// WithBaseDir loads templates from a directory on disk. Files found there take
// precedence over the embedded ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS instead of the embedded bundle.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// Engine renders pongo2 templates from a template set, caching parsed files.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

// NewEngine constructs an Engine. Without options it serves the embedded
// templates.
func NewEngine(options ...Option) (*Engine, error) {
	cfg := &config{
		templates: TemplatesFS(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))

	registerDefaultFilters()

	return &Engine{
		templateSet: pongo2.NewSet("pizzabot", loaders...),
		templates:   make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the named template with data.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("render: engine is nil")
	}
	tmpl, err := e.getTemplate(name)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("render: execute template %q: %w", name, err)
	}
	return out, nil
}

// RenderString executes an inline template.
func (e *Engine) RenderString(content string, data map[string]any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("render: engine is nil")
	}
	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return "", fmt.Errorf("render: parse template string: %w", err)
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("render: execute template string: %w", err)
	}
	return out, nil
}

func (e *Engine) getTemplate(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("or_none") {
		_ = pongo2.RegisterFilter("or_none", filterOrNone)
	}
}

// filterOrNone joins lists with ", " and replaces empty values with "None".
func filterOrNone(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue("None"), nil
	}
	if in.CanSlice() && !in.IsString() {
		if in.Len() == 0 {
			return pongo2.AsValue("None"), nil
		}
		parts := make([]string, 0, in.Len())
		for i := 0; i < in.Len(); i++ {
			parts = append(parts, in.Index(i).String())
		}
		return pongo2.AsValue(strings.Join(parts, ", ")), nil
	}
	if !in.IsTrue() {
		return pongo2.AsValue("None"), nil
	}
	return in, nil
}
