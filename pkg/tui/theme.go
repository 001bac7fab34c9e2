package tui

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/mgutz/ansi"
)

const (
	// ManifestName names the built-in console theme.
	ManifestName = "pizzabot"
	// VariantPlain disables colors.
	VariantPlain = "plain"

	tokenBotPrefix  = "prefix.bot"
	tokenUserPrefix = "prefix.user"
	tokenColor      = "color."
	colorNone       = "none"
)

// Theme captures the message prefixes and per-tone colors resolved from a
// go-theme selection. The zero value prints plain text without prefixes.
type Theme struct {
	BotPrefix  string
	UserPrefix string
	colors     map[Tone]string
	selection  *theme.Selection
}

// DefaultManifest describes the built-in console theme. Colors use mgutz/ansi
// style strings; "none" disables a color.
func DefaultManifest() *theme.Manifest {
	plain := make(map[string]string)
	for _, tone := range []Tone{ToneGreeting, TonePrompt, ToneError, ToneReview, ToneCorrection, ToneSuccess} {
		plain[tokenColor+string(tone)] = colorNone
	}
	return &theme.Manifest{
		Name:    ManifestName,
		Version: "1.0.0",
		Tokens: map[string]string{
			tokenBotPrefix:                     "PizzaBot: ",
			tokenUserPrefix:                    "You: ",
			tokenColor + string(ToneGreeting):   "cyan",
			tokenColor + string(TonePrompt):     "green",
			tokenColor + string(ToneError):      "red",
			tokenColor + string(ToneReview):     "yellow",
			tokenColor + string(ToneCorrection): "blue",
			tokenColor + string(ToneSuccess):    "magenta",
		},
		Templates: map[string]string{
			"order.review":  "review.tpl",
			"order.summary": "summary.tpl",
		},
		Variants: map[string]theme.Variant{
			VariantPlain: {Tokens: plain},
		},
	}
}

// LoadTheme registers the manifest with a go-theme registry and selects the
// requested variant through a theme.Selector. An empty variant selects the
// manifest defaults.
func LoadTheme(manifest *theme.Manifest, variant string) (Theme, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return Theme{}, fmt.Errorf("tui: register theme %q: %w", manifest.Name, err)
	}

	// Selector falls back to base tokens for unknown variants.
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return Theme{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
		}
	}

	selector := theme.Selector{Registry: registry, DefaultTheme: manifest.Name}
	selection, err := selector.Select(manifest.Name, variant)
	if err != nil {
		return Theme{}, fmt.Errorf("tui: select theme %q: %w", manifest.Name, err)
	}
	return FromSelection(selection), nil
}

// FromSelection builds a Theme from an already resolved go-theme selection.
func FromSelection(selection *theme.Selection) Theme {
	if selection == nil {
		return Theme{}
	}
	tokens := selection.Tokens()
	out := Theme{
		BotPrefix:  tokens[tokenBotPrefix],
		UserPrefix: tokens[tokenUserPrefix],
		colors:     make(map[Tone]string),
		selection:  selection,
	}
	for key, value := range tokens {
		tone, ok := strings.CutPrefix(key, tokenColor)
		if !ok || value == "" || value == colorNone {
			continue
		}
		out.colors[Tone(tone)] = value
	}
	return out
}

// PlainTheme returns the built-in prefixes without colors.
func PlainTheme() Theme {
	t, err := LoadTheme(DefaultManifest(), VariantPlain)
	if err != nil {
		return Theme{BotPrefix: "PizzaBot: ", UserPrefix: "You: "}
	}
	return t
}

// Paint colors s for the given tone. Tones without a color are returned as is.
func (t Theme) Paint(tone Tone, s string) string {
	style := t.colors[tone]
	if style == "" {
		return s
	}
	return ansi.Color(s, style)
}

// Bot prefixes msg with the bot name and paints it.
func (t Theme) Bot(tone Tone, msg string) string {
	return t.Paint(tone, t.BotPrefix+msg)
}

// Template returns the template file registered under key, variant
// overrides first.
func (t Theme) Template(key string) (string, bool) {
	if t.selection == nil {
		return "", false
	}
	name := t.selection.Template(key, "")
	return name, name != ""
}
