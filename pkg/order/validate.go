package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRejected is wrapped by every validation rejection.
	ErrRejected = errors.New("order: answer rejected")
	// ErrUnknownField signals a field name that matches no catalog entry.
	ErrUnknownField = errors.New("order: unknown field")
	// ErrNotInCatalog is returned when a one-of field is set to a value outside
	// its catalog.
	ErrNotInCatalog = errors.New("order: value not in catalog")
)

// RejectionError reports an answer that matched no catalog entry. Its message
// is meant to be shown to the user as is.
type RejectionError struct {
	Field   Field
	Answer  string
	Options []string
	Reason  string
}

func (e *RejectionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: choose one of %s", e.Field, strings.Join(e.Options, ", "))
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

// Value is a normalised answer. List-valued fields use List, every other field
// uses Text.
type Value struct {
	Text string
	List []string
}

// TextValue wraps a single string answer.
func TextValue(text string) Value {
	return Value{Text: text}
}

// ListValue wraps a list answer. A nil list is stored as an empty one.
func ListValue(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{List: items}
}

// Validate normalises a raw answer for the given field or rejects it. It is
// the single validation path used by both the interview and corrections.
func Validate(field Field, raw string) (Value, error) {
	def, ok := Lookup(field)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	switch def.Kind {
	case KindOneOfFuzzyMatch:
		return validateOneOf(def, raw)
	case KindListOrNone:
		return ListValue(parseList(raw)...), nil
	default:
		return TextValue(strings.TrimSpace(raw)), nil
	}
}

func validateOneOf(def Definition, raw string) (Value, error) {
	if match, ok := MatchOption(def.Options, raw); ok {
		return TextValue(match), nil
	}
	return Value{}, &RejectionError{
		Field:   def.Field,
		Answer:  strings.TrimSpace(raw),
		Options: def.Options,
		Reason:  def.Reject,
	}
}

// MatchOption returns the first option, in declared order, whose lower-cased
// form is a substring of the trimmed, lower-cased answer.
func MatchOption(options []string, raw string) (string, bool) {
	answer := strings.ToLower(strings.TrimSpace(raw))
	if answer == "" {
		return "", false
	}
	for _, option := range options {
		if strings.Contains(answer, strings.ToLower(option)) {
			return option, true
		}
	}
	return "", false
}

func parseList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if _, none := noneAnswers[strings.ToLower(trimmed)]; none {
		return []string{}
	}
	parts := strings.Split(trimmed, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
