package order

import (
	"fmt"
	"strings"
)

// Field identifies one slot of the order.
type Field int

const (
	FieldPizza Field = iota
	FieldSize
	FieldToppings
	FieldAllergies
	FieldSpecialRequests
	FieldName
	FieldAddress
)

// Storage keys used by the persisted record.
const (
	KeyPizza           = "pizza"
	KeySize            = "size"
	KeyToppings        = "toppings"
	KeyAllergies       = "allergies"
	KeySpecialRequests = "specialRequests"
	KeyName            = "name"
	KeyAddress         = "address"
)

// ValidationKind selects the validator applied to a field's answers.
type ValidationKind string

const (
	// KindOneOfFuzzyMatch accepts answers containing a catalog entry.
	KindOneOfFuzzyMatch ValidationKind = "one_of_fuzzy_match"
	// KindListOrNone accepts a comma separated list or a "none" answer.
	KindListOrNone ValidationKind = "list_or_none"
	// KindFreeText accepts anything.
	KindFreeText ValidationKind = "free_text"
)

// Definition is the static description of a field: where it is stored, how it
// is asked, and how its answers are validated.
type Definition struct {
	Field  Field
	Key    string
	Label  string
	Prompt string
	Kind   ValidationKind
	// Options is the catalog for KindOneOfFuzzyMatch fields.
	Options []string
	// Reject is the message shown when an answer matches no option.
	Reject string
}

var definitions = []Definition{
	{
		Field:   FieldPizza,
		Key:     KeyPizza,
		Label:   "Pizza",
		Prompt:  "What pizza would you like?",
		Kind:    KindOneOfFuzzyMatch,
		Options: pizzaCatalog,
		Reject:  "Sorry, we don't have that. Choose from: " + strings.Join(pizzaCatalog, ", "),
	},
	{
		Field:   FieldSize,
		Key:     KeySize,
		Label:   "Size",
		Prompt:  "What size do you want? (" + strings.Join(sizeCatalog, ", ") + ")",
		Kind:    KindOneOfFuzzyMatch,
		Options: sizeCatalog,
		Reject:  "Please choose a size: " + joinOr(sizeCatalog) + ".",
	},
	{
		Field:  FieldToppings,
		Key:    KeyToppings,
		Label:  "Toppings",
		Prompt: "Any extra toppings?",
		Kind:   KindListOrNone,
	},
	{
		Field:  FieldAllergies,
		Key:    KeyAllergies,
		Label:  "Allergies",
		Prompt: "Do you have any allergies or dietary restrictions?",
		Kind:   KindFreeText,
	},
	{
		Field:  FieldSpecialRequests,
		Key:    KeySpecialRequests,
		Label:  "Special Requests",
		Prompt: "Any special requests? (e.g. very spicy, no onions)",
		Kind:   KindFreeText,
	},
	{
		Field:  FieldName,
		Key:    KeyName,
		Label:  "Name",
		Prompt: "Can I have your name?",
		Kind:   KindFreeText,
	},
	{
		Field:  FieldAddress,
		Key:    KeyAddress,
		Label:  "Delivery Address",
		Prompt: "What's your delivery address?",
		Kind:   KindFreeText,
	},
}

// Fields returns the field catalog in interview order. The returned slice is a
// copy; the catalog itself never changes.
func Fields() []Definition {
	out := make([]Definition, len(definitions))
	for i, def := range definitions {
		def.Options = append([]string(nil), def.Options...)
		out[i] = def
	}
	return out
}

// Lookup returns the definition of a field.
func Lookup(field Field) (Definition, bool) {
	if field < FieldPizza || field > FieldAddress {
		return Definition{}, false
	}
	def := definitions[field]
	def.Options = append([]string(nil), def.Options...)
	return def, true
}

// Keys returns the storage keys in interview order.
func Keys() []string {
	out := make([]string, len(definitions))
	for i, def := range definitions {
		out[i] = def.Key
	}
	return out
}

// String reports the storage key of the field.
func (f Field) String() string {
	if def, ok := Lookup(f); ok {
		return def.Key
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField resolves a user typed field name. Matching ignores letter case,
// spaces, underscores and dashes, and accepts either the storage key
// ("specialRequests") or the display label ("special requests").
func ParseField(name string) (Field, error) {
	wanted := fieldToken(name)
	if wanted == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownField)
	}
	for _, def := range definitions {
		if wanted == fieldToken(def.Key) || wanted == fieldToken(def.Label) {
			return def.Field, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, strings.TrimSpace(name))
}

// ChangeableNames lists the names offered when asking which field to change.
func ChangeableNames() []string {
	return []string{"pizza", "size", "toppings", "allergies", "special requests", "name", "address"}
}

func fieldToken(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
