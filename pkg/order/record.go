package order

import (
	"fmt"
	"strings"
)

// Record holds the current value of every field. Unset text fields are nil;
// Toppings is nil until answered and empty when the customer wants none.
type Record struct {
	Pizza           *string  `json:"pizza" yaml:"pizza"`
	Size            *string  `json:"size" yaml:"size"`
	Toppings        []string `json:"toppings" yaml:"toppings"`
	Allergies       *string  `json:"allergies" yaml:"allergies"`
	SpecialRequests *string  `json:"specialRequests" yaml:"specialRequests"`
	Name            *string  `json:"name" yaml:"name"`
	Address         *string  `json:"address" yaml:"address"`
}

// Set writes a normalised value into the record. One-of fields only accept
// catalog members, so a Record never holds an arbitrary pizza or size.
func (r *Record) Set(field Field, value Value) error {
	if r == nil {
		return fmt.Errorf("order: record is nil")
	}
	def, ok := Lookup(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	switch def.Kind {
	case KindOneOfFuzzyMatch:
		if !inCatalog(def.Options, value.Text) {
			return fmt.Errorf("%w: %s %q", ErrNotInCatalog, def.Key, value.Text)
		}
	case KindListOrNone:
		list := make([]string, len(value.List))
		copy(list, value.List)
		r.Toppings = list
		return nil
	}

	text := value.Text
	*r.textSlot(field) = &text
	return nil
}

// Get returns the value of a field and whether it has been answered.
func (r *Record) Get(field Field) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	if field == FieldToppings {
		if r.Toppings == nil {
			return Value{}, false
		}
		return ListValue(append([]string(nil), r.Toppings...)...), true
	}
	slot := r.textSlot(field)
	if slot == nil || *slot == nil {
		return Value{}, false
	}
	return TextValue(**slot), true
}

// Text returns a text field's value, or "" when unset.
func (r *Record) Text(field Field) string {
	v, _ := r.Get(field)
	return v.Text
}

// Complete reports whether every field has been answered.
func (r *Record) Complete() bool {
	for _, def := range definitions {
		if _, ok := r.Get(def.Field); !ok {
			return false
		}
	}
	return true
}

// Missing lists the storage keys of unanswered fields.
func (r *Record) Missing() []string {
	var out []string
	for _, def := range definitions {
		if _, ok := r.Get(def.Field); !ok {
			out = append(out, def.Key)
		}
	}
	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := Record{
		Pizza:           cloneString(r.Pizza),
		Size:            cloneString(r.Size),
		Allergies:       cloneString(r.Allergies),
		SpecialRequests: cloneString(r.SpecialRequests),
		Name:            cloneString(r.Name),
		Address:         cloneString(r.Address),
	}
	if r.Toppings != nil {
		out.Toppings = append([]string{}, r.Toppings...)
	}
	return out
}

// ToppingsText joins the toppings for display, "None" when there are none.
func (r *Record) ToppingsText() string {
	if r == nil || len(r.Toppings) == 0 {
		return "None"
	}
	return strings.Join(r.Toppings, ", ")
}

func (r *Record) textSlot(field Field) **string {
	switch field {
	case FieldPizza:
		return &r.Pizza
	case FieldSize:
		return &r.Size
	case FieldAllergies:
		return &r.Allergies
	case FieldSpecialRequests:
		return &r.SpecialRequests
	case FieldName:
		return &r.Name
	case FieldAddress:
		return &r.Address
	default:
		return nil
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
