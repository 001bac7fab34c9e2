package order

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateDocument_AcceptsCompleteRecord(t *testing.T) {
	raw, err := json.Marshal(completeRecord(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateDocument(raw); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateDocument_AcceptsUnsetFields(t *testing.T) {
	raw, err := json.Marshal(Record{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateDocument(raw); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateDocument_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown pizza": `{"pizza":"Calzone","size":"small","toppings":[],"allergies":null,"specialRequests":null,"name":null,"address":null}`,
		"unknown size":  `{"pizza":"Diavola","size":"huge","toppings":[],"allergies":null,"specialRequests":null,"name":null,"address":null}`,
		"extra key":     `{"pizza":null,"size":null,"toppings":null,"allergies":null,"specialRequests":null,"name":null,"address":null,"crust":"thin"}`,
		"missing key":   `{"pizza":null,"size":null,"toppings":null,"allergies":null,"specialRequests":null,"name":null}`,
		"toppings type": `{"pizza":null,"size":null,"toppings":"olives","allergies":null,"specialRequests":null,"name":null,"address":null}`,
		"not json":      `{`,
	}
	for name, raw := range cases {
		if err := ValidateDocument([]byte(raw)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", name, err)
		}
	}
}

func TestSchemaJSON(t *testing.T) {
	raw, err := SchemaJSON()
	if err != nil {
		t.Fatalf("schema json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", raw)
	}
	for _, key := range Keys() {
		if _, ok := props[key]; !ok {
			t.Fatalf("schema missing property %q", key)
		}
	}
	if len(props) != len(Keys()) {
		t.Fatalf("expected %d properties, got %d", len(Keys()), len(props))
	}
}
