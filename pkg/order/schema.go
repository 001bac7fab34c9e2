package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrInvalidDocument wraps schema violations found in a persisted order.
var ErrInvalidDocument = errors.New("order: invalid document")

var (
	schemaOnce sync.Once
	schemaDoc  *openapi3.Schema
)

// Schema describes the persisted record: exactly the seven field keys, pizza
// and size restricted to their catalogs, toppings a list of strings, every
// other field a string. Unset fields are null.
func Schema() *openapi3.Schema {
	schemaOnce.Do(func() {
		schemaDoc = buildSchema()
	})
	return schemaDoc
}

func buildSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = "PizzaOrder"
	schema.Description = "A confirmed pizza order as written by pizzabot."

	for _, def := range definitions {
		var prop *openapi3.Schema
		switch def.Kind {
		case KindOneOfFuzzyMatch:
			// OpenAPI 3.0 nullable enums must list null explicitly.
			prop = openapi3.NewStringSchema().WithEnum(enumValues(def.Options)...).WithNullable()
		case KindListOrNone:
			prop = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()).WithNullable()
		default:
			prop = openapi3.NewStringSchema().WithNullable()
		}
		prop.Description = def.Prompt
		schema.WithProperty(def.Key, prop)
	}

	schema.Required = Keys()
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	return schema
}

// ValidateDocument checks a JSON encoded order against Schema.
func ValidateDocument(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrInvalidDocument, err)
	}
	return ValidateValue(doc)
}

// ValidateValue checks an already decoded JSON value against Schema.
func ValidateValue(doc any) error {
	if err := Schema().VisitJSON(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

func enumValues(options []string) []any {
	out := make([]any, 0, len(options)+1)
	out = append(out, nil)
	for _, option := range options {
		out = append(out, option)
	}
	return out
}
