package registry

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// InputSchema renders the descriptor parameters as a JSON Schema object.
func (d ToolDescriptor) InputSchema() (*jsonschema.Schema, error) {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.Params)),
	}
	for _, p := range d.Params {
		prop := &jsonschema.Schema{
			Type:        string(p.Type),
			Description: p.Description,
		}
		if p.Default != nil {
			raw, err := json.Marshal(p.Default)
			if err != nil {
				return nil, fmt.Errorf("tool %s: encode default for %s: %w", d.Name, p.Name, err)
			}
			prop.Default = raw
		}
		if p.Positive {
			minimum := 1.0
			prop.Minimum = &minimum
		}
		if p.NonEmpty {
			minLength := 1
			prop.MinLength = &minLength
		}
		schema.Properties[p.Name] = prop
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema, nil
}
