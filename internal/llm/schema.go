package llm

import (
	"encoding/json"

	legacygenai "github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Schema is a structured-output contract. The definition is plain JSON
// schema; each provider translates it into its own dialect. Build a fresh
// Schema per request: the definition is mutated while being marshalled.
type Schema struct {
	Name        string
	Description string
	Definition  jsonschema.Definition
}

// JSON renders the definition for providers that only take it in the prompt.
func (s *Schema) JSON() string {
	b, err := json.Marshal(&s.Definition)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// geminiSchema converts a JSON schema definition into the Gemini dialect.
func geminiSchema(d jsonschema.Definition) *legacygenai.Schema {
	s := &legacygenai.Schema{
		Description: d.Description,
		Enum:        d.Enum,
		Required:    d.Required,
	}

	switch d.Type {
	case jsonschema.Object:
		s.Type = legacygenai.TypeObject
	case jsonschema.Array:
		s.Type = legacygenai.TypeArray
	case jsonschema.Integer:
		s.Type = legacygenai.TypeInteger
	case jsonschema.Number:
		s.Type = legacygenai.TypeNumber
	case jsonschema.Boolean:
		s.Type = legacygenai.TypeBoolean
	default:
		s.Type = legacygenai.TypeString
	}
	if len(d.Enum) > 0 {
		s.Format = "enum"
	}

	if d.Items != nil {
		s.Items = geminiSchema(*d.Items)
	}
	if len(d.Properties) > 0 {
		s.Properties = make(map[string]*legacygenai.Schema, len(d.Properties))
		for name, prop := range d.Properties {
			s.Properties[name] = geminiSchema(prop)
		}
	}
	return s
}
