package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/agenthands/socialhub/internal/apperr"
)

// ExtractJSON trims markdown fences and chatter around the first JSON
// object in an LLM response.
func ExtractJSON(response string) (string, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')

	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response (missing '{')")
	}
	if end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response (missing '}')")
	}
	return response[start : end+1], nil
}

// Decode validates raw against schema and unmarshals it into T. An empty
// response decodes to the zero value; anything unparseable or off-schema
// fails the whole request.
func Decode[T any](raw string, schema *Schema) (T, error) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, nil
	}

	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return zero, apperr.Parse("AI response", err)
	}

	if schema != nil {
		if err := schema.Validate([]byte(jsonStr)); err != nil {
			return zero, apperr.Parse("AI response", err)
		}
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, apperr.Parse("AI response", fmt.Errorf("failed to unmarshal JSON: %w", err))
	}
	return result, nil
}

// Validate checks a JSON document against the schema definition.
func (s *Schema) Validate(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(&s.Definition),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("response does not match schema %s: %v", s.Name, errs)
	}
	return nil
}
