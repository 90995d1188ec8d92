package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/socialhub/internal/apperr"
)

type tagList struct {
	Tags []struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"tags"`
}

func tagSchema() *Schema {
	return &Schema{
		Name: "tags",
		Definition: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"tags": {
					Type: jsonschema.Array,
					Items: &jsonschema.Definition{
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"name":  {Type: jsonschema.String},
							"score": {Type: jsonschema.Integer},
						},
						Required: []string{"name", "score"},
					},
				},
			},
			Required: []string{"tags"},
		},
	}
}

func TestExtractJSON(t *testing.T) {
	got, err := ExtractJSON("```json\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, got)

	_, err = ExtractJSON("no json here")
	assert.Error(t, err)

	_, err = ExtractJSON("} reversed {")
	assert.Error(t, err)
}

func TestDecode_Valid(t *testing.T) {
	raw := "Sure! Here you go:\n{\"tags\": [{\"name\": \"coffee\", \"score\": 9}]}"

	out, err := Decode[tagList](raw, tagSchema())
	require.NoError(t, err)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "coffee", out.Tags[0].Name)
	assert.Equal(t, 9, out.Tags[0].Score)
}

func TestDecode_EmptyIsZeroValue(t *testing.T) {
	out, err := Decode[tagList]("   ", tagSchema())
	require.NoError(t, err)
	assert.Empty(t, out.Tags)
}

func TestDecode_SchemaViolation(t *testing.T) {
	raw := `{"tags": [{"name": "coffee", "score": "high"}]}`

	_, err := Decode[tagList](raw, tagSchema())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindParse))
	assert.Contains(t, err.Error(), "does not match schema tags")
}

func TestDecode_MissingRequired(t *testing.T) {
	_, err := Decode[tagList](`{"other": true}`, tagSchema())
	assert.True(t, apperr.IsKind(err, apperr.KindParse))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode[tagList](`{"tags": [`, tagSchema())
	assert.True(t, apperr.IsKind(err, apperr.KindParse))
}

func TestDecode_NilSchemaSkipsValidation(t *testing.T) {
	out, err := Decode[map[string]any](`{"free": "form"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "form", out["free"])
}
