package content

import (
	"context"

	"github.com/agenthands/socialhub/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error
	Prompts  []string
	Schemas  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockLLMClient) GenerateStructured(ctx context.Context, prompt string, schema *llm.Schema) (string, error) {
	m.Schemas = append(m.Schemas, schema.Name)
	return m.Generate(ctx, prompt)
}

type MockImageGenerator struct {
	Image string
	Err   error
	Calls []llm.ImageInput
}

func (m *MockImageGenerator) GenerateImage(ctx context.Context, in llm.ImageInput) (string, error) {
	m.Calls = append(m.Calls, in)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Image, nil
}
