package mentions

import (
	"context"

	"github.com/agenthands/socialhub/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockLLMClient) GenerateStructured(ctx context.Context, prompt string, schema *llm.Schema) (string, error) {
	return m.Generate(ctx, prompt)
}
