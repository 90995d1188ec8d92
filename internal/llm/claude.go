package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.message(ctx, prompt, 1024)
}

// GenerateStructured embeds the schema in the prompt; the messages API has
// no response-format switch.
func (c *ClaudeClient) GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	return c.message(ctx, withSchemaInstructions(prompt, schema), 4096)
}

func (c *ClaudeClient) message(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}

func withSchemaInstructions(prompt string, schema *Schema) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nRespond ONLY with a JSON object that matches this JSON schema. Do not add any other text.\n")
	sb.WriteString(schema.JSON())
	return sb.String()
}
