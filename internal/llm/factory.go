package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/metrics"
)

// NewClient builds the configured text provider. It returns a nil Client
// and no error when no credential is configured; callers then use their
// demo fallback or report the missing configuration.
func NewClient(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) (Client, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	provider := strings.ToLower(cfg.Provider)

	var c Client
	switch provider {
	case config.ProviderOpenAI:
		c = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case config.ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		c = g

	case config.ProviderClaude:
		c = NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	case config.ProviderOllama:
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		// Ollama ignores the key but the client requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		o := NewOpenAIClient(apiKey, cfg.Model, baseURL)
		o.jsonObjectOnly = true
		c = o

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &instrumented{next: c, provider: provider, logger: log}, nil
}

// instrumented records metrics for every provider call and normalizes
// provider failures into apperr.Generation.
type instrumented struct {
	next     Client
	provider string
	logger   *zap.Logger
}

func (i *instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	return i.observe("generate", func() (string, error) {
		return i.next.Generate(ctx, prompt)
	})
}

func (i *instrumented) GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	return i.observe(schema.Name, func() (string, error) {
		return i.next.GenerateStructured(ctx, prompt, schema)
	})
}

func (i *instrumented) observe(op string, call func() (string, error)) (string, error) {
	start := time.Now()
	out, err := call()
	metrics.UpstreamDuration.WithLabelValues(i.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(i.provider, metrics.OutcomeError).Inc()
		i.logger.Error("llm call failed",
			zap.String("provider", i.provider),
			zap.String("op", op),
			zap.Error(err))
		return "", apperr.Generation(i.provider, err)
	}
	metrics.UpstreamRequests.WithLabelValues(i.provider, metrics.OutcomeOK).Inc()
	return out, nil
}
