package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/metrics"
)

const imageProvider = "gemini-image"

// ErrNoImage is returned when the provider answered without an image part.
var ErrNoImage = &apperr.Error{
	Kind:    apperr.KindParse,
	Status:  http.StatusInternalServerError,
	Message: "No image generated",
	Err:     errors.New("response contained no inline image part"),
}

type GeminiImageClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewImageGenerator returns nil when image generation is not configured.
func NewImageGenerator(ctx context.Context, cfg config.ImageConfig, log *zap.Logger) (ImageGenerator, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiImageClient{client: client, model: cfg.Model, logger: log}, nil
}

func (c *GeminiImageClient) GenerateImage(ctx context.Context, in ImageInput) (string, error) {
	model := in.Model
	if model == "" {
		model = c.model
	}

	parts := []*genai.Part{genai.NewPartFromText(in.Prompt)}
	for _, ref := range in.References {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: ref.MIMEType, Data: ref.Data},
		})
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	metrics.UpstreamDuration.WithLabelValues(imageProvider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(imageProvider, metrics.OutcomeError).Inc()
		c.logger.Error("image generation failed", zap.String("model", model), zap.Error(err))
		return "", apperr.Generation(imageProvider, err)
	}
	metrics.UpstreamRequests.WithLabelValues(imageProvider, metrics.OutcomeOK).Inc()

	return ExtractImage(resp)
}

// ExtractImage returns the first inline-image part as a data URI.
func ExtractImage(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrNoImage
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			if !strings.HasPrefix(mime, "image/") {
				continue
			}
			return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}
