package llm

import (
	"context"
)

// Client is a text-generation provider.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateStructured asks the provider to answer with JSON matching
	// schema. The raw text is returned; use Decode to validate it.
	GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error)
}

// InlineImage is a reference image sent alongside an image prompt.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

type ImageInput struct {
	Prompt     string
	Model      string
	References []InlineImage
}

// ImageGenerator synthesizes one image and returns it as a data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, in ImageInput) (string, error)
}
