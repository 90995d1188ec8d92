package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/agenthands/socialhub/internal/config"
)

func TestExtractImage_FirstInlineImage(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Here is your image"},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
						{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second")}},
					},
				},
			},
		},
	}

	got, err := ExtractImage(resp)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,Zmlyc3Q=", got)
}

func TestExtractImage_DefaultsMIMEType(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{Data: []byte("x")}}}}},
		},
	}

	got, err := ExtractImage(resp)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,eA==", got)
}

func TestExtractImage_NoImagePart(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "I cannot draw that."}}}},
			{Content: nil},
		},
	}

	_, err := ExtractImage(resp)
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, "No image generated", ErrNoImage.Message)

	_, err = ExtractImage(nil)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestExtractImage_SkipsNonImageBlobs(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "audio/wav", Data: []byte("a")}},
			}}},
		},
	}

	_, err := ExtractImage(resp)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestNewImageGenerator_NotConfigured(t *testing.T) {
	g, err := NewImageGenerator(context.Background(), config.ImageConfig{}, nil)
	require.NoError(t, err)
	assert.Nil(t, g)
}
