package content

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/model"
)

func TestImagePrompt_KnownKeys(t *testing.T) {
	got := ImagePrompt(model.ImageRequest{
		Prompt:      "A cup of coffee on a desk",
		ImageStyle:  "cinematic",
		CameraAngle: "close-up",
		AspectRatio: "9:16",
	})
	assert.Equal(t, "A cup of coffee on a desk. "+
		"Style: cinematic still, dramatic lighting, shallow depth of field. "+
		"Camera: close-up shot filling the frame. "+
		"Format: vertical 9:16 composition for stories and reels.", got)
}

func TestImagePrompt_UnknownKeysPassThrough(t *testing.T) {
	got := ImagePrompt(model.ImageRequest{
		Prompt:      "Logo reveal",
		ImageStyle:  "neon cyberpunk",
		CameraAngle: "fisheye",
		AspectRatio: "21:9",
	})
	assert.Contains(t, got, "Style: neon cyberpunk")
	assert.Contains(t, got, "Camera: fisheye")
	assert.Contains(t, got, "Format: 21:9")
}

func TestImagePrompt_OnlyPrompt(t *testing.T) {
	assert.Equal(t, "Sunrise.", ImagePrompt(model.ImageRequest{Prompt: " Sunrise "}))
}

func TestDecodeReference(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("pixels"))

	img, err := DecodeReference("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte("pixels"), img.Data)

	img, err = DecodeReference(payload)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)

	_, err = DecodeReference("data:image/png," + payload)
	assert.Error(t, err)

	_, err = DecodeReference("!!not base64!!")
	assert.Error(t, err)
}

func TestImageService_NotConfigured(t *testing.T) {
	svc := NewImageService(nil, nil)

	_, err := svc.Generate(context.Background(), model.ImageRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperr.From(err).Status)
}

func TestImageService_MissingPrompt(t *testing.T) {
	gen := &MockImageGenerator{}
	svc := NewImageService(gen, nil)

	_, err := svc.Generate(context.Background(), model.ImageRequest{ImageStyle: "cinematic"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status)
	assert.Empty(t, gen.Calls)
}

func TestImageService_InvalidReference(t *testing.T) {
	gen := &MockImageGenerator{}
	svc := NewImageService(gen, nil)

	_, err := svc.Generate(context.Background(), model.ImageRequest{Prompt: "x", PresenterImage: "%%%"})
	require.Error(t, err)
	assert.Equal(t, "invalid presenterImage", apperr.From(err).Message)
	assert.Empty(t, gen.Calls)
}

func TestImageService_Generate(t *testing.T) {
	gen := &MockImageGenerator{Image: "data:image/png;base64,AAAA"}
	svc := NewImageService(gen, nil)
	ref := base64.StdEncoding.EncodeToString([]byte("product"))

	out, err := svc.Generate(context.Background(), model.ImageRequest{
		Prompt:       "Product on a table",
		Model:        "custom-image-model",
		ProductImage: ref,
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", out)

	require.Len(t, gen.Calls, 1)
	call := gen.Calls[0]
	assert.Equal(t, "custom-image-model", call.Model)
	require.Len(t, call.References, 1)
	assert.Equal(t, []byte("product"), call.References[0].Data)
	assert.Contains(t, call.Prompt, "product reference image")
}

func TestImageService_GeneratorError(t *testing.T) {
	gen := &MockImageGenerator{Err: errors.New("boom")}
	svc := NewImageService(gen, nil)

	_, err := svc.Generate(context.Background(), model.ImageRequest{Prompt: "x"})
	assert.EqualError(t, err, "boom")
}
