package content

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/llm"
	"github.com/agenthands/socialhub/internal/model"
)

const defaultReferenceMIME = "image/jpeg"

// Phrase tables for the enhanced image prompt. Keys the tables do not know
// are used verbatim.
var (
	styleFragments = map[string]string{
		"photorealistic": "photorealistic, high detail, natural lighting, shot on a professional camera",
		"illustration":   "digital illustration, clean line work, vibrant colors",
		"3d-render":      "3D render, soft global illumination, studio quality",
		"minimalist":     "minimalist composition, plenty of negative space, muted palette",
		"cinematic":      "cinematic still, dramatic lighting, shallow depth of field",
		"watercolor":     "watercolor painting, soft edges, textured paper",
		"flat-design":    "flat design, bold shapes, simple geometric forms",
		"vintage":        "vintage film photo, warm grain, faded colors",
	}

	cameraFragments = map[string]string{
		"eye-level":         "eye-level shot",
		"low-angle":         "low-angle shot looking up at the subject",
		"high-angle":        "high-angle shot looking down at the subject",
		"birds-eye":         "bird's-eye view from directly above",
		"close-up":          "close-up shot filling the frame",
		"wide-shot":         "wide establishing shot",
		"over-the-shoulder": "over-the-shoulder perspective",
		"dutch-angle":       "dutch angle with a tilted horizon",
	}

	aspectFragments = map[string]string{
		"1:1":  "square 1:1 composition",
		"16:9": "wide 16:9 landscape composition",
		"9:16": "vertical 9:16 composition for stories and reels",
		"4:5":  "4:5 portrait composition for feed posts",
		"4:3":  "4:3 composition",
		"3:2":  "3:2 photographic composition",
	}
)

func lookup(table map[string]string, key string) string {
	if phrase, ok := table[key]; ok {
		return phrase
	}
	return key
}

// ImagePrompt appends the style, camera-angle and aspect-ratio phrases to
// the caller's prompt, plus instructions for any reference images.
func ImagePrompt(req model.ImageRequest) string {
	parts := []string{strings.TrimSpace(req.Prompt)}
	if req.ImageStyle != "" {
		parts = append(parts, "Style: "+lookup(styleFragments, req.ImageStyle))
	}
	if req.CameraAngle != "" {
		parts = append(parts, "Camera: "+lookup(cameraFragments, req.CameraAngle))
	}
	if req.AspectRatio != "" {
		parts = append(parts, "Format: "+lookup(aspectFragments, req.AspectRatio))
	}
	if req.ProductImage != "" {
		parts = append(parts, "Feature the product shown in the attached product reference image, keeping its shape, colors and branding intact")
	}
	if req.PresenterImage != "" {
		parts = append(parts, "Include the person shown in the attached presenter reference image, preserving their likeness")
	}
	return strings.Join(parts, ". ") + "."
}

type ImageService struct {
	gen    llm.ImageGenerator
	logger *zap.Logger
}

func NewImageService(gen llm.ImageGenerator, log *zap.Logger) *ImageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageService{gen: gen, logger: log}
}

// Generate returns the synthesized image as a data URI.
func (s *ImageService) Generate(ctx context.Context, req model.ImageRequest) (string, error) {
	if s.gen == nil {
		return "", apperr.Unavailable("Image generation API key not configured")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", apperr.Validation("prompt is required")
	}

	in := llm.ImageInput{Prompt: ImagePrompt(req), Model: req.Model}
	for _, ref := range []struct{ field, value string }{
		{"productImage", req.ProductImage},
		{"presenterImage", req.PresenterImage},
	} {
		if ref.value == "" {
			continue
		}
		img, err := DecodeReference(ref.value)
		if err != nil {
			return "", apperr.Validation("invalid " + ref.field)
		}
		in.References = append(in.References, img)
	}

	image, err := s.gen.GenerateImage(ctx, in)
	if err != nil {
		s.logger.Warn("image generation failed", zap.Int("references", len(in.References)), zap.Error(err))
		return "", err
	}
	return image, nil
}

// DecodeReference accepts either a data URI or bare base64 (assumed JPEG).
func DecodeReference(s string) (llm.InlineImage, error) {
	mime := defaultReferenceMIME
	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return llm.InlineImage{}, errInvalidDataURI
		}
		if m := strings.TrimSuffix(header, ";base64"); m != "" {
			mime = m
		}
		payload = data
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return llm.InlineImage{}, err
	}
	if len(data) == 0 {
		return llm.InlineImage{}, errInvalidDataURI
	}
	return llm.InlineImage{MIMEType: mime, Data: data}, nil
}

var errInvalidDataURI = errors.New("malformed data URI")
