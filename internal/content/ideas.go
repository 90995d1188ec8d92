package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/llm"
	"github.com/agenthands/socialhub/internal/logger"
	"github.com/agenthands/socialhub/internal/metrics"
	"github.com/agenthands/socialhub/internal/model"
)

const (
	DefaultIdeaCount = 3
	MaxIdeaCount     = 10

	maxItemChars = 600
)

// Analysis item sources.
const (
	SourceTrends  = "trends"
	SourceYouTube = "youtube"
	SourceNews    = "news"
)

type IdeaRequest struct {
	Topic          string              `json:"topic"`
	Language       string              `json:"language,omitempty"`
	Tone           string              `json:"tone,omitempty"`
	TargetAudience string              `json:"targetAudience,omitempty"`
	BrandContext   *model.BrandContext `json:"brandContext,omitempty"`
	Count          int                 `json:"count,omitempty"`
}

type AnalyzeRequest struct {
	Items        []json.RawMessage   `json:"items"`
	Industry     string              `json:"industry"`
	Type         string              `json:"type"`
	BrandContext *model.BrandContext `json:"brandContext,omitempty"`
}

// IdeaService turns topics into content ideas and scores external items
// for relevance. A nil client switches idea generation to demo data.
type IdeaService struct {
	llm    llm.Client
	logger *zap.Logger
}

func NewIdeaService(client llm.Client, log *zap.Logger) *IdeaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IdeaService{llm: client, logger: log}
}

func (s *IdeaService) Generate(ctx context.Context, req IdeaRequest) ([]model.ContentIdea, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, apperr.Validation("topic is required")
	}
	count := req.Count
	if count == 0 {
		count = DefaultIdeaCount
	}
	if count < 1 || count > MaxIdeaCount {
		return nil, apperr.Validation(fmt.Sprintf("count must be between 1 and %d", MaxIdeaCount))
	}

	if s.llm == nil {
		metrics.DemoFallbacks.WithLabelValues("ideas").Inc()
		return DemoIdeas(req.Topic), nil
	}

	schema := ideasSchema()
	raw, err := s.llm.GenerateStructured(ctx, ideasInstructions(req, count), schema)
	if err != nil {
		return nil, err
	}
	out, err := llm.Decode[struct {
		Ideas []model.ContentIdea `json:"ideas"`
	}](raw, schema)
	if err != nil {
		s.logger.Error("failed to decode ideas", zap.String("raw", logger.Truncate(raw, 500)), zap.Error(err))
		return nil, err
	}

	ideas := out.Ideas
	if len(ideas) > count {
		ideas = ideas[:count]
	}
	if ideas == nil {
		ideas = []model.ContentIdea{}
	}
	return ideas, nil
}

// Analyze scores a batch of trends, videos or news articles against the
// industry. It has no demo path.
func (s *IdeaService) Analyze(ctx context.Context, req AnalyzeRequest) ([]model.AnalysisItem, error) {
	if s.llm == nil {
		return nil, apperr.NotConfigured("AI")
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("items is required")
	}
	if strings.TrimSpace(req.Industry) == "" {
		return nil, apperr.Validation("industry is required")
	}
	switch req.Type {
	case SourceTrends, SourceYouTube, SourceNews:
	default:
		return nil, apperr.Validation("type must be one of trends, youtube, news")
	}

	var items strings.Builder
	for i, item := range req.Items {
		fmt.Fprintf(&items, "[%d] %s\n", i, logger.Truncate(compact(item), maxItemChars))
	}
	prompt := fmt.Sprintf(analyzePrompt,
		req.Industry,
		BuildBrandPrompt(req.BrandContext),
		len(req.Items),
		req.Type,
		strings.Join(model.Platforms, ", "),
		items.String())

	schema := analysisSchema()
	raw, err := s.llm.GenerateStructured(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	out, err := llm.Decode[struct {
		Analyses []model.AnalysisItem `json:"analyses"`
	}](raw, schema)
	if err != nil {
		s.logger.Error("failed to decode analyses", zap.String("raw", logger.Truncate(raw, 500)), zap.Error(err))
		return nil, err
	}
	if out.Analyses == nil {
		return []model.AnalysisItem{}, nil
	}
	return out.Analyses, nil
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// DemoIdeas is the fixed payload served when no AI provider is configured.
func DemoIdeas(topic string) []model.ContentIdea {
	tag := "#" + strings.Join(strings.Fields(topic), "")
	return []model.ContentIdea{
		{
			Title:          fmt.Sprintf("The Future of %s: What Professionals Need to Know", topic),
			Description:    fmt.Sprintf("A thought-leadership post on where %s is heading and how teams can prepare for it.", topic),
			Platform:       "linkedin",
			EstimatedReach: "5K-10K",
			SuggestedTags:  []string{tag, "#Insights", "#Leadership"},
			Rationale:      "Long-form expert takes earn high engagement from professional audiences.",
		},
		{
			Title:          fmt.Sprintf("5 Quick Tips About %s", topic),
			Description:    fmt.Sprintf("A short thread sharing five practical, bite-sized tips about %s.", topic),
			Platform:       "twitter",
			EstimatedReach: "2K-8K",
			SuggestedTags:  []string{tag, "#Tips", "#Thread"},
			Rationale:      "Numbered threads are easy to skim and frequently reshared.",
		},
		{
			Title:          fmt.Sprintf("Behind the Scenes: %s", topic),
			Description:    fmt.Sprintf("A carousel showing the people and process behind %s.", topic),
			Platform:       "instagram",
			EstimatedReach: "3K-12K",
			SuggestedTags:  []string{tag, "#BehindTheScenes", "#Community"},
			Rationale:      "Authentic behind-the-scenes visuals build trust and saves.",
		},
	}
}

func ideasSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "content_ideas",
		Description: "Social media content ideas",
		Definition: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"ideas": {
					Type: jsonschema.Array,
					Items: &jsonschema.Definition{
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"title":          {Type: jsonschema.String},
							"description":    {Type: jsonschema.String},
							"platform":       {Type: jsonschema.String, Enum: model.Platforms},
							"estimatedReach": {Type: jsonschema.String},
							"suggestedTags":  {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
							"rationale":      {Type: jsonschema.String},
						},
						Required: []string{"title", "description", "platform", "estimatedReach", "suggestedTags", "rationale"},
					},
				},
			},
			Required: []string{"ideas"},
		},
	}
}

func analysisSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "content_analysis",
		Description: "Relevance analysis of external items",
		Definition: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"analyses": {
					Type: jsonschema.Array,
					Items: &jsonschema.Definition{
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"index":          {Type: jsonschema.Integer},
							"title":          {Type: jsonschema.String},
							"relevanceScore": {Type: jsonschema.Integer, Description: "0 to 100"},
							"isRelevant":     {Type: jsonschema.Boolean},
							"reason":         {Type: jsonschema.String},
							"contentAngle":   {Type: jsonschema.String},
							"suggestedPlatforms": {
								Type:  jsonschema.Array,
								Items: &jsonschema.Definition{Type: jsonschema.String, Enum: model.Platforms},
							},
						},
						Required: []string{"index", "title", "relevanceScore", "isRelevant", "reason", "contentAngle", "suggestedPlatforms"},
					},
				},
			},
			Required: []string{"analyses"},
		},
	}
}
