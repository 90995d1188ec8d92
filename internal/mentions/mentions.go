// Package mentions simulates and summarizes brand mentions on social
// platforms.
package mentions

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/llm"
	"github.com/agenthands/socialhub/internal/logger"
	"github.com/agenthands/socialhub/internal/metrics"
	"github.com/agenthands/socialhub/internal/model"
)

const (
	DefaultCount = 10
	MaxCount     = 50

	NoDataAnalysis = "No data available for analysis."

	defaultIndustry = "the market"
	maxAnalyzed     = 100
)

type GenerateRequest struct {
	BrandName   string   `json:"brandName"`
	Industry    string   `json:"industry"`
	Competitors []string `json:"competitors,omitempty"`
	Count       int      `json:"count,omitempty"`
}

// Mention is a mention submitted for analysis. Only sentiment is required.
type Mention struct {
	Author       string `json:"author,omitempty"`
	Content      string `json:"content,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Sentiment    string `json:"sentiment"`
	Engagement   int    `json:"engagement,omitempty"`
	IsCompetitor bool   `json:"isCompetitor,omitempty"`
}

type Option func(*Service)

// WithRandom replaces the source of cosmetic randomness (author suffixes and
// engagement). fn must be safe for concurrent use.
func WithRandom(fn func(n int) int) Option {
	return func(s *Service) { s.intn = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	llm    llm.Client
	logger *zap.Logger
	intn   func(n int) int
	now    func() time.Time
}

// NewService returns a Service. A nil client selects the template generator
// and the counting analysis.
func NewService(client llm.Client, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{llm: client, logger: log, intn: rand.IntN, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Generate(ctx context.Context, req GenerateRequest) ([]model.MentionRecord, error) {
	req.BrandName = strings.TrimSpace(req.BrandName)
	if req.BrandName == "" {
		return nil, apperr.Validation("brandName is required")
	}
	count := req.Count
	if count == 0 {
		count = DefaultCount
	}
	if count < 1 || count > MaxCount {
		return nil, apperr.Validation(fmt.Sprintf("count must be between 1 and %d", MaxCount))
	}
	if strings.TrimSpace(req.Industry) == "" {
		req.Industry = defaultIndustry
	}

	if s.llm == nil {
		metrics.DemoFallbacks.WithLabelValues("mentions_generate").Inc()
		return s.demoMentions(req, count), nil
	}

	schema := mentionsSchema()
	raw, err := s.llm.GenerateStructured(ctx, generatePrompt(req, count), schema)
	if err != nil {
		return nil, err
	}
	out, err := llm.Decode[struct {
		Mentions []model.MentionRecord `json:"mentions"`
	}](raw, schema)
	if err != nil {
		s.logger.Error("failed to decode mentions", zap.String("raw", logger.Truncate(raw, 500)), zap.Error(err))
		return nil, err
	}

	records := out.Mentions
	if len(records) > count {
		records = records[:count]
	}
	now := s.now()
	for i := range records {
		records[i].ID = uuid.NewString()
		records[i].Timestamp = timestamp(now, i)
	}
	if records == nil {
		records = []model.MentionRecord{}
	}
	return records, nil
}

// Analyze summarizes a batch of mentions in a few sentences.
func (s *Service) Analyze(ctx context.Context, mentions []Mention) (string, error) {
	if len(mentions) == 0 {
		return NoDataAnalysis, nil
	}
	if s.llm == nil {
		metrics.DemoFallbacks.WithLabelValues("mentions_analyze").Inc()
		return DemoAnalysis(mentions), nil
	}

	out, err := s.llm.Generate(ctx, analyzePrompt(mentions))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DemoAnalysis compares positive and negative counts.
func DemoAnalysis(mentions []Mention) string {
	var positive, negative int
	for _, m := range mentions {
		switch strings.ToLower(m.Sentiment) {
		case model.SentimentPositive:
			positive++
		case model.SentimentNegative:
			negative++
		}
	}
	if negative > positive {
		return fmt.Sprintf("⚠️ Attention needed: %d negative mentions outnumber %d positive ones. "+
			"Respond to the critical feedback quickly and look for a common root cause.", negative, positive)
	}
	return fmt.Sprintf("✅ Sentiment looks healthy: %d positive mentions against %d negative ones. "+
		"Keep engaging with supporters and amplify the best posts.", positive, negative)
}

func timestamp(now time.Time, i int) time.Time {
	return now.Add(-time.Duration(i) * 47 * time.Minute).UTC()
}

func generatePrompt(req GenerateRequest, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d realistic social media posts that mention the brand %q, which operates in %s.\n",
		count, req.BrandName, req.Industry)
	sb.WriteString("Mix positive, neutral and negative sentiment in realistic proportions and vary the platforms.\n")
	if len(req.Competitors) > 0 {
		fmt.Fprintf(&sb, "Some posts should compare the brand with these competitors: %s. Mark those with isCompetitor true.\n",
			strings.Join(req.Competitors, ", "))
	}
	sb.WriteString(`Use plausible @handles as authors and an engagement count between 0 and 1000. Answer with JSON of the form {"mentions": [...]}.`)
	return sb.String()
}

func analyzePrompt(mentions []Mention) string {
	if len(mentions) > maxAnalyzed {
		mentions = mentions[:maxAnalyzed]
	}
	var sb strings.Builder
	sb.WriteString("You are a social listening analyst. Summarize the overall brand sentiment in these mentions in ")
	sb.WriteString("three or four sentences. Point out recurring themes, any risk that needs a response, and one recommended action.\n\n")
	for i, m := range mentions {
		fmt.Fprintf(&sb, "%d. [%s] (%s) %s\n", i+1, m.Sentiment, m.Platform, logger.Truncate(m.Content, 280))
	}
	return sb.String()
}

func mentionsSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "brand_mentions",
		Description: "Simulated social media mentions",
		Definition: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"mentions": {
					Type: jsonschema.Array,
					Items: &jsonschema.Definition{
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"author":   {Type: jsonschema.String},
							"content":  {Type: jsonschema.String},
							"platform": {Type: jsonschema.String},
							"sentiment": {
								Type: jsonschema.String,
								Enum: []string{model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral},
							},
							"engagement":   {Type: jsonschema.Integer},
							"isCompetitor": {Type: jsonschema.Boolean},
						},
						Required: []string{"author", "content", "platform", "sentiment", "engagement", "isCompetitor"},
					},
				},
			},
			Required: []string{"mentions"},
		},
	}
}
