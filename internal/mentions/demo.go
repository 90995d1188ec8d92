package mentions

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agenthands/socialhub/internal/model"
)

type mentionTemplate struct {
	sentiment string
	content   func(brand, industry string) string
}

// templates cycle by index; the order is part of the demo output.
var templates = []mentionTemplate{
	{model.SentimentPositive, func(b, ind string) string {
		return fmt.Sprintf("Just tried %s and honestly impressed. Best option in %s I've used so far 🙌", b, ind)
	}},
	{model.SentimentNeutral, func(b, _ string) string {
		return fmt.Sprintf("Has anyone here used %s? Looking for honest opinions before I sign up.", b)
	}},
	{model.SentimentNegative, func(b, _ string) string {
		return fmt.Sprintf("Still waiting on %s support to answer my ticket from last week. Not great.", b)
	}},
	{model.SentimentPositive, func(b, ind string) string {
		return fmt.Sprintf("Shoutout to the %s team, they really get what people in %s need.", b, ind)
	}},
	{model.SentimentNeutral, func(b, ind string) string {
		return fmt.Sprintf("Saw %s in a roundup of %s tools today. Interesting approach.", b, ind)
	}},
	{model.SentimentPositive, func(b, _ string) string {
		return fmt.Sprintf("The latest %s update is a game changer. Whole team switched over.", b)
	}},
	{model.SentimentNegative, func(b, ind string) string {
		return fmt.Sprintf("Pricing at %s feels steep compared to other options in %s.", b, ind)
	}},
}

var (
	demoPlatforms = []string{"twitter", "linkedin", "instagram", "facebook", "tiktok"}
	demoHandles   = []string{"daily_reviewer", "techie_tom", "marketing_maya", "honest_opinions", "trend_hunter", "local_insider"}
)

// demoMentions fills count slots from the template cycle. With competitors
// the last slot is always a neutral comparison naming the first competitor.
func (s *Service) demoMentions(req GenerateRequest, count int) []model.MentionRecord {
	now := s.now()
	records := make([]model.MentionRecord, count)
	for i := range records {
		tpl := templates[i%len(templates)]
		records[i] = model.MentionRecord{
			ID:         uuid.NewString(),
			Author:     fmt.Sprintf("@%s%d", demoHandles[i%len(demoHandles)], s.intn(1000)),
			Content:    tpl.content(req.BrandName, req.Industry),
			Platform:   demoPlatforms[i%len(demoPlatforms)],
			Sentiment:  tpl.sentiment,
			Engagement: 5 + s.intn(500),
			Timestamp:  timestamp(now, i),
		}
	}

	if len(req.Competitors) > 0 {
		last := &records[count-1]
		last.Content = fmt.Sprintf("Comparing %s and %s for %s right now. Both have strengths, still deciding.",
			req.Competitors[0], req.BrandName, req.Industry)
		last.Sentiment = model.SentimentNeutral
		last.IsCompetitor = true
	}
	return records
}
