package content

import (
	"fmt"
	"strings"

	"github.com/agenthands/socialhub/internal/model"
)

// BuildBrandPrompt renders the brand profile as labeled lines. Fields that
// are empty are left out entirely; a nil or empty brand renders as "".
func BuildBrandPrompt(b *model.BrandContext) string {
	if b == nil {
		return ""
	}

	var lines []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", label, v))
		}
	}
	addList := func(label string, values []string) {
		var kept []string
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(kept, ", ")))
		}
	}

	add("Brand", b.Name)
	add("Industry", b.Industry)
	add("Tagline", b.Tagline)
	add("Unique selling proposition", b.USP)
	add("Voice tone", b.Voice.Tone)
	addList("Personality", b.Voice.Personality)
	addList("Avoid these words", b.Voice.AvoidWords)
	add("Target audience", b.TargetAudience.Demographics)
	add("Audience age range", b.TargetAudience.AgeRange)
	addList("Audience interests", b.TargetAudience.Interests)
	addList("Audience pain points", b.TargetAudience.PainPoints)
	addList("Brand values", b.Values)

	if len(lines) == 0 {
		return ""
	}
	return "BRAND CONTEXT:\n" + strings.Join(lines, "\n")
}

const ideasPrompt = `You are an experienced social media strategist.
Generate %d content ideas about the topic "%s".
%s
For every idea give a catchy title, a two-sentence description, the single best platform
(one of: %s), an estimated reach range such as "5K-10K", three to five suggested hashtags
and a one-sentence rationale explaining why the idea will perform well.
Answer with JSON of the form {"ideas": [...]}.`

const analyzePrompt = `You are a content strategist for a company in the %s industry.
%s
Below are %d %s items. For each item decide whether it is a relevant content opportunity
for this company. Score relevance from 0 to 100, mark items scoring 60 or more as relevant,
explain the reason in one sentence, propose a concrete content angle and suggest the platforms
(from: %s) where that content would work best. Keep the item index and title unchanged.

ITEMS:
%s

Answer with JSON of the form {"analyses": [...]}, one entry per item.`

func ideasInstructions(req IdeaRequest, count int) string {
	var extra []string
	if req.Language != "" {
		extra = append(extra, "Write in this language: "+req.Language)
	}
	if req.Tone != "" {
		extra = append(extra, "Tone: "+req.Tone)
	}
	if req.TargetAudience != "" {
		extra = append(extra, "Target audience: "+req.TargetAudience)
	}
	if brand := BuildBrandPrompt(req.BrandContext); brand != "" {
		extra = append(extra, brand)
	}
	return fmt.Sprintf(ideasPrompt, count, req.Topic, strings.Join(extra, "\n"), strings.Join(model.Platforms, ", "))
}
