package model

// BrandContext is the brand profile snapshot a caller attaches to AI requests.
type BrandContext struct {
	Name           string         `json:"name"`
	Industry       string         `json:"industry,omitempty"`
	Tagline        string         `json:"tagline,omitempty"`
	USP            string         `json:"usp,omitempty"`
	Voice          BrandVoice     `json:"voice"`
	TargetAudience TargetAudience `json:"targetAudience"`
	Values         []string       `json:"values,omitempty"`
}

type BrandVoice struct {
	Tone        string   `json:"tone,omitempty"`
	Personality []string `json:"personality,omitempty"`
	AvoidWords  []string `json:"avoidWords,omitempty"`
}

type TargetAudience struct {
	Demographics string   `json:"demographics,omitempty"`
	AgeRange     string   `json:"ageRange,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	PainPoints   []string `json:"painPoints,omitempty"`
}
