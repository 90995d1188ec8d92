package model

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

type MentionRecord struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Platform     string    `json:"platform"`
	Sentiment    string    `json:"sentiment"`
	Engagement   int       `json:"engagement"`
	IsCompetitor bool      `json:"isCompetitor"`
	Timestamp    time.Time `json:"timestamp"`
}
