package model

type TrendItem struct {
	Query              string   `json:"query"`
	Traffic            string   `json:"traffic"`
	TrafficValue       int64    `json:"trafficValue"`
	IncreasePercentage int      `json:"increasePercentage"`
	Categories         []string `json:"categories"`
	StartedAt          int64    `json:"startedAt,omitempty"`
	RelatedQueries     []string `json:"relatedQueries"`
}

type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Author      string `json:"author,omitempty"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PublishedAt string `json:"publishedAt"`
}

type VideoItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	ChannelID    string `json:"channelId"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	PublishedAt  string `json:"publishedAt"`
	ViewCount    string `json:"viewCount"`
	ViewCountRaw uint64 `json:"viewCountRaw"`
	LikeCount    uint64 `json:"likeCount"`
	CommentCount uint64 `json:"commentCount"`
	URL          string `json:"url"`
}
