package model

// Platforms a content idea may target.
var Platforms = []string{"linkedin", "twitter", "instagram", "facebook", "tiktok", "youtube"}

type ContentIdea struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Platform       string   `json:"platform"`
	EstimatedReach string   `json:"estimatedReach"`
	SuggestedTags  []string `json:"suggestedTags"`
	Rationale      string   `json:"rationale"`
}

// AnalysisItem is the relevance verdict for one trend, news article or video.
type AnalysisItem struct {
	Index              int      `json:"index"`
	Title              string   `json:"title"`
	RelevanceScore     int      `json:"relevanceScore"`
	IsRelevant         bool     `json:"isRelevant"`
	Reason             string   `json:"reason"`
	ContentAngle       string   `json:"contentAngle"`
	SuggestedPlatforms []string `json:"suggestedPlatforms"`
}

// ImageRequest carries the image synthesis parameters. Reference images are
// base64, optionally wrapped in a data URI.
type ImageRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model,omitempty"`
	CameraAngle    string `json:"cameraAngle,omitempty"`
	ImageStyle     string `json:"imageStyle,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	ProductImage   string `json:"productImage,omitempty"`
	PresenterImage string `json:"presenterImage,omitempty"`
}
