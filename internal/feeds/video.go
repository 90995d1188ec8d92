package feeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/cache"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/metrics"
	"github.com/agenthands/socialhub/internal/model"
)

const (
	videoProvider = "YouTube"

	DefaultRegion     = "US"
	DefaultMaxResults = 10
	MaxMaxResults     = 50

	searchWindow = 7 * 24 * time.Hour
	watchURL     = "https://www.youtube.com/watch?v="
)

type VideoResult struct {
	Videos []model.VideoItem `json:"videos"`
	Count  int               `json:"count"`
	Cached bool              `json:"cached"`
}

type VideoService struct {
	yt     *youtube.Service
	cache  cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewVideoService builds the YouTube client. When no key is configured the
// service is still returned; every call then fails with a configuration error.
func NewVideoService(ctx context.Context, cfg config.ProviderConfig, c cache.Cache, log *zap.Logger) (*VideoService, error) {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &VideoService{cache: c, logger: log, now: time.Now}
	if !cfg.Configured() {
		return s, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	s.yt = yt
	return s, nil
}

// Trending returns the most-popular chart for a region.
func (s *VideoService) Trending(ctx context.Context, region, categoryID string, maxResults int) (*VideoResult, error) {
	if s.yt == nil {
		return nil, apperr.NotConfigured(videoProvider)
	}
	region = regionOrDefault(region)
	maxResults = clampResults(maxResults)

	key := fmt.Sprintf("youtube:trending:%s:%s:%d", region, categoryID, maxResults)
	var cached VideoResult
	if lookup(ctx, s.cache, s.logger, key, &cached) {
		cached.Cached = true
		return &cached, nil
	}

	call := s.yt.Videos.List([]string{"snippet", "statistics"}).
		Chart("mostPopular").
		RegionCode(region).
		MaxResults(int64(maxResults))
	if categoryID != "" {
		call = call.VideoCategoryId(categoryID)
	}

	var resp *youtube.VideoListResponse
	err := s.observe(func() (err error) {
		resp, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	result := newVideoResult(resp.Items)
	store(ctx, s.cache, s.logger, key, result, cache.TrendingTTL)
	return result, nil
}

// Search finds videos published in the last seven days ranked by views.
// The search endpoint has no statistics, so a second call fetches them.
func (s *VideoService) Search(ctx context.Context, q, region string, maxResults int) (*VideoResult, error) {
	if s.yt == nil {
		return nil, apperr.NotConfigured(videoProvider)
	}
	if q == "" {
		return nil, apperr.Validation("q is required for search mode")
	}
	region = regionOrDefault(region)
	maxResults = clampResults(maxResults)

	var found *youtube.SearchListResponse
	err := s.observe(func() (err error) {
		found, err = s.yt.Search.List([]string{"snippet"}).
			Q(q).
			Type("video").
			Order("viewCount").
			PublishedAfter(s.now().Add(-searchWindow).UTC().Format(time.RFC3339)).
			RegionCode(region).
			MaxResults(int64(maxResults)).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(found.Items))
	for _, item := range found.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return newVideoResult(nil), nil
	}

	var details *youtube.VideoListResponse
	err = s.observe(func() (err error) {
		details, err = s.yt.Videos.List([]string{"snippet", "statistics"}).
			Id(ids...).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*youtube.Video, len(details.Items))
	for _, v := range details.Items {
		byID[v.Id] = v
	}
	ordered := make([]*youtube.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return newVideoResult(ordered), nil
}

func (s *VideoService) observe(call func() error) error {
	start := time.Now()
	err := call()
	metrics.UpstreamDuration.WithLabelValues(videoProvider).Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.UpstreamRequests.WithLabelValues(videoProvider, metrics.OutcomeOK).Inc()
		return nil
	}
	metrics.UpstreamRequests.WithLabelValues(videoProvider, metrics.OutcomeError).Inc()

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		s.logger.Error("youtube returned error status", zap.Int("status", gerr.Code), zap.String("message", gerr.Message))
		return apperr.Upstream(videoProvider, gerr.Code, gerr.Message)
	}
	s.logger.Error("youtube request failed", zap.Error(err))
	return apperr.Transport(videoProvider, err)
}

func newVideoResult(items []*youtube.Video) *VideoResult {
	videos := make([]model.VideoItem, 0, len(items))
	for _, v := range items {
		videos = append(videos, toVideoItem(v))
	}
	return &VideoResult{Videos: videos, Count: len(videos)}
}

func toVideoItem(v *youtube.Video) model.VideoItem {
	item := model.VideoItem{ID: v.Id, URL: watchURL + v.Id, ViewCount: FormatCount(0)}
	if sn := v.Snippet; sn != nil {
		item.Title = sn.Title
		item.Channel = sn.ChannelTitle
		item.ChannelID = sn.ChannelId
		item.Description = sn.Description
		item.PublishedAt = sn.PublishedAt
		item.Thumbnail = thumbnail(sn.Thumbnails)
	}
	if st := v.Statistics; st != nil {
		item.ViewCountRaw = st.ViewCount
		item.ViewCount = FormatCount(st.ViewCount)
		item.LikeCount = st.LikeCount
		item.CommentCount = st.CommentCount
	}
	return item
}

func thumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func regionOrDefault(region string) string {
	if region == "" {
		return DefaultRegion
	}
	return region
}

func clampResults(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxMaxResults {
		return MaxMaxResults
	}
	return n
}
