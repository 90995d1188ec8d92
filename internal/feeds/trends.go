// Package feeds wraps the read-only data providers: search trends, news
// headlines and video charts.
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/cache"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/model"
	"github.com/agenthands/socialhub/internal/upstream"
)

const (
	trendsProvider = "SerpApi"

	MaxTrends    = 15
	DefaultGeo   = "US"
	DefaultHours = 24
)

type TrendsResult struct {
	Trends []model.TrendItem `json:"trends"`
	Count  int               `json:"count"`
	Cached bool              `json:"cached"`
}

type serpTrendsResponse struct {
	TrendingSearches []struct {
		Query              string `json:"query"`
		StartTimestamp     int64  `json:"start_timestamp"`
		SearchVolume       int64  `json:"search_volume"`
		IncreasePercentage int    `json:"increase_percentage"`
		Categories         []struct {
			Name string `json:"name"`
		} `json:"categories"`
		TrendBreakdown []string `json:"trend_breakdown"`
	} `json:"trending_searches"`
}

type TrendsService struct {
	cfg    config.ProviderConfig
	client *upstream.Client
	cache  cache.Cache
	logger *zap.Logger
}

func NewTrendsService(cfg config.ProviderConfig, httpClient *http.Client, c cache.Cache, log *zap.Logger) *TrendsService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TrendsService{
		cfg:    cfg,
		client: upstream.New(trendsProvider, httpClient, log),
		cache:  c,
		logger: log,
	}
}

// Fetch returns at most MaxTrends trending searches for geo over the last
// hours, in provider order.
func (s *TrendsService) Fetch(ctx context.Context, geo string, hours int) (*TrendsResult, error) {
	if !s.cfg.Configured() {
		return nil, apperr.NotConfigured(trendsProvider)
	}
	if geo == "" {
		geo = DefaultGeo
	}
	if hours <= 0 {
		hours = DefaultHours
	}

	key := fmt.Sprintf("trends:%s:%d", geo, hours)
	var cached TrendsResult
	if hit := lookup(ctx, s.cache, s.logger, key, &cached); hit {
		cached.Cached = true
		return &cached, nil
	}

	q := url.Values{}
	q.Set("engine", "google_trends_trending_now")
	q.Set("geo", geo)
	q.Set("hours", strconv.Itoa(hours))
	q.Set("api_key", s.cfg.APIKey)

	var resp serpTrendsResponse
	if err := s.client.GetJSON(ctx, s.cfg.BaseURL+"/search.json?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	searches := resp.TrendingSearches
	if len(searches) > MaxTrends {
		searches = searches[:MaxTrends]
	}
	trends := make([]model.TrendItem, 0, len(searches))
	for _, t := range searches {
		categories := make([]string, 0, len(t.Categories))
		for _, c := range t.Categories {
			categories = append(categories, c.Name)
		}
		related := t.TrendBreakdown
		if related == nil {
			related = []string{}
		}
		trends = append(trends, model.TrendItem{
			Query:              t.Query,
			Traffic:            FormatTraffic(t.SearchVolume),
			TrafficValue:       t.SearchVolume,
			IncreasePercentage: t.IncreasePercentage,
			Categories:         categories,
			StartedAt:          t.StartTimestamp,
			RelatedQueries:     related,
		})
	}

	result := &TrendsResult{Trends: trends, Count: len(trends)}
	store(ctx, s.cache, s.logger, key, result, cache.TrendsTTL)
	return result, nil
}

// lookup treats cache failures as misses.
func lookup(ctx context.Context, c cache.Cache, log *zap.Logger, key string, dst any) bool {
	hit, err := c.Get(ctx, key, dst)
	if err != nil {
		log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func store(ctx context.Context, c cache.Cache, log *zap.Logger, key string, value any, ttl time.Duration) {
	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}
