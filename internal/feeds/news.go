package feeds

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/cache"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/model"
	"github.com/agenthands/socialhub/internal/upstream"
)

const (
	newsProvider = "NewsAPI"

	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultCountry  = "us"

	removedTitle = "[Removed]"
)

// NewsQuery selects keyword search when Q is set and top headlines otherwise.
type NewsQuery struct {
	Q        string
	Category string
	Country  string
	Language string
	PageSize int
}

type NewsResult struct {
	Articles     []model.NewsArticle `json:"articles"`
	Count        int                 `json:"count"`
	TotalResults int                 `json:"totalResults"`
	Cached       bool                `json:"cached"`
}

type newsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

type NewsService struct {
	cfg    config.ProviderConfig
	client *upstream.Client
	cache  cache.Cache
	logger *zap.Logger
}

func NewNewsService(cfg config.ProviderConfig, httpClient *http.Client, c cache.Cache, log *zap.Logger) *NewsService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NewsService{
		cfg:    cfg,
		client: upstream.New(newsProvider, httpClient, log),
		cache:  c,
		logger: log,
	}
}

// Fetch calls exactly one upstream endpoint. Keyword searches are never
// cached; headline lookups are.
func (s *NewsService) Fetch(ctx context.Context, q NewsQuery) (*NewsResult, error) {
	if !s.cfg.Configured() {
		return nil, apperr.NotConfigured(newsProvider)
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(pageSize))

	var endpoint, key string
	if keyword := strings.TrimSpace(q.Q); keyword != "" {
		endpoint = "/v2/everything"
		params.Set("q", keyword)
		params.Set("sortBy", "publishedAt")
		if q.Language != "" {
			params.Set("language", q.Language)
		}
	} else {
		endpoint = "/v2/top-headlines"
		country := q.Country
		if country == "" {
			country = DefaultCountry
		}
		params.Set("country", country)
		if q.Category != "" {
			params.Set("category", q.Category)
		}
		key = "news:" + params.Encode()
	}

	if key != "" {
		var cached NewsResult
		if lookup(ctx, s.cache, s.logger, key, &cached) {
			cached.Cached = true
			return &cached, nil
		}
	}

	header := http.Header{}
	header.Set("X-Api-Key", s.cfg.APIKey)

	var resp newsAPIResponse
	if err := s.client.GetJSON(ctx, s.cfg.BaseURL+endpoint+"?"+params.Encode(), header, &resp); err != nil {
		return nil, err
	}

	articles := make([]model.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" || a.Title == removedTitle {
			continue
		}
		articles = append(articles, model.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			Author:      a.Author,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
		})
	}

	result := &NewsResult{Articles: articles, Count: len(articles), TotalResults: resp.TotalResults}
	if key != "" {
		store(ctx, s.cache, s.logger, key, result, cache.NewsTTL)
	}
	return result, nil
}
