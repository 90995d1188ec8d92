package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/cache"
	"github.com/agenthands/socialhub/internal/config"
)

const newsBody = `{
	"status": "ok",
	"totalResults": 3,
	"articles": [
		{"source": {"id": null, "name": "Reuters"}, "author": "Jane", "title": "Coffee prices rise",
		 "description": "d1", "url": "https://example.com/1", "urlToImage": "https://example.com/1.jpg",
		 "publishedAt": "2024-05-01T10:00:00Z"},
		{"source": {"name": "[Removed]"}, "title": "[Removed]", "url": "https://removed.com"},
		{"source": {"name": "BBC"}, "author": null, "title": "Tea makes a comeback",
		 "description": null, "url": "https://example.com/2", "urlToImage": null,
		 "publishedAt": "2024-05-01T09:00:00Z"}
	]
}`

func newsServer(t *testing.T, hits *int32, paths *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		*paths = append(*paths, r.URL.Path+"?"+r.URL.RawQuery)
		assert.Equal(t, "news-key", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(newsBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNews_NotConfigured(t *testing.T) {
	var hits int32
	var paths []string
	srv := newsServer(t, &hits, &paths)
	svc := NewNewsService(config.ProviderConfig{BaseURL: srv.URL}, nil, nil, nil)

	_, err := svc.Fetch(context.Background(), NewsQuery{Q: "coffee"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfig, apperr.From(err).Kind)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestNews_KeywordSearch(t *testing.T) {
	var hits int32
	var paths []string
	srv := newsServer(t, &hits, &paths)
	svc := NewNewsService(config.ProviderConfig{APIKey: "news-key", BaseURL: srv.URL}, nil, nil, nil)

	res, err := svc.Fetch(context.Background(), NewsQuery{Q: "coffee", PageSize: 500, Category: "ignored"})
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, "/v2/everything?pageSize=100&q=coffee&sortBy=publishedAt", paths[0])

	require.Len(t, res.Articles, 2)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 3, res.TotalResults)
	assert.Equal(t, "Reuters", res.Articles[0].Source)
	assert.Equal(t, "https://example.com/1.jpg", res.Articles[0].ImageURL)
	assert.Equal(t, "Tea makes a comeback", res.Articles[1].Title)
	assert.Empty(t, res.Articles[1].Author)
}

func TestNews_HeadlinesDefaultsAndCache(t *testing.T) {
	var hits int32
	var paths []string
	srv := newsServer(t, &hits, &paths)
	mr := miniredis.RunT(t)
	rc := cache.NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	svc := NewNewsService(config.ProviderConfig{APIKey: "news-key", BaseURL: srv.URL}, nil, rc, nil)
	ctx := context.Background()

	res, err := svc.Fetch(ctx, NewsQuery{Category: "technology"})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "/v2/top-headlines?category=technology&country=us&pageSize=20", paths[0])

	res, err = svc.Fetch(ctx, NewsQuery{Category: "technology"})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// Keyword searches always go upstream.
	_, err = svc.Fetch(ctx, NewsQuery{Q: "tea"})
	require.NoError(t, err)
	_, err = svc.Fetch(ctx, NewsQuery{Q: "tea"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestNews_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer srv.Close()

	svc := NewNewsService(config.ProviderConfig{APIKey: "news-key", BaseURL: srv.URL}, nil, nil, nil)
	_, err := svc.Fetch(context.Background(), NewsQuery{})
	require.Error(t, err)
	assert.Equal(t, "Your API key is invalid.", apperr.From(err).Details)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Status)
}
