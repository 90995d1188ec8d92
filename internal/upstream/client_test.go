package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/socialhub/internal/apperr"
)

func TestGetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"status":"ok","totalResults":3}`))
	}))
	defer srv.Close()

	c := New("NewsAPI", srv.Client(), nil)
	var out struct {
		Status       string `json:"status"`
		TotalResults int    `json:"totalResults"`
	}
	err := c.GetJSON(context.Background(), srv.URL, http.Header{"X-Api-Key": {"secret"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, 3, out.TotalResults)
}

func TestGetJSON_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer srv.Close()

	c := New("NewsAPI", srv.Client(), nil)
	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)
	require.Error(t, err)

	e := apperr.From(err)
	assert.Equal(t, apperr.KindUpstream, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "Your API key is invalid.", e.Details)
}

func TestGetJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New("SerpApi", srv.Client(), nil)
	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)
	assert.True(t, apperr.IsKind(err, apperr.KindParse))
}

func TestGetJSON_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New("SerpApi", nil, nil)
	var out map[string]any
	err := c.GetJSON(context.Background(), url, nil, &out)
	require.Error(t, err)
	assert.Equal(t, "Failed to reach SerpApi", apperr.From(err).Message)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"quota exceeded"}`, "quota exceeded"},
		{"error string", `{"error":"Invalid API key."}`, "Invalid API key."},
		{"nested error", `{"error":{"code":403,"message":"forbidden"}}`, "forbidden"},
		{"not json", `Bad Gateway`, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage([]byte(tt.body)))
		})
	}
}
