// Command smoke drives every endpoint of a running gateway and reports
// which ones answered as expected.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/agenthands/socialhub/internal/logger"
)

type step struct {
	name    string
	method  string
	path    string
	payload any
	// accept lists the statuses counted as a pass. Provider endpoints also
	// accept the not-configured answer.
	accept []int
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "gateway base URL")
	wait := flag.Duration("wait", 2*time.Second, "delay before the first request")
	flag.Parse()

	time.Sleep(*wait)
	fmt.Println("Starting smoke test against", *baseURL)

	ok := []int{http.StatusOK}
	orUnconfigured := []int{http.StatusOK, http.StatusInternalServerError}

	steps := []step{
		{"health", "GET", "/health", nil, ok},
		{"content ideas", "POST", "/api/ai/ideas", map[string]any{"topic": "Coffee"}, ok},
		{"ideas validation", "POST", "/api/ai/ideas", map[string]any{}, []int{http.StatusBadRequest}},
		{"content analysis", "POST", "/api/ai/analyze", map[string]any{
			"items": []map[string]string{{"title": "Coffee prices rise"}}, "industry": "Food", "type": "news",
		}, orUnconfigured},
		{"image", "POST", "/api/ai/image", map[string]any{"prompt": "A latte on a wooden table", "imageStyle": "photorealistic"},
			[]int{http.StatusOK, http.StatusServiceUnavailable}},
		{"mentions generate", "POST", "/api/mentions/generate", map[string]any{
			"brandName": "Brewly", "industry": "coffee", "competitors": []string{"Acme"}, "count": 4,
		}, ok},
		{"mentions analyze", "POST", "/api/mentions/analyze", map[string]any{
			"mentions": []map[string]string{{"sentiment": "negative"}, {"sentiment": "positive"}},
		}, ok},
		{"trends", "GET", "/api/trends?geo=US&hours=24", nil, orUnconfigured},
		{"news headlines", "GET", "/api/news?category=technology", nil, orUnconfigured},
		{"news search", "GET", "/api/news?q=coffee", nil, orUnconfigured},
		{"youtube trending", "GET", "/api/youtube?mode=trending", nil, orUnconfigured},
		{"youtube search", "GET", "/api/youtube?mode=search&q=coffee", nil, orUnconfigured},
		{"scheduling profiles", "GET", "/api/scheduling/profiles", nil, orUnconfigured},
		{"scheduling posts validation", "POST", "/api/scheduling/posts", map[string]any{"content": "hi"},
			[]int{http.StatusBadRequest, http.StatusInternalServerError}},
	}

	failed := 0
	client := &http.Client{Timeout: 90 * time.Second}
	for i, s := range steps {
		fmt.Printf("%d. %s...\n", i+1, s.name)
		status, body, err := send(client, *baseURL, s)
		if err != nil {
			fmt.Printf("FAILED: %s: %v\n", s.name, err)
			failed++
			continue
		}
		if !slices.Contains(s.accept, status) {
			fmt.Printf("FAILED: %s: status %d: %s\n", s.name, status, logger.Truncate(body, 300))
			failed++
			continue
		}
		fmt.Printf("PASSED: %s (%d) %s\n", s.name, status, logger.Truncate(body, 120))
	}

	if failed > 0 {
		fmt.Printf("%d of %d checks failed\n", failed, len(steps))
		os.Exit(1)
	}
	fmt.Println("All checks passed")
}

func send(client *http.Client, baseURL string, s step) (int, string, error) {
	var body io.Reader
	if s.payload != nil {
		data, err := json.Marshal(s.payload)
		if err != nil {
			return 0, "", err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(s.method, baseURL+s.path, body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(respBody), nil
}
