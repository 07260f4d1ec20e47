// Package websearch implements the generic web-research tools exposed to
// the Researcher agent (§5, tool catalog): a search call and a URL fetch
// call, both trimmed and cleaned before they ever reach a prompt.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tpham/dailycard/internal/telemetry"
)

const (
	maxResults    = 8
	maxSnippetLen = 400
	fetchTimeout  = 10 * time.Second
)

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher issues a query against a search backend and returns organic
// results. The concrete backend is injected so tests and the CLI can swap
// it without touching the dispatcher.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// HTTPSearcher calls a SearxNG-compatible JSON search endpoint — self-hosted
// search is the only option that doesn't require a commercial API key for
// the daily research volume this pipeline generates.
type HTTPSearcher struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSearcher(baseURL string, httpClient *http.Client) *HTTPSearcher {
	return &HTTPSearcher{baseURL: baseURL, httpClient: httpClient}
}

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (s *HTTPSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("websearch: build request: %w", err)
	}

	t0 := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: search request: %w", err)
	}
	defer resp.Body.Close()
	telemetry.Metrics.HTTPLatency.Record(time.Since(t0))

	var parsed searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("websearch: decode response: %w", err)
	}

	out := make([]Result, 0, maxResults)
	for i, r := range parsed.Results {
		if i >= maxResults {
			break
		}
		out = append(out, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: truncate(cleanText(r.Content), maxSnippetLen),
		})
	}
	return out, nil
}

// SearchGamePredictions and the helpers below are thin query-builders over
// a Searcher. The Researcher's tool handlers do not call them; they call
// Search and FetchURL directly.
func SearchGamePredictions(ctx context.Context, s Searcher, teamHome, teamAway string) ([]Result, error) {
	return s.Search(ctx, fmt.Sprintf("%s vs %s prediction pick odds", teamHome, teamAway))
}

func SearchTeamStats(ctx context.Context, s Searcher, team string) ([]Result, error) {
	return s.Search(ctx, fmt.Sprintf("%s advanced stats efficiency rating", team))
}

func SearchAdvancedStats(ctx context.Context, s Searcher, team string) ([]Result, error) {
	return s.Search(ctx, fmt.Sprintf("%s kenpom torvik adjusted efficiency", team))
}

// FetchURL retrieves a page and returns its cleaned, visible text content,
// trimmed before a dispatcher-level size cap is even considered (§5).
func FetchURL(ctx context.Context, httpClient *http.Client, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("websearch: build fetch request: %w", err)
	}
	req.Header.Set("User-Agent", "dailycard-research/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("websearch: fetch: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("websearch: parse html: %w", err)
	}

	doc.Find("script, style, nav, footer, header, noscript").Remove()
	text := cleanText(doc.Find("body").Text())
	return truncate(text, 6000), nil
}

func cleanText(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…[truncated]"
}
