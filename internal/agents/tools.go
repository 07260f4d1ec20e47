package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tpham/dailycard/internal/agent"
	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/websearch"
)

// ResearchTools builds the Researcher's tool catalog: search_web and
// fetch_url (§5 tool catalog), backed by a real search client and the
// shared HTTP client the rest of the pipeline uses.
func ResearchTools(searcher websearch.Searcher, httpClient *http.Client) ([]llm.Tool, map[string]agent.ToolHandler) {
	tools := []llm.Tool{
		{
			Name:        "search_web",
			Description: "Search the web for a query and return the top organic results with title, url, and snippet.",
			Parameters: &llm.Schema{
				Type:       "object",
				Properties: map[string]*llm.Schema{"query": str("search query")},
				Required:   []string{"query"},
			},
		},
		{
			Name:        "fetch_url",
			Description: "Fetch a URL and return its cleaned visible text content.",
			Parameters: &llm.Schema{
				Type:       "object",
				Properties: map[string]*llm.Schema{"url": str("the URL to fetch")},
				Required:   []string{"url"},
			},
		},
	}

	handlers := map[string]agent.ToolHandler{
		"search_web": func(ctx context.Context, call llm.ToolCall) (string, error) {
			query, _ := call.Arguments["query"].(string)
			if query == "" {
				return "", fmt.Errorf("search_web: missing query argument")
			}
			results, err := searcher.Search(ctx, query)
			if err != nil {
				return "", err
			}
			b, err := json.Marshal(results)
			return string(b), err
		},
		"fetch_url": func(ctx context.Context, call llm.ToolCall) (string, error) {
			target, _ := call.Arguments["url"].(string)
			if target == "" {
				return "", fmt.Errorf("fetch_url: missing url argument")
			}
			return websearch.FetchURL(ctx, httpClient, target)
		},
	}

	return tools, handlers
}
