package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rwxproject/agent-toolkit/pkg/validate"
)

// DefaultMaxResults 未指定 max_results 時的預設回傳筆數
const DefaultMaxResults = 5

// SearchResult is one entry of the web search output.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// WebSearchTool returns deterministic synthetic results. It stands in for a
// real search backend: the input/output shapes and the truncation semantics
// are the contract any real implementation must preserve.
type WebSearchTool struct{}

// NewWebSearchTool creates a web search stub tool
func NewWebSearchTool() *WebSearchTool {
	return &WebSearchTool{}
}

func (t *WebSearchTool) Name() string {
	return "web_search"
}

func (t *WebSearchTool) Description() string {
	return "Searches the web for the given query and returns result links with snippets."
}

func (t *WebSearchTool) Parameters() map[string]any {
	return map[string]any{
		"query": map[string]any{
			"type":        "string",
			"description": "The search query text.",
		},
		"max_results": map[string]any{
			"type":        "integer",
			"minimum":     1,
			"maximum":     10,
			"description": "Maximum number of results to return (1-10, default 5).",
		},
	}
}

func (t *WebSearchTool) RequiredParameters() []string {
	return []string{"query"}
}

// Execute synthesizes at most two results derived from the query text and
// truncates them to max_results.
func (t *WebSearchTool) Execute(ctx context.Context, args map[string]any) (*ToolResult, error) {
	query, _ := args["query"].(string)

	maxResults := DefaultMaxResults
	if raw, ok := args["max_results"]; ok {
		n, numeric := toInt(raw)
		if !numeric {
			return nil, &validate.FieldError{Field: "max_results", Value: raw, Constraint: "must be an integer"}
		}
		if err := validate.IntRange("max_results", n, 1, 10); err != nil {
			return nil, err
		}
		maxResults = n
	}

	results := []SearchResult{
		{
			Title:   fmt.Sprintf("Result 1 for '%s'", query),
			URL:     "https://example.com/result-1",
			Snippet: fmt.Sprintf("This is a placeholder snippet mentioning '%s'.", query),
		},
		{
			Title:   fmt.Sprintf("Result 2 for '%s'", query),
			URL:     "https://example.com/result-2",
			Snippet: fmt.Sprintf("Another synthetic result derived from '%s'.", query),
		},
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s (%s)\n   %s", i+1, r.Title, r.URL, r.Snippet)
	}

	res := NewTextResult(sb.String())
	res.Details = map[string]any{
		"query":   query,
		"results": results,
		"count":   len(results),
	}
	return res, nil
}

// toInt accepts the integer representations an argument map realistically
// carries: float64 from JSON decoding (only when integral), plus Go ints.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
