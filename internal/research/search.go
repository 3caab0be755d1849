package research

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// SearchResult is one web search hit.
type SearchResult struct {
	Title string
	Link  string
}

// Searcher finds pages on the web.
type Searcher interface {
	Search(ctx context.Context, query string, limit int64) ([]SearchResult, error)
}

// GoogleSearcher searches with the Google Custom Search JSON API.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a searcher for the given API key and engine id.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine id are required")
	}
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// Search returns up to limit results for query.
func (g *GoogleSearcher) Search(ctx context.Context, query string, limit int64) ([]SearchResult, error) {
	resp, err := g.svc.Cse.List().Cx(g.cx).Q(query).Num(limit).Context(ctx).Do()
	if err != nil {
		return nil, &SearchError{Query: query, Cause: err}
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		results = append(results, SearchResult{Title: item.Title, Link: item.Link})
	}
	return results, nil
}
