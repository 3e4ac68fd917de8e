package carefinder

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
)

// Search turns a free-text request into ranked services. A blank query
// returns an empty response without touching the directory.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if opts == nil {
		opts = &SearchOptions{}
	}
	req, err := request.New(query, opts.Limit, opts.PreferLocation)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	ctx, usage := domain.NewContextWithUsage(ctx)
	results, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	out := fromResults(results)
	c.obs.results(out)
	return SearchResponse{
		Results:         out,
		EmbeddingTokens: usage.Tokens(),
		EmbeddingUsed:   usage.Used(),
	}, nil
}
