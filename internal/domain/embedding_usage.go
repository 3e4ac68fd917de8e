package domain

import (
	"context"
	"sync/atomic"
)

type usageKey struct{}

// EmbeddingUsage tallies provider tokens spent while serving one search.
// The caller attaches it to the request context; the embedding decorator
// writes to it, possibly from another goroutine.
type EmbeddingUsage struct {
	tokens atomic.Int64
	called atomic.Bool
}

// NewContextWithUsage attaches a fresh collector to ctx.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := new(EmbeddingUsage)
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext returns the collector on ctx, or nil.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(usageKey{}).(*EmbeddingUsage)
	return u
}

// AddTokens records an embedding call. n may be zero for cache hits.
// Safe on a nil receiver.
func (u *EmbeddingUsage) AddTokens(n int) {
	if u == nil {
		return
	}
	u.tokens.Add(int64(n))
	u.called.Store(true)
}

// Tokens reports the tokens recorded so far.
func (u *EmbeddingUsage) Tokens() int {
	if u == nil {
		return 0
	}
	return int(u.tokens.Load())
}

// Used reports whether any embedding call was made.
func (u *EmbeddingUsage) Used() bool {
	return u != nil && u.called.Load()
}
