package directory

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/carefinder/internal/db/postgrest"
	"github.com/kailas-cloud/carefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// store is the consumer interface for the PostgREST client (ISP).
type store interface {
	Select(ctx context.Context, table string, params url.Values) ([]byte, error)
	RPC(ctx context.Context, fn string, args any) ([]byte, error)
}

// Repo implements the directory store contracts of the directory,
// ranking and health use cases.
type Repo struct {
	store   store
	table   string
	matchFn string
}

// New creates a directory repository over table, using matchFn for similarity search.
func New(s store, table, matchFn string) *Repo {
	return &Repo{store: s, table: table, matchFn: matchFn}
}

// FilteredQuery returns up to limit records matching expr, in store order.
func (r *Repo) FilteredQuery(ctx context.Context, expr filter.Expression, limit int) ([]service.Record, error) {
	params := postgrest.Encode(expr)
	params.Set("select", selectColumns)
	params.Set("limit", strconv.Itoa(limit))

	data, err := r.store.Select(ctx, r.table, params)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table, err)
	}
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]service.Record, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toRecord())
	}
	return out, nil
}

type matchArgs struct {
	QueryEmbedding []float32 `json:"query_embedding"`
	MatchThreshold float64   `json:"match_threshold"`
	MatchCount     int       `json:"match_count"`
}

// SimilaritySearch returns up to limit records whose similarity to embedding
// is at least threshold, scored by that similarity.
func (r *Repo) SimilaritySearch(
	ctx context.Context, embedding []float32, threshold float64, limit int,
) ([]result.Result, error) {
	data, err := r.store.RPC(ctx, r.matchFn, matchArgs{
		QueryEmbedding: embedding,
		MatchThreshold: threshold,
		MatchCount:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("rpc %s: %w", r.matchFn, err)
	}
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]result.Result, 0, len(rows))
	for i := range rows {
		var sim float64
		if rows[i].Similarity != nil {
			sim = *rows[i].Similarity
		}
		out = append(out, result.New(rows[i].toRecord(), sim))
	}
	return out, nil
}

// Ping checks that the table is reachable with a one-row select.
func (r *Repo) Ping(ctx context.Context) error {
	params := url.Values{"select": {service.FieldID}, "limit": {"1"}}
	if _, err := r.store.Select(ctx, r.table, params); err != nil {
		return fmt.Errorf("ping %s: %w", r.table, err)
	}
	return nil
}
