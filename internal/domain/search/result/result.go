package result

import (
	"github.com/kailas-cloud/carefinder/internal/domain/search/mode"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// Result is a single ranked directory hit.
type Result struct {
	record service.Record
	base   float64
	boost  float64
	score  float64
	source mode.Mode
}

// New creates a vector result with the given similarity and no boost.
// Similarity is clamped to [0, 1].
func New(rec service.Record, similarity float64) Result {
	s := clamp01(similarity)
	return Result{record: rec, base: s, score: s, source: mode.Vector}
}

// FromKeyword wraps a keyword-search record. Keyword hits carry no scores.
func FromKeyword(rec service.Record) Result {
	return Result{record: rec, source: mode.Keyword}
}

// Boosted returns a copy with the location boost applied. The final score is
// base plus boost, capped at 1.
func (r Result) Boosted(boost float64) Result {
	if boost < 0 {
		boost = 0
	}
	r.boost = boost
	r.score = min(1, r.base+boost)
	return r
}

// Record returns the directory entry.
func (r *Result) Record() service.Record { return r.record }

// ID returns the record identifier.
func (r *Result) ID() string { return r.record.ID }

// BaseScore returns the raw similarity before boosting.
func (r *Result) BaseScore() float64 { return r.base }

// Boost returns the applied location boost.
func (r *Result) Boost() float64 { return r.boost }

// Score returns the final score.
func (r *Result) Score() float64 { return r.score }

// Source returns the retrieval path.
func (r *Result) Source() mode.Mode { return r.source }

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
