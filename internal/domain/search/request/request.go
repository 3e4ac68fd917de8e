package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/carefinder/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in characters.
	MaxQueryLength = 1000
	DefaultLimit   = 10
	MaxLimit       = 50
)

// Request is a validated search query.
type Request struct {
	query          string
	limit          int
	preferLocation bool
}

// New validates and normalizes search parameters. A blank query is valid and
// yields no results downstream. Limit defaults to 10 and is clamped to 50.
func New(query string, limit int, preferLocation bool) (Request, error) {
	query = strings.TrimSpace(query)
	if n := len([]rune(query)); n > MaxQueryLength {
		return Request{}, fmt.Errorf("%w (max %d chars, got %d)", domain.ErrQueryTooLong, MaxQueryLength, n)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, limit: limit, preferLocation: preferLocation}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// PreferLocation reports whether location matches should be favoured even
// without an explicit proximity word.
func (r *Request) PreferLocation() bool { return r.preferLocation }

// IsBlank reports whether there is nothing to search for.
func (r *Request) IsBlank() bool { return r.query == "" }
