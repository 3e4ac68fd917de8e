package directory

import (
	"context"

	"github.com/kailas-cloud/carefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// Store runs filter queries against the service directory.
type Store interface {
	FilteredQuery(ctx context.Context, expr filter.Expression, limit int) ([]service.Record, error)
}
