package ports

import (
	"context"

	"transit-route-service/internal/domain"
)

// Port: a persistent cache for the downloaded city directory, so restarts do
// not re-fetch the full settlement list from the data source.
type DirectoryCache interface {
	// Get returns the cached city list, or an empty slice on a miss.
	Get(ctx context.Context) ([]domain.City, error)
	// Put stores the full city list, replacing any previous contents.
	Put(ctx context.Context, cities []domain.City) error
}
