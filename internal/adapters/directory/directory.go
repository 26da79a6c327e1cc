package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"transit-route-service/internal/domain"
	"transit-route-service/internal/ports"
)

// Directory is an immutable in-memory city directory.
// It is fully populated before any search begins and never mutated after,
// so concurrent lookups need no locking. When the data source lists a city
// name more than once, the first entry wins.
type Directory struct {
	byName map[string]domain.City
}

func NewDirectory(cities []domain.City) *Directory {
	byName := make(map[string]domain.City, len(cities))
	for _, city := range cities {
		key := normalizeName(city.Name)
		if key == "" {
			continue
		}
		if _, ok := byName[key]; ok {
			continue
		}
		byName[key] = city
	}
	return &Directory{byName: byName}
}

// normalizeName collapses whitespace and lowercases for consistent lookup keys.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Resolve looks up a city by display name, case-insensitively.
func (d *Directory) Resolve(name string) (domain.City, bool) {
	city, ok := d.byName[normalizeName(name)]
	return city, ok
}

// Len reports how many distinct city names are loaded.
func (d *Directory) Len() int {
	return len(d.byName)
}

// Fetcher downloads the full city list from the data source.
type Fetcher interface {
	FetchCities(ctx context.Context) ([]domain.City, error)
}

// Load builds the directory, preferring the cache over a full download.
// Cache read failures fall back to the data source; cache write failures are
// logged and ignored. A nil cache skips caching entirely.
func Load(ctx context.Context, fetcher Fetcher, cache ports.DirectoryCache) (*Directory, error) {
	if cache != nil {
		cities, err := cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("directory cache read failed")
		} else if len(cities) > 0 {
			return NewDirectory(cities), nil
		}
	}

	cities, err := fetcher.FetchCities(ctx)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, errors.New("load directory: data source returned no cities")
	}

	if cache != nil {
		if err := cache.Put(ctx, cities); err != nil {
			log.Warn().Err(err).Msg("directory cache write failed")
		}
	}

	return NewDirectory(cities), nil
}
