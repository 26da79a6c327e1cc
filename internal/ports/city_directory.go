package ports

import "transit-route-service/internal/domain"

// Port: read-only lookup from city display names to directory entries.
// Implementations are fully loaded before any search begins and are never
// mutated afterwards; lookups are case-insensitive exact matches.
type CityDirectory interface {
	// Resolve a display name to its directory entry.
	Resolve(name string) (domain.City, bool)
}
