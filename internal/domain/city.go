package domain

// A directory entry mapping a city display name to its provider identifier.
// Coordinates are optional; the provider omits them for some settlements.
type City struct {
	Name   string
	ID     string
	Coords *Coordinates
}
