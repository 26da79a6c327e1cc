package domain

import "time"

// RawLeg is the opaque display payload carried from the provider record.
// The planning logic never inspects it; it exists so a selected itinerary can
// be rendered with carrier numbers and station names.
type RawLeg struct {
	Number        string
	TransportType string
	FromStation   string
	ToStation     string
}

// Represents one directly-operated travel leg between two locations.
// A Segment is immutable planning data; it is created at the data-source
// boundary and records with missing timestamps, unparsable timestamps or a
// non-positive duration never become Segments.
type Segment struct {
	Departure time.Time
	Arrival   time.Time
	Mode      TransportMode
	Raw       RawLeg
}

// Duration is always derived from the timestamps, never stored.
func (s Segment) Duration() time.Duration {
	return s.Arrival.Sub(s.Departure)
}
