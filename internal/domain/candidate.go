package domain

import "time"

// RouteKind distinguishes the three itinerary shapes the planner produces.
type RouteKind string

const (
	RouteDirect     RouteKind = "direct"
	RouteConnecting RouteKind = "connecting"
	RouteCombined   RouteKind = "combined"
)

// Represents a complete, rankable itinerary.
// A direct candidate holds one segment, a connecting candidate two segments
// joined at TransferCity, and a combined candidate two independently planned
// legs (each itself a Candidate) joined at TransferCity. Legs are owned by
// value and never shared between candidates.
type Candidate struct {
	Kind         RouteKind
	Departure    time.Time
	Arrival      time.Time
	Segments     []Segment
	TransferCity string
	FirstLeg     *Candidate
	SecondLeg    *Candidate
}

// NewDirect builds a single-segment candidate.
func NewDirect(seg Segment) Candidate {
	return Candidate{
		Kind:      RouteDirect,
		Departure: seg.Departure,
		Arrival:   seg.Arrival,
		Segments:  []Segment{seg},
	}
}

// NewConnecting builds a two-segment candidate joined at transferCity.
func NewConnecting(first, second Segment, transferCity string) Candidate {
	return Candidate{
		Kind:         RouteConnecting,
		Departure:    first.Departure,
		Arrival:      second.Arrival,
		Segments:     []Segment{first, second},
		TransferCity: transferCity,
	}
}

// NewCombined composes two planned legs joined at transferCity.
// Each leg is copied so the combined candidate owns its constituents.
func NewCombined(firstLeg, secondLeg Candidate, transferCity string) Candidate {
	f := firstLeg
	s := secondLeg
	return Candidate{
		Kind:         RouteCombined,
		Departure:    f.Departure,
		Arrival:      s.Arrival,
		TransferCity: transferCity,
		FirstLeg:     &f,
		SecondLeg:    &s,
	}
}

// TotalDuration is always derived from the overall departure and arrival.
func (c Candidate) TotalDuration() time.Duration {
	return c.Arrival.Sub(c.Departure)
}

// FirstMode returns the transport mode of the segment that actually departs
// first, recursing into nested legs. Transfer feasibility is evaluated between
// the segments at the junction, not between legs as opaque units.
func (c Candidate) FirstMode() TransportMode {
	if c.FirstLeg != nil {
		return c.FirstLeg.FirstMode()
	}
	if len(c.Segments) == 0 {
		return ModeOther
	}
	return c.Segments[0].Mode
}

// LastMode returns the transport mode of the segment that arrives last,
// recursing into nested legs.
func (c Candidate) LastMode() TransportMode {
	if c.SecondLeg != nil {
		return c.SecondLeg.LastMode()
	}
	if len(c.Segments) == 0 {
		return ModeOther
	}
	return c.Segments[len(c.Segments)-1].Mode
}
