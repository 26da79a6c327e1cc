package format

import (
	"fmt"
	"strings"

	"transit-route-service/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

// Candidate renders a direct or connecting itinerary for console output.
// Station titles come from the raw provider payload; the city display names
// are fallbacks for records without them. Combined candidates are delegated
// to Combined with the transfer city taken from the candidate itself.
func Candidate(c domain.Candidate, originCity, destCity string) string {
	if c.Kind == domain.RouteCombined && c.FirstLeg != nil && c.SecondLeg != nil {
		return Combined(c, originCity, c.TransferCity, destCity)
	}

	if len(c.Segments) == 0 {
		return ""
	}

	numbers := make([]string, 0, len(c.Segments))
	transports := make([]string, 0, len(c.Segments))
	for _, seg := range c.Segments {
		numbers = append(numbers, orDefault(seg.Raw.Number, "N/A"))
		transports = append(transports, orDefault(seg.Raw.TransportType, "N/A"))
	}

	first := c.Segments[0]
	last := c.Segments[len(c.Segments)-1]

	stops := []string{orDefault(first.Raw.FromStation, originCity)}
	if c.Kind == domain.RouteConnecting {
		stops = append(stops, orDefault(c.TransferCity, "N/A"))
	}
	stops = append(stops, orDefault(last.Raw.ToStation, destCity))

	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", strings.Join(numbers, " / "))
	fmt.Fprintf(&b, "Transport: %s\n", strings.Join(transports, " / "))
	fmt.Fprintf(&b, "Route: %s\n", strings.Join(stops, " -> "))
	if c.Kind == domain.RouteConnecting {
		fmt.Fprintf(&b, "Transfer at: %s\n", orDefault(c.TransferCity, "N/A"))
	}
	fmt.Fprintf(&b, "Travel time: %.0f min\n", c.TotalDuration().Minutes())
	fmt.Fprintf(&b, "Departure: %s\n", c.Departure.Format(timeLayout))
	fmt.Fprintf(&b, "Arrival: %s\n", c.Arrival.Format(timeLayout))

	return b.String()
}

// Combined renders a two-leg itinerary as per-leg blocks plus the total.
func Combined(c domain.Candidate, originCity, transferCity, destCity string) string {
	if c.FirstLeg == nil || c.SecondLeg == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Leg 1 (%s to %s):\n%s\n", originCity, transferCity, Candidate(*c.FirstLeg, originCity, transferCity))
	fmt.Fprintf(&b, "Leg 2 (%s to %s):\n%s\n", transferCity, destCity, Candidate(*c.SecondLeg, transferCity, destCity))
	fmt.Fprintf(&b, "Total travel time: %.0f min\n", c.TotalDuration().Minutes())

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
