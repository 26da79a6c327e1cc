package services

import (
	"context"
	"testing"
	"time"

	"transit-route-service/internal/adapters/directory"
	"transit-route-service/internal/adapters/schedule"
	"transit-route-service/internal/domain"
	"transit-route-service/internal/ports"
)

func testDirectory() *directory.Directory {
	return directory.NewDirectory([]domain.City{
		{Name: "A", ID: "c1"},
		{Name: "B", ID: "c2"},
		{Name: "C", ID: "c3"},
		{Name: "D", ID: "c4"},
		{Name: "T", ID: "c5"},
	})
}

func TestDirectResultSkipsConnectingSearch(t *testing.T) {
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				// Deliberately slow direct service.
				{Departure: "2025-04-01T08:00:00", Arrival: "2025-04-01T20:00:00", TransportType: "train", Number: "016A"},
			},
		},
		// A much faster feasible connection exists but must never be searched.
		{
			From: "c1", To: "c3", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T08:00:00", Arrival: "2025-04-01T09:00:00", TransportType: "bus"},
			},
		},
		{
			From: "c3", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T09:30:00", Arrival: "2025-04-01T10:30:00", TransportType: "bus"},
			},
		},
	})

	search := NewRouteSearch(provider, testDirectory(), []string{"C"})
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 3, nil)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Kind != domain.RouteDirect {
		t.Fatalf("kind = %s, want direct", candidates[0].Kind)
	}

	if queries := provider.Queries(); len(queries) != 1 {
		t.Fatalf("expected only the direct query, got %v", queries)
	}
}

func TestConnectingSearchFiltersByRequiredWait(t *testing.T) {
	// No direct A -> B segments. Origin -> C arrives 10:00 by train; the
	// 11:30 onward bus leaves a 1h30m gap (train->bus needs 2h) and must be
	// rejected, the 12:05 one (2h05m) accepted.
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c3", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T06:00:00", Arrival: "2025-04-01T10:00:00", TransportType: "train", Number: "102"},
			},
		},
		{
			From: "c3", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T11:30:00", Arrival: "2025-04-01T13:30:00", TransportType: "bus", Number: "510"},
				{Departure: "2025-04-01T12:05:00", Arrival: "2025-04-01T14:05:00", TransportType: "bus", Number: "511"},
			},
		},
	})

	search := NewRouteSearch(provider, testDirectory(), []string{"C"})
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 3, nil)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 connecting candidate, got %d", len(candidates))
	}

	got := candidates[0]
	if got.Kind != domain.RouteConnecting {
		t.Fatalf("kind = %s, want connecting", got.Kind)
	}
	if got.TransferCity != "C" {
		t.Fatalf("transfer city = %q, want C", got.TransferCity)
	}
	if len(got.Segments) != 2 || got.Segments[1].Raw.Number != "511" {
		t.Fatalf("wrong second leg: %+v", got.Segments)
	}
}

func TestConnectingFeasibilityBoundary(t *testing.T) {
	// Gap exactly equal to the required wait is feasible; one minute less
	// is not. Train -> train requires 2h after a 10:00 arrival.
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c3", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T07:00:00", Arrival: "2025-04-01T10:00:00", TransportType: "train"},
			},
		},
		{
			From: "c3", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T11:59:00", Arrival: "2025-04-01T15:00:00", TransportType: "train", Number: "reject"},
				{Departure: "2025-04-01T12:00:00", Arrival: "2025-04-01T15:30:00", TransportType: "train", Number: "accept"},
			},
		},
	})

	search := NewRouteSearch(provider, testDirectory(), []string{"C"})
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 3, nil)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if got := candidates[0].Segments[1].Raw.Number; got != "accept" {
		t.Fatalf("accepted second leg = %q, want the exact-gap one", got)
	}
}

func TestResultsSortedAscendingAndCapped(t *testing.T) {
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T08:00:00", Arrival: "2025-04-01T14:00:00", TransportType: "train", Number: "slow"},
				{Departure: "2025-04-01T09:00:00", Arrival: "2025-04-01T11:00:00", TransportType: "train", Number: "fast"},
				{Departure: "2025-04-01T10:00:00", Arrival: "2025-04-01T14:00:00", TransportType: "train", Number: "mid"},
			},
		},
	})

	search := NewRouteSearch(provider, testDirectory(), nil)
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 2, nil)

	if len(candidates) != 2 {
		t.Fatalf("expected topN=2 candidates, got %d", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].TotalDuration() < candidates[i-1].TotalDuration() {
			t.Fatalf("durations not ascending at %d", i)
		}
	}
	for _, c := range candidates {
		if c.TotalDuration() <= 0 {
			t.Fatalf("non-positive duration: %v", c.TotalDuration())
		}
	}
	if candidates[0].Segments[0].Raw.Number != "fast" {
		t.Fatalf("best candidate = %q, want fast", candidates[0].Segments[0].Raw.Number)
	}
}

func TestEqualDurationsKeepDiscoveryOrder(t *testing.T) {
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T08:00:00", Arrival: "2025-04-01T10:00:00", TransportType: "train", Number: "first"},
				{Departure: "2025-04-01T09:00:00", Arrival: "2025-04-01T11:00:00", TransportType: "train", Number: "second"},
			},
		},
	})

	search := NewRouteSearch(provider, testDirectory(), nil)
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 3, nil)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Segments[0].Raw.Number != "first" || candidates[1].Segments[0].Raw.Number != "second" {
		t.Fatalf("tie order not preserved: %q then %q",
			candidates[0].Segments[0].Raw.Number, candidates[1].Segments[0].Raw.Number)
	}
}

func TestUnresolvedCityYieldsEmptyResult(t *testing.T) {
	provider := schedule.NewMockScheduleProvider(nil)
	search := NewRouteSearch(provider, testDirectory(), []string{"C"})

	if got := search.FindBestRoutes(context.Background(), "Nowhere", "B", "2025-04-01", 3, nil); len(got) != 0 {
		t.Fatalf("expected empty result for unresolved origin, got %d", len(got))
	}
	if got := search.FindBestRoutes(context.Background(), "A", "Nowhere", "2025-04-01", 3, nil); len(got) != 0 {
		t.Fatalf("expected empty result for unresolved destination, got %d", len(got))
	}
	if queries := provider.Queries(); len(queries) != 0 {
		t.Fatalf("expected no provider queries, got %v", queries)
	}
}

func TestTransferCityMatchingEndpointsIsSkipped(t *testing.T) {
	// "A" and "B" are in the transfer list but resolve to the origin and
	// destination identifiers, so only "C" may be fanned out.
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c3", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T06:00:00", Arrival: "2025-04-01T08:00:00", TransportType: "bus"},
			},
		},
		{
			From: "c3", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T08:30:00", Arrival: "2025-04-01T10:00:00", TransportType: "bus"},
			},
		},
	})

	search := NewRouteSearch(provider, testDirectory(), []string{"A", "B", "C"})
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 3, nil)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate via C, got %d", len(candidates))
	}
	queries := provider.Queries()
	for _, q := range queries {
		if q == "c1|c1|2025-04-01" || q == "c2|c2|2025-04-01" {
			t.Fatalf("unexpected self query %q", q)
		}
	}
	// Direct attempt, A->C, C->B. Nothing for the skipped transfer cities.
	if len(queries) != 3 {
		t.Fatalf("expected 3 queries, got %v", queries)
	}
}

func TestMinDepartureBoundsDirectCandidates(t *testing.T) {
	provider := schedule.NewMockScheduleProvider([]schedule.MockQuery{
		{
			From: "c1", To: "c2", Date: "2025-04-01",
			Segments: []ports.RawSegment{
				{Departure: "2025-04-01T07:00:00", Arrival: "2025-04-01T09:00:00", TransportType: "train", Number: "early"},
				{Departure: "2025-04-01T12:00:00", Arrival: "2025-04-01T14:00:00", TransportType: "train", Number: "late"},
			},
		},
	})

	bound := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	search := NewRouteSearch(provider, testDirectory(), nil)
	candidates := search.FindBestRoutes(context.Background(), "A", "B", "2025-04-01", 3, &bound)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Segments[0].Raw.Number != "late" {
		t.Fatalf("candidate = %q, want the one after the bound", candidates[0].Segments[0].Raw.Number)
	}
}
