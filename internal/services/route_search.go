package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"transit-route-service/internal/domain"
	"transit-route-service/internal/ports"
)

// RouteSearch finds ranked itineraries between two cities on a date.
//
// Direct segments are tried first; connecting itineraries through the static
// transfer-city list are only searched when no direct segment exists at all.
// A slow direct route therefore always beats a faster connection; direct and
// connecting candidates are never ranked against each other.
type RouteSearch struct {
	Provider       ports.ScheduleProvider
	Directory      ports.CityDirectory
	TransferCities []string
}

func NewRouteSearch(provider ports.ScheduleProvider, directory ports.CityDirectory, transferCities []string) *RouteSearch {
	return &RouteSearch{
		Provider:       provider,
		Directory:      directory,
		TransferCities: transferCities,
	}
}

// FindBestRoutes returns up to topN candidates sorted ascending by total
// duration. An unresolved city name, like every other failure below it,
// yields an empty result rather than an error.
func (s *RouteSearch) FindBestRoutes(
	ctx context.Context,
	originCity string,
	destCity string,
	date string,
	topN int,
	minDeparture *time.Time,
) []domain.Candidate {
	if topN <= 0 {
		return nil
	}

	origin, ok := s.Directory.Resolve(originCity)
	if !ok {
		return nil
	}
	dest, ok := s.Directory.Resolve(destCity)
	if !ok {
		return nil
	}

	segments := SearchSegments(ctx, s.Provider, origin.ID, dest.ID, date, minDeparture)

	direct := make([]domain.Candidate, 0, len(segments))
	for _, seg := range segments {
		// SearchSegments already filtered these; re-check at this call
		// site so a misbehaving provider cannot leak an invalid candidate.
		if seg.Duration() <= 0 {
			continue
		}
		if minDeparture != nil && seg.Departure.Before(*minDeparture) {
			continue
		}
		direct = append(direct, domain.NewDirect(seg))
	}

	if len(direct) > 0 {
		return rankByDuration(direct, topN)
	}

	connecting := s.searchConnecting(ctx, origin, dest, date, minDeparture)
	if len(connecting) == 0 {
		return nil
	}

	return rankByDuration(connecting, topN)
}

// searchConnecting fans out over every eligible transfer city concurrently.
// Each branch appends only to its own slot; results are merged after the
// join barrier, so no shared state is written concurrently.
func (s *RouteSearch) searchConnecting(
	ctx context.Context,
	origin domain.City,
	dest domain.City,
	date string,
	minDeparture *time.Time,
) []domain.Candidate {
	perCity := make([][]domain.Candidate, len(s.TransferCities))

	var wg sync.WaitGroup
	for i, name := range s.TransferCities {
		transfer, ok := s.Directory.Resolve(name)
		if !ok {
			continue
		}
		if transfer.ID == origin.ID || transfer.ID == dest.ID {
			continue
		}

		wg.Add(1)
		go func(i int, transferName string, transfer domain.City) {
			defer wg.Done()
			perCity[i] = s.searchViaTransfer(ctx, origin, dest, transfer, transferName, date, minDeparture)
		}(i, name, transfer)
	}
	wg.Wait()

	var connecting []domain.Candidate
	for _, branch := range perCity {
		connecting = append(connecting, branch...)
	}
	return connecting
}

// searchViaTransfer assembles feasible two-segment connections through one
// transfer city. Second-leg searches run concurrently, one per first-leg
// segment, dated on that segment's arrival day and bounded by its arrival
// time.
func (s *RouteSearch) searchViaTransfer(
	ctx context.Context,
	origin domain.City,
	dest domain.City,
	transfer domain.City,
	transferName string,
	date string,
	minDeparture *time.Time,
) []domain.Candidate {
	firstLegs := SearchSegments(ctx, s.Provider, origin.ID, transfer.ID, date, minDeparture)
	if len(firstLegs) == 0 {
		return nil
	}

	perFirst := make([][]domain.Candidate, len(firstLegs))

	var wg sync.WaitGroup
	for i, first := range firstLegs {
		wg.Add(1)
		go func(i int, first domain.Segment) {
			defer wg.Done()

			arrival := first.Arrival
			secondDate := arrival.Format(dateLayout)
			secondLegs := SearchSegments(ctx, s.Provider, transfer.ID, dest.ID, secondDate, &arrival)

			var found []domain.Candidate
			for _, second := range secondLegs {
				gap := second.Departure.Sub(first.Arrival)
				if gap < domain.RequiredWait(first.Mode, second.Mode) {
					continue
				}
				found = append(found, domain.NewConnecting(first, second, transferName))
			}
			perFirst[i] = found
		}(i, first)
	}
	wg.Wait()

	var results []domain.Candidate
	for _, branch := range perFirst {
		results = append(results, branch...)
	}
	return results
}

// rankByDuration sorts ascending by total duration and keeps the first topN.
// The sort is stable: candidates of equal duration keep discovery order.
func rankByDuration(candidates []domain.Candidate, topN int) []domain.Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalDuration() < candidates[j].TotalDuration()
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates
}
