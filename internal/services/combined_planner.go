package services

import (
	"context"

	"transit-route-service/internal/domain"
)

// Number of candidates fetched per leg when composing a combined route.
const legCandidateLimit = 3

// CombinedPlanner composes itineraries through one mandatory transfer city:
// a first leg to the transfer city and a second leg onward, each planned
// independently by RouteSearch (so either leg may itself be a connection).
type CombinedPlanner struct {
	Routes *RouteSearch
}

func NewCombinedPlanner(routes *RouteSearch) *CombinedPlanner {
	return &CombinedPlanner{Routes: routes}
}

// FindCombinedRoutes returns up to topN combined candidates sorted ascending
// by total duration.
//
// Second legs are searched on the first leg's arrival date; when nothing
// feasible departs that day, the day after is tried once. No further
// day-rolling happens.
func (p *CombinedPlanner) FindCombinedRoutes(
	ctx context.Context,
	originCity string,
	transferCity string,
	destCity string,
	date string,
	topN int,
) []domain.Candidate {
	if topN <= 0 {
		return nil
	}

	firstLegs := p.Routes.FindBestRoutes(ctx, originCity, transferCity, date, legCandidateLimit, nil)
	if len(firstLegs) == 0 {
		return nil
	}

	var combined []domain.Candidate
	for _, leg1 := range firstLegs {
		sameDay := leg1.Arrival.Format(dateLayout)
		secondLegs := p.feasibleSecondLegs(ctx, leg1, transferCity, destCity, sameDay)
		if len(secondLegs) == 0 {
			nextDay := leg1.Arrival.AddDate(0, 0, 1).Format(dateLayout)
			secondLegs = p.feasibleSecondLegs(ctx, leg1, transferCity, destCity, nextDay)
		}

		for _, leg2 := range secondLegs {
			combined = append(combined, domain.NewCombined(leg1, leg2, transferCity))
		}
	}

	if len(combined) == 0 {
		return nil
	}

	return rankByDuration(combined, topN)
}

// feasibleSecondLegs plans the onward leg for one date and keeps candidates
// whose departure leaves enough transfer time after leg1 arrives. The wait is
// keyed by the segments actually meeting at the junction: the last segment of
// leg1 and the first segment of leg2, even when either leg is itself a
// connection.
func (p *CombinedPlanner) feasibleSecondLegs(
	ctx context.Context,
	leg1 domain.Candidate,
	transferCity string,
	destCity string,
	date string,
) []domain.Candidate {
	candidates := p.Routes.FindBestRoutes(ctx, transferCity, destCity, date, legCandidateLimit, nil)

	var feasible []domain.Candidate
	for _, leg2 := range candidates {
		wait := domain.RequiredWait(leg1.LastMode(), leg2.FirstMode())
		if leg2.Departure.Before(leg1.Arrival.Add(wait)) {
			continue
		}
		feasible = append(feasible, leg2)
	}
	return feasible
}
