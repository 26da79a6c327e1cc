package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"transit-route-service/internal/domain"
	"transit-route-service/internal/ports"
)

const dateLayout = "2006-01-02"

// Provider timestamps are ISO-8601 in station-local time. The offset, when
// present, is discarded: schedules compare wall-clock times.
const localTimeLayout = "2006-01-02T15:04:05"

func parseLocalTime(value string) (time.Time, error) {
	if len(value) > len(localTimeLayout) {
		value = value[:len(localTimeLayout)]
	}
	return time.Parse(localTimeLayout, value)
}

// SearchSegments queries the data source and returns normalized segments,
// ordered as the provider returned them.
//
// This is the single point where data-source failures are collapsed: on any
// provider error the search degrades to zero segments instead of propagating,
// so a slow or unreachable branch cannot abort an enclosing fan-out. The
// trade-off is that callers cannot tell "no segments exist" from "the data
// source failed"; the degradation is logged here so it stays observable.
//
// Records with missing or unparsable timestamps, a non-positive duration, or
// (when minDeparture is given) a departure before the bound are dropped
// individually without affecting their siblings.
func SearchSegments(
	ctx context.Context,
	provider ports.ScheduleProvider,
	fromID string,
	toID string,
	date string,
	minDeparture *time.Time,
) []domain.Segment {
	raw, err := provider.QuerySchedule(ctx, fromID, toID, date, minDeparture)
	if err != nil {
		log.Debug().
			Err(err).
			Str("from", fromID).
			Str("to", toID).
			Str("date", date).
			Msg("schedule query degraded to zero segments")
		return nil
	}

	segments := make([]domain.Segment, 0, len(raw))
	for _, record := range raw {
		if record.Departure == "" || record.Arrival == "" {
			continue
		}

		departure, err := parseLocalTime(record.Departure)
		if err != nil {
			continue
		}
		arrival, err := parseLocalTime(record.Arrival)
		if err != nil {
			continue
		}

		if !arrival.After(departure) {
			continue
		}
		// The bound is forwarded to the data source as a hint only;
		// re-check it locally.
		if minDeparture != nil && departure.Before(*minDeparture) {
			continue
		}

		segments = append(segments, domain.Segment{
			Departure: departure,
			Arrival:   arrival,
			Mode:      domain.ParseTransportMode(record.TransportType),
			Raw: domain.RawLeg{
				Number:        record.Number,
				TransportType: record.TransportType,
				FromStation:   record.FromStation,
				ToStation:     record.ToStation,
			},
		})
	}

	return segments
}
