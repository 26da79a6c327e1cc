package ports

import (
	"context"
	"time"
)

// RawSegment is one schedule record as returned by the data source, before
// normalization. Timestamps are ISO-8601 strings in local time; the timezone
// offset, when present, is discarded during parsing.
type RawSegment struct {
	Departure     string
	Arrival       string
	TransportType string
	Number        string
	FromStation   string
	ToStation     string
}

// Contract for querying the external schedule data source.
type ScheduleProvider interface {
	// Return raw schedule records between two location identifiers on the
	// given date (YYYY-MM-DD). A minDeparture bound, when non-nil, is passed
	// to the data source as a hint; callers must still re-check it locally.
	// A "not found" response is an empty slice, not an error.
	QuerySchedule(ctx context.Context, fromID, toID, date string, minDeparture *time.Time) ([]RawSegment, error)
}
