package schedule

import (
	"context"
	"sync"
	"time"

	"transit-route-service/internal/ports"
)

type MockQuery struct {
	From, To string
	Date     string
	Segments []ports.RawSegment
	Err      error
}

// MockScheduleProvider serves fixture segments keyed by (from, to, date).
// Unknown queries return zero segments, matching the data source's behavior
// for routes it has no schedules for. Queries are recorded so tests can
// assert which searches actually ran.
type MockScheduleProvider struct {
	m map[string]MockQuery

	mu    sync.Mutex
	calls []string
}

func NewMockScheduleProvider(queries []MockQuery) *MockScheduleProvider {
	m := make(map[string]MockQuery, len(queries))
	for _, q := range queries {
		m[q.From+"|"+q.To+"|"+q.Date] = q
	}
	return &MockScheduleProvider{m: m}
}

func (p *MockScheduleProvider) QuerySchedule(ctx context.Context, fromID, toID, date string, minDeparture *time.Time) ([]ports.RawSegment, error) {
	key := fromID + "|" + toID + "|" + date

	p.mu.Lock()
	p.calls = append(p.calls, key)
	p.mu.Unlock()

	q, ok := p.m[key]
	if !ok {
		return nil, nil
	}
	if q.Err != nil {
		return nil, q.Err
	}

	return q.Segments, nil
}

// Queries returns a copy of the recorded query keys in call order.
func (p *MockScheduleProvider) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}
