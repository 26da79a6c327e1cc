package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"transit-route-service/internal/platform/obs"
	"transit-route-service/internal/ports"
)

// RaspProvider implements ScheduleProvider against the Yandex Rasp API.
//
// It coordinates:
//   - Schedule searches between two location codes on a date
//   - The full settlement directory download
//
// Every call carries a fixed 20 second timeout. There are no retries: a
// failed or slow call surfaces as an error that the segment-search layer
// collapses to zero segments, so one unreachable branch never stalls or
// aborts an in-flight fan-out.
//
// The provider is safe for concurrent use.
type RaspProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	lang    string
}

const requestTimeout = 20 * time.Second

func NewRaspProvider(apiKey string) (*RaspProvider, error) {
	if apiKey == "" {
		return nil, errors.New("rasp api key is empty")
	}

	provider := &RaspProvider{
		session: &http.Client{Timeout: requestTimeout},
		apiKey:  apiKey,
		baseURL: "https://api.rasp.yandex.net/v3.0",
		lang:    "ru_RU",
	}

	return provider, nil
}

type httpStatusError struct {
	Code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func (p *RaspProvider) newRequest(ctx context.Context, endpoint string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	query.Set("apikey", p.apiKey)
	query.Set("format", "json")
	query.Set("lang", p.lang)
	req.URL.RawQuery = query.Encode()

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// getJSON executes a request and decodes the response body into out.
// A 404 means "nothing scheduled" and leaves out untouched.
func (p *RaspProvider) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := p.newRequest(ctx, endpoint, query)
	if err != nil {
		return err
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return &httpStatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

type searchResponse struct {
	Segments []struct {
		Departure string `json:"departure"`
		Arrival   string `json:"arrival"`
		Thread    struct {
			TransportType string `json:"transport_type"`
			Number        string `json:"number"`
		} `json:"thread"`
		From struct {
			Title string `json:"title"`
		} `json:"from"`
		To struct {
			Title string `json:"title"`
		} `json:"to"`
	} `json:"segments"`
}

// QuerySchedule searches scheduled segments between two location codes.
// minDeparture, when non-nil, is forwarded as a hint; callers re-check it.
func (p *RaspProvider) QuerySchedule(
	ctx context.Context,
	fromID string,
	toID string,
	date string,
	minDeparture *time.Time,
) (_ []ports.RawSegment, err error) {
	defer obs.Time("rasp.QuerySchedule")(&err)

	if fromID == "" || toID == "" {
		return nil, errors.New("query schedule: from and to codes must be non-empty")
	}

	query := url.Values{}
	query.Set("from", fromID)
	query.Set("to", toID)
	query.Set("date", date)
	if minDeparture != nil {
		query.Set("min_dep_time", minDeparture.Format("2006-01-02T15:04"))
	}

	var decoded searchResponse
	if err := p.getJSON(ctx, "/search/", query, &decoded); err != nil {
		return nil, fmt.Errorf("query schedule %q -> %q: %w", fromID, toID, err)
	}

	out := make([]ports.RawSegment, 0, len(decoded.Segments))
	for _, seg := range decoded.Segments {
		out = append(out, ports.RawSegment{
			Departure:     seg.Departure,
			Arrival:       seg.Arrival,
			TransportType: seg.Thread.TransportType,
			Number:        seg.Thread.Number,
			FromStation:   seg.From.Title,
			ToStation:     seg.To.Title,
		})
	}

	return out, nil
}
