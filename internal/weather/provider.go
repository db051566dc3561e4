package weather

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownCity is returned when a city is outside the supported set.
	// It is checked before any outbound call.
	ErrUnknownCity = errors.New("unknown city")

	// ErrMalformedResponse is returned when the upstream response is missing
	// the expected daily data or cannot be parsed.
	ErrMalformedResponse = errors.New("malformed weather response")
)

// UpstreamError reports a non-success status from the weather source. The raw
// response body is kept for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather source returned status %d", e.StatusCode)
}

// HistoryProvider abstracts the historical weather source so tests can swap in
// a stub without network access.
type HistoryProvider interface {
	Name() string

	// FetchDaily returns one DailyWeather per calendar day in the closed
	// interval [start, end] for a supported city. It issues at most one
	// outbound call and never returns a partially-constructed series.
	FetchDaily(ctx context.Context, city City, start, end time.Time) ([]DailyWeather, error)
}
