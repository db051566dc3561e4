package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/orders-weather-dashboard/internal/orders"
	"github.com/i474232898/orders-weather-dashboard/internal/weather"
)

// ErrNoData is returned when the joined, filtered series is empty. It is
// distinct from an upstream fetch failure: both sides answered, the selection
// just has no overlap.
var ErrNoData = errors.New("no data for selection")

// Report is the full output of one pipeline run, shaped for the presentation
// shell: chart-ready rows plus the insight statements.
type Report struct {
	City     weather.City `json:"city"`
	Window   Window       `json:"window"`
	Notices  []string     `json:"notices,omitempty"`
	Days     []JoinedRow  `json:"days"`
	Insights []Insight    `json:"insights"`
}

// Service runs the aggregate → fetch → align → summarize pipeline. It is
// stateless; every run recomputes everything from the source file and one
// outbound weather call.
type Service struct {
	source   orders.Source
	provider weather.HistoryProvider
	now      func() time.Time
}

// NewService creates a Service. The now function is the injected clock the
// yesterday-clipping depends on; pass time.Now outside tests.
func NewService(source orders.Source, provider weather.HistoryProvider, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		source:   source,
		provider: provider,
		now:      now,
	}
}

// DefaultWindow is the last 30 days ending yesterday, the latest date the
// weather source can serve.
func (s *Service) DefaultWindow() Window {
	end := Yesterday(s.now())
	return Window{Start: end.AddDate(0, 0, -30), End: end}
}

// Run executes one full pipeline pass for a city and requested window.
func (s *Service) Run(ctx context.Context, city weather.City, win Window) (*Report, error) {
	clipped, notice, err := ClipWindow(win, s.now())
	if err != nil {
		return nil, err
	}

	records, err := s.source.Load()
	if err != nil {
		return nil, err
	}
	daily := orders.Aggregate(records)

	wx, err := s.provider.FetchDaily(ctx, city, clipped.Start, clipped.End)
	if err != nil {
		return nil, err
	}

	rows := Align(daily, wx, clipped)
	log.Debug().
		Str("city", string(city)).
		Int("orderDays", len(daily)).
		Int("weatherDays", len(wx)).
		Int("joinedDays", len(rows)).
		Msg("pipeline run")

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	report := &Report{
		City:     city,
		Window:   clipped,
		Days:     rows,
		Insights: Summarize(rows),
	}
	if notice != nil {
		report.Notices = append(report.Notices, notice.Message())
	}
	return report, nil
}
