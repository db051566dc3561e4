package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/orders-weather-dashboard/internal/weather"
)

// ErrInvalidWindow is returned when a requested window has start after end,
// either as requested or after clipping.
var ErrInvalidWindow = errors.New("start date is after end date")

// Window is an inclusive calendar-date range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the window, inclusive on both ends.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// MarshalJSON emits both bounds as calendar dates, not full timestamps.
func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{w.Start.Format(weather.DateOnly), w.End.Format(weather.DateOnly)})
}

func (w *Window) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.ParseInLocation(weather.DateOnly, raw.Start, time.UTC)
	if err != nil {
		return err
	}
	end, err := time.ParseInLocation(weather.DateOnly, raw.End, time.UTC)
	if err != nil {
		return err
	}
	w.Start, w.End = start, end
	return nil
}

// ClipNotice records a non-fatal adjustment of the requested window.
type ClipNotice struct {
	RequestedEnd time.Time
	EffectiveEnd time.Time
}

func (n ClipNotice) Message() string {
	return fmt.Sprintf("weather data is only available until %s; end date adjusted",
		n.EffectiveEnd.Format(weather.DateOnly))
}

// Yesterday is the latest date the weather source can serve, relative to now.
func Yesterday(now time.Time) time.Time {
	y := now.AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
}

// ClipWindow clamps the window's end to yesterday relative to now. An actual
// clamp is reported via a non-nil notice; a window left with start after end
// is ErrInvalidWindow.
func ClipWindow(w Window, now time.Time) (Window, *ClipNotice, error) {
	if w.Start.After(w.End) {
		return Window{}, nil, fmt.Errorf("%w: %s > %s", ErrInvalidWindow,
			w.Start.Format(weather.DateOnly), w.End.Format(weather.DateOnly))
	}

	var notice *ClipNotice
	yesterday := Yesterday(now)
	if w.End.After(yesterday) {
		notice = &ClipNotice{RequestedEnd: w.End, EffectiveEnd: yesterday}
		w.End = yesterday
	}

	if w.Start.After(w.End) {
		return Window{}, nil, fmt.Errorf("%w after clipping to %s", ErrInvalidWindow,
			w.End.Format(weather.DateOnly))
	}

	return w, notice, nil
}
