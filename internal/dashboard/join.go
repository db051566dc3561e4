package dashboard

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/i474232898/orders-weather-dashboard/internal/orders"
	"github.com/i474232898/orders-weather-dashboard/internal/weather"
)

// JoinedRow is one calendar day present in both the order and weather series.
type JoinedRow struct {
	Date   time.Time `json:"date"`
	Orders int       `json:"orders"`
	TempC  float64   `json:"tempC"`
	Rain   bool      `json:"rain"`
}

// joinedRowJSON is the wire shape of a JoinedRow: a calendar date, not a full
// timestamp.
type joinedRowJSON struct {
	Date   string  `json:"date"`
	Orders int     `json:"orders"`
	TempC  float64 `json:"tempC"`
	Rain   bool    `json:"rain"`
}

func (r JoinedRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(joinedRowJSON{
		Date:   r.Date.Format(weather.DateOnly),
		Orders: r.Orders,
		TempC:  r.TempC,
		Rain:   r.Rain,
	})
}

func (r *JoinedRow) UnmarshalJSON(data []byte) error {
	var raw joinedRowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.ParseInLocation(weather.DateOnly, raw.Date, time.UTC)
	if err != nil {
		return err
	}
	r.Date, r.Orders, r.TempC, r.Rain = date, raw.Orders, raw.TempC, raw.Rain
	return nil
}

// Align inner-joins the two per-day series on exact calendar date and filters
// to the inclusive window. Dates absent from either side are dropped, no
// imputation. Output is ascending by date, as charts against a date axis
// assume.
func Align(daily []orders.DailyOrderCount, wx []weather.DailyWeather, w Window) []JoinedRow {
	byDate := make(map[string]weather.DailyWeather, len(wx))
	for _, d := range wx {
		byDate[d.Date.Format(weather.DateOnly)] = d
	}

	var rows []JoinedRow
	for _, o := range daily {
		d, ok := byDate[o.Date.Format(weather.DateOnly)]
		if !ok {
			continue
		}
		if !w.Contains(o.Date) {
			continue
		}
		rows = append(rows, JoinedRow{
			Date:   o.Date,
			Orders: o.Orders,
			TempC:  d.TempC,
			Rain:   d.Rain,
		})
	}

	// The order series carries no ordering guarantee, so sort here.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows
}
