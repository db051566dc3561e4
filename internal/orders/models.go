package orders

import (
	"encoding/json"
	"time"
)

// OrderRecord is one raw row from the order log. Only the order date matters
// downstream; the rest of the source schema is ignored.
type OrderRecord struct {
	Date time.Time // midnight UTC, date component only
}

// DailyOrderCount is the per-day reduction of the order log. Dates with zero
// orders are absent rather than zero-filled.
type DailyOrderCount struct {
	Date   time.Time `json:"date"`
	Orders int       `json:"orders"`
}

// MarshalJSON emits the date as a calendar date, not a full timestamp.
func (c DailyOrderCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string `json:"date"`
		Orders int    `json:"orders"`
	}{c.Date.Format("2006-01-02"), c.Orders})
}
