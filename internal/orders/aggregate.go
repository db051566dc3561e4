package orders

import "sort"

// Aggregate groups order records by calendar date and counts them, one row per
// distinct date, ascending by date.
func Aggregate(records []OrderRecord) []DailyOrderCount {
	counts := make(map[string]*DailyOrderCount)

	for _, rec := range records {
		key := rec.Date.Format("2006-01-02")
		if c, ok := counts[key]; ok {
			c.Orders++
			continue
		}
		counts[key] = &DailyOrderCount{Date: rec.Date, Orders: 1}
	}

	daily := make([]DailyOrderCount, 0, len(counts))
	for _, c := range counts {
		daily = append(daily, *c)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})

	return daily
}
