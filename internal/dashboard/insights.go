package dashboard

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Insight is a short labeled statement computed from the joined series.
type Insight struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// orderPrinter renders thousands-separated order totals.
var orderPrinter = message.NewPrinter(language.English)

// Summarize computes the insight statements for a joined series. It performs
// no I/O and is a pure function of its input.
func Summarize(rows []JoinedRow) []Insight {
	var (
		rainySum, rainyDays int
		drySum, dryDays     int
		tempSum             float64
		totalOrders         int
	)

	for _, r := range rows {
		if r.Rain {
			rainySum += r.Orders
			rainyDays++
		} else {
			drySum += r.Orders
			dryDays++
		}
		tempSum += r.TempC
		totalOrders += r.Orders
	}

	insights := make([]Insight, 0, 4)

	if rainyDays > 0 && dryDays > 0 {
		rainyAvg := float64(rainySum) / float64(rainyDays)
		dryAvg := float64(drySum) / float64(dryDays)

		if rainyAvg > dryAvg {
			pct := (rainyAvg/dryAvg - 1) * 100
			insights = append(insights, Insight{
				Label: "rain_impact",
				Text:  fmt.Sprintf("Food orders increase by %.1f%% on rainy days", pct),
			})
		} else {
			pct := (1 - rainyAvg/dryAvg) * 100
			insights = append(insights, Insight{
				Label: "rain_impact",
				Text:  fmt.Sprintf("Food orders decrease by %.1f%% on rainy days", pct),
			})
		}
	} else {
		insights = append(insights, Insight{
			Label: "rain_impact",
			Text:  "Limited rain data for comparison in this period",
		})
	}

	days := len(rows)
	meanTemp := 0.0
	if days > 0 {
		meanTemp = tempSum / float64(days)
	}

	insights = append(insights,
		Insight{
			Label: "avg_temperature",
			Text:  fmt.Sprintf("Average temperature: %.1f°C", meanTemp),
		},
		Insight{
			Label: "total_orders",
			Text:  orderPrinter.Sprintf("Total orders in period: %d", totalOrders),
		},
		Insight{
			Label: "days_analyzed",
			Text:  fmt.Sprintf("Days analyzed: %d", days),
		},
	)

	return insights
}
