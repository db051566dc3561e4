package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/orders-weather-dashboard/internal/dashboard"
	"github.com/i474232898/orders-weather-dashboard/internal/orders"
	"github.com/i474232898/orders-weather-dashboard/internal/weather"
)

type fakeSource struct {
	records []orders.OrderRecord
	err     error
}

func (s fakeSource) Load() ([]orders.OrderRecord, error) {
	return s.records, s.err
}

type fakeProvider struct {
	days []weather.DailyWeather
	err  error
}

func (p fakeProvider) Name() string { return "fake" }

func (p fakeProvider) FetchDaily(context.Context, weather.City, time.Time, time.Time) ([]weather.DailyWeather, error) {
	return p.days, p.err
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

// newTestApp wires a Fiber app against stubbed order and weather sources with
// a clock fixed at 2025-06-15 (so "yesterday" is 2025-06-14).
func newTestApp(src orders.Source, prov weather.HistoryProvider) *fiber.App {
	app := fiber.New()
	now := func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	svc := dashboard.NewService(src, prov, now)
	RegisterRoutes(app, svc)
	return app
}

func doRequest(t *testing.T, app *fiber.App, url string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

// TestDashboardQueryValidation verifies that a missing city, an unsupported
// city, and a malformed date all return 400 without reaching the pipeline.
func TestDashboardQueryValidation(t *testing.T) {
	app := newTestApp(fakeSource{}, fakeProvider{})

	for _, url := range []string{
		"/api/v1/dashboard",
		"/api/v1/dashboard?city=Atlantis",
		"/api/v1/dashboard?city=Mumbai&start=15-06-2025&end=2025-06-14",
		"/api/v1/dashboard?city=Mumbai&start=2025-06-10&end=2025-06-01",
	} {
		resp := doRequest(t, app, url)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", url, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestDashboardSuccess(t *testing.T) {
	src := fakeSource{records: []orders.OrderRecord{
		{Date: day(1)}, {Date: day(1)}, {Date: day(2)},
	}}
	prov := fakeProvider{days: []weather.DailyWeather{
		{Date: day(1), TempC: 24.0, Rain: true},
		{Date: day(2), TempC: 26.0, Rain: false},
	}}
	app := newTestApp(src, prov)

	resp := doRequest(t, app, "/api/v1/dashboard?city=Mumbai&start=2025-06-01&end=2025-06-14")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !strings.Contains(string(body), `"date":"2025-06-01"`) {
		t.Fatalf("expected calendar dates in response, got %s", body)
	}
	if strings.Contains(string(body), "T00:00:00") {
		t.Fatalf("expected no timestamps in response, got %s", body)
	}

	var report dashboard.Report
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if len(report.Days) != 2 {
		t.Fatalf("expected 2 joined days, got %d", len(report.Days))
	}
	if report.Days[0].Orders != 2 {
		t.Fatalf("expected 2 orders on the first day, got %d", report.Days[0].Orders)
	}
	if len(report.Insights) != 4 {
		t.Fatalf("expected 4 insights, got %d", len(report.Insights))
	}
	if len(report.Notices) != 0 {
		t.Fatalf("expected no notices, got %v", report.Notices)
	}
}

// TestDashboardClipNotice verifies that an end date past yesterday is clamped
// and the adjustment is visible in the response.
func TestDashboardClipNotice(t *testing.T) {
	src := fakeSource{records: []orders.OrderRecord{{Date: day(10)}}}
	prov := fakeProvider{days: []weather.DailyWeather{{Date: day(10), TempC: 24.0}}}
	app := newTestApp(src, prov)

	resp := doRequest(t, app, "/api/v1/dashboard?city=Delhi&start=2025-06-01&end=2025-06-30")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var report dashboard.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if len(report.Notices) != 1 {
		t.Fatalf("expected a clip notice, got %v", report.Notices)
	}
	if got := report.Window.End.Format("2006-01-02"); got != "2025-06-14" {
		t.Fatalf("expected effective end 2025-06-14, got %s", got)
	}
}

func TestDashboardNoData(t *testing.T) {
	src := fakeSource{records: []orders.OrderRecord{{Date: day(1)}}}
	prov := fakeProvider{days: []weather.DailyWeather{{Date: day(9), TempC: 24.0}}}
	app := newTestApp(src, prov)

	resp := doRequest(t, app, "/api/v1/dashboard?city=Chennai&start=2025-06-01&end=2025-06-14")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestDashboardUpstreamFailure(t *testing.T) {
	src := fakeSource{records: []orders.OrderRecord{{Date: day(1)}}}
	prov := fakeProvider{err: &weather.UpstreamError{StatusCode: 500, Body: "archive down"}}
	app := newTestApp(src, prov)

	resp := doRequest(t, app, "/api/v1/dashboard?city=Mumbai&start=2025-06-01&end=2025-06-14")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Message == "" {
		t.Fatal("expected a user-facing message")
	}
	if body.Detail != "archive down" {
		t.Fatalf("expected upstream detail to be surfaced, got %q", body.Detail)
	}
}

// TestDashboardUnknownCityFromPipeline verifies the mapping stays a caller
// error even when the rejection comes from inside the pipeline rather than
// the handler's own pre-flight check.
func TestDashboardUnknownCityFromPipeline(t *testing.T) {
	src := fakeSource{records: []orders.OrderRecord{{Date: day(1)}}}
	prov := fakeProvider{err: weather.ErrUnknownCity}
	app := newTestApp(src, prov)

	resp := doRequest(t, app, "/api/v1/dashboard?city=Mumbai&start=2025-06-01&end=2025-06-14")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestDashboardOrderSourceUnavailable(t *testing.T) {
	src := fakeSource{err: orders.ErrSourceUnavailable}
	app := newTestApp(src, fakeProvider{})

	resp := doRequest(t, app, "/api/v1/dashboard?city=Mumbai&start=2025-06-01&end=2025-06-14")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
}

func TestCitiesListing(t *testing.T) {
	app := newTestApp(fakeSource{}, fakeProvider{})

	resp := doRequest(t, app, "/api/v1/cities")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Cities []weather.CityInfo `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding cities: %v", err)
	}
	if len(body.Cities) != 4 {
		t.Fatalf("expected 4 cities, got %d", len(body.Cities))
	}
}
