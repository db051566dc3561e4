package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/orders-weather-dashboard/internal/weather"
	"github.com/sony/gobreaker"
)

// maxErrorBody caps how much of an upstream error body is kept for diagnostics.
const maxErrorBody = 8 << 10

// OpenMeteoArchive implements weather.HistoryProvider against the Open-Meteo
// historical (archive) API. The API requires no key; coordinates come from the
// static city table.
type OpenMeteoArchive struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoArchive(client *http.Client) *OpenMeteoArchive {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-archive",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoArchive{
		name:    "openmeteo-archive",
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		client:  client,
		circuit: cb,
	}
}

func (p *OpenMeteoArchive) Name() string {
	return p.name
}

// FetchDaily issues exactly one GET for the closed interval [start, end].
// There is no retry; the circuit breaker only fails fast while the upstream is
// known to be down.
func (p *OpenMeteoArchive) FetchDaily(ctx context.Context, city weather.City, start, end time.Time) ([]weather.DailyWeather, error) {
	_, coords, err := weather.ResolveCity(string(city))
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coords.Lat))
	values.Set("longitude", fmt.Sprintf("%.4f", coords.Lon))
	values.Set("start_date", start.Format(weather.DateOnly))
	values.Set("end_date", end.Format(weather.DateOnly))
	values.Set("daily", "temperature_2m_mean,precipitation_sum")
	values.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, execErr := p.client.Do(req)
		if execErr != nil {
			return nil, fmt.Errorf("weather request failed: %w", execErr)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return nil, &weather.UpstreamError{
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(body)),
			}
		}

		var payload archiveResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&payload); decErr != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrMalformedResponse, decErr)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload, ok := result.(*archiveResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}

	return payload.toDailyWeather()
}

// archiveResponse mirrors the archive API's parallel daily arrays.
type archiveResponse struct {
	Daily *struct {
		Time             []string  `json:"time"`
		TemperatureMean  []float64 `json:"temperature_2m_mean"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (r *archiveResponse) toDailyWeather() ([]weather.DailyWeather, error) {
	if r.Daily == nil {
		return nil, fmt.Errorf("%w: missing daily data", weather.ErrMalformedResponse)
	}

	d := r.Daily
	if len(d.TemperatureMean) != len(d.Time) || len(d.PrecipitationSum) != len(d.Time) {
		return nil, fmt.Errorf("%w: daily arrays are not the same length", weather.ErrMalformedResponse)
	}

	days := make([]weather.DailyWeather, 0, len(d.Time))
	for i, ds := range d.Time {
		date, err := time.ParseInLocation(weather.DateOnly, ds, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", weather.ErrMalformedResponse, ds)
		}
		days = append(days, weather.DailyWeather{
			Date:  date,
			TempC: d.TemperatureMean[i],
			// Hard threshold: any measurable precipitation counts as rain.
			Rain: d.PrecipitationSum[i] > 0,
		})
	}
	return days, nil
}
