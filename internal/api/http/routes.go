package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/orders-weather-dashboard/internal/dashboard"
	"github.com/i474232898/orders-weather-dashboard/internal/orders"
	"github.com/i474232898/orders-weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": weather.Cities(),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		var req dashboardQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		city, _, err := weather.ResolveCity(req.City)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		win, err := req.window(service)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Run(c.Context(), city, win)
		if err != nil {
			return mapRunError(c, err)
		}

		return c.JSON(report)
	})
}

// mapRunError converts the pipeline's typed failures to HTTP responses. Every
// failure becomes a user-visible message; upstream diagnostics ride alongside.
func mapRunError(c *fiber.Ctx, err error) error {
	var upstream *weather.UpstreamError

	switch {
	case errors.Is(err, weather.ErrUnknownCity):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, dashboard.ErrInvalidWindow):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, dashboard.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, "no data available for the selected date range")
	case errors.Is(err, orders.ErrSourceUnavailable):
		return fiber.NewError(fiber.StatusInternalServerError, "order data is unavailable")
	case errors.As(err, &upstream):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":          true,
			"message":        "failed to fetch weather data",
			"upstreamStatus": upstream.StatusCode,
			"detail":         upstream.Body,
		})
	default:
		// Timeouts, transport faults, malformed responses.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   true,
			"message": "failed to fetch weather data",
			"detail":  err.Error(),
		})
	}
}

// dashboardQuery holds query parameters for the dashboard endpoint.
type dashboardQuery struct {
	City  string `validate:"required"`
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

func (q *dashboardQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")
	q.Start = c.Query("start")
	q.End = c.Query("end")
	return validate.Struct(q)
}

// window resolves the requested date range, defaulting any omitted bound from
// the last-30-days-ending-yesterday window.
func (q *dashboardQuery) window(service *dashboard.Service) (dashboard.Window, error) {
	def := service.DefaultWindow()
	win := def

	if q.End != "" {
		end, err := parseDate(q.End)
		if err != nil {
			return dashboard.Window{}, err
		}
		win.End = end
		win.Start = end.AddDate(0, 0, -30)
	}
	if q.Start != "" {
		start, err := parseDate(q.Start)
		if err != nil {
			return dashboard.Window{}, err
		}
		win.Start = start
		if q.End == "" {
			win.End = def.End
		}
	}

	return win, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(weather.DateOnly, s, time.UTC)
}
