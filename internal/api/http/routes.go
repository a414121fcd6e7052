package httpapi

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rbasnet/weather-dashboard/internal/dashboard"
)

var validate = validator.New()

// Default preview dimensions when the client sends no rendering hints.
const (
	defaultWidth  = 800
	defaultHeight = 800
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		req, err := bindDashboardQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		board, err := service.Build(c.Context(), req)
		if err != nil {
			if errors.Is(err, dashboard.ErrDateOutOfRange) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data: "+err.Error())
		}

		return c.JSON(dashboardResponse(board))
	})

	v1.Get("/dashboard/export", func(c *fiber.Ctx) error {
		req, err := bindExportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		board, err := service.Build(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data: "+err.Error())
		}

		// No resolved cities means no artifact to offer.
		if board.Export.Len() == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no forecast data to export")
		}

		var buf bytes.Buffer
		if err := board.Export.WriteCSV(&buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode csv")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="weather_forecast.csv"`)
		return c.Send(buf.Bytes())
	})
}

// dashboardQuery holds query parameters for the dashboard endpoints.
type dashboardQuery struct {
	Cities string `validate:"required"`
	Width  int    `validate:"min=320,max=1600"`
	Height int    `validate:"min=400,max=1600"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
	Dates  string
}

func bindDashboardQuery(c *fiber.Ctx) (dashboard.BuildRequest, error) {
	q := dashboardQuery{
		Cities: c.Query("cities"),
		Width:  c.QueryInt("width", defaultWidth),
		Height: c.QueryInt("height", defaultHeight),
		Date:   c.Query("date"),
		Dates:  c.Query("dates"),
	}

	if err := validate.Struct(q); err != nil {
		return dashboard.BuildRequest{}, err
	}

	req := dashboard.BuildRequest{
		Width:  q.Width,
		Height: q.Height,
	}
	for _, city := range strings.Split(q.Cities, ",") {
		req.Cities = append(req.Cities, strings.TrimSpace(city))
	}
	if q.Date != "" {
		d, err := time.Parse(time.DateOnly, q.Date)
		if err != nil {
			return dashboard.BuildRequest{}, err
		}
		req.SelectedDate = d
	}

	// Per-city selected dates, aligned with the city list. Blank entries
	// fall back to the shared date.
	if q.Dates != "" {
		parts := strings.Split(q.Dates, ",")
		if len(parts) != len(req.Cities) {
			return dashboard.BuildRequest{}, errors.New("number of dates and cities must be the same")
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				req.SelectedDates = append(req.SelectedDates, time.Time{})
				continue
			}
			d, err := time.Parse(time.DateOnly, part)
			if err != nil {
				return dashboard.BuildRequest{}, err
			}
			req.SelectedDates = append(req.SelectedDates, d)
		}
	}

	return req, nil
}

// bindExportQuery reads only the city list. The CSV carries every forecast
// day regardless of selected dates or rendering hints, so none of the other
// dashboard parameters gate an export.
func bindExportQuery(c *fiber.Ctx) (dashboard.BuildRequest, error) {
	q := dashboardQuery{
		Cities: c.Query("cities"),
		Width:  defaultWidth,
		Height: defaultHeight,
	}

	if err := validate.Struct(q); err != nil {
		return dashboard.BuildRequest{}, err
	}

	var req dashboard.BuildRequest
	for _, city := range strings.Split(q.Cities, ",") {
		req.Cities = append(req.Cities, strings.TrimSpace(city))
	}

	return req, nil
}

func dashboardResponse(board *dashboard.Dashboard) fiber.Map {
	return fiber.Map{
		"build_id":  board.BuildID,
		"width":     board.Width,
		"height":    board.Height,
		"cities":    board.Cities,
		"not_found": board.NotFound,
		"comparison": fiber.Map{
			"columns": board.Comparison.Columns(),
			"rows":    board.Comparison.Rows(),
		},
		"export_rows": board.Export.Len(),
	}
}
