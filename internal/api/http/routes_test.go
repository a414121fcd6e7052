package httpapi

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rbasnet/weather-dashboard/internal/dashboard"
	"github.com/rbasnet/weather-dashboard/internal/weather"
)

// stubProvider serves canned city weather keyed by query text; unknown cities
// report not-found.
type stubProvider struct {
	cities map[string]weather.CityWeather
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Fetch(ctx context.Context, city string) (weather.CityWeather, error) {
	cw, ok := s.cities[city]
	if !ok {
		return weather.CityWeather{}, weather.ErrCityNotFound
	}
	return cw, nil
}

func testCityWeather(city string, start time.Time) weather.CityWeather {
	days := make([]weather.ForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, weather.ForecastDay{
			Date:         start.AddDate(0, 0, i),
			TempDay:      20.0 + float64(i),
			TempNight:    10.0 + float64(i),
			Condition:    "Sunny",
			WindKph:      10,
			Humidity:     50,
			ChanceOfRain: 20,
			UV:           5,
			Sunrise:      "05:30 AM",
			Sunset:       "06:40 PM",
			Icon:         "http://cdn.weatherapi.com/weather/64x64/day/113.png",
		})
	}
	return weather.CityWeather{
		City:      city,
		Country:   "Nepal",
		TempC:     22,
		Condition: "Sunny",
		Sunrise:   days[0].Sunrise,
		Sunset:    days[0].Sunset,
		Forecast:  days,
	}
}

func newTestApp(provider weather.Provider) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, dashboard.NewService(provider))
	return app
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestDashboardRequiresCities(t *testing.T) {
	app := newTestApp(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestDashboardValidatesDimensionsAndDate(t *testing.T) {
	app := newTestApp(&stubProvider{})

	for _, target := range []string{
		"/api/v1/dashboard?cities=Kathmandu&width=100",
		"/api/v1/dashboard?cities=Kathmandu&height=4000",
		"/api/v1/dashboard?cities=Kathmandu&date=not-a-date",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestDashboardRejectsDateOutsideWindow(t *testing.T) {
	provider := &stubProvider{cities: map[string]weather.CityWeather{
		"Kathmandu": testCityWeather("Kathmandu", today()),
	}}
	app := newTestApp(provider)

	tooFar := today().AddDate(0, 0, 10).Format(time.DateOnly)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?cities=Kathmandu&date="+tooFar, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestDashboardTwoCities(t *testing.T) {
	start := today()
	provider := &stubProvider{cities: map[string]weather.CityWeather{
		"CityA": testCityWeather("CityA", start),
		"CityB": testCityWeather("CityB", start),
	}}
	app := newTestApp(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?cities=CityA,CityB", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		BuildID    string            `json:"build_id"`
		Width      int               `json:"width"`
		Height     int               `json:"height"`
		Cities     []json.RawMessage `json:"cities"`
		NotFound   []string          `json:"not_found"`
		Comparison struct {
			Columns []string `json:"columns"`
			Rows    []struct {
				Date   string             `json:"date"`
				Values map[string]float64 `json:"values"`
			} `json:"rows"`
		} `json:"comparison"`
		ExportRows int `json:"export_rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	resp.Body.Close()

	if body.BuildID == "" {
		t.Error("expected a build id")
	}
	if body.Width != 800 || body.Height != 800 {
		t.Errorf("expected default dimensions 800x800, got %dx%d", body.Width, body.Height)
	}
	if len(body.Cities) != 2 {
		t.Errorf("expected 2 city blocks, got %d", len(body.Cities))
	}
	if len(body.Comparison.Columns) != 4 {
		t.Errorf("expected 4 comparison columns, got %v", body.Comparison.Columns)
	}
	if len(body.Comparison.Rows) != 7 {
		t.Errorf("expected 7 comparison rows, got %d", len(body.Comparison.Rows))
	}
	if body.ExportRows != 14 {
		t.Errorf("expected 14 export rows, got %d", body.ExportRows)
	}
}

func TestDashboardCityNotFound(t *testing.T) {
	app := newTestApp(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?cities=Nowhereville", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("a not-found city is non-fatal; expected %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		NotFound   []string `json:"not_found"`
		ExportRows int      `json:"export_rows"`
		Comparison struct {
			Rows []json.RawMessage `json:"rows"`
		} `json:"comparison"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	resp.Body.Close()

	if len(body.NotFound) != 1 || body.NotFound[0] != "Nowhereville" {
		t.Errorf("not_found = %v", body.NotFound)
	}
	if body.ExportRows != 0 || len(body.Comparison.Rows) != 0 {
		t.Errorf("expected empty tables, got %d export rows and %d comparison rows",
			body.ExportRows, len(body.Comparison.Rows))
	}
}

func TestDashboardPerCityDates(t *testing.T) {
	start := today()
	provider := &stubProvider{cities: map[string]weather.CityWeather{
		"CityA": testCityWeather("CityA", start),
		"CityB": testCityWeather("CityB", start),
	}}
	app := newTestApp(provider)

	dateA := start.AddDate(0, 0, 1)
	dateB := start.AddDate(0, 0, 2)
	target := "/api/v1/dashboard?cities=CityA,CityB&dates=" +
		dateA.Format(time.DateOnly) + "," + dateB.Format(time.DateOnly)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Cities []struct {
			Selected *struct {
				Forecast struct {
					Date time.Time `json:"date"`
				} `json:"forecast"`
			} `json:"selected"`
		} `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	resp.Body.Close()

	if len(body.Cities) != 2 {
		t.Fatalf("expected 2 city blocks, got %d", len(body.Cities))
	}
	if sel := body.Cities[0].Selected; sel == nil || !sel.Forecast.Date.Equal(dateA) {
		t.Errorf("first city selected day = %+v, want %v", sel, dateA)
	}
	if sel := body.Cities[1].Selected; sel == nil || !sel.Forecast.Date.Equal(dateB) {
		t.Errorf("second city selected day = %+v, want %v", sel, dateB)
	}
}

func TestDashboardDatesMustMatchCities(t *testing.T) {
	start := today()
	provider := &stubProvider{cities: map[string]weather.CityWeather{
		"CityA": testCityWeather("CityA", start),
		"CityB": testCityWeather("CityB", start),
	}}
	app := newTestApp(provider)

	target := "/api/v1/dashboard?cities=CityA,CityB&dates=" + start.Format(time.DateOnly)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for a mismatched dates list, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestExportCSV(t *testing.T) {
	start := today()
	provider := &stubProvider{cities: map[string]weather.CityWeather{
		"CityA": testCityWeather("CityA", start),
		"CityB": testCityWeather("CityB", start),
	}}
	app := newTestApp(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/export?cities=CityA,CityB", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(cd, "weather_forecast.csv") {
		t.Errorf("content disposition = %q", cd)
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("body is not valid CSV: %v", err)
	}
	if len(records) != 15 {
		t.Fatalf("expected header + 14 data rows, got %d records", len(records))
	}
	if records[0][len(records[0])-1] != "city" {
		t.Errorf("last header column = %q, want city", records[0][len(records[0])-1])
	}
}

func TestExportIgnoresDateAndDimensions(t *testing.T) {
	start := today()
	provider := &stubProvider{cities: map[string]weather.CityWeather{
		"CityA": testCityWeather("CityA", start),
	}}
	app := newTestApp(provider)

	// The CSV never depends on the selected day or rendering hints, so
	// values that would fail dashboard validation still export fine.
	for _, target := range []string{
		"/api/v1/dashboard/export?cities=CityA&date=2030-01-01",
		"/api/v1/dashboard/export?cities=CityA&date=not-a-date",
		"/api/v1/dashboard/export?cities=CityA&width=100&height=4000",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("%s: body is not valid CSV: %v", target, err)
		}
		if len(records) != 8 {
			t.Errorf("%s: expected header + 7 data rows, got %d records", target, len(records))
		}
	}
}

func TestExportNothingResolved(t *testing.T) {
	app := newTestApp(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/export?cities=Nowhereville", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d when no city resolved, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
