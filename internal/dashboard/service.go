package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rbasnet/weather-dashboard/internal/weather"
)

// ForecastHorizonDays is the fixed forecast window requested per city.
const ForecastHorizonDays = 7

// ErrDateOutOfRange is returned when the selected forecast date lies outside
// [today, today+6].
var ErrDateOutOfRange = errors.New("selected date is outside the forecast window")

// BuildRequest is everything one dashboard build depends on. A build is a
// pure function of the city list, current date, selected dates, and rendering
// hints; no state survives between builds.
type BuildRequest struct {
	// Cities in user-given order, whitespace-trimmed but otherwise raw.
	Cities []string

	// SelectedDate picks the forecast day detailed for cities without a
	// per-city entry in SelectedDates. Zero value selects today.
	SelectedDate time.Time

	// SelectedDates optionally picks a forecast date per city, aligned by
	// index with Cities. Zero entries, and cities beyond the slice's
	// length, fall back to SelectedDate. Every resolved date must lie
	// within the forecast window.
	SelectedDates []time.Time

	// Width and Height are rendering hints passed through to the front-end.
	Width  int
	Height int

	// Today overrides the current date; zero value uses the wall clock.
	Today time.Time
}

// SelectedDay is the detailed view of the chosen forecast date for one city.
type SelectedDay struct {
	Day       weather.ForecastDay `json:"forecast"`
	Animation string              `json:"animation,omitempty"`
	Alerts    []Alert             `json:"alerts,omitempty"`
}

// CityView is one successfully fetched city: its snapshot, animation lookups,
// and the selected forecast day when the city's forecast covers it.
type CityView struct {
	Weather    weather.CityWeather `json:"weather"`
	Animation  string              `json:"animation,omitempty"`
	Background string              `json:"background,omitempty"`
	Selected   *SelectedDay        `json:"selected,omitempty"`
}

// Dashboard is the complete output of one build pass.
type Dashboard struct {
	BuildID    string
	Width      int
	Height     int
	Cities     []CityView
	NotFound   []string
	Comparison *ComparisonTable
	Export     *ExportTable
}

// Service runs dashboard builds against a weather provider.
type Service struct {
	provider weather.Provider
}

func NewService(provider weather.Provider) *Service {
	return &Service{provider: provider}
}

// Build fetches each requested city in order, normalizes it, and folds it
// into the comparison and export tables.
//
// A city the provider cannot resolve is recorded in NotFound and skipped;
// the remaining cities proceed. A transport or response-shape failure aborts
// the whole pass with no partial output.
func (s *Service) Build(ctx context.Context, req BuildRequest) (*Dashboard, error) {
	today := req.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}
	today = truncateToDay(today)

	defaultDate := req.SelectedDate
	if defaultDate.IsZero() {
		defaultDate = today
	}
	defaultDate = truncateToDay(defaultDate)

	lastDay := today.AddDate(0, 0, ForecastHorizonDays-1)

	// Resolve and validate every city's selected date before any network
	// call, so a bad date never triggers a partial pass.
	selected := make([]time.Time, len(req.Cities))
	for i := range req.Cities {
		d := defaultDate
		if i < len(req.SelectedDates) && !req.SelectedDates[i].IsZero() {
			d = truncateToDay(req.SelectedDates[i])
		}
		if d.Before(today) || d.After(lastDay) {
			return nil, fmt.Errorf("%w: %s", ErrDateOutOfRange, d.Format(time.DateOnly))
		}
		selected[i] = d
	}

	board := &Dashboard{
		BuildID:    uuid.NewString(),
		Width:      req.Width,
		Height:     req.Height,
		Comparison: NewComparisonTable(),
		Export:     &ExportTable{},
	}

	for i, city := range req.Cities {
		city = strings.TrimSpace(city)

		cw, err := s.provider.Fetch(ctx, city)
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				log.Printf("build %s: city %q not found: %v", board.BuildID, city, err)
				board.NotFound = append(board.NotFound, city)
				continue
			}
			return nil, fmt.Errorf("fetch weather for %q: %w", city, err)
		}

		view := CityView{
			Weather:    cw,
			Animation:  ConditionAnimation(cw.Condition),
			Background: BackgroundAnimation(cw.Condition),
		}
		if day, ok := forecastOn(cw.Forecast, selected[i]); ok {
			view.Selected = &SelectedDay{
				Day:       day,
				Animation: ConditionAnimation(day.Condition),
				Alerts:    EvaluateAlerts(day),
			}
		}

		board.Comparison.AddCity(cw)
		board.Export.AddCity(cw)
		board.Cities = append(board.Cities, view)
	}

	return board, nil
}

// forecastOn finds the forecast entry for a calendar date, if present.
func forecastOn(forecast []weather.ForecastDay, date time.Time) (weather.ForecastDay, bool) {
	for _, fd := range forecast {
		if fd.Date.Equal(date) {
			return fd, true
		}
	}
	return weather.ForecastDay{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
