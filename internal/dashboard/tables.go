package dashboard

import (
	"sort"
	"time"

	"github.com/rbasnet/weather-dashboard/internal/weather"
)

// ComparisonTable is the wide-format, date-indexed temperature table behind
// the cross-city comparison chart. Each merged city contributes two series,
// "{city}_day" and "{city}_night", outer-joined on date: a city missing a
// date that another city has simply leaves that cell undefined.
//
// Nothing is deduplicated; merging the same city twice records its series
// names twice, matching the dashboard's behavior for repeated input.
type ComparisonTable struct {
	columns []string
	cells   map[string]map[string]float64
}

// ComparisonRow is one date's slice of the table, with only the defined cells.
type ComparisonRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

func NewComparisonTable() *ComparisonTable {
	return &ComparisonTable{
		cells: make(map[string]map[string]float64),
	}
}

// AddCity merges one city's day/night temperature series into the table.
func (t *ComparisonTable) AddCity(cw weather.CityWeather) {
	dayCol := cw.City + "_day"
	nightCol := cw.City + "_night"
	t.columns = append(t.columns, dayCol, nightCol)

	for _, fd := range cw.Forecast {
		key := fd.Date.Format(time.DateOnly)
		row, ok := t.cells[key]
		if !ok {
			row = make(map[string]float64, 2)
			t.cells[key] = row
		}
		row[dayCol] = fd.TempDay
		row[nightCol] = fd.TempNight
	}
}

// Columns returns the series names in city arrival order.
func (t *ComparisonTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Dates returns all forecast dates present in the table, ascending.
func (t *ComparisonTable) Dates() []string {
	dates := make([]string, 0, len(t.cells))
	for d := range t.cells {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Value returns the temperature for a date/series cell, and whether it is
// defined.
func (t *ComparisonTable) Value(date, column string) (float64, bool) {
	row, ok := t.cells[date]
	if !ok {
		return 0, false
	}
	v, ok := row[column]
	return v, ok
}

// Rows returns the table in row form, date-ascending, for charting.
func (t *ComparisonTable) Rows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(t.cells))
	for _, d := range t.Dates() {
		values := make(map[string]float64, len(t.cells[d]))
		for col, v := range t.cells[d] {
			values[col] = v
		}
		rows = append(rows, ComparisonRow{Date: d, Values: values})
	}
	return rows
}

// Len returns the number of date rows.
func (t *ComparisonTable) Len() int {
	return len(t.cells)
}

// ExportRow is one forecast day tagged with its city, long-format.
type ExportRow struct {
	City string              `json:"city"`
	Day  weather.ForecastDay `json:"day"`
}

// ExportTable is the append-only long-format row set behind the CSV download.
// Rows keep city arrival order and, within a city, forecast order.
type ExportTable struct {
	rows []ExportRow
}

// AddCity appends all of a city's forecast days.
func (t *ExportTable) AddCity(cw weather.CityWeather) {
	for _, fd := range cw.Forecast {
		t.rows = append(t.rows, ExportRow{City: cw.City, Day: fd})
	}
}

func (t *ExportTable) Rows() []ExportRow {
	out := make([]ExportRow, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *ExportTable) Len() int {
	return len(t.rows)
}
