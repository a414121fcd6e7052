package dashboard

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// exportHeader lists the CSV columns in the order the download has always
// used: the forecast-day fields followed by the city tag. No index column.
var exportHeader = []string{
	"date",
	"temp_day",
	"temp_night",
	"weather",
	"wind_kph",
	"humidity",
	"chance_of_rain",
	"uv",
	"sunrise",
	"sunset",
	"icon",
	"city",
}

// WriteCSV encodes the table as UTF-8 CSV: one header row plus one data row
// per forecast-day-per-city.
func (t *ExportTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range t.rows {
		record := []string{
			r.Day.Date.Format(time.DateOnly),
			formatFloat(r.Day.TempDay),
			formatFloat(r.Day.TempNight),
			r.Day.Condition,
			formatFloat(r.Day.WindKph),
			strconv.Itoa(r.Day.Humidity),
			strconv.Itoa(r.Day.ChanceOfRain),
			formatFloat(r.Day.UV),
			r.Day.Sunrise,
			r.Day.Sunset,
			r.Day.Icon,
			r.City,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
