package weather

import (
	"time"
)

// ForecastDay is one calendar date's outlook for a city. Temperatures are in
// Celsius, wind in kph, humidity and rain chance in whole percent. Sunrise and
// sunset are the provider's local time-of-day strings (e.g. "06:15 AM").
type ForecastDay struct {
	Date         time.Time `json:"date"`
	TempDay      float64   `json:"temp_day"`
	TempNight    float64   `json:"temp_night"`
	Condition    string    `json:"weather"`
	WindKph      float64   `json:"wind_kph"`
	Humidity     int       `json:"humidity"`
	ChanceOfRain int       `json:"chance_of_rain"`
	UV           float64   `json:"uv"`
	Sunrise      string    `json:"sunrise"`
	Sunset       string    `json:"sunset"`
	Icon         string    `json:"icon"`
}

// CityWeather is one city's current snapshot plus its forecast, rebuilt from
// scratch on every fetch and never persisted.
//
// Forecast is ordered as the provider returned it (ascending by date, starting
// today) and is always non-empty. Sunrise and Sunset are copied from the first
// forecast day.
type CityWeather struct {
	City      string        `json:"city"`
	Region    string        `json:"region"`
	Country   string        `json:"country"`
	TempC     float64       `json:"temp"`
	Humidity  int           `json:"humidity"`
	Condition string        `json:"weather"`
	WindKph   float64       `json:"wind_kph"`
	WindDir   string        `json:"wind_dir"`
	Sunrise   string        `json:"sunrise"`
	Sunset    string        `json:"sunset"`
	Icon      string        `json:"icon"`
	Forecast  []ForecastDay `json:"forecast"`
}
