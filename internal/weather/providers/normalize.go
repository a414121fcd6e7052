package providers

import (
	"errors"
	"fmt"
	"time"

	"github.com/rbasnet/weather-dashboard/internal/weather"
)

var errEmptyForecast = errors.New("response contains no forecast days")

// forecastPayload mirrors the parts of WeatherAPI's forecast.json response
// that feed the dashboard. The Error field is populated instead of the data
// fields when the provider rejects the query.
type forecastPayload struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Humidity  int     `json:"humidity"`
		WindKph   float64 `json:"wind_kph"`
		WindDir   string  `json:"wind_dir"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date string `json:"date"`
			Day  struct {
				MaxtempC          float64 `json:"maxtemp_c"`
				MintempC          float64 `json:"mintemp_c"`
				MaxwindKph        float64 `json:"maxwind_kph"`
				Avghumidity       float64 `json:"avghumidity"`
				DailyChanceOfRain int     `json:"daily_chance_of_rain"`
				UV                float64 `json:"uv"`
				Condition         struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// normalizeForecast flattens the provider's nested structures into a
// CityWeather. Numeric fields pass through unmodified (metric only), forecast
// order is preserved as given, and the snapshot's sunrise/sunset are copied
// from the first forecast day.
func normalizeForecast(p *forecastPayload) (weather.CityWeather, error) {
	days := make([]weather.ForecastDay, 0, len(p.Forecast.Forecastday))
	for _, fd := range p.Forecast.Forecastday {
		// Dates arrive as YYYY-MM-DD and are parsed naive, no timezone
		// conversion.
		date, err := time.Parse(time.DateOnly, fd.Date)
		if err != nil {
			return weather.CityWeather{}, fmt.Errorf("parse forecast date %q: %w", fd.Date, err)
		}

		days = append(days, weather.ForecastDay{
			Date:         date,
			TempDay:      fd.Day.MaxtempC,
			TempNight:    fd.Day.MintempC,
			Condition:    fd.Day.Condition.Text,
			WindKph:      fd.Day.MaxwindKph,
			Humidity:     int(fd.Day.Avghumidity),
			ChanceOfRain: fd.Day.DailyChanceOfRain,
			UV:           fd.Day.UV,
			Sunrise:      fd.Astro.Sunrise,
			Sunset:       fd.Astro.Sunset,
			Icon:         absoluteIconURL(fd.Day.Condition.Icon),
		})
	}
	if len(days) == 0 {
		return weather.CityWeather{}, errEmptyForecast
	}

	return weather.CityWeather{
		City:      p.Location.Name,
		Region:    p.Location.Region,
		Country:   p.Location.Country,
		TempC:     p.Current.TempC,
		Humidity:  p.Current.Humidity,
		Condition: p.Current.Condition.Text,
		WindKph:   p.Current.WindKph,
		WindDir:   p.Current.WindDir,
		Sunrise:   days[0].Sunrise,
		Sunset:    days[0].Sunset,
		Icon:      absoluteIconURL(p.Current.Condition.Icon),
		Forecast:  days,
	}, nil
}

// absoluteIconURL turns WeatherAPI's protocol-relative icon paths
// ("//cdn.weatherapi.com/...") into absolute URLs. The prefix is applied
// unconditionally, so an input that already carries a scheme ends up with a
// second one; kept as-is to match the upstream dashboard behavior.
func absoluteIconURL(icon string) string {
	return "http:" + icon
}
