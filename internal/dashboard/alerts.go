package dashboard

import (
	"github.com/rbasnet/weather-dashboard/internal/weather"
)

// Alert identifies an extreme-weather banner for a forecast day.
type Alert string

const (
	AlertHotDay         Alert = "hot_day"
	AlertColdDay        Alert = "cold_day"
	AlertHighUV         Alert = "high_uv"
	AlertHighRainChance Alert = "high_rain_chance"
)

// Alert thresholds. Day temperature bounds are exclusive (a 35.0 degree day
// raises nothing), UV and rain chance are inclusive.
const (
	hotDayAboveC    = 35.0
	coldDayBelowC   = 10.0
	highUVAtLeast   = 7.0
	highRainAtLeast = 50
)

// EvaluateAlerts checks a forecast day against the fixed thresholds. Each
// rule is evaluated independently, so a day can raise several alerts; hot and
// cold are disjoint by construction.
func EvaluateAlerts(day weather.ForecastDay) []Alert {
	var alerts []Alert
	if day.TempDay > hotDayAboveC {
		alerts = append(alerts, AlertHotDay)
	} else if day.TempDay < coldDayBelowC {
		alerts = append(alerts, AlertColdDay)
	}
	if day.UV >= highUVAtLeast {
		alerts = append(alerts, AlertHighUV)
	}
	if day.ChanceOfRain >= highRainAtLeast {
		alerts = append(alerts, AlertHighRainChance)
	}
	return alerts
}
