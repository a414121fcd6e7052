package dashboard

import (
	"strings"

	"github.com/rbasnet/weather-dashboard/internal/common"
)

// Lottie animation assets the rendering front-end plays for each condition
// family.
const (
	lottieSun     = "https://assets3.lottiefiles.com/packages/lf20_sun.json"
	lottieCloudy  = "https://assets5.lottiefiles.com/packages/lf20_cloudy.json"
	lottieRain    = "https://assets3.lottiefiles.com/packages/lf20_rain.json"
	lottieSnow    = "https://assets3.lottiefiles.com/packages/lf20_snow.json"
	lottieThunder = "https://assets3.lottiefiles.com/packages/lf20_thunder.json"
	lottieFog     = "https://assets3.lottiefiles.com/packages/lf20_fog.json"
)

type animationRule struct {
	key string
	url string
}

// Rule order matters: the first key found in the condition text wins.
var conditionAnimations = []animationRule{
	{"Sunny", lottieSun},
	{"Clear", lottieSun},
	{"Partly cloudy", lottieCloudy},
	{"Cloudy", lottieCloudy},
	{"Rain", lottieRain},
	{"Snow", lottieSnow},
	{"Thunderstorm", lottieThunder},
	{"Mist", lottieFog},
}

// ConditionAnimation resolves a condition text to an animation URL via
// ordered case-insensitive substring rules. Returns "" when no rule matches,
// in which case the front-end falls back to the provider's icon.
func ConditionAnimation(condition string) string {
	lower := strings.ToLower(condition)
	for _, rule := range conditionAnimations {
		if strings.Contains(lower, strings.ToLower(rule.key)) {
			return rule.url
		}
	}
	return ""
}

// BackgroundAnimation picks the full-page background animation for a
// condition, bucketing loosely by condition family. Returns "" when no bucket
// applies.
func BackgroundAnimation(condition string) string {
	switch {
	case common.HasAny(condition, "sun", "clear"):
		return lottieSun
	case common.HasAny(condition, "cloud"):
		return lottieCloudy
	case common.HasAny(condition, "rain", "thunder"):
		return lottieRain
	case common.HasAny(condition, "snow"):
		return lottieSnow
	default:
		return ""
	}
}
