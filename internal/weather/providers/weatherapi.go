package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/rbasnet/weather-dashboard/internal/weather"
)

// forecastDays is the fixed forecast horizon requested per city.
const forecastDays = 7

// WeatherAPIProvider implements the weather.Provider interface for
// WeatherAPI.com's forecast.json endpoint.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "http://api.weatherapi.com/v1/forecast.json",
		client:  client,
		circuit: cb,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Fetch issues one GET for the city's current conditions and 7-day forecast.
// A provider-reported error body (unknown city, bad query) is converted to
// weather.ErrCityNotFound; everything else propagates as-is.
func (p *WeatherAPIProvider) Fetch(ctx context.Context, city string) (weather.CityWeather, error) {
	if p.apiKey == "" {
		return weather.CityWeather{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", strings.TrimSpace(city))
		values.Set("days", strconv.Itoa(forecastDays))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.CityWeather{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CityWeather{}, fmt.Errorf("decode weatherapi response: %w", err)
	}

	if payload.Error != nil {
		return weather.CityWeather{}, fmt.Errorf("%w: %s", weather.ErrCityNotFound, payload.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return weather.CityWeather{}, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return normalizeForecast(&payload)
}
