package builtin

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"toolbridge/internal/logging"
	"toolbridge/internal/tools"
)

// WeatherName is the registry name of the weather tool.
const WeatherName = "weather"

const (
	minForecastDays = 1
	maxForecastDays = 7
)

var conditions = []string{"sunny", "partly cloudy", "cloudy", "light rain", "rain", "thunderstorms", "fog", "snow"}

// WeatherParams are the decoded parameters of the weather tool.
type WeatherParams struct {
	Location        string `json:"location"`
	Units           string `json:"units"`
	IncludeForecast bool   `json:"include_forecast"`
	Days            int    `json:"days"`
}

// ForecastDay is one day of a forecast.
type ForecastDay struct {
	Day       int     `json:"day"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Condition string  `json:"condition"`
}

// WeatherResult is returned by the weather tool.
type WeatherResult struct {
	Location    string        `json:"location"`
	Units       string        `json:"units"`
	Temperature float64       `json:"temperature"`
	Condition   string        `json:"condition"`
	Humidity    int           `json:"humidity"`
	Forecast    []ForecastDay `json:"forecast,omitempty"`
}

// Weather reports mock weather. The same location always yields the same
// report; nothing leaves the process.
type Weather struct {
	latency time.Duration
}

var _ tools.Tool[WeatherParams, WeatherResult] = (*Weather)(nil)

// NewWeather returns the weather tool. latency simulates a slow upstream
// service and may be zero.
func NewWeather(latency time.Duration) *Weather {
	return &Weather{latency: latency}
}

func (w *Weather) Name() string { return WeatherName }

func (w *Weather) Description() string {
	return "Get the current weather and an optional forecast for a location"
}

func (w *Weather) Schema() tools.ToolSchema {
	return tools.ToolSchema{
		Required: []string{"location"},
		Properties: map[string]tools.Property{
			"location": {
				Type:        "string",
				Description: "City or place name",
			},
			"units": {
				Type:        "string",
				Description: "Temperature units",
				Default:     "celsius",
				Enum:        []any{"celsius", "fahrenheit"},
			},
			"include_forecast": {
				Type:        "boolean",
				Description: "Include a multi-day forecast",
				Default:     false,
			},
			"days": {
				Type:        "integer",
				Description: "Forecast length in days (1-7)",
				Default:     3,
			},
		},
	}
}

func (w *Weather) Execute(ctx context.Context, p WeatherParams) (WeatherResult, error) {
	location := strings.TrimSpace(p.Location)
	if location == "" {
		return WeatherResult{}, tools.InvalidParameters("location must not be empty")
	}
	if p.IncludeForecast && (p.Days < minForecastDays || p.Days > maxForecastDays) {
		return WeatherResult{}, tools.InvalidParametersf("days must be between %d and %d, got %d",
			minForecastDays, maxForecastDays, p.Days)
	}

	if err := w.wait(ctx); err != nil {
		return WeatherResult{}, err
	}

	seed := hashLocation(location, 0)
	res := WeatherResult{
		Location:    location,
		Units:       p.Units,
		Temperature: convertTemp(baseTemp(seed), p.Units),
		Condition:   conditions[seed%uint32(len(conditions))],
		Humidity:    30 + int(seed>>16%60),
	}

	if p.IncludeForecast {
		res.Forecast = make([]ForecastDay, p.Days)
		for i := range res.Forecast {
			day := i + 1
			s := hashLocation(location, day)
			high := baseTemp(s) + 4
			res.Forecast[i] = ForecastDay{
				Day:       day,
				High:      convertTemp(high, p.Units),
				Low:       convertTemp(high-float64(3+s>>24%8), p.Units),
				Condition: conditions[s%uint32(len(conditions))],
			}
		}
	}

	logging.ToolsDebug("weather: %s -> %.1f %s, %s", location, res.Temperature, res.Units, res.Condition)
	return res, nil
}

func (w *Weather) wait(ctx context.Context) error {
	if w.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(w.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func hashLocation(location string, day int) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(location)))
	_, _ = h.Write([]byte{byte(day)})
	return h.Sum32()
}

// baseTemp derives a Celsius temperature in [-5, 35) from seed.
func baseTemp(seed uint32) float64 {
	return float64(seed>>8%400)/10 - 5
}

func convertTemp(celsius float64, units string) float64 {
	if units == "fahrenheit" {
		celsius = celsius*9/5 + 32
	}
	return math.Round(celsius*10) / 10
}
