// Package weather provides weather observations, a short-range forecast
// and a spraying advisory for the farm's location. The simulated provider
// stands in until a real meteorological API is wired up.
package weather

import (
	"math/rand"
	"time"
)

// DefaultLocation is used when the user has not set a farm location.
const DefaultLocation = "Mangalore, Karnataka"

// ForecastDays is the length of the daily forecast.
const ForecastDays = 7

// Risk levels for the spraying advisory.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Current is a point-in-time weather observation.
type Current struct {
	Temperature     int     `json:"temperature"`
	Humidity        int     `json:"humidity"`
	RainProbability int     `json:"rain_probability"`
	WindSpeed       float64 `json:"wind_speed"`
	Condition       string  `json:"condition"`
}

// Day is one entry of the daily forecast.
type Day struct {
	Date            time.Time `json:"date"`
	Day             string    `json:"day"`
	TempMax         int       `json:"temp_max"`
	TempMin         int       `json:"temp_min"`
	RainProbability int       `json:"rain_probability"`
	Condition       string    `json:"condition"`
}

// Advisory is the spraying guidance derived from the rain outlook.
type Advisory struct {
	Message   string `json:"message"`
	RiskLevel string `json:"risk_level"`
}

// Provider supplies weather data for a location.
type Provider interface {
	Current(location string) Current
	Forecast(location string, days int) []Day
}

var conditions = []string{"Sunny", "Cloudy", "Rainy", "Partly Cloudy"}

// SimulatedProvider generates plausible coastal Karnataka weather.
type SimulatedProvider struct {
	rng *rand.Rand
}

// NewSimulatedProvider creates a simulated weather source.
func NewSimulatedProvider(rng *rand.Rand) *SimulatedProvider {
	return &SimulatedProvider{rng: rng}
}

// Current returns a simulated observation.
func (p *SimulatedProvider) Current(location string) Current {
	return Current{
		Temperature:     25 + p.rng.Intn(11),
		Humidity:        60 + p.rng.Intn(31),
		RainProbability: p.rng.Intn(101),
		WindSpeed:       round1(5 + p.rng.Float64()*15),
		Condition:       conditions[p.rng.Intn(len(conditions))],
	}
}

// Forecast returns a simulated daily forecast starting today.
func (p *SimulatedProvider) Forecast(location string, days int) []Day {
	now := time.Now()
	forecast := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i)
		forecast = append(forecast, Day{
			Date:            date,
			Day:             date.Weekday().String(),
			TempMax:         28 + p.rng.Intn(8),
			TempMin:         20 + p.rng.Intn(7),
			RainProbability: p.rng.Intn(101),
			Condition:       conditions[p.rng.Intn(len(conditions))],
		})
	}
	return forecast
}

// AdvisoryFor maps the current rain probability onto spraying guidance.
func AdvisoryFor(current Current) Advisory {
	switch {
	case current.RainProbability > 60:
		return Advisory{
			Message:   "Rain expected today — avoid pesticide spraying. Best time to spray: Tomorrow 7 AM – 11 AM.",
			RiskLevel: RiskHigh,
		}
	case current.RainProbability > 30:
		return Advisory{
			Message:   "Moderate rain chance. Monitor weather closely before spraying.",
			RiskLevel: RiskMedium,
		}
	default:
		return Advisory{
			Message:   "Weather favorable for spraying. Best time: 7 AM – 11 AM.",
			RiskLevel: RiskLow,
		}
	}
}

// SprayWarning is the short warning attached to a disease detection,
// based on a fresh rain probability reading.
func SprayWarning(rainChance int) string {
	if rainChance > 60 {
		return "Do not spray today, rain expected. Spraying safe tomorrow between 6-10 AM."
	}
	return "Weather is favorable for spraying. Best time: 7 AM - 11 AM."
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
