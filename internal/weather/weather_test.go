package weather

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentWithinRanges(t *testing.T) {
	p := NewSimulatedProvider(rand.New(rand.NewSource(1)))

	for i := 0; i < 200; i++ {
		c := p.Current(DefaultLocation)
		assert.GreaterOrEqual(t, c.Temperature, 25)
		assert.LessOrEqual(t, c.Temperature, 35)
		assert.GreaterOrEqual(t, c.Humidity, 60)
		assert.LessOrEqual(t, c.Humidity, 90)
		assert.GreaterOrEqual(t, c.RainProbability, 0)
		assert.LessOrEqual(t, c.RainProbability, 100)
		assert.GreaterOrEqual(t, c.WindSpeed, 5.0)
		assert.LessOrEqual(t, c.WindSpeed, 20.0)
		assert.Contains(t, conditions, c.Condition)
	}
}

func TestForecastLength(t *testing.T) {
	p := NewSimulatedProvider(rand.New(rand.NewSource(1)))

	forecast := p.Forecast(DefaultLocation, ForecastDays)
	require.Len(t, forecast, ForecastDays)

	for i, day := range forecast {
		assert.Equal(t, day.Date.Weekday().String(), day.Day)
		assert.GreaterOrEqual(t, day.TempMax, day.TempMin)
		if i > 0 {
			assert.True(t, day.Date.After(forecast[i-1].Date))
		}
	}
}

func TestAdvisoryRiskLevels(t *testing.T) {
	tests := []struct {
		name     string
		rain     int
		wantRisk string
	}{
		{"dry day", 0, RiskLow},
		{"boundary thirty", 30, RiskLow},
		{"moderate chance", 31, RiskMedium},
		{"boundary sixty", 60, RiskMedium},
		{"likely rain", 61, RiskHigh},
		{"certain rain", 100, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AdvisoryFor(Current{RainProbability: tt.rain})
			assert.Equal(t, tt.wantRisk, a.RiskLevel)
			assert.NotEmpty(t, a.Message)
		})
	}
}

func TestSprayWarning(t *testing.T) {
	assert.Contains(t, SprayWarning(80), "Do not spray")
	assert.Contains(t, SprayWarning(60), "favorable")
	assert.Contains(t, SprayWarning(10), "favorable")
}
