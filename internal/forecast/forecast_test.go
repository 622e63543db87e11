package forecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHistory(n int, base float64) []datastore.MarketPrice {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	history := make([]datastore.MarketPrice, n)
	for i := range history {
		history[i] = datastore.MarketPrice{
			RedPrice:   base + float64(i),
			WhitePrice: (base + float64(i)) * 1.15,
			Date:       start.AddDate(0, 0, i),
		}
	}
	return history
}

func newTestForecaster(seed int64) *Forecaster {
	return &Forecaster{rng: rand.New(rand.NewSource(seed))}
}

func TestForecastEmptyHistory(t *testing.T) {
	f := newTestForecaster(1)
	predictions := f.Forecast(nil, time.Now())
	assert.Empty(t, predictions)
}

func TestForecastTrendHorizon(t *testing.T) {
	f := newTestForecaster(1)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	predictions := f.Forecast(testHistory(5, 400), now)
	require.Len(t, predictions, Horizon)

	for i, p := range predictions {
		assert.Equal(t, now.AddDate(0, 0, i+1), p.Date)
	}
}

func TestForecastTrendBounds(t *testing.T) {
	f := newTestForecaster(42)
	history := testHistory(10, 400)
	last := history[len(history)-1]

	predictions := f.Forecast(history, time.Now())
	require.Len(t, predictions, Horizon)

	for _, p := range predictions {
		assert.GreaterOrEqual(t, p.Red, last.RedPrice-20)
		assert.LessOrEqual(t, p.Red, last.RedPrice+30)
		assert.GreaterOrEqual(t, p.White, last.WhitePrice-20)
		assert.LessOrEqual(t, p.White, last.WhitePrice+30)
	}
}

func TestForecastDeterministicWithSeed(t *testing.T) {
	history := testHistory(10, 400)
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	a := newTestForecaster(7).Forecast(history, now)
	b := newTestForecaster(7).Forecast(history, now)
	assert.Equal(t, a, b)
}

func TestForecastWithoutModelUsesTrend(t *testing.T) {
	f := newTestForecaster(1)
	assert.False(t, f.HasModel())

	// Plenty of history, but no model loaded.
	predictions := f.Forecast(testHistory(30, 400), time.Now())
	assert.Len(t, predictions, Horizon)
}

func TestUniformRange(t *testing.T) {
	f := newTestForecaster(99)
	for i := 0; i < 1000; i++ {
		v := f.uniform(-0.02, 0.02)
		assert.GreaterOrEqual(t, v, -0.02)
		assert.Less(t, v, 0.02)
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i, want := range []int{0, 1, 2, 3, 4, 5, 6} {
		assert.Equal(t, want, weekdayIndex(monday.AddDate(0, 0, i)))
	}
}

func TestBuildFeatures(t *testing.T) {
	series := make([]float64, 14)
	for i := range series {
		series[i] = 400 + float64(i)
	}

	// 2026-08-30 is a Sunday.
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	f := buildFeatures(date, series)
	require.Len(t, f, FeatureCount)

	assert.Equal(t, float32(2026), f[featYear])
	assert.Equal(t, float32(8), f[featMonth])
	assert.Equal(t, float32(30), f[featDay])
	assert.Equal(t, float32(6), f[featDayOfWeek])
	assert.Equal(t, float32(1), f[featIsWeekend])

	assert.Equal(t, float32(413), f[featLag1])
	assert.Equal(t, float32(412), f[featLag2])
	assert.Equal(t, float32(411), f[featLag3])
	assert.Equal(t, float32(407), f[featLag7])
	assert.Equal(t, float32(400), f[featLag14])

	assert.InDelta(t, 410, f[featMA7], 0.001)
	assert.InDelta(t, 406.5, f[featMA14], 0.001)
	assert.InDelta(t, 2.0, f[featSTD7], 0.001)
	assert.Equal(t, float32(6), f[featPriceRange])
}

func TestStddev(t *testing.T) {
	assert.InDelta(t, 0, stddev([]float64{5, 5, 5}), 0.0001)
	assert.InDelta(t, 2, stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.0001)
	assert.Zero(t, stddev(nil))
}
