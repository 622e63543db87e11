package forecast

import (
	"math"
	"time"
)

// FeatureCount is the width of the regression model's input vector.
const FeatureCount = 16

// Feature vector layout expected by the price model. Lag and moving
// average features are computed over the red price series in rupees.
const (
	featYear = iota
	featMonth
	featDay
	featDayOfWeek
	featIsWeekend
	featLag1
	featLag2
	featLag3
	featLag7
	featLag14
	featMA7
	featMA14
	featMA30
	featSTD7
	featSTD14
	featPriceRange
)

// weekdayIndex maps Go's Sunday-first weekday to the Monday-first index
// the model was trained with.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// buildFeatures assembles the model input for one prediction date. series
// is the rolling red price history, oldest first, at least 14 entries.
func buildFeatures(date time.Time, series []float64) []float32 {
	f := make([]float32, FeatureCount)
	f[featYear] = float32(date.Year())
	f[featMonth] = float32(date.Month())
	f[featDay] = float32(date.Day())

	dow := weekdayIndex(date)
	f[featDayOfWeek] = float32(dow)
	if dow >= 5 {
		f[featIsWeekend] = 1
	}

	f[featLag1] = float32(lag(series, 1))
	f[featLag2] = float32(lag(series, 2))
	f[featLag3] = float32(lag(series, 3))
	f[featLag7] = float32(lag(series, 7))
	f[featLag14] = float32(lag(series, 14))

	last7 := tail(series, 7)
	last14 := tail(series, 14)
	last30 := tail(series, 30)

	f[featMA7] = float32(mean(last7))
	f[featMA14] = float32(mean(last14))
	f[featMA30] = float32(mean(last30))
	f[featSTD7] = float32(stddev(last7))
	f[featSTD14] = float32(stddev(last14))

	minP, maxP := bounds(last7)
	f[featPriceRange] = float32(maxP - minP)

	return f
}

func lag(series []float64, n int) float64 {
	return series[len(series)-n]
}

func tail(series []float64, n int) []float64 {
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// stddev is the population standard deviation.
func stddev(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := mean(v)
	sum := 0.0
	for _, x := range v {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(v)))
}

func bounds(v []float64) (minV, maxV float64) {
	if len(v) == 0 {
		return 0, 0
	}
	minV, maxV = v[0], v[0]
	for _, x := range v[1:] {
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
	}
	return minV, maxV
}
