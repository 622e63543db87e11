// Package forecast produces 15-day arecanut price predictions from the
// stored market price history, using a regression model when one is
// available and a trend simulation otherwise.
package forecast

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/errors"
	"github.com/adikemitra/adike-go/internal/logging"
	tflite "github.com/tphakala/go-tflite"
)

// Horizon is the number of days predicted ahead.
const Horizon = 15

// minHistory is the number of historical rows needed to run the model,
// the deepest lag feature reaches back 14 days.
const minHistory = 14

// whitePremium models white arecanut trading at roughly 15% above red.
const whitePremium = 1.15

// Model output bounds in rupees. Predictions outside this range are
// replaced with a trend-based estimate.
const (
	minPlausible = 100
	maxPlausible = 1000
)

// Prediction is one forecast day.
type Prediction struct {
	Date  time.Time `json:"date"`
	Red   float64   `json:"red"`
	White float64   `json:"white"`
}

// Forecaster runs the price regression model. A Forecaster with a nil
// interpreter still works, falling back to trend simulation.
type Forecaster struct {
	interpreter *tflite.Interpreter
	rng         *rand.Rand
	mu          sync.Mutex
}

// New loads the price regression model from the configured path. A load
// failure is not fatal: the forecaster degrades to the simulation path
// and the problem is logged once at startup.
func New(settings *conf.Settings, rng *rand.Rand) *Forecaster {
	f := &Forecaster{rng: rng}

	interpreter, err := loadInterpreter(settings.Models.PricePath)
	if err != nil {
		logging.ForService("forecast").Warn("price model unavailable, using trend simulation",
			"model_path", settings.Models.PricePath,
			"error", err)
		return f
	}
	f.interpreter = interpreter
	return f
}

func loadInterpreter(modelPath string) (*tflite.Interpreter, error) {
	model := tflite.NewModelFromFile(modelPath)
	if model == nil {
		return nil, fmt.Errorf("cannot load model from path: %s", modelPath)
	}

	options := tflite.NewInterpreterOptions()
	options.SetNumThread(1)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		return nil, fmt.Errorf("cannot create interpreter")
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		return nil, fmt.Errorf("tensor allocation failed")
	}
	return interpreter, nil
}

// Delete releases the interpreter.
func (f *Forecaster) Delete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.interpreter != nil {
		f.interpreter.Delete()
		f.interpreter = nil
	}
}

// HasModel reports whether the regression model is loaded.
func (f *Forecaster) HasModel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interpreter != nil
}

// Forecast returns Horizon daily predictions starting the day after now.
// history must be ordered by date ascending. With fewer than minHistory
// rows, or no model, a trend simulation based on the last known price is
// used instead; with no history at all an empty slice is returned.
func (f *Forecaster) Forecast(history []datastore.MarketPrice, now time.Time) []Prediction {
	if f.HasModel() && len(history) >= minHistory {
		predictions, err := f.forecastModel(history, now)
		if err == nil {
			return predictions
		}
		logging.ForService("forecast").Error("model prediction failed, falling back to trend simulation",
			"error", err)
	}
	return f.forecastTrend(history, now)
}

func (f *Forecaster) forecastModel(history []datastore.MarketPrice, now time.Time) ([]Prediction, error) {
	// Rolling series seeded with the last 14 actuals; each iteration
	// appends its own prediction so later days lag on forecast values.
	series := make([]float64, 0, len(history)+Horizon)
	for _, p := range history[len(history)-minHistory:] {
		series = append(series, p.RedPrice)
	}

	recentAvg := 0.0
	for _, p := range history[max(0, len(history)-7):] {
		recentAvg += p.RedPrice
	}
	recentAvg /= float64(min(len(history), 7))

	predictions := make([]Prediction, 0, Horizon)
	for i := 1; i <= Horizon; i++ {
		date := now.AddDate(0, 0, i)

		red, err := f.invoke(buildFeatures(date, series))
		if err != nil {
			return nil, err
		}

		if red < minPlausible || red > maxPlausible {
			red = recentAvg * (1 + f.uniform(-0.02, 0.02))
		}

		predictions = append(predictions, Prediction{
			Date:  date,
			Red:   round2(red),
			White: round2(red * whitePremium),
		})

		series = append(series, red)
		if len(series) > 30 {
			series = series[1:]
		}
	}
	return predictions, nil
}

func (f *Forecaster) invoke(features []float32) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.interpreter == nil {
		return 0, errors.NewStd("price model is not loaded")
	}

	inputTensor := f.interpreter.GetInputTensor(0)
	if inputTensor == nil {
		return 0, errors.NewStd("cannot get input tensor")
	}
	copy(inputTensor.Float32s(), features)

	if status := f.interpreter.Invoke(); status != tflite.OK {
		return 0, fmt.Errorf("tensor invoke failed: %v", status)
	}

	outputTensor := f.interpreter.GetOutputTensor(0)
	if outputTensor == nil {
		return 0, errors.NewStd("cannot get output tensor")
	}
	out := outputTensor.Float32s()
	if len(out) == 0 {
		return 0, errors.NewStd("empty output tensor")
	}
	return float64(out[0]), nil
}

// forecastTrend predicts each day as the last known price plus a random
// drift, biased slightly upward.
func (f *Forecaster) forecastTrend(history []datastore.MarketPrice, now time.Time) []Prediction {
	if len(history) == 0 {
		return []Prediction{}
	}
	last := history[len(history)-1]

	predictions := make([]Prediction, 0, Horizon)
	for i := 1; i <= Horizon; i++ {
		predictions = append(predictions, Prediction{
			Date:  now.AddDate(0, 0, i),
			Red:   round2(last.RedPrice + f.uniform(-20, 30)),
			White: round2(last.WhitePrice + f.uniform(-20, 30)),
		})
	}
	return predictions
}

func (f *Forecaster) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
