// classifier.go arecanut disease classifier model specific code
package classifier

import (
	"fmt"
	"sync"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/errors"
	tflite "github.com/tphakala/go-tflite"
)

// Model input dimensions, both disease classifiers take a 150x150 RGB image.
const (
	ImgWidth  = 150
	ImgHeight = 150
	InputSize = ImgWidth * ImgHeight * 3
)

// InfectionThreshold is the probability above which a sample is classified
// as infected.
const InfectionThreshold = 0.5

// DiseaseKind selects which classifier model to run.
type DiseaseKind string

const (
	YellowLeaf DiseaseKind = "yellow_leaf"
	FruitRot   DiseaseKind = "fruit_rot"
	Both       DiseaseKind = "both"
)

// ValidKind reports whether the given detection type selector is supported.
func ValidKind(kind string) bool {
	switch DiseaseKind(kind) {
	case YellowLeaf, FruitRot, Both:
		return true
	}
	return false
}

// Classifier wraps the two disease detection models. Model handles are
// loaded once at process start and shared read-only across requests,
// invocations are serialized with a mutex.
type Classifier struct {
	yellowLeaf *tflite.Interpreter
	fruitRot   *tflite.Interpreter
	Settings   *conf.Settings
	mu         sync.Mutex
}

// New initializes a Classifier instance with both disease models loaded
// from the configured paths.
func New(settings *conf.Settings) (*Classifier, error) {
	c := &Classifier{Settings: settings}

	var err error
	c.yellowLeaf, err = loadInterpreter(settings.Models.YellowLeafPath)
	if err != nil {
		return nil, errors.New(fmt.Errorf("classifier: failed to initialize yellow leaf model: %w", err)).
			Component("classifier").
			Category(errors.CategoryModelInit).
			Context("model_path", settings.Models.YellowLeafPath).
			Build()
	}

	c.fruitRot, err = loadInterpreter(settings.Models.FruitRotPath)
	if err != nil {
		return nil, errors.New(fmt.Errorf("classifier: failed to initialize fruit rot model: %w", err)).
			Component("classifier").
			Category(errors.CategoryModelInit).
			Context("model_path", settings.Models.FruitRotPath).
			Build()
	}

	return c, nil
}

// loadInterpreter loads a TensorFlow Lite model from the given path and
// creates an allocated interpreter for it.
func loadInterpreter(modelPath string) (*tflite.Interpreter, error) {
	model := tflite.NewModelFromFile(modelPath)
	if model == nil {
		return nil, fmt.Errorf("cannot load model from path: %s", modelPath)
	}

	options := tflite.NewInterpreterOptions()
	options.SetNumThread(1)
	options.SetErrorReporter(func(msg string, userData any) {
		getLogger().Error("TFLite error", "message", msg)
	}, nil)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		return nil, fmt.Errorf("cannot create interpreter")
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		return nil, fmt.Errorf("tensor allocation failed")
	}

	return interpreter, nil
}

// Delete releases the interpreters. Call on process shutdown.
func (c *Classifier) Delete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.yellowLeaf != nil {
		c.yellowLeaf.Delete()
		c.yellowLeaf = nil
	}
	if c.fruitRot != nil {
		c.fruitRot.Delete()
		c.fruitRot = nil
	}
}

// Predict performs inference on a preprocessed image sample and returns the
// infection probability reported by the selected model.
func (c *Classifier) Predict(sample []float32, kind DiseaseKind) (float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var interpreter *tflite.Interpreter
	switch kind {
	case YellowLeaf:
		interpreter = c.yellowLeaf
	case FruitRot:
		interpreter = c.fruitRot
	default:
		return 0, fmt.Errorf("unknown disease kind: %s", kind)
	}
	if interpreter == nil {
		return 0, fmt.Errorf("model for %s is not loaded", kind)
	}

	inputTensor := interpreter.GetInputTensor(0)
	if inputTensor == nil {
		return 0, fmt.Errorf("cannot get input tensor")
	}
	copy(inputTensor.Float32s(), sample)

	if status := interpreter.Invoke(); status != tflite.OK {
		return 0, fmt.Errorf("tensor invoke failed: %v", status)
	}

	outputTensor := interpreter.GetOutputTensor(0)
	if outputTensor == nil {
		return 0, fmt.Errorf("cannot get output tensor")
	}
	out := outputTensor.Float32s()
	if len(out) == 0 {
		return 0, fmt.Errorf("empty output tensor")
	}

	return out[0], nil
}
