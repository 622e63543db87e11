package classifier

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreprocessResizesToModelInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	sample, err := Preprocess(encodePNG(t, img))
	require.NoError(t, err)
	assert.Len(t, sample, InputSize)
}

func TestPreprocessNormalizesChannels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 127, B: 0, A: 255})
		}
	}

	sample, err := Preprocess(encodePNG(t, img))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, sample[0], 0.01)
	assert.InDelta(t, 0.5, sample[1], 0.01)
	assert.InDelta(t, 0.0, sample[2], 0.01)

	for _, v := range sample {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestPreprocessRejectsGarbage(t *testing.T) {
	_, err := Preprocess([]byte("not an image"))
	assert.Error(t, err)
}

func TestPreprocessFileMissing(t *testing.T) {
	_, err := PreprocessFile("testdata/does-not-exist.png")
	assert.Error(t, err)
}
