package classifier

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/adikemitra/adike-go/internal/errors"
)

// PreprocessFile reads an image file, resizes it to the model input size and
// returns the normalized float32 sample ready for inference.
func PreprocessFile(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("classifier").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return Preprocess(data)
}

// Preprocess decodes image bytes, resizes to 150x150 and scales each RGB
// channel to [0, 1].
func Preprocess(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New(err).
			Component("classifier").
			Category(errors.CategoryImageDecode).
			Build()
	}

	resized := image.NewRGBA(image.Rect(0, 0, ImgWidth, ImgHeight))
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	sample := make([]float32, InputSize)
	i := 0
	for y := 0; y < ImgHeight; y++ {
		for x := 0; x < ImgWidth; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			sample[i] = float32(r>>8) / 255.0
			sample[i+1] = float32(g>>8) / 255.0
			sample[i+2] = float32(b>>8) / 255.0
			i += 3
		}
	}

	return sample, nil
}
