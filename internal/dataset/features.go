package dataset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode indicates an image that could not be opened or decoded.
var ErrDecode = errors.New("dataset: cannot decode image")

// Features converts img to a row-major size*size vector of grayscale
// intensities scaled to [0, 1]. The image is converted to 8-bit luma first
// and then resampled bilinearly.
func Features(img image.Image, size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dataset: invalid feature grid %d", size)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	resized := image.NewGray(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(resized, resized.Bounds(), gray, bounds, draw.Src, nil)

	features := make([]float64, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			features[r*size+c] = float64(resized.GrayAt(c, r).Y) / 255.0
		}
	}
	return features, nil
}

// DecodeFeatures decodes an image from r and returns its feature vector.
func DecodeFeatures(r io.Reader, size int) ([]float64, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Features(img, size)
}

// FeaturesFromFile opens path and returns its feature vector. Any failure
// to open or decode the file matches ErrDecode.
func FeaturesFromFile(path string, size int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	features, err := DecodeFeatures(f, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return features, nil
}
