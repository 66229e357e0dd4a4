// Package inference scores single images against a trained parameter file.
package inference

import (
	"errors"
	"fmt"

	"perceptron/internal/dataset"
	"perceptron/internal/model"
)

// ErrIncomplete indicates a parameter file with fewer values than the shape
// requires.
var ErrIncomplete = errors.New("inference: parameter file is incomplete")

// Predictor runs the forward pass against a fixed set of parameters. It
// never modifies them.
type Predictor struct {
	params *model.Params
}

// New wraps already loaded parameters.
func New(params *model.Params) *Predictor {
	return &Predictor{params: params}
}

// Open loads a parameter file written for shape. Unlike model.Params.Load,
// a file that ends early is an error here.
func Open(path string, shape model.Shape) (*Predictor, error) {
	params, err := model.New(shape)
	if err != nil {
		return nil, err
	}
	n, err := params.Load(path)
	if err != nil {
		return nil, err
	}
	if want := shape.Count(); n < want {
		return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrIncomplete, path, n, want)
	}
	return New(params), nil
}

// Shape returns the topology of the loaded network.
func (p *Predictor) Shape() model.Shape {
	return p.params.Shape()
}

// Predict returns the first output activation for x, in (0, 1).
func (p *Predictor) Predict(x []float64) (float64, error) {
	_, output, err := p.params.Forward(x)
	if err != nil {
		return 0, err
	}
	return output[0], nil
}

// PredictImage extracts features from the image at path and scores them.
// The feature grid is derived from the input width, which must be a
// perfect square.
func (p *Predictor) PredictImage(path string) (float64, error) {
	size := gridSize(p.params.Shape().Input)
	if size == 0 {
		return 0, fmt.Errorf("%w: input width %d is not a square grid", model.ErrShape, p.params.Shape().Input)
	}
	x, err := dataset.FeaturesFromFile(path, size)
	if err != nil {
		return 0, err
	}
	return p.Predict(x)
}

func gridSize(n int) int {
	for s := 1; s*s <= n; s++ {
		if s*s == n {
			return s
		}
	}
	return 0
}
