// Package model holds the parameters of a two-layer sigmoid perceptron and
// the forward and backward passes over them.
package model

import "fmt"

// ImageSize is the side of the square grayscale grid fed to the network.
const ImageSize = 32

// Shape fixes the widths of the input, hidden and output layers.
//
// The parameter file carries no header, so the writer and the reader of a
// file must agree on the Shape out of band.
type Shape struct {
	Input  int
	Hidden int
	Output int
}

// DefaultShape is the production topology: a flattened 32x32 image, 64
// hidden units and one output unit.
var DefaultShape = Shape{Input: ImageSize * ImageSize, Hidden: 64, Output: 1}

// Validate reports whether every layer has at least one unit.
func (s Shape) Validate() error {
	if s.Input <= 0 || s.Hidden <= 0 || s.Output <= 0 {
		return fmt.Errorf("%w: invalid shape %s", ErrShape, s)
	}
	return nil
}

// Count is the number of values in a parameter file for this shape.
func (s Shape) Count() int {
	return s.Input*s.Hidden + s.Hidden + s.Hidden*s.Output + s.Output
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Input, s.Hidden, s.Output)
}
