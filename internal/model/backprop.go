package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MeanSquaredError averages the squared differences between output and
// target over the output components.
func MeanSquaredError(output, target []float64) float64 {
	if len(output) == 0 {
		return 0
	}
	sum := 0.0
	for k, o := range output {
		d := o - target[k]
		sum += d * d
	}
	return sum / float64(len(output))
}

// TrainSample runs one step of plain SGD on a single example and returns the
// loss measured before the update.
//
// Both error signals are computed before any parameter changes; the updates
// are then applied in the order w2, b2, w1, b1.
func (p *Params) TrainSample(x, target []float64, lr float64) (float64, error) {
	if len(x) != p.shape.Input {
		return 0, fmt.Errorf("%w: input has %d values, want %d", ErrShape, len(x), p.shape.Input)
	}
	if len(target) != p.shape.Output {
		return 0, fmt.Errorf("%w: target has %d values, want %d", ErrShape, len(target), p.shape.Output)
	}

	in := mat.NewVecDense(len(x), x)
	hidden, output := p.forward(in)
	out := output.RawVector().Data
	loss := MeanSquaredError(out, target)

	deltaOut := mat.NewVecDense(p.shape.Output, nil)
	for k, o := range out {
		deltaOut.SetVec(k, (o-target[k])*sigmoidPrime(o))
	}

	// w2 is still the pre-update matrix here.
	deltaHid := mat.NewVecDense(p.shape.Hidden, nil)
	deltaHid.MulVec(p.w2, deltaOut)
	for j := 0; j < deltaHid.Len(); j++ {
		deltaHid.SetVec(j, deltaHid.AtVec(j)*sigmoidPrime(hidden.AtVec(j)))
	}

	p.w2.RankOne(p.w2, -lr, hidden, deltaOut)
	p.b2.AddScaledVec(p.b2, -lr, deltaOut)
	p.w1.RankOne(p.w1, -lr, in, deltaHid)
	p.b1.AddScaledVec(p.b1, -lr, deltaHid)

	return loss, nil
}
