package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// sigmoidClamp bounds the logit so that Sigmoid never rounds to exactly 0 or
// 1. sigmoid(35) differs from sigmoid(+Inf) by less than 1e-15.
const sigmoidClamp = 35.0

// Sigmoid returns 1/(1+e^-z), evaluated without overflow for either sign.
func Sigmoid(z float64) float64 {
	switch {
	case z > sigmoidClamp:
		z = sigmoidClamp
	case z < -sigmoidClamp:
		z = -sigmoidClamp
	}
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// sigmoidPrime is the sigmoid derivative written in terms of its output a.
func sigmoidPrime(a float64) float64 {
	return a * (1 - a)
}

// Forward computes the hidden and output activations for x. It does not
// modify p or x.
func (p *Params) Forward(x []float64) (hidden, output []float64, err error) {
	if len(x) != p.shape.Input {
		return nil, nil, fmt.Errorf("%w: input has %d values, want %d", ErrShape, len(x), p.shape.Input)
	}
	h, o := p.forward(mat.NewVecDense(len(x), x))
	return h.RawVector().Data, o.RawVector().Data, nil
}

func (p *Params) forward(x *mat.VecDense) (hidden, output *mat.VecDense) {
	hidden = mat.NewVecDense(p.shape.Hidden, nil)
	hidden.MulVec(p.w1.T(), x)
	hidden.AddVec(hidden, p.b1)
	activate(hidden)

	output = mat.NewVecDense(p.shape.Output, nil)
	output.MulVec(p.w2.T(), hidden)
	output.AddVec(output, p.b2)
	activate(output)
	return hidden, output
}

func activate(v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, Sigmoid(v.AtVec(i)))
	}
}
