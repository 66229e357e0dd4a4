package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Params is the complete learnable state of the network: the input→hidden
// weights w1 (Input×Hidden), the hidden bias b1, the hidden→output weights
// w2 (Hidden×Output) and the output bias b2.
//
// A Params value owns its matrices; nothing handed out by its methods
// aliases them.
type Params struct {
	shape Shape
	w1    *mat.Dense
	b1    *mat.VecDense
	w2    *mat.Dense
	b2    *mat.VecDense
}

// New returns zero-valued parameters for shape.
func New(shape Shape) (*Params, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Params{
		shape: shape,
		w1:    mat.NewDense(shape.Input, shape.Hidden, nil),
		b1:    mat.NewVecDense(shape.Hidden, nil),
		w2:    mat.NewDense(shape.Hidden, shape.Output, nil),
		b2:    mat.NewVecDense(shape.Output, nil),
	}, nil
}

// Shape returns the topology the parameters were sized for.
func (p *Params) Shape() Shape {
	return p.shape
}

// Initialize overwrites every parameter with a uniform draw from rng.
//
// Weight matrices use the Glorot bound sqrt(6/(fanIn+fanOut)). Bias vectors
// use sqrt(6/n) over their own length only; trained networks depend on this
// exact bound, so it stays asymmetric with the matrix rule.
func (p *Params) Initialize(rng *rand.Rand) {
	s := p.shape
	fill(p.w1.RawMatrix().Data, math.Sqrt(6.0/float64(s.Input+s.Hidden)), rng)
	fill(p.w2.RawMatrix().Data, math.Sqrt(6.0/float64(s.Hidden+s.Output)), rng)
	fill(p.b1.RawVector().Data, math.Sqrt(6.0/float64(s.Hidden)), rng)
	fill(p.b2.RawVector().Data, math.Sqrt(6.0/float64(s.Output)), rng)
}

func fill(dst []float64, limit float64, rng *rand.Rand) {
	for i := range dst {
		dst[i] = (rng.Float64()*2 - 1) * limit
	}
}

// Clone returns a deep copy of p.
func (p *Params) Clone() *Params {
	return &Params{
		shape: p.shape,
		w1:    mat.DenseCopyOf(p.w1),
		b1:    mat.VecDenseCopyOf(p.b1),
		w2:    mat.DenseCopyOf(p.w2),
		b2:    mat.VecDenseCopyOf(p.b2),
	}
}

// Equal reports whether p and q have the same shape and identical values.
func (p *Params) Equal(q *Params) bool {
	return p.shape == q.shape &&
		mat.Equal(p.w1, q.w1) &&
		mat.Equal(p.b1, q.b1) &&
		mat.Equal(p.w2, q.w2) &&
		mat.Equal(p.b2, q.b2)
}

// segments returns the backing storage of the four entities in file order:
// w1 row-major, b1, w2 row-major, b2. Matrices built by mat.NewDense and
// mat.DenseCopyOf have Stride == Cols, so the raw data is exactly row-major.
func (p *Params) segments() [][]float64 {
	return [][]float64{
		p.w1.RawMatrix().Data,
		p.b1.RawVector().Data,
		p.w2.RawMatrix().Data,
		p.b2.RawVector().Data,
	}
}
