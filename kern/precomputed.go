package kern

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	precomputed *Precomputed
	_           Kernel = precomputed // Check that Precomputed respects the Kernel interface.
)

// Precomputed wraps an externally supplied task-similarity matrix, e.g. one
// derived from genetic relatedness or demographic covariates.
type Precomputed struct {
	m *mat.SymDense
}

func NewPrecomputed(a mat.Symmetric) *Precomputed {
	n := a.SymmetricDim()
	m := mat.NewSymDense(n, nil)
	m.CopySym(a)
	return &Precomputed{m: m}
}

// FromDense wraps a plain square matrix, reading it as symmetric. Pairs of
// mirrored entries may differ by at most tol and are averaged.
func FromDense(a mat.Matrix, tol float64) (*Precomputed, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("kern: matrix is %dx%d, want square", r, c)
	}
	m := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		m.SetSym(i, i, a.At(i, i))
		for j := i + 1; j < c; j++ {
			upper, lower := a.At(i, j), a.At(j, i)
			if math.Abs(upper-lower) > tol {
				return nil, fmt.Errorf("kern: asymmetric at (%d,%d): %g vs %g", i, j, upper, lower)
			}
			m.SetSym(i, j, 0.5*(upper+lower))
		}
	}
	return &Precomputed{m: m}, nil
}

func (k *Precomputed) Tasks() int {
	return k.m.SymmetricDim()
}

func (k *Precomputed) Matrix() *mat.SymDense {
	return k.m
}
