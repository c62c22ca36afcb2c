package kern

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	rbf *RBF
	_   Kernel = rbf // Check that RBF respects the Kernel interface.
)

// RBF is the squared-exponential similarity of per-task feature vectors,
// k(i, j) = exp(-||z_i - z_j||² / (2·ℓ²)), with unit diagonal.
type RBF struct {
	m *mat.SymDense
}

func NewRBF(features mat.Matrix, lscale float64) (*RBF, error) {
	if err := checkLengthscale(lscale); err != nil {
		return nil, err
	}
	n, f, err := checkFeatures(features)
	if err != nil {
		return nil, err
	}
	m := mat.NewSymDense(n, nil)
	zi := make([]float64, f)
	zj := make([]float64, f)
	for i := 0; i < n; i++ {
		mat.Row(zi, i, features)
		m.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			mat.Row(zj, j, features)
			r := floats.Distance(zi, zj, 2)
			m.SetSym(i, j, math.Exp(-r*r/(2*lscale*lscale)))
		}
	}
	return &RBF{m: m}, nil
}

func (k *RBF) Tasks() int {
	return k.m.SymmetricDim()
}

func (k *RBF) Matrix() *mat.SymDense {
	return k.m
}
