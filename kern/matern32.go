package kern

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	matern32 *Matern32
	_        Kernel = matern32 // Check that Matern32 respects the Kernel interface.
)

// Matern32 is the Matérn-3/2 similarity of per-task feature vectors,
// k(i, j) = (1 + λ·r)·exp(-λ·r) with r = ||z_i - z_j|| and λ = √3/ℓ.
type Matern32 struct {
	m *mat.SymDense
}

func NewMatern32(features mat.Matrix, lscale float64) (*Matern32, error) {
	if err := checkLengthscale(lscale); err != nil {
		return nil, err
	}
	n, f, err := checkFeatures(features)
	if err != nil {
		return nil, err
	}
	lambda := math.Sqrt(3) / lscale
	m := mat.NewSymDense(n, nil)
	zi := make([]float64, f)
	zj := make([]float64, f)
	for i := 0; i < n; i++ {
		mat.Row(zi, i, features)
		m.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			mat.Row(zj, j, features)
			ra := lambda * floats.Distance(zi, zj, 2)
			m.SetSym(i, j, (1+ra)*math.Exp(-ra))
		}
	}
	return &Matern32{m: m}, nil
}

func (k *Matern32) Tasks() int {
	return k.m.SymmetricDim()
}

func (k *Matern32) Matrix() *mat.SymDense {
	return k.m
}
