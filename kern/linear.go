package kern

import (
	"gonum.org/v1/gonum/mat"
)

var (
	linear *Linear
	_      Kernel = linear // Check that Linear respects the Kernel interface.
)

// Linear is the Gram matrix of per-task feature vectors,
// k(i, j) = z_i·z_j. The kernel's overall scale is left to the model's
// kernel weight, like for every kernel in this package.
type Linear struct {
	m *mat.SymDense
}

// NewLinear builds the kernel from a matrix of task features, one row per
// task.
func NewLinear(features mat.Matrix) (*Linear, error) {
	if _, _, err := checkFeatures(features); err != nil {
		return nil, err
	}
	var m mat.SymDense
	m.SymOuterK(1, features)
	return &Linear{m: &m}, nil
}

func (k *Linear) Tasks() int {
	return k.m.SymmetricDim()
}

func (k *Linear) Matrix() *mat.SymDense {
	return k.m
}
