// Package kern provides task-coupling kernels: fixed symmetric matrices
// encoding pairwise similarity between tasks. They enter the regression
// prior as weighted additive terms of the task-coupling structure, with the
// weights treated as model hyperparameters.
package kern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type Kernel interface {
	// Number of tasks coupled, :math:`n`.
	Tasks() int

	// The n×n similarity matrix :math:`\mathbf{K}`. Callers must not
	// modify the returned value.
	Matrix() *mat.SymDense
}

// checkFeatures validates a per-task feature matrix, one row per task.
func checkFeatures(features mat.Matrix) (n, f int, err error) {
	if features == nil {
		return 0, 0, fmt.Errorf("kern: nil features matrix")
	}
	n, f = features.Dims()
	if n < 1 || f < 1 {
		return 0, 0, fmt.Errorf("kern: features matrix is %dx%d, want at least one task and one feature", n, f)
	}
	return n, f, nil
}

func checkLengthscale(lscale float64) error {
	if lscale <= 0 {
		return fmt.Errorf("kern: lengthscale is %g, want > 0", lscale)
	}
	return nil
}
