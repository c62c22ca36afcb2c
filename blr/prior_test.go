package blr

import (
	"testing"

	"github.com/EuroPOND/bayes-mtl-traj/kern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildPriorCoupling(t *testing.T) {
	kernels := []kern.Kernel{
		kern.NewPrecomputed(mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1})),
		kern.NewPrecomputed(mat.NewSymDense(2, []float64{2, -0.2, -0.2, 2})),
	}
	m, err := New(2, 2, kernels)
	require.NoError(t, err)

	h := &Hyperparameters{
		Beta:   1,
		Alpha1: []float64{0.3, 0.4},
		Alpha2: 0.8,
		Extra:  []float64{0.7, 1.4},
	}
	p, err := m.buildPrior(h)
	require.NoError(t, err)

	// C = diag(0.3, 0.4) + 0.4·J + 0.7·K1 + 1.4·K2
	assert.InDelta(t, 4.2, p.coupling.At(0, 0), 1e-12)
	assert.InDelta(t, 0.47, p.coupling.At(0, 1), 1e-12)
	assert.InDelta(t, 0.47, p.coupling.At(1, 0), 1e-12)
	assert.InDelta(t, 4.3, p.coupling.At(1, 1), 1e-12)

	// Sigma = kron(C, I_2): weight a of task i sits at row i·q+a, and only
	// same-dimension pairs couple.
	require.Equal(t, 4, p.sigma.SymmetricDim())
	assert.InDelta(t, 4.2, p.sigma.At(0, 0), 1e-12)
	assert.InDelta(t, 0.47, p.sigma.At(0, 2), 1e-12)
	assert.InDelta(t, 0.0, p.sigma.At(0, 1), 1e-12)
	assert.InDelta(t, 0.47, p.sigma.At(1, 3), 1e-12)
	assert.InDelta(t, 4.3, p.sigma.At(3, 3), 1e-12)
}

func TestBuildPriorDerivativeSet(t *testing.T) {
	kernels := []kern.Kernel{
		kern.NewPrecomputed(mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1})),
		kern.NewPrecomputed(mat.NewSymDense(2, []float64{2, -0.2, -0.2, 2})),
	}
	m, err := New(2, 2, kernels)
	require.NoError(t, err)

	h := &Hyperparameters{
		Beta:   1,
		Alpha1: []float64{0.3, 0.4},
		Alpha2: 0.8,
		Extra:  []float64{0.7, 1.4},
	}
	p, err := m.buildPrior(h)
	require.NoError(t, err)

	// One (dSigma, natural value) pair per precision, noise excluded,
	// in hyperparameter order.
	require.Len(t, p.dSigmas, 5)
	assert.Equal(t, []float64{0.3, 0.4, 0.8, 0.7, 1.4}, p.dHypers)

	// dSigma/dalpha1_1 = kron(e1·e1', I_2)
	assert.Equal(t, 1.0, p.dSigmas[0].At(0, 0))
	assert.Equal(t, 1.0, p.dSigmas[0].At(1, 1))
	assert.Equal(t, 0.0, p.dSigmas[0].At(2, 2))
	assert.Equal(t, 0.0, p.dSigmas[0].At(0, 2))

	// dSigma/dalpha2 = kron(J/n, I_2)
	assert.Equal(t, 0.5, p.dSigmas[2].At(0, 0))
	assert.Equal(t, 0.5, p.dSigmas[2].At(0, 2))
	assert.Equal(t, 0.0, p.dSigmas[2].At(0, 1))

	// dSigma/dalphaExtra_k = kron(K_k, I_2)
	assert.Equal(t, 1.0, p.dSigmas[3].At(0, 0))
	assert.Equal(t, 0.5, p.dSigmas[3].At(0, 2))
	assert.Equal(t, 2.0, p.dSigmas[4].At(0, 0))
	assert.Equal(t, -0.2, p.dSigmas[4].At(0, 2))
}

func TestBuildPriorNoKernels(t *testing.T) {
	m, err := New(3, 1, nil)
	require.NoError(t, err)

	h := &Hyperparameters{
		Beta:   1,
		Alpha1: []float64{1, 2, 3},
		Alpha2: 0.6,
	}
	p, err := m.buildPrior(h)
	require.NoError(t, err)

	assert.InDelta(t, 1.2, p.coupling.At(0, 0), 1e-12)
	assert.InDelta(t, 0.2, p.coupling.At(0, 1), 1e-12)
	assert.InDelta(t, 3.2, p.coupling.At(2, 2), 1e-12)
	require.Len(t, p.dSigmas, 4)
	assert.Equal(t, []float64{1, 2, 3, 0.6}, p.dHypers)
}
