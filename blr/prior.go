package blr

import (
	"fmt"

	"github.com/EuroPOND/bayes-mtl-traj/utils"
	"gonum.org/v1/gonum/mat"
)

// prior carries the structured covariance over weights, its Cholesky
// factor, and the per-hyperparameter derivative set.
type prior struct {
	coupling *mat.SymDense // C: nTasks×nTasks task coupling
	sigma    *mat.SymDense // Sigma = kron(C, I_q): D×D
	chol     mat.Cholesky  // factor of Sigma

	// Derivative set: one (matrix, scalar) pair per precision
	// hyperparameter, noise excluded, in hyperparameter order. The scalar
	// is the natural-scale value, pairing each matrix for the chain rule
	// of the log parameterization.
	dSigmas []*mat.SymDense
	dHypers []float64
}

// buildPrior assembles the coupling matrix
//
//	C = diag(alpha1) + (alpha2/n)·J + Σ_k alphaExtra_k·K_k
//
// and Sigma = kron(C, I_q), factorizes Sigma, and fills the derivative set
// by indexed assignment into its known final size.
func (m *Model) buildPrior(h *Hyperparameters) (*prior, error) {
	n, q := m.nTasks, m.nDimsPerTask

	C := mat.NewSymDense(n, nil)
	shared := h.Alpha2 / float64(n)
	for i := 0; i < n; i++ {
		C.SetSym(i, i, h.Alpha1[i]+shared)
		for j := i + 1; j < n; j++ {
			C.SetSym(i, j, shared)
		}
	}
	for k, kernel := range m.kernels {
		km := kernel.Matrix()
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				C.SetSym(i, j, C.At(i, j)+h.Extra[k]*km.At(i, j))
			}
		}
	}

	p := &prior{
		coupling: C,
		sigma:    utils.KronEye(C, q),
		dSigmas:  make([]*mat.SymDense, n+1+len(m.kernels)),
		dHypers:  make([]float64, n+1+len(m.kernels)),
	}
	if !p.chol.Factorize(p.sigma) {
		return nil, fmt.Errorf("%w: prior covariance Sigma (%dx%d)",
			ErrNotPositiveDefinite, n*q, n*q)
	}

	// dSigma/dalpha1_i = kron(e_i·e_i', I_q)
	for i := 0; i < n; i++ {
		ei := mat.NewSymDense(n, nil)
		ei.SetSym(i, i, 1)
		p.dSigmas[i] = utils.KronEye(ei, q)
		p.dHypers[i] = h.Alpha1[i]
	}
	// dSigma/dalpha2 = kron(J/n, I_q)
	p.dSigmas[n] = utils.KronEye(utils.OnesSym(n, 1/float64(n)), q)
	p.dHypers[n] = h.Alpha2
	// dSigma/dalphaExtra_k = kron(K_k, I_q)
	for k, kernel := range m.kernels {
		p.dSigmas[n+1+k] = utils.KronEye(kernel.Matrix(), q)
		p.dHypers[n+1+k] = h.Extra[k]
	}
	return p, nil
}
