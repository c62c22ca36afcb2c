package blr

import (
	"errors"
	"fmt"

	"github.com/EuroPOND/bayes-mtl-traj/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Posterior is the weight-space posterior of a fit: mean m and covariance
// invA, recomputed fresh on every call.
type Posterior struct {
	Mean *mat.VecDense // m: length D
	Cov  *mat.Dense    // invA: D×D
}

// fitState bundles everything one pass derives from (hyp, X, t).
type fitState struct {
	h     *Hyperparameters
	prior *prior
	post  *Posterior
	cholM *mat.Cholesky // factor of the observation-space system
	n, d  int
}

// fit runs the pipeline shared by the evidence and prediction modes:
// decode, validate, build the prior, compute the posterior.
func (m *Model) fit(hyp []float64, X mat.Matrix, t mat.Vector) (*fitState, error) {
	h, err := m.decodeHyp(hyp)
	if err != nil {
		return nil, err
	}
	n, d, err := m.checkData(X, t)
	if err != nil {
		return nil, err
	}
	p, err := m.buildPrior(h)
	if err != nil {
		m.logger.Error("prior factorization failed", zap.Error(err))
		return nil, err
	}
	post, cholM, err := computePosterior(X, t, h.Beta, p)
	if err != nil {
		m.logger.Error("posterior computation failed",
			zap.Int("n", n), zap.Int("d", d), zap.Error(err))
		return nil, err
	}
	return &fitState{h: h, prior: p, post: post, cholM: cholM, n: n, d: d}, nil
}

// computePosterior runs the observation-space (Woodbury) reduction:
//
//	v    = X·Sigma                        (N×D)
//	M    = (1/beta)·I_N + v·X'            (N×N, Cholesky-factorized)
//	invA = Sigma - v'·solve(cholM, v)     (D×D posterior covariance)
//	m    = beta·invA·X'·t                 (posterior mean)
//
// Factoring the N×N system instead of the D×D posterior precision keeps
// the dominant cost at O(N³ + N²·D) in the N < D regime. All solves go
// through the triangular factors; no matrix is explicitly inverted.
func computePosterior(X mat.Matrix, t mat.Vector, beta float64, p *prior) (*Posterior, *mat.Cholesky, error) {
	n, d := X.Dims()

	var v mat.Dense
	v.Mul(X, p.sigma)

	var vxt mat.Dense
	vxt.Mul(&v, X.T())
	M := utils.SymUpper(&vxt)
	for i := 0; i < n; i++ {
		M.SetSym(i, i, M.At(i, i)+1/beta)
	}

	var cholM mat.Cholesky
	if !cholM.Factorize(M) {
		return nil, nil, fmt.Errorf("%w: observation-space system (%dx%d)",
			ErrNotPositiveDefinite, n, n)
	}

	var s mat.Dense
	if err := condOK(cholM.SolveTo(&s, &v)); err != nil {
		return nil, nil, err
	}
	var cov mat.Dense
	cov.Mul(v.T(), &s)
	cov.Sub(p.sigma, &cov)

	xt := mat.NewVecDense(d, nil)
	xt.MulVec(X.T(), t)
	mean := mat.NewVecDense(d, nil)
	mean.MulVec(&cov, xt)
	mean.ScaleVec(beta, mean)

	return &Posterior{Mean: mean, Cov: &cov}, &cholM, nil
}

// condOK filters gonum's conditioning warning: after a successful
// factorization the solve result is valid, merely flagged when the system
// is ill conditioned.
func condOK(err error) error {
	var cond mat.Condition
	if err == nil || errors.As(err, &cond) {
		return nil
	}
	return err
}
