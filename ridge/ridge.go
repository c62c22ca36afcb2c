// Package ridge implements single-task Bayesian ridge regression: a linear
// model with an isotropic Gaussian prior of precision alpha over weights
// and Gaussian noise of precision beta. It is the plain baseline next to
// the multi-task model in blr, computed on a simple dense path (explicit
// posterior precision, LU determinants) rather than the observation-space
// reduction.
package ridge

import (
	"errors"
	"fmt"
	"math"

	"github.com/EuroPOND/bayes-mtl-traj/utils"
	"gonum.org/v1/gonum/mat"
)

var ErrDimensionMismatch = errors.New("dimension mismatch")
var ErrSingular = errors.New("posterior precision is singular")

const log2pi = 1.8378770664093453

// Model holds the two fixed precisions of a ridge regression.
type Model struct {
	Alpha float64 // prior precision
	Beta  float64 // noise precision
}

// Posterior is the weight-space posterior: mean m and covariance A^{-1}
// with A = alpha·I + beta·X'X.
type Posterior struct {
	Mean *mat.VecDense
	Cov  *mat.Dense
}

func New(alpha, beta float64) (*Model, error) {
	if alpha <= 0 || beta <= 0 {
		return nil, fmt.Errorf("ridge: alpha=%g, beta=%g, want both > 0", alpha, beta)
	}
	return &Model{Alpha: alpha, Beta: beta}, nil
}

func (m *Model) checkData(X mat.Matrix, t mat.Vector) (n, d int, err error) {
	if X == nil || t == nil {
		return 0, 0, fmt.Errorf("%w: nil design matrix or target vector", ErrDimensionMismatch)
	}
	n, d = X.Dims()
	if n < 1 || d < 1 {
		return 0, 0, fmt.Errorf("%w: X is %dx%d", ErrDimensionMismatch, n, d)
	}
	if t.Len() != n {
		return 0, 0, fmt.Errorf("%w: X has %d rows, t has length %d", ErrDimensionMismatch, n, t.Len())
	}
	return n, d, nil
}

// precision builds A = alpha·I + beta·X'X.
func (m *Model) precision(X mat.Matrix, d int) *mat.Dense {
	var a mat.Dense
	a.Mul(X.T(), X)
	a.Scale(m.Beta, &a)
	var aI mat.Dense
	aI.Scale(m.Alpha, utils.Eye(d))
	a.Add(&a, &aI)
	return &a
}

// Fit returns the weight-space posterior, m = beta·A^{-1}·X'·t and
// Cov = A^{-1}.
func (m *Model) Fit(X mat.Matrix, t mat.Vector) (*Posterior, error) {
	_, d, err := m.checkData(X, t)
	if err != nil {
		return nil, err
	}
	a := m.precision(X, d)

	var cov mat.Dense
	if err := cov.Solve(a, utils.Eye(d)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	xt := mat.NewVecDense(d, nil)
	xt.MulVec(X.T(), t)
	mean := mat.NewVecDense(d, nil)
	mean.MulVec(&cov, xt)
	mean.ScaleVec(m.Beta, mean)

	return &Posterior{Mean: mean, Cov: &cov}, nil
}

// Evidence returns the negative log marginal likelihood,
//
//	nlZ = -1/2·( N·log(beta) - D·log(2π) + D·log(alpha)
//	             - beta·||t - X·m||² - alpha·m'm - logdet(A) )
//
// the isotropic-prior form of the multi-task evidence, with logdet(A)
// taken from an LU decomposition.
func (m *Model) Evidence(X mat.Matrix, t mat.Vector) (float64, error) {
	n, d, err := m.checkData(X, t)
	if err != nil {
		return 0, err
	}
	post, err := m.Fit(X, t)
	if err != nil {
		return 0, err
	}
	a := m.precision(X, d)
	logdetA, sign := mat.LogDet(a)
	if sign <= 0 {
		return 0, fmt.Errorf("%w: non-positive determinant", ErrSingular)
	}

	r := mat.NewVecDense(n, nil)
	r.MulVec(X, post.Mean)
	r.SubVec(t, r)
	rss := mat.Dot(r, r)
	mm := mat.Dot(post.Mean, post.Mean)

	nlZ := -0.5 * (float64(n)*math.Log(m.Beta) - float64(d)*log2pi +
		float64(d)*math.Log(m.Alpha) - m.Beta*rss - m.Alpha*mm - logdetA)
	return nlZ, nil
}

// Predict returns the posterior-predictive mean and variance at the rows of
// xs, variance_j = 1/beta + xs_j·Cov·xs_j'.
func (m *Model) Predict(X mat.Matrix, t mat.Vector, xs mat.Matrix) (mean, variance *mat.VecDense, err error) {
	if xs == nil {
		return nil, nil, fmt.Errorf("%w: nil test matrix", ErrDimensionMismatch)
	}
	_, d, err := m.checkData(X, t)
	if err != nil {
		return nil, nil, err
	}
	nTest, dTest := xs.Dims()
	if dTest != d || nTest < 1 {
		return nil, nil, fmt.Errorf("%w: xs is %dx%d, want Ntest>=1 x %d",
			ErrDimensionMismatch, nTest, dTest, d)
	}
	post, err := m.Fit(X, t)
	if err != nil {
		return nil, nil, err
	}

	mean = mat.NewVecDense(nTest, nil)
	mean.MulVec(xs, post.Mean)

	variance = mat.NewVecDense(nTest, nil)
	row := make([]float64, d)
	for j := 0; j < nTest; j++ {
		mat.Row(row, j, xs)
		rv := mat.NewVecDense(d, row)
		variance.SetVec(j, 1/m.Beta+mat.Inner(rv, post.Cov, rv))
	}
	return mean, variance, nil
}
