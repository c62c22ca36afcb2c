package blr

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Prediction is the result of a prediction-mode call: posterior-predictive
// mean and variance per test row, plus the underlying posterior.
type Prediction struct {
	Mean      *mat.VecDense
	Variance  *mat.VecDense
	Posterior *Posterior
}

// Dist returns the posterior-predictive distribution of test row j.
func (p *Prediction) Dist(j int) distuv.Normal {
	return distuv.Normal{
		Mu:    p.Mean.AtVec(j),
		Sigma: math.Sqrt(p.Variance.AtVec(j)),
	}
}

// Interval returns the central interval holding probability mass c for test
// row j, e.g. c = 0.95 for a 95% interval.
func (p *Prediction) Interval(j int, c float64) (lo, hi float64) {
	d := p.Dist(j)
	lo = d.Quantile(0.5 - c/2)
	hi = d.Quantile(0.5 + c/2)
	return lo, hi
}

// Predict computes the posterior-predictive moments at the rows of xs:
//
//	mean_j     = xs_j·m
//	variance_j = 1/beta + xs_j·invA·xs_j'
//
// The variance adds the epistemic term from the posterior covariance to the
// noise floor 1/beta, so it never falls below 1/beta.
func (m *Model) Predict(hyp []float64, X mat.Matrix, t mat.Vector, xs mat.Matrix) (*Prediction, error) {
	if xs == nil {
		return nil, fmt.Errorf("%w: nil test matrix", ErrDimensionMismatch)
	}
	nTest, dTest := xs.Dims()
	if dTest != m.Weights() {
		return nil, fmt.Errorf("%w: xs has %d columns, want %d",
			ErrDimensionMismatch, dTest, m.Weights())
	}
	if nTest < 1 {
		return nil, fmt.Errorf("%w: xs has no rows", ErrDimensionMismatch)
	}

	st, err := m.fit(hyp, X, t)
	if err != nil {
		return nil, err
	}

	mean := mat.NewVecDense(nTest, nil)
	mean.MulVec(xs, st.post.Mean)

	variance := mat.NewVecDense(nTest, nil)
	row := make([]float64, st.d)
	for j := 0; j < nTest; j++ {
		mat.Row(row, j, xs)
		rv := mat.NewVecDense(st.d, row)
		variance.SetVec(j, 1/st.h.Beta+mat.Inner(rv, st.post.Cov, rv))
	}

	m.logger.Debug("predict", zap.Int("rows", nTest), zap.Int("d", st.d))
	return &Prediction{Mean: mean, Variance: variance, Posterior: st.post}, nil
}
