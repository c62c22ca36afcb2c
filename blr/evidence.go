package blr

import (
	"math"

	"github.com/viterin/vek"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

const log2pi = 1.8378770664093453

// Evidence is the result of an evidence-mode call: the negative log
// marginal likelihood nlZ, its gradient in hyperparameter order (nil when
// not requested), and the weight-space posterior.
type Evidence struct {
	NegLogML  float64
	Gradient  []float64
	Posterior *Posterior
}

// Evidence returns nlZ, the negative log marginal likelihood of (X, t)
// under the hyperparameters, skipping all gradient work.
func (m *Model) Evidence(hyp []float64, X mat.Matrix, t mat.Vector) (float64, error) {
	ev, err := m.evidence(hyp, X, t, false)
	if err != nil {
		return 0, err
	}
	return ev.NegLogML, nil
}

// EvidenceGrad returns nlZ together with its gradient with respect to every
// entry of hyp, in the same order, and the posterior. Every gradient entry
// carries the chain-rule factor of the log parameterization, the
// natural-scale value of its hyperparameter.
func (m *Model) EvidenceGrad(hyp []float64, X mat.Matrix, t mat.Vector) (*Evidence, error) {
	return m.evidence(hyp, X, t, true)
}

func (m *Model) evidence(hyp []float64, X mat.Matrix, t mat.Vector, withGrad bool) (*Evidence, error) {
	st, err := m.fit(hyp, X, t)
	if err != nil {
		return nil, err
	}
	h, p, post := st.h, st.prior, st.post
	fn := float64(st.n)

	// Log-determinants from the triangular factors' diagonals:
	// logdet(A) = -logdet(Sigma) + N·log(beta) + logdet(M).
	logdetSigma := p.chol.LogDet()
	logdetA := -logdetSigma + fn*math.Log(h.Beta) + st.cholM.LogDet()

	// r = t - X·m
	r := mat.NewVecDense(st.n, nil)
	r.MulVec(X, post.Mean)
	r.SubVec(t, r)
	rss := vek.Dot(r.RawVector().Data, r.RawVector().Data)

	// m'·Sigma^{-1}·m through the prior factor.
	sigmaInvM := mat.NewVecDense(st.d, nil)
	if err := condOK(p.chol.SolveVecTo(sigmaInvM, post.Mean)); err != nil {
		return nil, err
	}
	mSm := vek.Dot(post.Mean.RawVector().Data, sigmaInvM.RawVector().Data)

	nlZ := -0.5 * (fn*math.Log(h.Beta) - float64(st.d)*log2pi - logdetSigma -
		h.Beta*rss - mSm - logdetA)

	m.logger.Debug("evidence",
		zap.Int("n", st.n), zap.Int("d", st.d),
		zap.Float64("nlZ", nlZ),
		zap.Float64("logdetSigma", logdetSigma),
		zap.Float64("logdetA", logdetA))

	if !withGrad {
		return &Evidence{NegLogML: nlZ}, nil
	}

	grad := make([]float64, len(hyp))

	// Noise precision, chain-ruled onto the log scale:
	// dnlZ[0] = -( N/(2·beta) - r'r/2 - tr(invA·X'X)/2 )·beta
	var xtx, tmp mat.Dense
	xtx.Mul(X.T(), X)
	tmp.Mul(post.Cov, &xtx)
	grad[0] = -(fn/(2*h.Beta) - 0.5*rss - 0.5*mat.Trace(&tmp)) * h.Beta

	// Remaining precisions: for each pair (dSigma_i, dHyper_i),
	//
	//	Z = Sigma^{-1}·dSigma_i
	//	F = -Sigma^{-1}·Z'                  (derivative of Sigma^{-1})
	//	dnlZ[1+i] = -( -tr(Z)/2 - tr(invA·F)/2 - m'·F·m/2 )·dHyper_i
	var z, f, af mat.Dense
	for i, dSigma := range p.dSigmas {
		if err := condOK(p.chol.SolveTo(&z, dSigma)); err != nil {
			return nil, err
		}
		if err := condOK(p.chol.SolveTo(&f, z.T())); err != nil {
			return nil, err
		}
		f.Scale(-1, &f)
		af.Mul(post.Cov, &f)
		mfm := mat.Inner(post.Mean, &f, post.Mean)
		grad[1+i] = -(-0.5*mat.Trace(&z) - 0.5*mat.Trace(&af) - 0.5*mfm) * p.dHypers[i]
	}

	return &Evidence{NegLogML: nlZ, Gradient: grad, Posterior: post}, nil
}
