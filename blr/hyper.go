package blr

import (
	"fmt"
	"math"
)

// Hyperparameters are the natural-scale model quantities decoded from a raw
// log-scale vector of length 2 + nTasks + K:
//
//	hyp[0]                      = log(beta)          noise precision
//	hyp[1 .. nTasks]            = log(alpha1_i)      per-task precisions
//	hyp[nTasks+1]               = log(alpha2)        shared coupling precision
//	hyp[nTasks+2 .. nTasks+1+K] = log(alphaExtra_k)  extra-kernel weights
//
// Exponentiation is what enforces positivity; the gradient's chain-rule
// scaling depends on this exact parameterization.
type Hyperparameters struct {
	Beta   float64
	Alpha1 []float64
	Alpha2 float64
	Extra  []float64
}

// decodeHyp exponentiates the raw vector slice-wise.
func (m *Model) decodeHyp(hyp []float64) (*Hyperparameters, error) {
	if len(hyp) != m.NumHyp() {
		return nil, fmt.Errorf("%w: hyp has length %d, want 2+nTasks+K = %d",
			ErrDimensionMismatch, len(hyp), m.NumHyp())
	}
	h := &Hyperparameters{
		Beta:   math.Exp(hyp[0]),
		Alpha1: make([]float64, m.nTasks),
		Extra:  make([]float64, len(m.kernels)),
	}
	for i := 0; i < m.nTasks; i++ {
		h.Alpha1[i] = math.Exp(hyp[1+i])
	}
	h.Alpha2 = math.Exp(hyp[m.nTasks+1])
	for k := range m.kernels {
		h.Extra[k] = math.Exp(hyp[m.nTasks+2+k])
	}
	return h, nil
}
