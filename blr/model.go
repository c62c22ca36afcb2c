// Package blr implements Bayesian multi-task linear regression with a
// structured prior over weights: per-task precisions, a shared cross-task
// coupling term, and optional weighted task-similarity kernels, expanded
// across weight dimensions through a Kronecker product. It reports the
// negative log marginal likelihood and its gradient for external
// hyperparameter optimization, and posterior-predictive moments at new
// inputs.
package blr

import (
	"fmt"

	"github.com/EuroPOND/bayes-mtl-traj/kern"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Model is the immutable configuration of a multi-task regression: the
// task layout and the extra coupling kernels. It holds no fitted state;
// every call recomputes from its inputs, so a Model is safe for concurrent
// use.
type Model struct {
	nTasks       int
	nDimsPerTask int
	kernels      []kern.Kernel
	logger       *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger attaches a structured logger. The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger.Named("blr")
	}
}

// New returns a model for nTasks tasks with nDimsPerTask weights each.
// Each extra kernel, if any, must couple exactly nTasks tasks; its weight
// becomes a hyperparameter of the model (see Hyperparameters).
func New(nTasks, nDimsPerTask int, extras []kern.Kernel, opts ...Option) (*Model, error) {
	if nTasks < 1 || nDimsPerTask < 1 {
		return nil, fmt.Errorf("%w: nTasks=%d, nDimsPerTask=%d, want both >= 1",
			ErrDimensionMismatch, nTasks, nDimsPerTask)
	}
	for k, kernel := range extras {
		if kernel == nil {
			return nil, fmt.Errorf("%w: kernel %d is nil", ErrDimensionMismatch, k)
		}
		if kernel.Tasks() != nTasks {
			return nil, fmt.Errorf("%w: kernel %d couples %d tasks, model has %d",
				ErrDimensionMismatch, k, kernel.Tasks(), nTasks)
		}
	}
	m := &Model{
		nTasks:       nTasks,
		nDimsPerTask: nDimsPerTask,
		kernels:      append([]kern.Kernel(nil), extras...),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NumHyp returns the length of the hyperparameter vector,
// 2 + nTasks + K.
func (m *Model) NumHyp() int {
	return 2 + m.nTasks + len(m.kernels)
}

// Weights returns D, the total number of regression weights,
// nTasks * nDimsPerTask.
func (m *Model) Weights() int {
	return m.nTasks * m.nDimsPerTask
}

// checkData validates the design matrix and target vector against the task
// layout, before any linear algebra runs. Columns of X are grouped
// task-major: nTasks contiguous blocks of nDimsPerTask columns.
func (m *Model) checkData(X mat.Matrix, t mat.Vector) (n, d int, err error) {
	if X == nil || t == nil {
		return 0, 0, fmt.Errorf("%w: nil design matrix or target vector", ErrDimensionMismatch)
	}
	n, d = X.Dims()
	if d != m.Weights() {
		return 0, 0, fmt.Errorf("%w: X has %d columns, want nTasks*nDimsPerTask = %d",
			ErrDimensionMismatch, d, m.Weights())
	}
	if n < 1 {
		return 0, 0, fmt.Errorf("%w: X has no rows", ErrDimensionMismatch)
	}
	if t.Len() != n {
		return 0, 0, fmt.Errorf("%w: X has %d rows, t has length %d",
			ErrDimensionMismatch, n, t.Len())
	}
	return n, d, nil
}
