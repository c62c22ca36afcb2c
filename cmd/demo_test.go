package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectories(t *testing.T) {
	X, tv, positions := trajectories(3, 2, 5, 9)

	n, d := X.Dims()
	assert.Equal(t, 15, n)
	assert.Equal(t, 6, d)
	assert.Equal(t, 15, tv.Len())

	pn, pc := positions.Dims()
	assert.Equal(t, 3, pn)
	assert.Equal(t, 1, pc)
	assert.Equal(t, 2.0, positions.At(2, 0))

	// Rows are task-major blocks: observations of task 0 put features only
	// in columns 0..1, and every row carries the polynomial intercept.
	assert.Equal(t, 1.0, X.At(0, 0))
	assert.Equal(t, 0.0, X.At(0, 2))
	assert.Equal(t, 1.0, X.At(5, 2))
	assert.Equal(t, 0.0, X.At(5, 0))

	// Same seed, same draw.
	_, tv2, _ := trajectories(3, 2, 5, 9)
	assert.Equal(t, tv.RawVector().Data, tv2.RawVector().Data)
}

func TestHorizonRows(t *testing.T) {
	xs := horizonRows(2, 3, 2.0)
	n, d := xs.Dims()
	assert.Equal(t, 2, n)
	assert.Equal(t, 6, d)

	assert.Equal(t, []float64{1, 2, 4, 0, 0, 0}, xs.RawRowView(0))
	assert.Equal(t, []float64{0, 0, 0, 1, 2, 4}, xs.RawRowView(1))
}

func TestDemoEndToEnd(t *testing.T) {
	demoTasks, demoDims, demoObs, demoSeed = 2, 2, 6, 3
	defer func() { demoTasks, demoDims, demoObs, demoSeed = 3, 2, 8, 1 }()

	var buf bytes.Buffer
	demoCmd.SetOut(&buf)
	defer demoCmd.SetOut(nil)

	require.NoError(t, runDemo(demoCmd, nil))
	out := buf.String()
	assert.Contains(t, out, "nlZ  = ")
	assert.Contains(t, out, "dnlZ = [")
	assert.Contains(t, out, "task 1:")
	assert.Contains(t, out, "task 2:")
	assert.Contains(t, out, "95%")
}
