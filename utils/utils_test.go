package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEye(t *testing.T) {
	eye := Eye(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.Equal(t, want, eye.At(i, j), "entry (%d,%d)", i, j)
		}
	}
}

func TestOnesSym(t *testing.T) {
	ones := OnesSym(4, 0.25)
	r, c := ones.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, 0.25, ones.At(i, j))
		}
	}
}

func TestKronEyeMatchesKronecker(t *testing.T) {
	cases := []struct {
		name string
		a    *mat.SymDense
		q    int
	}{
		{
			name: "scalar",
			a:    mat.NewSymDense(1, []float64{2.5}),
			q:    3,
		},
		{
			name: "2x2",
			a:    mat.NewSymDense(2, []float64{1.0, -0.5, -0.5, 3.0}),
			q:    2,
		},
		{
			name: "3x3 q=1",
			a: mat.NewSymDense(3, []float64{
				2.0, 0.3, 0.1,
				0.3, 1.5, 0.7,
				0.1, 0.7, 4.0,
			}),
			q: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := KronEye(tc.a, tc.q)

			var want mat.Dense
			want.Kronecker(tc.a, Eye(tc.q))

			require.True(t, mat.Equal(got, &want),
				"KronEye disagrees with explicit Kronecker expansion:\ngot:\n%v\nwant:\n%v",
				mat.Formatted(got), mat.Formatted(&want))
		})
	}
}

func TestSymUpper(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		1.0, 2.0,
		99.0, 4.0,
	})
	s := SymUpper(a)
	assert.Equal(t, 1.0, s.At(0, 0))
	assert.Equal(t, 2.0, s.At(0, 1))
	assert.Equal(t, 2.0, s.At(1, 0), "lower triangle mirrors the upper")
	assert.Equal(t, 4.0, s.At(1, 1))
}
