package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Identity Matrix.
func Eye(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// All-ones symmetric matrix, scaled.
func OnesSym(n int, scale float64) *mat.SymDense {
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, scale)
		}
	}
	return out
}

// Kronecker product of a symmetric matrix with the q-dimensional identity,
// kron(a, I_q). Entries of a are placed directly on the block diagonals, so
// the result is identical to an explicit Kronecker expansion.
func KronEye(a mat.Symmetric, q int) *mat.SymDense {
	n := a.SymmetricDim()
	out := mat.NewSymDense(n*q, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := a.At(i, j)
			for d := 0; d < q; d++ {
				out.SetSym(i*q+d, j*q+d, v)
			}
		}
	}
	return out
}

// Symmetric copy of a square matrix, reading the upper triangle.
func SymUpper(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, a.At(i, j))
		}
	}
	return out
}
