// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/curioloop/rayleigh/quotient"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// diagObjective is f of A = diag(3, 1), so Q = diag(9, 1).
func diagObjective(t *testing.T) *quotient.Objective {
	f, err := quotient.New(mat.NewDense(2, 2, []float64{3, 0, 0, 1}))
	require.NoError(t, err)
	return f
}

func newObjective(t *testing.T, a mat.Matrix) *quotient.Objective {
	f, err := quotient.New(a)
	require.NoError(t, err)
	return f
}

func onesPoint() *Options {
	return &Options{InitialPoint: mat.NewVecDense(2, []float64{1, 1})}
}

// spectrumObjective is f of A = diag(√λ)·Uᵀ with a random orthogonal U,
// so Q = U·diag(λ)·Uᵀ has exactly the eigenvalues λ.
func spectrumObjective(t *testing.T, rnd *rand.Rand, eig []float64) *quotient.Objective {
	n := len(eig)
	g := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, rnd.NormFloat64())
		}
	}
	var qr mat.QR
	qr.Factorize(g)
	var u mat.Dense
	qr.QTo(&u)

	root := make([]float64, n)
	for i, v := range eig {
		root[i] = math.Sqrt(v)
	}
	var a mat.Dense
	a.Mul(mat.NewDiagDense(n, root), u.T())

	f, err := quotient.New(&a)
	require.NoError(t, err)
	return f
}

// smallestEigen returns λ_min of Q.
func smallestEigen(t *testing.T, f *quotient.Objective) float64 {
	var es mat.EigenSym
	require.True(t, es.Factorize(f.Q(), false))
	return floats.Min(es.Values(nil))
}

func genericPoint(n int) *Options {
	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, float64(i+1)/float64(n))
	}
	return &Options{InitialPoint: x}
}

var spectra = [][]float64{
	{1, 4, 9},
	{0.5, 2, 3, 5},
	{1, 2, 4, 7, 11},
	{0.1, 1, 1.5, 2, 2.5, 3},
}
