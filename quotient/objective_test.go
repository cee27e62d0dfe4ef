// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quotient

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/curioloop/rayleigh/numdiff"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func randomMatrix(rnd *rand.Rand, m, n int) *mat.Dense {
	data := make([]float64, m*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	return mat.NewDense(m, n, data)
}

func TestNew(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	o, err := New(a)
	require.NoError(t, err)
	require.Equal(t, 2, o.Dim())

	want := mat.NewSymDense(2, []float64{
		35, 44,
		44, 56,
	})
	require.True(t, mat.Equal(want, o.Q()))

	cases := []struct {
		name string
		a    mat.Matrix
	}{
		{"nil", nil},
		{"empty", &mat.Dense{}},
		{"nan", mat.NewDense(1, 2, []float64{1, math.NaN()})},
		{"inf", mat.NewDense(2, 1, []float64{math.Inf(-1), 1})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := New(tc.a)
			require.Nil(t, o)
			require.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestCompute(t *testing.T) {
	o, err := New(mat.NewDense(2, 2, []float64{3, 0, 0, 1}))
	require.NoError(t, err)

	e, err := o.Compute(mat.NewVecDense(2, []float64{1, 1}))
	require.NoError(t, err)
	require.Equal(t, 5.0, e.F)
	require.Equal(t, 10.0, e.XQx)
	require.Equal(t, 2.0, e.XX)
	require.Equal(t, []float64{9, 1}, e.Qx.RawVector().Data)
	require.Equal(t, []float64{4, -4}, e.G.RawVector().Data)

	// eigenvectors are stationary
	e, err = o.Compute(mat.NewVecDense(2, []float64{0, 2}))
	require.NoError(t, err)
	require.Equal(t, 1.0, e.F)
	require.Zero(t, mat.Norm(e.G, 2))

	_, err = o.Compute(mat.NewVecDense(3, nil))
	require.True(t, errors.Is(err, ErrDimension))

	_, err = o.Compute(mat.NewVecDense(2, nil))
	require.True(t, errors.Is(err, ErrZeroPoint))
}

func TestComputeKeepsInput(t *testing.T) {
	o, err := New(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.NoError(t, err)
	x := mat.NewVecDense(2, []float64{0.5, -1})
	e, err := o.Compute(x)
	require.NoError(t, err)
	e.X.SetVec(0, 7)
	require.Equal(t, 0.5, x.AtVec(0))
}

func TestGradientMatchesFiniteDifference(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 10; trial++ {
		n := 2 + trial%4
		o, err := New(randomMatrix(rnd, n+1, n))
		require.NoError(t, err)

		x := make([]float64, n)
		for i := range x {
			x[i] = rnd.Float64() + 0.1
		}
		e, err := o.Compute(mat.NewVecDense(n, x))
		require.NoError(t, err)
		require.InDelta(t, e.F, o.Value(x), 1e-12*math.Max(1, e.F))

		grad := make([]float64, n)
		gs := numdiff.GradSpec{N: n, Object: o.Value, Method: numdiff.Central}
		require.NoError(t, gs.Gradient(x, grad))
		require.True(t, floats.EqualApprox(grad, e.G.RawVector().Data, 1e-6),
			"trial %d: finite difference %v, closed form %v", trial, grad, e.G.RawVector().Data)

		// xᵀ∇f(x) = 0 by scale invariance
		require.InDelta(t, 0, mat.Dot(e.X, e.G), 1e-10*math.Max(1, e.F))
	}
}

func TestValue(t *testing.T) {
	o, err := New(mat.NewDense(2, 2, []float64{3, 0, 0, 1}))
	require.NoError(t, err)
	require.Equal(t, 5.0, o.Value([]float64{1, 1}))
	require.True(t, math.IsNaN(o.Value([]float64{1})))
	require.True(t, math.IsNaN(o.Value([]float64{0, 0})))
}
