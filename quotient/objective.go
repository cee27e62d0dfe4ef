// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quotient implements the generalized Rayleigh quotient
//
//	f(x) = xᵀQx / xᵀx,  Q = AᵀA
//
// together with its closed-form gradient and an exact line search that
// exploits the rational structure of f along any straight line.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Rayleigh_quotient
package quotient

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Objective is the Rayleigh quotient of the symmetric positive semi-definite matrix Q = AᵀA.
// Q is never modified after construction and no evaluation state is kept on the
// receiver, so a single Objective may be shared by concurrent solvers.
type Objective struct {
	n int
	q *mat.SymDense
}

// Eval is the record of one evaluation of f at X.
// The inner products are kept so that a line search started at X does not recompute them.
type Eval struct {
	X   *mat.VecDense // evaluated point x
	Qx  *mat.VecDense // Q·x
	G   *mat.VecDense // ∇f(x)
	F   float64       // f(x)
	XQx float64       // xᵀQx
	XX  float64       // xᵀx
}

// New builds the objective of the m×n matrix A.
func New(a mat.Matrix) (*Objective, error) {
	if a == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "matrix A is required")
	}
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "matrix A has empty shape %d×%d", m, n)
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidArgument, "matrix A is not real at (%d,%d)", i, j)
			}
		}
	}
	q := mat.NewSymDense(n, nil)
	q.SymOuterK(1, a.T()) // Q = AᵀA
	return &Objective{n: n, q: q}, nil
}

// Dim returns the problem dimension n.
func (o *Objective) Dim() int { return o.n }

// Q returns the problem matrix. The caller must not modify it.
func (o *Objective) Q() mat.Symmetric { return o.q }

// Compute evaluates f(x) and
//
//	∇f(x) = (2·Qx − 2·f(x)·x) / xᵀx
func (o *Objective) Compute(x mat.Vector) (*Eval, error) {
	if x.Len() != o.n {
		return nil, errors.Wrapf(ErrDimension, "point has length %d, want %d", x.Len(), o.n)
	}

	e := &Eval{
		X:  mat.VecDenseCopyOf(x),
		Qx: mat.NewVecDense(o.n, nil),
		G:  mat.NewVecDense(o.n, nil),
	}
	e.Qx.MulVec(o.q, e.X)
	e.XQx = mat.Dot(e.X, e.Qx)
	e.XX = mat.Dot(e.X, e.X)
	if e.XX == 0 {
		return nil, errors.WithStack(ErrZeroPoint)
	}
	e.F = e.XQx / e.XX

	e.G.AddScaledVec(e.Qx, -e.F, e.X)
	e.G.ScaleVec(2/e.XX, e.G)
	return e, nil
}

// Value returns f(x) without building an evaluation record.
// It returns NaN for x = 0 or for a slice of the wrong length.
func (o *Objective) Value(x []float64) float64 {
	if len(x) != o.n {
		return math.NaN()
	}
	v := mat.NewVecDense(o.n, x)
	var qx mat.VecDense
	qx.MulVec(o.q, v)
	return mat.Dot(v, &qx) / mat.Dot(v, v)
}
