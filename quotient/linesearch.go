// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quotient

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Roots holds the solutions of a·t² + b·t + c = 0.
type Roots struct {
	// R1 ≤ R2 for real roots. For a complex pair both hold the common real part.
	R1, R2 float64
	// Count is 2 for a proper quadratic, 1 when a = 0, 0 when a = b = 0.
	Count int
	// Complex is set when the discriminant is negative.
	Complex bool
}

// SolveQuadratic returns the roots of a·t² + b·t + c = 0.
// The real roots are computed as q/a and c/q with q = −½(b + 𝚜𝚒𝚐𝚗(b)√(b² − 4ac))
// to avoid cancellation between b and the square root.
func SolveQuadratic(a, b, c float64) Roots {
	switch {
	case a == 0 && b == 0:
		return Roots{}
	case a == 0:
		r := -c / b
		return Roots{R1: r, R2: r, Count: 1}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		re := -b / (2 * a)
		return Roots{R1: re, R2: re, Count: 2, Complex: true}
	}

	var r1, r2 float64
	if q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b)); q != 0 {
		r1, r2 = q/a, c/q
	} // q = 0 only when b = c = 0: double root at the origin
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return Roots{R1: r1, R2: r2, Count: 2}
}

// Step picks the step length from the stationary points of f along the line:
//   - complex roots or no root: 0
//   - both roots negative: 0
//   - exactly one root non-negative: that root
//   - both roots non-negative: the smaller one
func (r Roots) Step() float64 {
	switch {
	case r.Complex || r.Count == 0:
		return 0
	case r.Count == 1 || r.R1 >= 0:
		return math.Max(r.R1, 0)
	case r.R2 < 0:
		return 0
	default:
		return r.R2
	}
}

// coefficients returns a, b, c of the stationarity equation a·α² + b·α + c = 0
// of f(x + α·d), where x is the point of e:
//
//	a = (dᵀQd)(xᵀd) − (xᵀQd)(dᵀd)
//	b = (dᵀQd)(xᵀx) − (xᵀQx)(dᵀd)
//	c = (xᵀQd)(xᵀx) − (xᵀQx)(xᵀd)
func (o *Objective) coefficients(e *Eval, d mat.Vector) (a, b, c, dd float64) {
	qd := mat.NewVecDense(o.n, nil)
	qd.MulVec(o.q, d)

	dQd := mat.Dot(d, qd)
	xQd := mat.Dot(e.X, qd)
	xd := mat.Dot(e.X, d)
	dd = mat.Dot(d, d)

	a = dQd*xd - xQd*dd
	b = dQd*e.XX - e.XQx*dd
	c = xQd*e.XX - e.XQx*xd
	return
}

// ExactLS returns the step α ≥ 0 that minimizes f(x + α·d), where x is the point of
// the evaluation record e. The restriction of f to the line is a ratio of quadratics in α,
// so its stationary points are the roots of a quadratic; see Roots.Step for the selection.
//
// When both roots are non-negative the smaller one is taken. Along a descent direction
// this is the first stationary point reached from α = 0, which is the minimizer.
// For a non-descent direction it may be the maximizer.
func (o *Objective) ExactLS(e *Eval, d mat.Vector) (float64, error) {
	if e == nil {
		return 0, errors.Wrap(ErrInvalidArgument, "line search requires an evaluation record")
	}
	if d.Len() != o.n {
		return 0, errors.Wrapf(ErrDimension, "direction has length %d, want %d", d.Len(), o.n)
	}

	a, b, c, dd := o.coefficients(e, d)
	if dd == 0 || (a == 0 && b == 0 && c == 0) {
		return 0, errors.WithStack(ErrDegenerateDirection)
	}
	return SolveQuadratic(a, b, c).Step(), nil
}
