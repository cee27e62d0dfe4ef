// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"github.com/curioloop/rayleigh/quotient"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// BFGS minimizes the Rayleigh quotient along the quasi-Newton direction d = -H·∇f(x)
// with an exact line search, where H approximates the inverse Hessian.
//
// # Reference:
//
//   - Nocedal & Wright, Numerical Optimization (2nd ed.), §6.1
type BFGS struct {
	spec *iterSpec
	h    *mat.SymDense
	iterLoc
}

// NewBFGS validates the input, seeds H₀ = β·I and evaluates f at the starting point.
func NewBFGS(f *quotient.Objective, cfg Config, opt *Options) (*BFGS, error) {
	spec, err := newIterSpec(f, cfg, opt)
	if err != nil {
		return nil, err
	}
	e, err := f.Compute(spec.x0)
	if err != nil {
		return nil, err
	}

	n := f.Dim()
	b := &BFGS{spec: spec, h: mat.NewSymDense(n, nil)}
	for i := 0; i < n; i++ {
		b.h.SetSym(i, i, spec.beta)
	}
	b.moveTo(e)
	b.feval = 1

	// the gradient test is relative to ‖g₀‖ unless a target value is used
	if !spec.stop.useTarget() {
		spec.stop.ng0 = b.ng
	}
	return b, nil
}

// Solve runs the iteration until a terminal status is reached.
// A line-search failure aborts the run with an error and the history gathered so far.
func (b *BFGS) Solve() (*Result, error) {
	for b.status == Running {
		if err := b.iterate(); err != nil {
			return b.result(), err
		}
	}
	b.spec.logger.last("bfgs", b.status, b.feval, b.cur.F, b.ng)
	return b.result(), nil
}

func (b *BFGS) result() *Result {
	r := b.iterLoc.result()
	r.InvHessian = mat.NewSymDense(b.h.SymmetricDim(), nil)
	r.InvHessian.CopySym(b.h)
	return r
}

func (b *BFGS) iterate() error {
	spec := b.spec
	spec.logger.eval(b.feval, b.cur.F, b.ng)

	b.record()
	if spec.stop.reached(b.cur.F, b.ng) {
		b.status = Optimal
		return nil
	}
	if b.feval >= spec.cfg.MaxIter {
		b.status = Stopped
		return nil
	}

	n := spec.f.Dim()
	d := mat.NewVecDense(n, nil)
	d.MulVec(b.h, b.cur.G)
	d.ScaleVec(-1, d)

	alpha, err := spec.f.ExactLS(b.cur, d)
	if err != nil {
		return errors.Wrapf(err, "line search at evaluation %d", b.feval)
	}

	x := mat.NewVecDense(n, nil)
	x.AddScaledVec(b.cur.X, alpha, d)
	next, err := spec.f.Compute(x)
	if err != nil {
		return errors.Wrapf(err, "evaluation %d", b.feval+1)
	}
	b.feval++

	if alpha <= spec.cfg.MinStep {
		b.status = QuasiMinStep
		return nil
	}
	// TODO: compare next.F once reference runs confirm the pre-step value is unintended.
	if b.cur.F <= spec.cfg.NegInf {
		b.status = Unbounded
		return nil
	}

	s := mat.NewVecDense(n, nil) // s = xₖ₊₁ - xₖ
	s.SubVec(next.X, b.cur.X)
	y := mat.NewVecDense(n, nil) // y = gₖ₊₁ - gₖ
	y.SubVec(next.G, b.cur.G)

	rho := mat.Dot(y, s)
	if rho < rhoTol {
		b.status = RhoError
		return nil
	}
	rho = 1 / rho

	// Hₖ₊₁ = Hₖ + ρ((1 + ρ yᵀHₖy) ssᵀ - Hₖysᵀ - s(Hₖy)ᵀ)
	hy := mat.NewVecDense(n, nil)
	hy.MulVec(b.h, y)
	b.h.SymRankOne(b.h, rho*(1+rho*mat.Dot(y, hy)), s)
	b.h.RankTwo(b.h, -rho, hy, s)

	b.moveTo(next)
	return nil
}
