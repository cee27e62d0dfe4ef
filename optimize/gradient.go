// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"github.com/curioloop/rayleigh/quotient"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// GradientDescent minimizes the Rayleigh quotient along d = -∇f(x) with an exact line search.
// It is full-batch steepest descent, no sampling is involved.
type GradientDescent struct {
	spec *iterSpec
	iterLoc
}

// NewGradientDescent validates the input and evaluates f at the starting point.
// Options.Beta is ignored.
func NewGradientDescent(f *quotient.Objective, cfg Config, opt *Options) (*GradientDescent, error) {
	spec, err := newIterSpec(f, cfg, opt)
	if err != nil {
		return nil, err
	}
	e, err := f.Compute(spec.x0)
	if err != nil {
		return nil, err
	}
	gd := &GradientDescent{spec: spec}
	gd.moveTo(e)
	gd.feval = 1
	return gd, nil
}

// Solve runs the iteration until a terminal status is reached.
// A line-search failure aborts the run with an error and the history gathered so far.
func (gd *GradientDescent) Solve() (*Result, error) {
	for gd.status == Running {
		if err := gd.iterate(); err != nil {
			return gd.result(), err
		}
	}
	gd.spec.logger.last("gradient descent", gd.status, gd.feval, gd.cur.F, gd.ng)
	return gd.result(), nil
}

// iterate performs one iteration, which costs one function evaluation
// unless a stopping test passes first.
func (gd *GradientDescent) iterate() error {
	spec := gd.spec
	spec.logger.eval(gd.feval, gd.cur.F, gd.ng)

	gd.record()
	if spec.stop.reached(gd.cur.F, gd.ng) {
		gd.status = Optimal
		return nil
	}
	if gd.feval >= spec.cfg.MaxIter {
		gd.status = Stopped
		return nil
	}

	var d mat.VecDense
	d.ScaleVec(-1, gd.cur.G)
	alpha, err := spec.f.ExactLS(gd.cur, &d)
	if err != nil {
		return errors.Wrapf(err, "line search at evaluation %d", gd.feval)
	}

	var x mat.VecDense
	x.AddScaledVec(gd.cur.X, alpha, &d)
	next, err := spec.f.Compute(&x)
	if err != nil {
		return errors.Wrapf(err, "evaluation %d", gd.feval+1)
	}
	gd.moveTo(next)
	gd.feval++

	// the step is judged after its point has been evaluated
	switch {
	case alpha <= spec.cfg.MinStep:
		gd.status = GradMinStep
	case gd.cur.F <= spec.cfg.NegInf:
		gd.status = Unbounded
	}
	return nil
}
