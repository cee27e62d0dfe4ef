// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"math"
	"math/rand/v2"

	"github.com/curioloop/rayleigh/quotient"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Options holds the optional per-solver parameters.
// A nil field is absent and takes its default; a present field must be valid.
type Options struct {
	// Starting point, an n×1 real matrix. Default: uniform random in [0,1)ⁿ.
	InitialPoint mat.Matrix
	// Gradient norm tolerance. Default: Config.Eps.
	Eps *float64
	// Target optimal value f*; when present the gap |f - f*| / |f*| replaces the gradient test.
	// Default: Config.NegInf which disables the target.
	Target *float64
	// Scale β of the initial inverse Hessian H₀ = β·I (BFGS only). Default: 1.
	Beta *float64
	// Verbose raise the logger to LogEval.
	Verbose bool
	// Optional logger. Default: no output on stdout.
	Logger *Logger
	// Source of the random starting point. Default: the global generator.
	Rand *rand.Rand
}

// Float64 returns a pointer to v for use in Options.
func Float64(v float64) *float64 { return &v }

// stopTest is the stopping test common to both solvers.
type stopTest struct {
	eps    float64
	target float64
	negInf float64
	ng0    float64
}

func (t *stopTest) useTarget() bool {
	return t.target != t.negInf
}

func (t *stopTest) reached(f, ng float64) bool {
	if t.useTarget() {
		return math.Abs(f-t.target)/math.Abs(t.target) <= gapTol
	}
	return ng <= t.eps*t.ng0
}

// iterSpec is the validated input of a solver.
type iterSpec struct {
	f      *quotient.Objective
	cfg    Config
	x0     *mat.VecDense
	beta   float64
	stop   stopTest
	logger Logger
}

func newIterSpec(f *quotient.Objective, cfg Config, opt *Options) (spec *iterSpec, err error) {
	if opt == nil {
		opt = new(Options)
	}

	switch {
	case f == nil:
		err = errors.Wrap(ErrInvalidArgument, "objective function is required")
	case opt.Eps != nil && !isReal(*opt.Eps):
		err = errors.Wrap(ErrInvalidArgument, "eps is not a real scalar")
	case opt.Target != nil && (math.IsNaN(*opt.Target) || math.IsInf(*opt.Target, 1)):
		err = errors.Wrap(ErrInvalidArgument, "fstar is not a real scalar")
	case opt.Beta != nil && !isReal(*opt.Beta):
		err = errors.Wrap(ErrInvalidArgument, "beta is not a real scalar")
	default:
		err = cfg.Validate()
	}
	if err != nil {
		return
	}

	spec = &iterSpec{
		f:    f,
		cfg:  cfg,
		beta: 1,
		stop: stopTest{
			eps:    cfg.Eps,
			target: cfg.NegInf,
			negInf: cfg.NegInf,
			ng0:    1,
		},
		logger: newLogger(opt),
	}
	if opt.Eps != nil {
		spec.stop.eps = *opt.Eps
	}
	if opt.Target != nil {
		spec.stop.target = *opt.Target
	}
	if opt.Beta != nil {
		spec.beta = *opt.Beta
	}

	if spec.x0, err = initialPoint(f.Dim(), opt); err != nil {
		spec = nil
	}
	return
}

func initialPoint(n int, opt *Options) (*mat.VecDense, error) {
	if opt.InitialPoint == nil {
		x := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			if opt.Rand != nil {
				x.SetVec(i, opt.Rand.Float64())
			} else {
				x.SetVec(i, rand.Float64())
			}
		}
		return x, nil
	}

	r, c := opt.InitialPoint.Dims()
	switch {
	case c != 1:
		return nil, errors.Wrapf(ErrInvalidArgument, "x is not a (column) vector: shape %d×%d", r, c)
	case r != n:
		return nil, errors.Wrapf(ErrInvalidArgument, "x has length %d, want %d", r, n)
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := opt.InitialPoint.At(i, 0)
		if !isReal(v) {
			return nil, errors.Wrapf(ErrInvalidArgument, "x is not a real vector at %d", i)
		}
		x.SetVec(i, v)
	}
	if mat.Norm(x, 2) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "x must not be the zero vector")
	}
	return x, nil
}
