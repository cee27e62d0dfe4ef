// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"math"

	"github.com/curioloop/rayleigh/quotient"
	"github.com/pkg/errors"
)

// ErrInvalidArgument reports a configuration or option rejected at construction.
var ErrInvalidArgument = quotient.ErrInvalidArgument

const (
	// The relative gap |f - f*| / |f*| at which the target value counts as reached.
	gapTol = 1e-15
	// The curvature yᵀs below which the BFGS update is refused.
	rhoTol = 1e-16
)

// Config specifies the stopping criteria shared by both solvers.
type Config struct {
	// The iteration stop when the line-search step satisfied: α ≤ MinStep
	MinStep float64
	// The iteration stop when the gradient satisfied: ‖g‖ ≤ Eps (scaled by ‖g₀‖ for BFGS).
	// Only used when no target value is given.
	Eps float64
	// The iteration stop when the number of function evaluations reaches limit.
	MaxIter int
	// The iteration stop when the function value satisfied: f ≤ NegInf.
	// A target value equal to NegInf means no target.
	NegInf float64
}

// DefaultConfig returns {MinStep: 1e-16, Eps: 1e-4, MaxIter: 500, NegInf: -∞}.
func DefaultConfig() Config {
	return Config{
		MinStep: 1e-16,
		Eps:     1e-4,
		MaxIter: 500,
		NegInf:  math.Inf(-1),
	}
}

// Validate checks the configuration.
func (c Config) Validate() (err error) {
	switch {
	case math.IsNaN(c.MinStep) || math.IsInf(c.MinStep, 0):
		err = errors.Wrap(ErrInvalidArgument, "min step is not a real scalar")
	case c.MinStep < 0:
		err = errors.Wrap(ErrInvalidArgument, "min step must not less than 0")
	case !isReal(c.Eps):
		err = errors.Wrap(ErrInvalidArgument, "eps is not a real scalar")
	case c.MaxIter <= 0:
		err = errors.Wrap(ErrInvalidArgument, "max iteration must greater than 0")
	case math.IsNaN(c.NegInf) || math.IsInf(c.NegInf, 1):
		err = errors.Wrap(ErrInvalidArgument, "minus infinity is not a real scalar")
	}
	return
}

func isReal(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
