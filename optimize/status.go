// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

// Status is the state of a solver. Every value except Running is terminal.
type Status int

const (
	// Running the iteration continues.
	Running Status = iota
	// Optimal the stopping test on the gradient norm or target gap passed.
	Optimal
	// Stopped the evaluation budget is exhausted.
	Stopped
	// GradMinStep the gradient descent line search returned a step ≤ MinStep.
	GradMinStep
	// QuasiMinStep the BFGS line search returned a step ≤ MinStep.
	QuasiMinStep
	// Unbounded the function value fell to or below NegInf.
	Unbounded
	// RhoError the BFGS curvature pair has yᵀs < 10⁻¹⁶.
	RhoError
)

var statusTags = [...]string{
	Running:      "running",
	Optimal:      "optimal",
	Stopped:      "stopped",
	GradMinStep:  "error minStep",
	QuasiMinStep: "error min step",
	Unbounded:    "unbounded",
	RhoError:     "error rho",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusTags) {
		return "unknown"
	}
	return statusTags[s]
}

// OK reports whether the solver converged.
func (s Status) OK() bool { return s == Optimal }

// MinStep reports whether the line search stalled in either solver.
func (s Status) MinStep() bool { return s == GradMinStep || s == QuasiMinStep }
