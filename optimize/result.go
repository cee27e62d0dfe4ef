// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"github.com/curioloop/rayleigh/quotient"
	"gonum.org/v1/gonum/mat"
)

// Result contains the final result of the optimization process.
type Result struct {
	OK      bool          // Whether the optimization was converged.
	F       float64       // Final function value.
	X, G    *mat.VecDense // Final solution and gradient.
	Summary               // Optimization summary.
	History               // Recorded values, one entry per iteration.
	// Final inverse Hessian approximation, nil for gradient descent.
	InvHessian *mat.SymDense
}

// Summary contains a summary of the optimization process.
type Summary struct {
	Status  Status // Final status after optimization.
	NumEval int    // Number of function and gradient evaluations performed.
}

// History holds f and ‖g‖ recorded at the start of every iteration, before the stopping test.
type History struct {
	Values    []float64
	GradNorms []float64
}

// Len returns the number of recorded iterations.
func (h *History) Len() int { return len(h.Values) }

// iterLoc is the mutable state of a running solver.
type iterLoc struct {
	cur    *quotient.Eval
	ng     float64
	feval  int
	status Status
	hist   History
}

func (l *iterLoc) moveTo(e *quotient.Eval) {
	l.cur = e
	l.ng = mat.Norm(e.G, 2)
}

func (l *iterLoc) record() {
	l.hist.Values = append(l.hist.Values, l.cur.F)
	l.hist.GradNorms = append(l.hist.GradNorms, l.ng)
}

func (l *iterLoc) result() *Result {
	return &Result{
		OK: l.status.OK(),
		F:  l.cur.F,
		X:  mat.VecDenseCopyOf(l.cur.X),
		G:  mat.VecDenseCopyOf(l.cur.G),
		Summary: Summary{
			Status:  l.status,
			NumEval: l.feval,
		},
		History: History{
			Values:    append([]float64(nil), l.hist.Values...),
			GradNorms: append([]float64(nil), l.hist.GradNorms...),
		},
	}
}
