// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/curioloop/rayleigh/numdiff"
	"github.com/curioloop/rayleigh/optimize"
	"github.com/curioloop/rayleigh/quotient"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"
)

const (
	methodGD   = "gd"
	methodBFGS = "bfgs"
	methodBoth = "both"
)

// gradCheckTol is the largest accepted gap between the closed-form and finite-difference gradients.
const gradCheckTol = 1e-6

type solver interface {
	Solve() (*optimize.Result, error)
}

type solveOptions struct {
	matrix    string
	rows      int
	cols      int
	seed      uint64
	method    string
	x0        []float64
	beta      float64
	target    float64
	verbose   bool
	reference bool
	checkGrad bool
	history   string

	betaSet, targetSet bool
}

func newSolveCommand(v *viper.Viper) *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run gradient descent and/or BFGS on one problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			o.betaSet = cmd.Flags().Changed("beta")
			o.targetSet = cmd.Flags().Changed("target")
			return o.run(cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.matrix, "matrix", "", "YAML or JSON file holding the matrix a (and optionally x0)")
	flags.IntVar(&o.rows, "rows", 10, "rows of the random matrix used when --matrix is absent")
	flags.IntVar(&o.cols, "cols", 5, "columns of the random matrix used when --matrix is absent")
	flags.Uint64Var(&o.seed, "seed", 1, "seed of the random matrix and starting point")
	flags.StringVar(&o.method, "method", methodBoth, "solver to run: gd, bfgs or both")
	flags.Float64SliceVar(&o.x0, "x0", nil, "starting point, comma separated")
	flags.Float64Var(&o.beta, "beta", 1, "scale of the initial inverse Hessian (bfgs)")
	flags.Float64Var(&o.target, "target", math.Inf(-1), "known optimal value; switches to the relative gap test")
	flags.BoolVar(&o.verbose, "verbose", false, "print f and ‖g‖ at every iteration")
	flags.BoolVar(&o.reference, "reference", false, "print the smallest eigenvalue of AᵀA")
	flags.BoolVar(&o.checkGrad, "check-grad", false, "compare the gradient at x0 with a finite-difference estimate")
	flags.StringVar(&o.history, "history", "", "CSV file receiving f and ‖g‖ of every iteration")
	return cmd
}

func (o *solveOptions) methods() ([]string, error) {
	switch o.method {
	case methodGD, methodBFGS:
		return []string{o.method}, nil
	case methodBoth:
		return []string{methodGD, methodBFGS}, nil
	}
	return nil, errors.Errorf("unknown method %q", o.method)
}

// problem returns A and the starting point.
func (o *solveOptions) problem(rnd *rand.Rand) (*mat.Dense, []float64, error) {
	var (
		a   *mat.Dense
		x0  = o.x0
		err error
	)
	if o.matrix != "" {
		p, err := readProblem(o.matrix)
		if err != nil {
			return nil, nil, err
		}
		if a, err = p.matrix(); err != nil {
			return nil, nil, err
		}
		if x0 == nil {
			x0 = p.X0
		}
	} else if a, err = randomMatrix(rnd, o.rows, o.cols); err != nil {
		return nil, nil, err
	}

	if _, n := a.Dims(); x0 == nil {
		x0 = randomPoint(rnd, n)
	}
	return a, x0, nil
}

func (o *solveOptions) run(out io.Writer, cfg optimize.Config) error {
	methods, err := o.methods()
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewPCG(o.seed, o.seed+1))
	a, x0, err := o.problem(rnd)
	if err != nil {
		return err
	}
	f, err := quotient.New(a)
	if err != nil {
		return err
	}
	if len(x0) != f.Dim() {
		return errors.Wrapf(optimize.ErrInvalidArgument, "x0 has length %d, want %d", len(x0), f.Dim())
	}
	m, n := a.Dims()
	klog.V(1).InfoS("Problem ready", "rows", m, "cols", n, "methods", methods)

	if o.checkGrad {
		if err = checkGradient(out, f, x0); err != nil {
			return err
		}
	}
	if o.reference {
		var es mat.EigenSym
		if !es.Factorize(f.Q(), false) {
			return errors.New("eigen decomposition of AᵀA failed")
		}
		_, _ = fmt.Fprintf(out, "lambda_min: %.15g\n", floats.Min(es.Values(nil)))
	}

	// each solver gets its own goroutine; the objective is read-only
	runs := make([]run, len(methods))
	verbose := &lockedWriter{w: out}
	var wg sync.WaitGroup
	for i, method := range methods {
		wg.Add(1)
		go func(r *run) {
			defer wg.Done()
			r.method = method
			s, err := o.solver(method, f, cfg, x0, verbose)
			if err != nil {
				r.err = err
				return
			}
			r.result, r.err = s.Solve()
		}(&runs[i])
	}
	wg.Wait()

	for _, r := range runs {
		if r.err != nil {
			return errors.Wrapf(r.err, "%s", r.method)
		}
		_, _ = fmt.Fprintf(out, "%-4s status=%q f=%.15g evaluations=%d ||g||=%.3e\n",
			r.method, r.result.Status, r.result.F, r.result.NumEval, r.result.GradNorms[r.result.Len()-1])
		if !r.result.OK {
			klog.InfoS("Solver did not converge", "method", r.method, "status", r.result.Status.String())
		}
	}

	if o.history != "" {
		file, err := os.Create(o.history)
		if err != nil {
			return errors.Wrapf(err, "create history %s", o.history)
		}
		defer file.Close()
		if err = writeHistory(file, runs); err != nil {
			return err
		}
		klog.V(1).InfoS("History written", "file", o.history)
	}
	return nil
}

func (o *solveOptions) solver(method string, f *quotient.Objective, cfg optimize.Config, x0 []float64, verbose io.Writer) (solver, error) {
	opt := &optimize.Options{
		InitialPoint: mat.NewVecDense(len(x0), append([]float64(nil), x0...)),
		Verbose:      o.verbose,
	}
	if o.verbose {
		opt.Logger = &optimize.Logger{Level: optimize.LogLast, Msg: verbose}
	}
	if o.targetSet {
		opt.Target = optimize.Float64(o.target)
	}
	if method == methodGD {
		return optimize.NewGradientDescent(f, cfg, opt)
	}
	if o.betaSet {
		opt.Beta = optimize.Float64(o.beta)
	}
	return optimize.NewBFGS(f, cfg, opt)
}

// checkGradient compares the closed-form gradient at x0 with a central-difference estimate.
func checkGradient(out io.Writer, f *quotient.Objective, x0 []float64) error {
	e, err := f.Compute(mat.NewVecDense(len(x0), append([]float64(nil), x0...)))
	if err != nil {
		return err
	}
	fd := make([]float64, len(x0))
	gs := numdiff.GradSpec{N: len(x0), Object: f.Value, Method: numdiff.Central}
	if err = gs.Gradient(append([]float64(nil), x0...), fd); err != nil {
		return errors.WithStack(err)
	}
	gap := floats.Distance(e.G.RawVector().Data, fd, math.Inf(1))
	_, _ = fmt.Fprintf(out, "gradient check: max |g - g_fd| = %.3e\n", gap)
	if gap > gradCheckTol*math.Max(1, floats.Norm(fd, math.Inf(1))) {
		klog.Warningf("closed-form gradient differs from finite differences by %.3e", gap)
	}
	return nil
}
