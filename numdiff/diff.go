// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numdiff

import (
	"errors"
	"math"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

type Method int

const (
	// Forward use the first order accuracy forward difference.
	Forward Method = iota
	// Central use the second order accuracy central difference.
	Central
)

// GradSpec estimates the gradient of a scalar function by finite differences.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
type GradSpec struct {
	N int
	// Function of which to estimate the gradient.
	// The argument x passed to this function is an n-vector and must not be retained.
	Object func(x []float64) float64
	// Finite difference method to use.
	Method Method
	// Relative step size used to compute absolute step size.
	// The default absolute step size is computed as h = RelStep * sign(x0) * max(1, abs(x0)) with RelStep being selected automatically.
	// Otherwise, absolute step size is computed as h = RelStep * sign(x0) * abs(x0) when RelStep is provided.
	RelStep float64
	// Absolute step size to use.
	// The RelStep is used when AbsStep is not provide.
	AbsStep float64
}

// Check the parameters.
func (gs *GradSpec) Check(x0, grad []float64) (err error) {
	switch {
	case gs.N <= 0:
		err = errors.New("negative dimensions")
	case gs.Method != Forward && gs.Method != Central:
		err = errors.New("unknown method")
	case gs.Object == nil:
		err = errors.New("object function is required")
	case gs.N != len(x0):
		err = errors.New("invalid x0 dimensions")
	case gs.N != len(grad):
		err = errors.New("invalid grad dimensions")
	}
	return
}

// Gradient stores the finite difference approximation of ∇f(x0) into grad.
// x0 is restored before return.
func (gs *GradSpec) Gradient(x0, grad []float64) error {

	if err := gs.Check(x0, grad); err != nil {
		return err
	}

	fun := gs.Object
	f0 := baseValue(gs.Method, fun, x0)
	for i, v := range x0 {
		h := absoluteStep(gs.Method, gs.AbsStep, gs.RelStep, v)
		if gs.Method == Central {
			h = math.Abs(h)
			x0[i] = v - h
			f1 := fun(x0)
			x0[i] = v + h
			f2 := fun(x0)
			grad[i] = (f2 - f1) / (2 * h)
		} else {
			x0[i] = v + h
			grad[i] = (fun(x0) - f0) / h
		}
		x0[i] = v
	}
	return nil
}

// Derivative approximates φ′(t) of the scalar function φ.
func Derivative(phi func(t float64) float64, t float64, method Method) float64 {
	h := absoluteStep(method, 0, 0, t)
	if method == Central {
		h = math.Abs(h)
		return (phi(t+h) - phi(t-h)) / (2 * h)
	}
	return (phi(t+h) - phi(t)) / h
}

func baseValue(method Method, fun func([]float64) float64, x0 []float64) float64 {
	if method == Central {
		return 0
	}
	return fun(x0)
}

func absoluteStep(method Method, abs, rel, v float64) float64 {
	var eps float64
	switch method {
	case Forward:
		eps = sqrtEps
	case Central:
		eps = cubeEps
	default:
		panic("unknown method")
	}

	if abs == 0 && rel == 0 {
		return math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
	}
	s := abs
	if s == 0 {
		s = math.Copysign(rel, v) * math.Abs(v)
	}
	if d := (v + s) - v; d == 0 {
		s = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
	}
	return s
}
