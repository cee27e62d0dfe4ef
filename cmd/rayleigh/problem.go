// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math/rand/v2"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"sigs.k8s.io/yaml"
)

// problemFile is the YAML or JSON description of a problem:
//
//	a:
//	  - [3, 0]
//	  - [0, 1]
//	x0: [1, 1]
type problemFile struct {
	A  [][]float64 `json:"a"`
	X0 []float64   `json:"x0,omitempty"`
}

func readProblem(path string) (*problemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read problem %s", path)
	}
	var p problemFile
	if err = yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parse problem %s", path)
	}
	return &p, nil
}

// matrix returns A as a dense matrix, rejecting ragged rows.
func (p *problemFile) matrix() (*mat.Dense, error) {
	m := len(p.A)
	if m == 0 || len(p.A[0]) == 0 {
		return nil, errors.New("matrix a is empty")
	}
	n := len(p.A[0])
	data := make([]float64, 0, m*n)
	for i, row := range p.A {
		if len(row) != n {
			return nil, errors.Errorf("matrix a row %d has %d columns, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

func randomMatrix(rnd *rand.Rand, m, n int) (*mat.Dense, error) {
	if m <= 0 || n <= 0 {
		return nil, errors.Errorf("random matrix shape %d×%d must be positive", m, n)
	}
	data := make([]float64, m*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	return mat.NewDense(m, n, data), nil
}

func randomPoint(rnd *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = rnd.Float64()
	}
	return x
}
