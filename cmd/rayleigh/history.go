// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"

	"github.com/curioloop/rayleigh/optimize"
	"github.com/pkg/errors"
)

// writeHistory writes one CSV row per recorded iteration of every run.
func writeHistory(w io.Writer, runs []run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"method", "iteration", "f", "grad_norm"}); err != nil {
		return errors.WithStack(err)
	}
	for _, r := range runs {
		if r.result == nil {
			continue
		}
		for i, f := range r.result.Values {
			row := []string{
				r.method,
				strconv.Itoa(i + 1),
				strconv.FormatFloat(f, 'g', -1, 64),
				strconv.FormatFloat(r.result.GradNorms[i], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

type run struct {
	method string
	result *optimize.Result
	err    error
}

// lockedWriter serializes the verbose output of solvers running concurrently.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
