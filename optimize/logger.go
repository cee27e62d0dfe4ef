// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"fmt"
	"io"
	"os"
)

// LogLevel controls the frequency of logger output
type LogLevel int

const (
	// LogNoop no output is generated
	LogNoop LogLevel = -1
	// LogLast print only one line when the solver terminates
	LogLast LogLevel = 0
	// LogEval print the evaluation count, f and ‖g‖ at every iteration
	LogEval LogLevel = 1
)

// Logger handles logging output for the solvers.
// Note the writer must be thread-safe when shared by concurrent solvers.
type Logger struct {
	Level LogLevel
	Msg   io.Writer // Writer to output log messages.
}

func (l *Logger) enable(level LogLevel) bool {
	return l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	_, _ = fmt.Fprintf(l.Msg, format, a...)
}

func (l *Logger) eval(feval int, f, ng float64) {
	if l.enable(LogEval) {
		l.log("fval: %d f(x): %0.15f ||g||: %0.15f\n", feval, f, ng)
	}
}

func (l *Logger) last(name string, s Status, feval int, f, ng float64) {
	if l.enable(LogLast) {
		l.log("%s: %s after %d evaluations, f(x): %0.15f ||g||: %0.15f\n", name, s, feval, f, ng)
	}
}

func newLogger(opt *Options) Logger {
	var l Logger
	if opt.Logger != nil {
		l = *opt.Logger
	} else {
		l.Level = LogNoop
	}
	if opt.Verbose && l.Level < LogEval {
		l.Level = LogEval
	}
	if l.Msg == nil {
		l.Msg = os.Stdout
	}
	return l
}
