// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"bytes"
	"math"
	"testing"

	"github.com/curioloop/rayleigh/quotient"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1e-16, cfg.MinStep)
	require.Equal(t, 1e-4, cfg.Eps)
	require.Equal(t, 500, cfg.MaxIter)
	require.True(t, math.IsInf(cfg.NegInf, -1))
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
	}{
		{"negative min step", func(c *Config) { c.MinStep = -1e-3 }},
		{"nan min step", func(c *Config) { c.MinStep = math.NaN() }},
		{"nan eps", func(c *Config) { c.Eps = math.NaN() }},
		{"inf eps", func(c *Config) { c.Eps = math.Inf(1) }},
		{"zero max iter", func(c *Config) { c.MaxIter = 0 }},
		{"nan floor", func(c *Config) { c.NegInf = math.NaN() }},
		{"plus inf floor", func(c *Config) { c.NegInf = math.Inf(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.edit(&cfg)
			require.True(t, errors.Is(cfg.Validate(), ErrInvalidArgument))
		})
	}
}

func TestStatusString(t *testing.T) {
	want := map[Status]string{
		Running:      "running",
		Optimal:      "optimal",
		Stopped:      "stopped",
		GradMinStep:  "error minStep",
		QuasiMinStep: "error min step",
		Unbounded:    "unbounded",
		RhoError:     "error rho",
		Status(42):   "unknown",
	}
	for s, tag := range want {
		require.Equal(t, tag, s.String())
	}
	require.True(t, Optimal.OK())
	require.False(t, Stopped.OK())
	require.True(t, GradMinStep.MinStep())
	require.True(t, QuasiMinStep.MinStep())
	require.False(t, RhoError.MinStep())
}

func TestConstructionRejectsInvalidInput(t *testing.T) {
	f := diagObjective(t)
	type ctor func(*quotient.Objective, Config, *Options) (bool, error)
	ctors := map[string]ctor{
		"gradient": func(f *quotient.Objective, c Config, o *Options) (bool, error) {
			s, err := NewGradientDescent(f, c, o)
			return s == nil, err
		},
		"bfgs": func(f *quotient.Objective, c Config, o *Options) (bool, error) {
			s, err := NewBFGS(f, c, o)
			return s == nil, err
		},
	}

	negMinStep := DefaultConfig()
	negMinStep.MinStep = -1

	cases := []struct {
		name string
		f    *quotient.Objective
		cfg  Config
		opt  *Options
	}{
		{"nil objective", nil, DefaultConfig(), nil},
		{"negative min step", f, negMinStep, nil},
		{"row vector", f, DefaultConfig(), &Options{InitialPoint: mat.NewDense(1, 2, []float64{1, 1})}},
		{"matrix point", f, DefaultConfig(), &Options{InitialPoint: mat.NewDense(2, 2, []float64{1, 1, 1, 1})}},
		{"short point", f, DefaultConfig(), &Options{InitialPoint: mat.NewVecDense(1, []float64{1})}},
		{"nan point", f, DefaultConfig(), &Options{InitialPoint: mat.NewVecDense(2, []float64{1, math.NaN()})}},
		{"zero point", f, DefaultConfig(), &Options{InitialPoint: mat.NewVecDense(2, nil)}},
		{"nan eps", f, DefaultConfig(), &Options{Eps: Float64(math.NaN())}},
		{"nan target", f, DefaultConfig(), &Options{Target: Float64(math.NaN())}},
		{"inf beta", f, DefaultConfig(), &Options{Beta: Float64(math.Inf(1))}},
	}
	for name, newSolver := range ctors {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				isNil, err := newSolver(tc.f, tc.cfg, tc.opt)
				require.True(t, isNil)
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
			})
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	l := newLogger(&Options{Verbose: true, Logger: &Logger{Level: LogNoop, Msg: &buf}})
	require.Equal(t, LogEval, l.Level)
	l.eval(3, 1.5, 0.25)
	require.Equal(t, "fval: 3 f(x): 1.500000000000000 ||g||: 0.250000000000000\n", buf.String())

	buf.Reset()
	l = newLogger(&Options{Logger: &Logger{Level: LogLast, Msg: &buf}})
	l.eval(3, 1.5, 0.25)
	require.Empty(t, buf.String())
	l.last("bfgs", Stopped, 3, 1.5, 0.25)
	require.Equal(t, "bfgs: stopped after 3 evaluations, f(x): 1.500000000000000 ||g||: 0.250000000000000\n", buf.String())

	l = newLogger(&Options{})
	require.Equal(t, LogNoop, l.Level)
	require.NotNil(t, l.Msg)
}
