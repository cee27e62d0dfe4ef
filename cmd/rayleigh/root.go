// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"strings"

	"github.com/curioloop/rayleigh/optimize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const (
	keyMinStep = "min-step"
	keyEps     = "eps"
	keyMaxIter = "max-iter"
	keyNegInf  = "neg-inf"
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "rayleigh",
		Short:         "Minimize the Rayleigh quotient of AᵀA",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd.Flags(), cfgFile)
		},
	}

	defaults := optimize.DefaultConfig()
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML file holding the solver configuration")
	flags.Float64(keyMinStep, defaults.MinStep, "stop when the line-search step is at most this value")
	flags.Float64(keyEps, defaults.Eps, "gradient norm tolerance")
	flags.Int(keyMaxIter, defaults.MaxIter, "maximum number of function evaluations")
	flags.Float64(keyNegInf, defaults.NegInf, "objective floor treated as minus infinity")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlagSet(klogFlags)

	cmd.AddCommand(newSolveCommand(v))
	return cmd
}

// initConfig layers flags over RAYLEIGH_* environment variables over the config file.
func initConfig(v *viper.Viper, flags *pflag.FlagSet, cfgFile string) error {
	v.SetEnvPrefix("RAYLEIGH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyMinStep, keyEps, keyMaxIter, keyNegInf} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return errors.Wrapf(err, "bind flag %s", key)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfgFile)
		}
		klog.V(1).InfoS("Loaded configuration", "file", v.ConfigFileUsed())
	}
	return nil
}

// loadConfig builds and validates the solver configuration.
func loadConfig(v *viper.Viper) (optimize.Config, error) {
	cfg := optimize.Config{
		MinStep: v.GetFloat64(keyMinStep),
		Eps:     v.GetFloat64(keyEps),
		MaxIter: v.GetInt(keyMaxIter),
		NegInf:  v.GetFloat64(keyNegInf),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
