package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/testsel/bnb"
	"github.com/katalvlaran/testsel/config"
)

// options holds the flags shared by the root and batch commands. Flags that
// were set explicitly override the config file.
type options struct {
	configPath string
	timeLimit  time.Duration
	maxNodes   int
	branching  string
	logLevel   string
	logFormat  string
	quiet      bool
}

func (o *options) addFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	fs.DurationVar(&o.timeLimit, "time-limit", 0, "wall-clock budget per instance (0 = none)")
	fs.IntVar(&o.maxNodes, "max-nodes", 0, "maximum evaluated nodes per instance (0 = none)")
	fs.StringVar(&o.branching, "branching", bnb.BranchSmallestValue,
		fmt.Sprintf("branching rule: %s or %s", bnb.BranchSmallestValue, bnb.BranchFirstFree))
	fs.StringVar(&o.logLevel, "log-level", "", "log level (overrides config; default warn)")
	fs.StringVar(&o.logFormat, "log-format", "", "log format: text or json (overrides config)")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "do not print the instance summary")
}

// resolve loads the config file and applies explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	fs := cmd.Flags()
	if fs.Changed("time-limit") {
		cfg.Search.TimeLimit = o.timeLimit
	}
	if fs.Changed("max-nodes") {
		cfg.Search.MaxNodes = o.maxNodes
	}
	if fs.Changed("branching") {
		cfg.Search.Branching = o.branching
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	return cfg, cfg.Validate()
}

// setup resolves the configuration and returns search options with a logger
// tagged by a fresh run id.
func (o *options) setup(cmd *cobra.Command, logOut io.Writer) (config.Config, bnb.Options, error) {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return cfg, bnb.Options{}, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return cfg, opts, err
	}
	logger, err := cfg.NewLogger(logOut)
	if err != nil {
		return cfg, opts, err
	}
	opts.Logger = logger.WithFields(logrus.Fields{
		"run": uuid.NewString(),
		"cmd": cmd.Name(),
	})

	return cfg, opts, nil
}
