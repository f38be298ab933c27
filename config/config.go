// Package config loads solver settings from YAML and turns them into search
// options and a configured logger.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/testsel/bnb"
)

// ErrInvalid reports a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid configuration")

// Log formats accepted by LogConfig.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the top-level settings document.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
	Batch  BatchConfig  `yaml:"batch"`
}

// SearchConfig mirrors the tunable part of bnb.Options.
type SearchConfig struct {
	// Branching is a rule name understood by bnb.BrancherByName.
	Branching string `yaml:"branching"`
	// TimeLimit is written as a Go duration ("30s", "2m"); 0 disables it.
	TimeLimit time.Duration `yaml:"time_limit"`
	// MaxNodes caps evaluated nodes; 0 disables it.
	MaxNodes int     `yaml:"max_nodes"`
	Eps      float64 `yaml:"eps"`
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// BatchConfig controls "testsel batch".
type BatchConfig struct {
	Jobs int `yaml:"jobs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Branching: bnb.BranchSmallestValue,
			Eps:       bnb.DefaultEps,
		},
		Log: LogConfig{
			Level:  logrus.WarnLevel.String(),
			Format: FormatText,
		},
		Batch: BatchConfig{
			Jobs: runtime.GOMAXPROCS(0),
		},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// An empty path yields the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Decode overlays the YAML document read from r onto cfg. An empty document
// leaves cfg untouched.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}

	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := bnb.BrancherByName(c.Search.Branching); err != nil {
		return fmt.Errorf("%w: search.branching: %v", ErrInvalid, err)
	}
	if c.Search.TimeLimit < 0 {
		return fmt.Errorf("%w: search.time_limit %v is negative", ErrInvalid, c.Search.TimeLimit)
	}
	if c.Search.MaxNodes < 0 {
		return fmt.Errorf("%w: search.max_nodes %d is negative", ErrInvalid, c.Search.MaxNodes)
	}
	if c.Search.Eps < 0 || math.IsNaN(c.Search.Eps) || math.IsInf(c.Search.Eps, 0) {
		return fmt.Errorf("%w: search.eps %g", ErrInvalid, c.Search.Eps)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return fmt.Errorf("%w: log.format %q (want %s or %s)", ErrInvalid, c.Log.Format, FormatText, FormatJSON)
	}
	if c.Batch.Jobs < 1 {
		return fmt.Errorf("%w: batch.jobs %d must be >= 1", ErrInvalid, c.Batch.Jobs)
	}

	return nil
}

// Options converts the search section into bnb.Options. Logger and OnNode are
// left for the caller.
func (c Config) Options() (bnb.Options, error) {
	br, err := bnb.BrancherByName(c.Search.Branching)
	if err != nil {
		return bnb.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	opts := bnb.DefaultOptions()
	opts.Brancher = br
	opts.Eps = c.Search.Eps
	opts.TimeLimit = c.Search.TimeLimit
	opts.MaxNodes = c.Search.MaxNodes

	return opts, nil
}

// NewLogger builds a logrus logger writing to w with the configured level and
// formatter.
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	switch c.Log.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}

	return l, nil
}
