// SPDX-License-Identifier: MIT

// Package config loads the YAML run file of the sparsesc-cv command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/xieliaing/SparseSC/cv"
	"github.com/xieliaing/SparseSC/dataset"
	"github.com/xieliaing/SparseSC/logging"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Option configures LoadConfig.
type Option func(*loaderConfig) error

type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file.
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		cfg.path = realPath

		return nil
	}
}

// Config is one cross-validation run.
type Config struct {
	Data DataConfig `yaml:"data"`

	// Lambda is a single L1 penalty; mutually exclusive with Lambdas.
	Lambda *float64 `yaml:"lambda,omitempty" validate:"omitempty,gte=0"`

	// Lambdas is an ordered penalty grid.
	Lambdas []float64 `yaml:"lambdas,omitempty" validate:"excluded_with=Lambda,dive,gte=0"`

	// Splits is the fold count; 0 means cv.DefaultSplits.
	Splits int `yaml:"splits,omitempty" validate:"omitempty,min=2"`

	// ShuffleSeed shuffles units before folding when set.
	ShuffleSeed *int64 `yaml:"shuffleSeed,omitempty"`

	Parallel   bool `yaml:"parallel,omitempty"`
	MaxWorkers int  `yaml:"maxWorkers,omitempty" validate:"gte=0"`
	Quiet      bool `yaml:"quiet,omitempty"`
	Cache      bool `yaml:"cache,omitempty"`
	Progress   int  `yaml:"progress,omitempty" validate:"gte=0"`

	// L2PenW fixes the ridge penalty; nil derives it per fit.
	L2PenW *float64 `yaml:"l2PenW,omitempty" validate:"omitempty,gt=0"`

	Log LogConfig `yaml:"log,omitempty"`

	// MetricsFile receives a Prometheus text dump after the run.
	MetricsFile string `yaml:"metricsFile,omitempty"`
}

// DataConfig names the CSV inputs.
type DataConfig struct {
	X      string `yaml:"x" validate:"required"`
	Y      string `yaml:"y" validate:"required"`
	XTreat string `yaml:"xTreat,omitempty" validate:"required_with=YTreat"`
	YTreat string `yaml:"yTreat,omitempty" validate:"required_with=XTreat"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=text json"`
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// LoadConfig reads, parses and validates a run file.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field ranges and combinations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}

	return nil
}

// formatFieldError renders one failed rule as "data.x: required".
func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required", "required_with":
		return field + ": required"
	case "excluded_with":
		return field + ": mutually exclusive with " + strings.ToLower(fe.Param())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	}

	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}

// GetLambda returns the configured grid, the scalar, or Scalar(0).
func (c *Config) GetLambda() cv.Lambda {
	switch {
	case len(c.Lambdas) > 0:
		return cv.Grid(c.Lambdas...)
	case c.Lambda != nil:
		return cv.Scalar(*c.Lambda)
	default:
		return cv.Scalar(0)
	}
}

// Paths returns the CSV inputs for dataset.Load.
func (c *Config) Paths() dataset.Paths {
	return dataset.Paths{X: c.Data.X, Y: c.Data.Y, XTreat: c.Data.XTreat, YTreat: c.Data.YTreat}
}

// ScoreOptions translates the run settings into cv options.
func (c *Config) ScoreOptions() []cv.Option {
	var opts []cv.Option
	if c.Splits > 0 {
		opts = append(opts, cv.WithSplits(c.Splits))
	}
	if c.ShuffleSeed != nil {
		opts = append(opts, cv.WithShuffle(*c.ShuffleSeed))
	}
	if c.Parallel {
		opts = append(opts, cv.WithParallel())
	}
	if c.MaxWorkers > 0 {
		opts = append(opts, cv.WithMaxWorkers(c.MaxWorkers))
	}
	if c.Quiet {
		opts = append(opts, cv.WithQuiet())
	}
	if c.Cache {
		opts = append(opts, cv.WithCache())
	}
	if c.Progress > 0 {
		opts = append(opts, cv.WithProgress(c.Progress))
	}
	if c.L2PenW != nil {
		opts = append(opts, cv.WithL2PenW(*c.L2PenW))
	}

	return opts
}
