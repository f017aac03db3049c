// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xieliaing/SparseSC/config"
	"github.com/xieliaing/SparseSC/cv"
	"github.com/xieliaing/SparseSC/dataset"
	"github.com/xieliaing/SparseSC/logging"
	"github.com/xieliaing/SparseSC/workerpool"
)

func newScoreCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Cross-validate one penalty or a penalty grid",
		Long: `Read the design matrices from CSV, run K-fold cross-validation and print
one line per penalty: lambda=<value> score=<fold-summed held-out error>.

Settings come from --config (YAML) when given, otherwise from flags and
SPARSESC_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, v)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "Path to a YAML run file")
	f.String("x", "", "CSV of control predictors")
	f.String("y", "", "CSV of control outcomes")
	f.String("x-treat", "", "CSV of treated predictors (enables treated-unit folds)")
	f.String("y-treat", "", "CSV of treated outcomes")
	f.Float64("lambda", 0, "Single L1 penalty")
	f.StringSlice("lambdas", nil, "Ordered L1 penalty grid (overrides --lambda)")
	f.Int("splits", cv.DefaultSplits, "Number of folds")
	f.Int64("shuffle-seed", 0, "Shuffle units with this seed before folding")
	f.Bool("parallel", false, "Evaluate folds on a worker pool")
	f.Int("max-workers", 0, "Pool size (0 derives it from the CPU count)")
	f.Bool("quiet", false, "Suppress the run summary")
	f.Bool("cache", false, "Warm-start each penalty from the previous fit")
	f.Int("progress", 0, "Log every n-th penalty of a grid (0 disables)")
	f.Float64("l2-pen-w", 0, "Fixed ridge penalty (derived per fit when unset)")
	f.String("metrics-file", "", "Write Prometheus metrics in text format to this file")
	if err := v.BindPFlags(f); err != nil {
		panic(fmt.Sprintf("binding score flags: %v", err))
	}

	return cmd
}

func runScore(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := scoreConfig(v)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	mgr := workerpool.NewManager(logger)
	ctx, stop := workerpool.ReleaseOnSignal(cmd.Context(), mgr)
	defer stop()
	defer mgr.Release()

	data, err := dataset.Load(ctx, cfg.Paths())
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	reg := prometheus.NewRegistry()
	scorer := &cv.Scorer{Logger: logger, Metrics: cv.NewMetrics(reg), Manager: mgr}
	lambda := cfg.GetLambda()
	res, err := scorer.CVScore(ctx, data, lambda, cfg.ScoreOptions()...)
	if err != nil {
		return fmt.Errorf("cross-validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, lam := range lambda.Values() {
		if _, err := fmt.Fprintf(out, "lambda=%g score=%g\n", lam, res.Totals[i]); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return nil
}

// scoreConfig loads --config when given; otherwise it builds the run from
// flags and environment. Log settings from flags fill what the file leaves empty.
func scoreConfig(v *viper.Viper) (*config.Config, error) {
	var cfg *config.Config
	if path := v.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(config.WithConfigPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	} else {
		built, err := configFromFlags(v)
		if err != nil {
			return nil, err
		}
		if err := built.Validate(); err != nil {
			return nil, err
		}
		cfg = built
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = v.GetString("log-level")
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = v.GetString("log-format")
	}

	return cfg, nil
}

func configFromFlags(v *viper.Viper) (*config.Config, error) {
	cfg := &config.Config{
		Data: config.DataConfig{
			X:      v.GetString("x"),
			Y:      v.GetString("y"),
			XTreat: v.GetString("x-treat"),
			YTreat: v.GetString("y-treat"),
		},
		Splits:      v.GetInt("splits"),
		Parallel:    v.GetBool("parallel"),
		MaxWorkers:  v.GetInt("max-workers"),
		Quiet:       v.GetBool("quiet"),
		Cache:       v.GetBool("cache"),
		Progress:    v.GetInt("progress"),
		MetricsFile: v.GetString("metrics-file"),
	}

	raw := v.GetStringSlice("lambdas")
	if len(raw) > 0 {
		cfg.Lambdas = make([]float64, len(raw))
		for i, s := range raw {
			lam, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("--lambdas %q: %w", s, err)
			}
			cfg.Lambdas[i] = lam
		}
	} else {
		lam := v.GetFloat64("lambda")
		cfg.Lambda = &lam
	}
	if v.IsSet("shuffle-seed") {
		seed := v.GetInt64("shuffle-seed")
		cfg.ShuffleSeed = &seed
	}
	if v.IsSet("l2-pen-w") {
		w := v.GetFloat64("l2-pen-w")
		cfg.L2PenW = &w
	}

	return cfg, nil
}
