// SPDX-License-Identifier: MIT

// Package app wires the sparsesc-cv commands.
package app

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable bound to a flag,
// e.g. SPARSESC_MAX_WORKERS for --max-workers.
const EnvPrefix = "SPARSESC"

// Set at link time with -ldflags "-X .../app.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:               "sparsesc-cv",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Cross-validate synthetic-control penalties",
		Long: `sparsesc-cv selects the L1 penalty of the synthetic-control V-matrix fit
by K-fold cross-validation, either over treated units (when treated data is
given) or leave-one-out over control units.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	if err := v.BindPFlags(root.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("binding persistent flags: %v", err))
	}

	root.AddCommand(newScoreCmd(v))
	root.AddCommand(newVersionCmd())

	return root
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{
				Version:   Version,
				Commit:    Commit,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			if format == "json" {
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sparsesc-cv %s (commit %s, %s, %s)\n",
				info.Version, info.Commit, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String("format", "", "Output format (json)")

	return cmd
}
