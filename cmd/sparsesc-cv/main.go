// SPDX-License-Identifier: MIT

// Package main is the entry point of the sparsesc-cv command.
package main

import (
	"os"

	"github.com/xieliaing/SparseSC/cmd/sparsesc-cv/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
