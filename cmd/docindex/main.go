/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package main is the entry point for the docindex command.
package main

import (
	"os"

	"github.com/suparena/docregistry/cmd/docindex/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
