// Package main is the entry point for the bonusgrid CLI.
package main

import (
	"os"

	"github.com/justinharkelroad/agencybrain-bonusgrid/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
