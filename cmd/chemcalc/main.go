// Package main is the entry point for the chemcalc CLI.
package main

import (
	"os"

	"github.com/f3rmion/chemcalc/cmd/chemcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
