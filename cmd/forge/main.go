// Package main is the entry point for the forge CLI tool.
package main

import (
	"os"

	"github.com/aaqilk/forge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
