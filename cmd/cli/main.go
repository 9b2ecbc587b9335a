// Package main is the entry point for the packaging-quote CLI.
package main

import (
	"os"

	"packaging-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
