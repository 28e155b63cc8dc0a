package main

import (
	"os"

	"ofods/internal/cli"
)

// main runs the ofods command tree; any command error exits 1.
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
