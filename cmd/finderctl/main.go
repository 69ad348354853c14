package main

import (
	"fmt"
	"os"

	"productfinder-backend/internal/shared/telemetry"
)

func main() {
	// Command output is JSON on stdout; keep log lines out of it.
	telemetry.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
