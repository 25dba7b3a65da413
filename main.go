// Package main is the entry point for the qnet ledger CLI.
package main

import (
	"fmt"
	"os"

	"github.com/folashadea/Quantum-Entanglement-Network/cmd"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cmd.SetVersion(versionString)
	if err := cmd.Execute(); err != nil {
		if cmd.IsRejected(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
