// Package main is the entry point for the sshc binary.
//
// sshc is a terminal application that combines a TUI dashboard (built with
// Bubble Tea) and a CLI (built with Cobra) for managing hosts in the OpenSSH
// client config.
//
// When invoked without arguments, it launches the interactive TUI dashboard.
// When invoked with subcommands (e.g. "list", "connect", "check"), it runs
// the corresponding CLI operation and exits.
//
// Usage:
//
//	sshc                # launch the TUI dashboard
//	sshc list           # list hosts from ~/.ssh/config
//	sshc connect web    # open an interactive ssh session
//	sshc check          # run local diagnostics
//
// The CLI is constructed in internal/cli and the TUI in internal/ui. This
// file simply wires them together and handles top-level error reporting.
package main

import (
	"fmt"
	"os"

	"github.com/Akaere-NetWorks/SSHC/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()

	// Cobra handles argument parsing, subcommand routing, and help output.
	// Any error returned by a RunE handler is printed to stderr and the
	// process exits non-zero.
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
