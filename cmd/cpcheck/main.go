// Command cpcheck validates species counterpoint exercises from the
// terminal.
//
// Usage:
//
//	cpcheck [flags] <command> [subcommand] [args]
//
// Commands:
//
//	validate   - Check a counterpoint against a cantus firmus
//	cantus     - Browse the built-in cantus firmus catalog (list, show)
package main

import (
	"fmt"
	"os"

	"github.com/Conceptual-Machines/counterpoint-api/cmd/cpcheck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
