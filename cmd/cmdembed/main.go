// Package main provides the cmdembed asset pipeline CLI.
//
// Usage:
//
//	cmdembed [flags] <command>
//
// Commands:
//
//	reduce  - Reduce a word vector corpus to a binary vector store
//	embed   - Generate the command embedding table from a catalog
//	inspect - Print header and sample entries of a binary asset
//
// Configuration is read from .cmdembedconfig (JSON) in the working
// directory, overridable per-flag and via CMDEMBED_* environment
// variables.
package main

import (
	"fmt"
	"os"

	"github.com/localrivet/cmdembed/cmd/cmdembed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
