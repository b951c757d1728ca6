// Package main provides the CLI entrypoint for struct-update.
//
// struct-update is a go:generate tool that:
//   - Parses Go packages (AST + go/types) for structs annotated with //structupdate:with
//   - Matches struct fields against the annotated type names
//   - Generates an UpdateStruct method applying the annotated transforms in place
package main

import (
	"os"

	"struct-update/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
