// Package main provides the CLI entry point for refile.
package main

import (
	"os"

	"refile/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
