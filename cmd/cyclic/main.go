// Package main provides the cyclic command-line interface.
package main

import (
	"os"

	"github.com/cyclic-lang/cyclic/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
