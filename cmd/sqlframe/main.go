// Package main provides the sqlframe command.
package main

import (
	"os"

	"github.com/nao1215/sqlframe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
