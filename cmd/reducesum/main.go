// Command reducesum runs parallel reductions over numbers read from a file.
package main

import (
	"fmt"
	"os"

	"github.com/exascience/reducesum/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reducesum:", err)
		os.Exit(1)
	}
}
