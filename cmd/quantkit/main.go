// Command quantkit is the command-line front end of the quantkit pricing library.
package main

import (
	"fmt"
	"os"

	"quantkit/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
