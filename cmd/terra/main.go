// Command terra renders and inspects terramach widget trees.
package main

import (
	"fmt"
	"os"

	"github.com/terramach/terramach/cmd/terra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
