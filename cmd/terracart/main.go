// Command terracart is the eco-impact tooling for the storefront: product
// scoring, per-user impact reports, and the order-event cache worker.
package main

import (
	"fmt"
	"os"

	"github.com/terracart/terracart/internal/cli"
	"github.com/terracart/terracart/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to exit codes.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
