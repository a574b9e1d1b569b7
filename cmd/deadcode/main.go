package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "deadcode",
		Short:   "deadcode finds source files unreachable from any entry point",
		Version: version,
	}

	root.AddCommand(scanCmd())
	root.AddCommand(explainCmd())
	root.AddCommand(mcpServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
