package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <package>",
	Short: "Publish a package to a registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgPath := args[0]

		if _, err := os.Stat(pkgPath); err != nil {
			return fmt.Errorf("package not found: %s", pkgPath)
		}

		// Registry publishing is deferred to a later release; the
		// command exists so scripts can already depend on it.
		printInfo("Publish is a no-op in this release: %s", pkgPath)
		return nil
	},
}
