package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <package>",
	Short: "Verify a package's structure and manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgPath := args[0]

		if _, err := os.Stat(pkgPath); err != nil {
			return fmt.Errorf("package not found: %s", pkgPath)
		}

		result := lgx.Verify(pkgPath)

		for _, w := range result.Warnings {
			printInfo("warning: %s", w)
		}
		if !result.Valid {
			fmt.Fprintf(os.Stderr, "Package is invalid: %s\n", pkgPath)
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", e)
			}
			return fmt.Errorf("%d validation error(s)", len(result.Errors))
		}

		printSuccess("Package is valid: %s", pkgPath)
		if result.Digest != "" {
			printInfo("digest: %s", result.Digest)
		}
		return nil
	},
}
