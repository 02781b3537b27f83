package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
	"github.com/meigma/lgx/pathnorm"
)

var extractOpts struct {
	variant string
	output  string
}

var extractCmd = &cobra.Command{
	Use:   "extract <package>",
	Short: "Extract one or all variants from a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgPath := args[0]

		if _, err := os.Stat(pkgPath); err != nil {
			return fmt.Errorf("package not found: %s", pkgPath)
		}

		pkg, err := lgx.Load(pkgPath, engineOpts()...)
		if err != nil {
			return fmt.Errorf("load package: %w", err)
		}

		if extractOpts.variant == "" {
			n, err := pkg.ExtractAll(extractOpts.output)
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("No variants to extract.")
			} else {
				printSuccess("Extracted %d variant(s) to %s", n, extractOpts.output)
			}
			return nil
		}

		name := pathnorm.ToLower(extractOpts.variant)
		if !pkg.HasVariant(name) {
			return fmt.Errorf("variant not found: %s", name)
		}
		if err := pkg.ExtractVariant(name, extractOpts.output); err != nil {
			return err
		}
		printSuccess("Extracted variant %q to %s", name, extractOpts.output)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOpts.variant, "variant", "v", "", "variant to extract (default: all)")
	extractCmd.Flags().StringVarP(&extractOpts.output, "output", "o", ".", "output directory")
}
