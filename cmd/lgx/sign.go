package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
)

var signCmd = &cobra.Command{
	Use:   "sign <package>",
	Short: "Sign a package (not yet implemented)",
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
		d, err := pkg.Digest()
		if err != nil {
			return err
		}
		printInfo("digest: %s", d)

		return lgx.Sign(pkgPath)
	},
}
