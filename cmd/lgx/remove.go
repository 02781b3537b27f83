package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
	"github.com/meigma/lgx/pathnorm"
)

var removeOpts struct {
	variant string
	yes     bool
}

var removeCmd = &cobra.Command{
	Use:   "remove <package>",
	Short: "Remove a variant from a package",
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

		name := pathnorm.ToLower(removeOpts.variant)
		if !pkg.HasVariant(name) {
			return fmt.Errorf("variant not found: %s", name)
		}

		if !removeOpts.yes {
			if !confirm(fmt.Sprintf("Remove variant %q?", name), false) {
				return fmt.Errorf("aborted by user")
			}
		}

		if err := pkg.RemoveVariant(name); err != nil {
			return err
		}
		if err := pkg.Save(pkgPath); err != nil {
			return fmt.Errorf("save package: %w", err)
		}

		printSuccess("Removed variant %q from %s", name, pkgPath)
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVarP(&removeOpts.variant, "variant", "v", "", "variant name (required)")
	removeCmd.Flags().BoolVarP(&removeOpts.yes, "yes", "y", false, "skip confirmation prompts")
	_ = removeCmd.MarkFlagRequired("variant")
}
