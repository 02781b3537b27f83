package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
	"github.com/meigma/lgx/pathnorm"
)

var addOpts struct {
	variant string
	files   string
	main    string
	yes     bool
}

var addCmd = &cobra.Command{
	Use:   "add <package>",
	Short: "Add or replace a variant in a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgPath := args[0]

		if _, err := os.Stat(pkgPath); err != nil {
			return fmt.Errorf("package not found: %s", pkgPath)
		}
		srcInfo, err := os.Stat(addOpts.files)
		if err != nil {
			return fmt.Errorf("path not found: %s", addOpts.files)
		}

		pkg, err := lgx.Load(pkgPath, engineOpts()...)
		if err != nil {
			return fmt.Errorf("load package: %w", err)
		}

		name := pathnorm.ToLower(addOpts.variant)
		exists := pkg.HasVariant(name)

		effectiveMain := addOpts.main
		if !srcInfo.IsDir() && effectiveMain == "" {
			effectiveMain = filepath.Base(addOpts.files)
		}
		if srcInfo.IsDir() && effectiveMain == "" {
			return fmt.Errorf("--main is required when --files is a directory")
		}
		mainChanges := pkg.WouldMainChange(name, effectiveMain)

		if !addOpts.yes {
			var prompt string
			switch {
			case exists && mainChanges:
				prompt = fmt.Sprintf("Variant %q exists and main would change. Replace?", name)
			case exists:
				prompt = fmt.Sprintf("Variant %q exists and will be replaced. Continue?", name)
			case mainChanges:
				prompt = fmt.Sprintf("main[%s] would change. Continue?", name)
			}
			if prompt != "" && !confirm(prompt, true) {
				return fmt.Errorf("aborted by user")
			}
		}

		if err := pkg.AddVariant(name, addOpts.files, addOpts.main); err != nil {
			return err
		}
		if err := pkg.Save(pkgPath); err != nil {
			return fmt.Errorf("save package: %w", err)
		}

		if exists {
			printSuccess("Replaced variant %q in %s", name, pkgPath)
		} else {
			printSuccess("Added variant %q to %s", name, pkgPath)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addOpts.variant, "variant", "v", "", "variant name (required)")
	addCmd.Flags().StringVarP(&addOpts.files, "files", "f", "", "file or directory to package (required)")
	addCmd.Flags().StringVarP(&addOpts.main, "main", "m", "", "entry-point path within the variant")
	addCmd.Flags().BoolVarP(&addOpts.yes, "yes", "y", false, "skip confirmation prompts")
	_ = addCmd.MarkFlagRequired("variant")
	_ = addCmd.MarkFlagRequired("files")
}
