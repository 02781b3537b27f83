package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
	"github.com/meigma/lgx/pathnorm"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new empty package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := pathnorm.ToLower(args[0])
		filename := name + ".lgx"

		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("file already exists: %s", filename)
		}

		if _, err := lgx.Create(filename, name, engineOpts()...); err != nil {
			return err
		}

		printSuccess("Created package: %s", filename)
		return nil
	},
}
