// Command lgx creates, edits, verifies, and extracts .lgx packages.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/lgx"
)

var version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lgx",
	Short: "LGX package manager",
	Long: `lgx manages .lgx packages: deterministic archives bundling
platform-specific builds under named variants.

Examples:
  lgx create mymodule
  lgx add mymodule.lgx --variant linux-amd64 --files ./libfoo.so
  lgx verify mymodule.lgx`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(publishCmd)
}

// engineOpts builds the package options shared by all commands.
func engineOpts() []lgx.Option {
	if !verbose {
		return nil
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return []lgx.Option{lgx.WithLogger(logger)}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmtErr(err)
		os.Exit(1)
	}
}
