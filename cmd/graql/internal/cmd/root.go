// Package cmd wires the graql CLI's subcommand tree. It follows the
// teacher corpus's flat-package cobra layout: one file per subcommand, a
// package-level rootCmd, and an Execute entry point called from main.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	envcfg "github.com/vishalbelsare/graql/internal/envcfg"
)

var rootCmd = &cobra.Command{
	Use:   "graql",
	Short: "graql formats, checks, and interactively runs TypeQL-family query text",
}

// Execute runs the command tree; main calls this and exits non-zero on error.
func Execute() error {
	return rootCmd.Execute()
}

var noColor = envcfg.Bool("GRAQL_NO_COLOR", false)

func init() {
	envcfg.Parse()
	if *noColor {
		color.NoColor = true
	}

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(lintCmd)
}
