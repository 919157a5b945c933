// Package cli implements ngxctl, the offline companion to the coaching
// service: it checks, prints and exports TOML program files.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ngxctl command tree.
func NewRootCmd() *cobra.Command {
	var noColor bool
	root := &cobra.Command{
		Use:           "ngxctl",
		Short:         "Validate, inspect and export NGX training programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newValidateCmd(),
		newShowCmd(),
		newExportCmd(),
		newInitCmd(),
	)
	return root
}

// Execute runs ngxctl with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
