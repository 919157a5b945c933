package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/programfile"
)

func newInitCmd() *cobra.Command {
	var (
		name  string
		goal  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init FILE",
		Short: "Write a program skeleton with one phase, week, day and block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			p := editor.DefaultProgram()
			p.Name = name
			p.Goal = goal
			if err := programfile.Save(path, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "New program", "Program name")
	cmd.Flags().StringVar(&goal, "goal", "", "Program goal")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
