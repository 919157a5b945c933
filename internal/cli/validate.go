package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/programfile"
)

var errInvalidPrograms = errors.New("some programs are invalid")

// checkProgram runs the same checks the service applies before saving.
func checkProgram(p domain.Program) error {
	if err := editor.Validate(p); err != nil {
		return err
	}
	return editor.CheckStructure(p)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check program files the way the server does before saving",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed, color.Bold).SprintFunc()
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				p, err := programfile.Load(path)
				if err == nil {
					err = checkProgram(p)
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", red("FAIL"), path, err)
					continue
				}
				fmt.Fprintf(out, "%s %s (%d phases, %d weeks)\n", green("ok"), path, len(p.Phases), p.DurationWeeks)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidPrograms, failed, len(args))
			}
			return nil
		},
	}
}
