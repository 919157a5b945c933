package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/programfile"
)

func newShowCmd() *cobra.Command {
	var schedule bool
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a program as a tree, or week by week with --schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := programfile.Load(args[0])
			if err != nil {
				return err
			}
			if schedule {
				printSchedule(cmd.OutOrStdout(), p)
			} else {
				printTree(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&schedule, "schedule", false, "Flatten phases into consecutive weeks")
	return cmd
}

func printHeader(w io.Writer, p domain.Program) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(w, "%s\n", green(strings.ToUpper(p.Name)))
	fmt.Fprintf(w, "%s: %s\n", cyan("Goal"), p.Goal)
	if p.ProgramType != "" {
		fmt.Fprintf(w, "%s: %s\n", cyan("Type"), p.ProgramType)
	}
	fmt.Fprintf(w, "%s: %d weeks\n", cyan("Duration"), p.DurationWeeks)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

func exerciseLine(name string, sets int, reps string, rest int) string {
	if name == "" {
		name = "(unnamed)"
	}
	line := fmt.Sprintf("%s %dx%s", name, sets, reps)
	if rest > 0 {
		line += fmt.Sprintf(", rest %ds", rest)
	}
	return line
}

func printTree(w io.Writer, p domain.Program) {
	yellow := color.New(color.FgYellow).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	printHeader(w, p)
	for _, ph := range p.Phases {
		fmt.Fprintf(w, "%s %d: %s (%d weeks)\n", yellow("Phase"), ph.Number, ph.Name, ph.Duration)
		for _, wk := range ph.Weeks {
			fmt.Fprintf(w, "  Week %d: %s\n", wk.Number, wk.Name)
			for _, d := range wk.Days {
				fmt.Fprintf(w, "    Day %d: %s\n", d.Number, d.Name)
				for _, b := range d.Blocks {
					fmt.Fprintf(w, "      %s\n", magenta(b.Name))
					for _, x := range b.Exercises {
						fmt.Fprintf(w, "        - %s\n", exerciseLine(x.Name, x.Sets, x.Reps, x.Rest))
					}
				}
			}
		}
	}
}

func printSchedule(w io.Writer, p domain.Program) {
	yellow := color.New(color.FgYellow).SprintFunc()

	printHeader(w, p)
	for _, wk := range p.Schedule().Weeks {
		fmt.Fprintf(w, "%s %d: %s\n", yellow("Week"), wk.WeekNumber, wk.Name)
		for _, wo := range wk.Workouts {
			fmt.Fprintf(w, "  Day %d: %s\n", wo.Day, wo.Name)
			for _, x := range wo.Exercises {
				fmt.Fprintf(w, "    - %s [%s]\n", exerciseLine(x.Name, x.Sets, x.Reps, x.Rest), x.Notes)
			}
		}
	}
}
