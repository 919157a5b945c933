package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ngx/coaching/internal/export"
	"ngx/coaching/internal/programfile"
)

func newExportCmd() *cobra.Command {
	var (
		formats []string
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Render a valid program to PDF and/or Excel files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := export.ParseFormats(formats)
			if err != nil {
				return err
			}

			p, err := programfile.Load(args[0])
			if err != nil {
				return err
			}
			if err := checkProgram(p); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			doc := export.FromProgram(p, time.Now())
			artifacts, err := export.RenderAll(cmd.Context(), doc, parsed...)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			green := color.New(color.FgGreen).SprintFunc()
			for _, a := range artifacts {
				path := filepath.Join(outDir, doc.FileName(a.Format))
				if err := os.WriteFile(path, a.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d bytes)\n", green("wrote"), path, len(a.Data))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"pdf", "xlsx"}, "Output formats: pdf, xlsx")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write files to")
	return cmd
}
