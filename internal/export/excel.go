package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const overviewSheet = "Overview"

var weekColumns = []any{"Day", "Workout", "Exercise", "Sets", "Reps", "Rest (s)", "Notes"}

// renderXLSX writes an overview sheet followed by one sheet per week.
func renderXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return err
	}

	if err := writeOverview(f, doc, bold, header); err != nil {
		return fmt.Errorf("overview sheet: %w", err)
	}
	for _, week := range doc.Structure.Weeks {
		sheet := fmt.Sprintf("Week %d", week.WeekNumber)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		title := sheet
		if week.Name != "" && week.Name != sheet {
			title = fmt.Sprintf("%s: %s", sheet, week.Name)
		}
		if err := f.SetSheetRow(sheet, "A1", &[]any{title}); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, "A3", &weekColumns); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A3", "G3", header); err != nil {
			return err
		}
		row := 4
		for _, workout := range week.Workouts {
			if len(workout.Exercises) == 0 {
				if err := setRow(f, sheet, row, workout.Day, workout.Name); err != nil {
					return err
				}
				row++
				continue
			}
			for _, x := range workout.Exercises {
				if err := setRow(f, sheet, row, workout.Day, workout.Name, x.Name, x.Sets, x.Reps, x.Rest, x.Notes); err != nil {
					return err
				}
				row++
			}
		}
		if err := f.SetColWidth(sheet, "B", "C", 24); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "G", "G", 40); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeOverview(f *excelize.File, doc Document, bold, header int) error {
	rows := [][]any{
		{"Program", doc.Title},
		{"Type", doc.ProgramType},
		{"Goal", doc.Goal},
		{"Duration (weeks)", doc.DurationWeeks},
		{"Description", doc.Description},
		{"Generated", doc.GeneratedAt.Format("2006-01-02 15:04")},
	}
	for i, r := range rows {
		if err := setRow(f, overviewSheet, i+1, r...); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(overviewSheet, "A1", fmt.Sprintf("A%d", len(rows)), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(overviewSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(overviewSheet, "B", "B", 40); err != nil {
		return err
	}
	if len(doc.Phases) == 0 {
		return nil
	}

	start := len(rows) + 2
	if err := setRow(f, overviewSheet, start, "Phase", "Weeks", "Notes"); err != nil {
		return err
	}
	if err := f.SetCellStyle(overviewSheet, fmt.Sprintf("A%d", start), fmt.Sprintf("C%d", start), header); err != nil {
		return err
	}
	for i, ph := range doc.Phases {
		if err := setRow(f, overviewSheet, start+1+i, ph.Name, ph.Duration, ph.Notes); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
