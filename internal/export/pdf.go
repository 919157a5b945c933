package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

type column struct {
	title string
	width float64
	align string
}

// Widths add up to the printable width of an A4 page with 10mm margins.
var pdfColumns = []column{
	{"Exercise", 62, "L"},
	{"Sets", 14, "C"},
	{"Reps", 20, "C"},
	{"Rest (s)", 18, "C"},
	{"Notes", 76, "L"},
}

const (
	rowHeight = 6.5
	margin    = 10.0
)

// renderPDF lays the structure out as one table per workout.
func renderPDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("NGX Coaching", true)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
		pdf.SetModificationDate(doc.GeneratedAt)
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin - 2)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range summaryLines(doc) {
		pdf.CellFormat(0, 5.5, tr(line), "", 1, "L", false, 0, "")
	}
	if doc.Description != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 5, tr(doc.Description), "", "L", false)
	}

	for _, week := range doc.Structure.Weeks {
		ensureSpace(pdf, 3*rowHeight+12)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		title := fmt.Sprintf("Week %d", week.WeekNumber)
		if week.Name != "" && week.Name != title {
			title += " - " + week.Name
		}
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

		for _, workout := range week.Workouts {
			ensureSpace(pdf, 3*rowHeight)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("Day %d: %s", workout.Day, workout.Name)), "", 1, "L", false, 0, "")
			tableHeader(pdf, tr)
			pdf.SetFont("Helvetica", "", 9)
			for _, x := range workout.Exercises {
				if ensureSpace(pdf, rowHeight) {
					tableHeader(pdf, tr)
					pdf.SetFont("Helvetica", "", 9)
				}
				cells := []string{x.Name, strconv.Itoa(x.Sets), x.Reps, strconv.Itoa(x.Rest), x.Notes}
				for i, c := range pdfColumns {
					pdf.CellFormat(c.width, rowHeight, fit(pdf, tr(cells[i]), c.width-2), "1", 0, c.align, false, 0, "")
				}
				pdf.Ln(-1)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func summaryLines(doc Document) []string {
	var lines []string
	if doc.ProgramType != "" {
		lines = append(lines, "Type: "+doc.ProgramType)
	}
	if doc.Goal != "" {
		lines = append(lines, "Goal: "+doc.Goal)
	}
	lines = append(lines, fmt.Sprintf("Duration: %d weeks", doc.DurationWeeks))
	for i, ph := range doc.Phases {
		lines = append(lines, fmt.Sprintf("Phase %d: %s (%d weeks)", i+1, ph.Name, ph.Duration))
	}
	return lines
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, rowHeight, tr(c.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// ensureSpace starts a new page when less than h mm are left above the footer.
// It reports whether a page was added.
func ensureSpace(pdf *fpdf.Fpdf, h float64) bool {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+h <= pageHeight-2*margin {
		return false
	}
	pdf.AddPage()
	return true
}

// fit shortens s with an ellipsis until it is at most width mm wide. s is
// already translated to the single-byte page encoding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
