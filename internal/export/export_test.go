package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/xuri/excelize/v2"

	"ngx/coaching/internal/domain"
)

var generated = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func testProgram() domain.Program {
	return domain.Program{
		Name: "Spring Strength Block",
		Goal: "Strength",
		Phases: []domain.Phase{
			{ID: "p1", Number: 1, Name: "Accumulation", Duration: 4, Weeks: []domain.Week{
				{ID: "w1", Number: 1, Name: "Week 1", Days: []domain.Day{
					{ID: "d1", Number: 1, Name: "Lower", Blocks: []domain.Block{
						{ID: "b1", Name: "Main", Exercises: []domain.BlockExercise{
							{ID: "x1", Name: "Back squat", Sets: 5, Reps: "5", Rest: 180},
							{ID: "x2", Name: "Romanian deadlift", Sets: 3, Reps: "8-10", Rest: 120, Notes: "Slow eccentric"},
						}},
					}},
				}},
			}},
			{ID: "p2", Number: 2, Name: "Intensification", Duration: 3, Weeks: []domain.Week{
				{ID: "w2", Number: 1, Name: "Week 1", Days: []domain.Day{
					{ID: "d2", Number: 1, Name: "Upper", Blocks: []domain.Block{
						{ID: "b2", Name: "Main", Exercises: []domain.BlockExercise{
							{ID: "x3", Name: "Bench press", Sets: 4, Reps: "3", Rest: 240},
						}},
					}},
				}},
			}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"pdf", FormatPDF},
		{" PDF ", FormatPDF},
		{"xlsx", FormatXLSX},
		{"Excel", FormatXLSX},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("docx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(docx) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"pdf", "excel", "PDF", "xlsx"})
	if err != nil {
		t.Fatalf("ParseFormats: %v", err)
	}
	if diff := cmp.Diff([]Format{FormatPDF, FormatXLSX}, got); diff != "" {
		t.Errorf("ParseFormats mismatch (-want +got):\n%s", diff)
	}
	if _, err := ParseFormats([]string{"pdf", "docx"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormats error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDocument_FileName(t *testing.T) {
	doc := FromProgram(testProgram(), generated)
	if got := doc.FileName(FormatPDF); got != "spring-strength-block.pdf" {
		t.Errorf("FileName = %q", got)
	}
	if got := (Document{Title: " ** "}).FileName(FormatXLSX); got != "program.xlsx" {
		t.Errorf("FileName of symbol-only title = %q, want program.xlsx", got)
	}
}

func TestFromProgram(t *testing.T) {
	doc := FromProgram(testProgram(), generated)
	if doc.DurationWeeks != 7 {
		t.Errorf("DurationWeeks = %d, want 7", doc.DurationWeeks)
	}
	want := []PhaseSummary{{Name: "Accumulation", Duration: 4}, {Name: "Intensification", Duration: 3}}
	if diff := cmp.Diff(want, doc.Phases); diff != "" {
		t.Errorf("Phases mismatch (-want +got):\n%s", diff)
	}
	if n := len(doc.Structure.Weeks); n != 2 {
		t.Fatalf("len(Structure.Weeks) = %d, want 2", n)
	}
	if got := doc.Structure.Weeks[1].Name; got != "Intensification - Week 1" {
		t.Errorf("second week name = %q", got)
	}
}

func TestRenderXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatXLSX, FromProgram(testProgram(), generated)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"Overview", "Week 1", "Week 2"}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
	rows, err := f.GetRows("Week 1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{
		{"Week 1: Accumulation - Week 1"},
		nil,
		{"Day", "Workout", "Exercise", "Sets", "Reps", "Rest (s)", "Notes"},
		{"1", "Lower", "Back squat", "5", "5", "180", "Main"},
		{"1", "Lower", "Romanian deadlift", "3", "8-10", "120", "Main: Slow eccentric"},
	}
	if diff := cmp.Diff(want, rows, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Week 1 rows mismatch (-want +got):\n%s", diff)
	}
	duration, err := f.GetCellValue("Overview", "B4")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if duration != "7" {
		t.Errorf("overview duration = %q, want 7", duration)
	}
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	doc := FromProgram(testProgram(), generated)
	doc.Description = "Café-friendly plan with a very long note that wraps across lines."
	if err := Render(&buf, FormatPDF, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
}

func TestRenderPDF_ManyWeeksPaginate(t *testing.T) {
	s := domain.ProgramStructure{}
	for i := range 12 {
		week := domain.TrainingWeek{ID: "w", WeekNumber: i + 1}
		for d := range 3 {
			wo := domain.WorkoutBlock{ID: "d", Name: "Session", Day: d + 1}
			for range 6 {
				wo.Exercises = append(wo.Exercises, domain.ExerciseItem{Name: "Walking lunge with a very long descriptive name", Sets: 3, Reps: "12", Rest: 60})
			}
			week.Workouts = append(week.Workouts, wo)
		}
		s.Weeks = append(s.Weeks, week)
	}
	var buf bytes.Buffer
	err := Render(&buf, FormatPDF, FromTemplate(domain.Template{Name: "Volume", Structure: s}, generated))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Count ")) {
		t.Error("rendered PDF has no page tree")
	}
}

func TestRenderAll(t *testing.T) {
	artifacts, err := RenderAll(context.Background(), FromProgram(testProgram(), generated), FormatXLSX, FormatPDF)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(artifacts))
	}
	if artifacts[0].Format != FormatXLSX || artifacts[1].Format != FormatPDF {
		t.Errorf("formats = %s, %s, want xlsx, pdf", artifacts[0].Format, artifacts[1].Format)
	}
	for _, a := range artifacts {
		if len(a.Data) == 0 {
			t.Errorf("%s artifact is empty", a.Format)
		}
	}
}

func TestRenderAll_Errors(t *testing.T) {
	doc := FromProgram(testProgram(), generated)
	if _, err := RenderAll(context.Background(), doc, FormatPDF, Format("odt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown format: error = %v, want ErrUnsupportedFormat", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderAll(ctx, doc, FormatPDF); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: error = %v, want context.Canceled", err)
	}
}
