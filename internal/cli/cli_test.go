package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const validProgram = `
name = "Spring block"
goal = "Strength"

[[phases]]
name = "Base"
duration = 4

  [[phases.weeks]]
  name = "Intro"

    [[phases.weeks.days]]
    name = "Lower"

      [[phases.weeks.days.blocks]]
      name = "Main"

        [[phases.weeks.days.blocks.exercises]]
        name = "Squat"
        sets = 5
        reps = "5"
        rest = 180
`

const unnamedExercise = `
name = "Broken"
goal = "Strength"

[[phases]]
name = "Base"
duration = 4

  [[phases.weeks]]
    [[phases.weeks.days]]
      [[phases.weeks.days.blocks]]
        [[phases.weeks.days.blocks.exercises]]
        sets = 3
        reps = "10"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.toml", validProgram)
	bad := writeFile(t, dir, "bad.toml", unnamedExercise)

	out, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok "+good+" (1 phases, 4 weeks)") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "validate", good, bad)
	if !errors.Is(err, errInvalidPrograms) {
		t.Fatalf("err = %v, want errInvalidPrograms", err)
	}
	if !strings.Contains(out, "FAIL "+bad+": Exercise name is required in Phase 1, Week 1, Day 1, Block 1") {
		t.Errorf("output = %q", out)
	}
}

func TestShow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.toml", validProgram)

	out, err := run(t, "show", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"SPRING BLOCK", "Phase 1: Base (4 weeks)", "Day 1: Lower", "- Squat 5x5, rest 180s"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "show", "--schedule", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Week 1: Base - Intro") || !strings.Contains(out, "[Main]") {
		t.Errorf("schedule output:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.toml", validProgram)
	outDir := filepath.Join(dir, "out")

	if _, err := run(t, "export", path, "--out", outDir, "--format", "pdf,excel"); err != nil {
		t.Fatalf("export: %v", err)
	}
	pdf, err := os.ReadFile(filepath.Join(outDir, "spring-block.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("not a PDF: %q", pdf[:min(len(pdf), 8)])
	}
	if _, err := os.Stat(filepath.Join(outDir, "spring-block.xlsx")); err != nil {
		t.Errorf("xlsx missing: %v", err)
	}

	if _, err := run(t, "export", path, "--format", "docx"); err == nil {
		t.Error("expected an error for an unknown format")
	}
	bad := writeFile(t, dir, "bad.toml", unnamedExercise)
	if _, err := run(t, "export", bad, "--out", outDir); err == nil {
		t.Error("expected an invalid program to be refused")
	}
}

func TestExport_RepeatedFormatWritesOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.toml", validProgram)
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "export", path, "--out", outDir, "-f", "pdf", "-f", "PDF")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n := strings.Count(out, "wrote"); n != 1 {
		t.Errorf("wrote %d files, want 1:\n%s", n, out)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "spring-block.pdf" {
		t.Errorf("out dir = %v, want only spring-block.pdf", entries)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.toml")
	if _, err := run(t, "init", path, "--name", "Summer", "--goal", "Fat loss"); err != nil {
		t.Fatal(err)
	}

	// The skeleton has one unnamed exercise and so fails validation.
	out, err := run(t, "validate", path)
	if err == nil || !strings.Contains(out, "Exercise name is required") {
		t.Errorf("validate skeleton: err=%v out=%q", err, out)
	}

	if _, err := run(t, "init", path); err == nil {
		t.Error("expected init to refuse an existing file")
	}
	if _, err := run(t, "init", path, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}
