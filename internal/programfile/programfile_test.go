package programfile

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `
name = "Spring block"
goal = "Strength"
program_type = "strength"

[[phases]]
name = "Base"
duration = 4

  [[phases.weeks]]
  name = "Week 1"

    [[phases.weeks.days]]
    name = "Lower"

      [[phases.weeks.days.blocks]]
      name = "Main"

        [[phases.weeks.days.blocks.exercises]]
        name = "Squat"
        sets = 5
        reps = "5"
        rest = 180

        [[phases.weeks.days.blocks.exercises]]
        name = "RDL"
        sets = 3
        reps = "8-10"

[[phases]]
name = "Build"
duration = 6

  [[phases.weeks]]
  name = "Week 1"

    [[phases.weeks.days]]
    name = "Full body"

      [[phases.weeks.days.blocks]]
      name = "Main"

        [[phases.weeks.days.blocks.exercises]]
        name = "Front squat"
        sets = 4
        reps = "6"
`

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "Spring block" || p.ProgramType != "strength" {
		t.Errorf("details = %q / %q", p.Name, p.ProgramType)
	}
	if p.DurationWeeks != 10 {
		t.Errorf("DurationWeeks = %d, want 10", p.DurationWeeks)
	}
	if p.Phases[1].Number != 2 || p.Phases[1].ID == "" {
		t.Errorf("second phase = %+v", p.Phases[1])
	}

	ex := p.Phases[0].Weeks[0].Days[0].Blocks[0].Exercises
	var names []string
	for _, x := range ex {
		names = append(names, x.Name+"/"+x.Reps)
		if x.ID == "" {
			t.Errorf("exercise %q has no id", x.Name)
		}
	}
	if diff := cmp.Diff([]string{"Squat/5", "RDL/8-10"}, names); diff != "" {
		t.Errorf("exercises (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("name = \"x\"\ngoal = \"y\"\nweeks = 3\n"))
	if !errors.Is(err, ErrUnknownKeys) {
		t.Fatalf("err = %v, want ErrUnknownKeys", err)
	}
	if !strings.Contains(err.Error(), "weeks") {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestDecodeRejectsBadTOML(t *testing.T) {
	if _, err := Decode(strings.NewReader("name = ")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSaveLoadKeepsIDs(t *testing.T) {
	p, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "program.toml")
	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("program changed on disk (-saved +loaded):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
