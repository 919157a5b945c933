// Package programfile reads and writes programs as TOML documents, so they
// can be edited and checked offline.
package programfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
)

var ErrUnknownKeys = errors.New("unknown keys in program file")

type ProgramTOML struct {
	Name        string      `toml:"name"`
	Goal        string      `toml:"goal"`
	Description string      `toml:"description,omitempty"`
	ProgramType string      `toml:"program_type,omitempty"`
	Phases      []PhaseTOML `toml:"phases"`
}

type PhaseTOML struct {
	ID       string     `toml:"id,omitempty"`
	Name     string     `toml:"name"`
	Duration int        `toml:"duration"`
	Notes    string     `toml:"notes,omitempty"`
	Weeks    []WeekTOML `toml:"weeks"`
}

type WeekTOML struct {
	ID    string    `toml:"id,omitempty"`
	Name  string    `toml:"name"`
	Notes string    `toml:"notes,omitempty"`
	Days  []DayTOML `toml:"days"`
}

type DayTOML struct {
	ID     string      `toml:"id,omitempty"`
	Name   string      `toml:"name"`
	Notes  string      `toml:"notes,omitempty"`
	Blocks []BlockTOML `toml:"blocks"`
}

type BlockTOML struct {
	ID        string         `toml:"id,omitempty"`
	Name      string         `toml:"name"`
	Notes     string         `toml:"notes,omitempty"`
	Exercises []ExerciseTOML `toml:"exercises"`
}

type ExerciseTOML struct {
	ID         string `toml:"id,omitempty"`
	ExerciseID string `toml:"exercise_id,omitempty"`
	Name       string `toml:"name"`
	Sets       int    `toml:"sets"`
	Reps       string `toml:"reps"`
	Rest       int    `toml:"rest,omitempty"` // seconds
	Notes      string `toml:"notes,omitempty"`
}

// Decode parses a program from r. Missing ids are generated and numbers are
// derived from positions. Keys that match no field are rejected.
func Decode(r io.Reader) (domain.Program, error) {
	var f ProgramTOML
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return domain.Program{}, fmt.Errorf("invalid TOML format: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return domain.Program{}, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	return editor.Normalize(f.program()), nil
}

// Load reads the program file at path.
func Load(path string) (domain.Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Program{}, err
	}
	defer file.Close()

	p, err := Decode(bufio.NewReader(file))
	if err != nil {
		return domain.Program{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode writes p to w as TOML.
func Encode(w io.Writer, p domain.Program) error {
	return toml.NewEncoder(w).Encode(fromProgram(p))
}

// Save writes p to path, replacing any existing file.
func Save(path string, p domain.Program) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, p); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func (f ProgramTOML) program() domain.Program {
	p := domain.Program{
		Name:        f.Name,
		Goal:        f.Goal,
		Description: f.Description,
		ProgramType: f.ProgramType,
		Phases:      make([]domain.Phase, len(f.Phases)),
	}
	for i, ph := range f.Phases {
		phase := domain.Phase{ID: ph.ID, Name: ph.Name, Duration: ph.Duration, Notes: ph.Notes, Weeks: make([]domain.Week, len(ph.Weeks))}
		for j, w := range ph.Weeks {
			week := domain.Week{ID: w.ID, Name: w.Name, Notes: w.Notes, Days: make([]domain.Day, len(w.Days))}
			for k, d := range w.Days {
				day := domain.Day{ID: d.ID, Name: d.Name, Notes: d.Notes, Blocks: make([]domain.Block, len(d.Blocks))}
				for l, b := range d.Blocks {
					block := domain.Block{ID: b.ID, Name: b.Name, Notes: b.Notes, Exercises: make([]domain.BlockExercise, len(b.Exercises))}
					for m, x := range b.Exercises {
						block.Exercises[m] = domain.BlockExercise{
							ID:         x.ID,
							ExerciseID: x.ExerciseID,
							Name:       x.Name,
							Sets:       x.Sets,
							Reps:       x.Reps,
							Rest:       x.Rest,
							Notes:      x.Notes,
						}
					}
					day.Blocks[l] = block
				}
				week.Days[k] = day
			}
			phase.Weeks[j] = week
		}
		p.Phases[i] = phase
	}
	return p
}

func fromProgram(p domain.Program) ProgramTOML {
	f := ProgramTOML{
		Name:        p.Name,
		Goal:        p.Goal,
		Description: p.Description,
		ProgramType: p.ProgramType,
		Phases:      make([]PhaseTOML, len(p.Phases)),
	}
	for i, ph := range p.Phases {
		phase := PhaseTOML{ID: ph.ID, Name: ph.Name, Duration: ph.Duration, Notes: ph.Notes, Weeks: make([]WeekTOML, len(ph.Weeks))}
		for j, w := range ph.Weeks {
			week := WeekTOML{ID: w.ID, Name: w.Name, Notes: w.Notes, Days: make([]DayTOML, len(w.Days))}
			for k, d := range w.Days {
				day := DayTOML{ID: d.ID, Name: d.Name, Notes: d.Notes, Blocks: make([]BlockTOML, len(d.Blocks))}
				for l, b := range d.Blocks {
					block := BlockTOML{ID: b.ID, Name: b.Name, Notes: b.Notes, Exercises: make([]ExerciseTOML, len(b.Exercises))}
					for m, x := range b.Exercises {
						block.Exercises[m] = ExerciseTOML{
							ID:         x.ID,
							ExerciseID: x.ExerciseID,
							Name:       x.Name,
							Sets:       x.Sets,
							Reps:       x.Reps,
							Rest:       x.Rest,
							Notes:      x.Notes,
						}
					}
					day.Blocks[l] = block
				}
				week.Days[k] = day
			}
			phase.Weeks[j] = week
		}
		f.Phases[i] = phase
	}
	return f
}
