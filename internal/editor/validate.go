package editor

import (
	"fmt"
	"strings"

	"ngx/coaching/internal/domain"
)

// ValidationError describes the first problem found in a program before save.
type ValidationError struct {
	Field   string // "name", "goal", "phase.name" or "exercise.name"
	Path    Path   // location of the offending node, nil for program fields
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Location renders the path the way trainers read it, e.g.
// "Phase 2, Week 1, Day 1, Block 1".
func Location(p Path) string {
	labels := []string{"Phase", "Week", "Day", "Block", "Exercise"}
	parts := make([]string, 0, len(p))
	for i, idx := range p {
		if i >= len(labels) {
			break
		}
		parts = append(parts, fmt.Sprintf("%s %d", labels[i], idx+1))
	}
	return strings.Join(parts, ", ")
}

// Validate checks a program before it is saved and stops at the first
// violation, in this order: program name, program goal, phase names, exercise
// names. It returns nil or a *ValidationError.
func Validate(p domain.Program) error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "Program name is required"}
	}
	if strings.TrimSpace(p.Goal) == "" {
		return &ValidationError{Field: "goal", Message: "Program goal is required"}
	}
	for i, ph := range p.Phases {
		if strings.TrimSpace(ph.Name) == "" {
			return &ValidationError{
				Field:   "phase.name",
				Path:    Path{i},
				Message: fmt.Sprintf("Phase %d name is required", i+1),
			}
		}
	}
	for i, ph := range p.Phases {
		for j, w := range ph.Weeks {
			for k, d := range w.Days {
				for l, b := range d.Blocks {
					for m, x := range b.Exercises {
						if strings.TrimSpace(x.Name) != "" {
							continue
						}
						return &ValidationError{
							Field:   "exercise.name",
							Path:    Path{i, j, k, l, m},
							Message: "Exercise name is required in " + Location(Path{i, j, k, l}),
						}
					}
				}
			}
		}
	}
	return nil
}

// CheckStructure reports the first container left without children, or a
// phase shorter than one week. Editors never produce such trees; full saves
// coming from clients can.
func CheckStructure(p domain.Program) error {
	if len(p.Phases) == 0 {
		return &ValidationError{Field: "phases", Message: "Program needs at least one phase"}
	}
	for i, ph := range p.Phases {
		loc := Path{i}
		if ph.Duration < 1 {
			return &ValidationError{Field: "phase.duration", Path: loc, Message: fmt.Sprintf("Phase %d duration must be at least 1 week", i+1)}
		}
		if len(ph.Weeks) == 0 {
			return emptyContainer(loc, "weeks")
		}
		for j, w := range ph.Weeks {
			if len(w.Days) == 0 {
				return emptyContainer(loc.Child(j), "days")
			}
			for k, d := range w.Days {
				if len(d.Blocks) == 0 {
					return emptyContainer(loc.Child(j).Child(k), "blocks")
				}
				for l, b := range d.Blocks {
					if len(b.Exercises) == 0 {
						return emptyContainer(Path{i, j, k, l}, "exercises")
					}
				}
			}
		}
	}
	return nil
}

func emptyContainer(p Path, children string) error {
	return &ValidationError{
		Field:   children,
		Path:    p,
		Message: fmt.Sprintf("%s has no %s", Location(p), children),
	}
}
