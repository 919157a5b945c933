package editor

import (
	"fmt"

	"ngx/coaching/internal/domain"
)

// ProgramEditor edits the phase -> week -> day -> block -> exercise tree of a
// program. DurationWeeks is recomputed from the phase durations on every change.
type ProgramEditor struct {
	program  domain.Program
	onChange func(domain.Program)
}

// NewProgramEditor starts editing initial, or DefaultProgram when initial is nil.
// onChange may be nil.
func NewProgramEditor(initial *domain.Program, onChange func(domain.Program)) *ProgramEditor {
	e := &ProgramEditor{onChange: onChange}
	if initial != nil {
		e.program = *initial
	} else {
		e.program = DefaultProgram()
	}
	return e
}

// DefaultProgram is a program with a single 4-week phase holding one week,
// day, block and an unnamed exercise.
func DefaultProgram() domain.Program {
	p := domain.Program{Phases: []domain.Phase{newPhase(1)}}
	p.DurationWeeks = p.TotalDuration()
	return p
}

// Program returns the current tree. Callers must treat it as read-only.
func (e *ProgramEditor) Program() domain.Program {
	return e.program
}

func (e *ProgramEditor) commit(p domain.Program) {
	p.DurationWeeks = p.TotalDuration()
	e.program = p
	if e.onChange != nil {
		e.onChange(p)
	}
}

func newPhase(n int) domain.Phase {
	return domain.Phase{ID: NewID(), Number: n, Name: fmt.Sprintf("Phase %d", n), Duration: 4, Weeks: []domain.Week{newWeek(1)}}
}

func newWeek(n int) domain.Week {
	return domain.Week{ID: NewID(), Number: n, Name: fmt.Sprintf("Week %d", n), Days: []domain.Day{newDay(1)}}
}

func newDay(n int) domain.Day {
	return domain.Day{ID: NewID(), Number: n, Name: fmt.Sprintf("Day %d", n), Blocks: []domain.Block{newBlock(1)}}
}

func newBlock(n int) domain.Block {
	return domain.Block{ID: NewID(), Name: fmt.Sprintf("Block %d", n), Exercises: []domain.BlockExercise{newBlockExercise(1)}}
}

func newBlockExercise(int) domain.BlockExercise {
	return domain.BlockExercise{ID: NewID(), Sets: 3, Reps: "10", Rest: 60}
}

// SetDetails replaces the descriptive fields of the program.
func (e *ProgramEditor) SetDetails(name, goal, description, programType string) {
	p := e.program
	p.Name = name
	p.Goal = goal
	p.Description = description
	p.ProgramType = programType
	e.commit(p)
}

// Add appends a new child to the container at c (the empty path adds a phase)
// and returns the path of the new node. New nodes come with the minimum subtree
// below them.
func (e *ProgramEditor) Add(c Path) (Path, error) {
	if len(c) >= int(LevelExercise) {
		return nil, fmt.Errorf("%w: %s cannot hold children", ErrInvalidPath, c.Level())
	}
	p, err := editProgram(e.program, c, listEdit{kind: editAdd})
	if err != nil {
		return nil, err
	}
	n, err := childCount(p, c)
	if err != nil {
		return nil, err
	}
	e.commit(p)
	return c.Child(n - 1), nil
}

// AddPhase appends a phase with the given name and duration in weeks. The
// duration must be at least one week.
func (e *ProgramEditor) AddPhase(name string, duration int) (Path, error) {
	if duration < 1 {
		return nil, fmt.Errorf("%w: phase duration %d", ErrInvalidNumber, duration)
	}
	p, err := editProgram(e.program, Path{}, listEdit{kind: editAdd})
	if err != nil {
		return nil, err
	}
	last := len(p.Phases) - 1
	p.Phases[last].Name = name
	p.Phases[last].Duration = duration
	e.commit(p)
	return Path{last}, nil
}

// Remove deletes the node at path. Removing the last child of a container is
// refused with ErrLastChild.
func (e *ProgramEditor) Remove(path Path) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: cannot remove the program", ErrInvalidPath)
	}
	p, err := editProgram(e.program, path.Parent(), listEdit{kind: editRemove, index: path.Index()})
	if err != nil {
		return err
	}
	e.commit(p)
	return nil
}

// Move reorders a node inside its sibling list. Moves between different
// containers are ignored and reported as moved == false.
func (e *ProgramEditor) Move(from, to Path) (moved bool, err error) {
	if !from.SameContainer(to) || from.Equal(to) {
		return false, nil
	}
	p, err := editProgram(e.program, from.Parent(), listEdit{kind: editMove, index: from.Index(), to: to.Index()})
	if err != nil {
		return false, err
	}
	e.commit(p)
	return true, nil
}

// Node returns the node at path: a domain.Program for the empty path, otherwise
// a domain.Phase, Week, Day, Block or BlockExercise.
func (e *ProgramEditor) Node(path Path) (any, error) {
	return nodeAt(e.program, path)
}

func (e *ProgramEditor) UpdatePhase(path Path, ph domain.Phase) error {
	return e.replace(path, LevelPhase, func(old any) (any, error) {
		ph.ID = old.(domain.Phase).ID
		return ph, requireChildren(len(ph.Weeks))
	})
}

func (e *ProgramEditor) UpdateWeek(path Path, w domain.Week) error {
	return e.replace(path, LevelWeek, func(old any) (any, error) {
		w.ID = old.(domain.Week).ID
		return w, requireChildren(len(w.Days))
	})
}

func (e *ProgramEditor) UpdateDay(path Path, d domain.Day) error {
	return e.replace(path, LevelDay, func(old any) (any, error) {
		d.ID = old.(domain.Day).ID
		return d, requireChildren(len(d.Blocks))
	})
}

func (e *ProgramEditor) UpdateBlock(path Path, b domain.Block) error {
	return e.replace(path, LevelBlock, func(old any) (any, error) {
		b.ID = old.(domain.Block).ID
		return b, requireChildren(len(b.Exercises))
	})
}

func (e *ProgramEditor) UpdateExercise(path Path, x domain.BlockExercise) error {
	return e.replace(path, LevelExercise, func(old any) (any, error) {
		x.ID = old.(domain.BlockExercise).ID
		return x, nil
	})
}

func requireChildren(n int) error {
	if n == 0 {
		return ErrLastChild
	}
	return nil
}

// replace swaps the node at path for the value built by fn. The node keeps its
// id and its number is taken from its position.
func (e *ProgramEditor) replace(path Path, want Level, fn func(old any) (any, error)) error {
	if path.Level() != want {
		return fmt.Errorf("%w: %q is not a %s", ErrInvalidPath, path.String(), want)
	}
	old, err := nodeAt(e.program, path)
	if err != nil {
		return err
	}
	v, err := fn(old)
	if err != nil {
		return err
	}
	p, err := editProgram(e.program, path.Parent(), listEdit{kind: editReplace, index: path.Index(), value: v})
	if err != nil {
		return err
	}
	e.commit(p)
	return nil
}

type editKind int

const (
	editAdd editKind = iota
	editRemove
	editMove
	editReplace
)

// listEdit is one operation on a sibling list.
type listEdit struct {
	kind  editKind
	index int
	to    int
	value any
}

func applyList[T any](items []T, ed listEdit, fresh func(n int) T) ([]T, error) {
	switch ed.kind {
	case editAdd:
		return appendCopy(items, fresh(len(items)+1)), nil
	case editRemove:
		return removeAt(items, ed.index)
	case editMove:
		return Reorder(items, ed.index, ed.to)
	case editReplace:
		v, ok := ed.value.(T)
		if !ok {
			return nil, fmt.Errorf("%w: replacement has type %T", ErrInvalidPath, ed.value)
		}
		return modifyAt(items, ed.index, func(T) (T, error) { return v, nil })
	}
	return nil, fmt.Errorf("unknown list edit %d", ed.kind)
}

// editProgram applies ed to the child list of the container at c, rebuilding
// every ancestor on the way down.
func editProgram(p domain.Program, c Path, ed listEdit) (domain.Program, error) {
	var err error
	if len(c) == 0 {
		p.Phases, err = applyList(p.Phases, ed, newPhase)
		if err == nil {
			for i := range p.Phases {
				p.Phases[i].Number = i + 1
			}
		}
		return p, err
	}
	p.Phases, err = modifyAt(p.Phases, c[0], func(ph domain.Phase) (domain.Phase, error) {
		return editPhase(ph, c[1:], ed)
	})
	return p, err
}

func editPhase(ph domain.Phase, c Path, ed listEdit) (domain.Phase, error) {
	var err error
	if len(c) == 0 {
		ph.Weeks, err = applyList(ph.Weeks, ed, newWeek)
		if err == nil {
			for i := range ph.Weeks {
				ph.Weeks[i].Number = i + 1
			}
		}
		return ph, err
	}
	ph.Weeks, err = modifyAt(ph.Weeks, c[0], func(w domain.Week) (domain.Week, error) {
		return editWeek(w, c[1:], ed)
	})
	return ph, err
}

func editWeek(w domain.Week, c Path, ed listEdit) (domain.Week, error) {
	var err error
	if len(c) == 0 {
		w.Days, err = applyList(w.Days, ed, newDay)
		if err == nil {
			for i := range w.Days {
				w.Days[i].Number = i + 1
			}
		}
		return w, err
	}
	w.Days, err = modifyAt(w.Days, c[0], func(d domain.Day) (domain.Day, error) {
		return editDay(d, c[1:], ed)
	})
	return w, err
}

func editDay(d domain.Day, c Path, ed listEdit) (domain.Day, error) {
	var err error
	if len(c) == 0 {
		d.Blocks, err = applyList(d.Blocks, ed, newBlock)
		return d, err
	}
	d.Blocks, err = modifyAt(d.Blocks, c[0], func(b domain.Block) (domain.Block, error) {
		return editBlock(b, c[1:], ed)
	})
	return d, err
}

func editBlock(b domain.Block, c Path, ed listEdit) (domain.Block, error) {
	if len(c) != 0 {
		return b, fmt.Errorf("%w: exercises have no children", ErrInvalidPath)
	}
	var err error
	b.Exercises, err = applyList(b.Exercises, ed, newBlockExercise)
	return b, err
}

func nodeAt(p domain.Program, path Path) (any, error) {
	if len(path) == 0 {
		return p, nil
	}
	if err := checkIndex(len(p.Phases), path[0]); err != nil {
		return nil, err
	}
	ph := p.Phases[path[0]]
	if len(path) == 1 {
		return ph, nil
	}
	if err := checkIndex(len(ph.Weeks), path[1]); err != nil {
		return nil, err
	}
	w := ph.Weeks[path[1]]
	if len(path) == 2 {
		return w, nil
	}
	if err := checkIndex(len(w.Days), path[2]); err != nil {
		return nil, err
	}
	d := w.Days[path[2]]
	if len(path) == 3 {
		return d, nil
	}
	if err := checkIndex(len(d.Blocks), path[3]); err != nil {
		return nil, err
	}
	b := d.Blocks[path[3]]
	if len(path) == 4 {
		return b, nil
	}
	if len(path) > 5 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path.String())
	}
	if err := checkIndex(len(b.Exercises), path[4]); err != nil {
		return nil, err
	}
	return b.Exercises[path[4]], nil
}

func childCount(p domain.Program, c Path) (int, error) {
	n, err := nodeAt(p, c)
	if err != nil {
		return 0, err
	}
	switch v := n.(type) {
	case domain.Program:
		return len(v.Phases), nil
	case domain.Phase:
		return len(v.Weeks), nil
	case domain.Week:
		return len(v.Days), nil
	case domain.Day:
		return len(v.Blocks), nil
	case domain.Block:
		return len(v.Exercises), nil
	}
	return 0, fmt.Errorf("%w: %q has no children", ErrInvalidPath, c.String())
}

// Normalize returns a deep copy of p with missing or repeated ids replaced, nil lists
// replaced by empty ones, numbers derived from positions and DurationWeeks
// recomputed. It is used for trees that did not come out of an editor.
func Normalize(p domain.Program) domain.Program {
	ids := idSet{}
	phases := make([]domain.Phase, len(p.Phases))
	for i, ph := range p.Phases {
		ph.ID = ids.claim(ph.ID)
		ph.Number = i + 1
		weeks := make([]domain.Week, len(ph.Weeks))
		for j, w := range ph.Weeks {
			w.ID = ids.claim(w.ID)
			w.Number = j + 1
			days := make([]domain.Day, len(w.Days))
			for k, d := range w.Days {
				d.ID = ids.claim(d.ID)
				d.Number = k + 1
				blocks := make([]domain.Block, len(d.Blocks))
				for l, b := range d.Blocks {
					b.ID = ids.claim(b.ID)
					exercises := make([]domain.BlockExercise, len(b.Exercises))
					for m, x := range b.Exercises {
						x.ID = ids.claim(x.ID)
						exercises[m] = x
					}
					b.Exercises = exercises
					blocks[l] = b
				}
				d.Blocks = blocks
				days[k] = d
			}
			w.Days = days
			weeks[j] = w
		}
		ph.Weeks = weeks
		phases[i] = ph
	}
	p.Phases = phases
	p.DurationWeeks = p.TotalDuration()
	return p
}

// idSet tracks the node ids already handed out while normalizing one tree.
type idSet map[string]struct{}

// claim returns id, or a fresh id when id is empty or was claimed before.
func (s idSet) claim(id string) string {
	if _, taken := s[id]; id == "" || taken {
		id = NewID()
	}
	s[id] = struct{}{}
	return id
}
