package editor

import (
	"fmt"
	"strconv"
	"strings"

	"ngx/coaching/internal/domain"
)

// ExerciseField names an editable column of an exercise row.
type ExerciseField string

const (
	FieldName  ExerciseField = "name"
	FieldSets  ExerciseField = "sets"
	FieldReps  ExerciseField = "reps"
	FieldRest  ExerciseField = "rest"
	FieldNotes ExerciseField = "notes"
)

// StructureEditor is the root container of the week/workout/exercise tree.
type StructureEditor struct {
	programType string
	structure   domain.ProgramStructure
	onChange    func(domain.ProgramStructure)
}

// NewStructureEditor starts editing initial, or a single empty week when
// initial is nil. onChange may be nil.
func NewStructureEditor(initial *domain.ProgramStructure, programType string, onChange func(domain.ProgramStructure)) *StructureEditor {
	e := &StructureEditor{programType: programType, onChange: onChange}
	if initial != nil {
		e.structure = *initial
	} else {
		e.structure = domain.ProgramStructure{Weeks: []domain.TrainingWeek{newTrainingWeek(1)}}
	}
	return e
}

// Structure returns the current tree. Callers must treat it as read-only.
func (e *StructureEditor) Structure() domain.ProgramStructure {
	return e.structure
}

func (e *StructureEditor) ProgramType() string {
	return e.programType
}

func (e *StructureEditor) commit(s domain.ProgramStructure) {
	e.structure = s
	if e.onChange != nil {
		e.onChange(s)
	}
}

func newTrainingWeek(number int) domain.TrainingWeek {
	return domain.TrainingWeek{
		ID:         NewID(),
		WeekNumber: number,
		Name:       fmt.Sprintf("Week %d", number),
		Workouts:   []domain.WorkoutBlock{},
	}
}

func newWorkout(day int) domain.WorkoutBlock {
	return domain.WorkoutBlock{
		ID:        NewID(),
		Name:      fmt.Sprintf("Workout %d", day),
		Day:       day,
		Exercises: []domain.ExerciseItem{},
	}
}

func newExerciseItem() domain.ExerciseItem {
	return domain.ExerciseItem{ID: NewID(), Sets: 3, Reps: "10", Rest: 60}
}

// numberWeeks rewrites WeekNumber from position. weeks must be a slice owned
// by the caller.
func numberWeeks(weeks []domain.TrainingWeek) {
	for i := range weeks {
		weeks[i].WeekNumber = i + 1
	}
}

func (e *StructureEditor) weekIndex(weekID string) (int, error) {
	i := indexOf(e.structure.Weeks, func(w domain.TrainingWeek) bool { return w.ID == weekID })
	if i < 0 {
		return -1, fmt.Errorf("%w: week %s", ErrNotFound, weekID)
	}
	return i, nil
}

// --- weeks ---

// AddWeek appends a new empty week.
func (e *StructureEditor) AddWeek() domain.TrainingWeek {
	week := newTrainingWeek(len(e.structure.Weeks) + 1)
	e.commit(domain.ProgramStructure{Weeks: appendCopy(e.structure.Weeks, week)})
	return week
}

func (e *StructureEditor) RemoveWeek(weekID string) error {
	i, err := e.weekIndex(weekID)
	if err != nil {
		return err
	}
	weeks, err := removeAt(e.structure.Weeks, i)
	if err != nil {
		return err
	}
	numberWeeks(weeks)
	e.commit(domain.ProgramStructure{Weeks: weeks})
	return nil
}

// UpdateWeek replaces the week with the given id. The replacement keeps the
// original id and position; its workouts and exercises get fresh ids where
// theirs are missing or already used elsewhere in the tree.
func (e *StructureEditor) UpdateWeek(weekID string, week domain.TrainingWeek) error {
	i, err := e.weekIndex(weekID)
	if err != nil {
		return err
	}
	ids := idsOutside(e.structure, weekID)
	ids[weekID] = struct{}{}
	week.ID = weekID
	week.WeekNumber = i + 1
	week.Workouts = claimWorkouts(ids, week.Workouts)
	weeks, err := modifyAt(e.structure.Weeks, i, func(domain.TrainingWeek) (domain.TrainingWeek, error) { return week, nil })
	if err != nil {
		return err
	}
	e.commit(domain.ProgramStructure{Weeks: weeks})
	return nil
}

func (e *StructureEditor) MoveWeek(from, to int) error {
	weeks, err := Reorder(e.structure.Weeks, from, to)
	if err != nil {
		return err
	}
	numberWeeks(weeks)
	e.commit(domain.ProgramStructure{Weeks: weeks})
	return nil
}

// updateWeekWith rebuilds the week with weekID through fn and commits.
func (e *StructureEditor) updateWeekWith(weekID string, fn func(domain.TrainingWeek) (domain.TrainingWeek, error)) error {
	i, err := e.weekIndex(weekID)
	if err != nil {
		return err
	}
	weeks, err := modifyAt(e.structure.Weeks, i, fn)
	if err != nil {
		return err
	}
	e.commit(domain.ProgramStructure{Weeks: weeks})
	return nil
}

// --- workouts ---

func workoutIndex(w domain.TrainingWeek, workoutID string) (int, error) {
	i := indexOf(w.Workouts, func(b domain.WorkoutBlock) bool { return b.ID == workoutID })
	if i < 0 {
		return -1, fmt.Errorf("%w: workout %s", ErrNotFound, workoutID)
	}
	return i, nil
}

// AddWorkout appends a workout to the week. Its day defaults to the next free
// position and can be changed freely afterwards.
func (e *StructureEditor) AddWorkout(weekID string) (domain.WorkoutBlock, error) {
	var added domain.WorkoutBlock
	err := e.updateWeekWith(weekID, func(w domain.TrainingWeek) (domain.TrainingWeek, error) {
		added = newWorkout(len(w.Workouts) + 1)
		w.Workouts = appendCopy(w.Workouts, added)
		return w, nil
	})
	return added, err
}

func (e *StructureEditor) RemoveWorkout(weekID, workoutID string) error {
	return e.updateWeekWith(weekID, func(w domain.TrainingWeek) (domain.TrainingWeek, error) {
		i, err := workoutIndex(w, workoutID)
		if err != nil {
			return w, err
		}
		w.Workouts, err = removeAt(w.Workouts, i)
		return w, err
	})
}

// UpdateWorkout replaces a workout, keeping its id. Exercises without a usable
// id get a fresh one.
func (e *StructureEditor) UpdateWorkout(weekID, workoutID string, workout domain.WorkoutBlock) error {
	ids := idsOutside(e.structure, workoutID)
	ids[workoutID] = struct{}{}
	return e.updateWeekWith(weekID, func(w domain.TrainingWeek) (domain.TrainingWeek, error) {
		i, err := workoutIndex(w, workoutID)
		if err != nil {
			return w, err
		}
		workout.ID = workoutID
		workout.Exercises = claimExercises(ids, workout.Exercises)
		w.Workouts, err = modifyAt(w.Workouts, i, func(domain.WorkoutBlock) (domain.WorkoutBlock, error) { return workout, nil })
		return w, err
	})
}

func (e *StructureEditor) MoveWorkout(weekID string, from, to int) error {
	return e.updateWeekWith(weekID, func(w domain.TrainingWeek) (domain.TrainingWeek, error) {
		var err error
		w.Workouts, err = Reorder(w.Workouts, from, to)
		return w, err
	})
}

// updateWorkoutWith rebuilds one workout (and its week) through fn.
func (e *StructureEditor) updateWorkoutWith(weekID, workoutID string, fn func(domain.WorkoutBlock) (domain.WorkoutBlock, error)) error {
	return e.updateWeekWith(weekID, func(w domain.TrainingWeek) (domain.TrainingWeek, error) {
		i, err := workoutIndex(w, workoutID)
		if err != nil {
			return w, err
		}
		w.Workouts, err = modifyAt(w.Workouts, i, fn)
		return w, err
	})
}

// --- exercises ---

func exerciseIndex(b domain.WorkoutBlock, exerciseID string) (int, error) {
	i := indexOf(b.Exercises, func(x domain.ExerciseItem) bool { return x.ID == exerciseID })
	if i < 0 {
		return -1, fmt.Errorf("%w: exercise %s", ErrNotFound, exerciseID)
	}
	return i, nil
}

func (e *StructureEditor) AddExercise(weekID, workoutID string) (domain.ExerciseItem, error) {
	added := newExerciseItem()
	err := e.updateWorkoutWith(weekID, workoutID, func(b domain.WorkoutBlock) (domain.WorkoutBlock, error) {
		b.Exercises = appendCopy(b.Exercises, added)
		return b, nil
	})
	if err != nil {
		return domain.ExerciseItem{}, err
	}
	return added, nil
}

func (e *StructureEditor) RemoveExercise(weekID, workoutID, exerciseID string) error {
	return e.updateWorkoutWith(weekID, workoutID, func(b domain.WorkoutBlock) (domain.WorkoutBlock, error) {
		i, err := exerciseIndex(b, exerciseID)
		if err != nil {
			return b, err
		}
		b.Exercises, err = removeAt(b.Exercises, i)
		return b, err
	})
}

func (e *StructureEditor) MoveExercise(weekID, workoutID string, from, to int) error {
	return e.updateWorkoutWith(weekID, workoutID, func(b domain.WorkoutBlock) (domain.WorkoutBlock, error) {
		var err error
		b.Exercises, err = Reorder(b.Exercises, from, to)
		return b, err
	})
}

// EditExercise sets a single field of an exercise row from its text input.
// Numeric fields must hold a whole number; an empty or malformed value is
// rejected and the tree is left as it was.
func (e *StructureEditor) EditExercise(weekID, workoutID, exerciseID string, field ExerciseField, value string) error {
	return e.updateWorkoutWith(weekID, workoutID, func(b domain.WorkoutBlock) (domain.WorkoutBlock, error) {
		i, err := exerciseIndex(b, exerciseID)
		if err != nil {
			return b, err
		}
		b.Exercises, err = modifyAt(b.Exercises, i, func(x domain.ExerciseItem) (domain.ExerciseItem, error) {
			return setExerciseField(x, field, value)
		})
		return b, err
	})
}

func setExerciseField(x domain.ExerciseItem, field ExerciseField, value string) (domain.ExerciseItem, error) {
	switch field {
	case FieldName:
		x.Name = value
	case FieldReps:
		x.Reps = value
	case FieldNotes:
		x.Notes = value
	case FieldSets, FieldRest:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return x, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, field, value)
		}
		if field == FieldSets {
			x.Sets = n
		} else {
			x.Rest = n
		}
	default:
		return x, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return x, nil
}

// idsOutside collects the ids of s, leaving out the week or workout with id
// skip together with everything below it.
func idsOutside(s domain.ProgramStructure, skip string) idSet {
	ids := idSet{}
	for _, w := range s.Weeks {
		if w.ID == skip {
			continue
		}
		ids[w.ID] = struct{}{}
		for _, wo := range w.Workouts {
			if wo.ID == skip {
				continue
			}
			ids[wo.ID] = struct{}{}
			for _, x := range wo.Exercises {
				ids[x.ID] = struct{}{}
			}
		}
	}
	return ids
}

func claimWorkouts(ids idSet, workouts []domain.WorkoutBlock) []domain.WorkoutBlock {
	out := make([]domain.WorkoutBlock, len(workouts))
	for i, wo := range workouts {
		wo.ID = ids.claim(wo.ID)
		wo.Exercises = claimExercises(ids, wo.Exercises)
		out[i] = wo
	}
	return out
}

func claimExercises(ids idSet, exercises []domain.ExerciseItem) []domain.ExerciseItem {
	out := make([]domain.ExerciseItem, len(exercises))
	for i, x := range exercises {
		x.ID = ids.claim(x.ID)
		out[i] = x
	}
	return out
}

// NormalizeStructure returns a deep copy of s with missing or repeated ids replaced, nil
// lists replaced by empty ones and week numbers derived from positions. An
// empty structure gets one empty week.
func NormalizeStructure(s domain.ProgramStructure) domain.ProgramStructure {
	if len(s.Weeks) == 0 {
		return domain.ProgramStructure{Weeks: []domain.TrainingWeek{newTrainingWeek(1)}}
	}
	out := s.Clone()
	ids := idSet{}
	for i := range out.Weeks {
		w := &out.Weeks[i]
		w.ID = ids.claim(w.ID)
		w.WeekNumber = i + 1
		for j := range w.Workouts {
			wo := &w.Workouts[j]
			wo.ID = ids.claim(wo.ID)
			if wo.Exercises == nil {
				wo.Exercises = []domain.ExerciseItem{}
			}
			for k := range wo.Exercises {
				wo.Exercises[k].ID = ids.claim(wo.Exercises[k].ID)
			}
		}
	}
	return out
}
