package editor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
)

func exerciseItemIDs(w domain.WorkoutBlock) []string {
	ids := make([]string, len(w.Exercises))
	for i, x := range w.Exercises {
		ids[i] = x.ID
	}
	return ids
}

func threeExerciseWeek() *domain.ProgramStructure {
	return &domain.ProgramStructure{Weeks: []domain.TrainingWeek{{
		ID: "w1", WeekNumber: 1, Name: "Week 1",
		Workouts: []domain.WorkoutBlock{
			{ID: "push", Name: "Push", Day: 1, Exercises: []domain.ExerciseItem{
				{ID: "a", Name: "A", Sets: 3, Reps: "10", Rest: 60},
				{ID: "b", Name: "B", Sets: 3, Reps: "10", Rest: 60},
				{ID: "c", Name: "C", Sets: 3, Reps: "10", Rest: 60},
			}},
			{ID: "pull", Name: "Pull", Day: 3, Exercises: []domain.ExerciseItem{
				{ID: "d", Name: "D", Sets: 4, Reps: "6-8", Rest: 120},
			}},
		},
	}}}
}

func TestNewStructureEditor_Default(t *testing.T) {
	sequentialIDs(t)
	e := editor.NewStructureEditor(nil, "strength", nil)

	want := domain.ProgramStructure{Weeks: []domain.TrainingWeek{{
		ID: "id-1", WeekNumber: 1, Name: "Week 1", Workouts: []domain.WorkoutBlock{},
	}}}
	if diff := cmp.Diff(want, e.Structure()); diff != "" {
		t.Errorf("default structure mismatch (-want +got):\n%s", diff)
	}
	if e.ProgramType() != "strength" {
		t.Errorf("ProgramType() = %q, want %q", e.ProgramType(), "strength")
	}
}

func TestStructureEditor_WeeksAreRenumbered(t *testing.T) {
	sequentialIDs(t)
	var calls int
	var last domain.ProgramStructure
	e := editor.NewStructureEditor(nil, "", func(s domain.ProgramStructure) {
		calls++
		last = s
	})
	for range 3 {
		e.AddWeek()
	}
	second := e.Structure().Weeks[1].ID
	if err := e.RemoveWeek(second); err != nil {
		t.Fatalf("RemoveWeek: %v", err)
	}
	if err := e.MoveWeek(2, 0); err != nil {
		t.Fatalf("MoveWeek: %v", err)
	}

	if calls != 5 {
		t.Errorf("onChange called %d times, want 5", calls)
	}
	if diff := cmp.Diff(e.Structure(), last); diff != "" {
		t.Errorf("onChange did not receive the current tree (-want +got):\n%s", diff)
	}
	weeks := e.Structure().Weeks
	if len(weeks) != 3 {
		t.Fatalf("len(weeks) = %d, want 3", len(weeks))
	}
	for i, w := range weeks {
		if w.WeekNumber != i+1 {
			t.Errorf("weeks[%d].WeekNumber = %d, want %d", i, w.WeekNumber, i+1)
		}
		if w.ID == second {
			t.Errorf("removed week %s is still present", second)
		}
	}
	if weeks[0].ID != "id-4" {
		t.Errorf("weeks[0].ID = %q, want id-4", weeks[0].ID)
	}
}

func TestStructureEditor_RemoveOnlyChildIsRefused(t *testing.T) {
	initial := threeExerciseWeek()
	snapshot := initial.Clone()
	var calls int
	e := editor.NewStructureEditor(initial, "", func(domain.ProgramStructure) { calls++ })

	tests := []struct {
		name string
		fn   func() error
	}{
		{"week", func() error { return e.RemoveWeek("w1") }},
		{"exercise", func() error { return e.RemoveExercise("w1", "pull", "d") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, editor.ErrLastChild) {
				t.Errorf("error = %v, want ErrLastChild", err)
			}
		})
	}
	if calls != 0 {
		t.Errorf("onChange called %d times, want 0", calls)
	}
	if diff := cmp.Diff(snapshot, e.Structure()); diff != "" {
		t.Errorf("tree changed after refused removal (-want +got):\n%s", diff)
	}

	if err := e.RemoveWorkout("w1", "pull"); err != nil {
		t.Fatalf("RemoveWorkout: %v", err)
	}
	if err := e.RemoveWorkout("w1", "push"); !errors.Is(err, editor.ErrLastChild) {
		t.Errorf("removing the last workout: error = %v, want ErrLastChild", err)
	}
}

func TestStructureEditor_AddThenTrimKeepsFirst(t *testing.T) {
	e := editor.NewStructureEditor(&domain.ProgramStructure{Weeks: []domain.TrainingWeek{}}, "", nil)
	var ids []string
	for range 5 {
		ids = append(ids, e.AddWeek().ID)
	}
	for _, id := range ids[1:] {
		if err := e.RemoveWeek(id); err != nil {
			t.Fatalf("RemoveWeek(%s): %v", id, err)
		}
	}
	weeks := e.Structure().Weeks
	if len(weeks) != 1 || weeks[0].ID != ids[0] {
		t.Fatalf("weeks = %+v, want only %s", weeks, ids[0])
	}
	if weeks[0].WeekNumber != 1 {
		t.Errorf("WeekNumber = %d, want 1", weeks[0].WeekNumber)
	}
}

func TestStructureEditor_MoveExercise(t *testing.T) {
	initial := threeExerciseWeek()
	snapshot := initial.Clone()
	e := editor.NewStructureEditor(initial, "", nil)

	if err := e.MoveExercise("w1", "push", 2, 0); err != nil {
		t.Fatalf("MoveExercise: %v", err)
	}

	got := e.Structure()
	var ids []string
	for _, x := range got.Weeks[0].Workouts[0].Exercises {
		ids = append(ids, x.ID)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, ids); diff != "" {
		t.Errorf("exercise order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snapshot.Weeks[0].Workouts[1], got.Weeks[0].Workouts[1]); diff != "" {
		t.Errorf("sibling workout changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snapshot, *initial); diff != "" {
		t.Errorf("initial tree was mutated (-want +got):\n%s", diff)
	}
}

func TestStructureEditor_MoveWorkoutKeepsDay(t *testing.T) {
	e := editor.NewStructureEditor(threeExerciseWeek(), "", nil)
	if err := e.MoveWorkout("w1", 1, 0); err != nil {
		t.Fatalf("MoveWorkout: %v", err)
	}
	workouts := e.Structure().Weeks[0].Workouts
	if workouts[0].ID != "pull" || workouts[0].Day != 3 {
		t.Errorf("workouts[0] = %s day %d, want pull day 3", workouts[0].ID, workouts[0].Day)
	}
	if err := e.MoveWorkout("w1", 0, 5); !errors.Is(err, editor.ErrIndexOutOfRange) {
		t.Errorf("MoveWorkout out of range: error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestStructureEditor_AddWorkoutAndExercise(t *testing.T) {
	sequentialIDs(t)
	e := editor.NewStructureEditor(threeExerciseWeek(), "", nil)

	w, err := e.AddWorkout("w1")
	if err != nil {
		t.Fatalf("AddWorkout: %v", err)
	}
	if w.Day != 3 || w.Name != "Workout 3" {
		t.Errorf("AddWorkout = %+v, want day 3 named Workout 3", w)
	}
	x, err := e.AddExercise("w1", w.ID)
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	want := domain.ExerciseItem{ID: "id-2", Sets: 3, Reps: "10", Rest: 60}
	if diff := cmp.Diff(want, x); diff != "" {
		t.Errorf("AddExercise mismatch (-want +got):\n%s", diff)
	}
	if _, err := e.AddExercise("w1", "missing"); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("AddExercise on unknown workout: error = %v, want ErrNotFound", err)
	}
}

func TestStructureEditor_EditExercise(t *testing.T) {
	tests := []struct {
		name    string
		field   editor.ExerciseField
		value   string
		want    domain.ExerciseItem
		wantErr error
	}{
		{name: "sets", field: editor.FieldSets, value: "5", want: domain.ExerciseItem{ID: "a", Name: "A", Sets: 5, Reps: "10", Rest: 60}},
		{name: "rest with spaces", field: editor.FieldRest, value: " 90 ", want: domain.ExerciseItem{ID: "a", Name: "A", Sets: 3, Reps: "10", Rest: 90}},
		{name: "reps range", field: editor.FieldReps, value: "8-12", want: domain.ExerciseItem{ID: "a", Name: "A", Sets: 3, Reps: "8-12", Rest: 60}},
		{name: "name", field: editor.FieldName, value: "Bench press", want: domain.ExerciseItem{ID: "a", Name: "Bench press", Sets: 3, Reps: "10", Rest: 60}},
		{name: "empty sets", field: editor.FieldSets, value: "", wantErr: editor.ErrInvalidNumber},
		{name: "text rest", field: editor.FieldRest, value: "abc", wantErr: editor.ErrInvalidNumber},
		{name: "negative sets", field: editor.FieldSets, value: "-1", wantErr: editor.ErrInvalidNumber},
		{name: "unknown field", field: "tempo", value: "3-1-1", wantErr: editor.ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := editor.NewStructureEditor(threeExerciseWeek(), "", nil)
			before := e.Structure()
			err := e.EditExercise("w1", "push", "a", tt.field, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if diff := cmp.Diff(before, e.Structure()); diff != "" {
					t.Errorf("tree changed after rejected edit (-want +got):\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("EditExercise: %v", err)
			}
			if diff := cmp.Diff(tt.want, e.Structure().Weeks[0].Workouts[0].Exercises[0]); diff != "" {
				t.Errorf("exercise mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStructureEditor_UpdateWeekKeepsIdentity(t *testing.T) {
	e := editor.NewStructureEditor(threeExerciseWeek(), "", nil)
	err := e.UpdateWeek("w1", domain.TrainingWeek{ID: "other", WeekNumber: 9, Name: "Deload"})
	if err != nil {
		t.Fatalf("UpdateWeek: %v", err)
	}
	want := domain.TrainingWeek{ID: "w1", WeekNumber: 1, Name: "Deload", Workouts: []domain.WorkoutBlock{}}
	if diff := cmp.Diff(want, e.Structure().Weeks[0]); diff != "" {
		t.Errorf("UpdateWeek mismatch (-want +got):\n%s", diff)
	}
}

func TestStructureEditor_UpdateFillsChildIDs(t *testing.T) {
	sequentialIDs(t)
	e := editor.NewStructureEditor(threeExerciseWeek(), "", nil)

	err := e.UpdateWorkout("w1", "push", domain.WorkoutBlock{Name: "Push", Day: 1, Exercises: []domain.ExerciseItem{
		{Name: "Squat"}, {ID: "d", Name: "Lunge"}, {ID: "x", Name: "Dip"}, {ID: "x", Name: "Row"},
	}})
	if err != nil {
		t.Fatalf("UpdateWorkout: %v", err)
	}
	got := exerciseItemIDs(e.Structure().Weeks[0].Workouts[0])
	// "d" already belongs to the pull workout.
	if diff := cmp.Diff([]string{"id-1", "id-2", "x", "id-3"}, got); diff != "" {
		t.Errorf("exercise ids mismatch (-want +got):\n%s", diff)
	}
	if err := e.RemoveExercise("w1", "push", "id-1"); err != nil {
		t.Errorf("RemoveExercise on a filled id: %v", err)
	}

	err = e.UpdateWeek("w1", domain.TrainingWeek{Name: "Deload", Workouts: []domain.WorkoutBlock{
		{Name: "Full body", Exercises: []domain.ExerciseItem{{Name: "Press"}}},
	}})
	if err != nil {
		t.Fatalf("UpdateWeek: %v", err)
	}
	workout := e.Structure().Weeks[0].Workouts[0]
	if workout.ID == "" || workout.Exercises[0].ID == "" {
		t.Errorf("UpdateWeek left empty ids: %+v", workout)
	}
}

func TestNormalizeStructure_RepeatedIDs(t *testing.T) {
	sequentialIDs(t)
	got := editor.NormalizeStructure(domain.ProgramStructure{Weeks: []domain.TrainingWeek{
		{ID: "x", Workouts: []domain.WorkoutBlock{{ID: "x", Exercises: []domain.ExerciseItem{{ID: "a"}, {ID: "a"}}}}},
		{ID: "x"},
	}})
	ids := []string{got.Weeks[0].ID, got.Weeks[0].Workouts[0].ID, got.Weeks[0].Workouts[0].Exercises[0].ID,
		got.Weeks[0].Workouts[0].Exercises[1].ID, got.Weeks[1].ID}
	if diff := cmp.Diff([]string{"x", "id-1", "a", "id-2", "id-3"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeStructure(t *testing.T) {
	sequentialIDs(t)
	in := domain.ProgramStructure{Weeks: []domain.TrainingWeek{
		{ID: "keep", WeekNumber: 5, Workouts: []domain.WorkoutBlock{{Name: "A", Day: 2}}},
		{WeekNumber: 1},
	}}
	got := editor.NormalizeStructure(in)
	want := domain.ProgramStructure{Weeks: []domain.TrainingWeek{
		{ID: "keep", WeekNumber: 1, Workouts: []domain.WorkoutBlock{{ID: "id-1", Name: "A", Day: 2, Exercises: []domain.ExerciseItem{}}}},
		{ID: "id-2", WeekNumber: 2, Workouts: []domain.WorkoutBlock{}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeStructure mismatch (-want +got):\n%s", diff)
	}
	if in.Weeks[0].WeekNumber != 5 {
		t.Error("input was modified")
	}

	empty := editor.NormalizeStructure(domain.ProgramStructure{})
	if len(empty.Weeks) != 1 || empty.Weeks[0].Name != "Week 1" {
		t.Errorf("empty structure normalized to %+v, want one week", empty)
	}
}
