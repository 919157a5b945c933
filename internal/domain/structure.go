package domain

// ProgramStructure is the week-by-week layout edited by the template editor.
type ProgramStructure struct {
	Weeks []TrainingWeek `bson:"weeks" json:"weeks"`
}

// TrainingWeek is one week of a ProgramStructure. WeekNumber always mirrors the
// week's 1-based position in ProgramStructure.Weeks.
type TrainingWeek struct {
	ID         string         `bson:"id" json:"id"`
	WeekNumber int            `bson:"weekNumber" json:"weekNumber"`
	Name       string         `bson:"name,omitempty" json:"name,omitempty"`
	Workouts   []WorkoutBlock `bson:"workouts" json:"workouts"`
}

// WorkoutBlock is a single session inside a week.
type WorkoutBlock struct {
	ID          string         `bson:"id" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Day         int            `bson:"day" json:"day"` // set by the trainer, never renumbered
	Exercises   []ExerciseItem `bson:"exercises" json:"exercises"`
}

// ExerciseItem is the leaf row of a workout. Reps is free text so ranges like "8-12" fit.
type ExerciseItem struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Sets  int    `bson:"sets" json:"sets"`
	Reps  string `bson:"reps" json:"reps"`
	Rest  int    `bson:"rest" json:"rest"` // seconds
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Clone returns a deep copy of the structure.
func (s ProgramStructure) Clone() ProgramStructure {
	out := ProgramStructure{Weeks: make([]TrainingWeek, len(s.Weeks))}
	for i, w := range s.Weeks {
		workouts := make([]WorkoutBlock, len(w.Workouts))
		for j, wo := range w.Workouts {
			wo.Exercises = append([]ExerciseItem(nil), wo.Exercises...)
			workouts[j] = wo
		}
		w.Workouts = workouts
		out.Weeks[i] = w
	}
	return out
}
