// internal/domain/program.go
package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is a periodized training program built with the phase editor:
// Phase -> Week -> Day -> Block -> BlockExercise.
type Program struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID     primitive.ObjectID  `bson:"trainerId" json:"trainerId"`                   // Who built the program
	ClientID      *primitive.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"` // Optional: the client it is written for
	Name          string              `bson:"name" json:"name"`
	Goal          string              `bson:"goal" json:"goal"` // e.g. "Hypertrophy", "Fat loss"
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	ProgramType   string              `bson:"programType,omitempty" json:"programType,omitempty"`
	DurationWeeks int                 `bson:"durationWeeks" json:"durationWeeks"` // Always the sum of phase durations
	Phases        []Phase             `bson:"phases" json:"phases"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type Phase struct {
	ID       string `bson:"id" json:"id"`
	Number   int    `bson:"number" json:"number"`
	Name     string `bson:"name" json:"name"`
	Duration int    `bson:"duration" json:"duration"` // weeks
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
	Weeks    []Week `bson:"weeks" json:"weeks"`
}

type Week struct {
	ID     string `bson:"id" json:"id"`
	Number int    `bson:"number" json:"number"`
	Name   string `bson:"name" json:"name"`
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
	Days   []Day  `bson:"days" json:"days"`
}

type Day struct {
	ID     string  `bson:"id" json:"id"`
	Number int     `bson:"number" json:"number"`
	Name   string  `bson:"name" json:"name"`
	Notes  string  `bson:"notes,omitempty" json:"notes,omitempty"`
	Blocks []Block `bson:"blocks" json:"blocks"`
}

type Block struct {
	ID        string          `bson:"id" json:"id"`
	Name      string          `bson:"name" json:"name"` // e.g. "Warm-up", "Main lift"
	Notes     string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Exercises []BlockExercise `bson:"exercises" json:"exercises"`
}

// BlockExercise is one prescribed exercise. ExerciseID optionally links to the
// trainer's exercise library; Name is always stored so the program stands alone.
type BlockExercise struct {
	ID         string `bson:"id" json:"id"`
	ExerciseID string `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	Name       string `bson:"name" json:"name"`
	Sets       int    `bson:"sets" json:"sets"`
	Reps       string `bson:"reps" json:"reps"`
	Rest       int    `bson:"rest" json:"rest"` // seconds
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// TotalDuration sums the phase durations.
func (p *Program) TotalDuration() int {
	total := 0
	for _, ph := range p.Phases {
		total += ph.Duration
	}
	return total
}

// Schedule flattens the phase tree into a week-by-week ProgramStructure, which is
// what the exporters consume. Weeks are numbered across phases, every day becomes
// one workout and the exercises of its blocks are listed in order.
func (p *Program) Schedule() ProgramStructure {
	var s ProgramStructure
	s.Weeks = []TrainingWeek{}
	for _, ph := range p.Phases {
		for _, wk := range ph.Weeks {
			week := TrainingWeek{
				ID:         wk.ID,
				WeekNumber: len(s.Weeks) + 1,
				Name:       fmt.Sprintf("%s - %s", ph.Name, wk.Name),
				Workouts:   make([]WorkoutBlock, 0, len(wk.Days)),
			}
			for _, d := range wk.Days {
				workout := WorkoutBlock{
					ID:          d.ID,
					Name:        d.Name,
					Description: d.Notes,
					Day:         d.Number,
					Exercises:   []ExerciseItem{},
				}
				for _, b := range d.Blocks {
					for _, ex := range b.Exercises {
						notes := b.Name
						if ex.Notes != "" {
							notes = b.Name + ": " + ex.Notes
						}
						workout.Exercises = append(workout.Exercises, ExerciseItem{
							ID:    ex.ID,
							Name:  ex.Name,
							Sets:  ex.Sets,
							Reps:  ex.Reps,
							Rest:  ex.Rest,
							Notes: notes,
						})
					}
				}
				week.Workouts = append(week.Workouts, workout)
			}
			s.Weeks = append(s.Weeks, week)
		}
	}
	return s
}
