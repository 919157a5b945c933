// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the trainer's library.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Link to the Trainer who created/owns this exercise
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Category         string `bson:"category,omitempty" json:"category,omitempty"`                 // e.g., "Strength", "Mobility", "Cardio"
	MuscleGroup      string `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`           // e.g., "Chest", "Legs", "Back"
	Difficulty       string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`             // e.g., "Novice", "Medium", "Advanced"
	Equipment        string `bson:"equipment,omitempty" json:"equipment,omitempty"`               // e.g., "Barbell", "Bodyweight"
	ExecutionTechnic string `bson:"executionTechnic,omitempty" json:"executionTechnic,omitempty"` // Markdown instructions
	VideoURL         string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseFilter narrows a library listing. Empty fields are ignored.
type ExerciseFilter struct {
	TrainerID   primitive.ObjectID
	Category    string
	MuscleGroup string
	Difficulty  string
	Equipment   string
	Search      string // case-insensitive match on name
}

// ExerciseFacets lists the distinct values present in a trainer's library,
// used to populate the exercise picker.
type ExerciseFacets struct {
	Categories       []string `json:"categories"`
	MuscleGroups     []string `json:"muscle_groups"`
	DifficultyLevels []string `json:"difficulty_levels"`
	EquipmentTypes   []string `json:"equipment_types"`
}

// ExerciseLibrary is the result of a filtered library listing.
type ExerciseLibrary struct {
	Exercises    []Exercise `json:"exercises"`
	Categories   []string   `json:"categories"`
	MuscleGroups []string   `json:"muscle_groups"`
}
