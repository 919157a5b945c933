package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template is a reusable week/workout layout for a given program type
// (e.g. "strength", "hypertrophy"), edited with the structure editor.
type Template struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Name        string             `bson:"name" json:"name"`
	ProgramType string             `bson:"programType" json:"programType"`
	Structure   ProgramStructure   `bson:"structure" json:"structure"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
