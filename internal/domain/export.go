package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportSource says which kind of document an export was rendered from.
type ExportSource string

const (
	ExportSourceProgram  ExportSource = "program"
	ExportSourceTemplate ExportSource = "template"
)

// ExportRecord stores metadata about a rendered PDF/Excel file.
// The file itself lives in object storage under ObjectKey.
type ExportRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID  primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	SourceID   primitive.ObjectID `bson:"sourceId" json:"sourceId"`
	SourceKind ExportSource       `bson:"sourceKind" json:"sourceKind"`
	Format     string             `bson:"format" json:"format"` // "pdf" or "xlsx"
	ObjectKey  string             `bson:"objectKey" json:"-"`   // internal use only
	FileName   string             `bson:"fileName" json:"fileName"`
	Size       int64              `bson:"size" json:"size"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
