package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
)

var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddClientIDToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error
	// SearchClients matches the trainer's clients by name or email, case-insensitively.
	SearchClients(ctx context.Context, trainerID primitive.ObjectID, query string) ([]domain.User, error)
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error
	// Facets returns the distinct category, muscle group, difficulty and
	// equipment values of the trainer's library.
	Facets(ctx context.Context, trainerID primitive.ObjectID) (*domain.ExerciseFacets, error)
}

type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	// ListByTrainer lists the trainer's programs, newest first. A non-nil
	// clientID restricts the result to that client's programs.
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID, clientID *primitive.ObjectID) ([]domain.Program, error)
	// ListByClient lists every program written for the client, with phases.
	ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	Delete(ctx context.Context, id, trainerID primitive.ObjectID) error
}

type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Template, error)
	// ListByTrainer lists the trainer's templates; an empty programType matches all.
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID, programType string) ([]domain.Template, error)
	Update(ctx context.Context, template *domain.Template) error
	Delete(ctx context.Context, id, trainerID primitive.ObjectID) error
}

type ExportRepository interface {
	Create(ctx context.Context, record *domain.ExportRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExportRecord, error)
	ListBySource(ctx context.Context, sourceID primitive.ObjectID) ([]domain.ExportRecord, error)
}
