package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/repository"
)

var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to this exercise")
	ErrExerciseNameRequired = errors.New("exercise name is required")
)

// ExerciseInput carries the editable fields of a library exercise.
type ExerciseInput struct {
	Name             string
	Description      string
	Category         string
	MuscleGroup      string
	Difficulty       string
	Equipment        string
	ExecutionTechnic string
	VideoURL         string
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, trainerID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	GetExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	// ListExercises returns the matching exercises together with the
	// category and muscle group values available for filtering.
	ListExercises(ctx context.Context, filter domain.ExerciseFilter) (*domain.ExerciseLibrary, error)
	Categories(ctx context.Context, trainerID primitive.ObjectID) (*domain.ExerciseFacets, error)
	UpdateExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	logger       *slog.Logger
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository, logger *slog.Logger) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo, logger: logger}
}

func (in ExerciseInput) apply(ex *domain.Exercise) {
	ex.Name = strings.TrimSpace(in.Name)
	ex.Description = in.Description
	ex.Category = strings.TrimSpace(in.Category)
	ex.MuscleGroup = strings.TrimSpace(in.MuscleGroup)
	ex.Difficulty = strings.TrimSpace(in.Difficulty)
	ex.Equipment = strings.TrimSpace(in.Equipment)
	ex.ExecutionTechnic = in.ExecutionTechnic
	ex.VideoURL = strings.TrimSpace(in.VideoURL)
}

func (s *exerciseService) CreateExercise(ctx context.Context, trainerID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrExerciseNameRequired
	}
	exercise := &domain.Exercise{TrainerID: trainerID}
	in.apply(exercise)

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.TrainerID != trainerID {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, filter domain.ExerciseFilter) (*domain.ExerciseLibrary, error) {
	exercises, err := s.exerciseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	facets := s.facets(ctx, filter.TrainerID)
	return &domain.ExerciseLibrary{
		Exercises:    exercises,
		Categories:   facets.Categories,
		MuscleGroups: facets.MuscleGroups,
	}, nil
}

func (s *exerciseService) Categories(ctx context.Context, trainerID primitive.ObjectID) (*domain.ExerciseFacets, error) {
	facets := s.facets(ctx, trainerID)
	return &facets, nil
}

// facets never fails: a lookup error is logged and yields empty lists so the
// picker still works without filters.
func (s *exerciseService) facets(ctx context.Context, trainerID primitive.ObjectID) domain.ExerciseFacets {
	empty := domain.ExerciseFacets{
		Categories:       []string{},
		MuscleGroups:     []string{},
		DifficultyLevels: []string{},
		EquipmentTypes:   []string{},
	}
	f, err := s.exerciseRepo.Facets(ctx, trainerID)
	if err != nil {
		s.logger.WarnContext(ctx, "Exercise facet lookup failed", slog.Any("error", err))
		return empty
	}
	if f.Categories != nil {
		empty.Categories = f.Categories
	}
	if f.MuscleGroups != nil {
		empty.MuscleGroups = f.MuscleGroups
	}
	if f.DifficultyLevels != nil {
		empty.DifficultyLevels = f.DifficultyLevels
	}
	if f.EquipmentTypes != nil {
		empty.EquipmentTypes = f.EquipmentTypes
	}
	return empty
}

func (s *exerciseService) UpdateExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrExerciseNameRequired
	}
	exercise, err := s.GetExercise(ctx, trainerID, exerciseID)
	if err != nil {
		return nil, err
	}
	in.apply(exercise)
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID) error {
	if _, err := s.GetExercise(ctx, trainerID, exerciseID); err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
