package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/repository"
)

var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateAccessDenied = errors.New("access denied to this template")
	ErrTemplateNameRequired = errors.New("template name is required")
)

type TemplateService interface {
	// CreateTemplate stores a new template. A nil structure starts with one
	// empty week.
	CreateTemplate(ctx context.Context, trainerID primitive.ObjectID, name, programType string, structure *domain.ProgramStructure) (*domain.Template, error)
	GetTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID) (*domain.Template, error)
	ListTemplates(ctx context.Context, trainerID primitive.ObjectID, programType string) ([]domain.Template, error)
	SaveTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID, name, programType string, structure domain.ProgramStructure) (*domain.Template, error)
	DeleteTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID) error
	// EditTemplate runs fn against an editor over the stored structure and
	// persists the structure the editor reports, if any.
	EditTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID, fn func(*editor.StructureEditor) error) (*domain.Template, error)
}

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
	logger       *slog.Logger
}

func NewTemplateService(templateRepo repository.TemplateRepository, logger *slog.Logger) TemplateService {
	return &templateService{templateRepo: templateRepo, logger: logger}
}

func (s *templateService) CreateTemplate(ctx context.Context, trainerID primitive.ObjectID, name, programType string, structure *domain.ProgramStructure) (*domain.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTemplateNameRequired
	}
	var initial domain.ProgramStructure
	if structure != nil {
		initial = editor.NormalizeStructure(*structure)
	} else {
		initial = editor.NewStructureEditor(nil, programType, nil).Structure()
	}
	t := &domain.Template{
		TrainerID:   trainerID,
		Name:        name,
		ProgramType: strings.TrimSpace(programType),
		Structure:   initial,
	}
	if _, err := s.templateRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Template created", slog.String("template_id", t.ID.Hex()), slog.Int("weeks", len(t.Structure.Weeks)))
	return t, nil
}

func (s *templateService) GetTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID) (*domain.Template, error) {
	t, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if t.TrainerID != trainerID {
		return nil, ErrTemplateAccessDenied
	}
	return t, nil
}

func (s *templateService) ListTemplates(ctx context.Context, trainerID primitive.ObjectID, programType string) ([]domain.Template, error) {
	return s.templateRepo.ListByTrainer(ctx, trainerID, strings.TrimSpace(programType))
}

func (s *templateService) SaveTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID, name, programType string, structure domain.ProgramStructure) (*domain.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTemplateNameRequired
	}
	t, err := s.GetTemplate(ctx, trainerID, templateID)
	if err != nil {
		return nil, err
	}
	t.Name = name
	t.ProgramType = strings.TrimSpace(programType)
	t.Structure = editor.NormalizeStructure(structure)
	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *templateService) update(ctx context.Context, t *domain.Template) error {
	if err := s.templateRepo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID) error {
	if _, err := s.GetTemplate(ctx, trainerID, templateID); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, templateID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}

func (s *templateService) EditTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID, fn func(*editor.StructureEditor) error) (*domain.Template, error) {
	t, err := s.GetTemplate(ctx, trainerID, templateID)
	if err != nil {
		return nil, err
	}

	var changed *domain.ProgramStructure
	ed := editor.NewStructureEditor(&t.Structure, t.ProgramType, func(st domain.ProgramStructure) { changed = &st })
	if err := fn(ed); err != nil {
		return nil, err
	}
	if changed == nil {
		return t, nil
	}

	t.Structure = editor.NormalizeStructure(*changed)
	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Template edited", slog.String("template_id", t.ID.Hex()), slog.Int("weeks", len(t.Structure.Weeks)))
	return t, nil
}
