package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/logging"
	"ngx/coaching/internal/repository"
)

var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrProgramAccessDenied = errors.New("access denied to this program")
	ErrUnknownEditOp       = errors.New("unknown edit operation")
	ErrMissingNode         = errors.New("edit is missing the node for this path")
)

// ProgramInput is a complete program as sent by a client for create or save.
type ProgramInput struct {
	ClientID    *primitive.ObjectID
	Name        string
	Goal        string
	Description string
	ProgramType string
	Phases      []domain.Phase
}

type EditOp string

const (
	EditAdd     EditOp = "add"
	EditRemove  EditOp = "remove"
	EditMove    EditOp = "move"
	EditUpdate  EditOp = "update"
	EditDetails EditOp = "details"
)

// ProgramEdit is one structural change to a stored program. Path is the
// container for add, the node otherwise; To is the target of a move. For
// update, the field matching the path level must be set.
type ProgramEdit struct {
	Op       EditOp
	Path     editor.Path
	To       editor.Path
	Phase    *domain.Phase
	Week     *domain.Week
	Day      *domain.Day
	Block    *domain.Block
	Exercise *domain.BlockExercise
	Details  *ProgramInput
}

// EditResult is the program after an edit. Path points at the added node,
// Changed is false for ignored moves.
type EditResult struct {
	Program *domain.Program
	Path    editor.Path
	Changed bool
}

type ProgramService interface {
	CreateProgram(ctx context.Context, trainerID primitive.ObjectID, in ProgramInput) (*domain.Program, error)
	// NewDraft stores the default program skeleton under name without validating it.
	NewDraft(ctx context.Context, trainerID primitive.ObjectID, name string) (*domain.Program, error)
	GetProgram(ctx context.Context, trainerID, programID primitive.ObjectID) (*domain.Program, error)
	ListPrograms(ctx context.Context, trainerID primitive.ObjectID, clientID *primitive.ObjectID) ([]domain.Program, error)
	SaveProgram(ctx context.Context, trainerID, programID primitive.ObjectID, in ProgramInput) (*domain.Program, error)
	DeleteProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error
	// ValidateProgram runs the pre-save checks against the stored program.
	ValidateProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error
	// EditProgram applies one structural edit and stores the result as a draft.
	EditProgram(ctx context.Context, trainerID, programID primitive.ObjectID, edit ProgramEdit) (*EditResult, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramRepository
	trainers    TrainerService
	logger      *slog.Logger
}

func NewProgramService(programRepo repository.ProgramRepository, trainers TrainerService, logger *slog.Logger) ProgramService {
	return &programService{programRepo: programRepo, trainers: trainers, logger: logger}
}

// checkProgram runs every pre-save check: required fields first, then the
// shape of the tree.
func checkProgram(p domain.Program) error {
	if err := editor.Validate(p); err != nil {
		return err
	}
	return editor.CheckStructure(p)
}

func (s *programService) checkClient(ctx context.Context, trainerID primitive.ObjectID, clientID *primitive.ObjectID) error {
	if clientID == nil {
		return nil
	}
	_, err := s.trainers.ManagedClient(ctx, trainerID, *clientID)
	return err
}

func (in ProgramInput) program(trainerID primitive.ObjectID) domain.Program {
	return editor.Normalize(domain.Program{
		TrainerID:   trainerID,
		ClientID:    in.ClientID,
		Name:        strings.TrimSpace(in.Name),
		Goal:        strings.TrimSpace(in.Goal),
		Description: in.Description,
		ProgramType: in.ProgramType,
		Phases:      in.Phases,
	})
}

func (s *programService) CreateProgram(ctx context.Context, trainerID primitive.ObjectID, in ProgramInput) (*domain.Program, error) {
	p := in.program(trainerID)
	if err := checkProgram(p); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, trainerID, in.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.programRepo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Program created", slog.String("program_id", p.ID.Hex()), slog.Int("duration_weeks", p.DurationWeeks))
	return &p, nil
}

func (s *programService) NewDraft(ctx context.Context, trainerID primitive.ObjectID, name string) (*domain.Program, error) {
	p := editor.DefaultProgram()
	p.TrainerID = trainerID
	if name = strings.TrimSpace(name); name != "" {
		p.Name = name
	}
	if _, err := s.programRepo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *programService) GetProgram(ctx context.Context, trainerID, programID primitive.ObjectID) (*domain.Program, error) {
	p, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if p.TrainerID != trainerID {
		return nil, ErrProgramAccessDenied
	}
	return p, nil
}

func (s *programService) ListPrograms(ctx context.Context, trainerID primitive.ObjectID, clientID *primitive.ObjectID) ([]domain.Program, error) {
	if err := s.checkClient(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.programRepo.ListByTrainer(ctx, trainerID, clientID)
}

func (s *programService) SaveProgram(ctx context.Context, trainerID, programID primitive.ObjectID, in ProgramInput) (*domain.Program, error) {
	old, err := s.GetProgram(ctx, trainerID, programID)
	if err != nil {
		return nil, err
	}
	p := in.program(trainerID)
	if err := checkProgram(p); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, trainerID, in.ClientID); err != nil {
		return nil, err
	}
	p.ID = old.ID
	p.CreatedAt = old.CreatedAt
	if err := s.update(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Program saved", slog.String("program_id", p.ID.Hex()))
	return &p, nil
}

func (s *programService) update(ctx context.Context, p *domain.Program) error {
	if err := s.programRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

func (s *programService) DeleteProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error {
	if _, err := s.GetProgram(ctx, trainerID, programID); err != nil {
		return err
	}
	if err := s.programRepo.Delete(ctx, programID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

func (s *programService) ValidateProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error {
	p, err := s.GetProgram(ctx, trainerID, programID)
	if err != nil {
		return err
	}
	return checkProgram(*p)
}

func (s *programService) EditProgram(ctx context.Context, trainerID, programID primitive.ObjectID, edit ProgramEdit) (*EditResult, error) {
	stored, err := s.GetProgram(ctx, trainerID, programID)
	if err != nil {
		return nil, err
	}

	var changed *domain.Program
	ed := editor.NewProgramEditor(stored, func(p domain.Program) { changed = &p })
	res := &EditResult{Program: stored}

	switch edit.Op {
	case EditAdd:
		res.Path, err = ed.Add(edit.Path)
	case EditRemove:
		err = ed.Remove(edit.Path)
	case EditMove:
		var moved bool
		if moved, err = ed.Move(edit.Path, edit.To); moved {
			res.Path = edit.To
		}
	case EditUpdate:
		err = applyUpdate(ed, edit)
	case EditDetails:
		if edit.Details == nil {
			return nil, ErrMissingNode
		}
		if err = s.checkClient(ctx, trainerID, edit.Details.ClientID); err == nil {
			ed.SetDetails(edit.Details.Name, edit.Details.Goal, edit.Details.Description, edit.Details.ProgramType)
			if changed != nil {
				changed.ClientID = edit.Details.ClientID
			}
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEditOp, edit.Op)
	}
	if err != nil {
		return nil, err
	}
	if changed == nil {
		return res, nil
	}

	// Replaced subtrees may arrive without ids.
	*changed = editor.Normalize(*changed)
	if err := s.update(ctx, changed); err != nil {
		return nil, err
	}
	ctx = logging.WithAttrs(ctx, slog.String("program_id", programID.Hex()))
	s.logger.DebugContext(ctx, "Program edited", slog.String("op", string(edit.Op)), slog.String("path", edit.Path.String()))
	res.Program = changed
	res.Changed = true
	return res, nil
}

func applyUpdate(ed *editor.ProgramEditor, edit ProgramEdit) error {
	switch edit.Path.Level() {
	case editor.LevelPhase:
		if edit.Phase != nil {
			return ed.UpdatePhase(edit.Path, *edit.Phase)
		}
	case editor.LevelWeek:
		if edit.Week != nil {
			return ed.UpdateWeek(edit.Path, *edit.Week)
		}
	case editor.LevelDay:
		if edit.Day != nil {
			return ed.UpdateDay(edit.Path, *edit.Day)
		}
	case editor.LevelBlock:
		if edit.Block != nil {
			return ed.UpdateBlock(edit.Path, *edit.Block)
		}
	case editor.LevelExercise:
		if edit.Exercise != nil {
			return ed.UpdateExercise(edit.Path, *edit.Exercise)
		}
	default:
		return fmt.Errorf("%w: %q", editor.ErrInvalidPath, edit.Path.String())
	}
	return fmt.Errorf("%w: %s", ErrMissingNode, edit.Path.Level())
}
