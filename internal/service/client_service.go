package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/repository"
)

var ErrProgramNotAssigned = errors.New("program is not assigned to this client")

// ClientService is the read-only view a coached client has of their programs.
type ClientService interface {
	GetMyPrograms(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error)
	GetMyProgram(ctx context.Context, clientID, programID primitive.ObjectID) (*domain.Program, error)
	// GetMySchedule returns the program flattened into consecutive weeks.
	GetMySchedule(ctx context.Context, clientID, programID primitive.ObjectID) (*domain.ProgramStructure, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	programRepo repository.ProgramRepository
}

func NewClientService(programRepo repository.ProgramRepository) ClientService {
	return &clientService{programRepo: programRepo}
}

func (s *clientService) GetMyPrograms(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error) {
	return s.programRepo.ListByClient(ctx, clientID)
}

func (s *clientService) GetMyProgram(ctx context.Context, clientID, programID primitive.ObjectID) (*domain.Program, error) {
	p, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if p.ClientID == nil || *p.ClientID != clientID {
		return nil, ErrProgramNotAssigned
	}
	return p, nil
}

func (s *clientService) GetMySchedule(ctx context.Context, clientID, programID primitive.ObjectID) (*domain.ProgramStructure, error) {
	p, err := s.GetMyProgram(ctx, clientID, programID)
	if err != nil {
		return nil, err
	}
	schedule := p.Schedule()
	return &schedule, nil
}
