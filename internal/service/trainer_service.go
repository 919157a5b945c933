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
	ErrClientNotFound        = errors.New("client user not found")
	ErrClientNotRole         = errors.New("user found but is not a client")
	ErrClientAlreadyAssigned = errors.New("client is already assigned to a trainer")
	ErrClientNotManaged      = errors.New("client is not managed by this trainer")
)

// TrainerService manages a trainer's client roster.
type TrainerService interface {
	AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error)
	GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	SearchClients(ctx context.Context, trainerID primitive.ObjectID, query string) ([]domain.User, error)
	// ManagedClient returns the client if it is on the trainer's roster.
	ManagedClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.User, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewTrainerService(userRepo repository.UserRepository, logger *slog.Logger) TrainerService {
	return &trainerService{userRepo: userRepo, logger: logger}
}

// AddClientByEmail puts an existing client account on the trainer's roster.
// Adding a client the trainer already manages is a no-op.
func (s *trainerService) AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error) {
	clientEmail = normalizeEmail(clientEmail)
	if trainerID == primitive.NilObjectID || clientEmail == "" {
		return nil, errors.New("trainer ID and client email are required")
	}

	client, err := s.userRepo.GetByEmail(ctx, clientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrClientNotRole
	}
	if client.TrainerID != nil && *client.TrainerID != primitive.NilObjectID {
		if *client.TrainerID == trainerID {
			client.PasswordHash = ""
			return client, nil
		}
		return nil, ErrClientAlreadyAssigned
	}

	if err := s.userRepo.AddClientIDToTrainer(ctx, trainerID, client.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetTrainerForClient(ctx, client.ID, trainerID); err != nil {
		// The roster entry is left behind; re-adding the client repairs it.
		s.logger.ErrorContext(ctx, "Failed to link client to trainer",
			slog.String("client_id", client.ID.Hex()), slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Client added to roster", slog.String("client_id", client.ID.Hex()))
	client.TrainerID = &trainerID
	client.PasswordHash = ""
	return client, nil
}

func (s *trainerService) GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	clients, err := s.userRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return scrubPasswords(clients), nil
}

// SearchClients matches the query against client names and emails. An empty
// query lists the whole roster.
func (s *trainerService) SearchClients(ctx context.Context, trainerID primitive.ObjectID, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.GetManagedClients(ctx, trainerID)
	}
	clients, err := s.userRepo.SearchClients(ctx, trainerID, query)
	if err != nil {
		return nil, err
	}
	return scrubPasswords(clients), nil
}

func (s *trainerService) ManagedClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrClientNotRole
	}
	if client.TrainerID == nil || *client.TrainerID != trainerID {
		return nil, ErrClientNotManaged
	}
	client.PasswordHash = ""
	return client, nil
}

func scrubPasswords(users []domain.User) []domain.User {
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users
}
