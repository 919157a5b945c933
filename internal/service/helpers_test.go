package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/repository/memory"
	"ngx/coaching/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) PutObject(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	if f.putErr != nil {
		return f.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = buf.Bytes()
	f.types[key] = contentType
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return "", storage.ErrObjectNotFound
	}
	return "https://files.test/" + key + "?expires=" + expires.String(), nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(f.objects, key)
	return nil
}

var errBoom = errors.New("boom")

// fixture wires every service against one in-memory store.
type fixture struct {
	store     *memory.Store
	storage   *fakeStorage
	trainers  TrainerService
	exercises ExerciseService
	programs  ProgramService
	templates TemplateService
	clients   ClientService
	exports   ExportService

	trainer primitive.ObjectID
	client  primitive.ObjectID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := discardLogger()
	store := memory.NewStore()
	fs := newFakeStorage()

	f := &fixture{store: store, storage: fs}
	f.trainers = NewTrainerService(store.Users(), logger)
	f.exercises = NewExerciseService(store.Exercises(), logger)
	f.programs = NewProgramService(store.Programs(), f.trainers, logger)
	f.templates = NewTemplateService(store.Templates(), logger)
	f.clients = NewClientService(store.Programs())
	f.exports = NewExportService(store.Exports(), f.programs, f.templates, fs, ExportOptions{
		KeyPrefix: "exports",
		URLExpiry: 5 * time.Minute,
		Now:       func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
	}, logger)

	f.trainer = f.addUser(t, "Coach", "coach@ngx.test", domain.RoleTrainer)
	f.client = f.addUser(t, "Ana", "ana@ngx.test", domain.RoleClient)
	if _, err := f.trainers.AddClientByEmail(ctx, f.trainer, "ana@ngx.test"); err != nil {
		t.Fatalf("AddClientByEmail: %v", err)
	}
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string, role domain.Role) primitive.ObjectID {
	t.Helper()
	id, err := f.store.Users().Create(context.Background(), &domain.User{Name: name, Email: email, Role: role})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return id
}

// validInput is a one-phase program that passes every pre-save check.
func validInput() ProgramInput {
	return ProgramInput{
		Name: "Spring block",
		Goal: "Strength",
		Phases: []domain.Phase{{
			Name:     "Base",
			Duration: 4,
			Weeks: []domain.Week{{
				Name: "Week 1",
				Days: []domain.Day{{
					Name: "Lower",
					Blocks: []domain.Block{{
						Name: "Main",
						Exercises: []domain.BlockExercise{
							{Name: "Squat", Sets: 5, Reps: "5", Rest: 180},
							{Name: "RDL", Sets: 3, Reps: "8", Rest: 120},
						},
					}},
				}},
			}},
		}},
	}
}
