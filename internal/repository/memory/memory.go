// Package memory provides in-process repositories for tests and for running
// the server without a database.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/repository"
)

// Store holds every collection behind one lock.
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]domain.User
	exercises map[primitive.ObjectID]domain.Exercise
	programs  map[primitive.ObjectID]domain.Program
	templates map[primitive.ObjectID]domain.Template
	exports   map[primitive.ObjectID]domain.ExportRecord
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     map[primitive.ObjectID]domain.User{},
		exercises: map[primitive.ObjectID]domain.Exercise{},
		programs:  map[primitive.ObjectID]domain.Program{},
		templates: map[primitive.ObjectID]domain.Template{},
		exports:   map[primitive.ObjectID]domain.ExportRecord{},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() repository.UserRepository         { return userRepo{s} }
func (s *Store) Exercises() repository.ExerciseRepository { return exerciseRepo{s} }
func (s *Store) Programs() repository.ProgramRepository   { return programRepo{s} }
func (s *Store) Templates() repository.TemplateRepository { return templateRepo{s} }
func (s *Store) Exports() repository.ExportRepository     { return exportRepo{s} }

func values[T any](m map[primitive.ObjectID]T, keep func(T) bool) []T {
	out := []T{}
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) AddClientIDToTrainer(_ context.Context, trainerID, clientID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.users[trainerID]
	if !ok || !t.IsTrainer() {
		return repository.ErrNotFound
	}
	if !slices.Contains(t.ClientIDs, clientID) {
		t.ClientIDs = append(slices.Clip(t.ClientIDs), clientID)
	}
	t.UpdatedAt = r.s.now()
	r.s.users[trainerID] = t
	return nil
}

func (r userRepo) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	return r.SearchClients(ctx, trainerID, "")
}

func (r userRepo) SearchClients(_ context.Context, trainerID primitive.ObjectID, query string) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.users[trainerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clients := []domain.User{}
	for _, id := range t.ClientIDs {
		c, ok := r.s.users[id]
		if ok && (containsFold(c.Name, query) || containsFold(c.Email, query)) {
			clients = append(clients, c)
		}
	}
	slices.SortFunc(clients, func(a, b domain.User) int { return cmp.Compare(a.Name, b.Name) })
	return clients, nil
}

func (r userRepo) SetTrainerForClient(_ context.Context, clientID, trainerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.users[clientID]
	if !ok || !c.IsClient() {
		return repository.ErrNotFound
	}
	c.TrainerID = &trainerID
	c.UpdatedAt = r.s.now()
	r.s.users[clientID] = c
	return nil
}

// --- exercises ---

type exerciseRepo struct{ s *Store }

func (r exerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = r.s.now()
	exercise.UpdatedAt = exercise.CreatedAt
	r.s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r exerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r exerciseRepo) List(_ context.Context, f domain.ExerciseFilter) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	match := func(field, want string) bool { return want == "" || field == want }
	out := values(r.s.exercises, func(e domain.Exercise) bool {
		return e.TrainerID == f.TrainerID &&
			match(e.Category, f.Category) &&
			match(e.MuscleGroup, f.MuscleGroup) &&
			match(e.Difficulty, f.Difficulty) &&
			match(e.Equipment, f.Equipment) &&
			containsFold(e.Name, f.Search)
	})
	slices.SortFunc(out, func(a, b domain.Exercise) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r exerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.exercises[exercise.ID]
	if !ok || old.TrainerID != exercise.TrainerID {
		return repository.ErrNotFound
	}
	exercise.CreatedAt = old.CreatedAt
	exercise.UpdatedAt = r.s.now()
	r.s.exercises[exercise.ID] = *exercise
	return nil
}

func (r exerciseRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.exercises[id]
	if !ok || e.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.s.exercises, id)
	return nil
}

func (r exerciseRepo) Facets(_ context.Context, trainerID primitive.ObjectID) (*domain.ExerciseFacets, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var cats, groups, levels, equipment []string
	for _, e := range r.s.exercises {
		if e.TrainerID != trainerID {
			continue
		}
		cats = append(cats, e.Category)
		groups = append(groups, e.MuscleGroup)
		levels = append(levels, e.Difficulty)
		equipment = append(equipment, e.Equipment)
	}
	return &domain.ExerciseFacets{
		Categories:       distinct(cats),
		MuscleGroups:     distinct(groups),
		DifficultyLevels: distinct(levels),
		EquipmentTypes:   distinct(equipment),
	}, nil
}

func distinct(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// --- programs ---

type programRepo struct{ s *Store }

func (r programRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	program.ID = primitive.NewObjectID()
	program.CreatedAt = r.s.now()
	program.UpdatedAt = program.CreatedAt
	r.s.programs[program.ID] = *program
	return program.ID, nil
}

func (r programRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r programRepo) ListByTrainer(_ context.Context, trainerID primitive.ObjectID, clientID *primitive.ObjectID) ([]domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := values(r.s.programs, func(p domain.Program) bool {
		if p.TrainerID != trainerID {
			return false
		}
		return clientID == nil || (p.ClientID != nil && *p.ClientID == *clientID)
	})
	slices.SortFunc(out, func(a, b domain.Program) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	return out, nil
}

func (r programRepo) ListByClient(_ context.Context, clientID primitive.ObjectID) ([]domain.Program, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := values(r.s.programs, func(p domain.Program) bool { return p.ClientID != nil && *p.ClientID == clientID })
	slices.SortFunc(out, func(a, b domain.Program) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	return out, nil
}

func (r programRepo) Update(_ context.Context, program *domain.Program) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.programs[program.ID]
	if !ok || old.TrainerID != program.TrainerID {
		return repository.ErrNotFound
	}
	program.CreatedAt = old.CreatedAt
	program.UpdatedAt = r.s.now()
	r.s.programs[program.ID] = *program
	return nil
}

func (r programRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.programs[id]
	if !ok || p.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.s.programs, id)
	return nil
}

// --- templates ---

type templateRepo struct{ s *Store }

func (r templateRepo) Create(_ context.Context, t *domain.Template) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	r.s.templates[t.ID] = *t
	return t.ID, nil
}

func (r templateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r templateRepo) ListByTrainer(_ context.Context, trainerID primitive.ObjectID, programType string) ([]domain.Template, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := values(r.s.templates, func(t domain.Template) bool {
		return t.TrainerID == trainerID && (programType == "" || t.ProgramType == programType)
	})
	slices.SortFunc(out, func(a, b domain.Template) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r templateRepo) Update(_ context.Context, t *domain.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.templates[t.ID]
	if !ok || old.TrainerID != t.TrainerID {
		return repository.ErrNotFound
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = r.s.now()
	r.s.templates[t.ID] = *t
	return nil
}

func (r templateRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.templates[id]
	if !ok || t.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.s.templates, id)
	return nil
}

// --- exports ---

type exportRepo struct{ s *Store }

func (r exportRepo) Create(_ context.Context, rec *domain.ExportRecord) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = r.s.now()
	r.s.exports[rec.ID] = *rec
	return rec.ID, nil
}

func (r exportRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExportRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.exports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r exportRepo) ListBySource(_ context.Context, sourceID primitive.ObjectID) ([]domain.ExportRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := values(r.s.exports, func(rec domain.ExportRecord) bool { return rec.SourceID == sourceID })
	slices.SortFunc(out, func(a, b domain.ExportRecord) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}
