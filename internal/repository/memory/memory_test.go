package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/repository"
)

func TestUserRepo_Roster(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	users := s.Users()

	trainer := &domain.User{Name: "Coach", Email: "coach@ngx.test", PasswordHash: "x", Role: domain.RoleTrainer}
	if _, err := users.Create(ctx, trainer); err != nil {
		t.Fatal(err)
	}
	if _, err := users.Create(ctx, &domain.User{Email: "coach@ngx.test"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate email: error = %v, want ErrDuplicate", err)
	}
	for _, name := range []string{"Zoe", "Ana"} {
		c := &domain.User{Name: name, Email: name + "@ngx.test", PasswordHash: "x", Role: domain.RoleClient}
		if _, err := users.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
		if err := users.AddClientIDToTrainer(ctx, trainer.ID, c.ID); err != nil {
			t.Fatal(err)
		}
		if err := users.SetTrainerForClient(ctx, c.ID, trainer.ID); err != nil {
			t.Fatal(err)
		}
	}

	all, err := users.GetClientsByTrainerID(ctx, trainer.ID)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range all {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"Ana", "Zoe"}, names); diff != "" {
		t.Errorf("clients mismatch (-want +got):\n%s", diff)
	}

	found, err := users.SearchClients(ctx, trainer.ID, "ZOE@")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "Zoe" {
		t.Errorf("SearchClients = %+v, want Zoe", found)
	}
}

func TestExerciseRepo_ListAndFacets(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Exercises()

	owner := &domain.User{Email: "a@b.c", PasswordHash: "x", Role: domain.RoleTrainer}
	if _, err := s.Users().Create(ctx, owner); err != nil {
		t.Fatal(err)
	}
	for _, e := range []domain.Exercise{
		{Name: "Squat", Category: "Strength", MuscleGroup: "Legs", Equipment: "Barbell"},
		{Name: "Bench press", Category: "Strength", MuscleGroup: "Chest", Equipment: "Barbell"},
		{Name: "Hip airplane", Category: "Mobility", MuscleGroup: "Legs"},
	} {
		e.TrainerID = owner.ID
		if _, err := repo.Create(ctx, &e); err != nil {
			t.Fatal(err)
		}
	}

	legs, err := repo.List(ctx, domain.ExerciseFilter{TrainerID: owner.ID, MuscleGroup: "Legs"})
	if err != nil {
		t.Fatal(err)
	}
	if len(legs) != 2 || legs[0].Name != "Hip airplane" {
		t.Errorf("List(Legs) = %+v", legs)
	}

	facets, err := repo.Facets(ctx, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := &domain.ExerciseFacets{
		Categories:       []string{"Mobility", "Strength"},
		MuscleGroups:     []string{"Chest", "Legs"},
		DifficultyLevels: []string{},
		EquipmentTypes:   []string{"Barbell"},
	}
	if diff := cmp.Diff(want, facets); diff != "" {
		t.Errorf("Facets mismatch (-want +got):\n%s", diff)
	}
}
