package service

import (
	"context"
	"errors"
	"testing"

	"ngx/coaching/internal/domain"
)

func TestAddClientByEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Already on the roster: no-op.
	again, err := f.trainers.AddClientByEmail(ctx, f.trainer, "ana@ngx.test")
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if again.ID != f.client {
		t.Errorf("re-add returned %s", again.ID.Hex())
	}

	other := f.addUser(t, "Other coach", "other@ngx.test", domain.RoleTrainer)
	if _, err := f.trainers.AddClientByEmail(ctx, other, "ana@ngx.test"); !errors.Is(err, ErrClientAlreadyAssigned) {
		t.Errorf("foreign trainer err = %v, want ErrClientAlreadyAssigned", err)
	}
	if _, err := f.trainers.AddClientByEmail(ctx, f.trainer, "other@ngx.test"); !errors.Is(err, ErrClientNotRole) {
		t.Errorf("adding a trainer err = %v, want ErrClientNotRole", err)
	}
	if _, err := f.trainers.AddClientByEmail(ctx, f.trainer, "ghost@ngx.test"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("unknown email err = %v, want ErrClientNotFound", err)
	}

	clients, err := f.trainers.GetManagedClients(ctx, f.trainer)
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 1 || clients[0].ID != f.client {
		t.Errorf("roster = %+v", clients)
	}
}

func TestSearchAndManagedClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "Bruno", "bruno@ngx.test", domain.RoleClient)
	if _, err := f.trainers.AddClientByEmail(ctx, f.trainer, "bruno@ngx.test"); err != nil {
		t.Fatal(err)
	}

	found, err := f.trainers.SearchClients(ctx, f.trainer, "BRU")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "Bruno" {
		t.Errorf("search = %+v", found)
	}
	all, err := f.trainers.SearchClients(ctx, f.trainer, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("empty query returned %d clients, want 2", len(all))
	}

	if _, err := f.trainers.ManagedClient(ctx, f.trainer, f.client); err != nil {
		t.Errorf("ManagedClient: %v", err)
	}
	stranger := f.addUser(t, "Cleo", "cleo@ngx.test", domain.RoleClient)
	if _, err := f.trainers.ManagedClient(ctx, f.trainer, stranger); !errors.Is(err, ErrClientNotManaged) {
		t.Errorf("stranger err = %v, want ErrClientNotManaged", err)
	}
}
