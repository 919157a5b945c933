package service

import (
	"context"
	"errors"
	"testing"

	"ngx/coaching/internal/domain"
)

func TestClientProgramView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := validInput()
	in.ClientID = &f.client
	assigned, err := f.programs.CreateProgram(ctx, f.trainer, in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.programs.CreateProgram(ctx, f.trainer, validInput()); err != nil {
		t.Fatal(err)
	}

	mine, err := f.clients.GetMyPrograms(ctx, f.client)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != assigned.ID {
		t.Errorf("programs = %+v", mine)
	}

	schedule, err := f.clients.GetMySchedule(ctx, f.client, assigned.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Weeks) != 1 || schedule.Weeks[0].Name != "Base - Week 1" {
		t.Errorf("schedule = %+v", schedule)
	}
	if n := len(schedule.Weeks[0].Workouts[0].Exercises); n != 2 {
		t.Errorf("workout has %d exercises, want 2", n)
	}

	other := f.addUser(t, "Bruno", "bruno@ngx.test", domain.RoleClient)
	if _, err := f.clients.GetMyProgram(ctx, other, assigned.ID); !errors.Is(err, ErrProgramNotAssigned) {
		t.Errorf("other client err = %v, want ErrProgramNotAssigned", err)
	}
}
