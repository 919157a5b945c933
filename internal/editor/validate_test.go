package editor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *domain.Program)
		wantMsg  string
		wantPath editor.Path
	}{
		{
			name:   "valid",
			mutate: func(*domain.Program) {},
		},
		{
			name: "missing name wins over everything",
			mutate: func(p *domain.Program) {
				p.Name = "  "
				p.Goal = ""
				p.Phases[0].Name = ""
			},
			wantMsg: "Program name is required",
		},
		{
			name:    "missing goal",
			mutate:  func(p *domain.Program) { p.Goal = "" },
			wantMsg: "Program goal is required",
		},
		{
			name: "phase name before exercise names",
			mutate: func(p *domain.Program) {
				p.Phases[1].Name = ""
				p.Phases[0].Weeks[0].Days[0].Blocks[0].Exercises[0].Name = ""
			},
			wantMsg:  "Phase 2 name is required",
			wantPath: editor.Path{1},
		},
		{
			name:     "unnamed exercise",
			mutate:   func(p *domain.Program) { p.Phases[1].Weeks[0].Days[0].Blocks[0].Exercises[0].Name = "" },
			wantMsg:  "Exercise name is required in Phase 2, Week 1, Day 1, Block 1",
			wantPath: editor.Path{1, 0, 0, 0, 0},
		},
		{
			name:     "first unnamed exercise is reported",
			mutate:   func(p *domain.Program) { p.Phases[0].Weeks[0].Days[0].Blocks[1].Exercises[0].Name = "\t" },
			wantMsg:  "Exercise name is required in Phase 1, Week 1, Day 1, Block 2",
			wantPath: editor.Path{0, 0, 0, 1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := twoPhaseProgram()
			tt.mutate(&p)
			err := editor.Validate(p)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *editor.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", verr.Message, tt.wantMsg)
			}
			if diff := cmp.Diff(tt.wantPath, verr.Path); diff != "" {
				t.Errorf("Path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	if got := editor.Location(editor.Path{0, 2}); got != "Phase 1, Week 3" {
		t.Errorf("Location = %q", got)
	}
	if got := editor.Location(nil); got != "" {
		t.Errorf("Location(nil) = %q, want empty", got)
	}
}

func TestCheckStructure(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.Program)
		wantMsg string
	}{
		{name: "complete", mutate: func(*domain.Program) {}},
		{name: "no phases", mutate: func(p *domain.Program) { p.Phases = nil }, wantMsg: "Program needs at least one phase"},
		{name: "zero duration", mutate: func(p *domain.Program) { p.Phases[1].Duration = 0 }, wantMsg: "Phase 2 duration must be at least 1 week"},
		{name: "empty day", mutate: func(p *domain.Program) { p.Phases[1].Weeks[0].Days[0].Blocks = nil }, wantMsg: "Phase 2, Week 1, Day 1 has no blocks"},
		{name: "empty block", mutate: func(p *domain.Program) { p.Phases[0].Weeks[0].Days[0].Blocks[1].Exercises = nil }, wantMsg: "Phase 1, Week 1, Day 1, Block 2 has no exercises"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := twoPhaseProgram()
			tt.mutate(&p)
			err := editor.CheckStructure(p)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("CheckStructure() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Errorf("CheckStructure() = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}
