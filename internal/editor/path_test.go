package editor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngx/coaching/internal/editor"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    editor.Path
		wantErr bool
	}{
		{in: "", want: editor.Path{}},
		{in: "1", want: editor.Path{1}},
		{in: "0.2.1.0.3", want: editor.Path{0, 2, 1, 0, 3}},
		{in: "0.0.0.0.0.0", wantErr: true},
		{in: "1.x", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := editor.ParsePath(tt.in)
			if tt.wantErr {
				if !errors.Is(err, editor.ErrInvalidPath) {
					t.Errorf("ParsePath(%q) error = %v, want ErrInvalidPath", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePath(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestPath_SameContainer(t *testing.T) {
	tests := []struct {
		a, b editor.Path
		want bool
	}{
		{editor.Path{0, 1, 2}, editor.Path{0, 1, 0}, true},
		{editor.Path{0, 1, 2}, editor.Path{0, 2, 0}, false},
		{editor.Path{0, 1}, editor.Path{0, 1, 0}, false},
		{editor.Path{3}, editor.Path{0}, true},
		{editor.Path{}, editor.Path{}, false},
	}
	for _, tt := range tests {
		if got := tt.a.SameContainer(tt.b); got != tt.want {
			t.Errorf("%s.SameContainer(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	parent := make(editor.Path, 2, 8)
	a := parent.Child(1)
	b := parent.Child(2)
	if a.Index() != 1 || b.Index() != 2 {
		t.Errorf("Child paths alias each other: %s, %s", a, b)
	}
	if a.Level() != editor.LevelDay {
		t.Errorf("Level() = %s, want day", a.Level())
	}
}
