package editor_test

import (
	"fmt"
	"testing"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/editor"
)

// sequentialIDs makes editor ids predictable for the duration of the test.
func sequentialIDs(t *testing.T) {
	t.Helper()
	prev := editor.NewID
	n := 0
	editor.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { editor.NewID = prev })
}

func exercise(id, name string) domain.BlockExercise {
	return domain.BlockExercise{ID: id, Name: name, Sets: 3, Reps: "8-12", Rest: 90}
}

// twoPhaseProgram has phases of 4 and 6 weeks; the first day of phase 1 has
// two blocks, the first holding exercises A, B and C.
func twoPhaseProgram() domain.Program {
	return editor.Normalize(domain.Program{
		Name: "Summer cut",
		Goal: "Fat loss",
		Phases: []domain.Phase{
			{
				ID: "p1", Name: "Base", Duration: 4,
				Weeks: []domain.Week{{
					ID: "w1", Name: "Week 1",
					Days: []domain.Day{{
						ID: "d1", Name: "Upper",
						Blocks: []domain.Block{
							{ID: "b1", Name: "Main", Exercises: []domain.BlockExercise{
								exercise("a", "A"), exercise("b", "B"), exercise("c", "C"),
							}},
							{ID: "b2", Name: "Accessories", Exercises: []domain.BlockExercise{
								exercise("d", "D"),
							}},
						},
					}},
				}},
			},
			{
				ID: "p2", Name: "Build", Duration: 6,
				Weeks: []domain.Week{{
					ID: "w2", Name: "Week 1",
					Days: []domain.Day{{
						ID: "d2", Name: "Lower",
						Blocks: []domain.Block{{ID: "b3", Name: "Main", Exercises: []domain.BlockExercise{
							exercise("e", "E"),
						}}},
					}},
				}},
			},
		},
	})
}

func exerciseIDs(b domain.Block) []string {
	ids := make([]string, len(b.Exercises))
	for i, x := range b.Exercises {
		ids[i] = x.ID
	}
	return ids
}
