package editor

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the depth of a node in the phase tree.
type Level int

const (
	LevelPhase Level = iota + 1
	LevelWeek
	LevelDay
	LevelBlock
	LevelExercise
)

func (l Level) String() string {
	switch l {
	case LevelPhase:
		return "phase"
	case LevelWeek:
		return "week"
	case LevelDay:
		return "day"
	case LevelBlock:
		return "block"
	case LevelExercise:
		return "exercise"
	}
	return "program"
}

// Path addresses a node of the phase tree by the index taken at each level,
// e.g. Path{1, 0, 2} is the third day of the first week of the second phase.
// The empty path addresses the program itself.
type Path []int

// Level reports which kind of node the path points at.
func (p Path) Level() Level {
	return Level(len(p))
}

// Parent returns the path of the container holding the node.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Index is the node's position within its container.
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Child returns the path of the i-th child of p.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// SameContainer reports whether both paths are siblings of one list.
func (p Path) SameContainer(o Path) bool {
	return len(p) > 0 && p.Parent().Equal(o.Parent()) && len(p) == len(o)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// ParsePath reads the dotted form produced by Path.String. The empty string is
// the root path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) > int(LevelExercise) {
		return nil, fmt.Errorf("%w: %q is deeper than an exercise", ErrInvalidPath, s)
	}
	p := make(Path, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		p[i] = n
	}
	return p, nil
}
