// Package editor implements copy-on-write editing of program trees.
//
// Editors never mutate the tree they were given. Every operation rebuilds the
// ancestor chain of the changed node, keeps untouched subtrees shared, stores
// the new tree and synchronously hands it to the onChange callback.
// Editors are not safe for concurrent use.
package editor

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrLastChild is returned when a removal would leave a container empty.
	// The tree is left unchanged.
	ErrLastChild       = errors.New("cannot remove the last remaining item")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotFound        = errors.New("node not found")
	ErrInvalidNumber   = errors.New("value is not a whole number")
	ErrUnknownField    = errors.New("unknown exercise field")
	ErrInvalidPath     = errors.New("invalid path")
)

// NewID generates node ids. Tests may swap it for a deterministic source.
var NewID = func() string {
	return uuid.NewString()
}
