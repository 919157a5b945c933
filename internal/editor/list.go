package editor

import "fmt"

// Reorder moves the element at from to position to, shifting the siblings in
// between. It returns a new slice; items is left untouched.
func Reorder[T any](items []T, from, to int) ([]T, error) {
	if err := checkIndex(len(items), from); err != nil {
		return nil, err
	}
	if err := checkIndex(len(items), to); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	moved := items[from]
	for i, it := range items {
		if i != from {
			out = append(out, it)
		}
	}
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out, nil
}

func checkIndex(n, i int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func appendCopy[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

// removeAt drops items[i], refusing to empty the list.
func removeAt[T any](items []T, i int) ([]T, error) {
	if err := checkIndex(len(items), i); err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return nil, ErrLastChild
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}

// modifyAt replaces items[i] with fn(items[i]) in a fresh slice.
func modifyAt[T any](items []T, i int, fn func(T) (T, error)) ([]T, error) {
	if err := checkIndex(len(items), i); err != nil {
		return nil, err
	}
	v, err := fn(items[i])
	if err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out, nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}
