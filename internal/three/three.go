// Package three implements a fixed small buffer of zero to three elements:
// the left-to-right completed siblings of an active node, which can never
// exceed three before the node itself becomes full (the fourth slot is
// always the node's own live focus).
package three

// Three holds 0 to 3 elements of T.
type Three[T any] struct {
	n       int
	a, b, c T
}

// Push appends x. If there is room, it returns the updated Three and true.
// If the buffer already holds three elements, it instead returns the four
// elements in order (the three held plus x) and false, leaving the
// receiver untouched — the caller is expected to use the four-element
// array to build a complete node and discard the Three.
func (t Three[T]) Push(x T) (Three[T], [4]T, bool) {
	switch t.n {
	case 0:
		return Three[T]{n: 1, a: x}, [4]T{}, true
	case 1:
		return Three[T]{n: 2, a: t.a, b: x}, [4]T{}, true
	case 2:
		return Three[T]{n: 3, a: t.a, b: t.b, c: x}, [4]T{}, true
	default:
		return t, [4]T{t.a, t.b, t.c, x}, false
	}
}

// Len reports how many elements are held.
func (t Three[T]) Len() int {
	return t.n
}

// Elems returns the held elements in left-to-right order.
func (t Three[T]) Elems() []T {
	switch t.n {
	case 0:
		return nil
	case 1:
		return []T{t.a}
	case 2:
		return []T{t.a, t.b}
	default:
		return []T{t.a, t.b, t.c}
	}
}

// FromSlice rebuilds a Three from 0 to 3 elements, for use after mutating
// the result of Elems in place (e.g. during forgetting, where an element is
// replaced but the count never changes).
func FromSlice[T any](s []T) Three[T] {
	switch len(s) {
	case 0:
		return Three[T]{}
	case 1:
		return Three[T]{n: 1, a: s[0]}
	case 2:
		return Three[T]{n: 2, a: s[0], b: s[1]}
	case 3:
		return Three[T]{n: 3, a: s[0], b: s[1], c: s[2]}
	default:
		panic("three.FromSlice: more than three elements")
	}
}
