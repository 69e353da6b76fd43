// Package elem defines the two shapes shared by every layer of the tree:
// Item, the thing stored at a leaf (either a raw commitment, or — one tier
// up — a whole nested tier), and Insert, the two-variant "kept witness or
// opaque hash" value that wraps every slot in the tree.
package elem

import "github.com/shielded-pool/tct/hash"

// Hashable is anything that can report its own hash. Both leaf-level items
// and internal active/complete nodes satisfy it.
type Hashable interface {
	Hash() hash.Hash
}

// Item is a value that can be stored at the leaf of one tier's internal
// active/complete tree. A Commitment is an Item (the leaf of a Block); so
// is a whole nested tier (the leaf of an Epoch or Eternity), since it too
// can report its hash and collapse itself to a stub when asked.
type Item interface {
	Hashable

	// Finalize collapses this item to its frozen representation, for the
	// case where it is itself a subtree whose active frontier needs to be
	// closed off before becoming a leaf of the tree above it. For a bare
	// Commitment this is a no-op that returns itself.
	Finalize() Insert[Item]
}

// Insert is the fundamental either/or of the whole tree: either a witness
// is retained (Keep), in which case T itself is available and provides the
// hash lazily, or only its hash survives (Hash), the leaf having been
// inserted without a witness, or having since been forgotten.
//
// Once created, an Insert may move from Keep to Hash (by forgetting) but
// never the reverse.
type Insert[T Hashable] struct {
	kept bool
	item T
	h    hash.Hash
}

// Keep wraps a retained witness.
func Keep[T Hashable](item T) Insert[T] {
	return Insert[T]{kept: true, item: item}
}

// Forgotten wraps an opaque hash with no witness behind it.
func Forgotten[T Hashable](h hash.Hash) Insert[T] {
	return Insert[T]{kept: false, h: h}
}

// IsKeep reports whether this slot retains a witness.
func (i Insert[T]) IsKeep() bool {
	return i.kept
}

// Keep returns the retained witness and true, or the zero value and false
// if this slot holds only a hash.
func (i Insert[T]) Keep() (T, bool) {
	return i.item, i.kept
}

// Hash returns the hash of this slot, computing it from the witness if one
// is retained.
func (i Insert[T]) Hash() hash.Hash {
	if i.kept {
		return i.item.Hash()
	}
	return i.h
}

// Map transforms a retained witness, preserving the hash of a forgotten
// slot untouched.
func Map[T, U Hashable](i Insert[T], f func(T) U) Insert[U] {
	if i.kept {
		return Keep[U](f(i.item))
	}
	return Forgotten[U](i.h)
}
