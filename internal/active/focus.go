// Package active implements the mutable rightmost frontier of one tier: the
// spine of nodes currently accepting insertions, each tracking up to three
// already-completed left siblings and one still-mutable focus child.
package active

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/complete"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
)

// Full is returned by Insert when the subtree it was called on has no room
// left for another item. complete is this subtree's now-finalized
// representation (to be pushed into the parent's siblings, or folded into
// a higher-level Full if the parent has no room either); Item is the value
// that triggered the overflow, returned unconsumed so the caller can retry
// it elsewhere.
type Full struct {
	Complete elem.Insert[complete.Focus]
	Item     elem.Insert[elem.Item]
}

// Focus is the common interface implemented by both active.Leaf and
// active.Node.
type Focus interface {
	elem.Hashable
	Height() uint8
	CachedHash() (hash.Hash, bool)

	// Insert tries to place x at the rightmost open slot of this subtree.
	// On success it returns the (possibly mutated) receiver and a nil
	// *Full. If this subtree was already full, it returns a nil Focus and
	// a non-nil *Full describing how this subtree finalizes and carrying x
	// back unconsumed.
	Insert(x elem.Insert[elem.Item]) (Focus, *Full)

	// Update applies f to the most-recently-inserted item in focus. It
	// returns false if there is nothing to update (never true for a
	// well-formed Leaf/Node, since both only exist once they hold an
	// item — provided for symmetry with the empty-tier case one level up).
	Update(f func(*elem.Insert[elem.Item])) bool

	// FocusItem observes the most-recently-inserted item without mutating
	// it.
	FocusItem() (elem.Insert[elem.Item], bool)

	// Finalize consumes this active subtree, producing its frozen
	// complete-or-hash representation.
	Finalize() elem.Insert[complete.Focus]

	// Witness recurses towards the leaf at index, whether it currently
	// sits in an already-completed sibling or in the still-active focus.
	Witness(index uint64) (path.AuthPath, elem.Item, bool)

	// Forget marks the witness at index as forgotten, if present and still
	// retained. It reports whether a witness was actually removed.
	Forget(index uint64) bool
}
