// Package tier implements the state machine shared by all three nesting
// levels of the tree (eternity, epoch, and block are each exactly one
// Tier, differing only in what kind of elem.Item their leaves hold): an
// active tier accepting insertions, which on filling up collapses into
// either a frozen complete tier or, if it witnessed nothing, a bare hash.
package tier

import (
	"errors"

	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/active"
	"github.com/shielded-pool/tct/internal/complete"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
)

// Height is the depth, in levels, of one tier's internal active/complete
// tree: 8 levels holds up to 4^8 = 65,536 leaves.
const Height uint8 = 8

// ErrFull is returned by InsertItem once a tier has accepted its maximum of
// 65,536 items, or has been finalized.
var ErrFull = errors.New("tier: full")

type state uint8

const (
	stateActive state = iota
	stateComplete
	stateHash
)

// Tier is a single 8-level sparse tree, used identically for a Block (whose
// items are commitments), an Epoch (whose items are Blocks), and the
// Eternity itself (whose items are Epochs) — the same recursive shape as
// the rest of the corpus's InternalNode-over-InternalNode tree layouts,
// just parameterized over "what's stored at the bottom" through the
// elem.Item interface instead of a type parameter.
type Tier struct {
	length    uint16
	witnessed uint16
	state     state
	active    active.Focus
	complete  complete.Focus
	hash      hash.Hash
}

// New returns a fresh, empty, active tier.
func New() *Tier {
	return &Tier{state: stateActive}
}

// Len reports the total number of successful insertions.
func (t *Tier) Len() uint16 { return t.length }

// Witnessed reports the number of insertions that retained a witness.
func (t *Tier) Witnessed() uint16 { return t.witnessed }

// IsEmpty reports whether this tier has never accepted an insertion.
func (t *Tier) IsEmpty() bool {
	return t.state == stateActive && t.active == nil
}

// IsFull reports whether this tier refuses further insertions (either
// because it filled up, or because Finalize closed it to further appends).
func (t *Tier) IsFull() bool {
	return t.state != stateActive
}

// Hash returns this tier's root hash: the empty-tier default, the live
// active root, or the frozen complete/hash value, as appropriate.
func (t *Tier) Hash() hash.Hash {
	switch t.state {
	case stateActive:
		if t.active == nil {
			return hash.Default()
		}
		return t.active.Hash()
	case stateComplete:
		return t.complete.Hash()
	default:
		return t.hash
	}
}

// CachedHash mirrors Hash's three states. A complete tier reports only what
// its cache already holds; an active tier's nodes keep no cache, so for an
// active tier this computes the hash.
func (t *Tier) CachedHash() (hash.Hash, bool) {
	switch t.state {
	case stateActive:
		if t.active == nil {
			return hash.Default(), true
		}
		return t.active.CachedHash()
	case stateComplete:
		return t.complete.CachedHash()
	default:
		return t.hash, true
	}
}

// Finalize closes off this tier's active frontier (if any) and returns its
// value as an elem.Item insertion suitable for embedding as a leaf one
// tier up. It is idempotent: calling it on an already-complete or
// already-hash tier just returns that value again.
func (t *Tier) Finalize() elem.Insert[elem.Item] {
	switch t.state {
	case stateComplete:
		return elem.Keep[elem.Item](t)
	case stateHash:
		return elem.Forgotten[elem.Item](t.hash)
	}
	if t.active == nil {
		t.state = stateHash
		t.hash = hash.Default()
		return elem.Forgotten[elem.Item](t.hash)
	}
	finalized := t.active.Finalize()
	t.active = nil
	if v, ok := finalized.Keep(); ok {
		t.state = stateComplete
		t.complete = v
		return elem.Keep[elem.Item](t)
	}
	t.state = stateHash
	t.hash = finalized.Hash()
	return elem.Forgotten[elem.Item](t.hash)
}

// InsertItem inserts a single new item at the tier's rightmost open slot.
// Once the tier has filled it returns ErrFull and x is not inserted;
// retrying x elsewhere is the caller's responsibility.
func (t *Tier) InsertItem(x elem.Insert[elem.Item]) error {
	if t.state != stateActive {
		return ErrFull
	}
	if t.active == nil {
		t.active = active.Singleton(Height, x)
		t.length++
		if x.IsKeep() {
			t.witnessed++
		}
		return nil
	}

	child, full := t.active.Insert(x)
	if full == nil {
		t.active = child
		t.length++
		if x.IsKeep() {
			t.witnessed++
		}
		return nil
	}

	t.active = nil
	if v, ok := full.Complete.Keep(); ok {
		t.state = stateComplete
		t.complete = v
	} else {
		t.state = stateHash
		t.hash = full.Complete.Hash()
	}
	return ErrFull
}

// InsertWhole installs a whole, already-finalized tier (or its bare root
// hash) as this tier's single next leaf, the whole-block/whole-epoch
// insertion path. It shares the same fullness semantics as InsertItem.
func (t *Tier) InsertWhole(whole elem.Insert[elem.Item]) error {
	return t.InsertItem(whole)
}

// Current returns the item currently occupying the active focus — the
// tier's rightmost, still-open leaf — so a caller one level up the stack
// (the Eternity facade) can drill down into "the current epoch" or "the
// current block" and mutate it directly rather than re-inserting.
//
// It returns ok=false if this tier is empty, already closed off, or if the
// current leaf was itself inserted (or has since become) a bare hash with
// no live subtree behind it to descend into.
func (t *Tier) Current() (elem.Item, bool) {
	if t.state != stateActive || t.active == nil {
		return nil, false
	}
	slot, ok := t.active.FocusItem()
	if !ok {
		return nil, false
	}
	return slot.Keep()
}

// Witness produces the authentication path to the leaf at index, and the
// item stored there, or ok=false if that leaf was never witnessed (or
// never inserted at all).
func (t *Tier) Witness(index uint64) (path.AuthPath, elem.Item, bool) {
	switch t.state {
	case stateActive:
		if t.active == nil {
			return nil, nil, false
		}
		return t.active.Witness(index)
	case stateComplete:
		return t.complete.Witness(index)
	default:
		return nil, nil, false
	}
}

// Forget removes the witness at index, if present, collapsing any subtree
// left entirely hash-only. It preserves the tier's root hash exactly.
func (t *Tier) Forget(index uint64) bool {
	switch t.state {
	case stateActive:
		if t.active == nil {
			return false
		}
		forgotten := t.active.Forget(index)
		if forgotten {
			t.witnessed--
		}
		return forgotten
	case stateComplete:
		newComplete, forgotten := t.complete.ForgetOwned(index)
		if forgotten {
			t.witnessed--
		}
		if v, ok := newComplete.Keep(); ok {
			t.complete = v
		} else {
			t.state = stateHash
			t.complete = nil
			t.hash = newComplete.Hash()
		}
		return forgotten
	default:
		return false
	}
}
