package active

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/complete"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
)

// Leaf is a height-0 active node: a single item slot. Once constructed it
// always holds exactly one item — an empty leaf doesn't exist as its own
// value; emptiness is represented one level up (see tier.Tier) as "no
// active subtree yet".
type Leaf struct {
	it elem.Insert[elem.Item]
}

// NewLeaf builds a singleton leaf holding x.
func NewLeaf(x elem.Insert[elem.Item]) *Leaf {
	return &Leaf{it: x}
}

func (l *Leaf) Height() uint8 { return 0 }

func (l *Leaf) Hash() hash.Hash { return l.it.Hash() }

func (l *Leaf) CachedHash() (hash.Hash, bool) { return l.it.Hash(), true }

func (l *Leaf) Insert(x elem.Insert[elem.Item]) (Focus, *Full) {
	// A leaf has room for exactly one item, and this one already holds it:
	// any further insertion finds it full and must be handled by the
	// parent, which will start a fresh singleton leaf for x elsewhere.
	return nil, &Full{Complete: completeLeaf(l.it), Item: x}
}

func (l *Leaf) Update(f func(*elem.Insert[elem.Item])) bool {
	f(&l.it)
	return true
}

func (l *Leaf) FocusItem() (elem.Insert[elem.Item], bool) {
	return l.it, true
}

func (l *Leaf) Finalize() elem.Insert[complete.Focus] {
	return completeLeaf(l.it)
}

func (l *Leaf) Witness(uint64) (path.AuthPath, elem.Item, bool) {
	it, ok := l.it.Keep()
	if !ok {
		return nil, nil, false
	}
	return path.AuthPath{}, it, true
}

func (l *Leaf) Forget(uint64) bool {
	it, ok := l.it.Keep()
	if !ok {
		return false
	}
	l.it = elem.Forgotten[elem.Item](it.Hash())
	return true
}

// completeLeaf converts an Insert[Item] leaf slot into its frozen form: a
// witnessed item becomes (after Finalize, in case it is itself a nested
// tier with its own frontier to close) a complete.Leaf; a forgotten slot
// stays a bare hash.
func completeLeaf(x elem.Insert[elem.Item]) elem.Insert[complete.Focus] {
	it, ok := x.Keep()
	if !ok {
		return elem.Forgotten[complete.Focus](x.Hash())
	}
	finalized := it.Finalize()
	final, ok := finalized.Keep()
	if !ok {
		return elem.Forgotten[complete.Focus](finalized.Hash())
	}
	return elem.Keep[complete.Focus](complete.NewLeaf(final))
}
