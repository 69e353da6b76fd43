package complete

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
)

// Leaf is a frozen, height-0 leaf holding exactly one witnessed item.
//
// A complete leaf never appears forgotten: a forgotten leaf collapses to a
// bare hash one level up (it is never represented as its own node), per
// the "no all-Hash complete node" invariant.
type Leaf struct {
	it elem.Item
}

// NewLeaf wraps a retained item as a complete leaf.
func NewLeaf(it elem.Item) *Leaf {
	return &Leaf{it: it}
}

func (l *Leaf) Height() uint8 { return 0 }

func (l *Leaf) Hash() hash.Hash { return l.it.Hash() }

func (l *Leaf) CachedHash() (hash.Hash, bool) { return l.it.Hash(), true }

func (l *Leaf) Witness(uint64) (path.AuthPath, elem.Item, bool) {
	return path.AuthPath{}, l.it, true
}

func (l *Leaf) ForgetOwned(uint64) (elem.Insert[Focus], bool) {
	return elem.Forgotten[Focus](l.it.Hash()), true
}
