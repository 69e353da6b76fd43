package complete

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
	"github.com/shielded-pool/tct/internal/three"
)

// Node is a complete (frozen) internal node: a height and a cached hash
// over a compact set of 1-4 child slots.
type Node struct {
	height   uint8
	hash     hash.Cache
	children Children
}

// FromChildrenOrHash builds a complete node from four child slots, or, if
// none of them retain a witness, collapses straight to a bare hash instead
// of allocating a node that would only ever be read for its hash.
func FromChildrenOrHash(height uint8, slots [4]elem.Insert[Focus]) elem.Insert[Focus] {
	children, any := fromArray(slots)
	if !any {
		var hashes [4]hash.Hash
		for i, s := range slots {
			hashes[i] = s.Hash()
		}
		return elem.Forgotten[Focus](hash.Node(height, hashes[0], hashes[1], hashes[2], hashes[3]))
	}
	return elem.Keep[Focus](&Node{height: height, children: children})
}

// FromSiblingsAndFocusOrHash folds a node's up-to-three completed siblings
// together with its about-to-be-finalized focus into the four-slot form
// consumed by FromChildrenOrHash, padding any unused trailing slots with
// the default (empty subtree) hash.
func FromSiblingsAndFocusOrHash(height uint8, siblings three.Three[elem.Insert[Focus]], focus elem.Insert[Focus]) elem.Insert[Focus] {
	zero := elem.Forgotten[Focus](hash.Default())
	elems := siblings.Elems()
	var slots [4]elem.Insert[Focus]
	switch len(elems) {
	case 0:
		slots = [4]elem.Insert[Focus]{focus, zero, zero, zero}
	case 1:
		slots = [4]elem.Insert[Focus]{elems[0], focus, zero, zero}
	case 2:
		slots = [4]elem.Insert[Focus]{elems[0], elems[1], focus, zero}
	case 3:
		slots = [4]elem.Insert[Focus]{elems[0], elems[1], elems[2], focus}
	}
	return FromChildrenOrHash(height, slots)
}

func (n *Node) Height() uint8 { return n.height }

func (n *Node) Hash() hash.Hash {
	return n.hash.SetIfEmpty(func() hash.Hash {
		c := n.children.Array()
		return hash.Node(n.height, c[0].Hash(), c[1].Hash(), c[2].Hash(), c[3].Hash())
	})
}

func (n *Node) CachedHash() (hash.Hash, bool) { return n.hash.Get() }

// setHashUnchecked carries a known-correct hash into the cache without
// recomputing it. Only safe when the node was just reconstructed from
// children whose combined hash cannot have changed (see ForgetOwned).
func (n *Node) setHashUnchecked(h hash.Hash) { n.hash.SetUnchecked(h) }

// Witness recurses towards the leaf at index, accumulating the three
// sibling hashes observed at every level along the way, in root-to-leaf
// order.
func (n *Node) Witness(index uint64) (path.AuthPath, elem.Item, bool) {
	branch, residual := path.At(n.height, index)
	slots := n.children.Array()

	var siblings [3]hash.Hash
	si := 0
	for i, s := range slots {
		if i == int(branch) {
			continue
		}
		siblings[si] = s.Hash()
		si++
	}

	chosen, ok := slots[branch].Keep()
	if !ok {
		return nil, nil, false
	}
	inner, leaf, ok := chosen.Witness(residual)
	if !ok {
		return nil, nil, false
	}
	return path.Prepend(siblings, inner), leaf, true
}

// ForgetOwned recursively forgets the witness at index, if present, and
// reconstructs this node (or collapses it to a bare hash if every child
// just became a hash). The reconstructed node's hash is always identical
// to this node's hash, so the cache is carried over rather than
// invalidated.
func (n *Node) ForgetOwned(index uint64) (elem.Insert[Focus], bool) {
	branch, residual := path.At(n.height, index)
	slots := n.children.Array()

	forgotten := false
	if kept, ok := slots[branch].Keep(); ok {
		var newChild elem.Insert[Focus]
		newChild, forgotten = kept.ForgetOwned(residual)
		slots[branch] = newChild
	}

	rebuilt := FromChildrenOrHash(n.height, slots)
	if h, ok := n.hash.Get(); ok {
		if node, isNode := rebuilt.Keep(); isNode {
			node.(*Node).setHashUnchecked(h)
		}
	}
	return rebuilt, forgotten
}
