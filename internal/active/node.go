package active

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/complete"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
	"github.com/shielded-pool/tct/internal/three"
)

// Node is an active internal node above height 0: up to three already-
// completed left siblings, plus one live focus child that is itself
// active.
type Node struct {
	height   uint8
	siblings three.Three[elem.Insert[complete.Focus]]
	focus    Focus
}

// Singleton builds a fresh active spine of the given height containing
// only x, i.e. a chain of Nodes each with empty siblings down to a single
// Leaf.
func Singleton(height uint8, x elem.Insert[elem.Item]) Focus {
	if height == 0 {
		return NewLeaf(x)
	}
	return &Node{height: height, focus: Singleton(height-1, x)}
}

func (n *Node) Height() uint8 { return n.height }

func (n *Node) Hash() hash.Hash {
	hashes := n.childHashes()
	return hash.Node(n.height, hashes[0], hashes[1], hashes[2], hashes[3])
}

func (n *Node) CachedHash() (hash.Hash, bool) {
	// An active node's hash depends on its still-mutable focus, so unlike
	// a complete node it has no cache of its own to consult — it is cheap
	// to recompute because only the rightmost spine is active at any time.
	return n.Hash(), true
}

func (n *Node) childHashes() [4]hash.Hash {
	var out [4]hash.Hash
	elems := n.siblings.Elems()
	for i, e := range elems {
		out[i] = e.Hash()
	}
	out[len(elems)] = n.focus.Hash()
	for i := len(elems) + 1; i < 4; i++ {
		out[i] = hash.Default()
	}
	return out
}

func (n *Node) Insert(x elem.Insert[elem.Item]) (Focus, *Full) {
	child, full := n.focus.Insert(x)
	if full == nil {
		n.focus = child
		return n, nil
	}

	newSiblings, fourth, ok := n.siblings.Push(full.Complete)
	if ok {
		n.siblings = newSiblings
		n.focus = Singleton(n.height-1, full.Item)
		return n, nil
	}

	// All four children are now accounted for: this node itself is full.
	cf := complete.FromChildrenOrHash(n.height, fourth)
	return nil, &Full{Complete: cf, Item: full.Item}
}

func (n *Node) Update(f func(*elem.Insert[elem.Item])) bool {
	return n.focus.Update(f)
}

func (n *Node) FocusItem() (elem.Insert[elem.Item], bool) {
	return n.focus.FocusItem()
}

func (n *Node) Finalize() elem.Insert[complete.Focus] {
	focusComplete := n.focus.Finalize()
	return complete.FromSiblingsAndFocusOrHash(n.height, n.siblings, focusComplete)
}

func (n *Node) Witness(index uint64) (path.AuthPath, elem.Item, bool) {
	branch, residual := path.At(n.height, index)
	elems := n.siblings.Elems()
	pos := int(branch)

	var siblings [3]hash.Hash
	switch {
	case pos < len(elems):
		si := 0
		for i, e := range elems {
			if i == pos {
				continue
			}
			siblings[si] = e.Hash()
			si++
		}
		siblings[si] = n.focus.Hash()
		si++
		for ; si < 3; si++ {
			siblings[si] = hash.Default()
		}
		chosen, ok := elems[pos].Keep()
		if !ok {
			return nil, nil, false
		}
		inner, leaf, ok := chosen.Witness(residual)
		if !ok {
			return nil, nil, false
		}
		return path.Prepend(siblings, inner), leaf, true

	case pos == len(elems):
		for i, e := range elems {
			siblings[i] = e.Hash()
		}
		for i := len(elems); i < 3; i++ {
			siblings[i] = hash.Default()
		}
		inner, leaf, ok := n.focus.Witness(residual)
		if !ok {
			return nil, nil, false
		}
		return path.Prepend(siblings, inner), leaf, true

	default:
		// Branch lies beyond the current frontier: nothing has ever been
		// inserted there.
		return nil, nil, false
	}
}

func (n *Node) Forget(index uint64) bool {
	branch, residual := path.At(n.height, index)
	elems := n.siblings.Elems()
	pos := int(branch)

	switch {
	case pos < len(elems):
		kept, ok := elems[pos].Keep()
		if !ok {
			return false
		}
		newChild, forgotten := kept.ForgetOwned(residual)
		if forgotten {
			elems[pos] = newChild
			n.siblings = three.FromSlice(elems)
		}
		return forgotten
	case pos == len(elems):
		return n.focus.Forget(residual)
	default:
		return false
	}
}
