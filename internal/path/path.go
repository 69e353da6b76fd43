// Package path implements the quaternary branch arithmetic shared by
// witnessing and forgetting: given a node's height (levels above its
// leaves) and a target leaf index within its span, which of the four
// children holds it, and what index does the search continue with there.
package path

import "github.com/shielded-pool/tct/hash"

// WhichWay identifies one of the four children of an internal node, in
// left-to-right tree order (0 is leftmost, 3 is rightmost). Callers use it
// as a plain array/slice index into a node's four slots.
type WhichWay uint8

// At computes which branch a target leaf index takes at a node of the
// given height (height is counted in levels above the leaves, so a leaf is
// height 0 and the root of one 8-level tier is height 8), and the residual
// index to continue the search with one level down.
//
// Each level consumes exactly two bits of index, since every internal node
// has exactly four children.
func At(height uint8, index uint64) (WhichWay, uint64) {
	if height == 0 {
		panic("path.At: called at leaf height")
	}
	shift := uint(2 * (height - 1))
	branch := (index >> shift) & 0b11
	residual := index &^ (^uint64(0) << shift)
	return WhichWay(branch), residual
}

// AuthPath is a sequence of levels from root to leaf, each carrying the
// three sibling hashes observed at that level (in left-to-right order,
// omitting the branch actually taken).
type AuthPath [][3]hash.Hash

// Prepend returns a new AuthPath with level in front of the rest of the
// path, without mutating rest's backing array.
func Prepend(level [3]hash.Hash, rest AuthPath) AuthPath {
	out := make(AuthPath, 0, len(rest)+1)
	out = append(out, level)
	out = append(out, rest...)
	return out
}
