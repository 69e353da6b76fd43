package tct

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/path"
)

// Proof is an authentication path proving that a commitment was inserted
// at a specific position in the eternity, sufficient to recompute the
// eternity's root hash without any other part of the tree.
type Proof struct {
	Commitment Commitment
	Position   Position
	Path       path.AuthPath
}

// Verify recomputes the root hash implied by the proof and reports a
// *ProofVerifyError if it does not match root.
func (p Proof) Verify(root Root) error {
	current := p.Commitment.Hash()
	totalHeight := uint8(len(p.Path))
	index := uint64(p.Position)

	for i := len(p.Path) - 1; i >= 0; i-- {
		height := totalHeight - uint8(i)
		shift := uint(2 * (height - 1))
		branch := (index >> shift) & 0b11

		siblings := p.Path[i]
		var slots [4]hash.Hash
		si := 0
		for slot := 0; slot < 4; slot++ {
			if uint64(slot) == branch {
				slots[slot] = current
			} else {
				slots[slot] = siblings[si]
				si++
			}
		}
		current = hash.Node(height, slots[0], slots[1], slots[2], slots[3])
	}

	if !current.Equal(root.Hash()) {
		return &ProofVerifyError{Proof: p}
	}
	return nil
}
