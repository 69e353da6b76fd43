package elem

import "github.com/shielded-pool/tct/hash"

// Commitment is the 32-byte field-element payload of a single leaf: the
// note commitment being witnessed by the tree. It is comparable, so it can
// be used directly as a map key (see the Eternity's secondary index).
type Commitment [32]byte

// Hash returns the leaf hash derived from this commitment. This is what
// actually gets folded into the tree; the raw commitment bytes are only
// retained for witnessed leaves.
func (c Commitment) Hash() hash.Hash {
	return hash.Of(c)
}

// Finalize is a no-op for a bare commitment: it has no internal active
// frontier to close off, so finalizing it always keeps it as-is.
func (c Commitment) Finalize() Insert[Item] {
	return Keep[Item](c)
}
