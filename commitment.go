package tct

import "github.com/shielded-pool/tct/internal/elem"

// Commitment is a single note commitment, the atomic unit stored by the
// tree.
type Commitment = elem.Commitment

// Witness selects whether an inserted commitment should retain an
// authentication path (Keep) or be stored as an opaque stub that still
// contributes to every hash above it but cannot itself be witnessed later
// (Forget).
type Witness bool

const (
	// Keep retains a full witness for the inserted commitment.
	Keep Witness = true

	// Forget discards the witness immediately upon insertion: the
	// commitment still authenticates the tree's root, but Witness will
	// never again be able to produce a proof for it.
	Forget Witness = false
)
