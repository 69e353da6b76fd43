package tct

import "errors"

// Sentinel errors returned by the operations in this package, matching the
// teacher's own closed, flat error set (tree.go's errInsertIntoHash et al.)
// rather than a wrapped-error or stack-trace library: the set below is
// small, stable, and always meant to be checked with errors.Is.
var (
	// ErrFull is returned by Insert once the eternity has accepted its
	// maximum of 2^48 commitments.
	ErrFull = errors.New("tct: eternity is full")

	// ErrEpochFull is returned by InsertEpoch when it is given more than
	// 65,536 blocks. Insert, InsertBlock and InsertBlockRoot do not return
	// it for a full current epoch: they open a fresh epoch instead.
	ErrEpochFull = errors.New("tct: epoch is full")

	// ErrBlockFull is returned by InsertBlock and InsertEpoch when a block
	// is given more than 65,536 commitments. Insert does not return it for
	// a full current block: it opens a fresh block instead.
	ErrBlockFull = errors.New("tct: block is full")

	// ErrEpochForgotten is returned by Witness when the epoch at the
	// commitment's position holds no witnessed structure (for example, it
	// was inserted as a bare root hash). Insertion never returns it: after
	// InsertEpochRoot, the next insertion opens a fresh epoch.
	ErrEpochForgotten = errors.New("tct: epoch has no witnessed structure")

	// ErrBlockForgotten is the block-level analogue of ErrEpochForgotten:
	// returned by Witness only, since after InsertBlockRoot the next
	// insertion opens a fresh block.
	ErrBlockForgotten = errors.New("tct: block has no witnessed structure")

	// ErrNotWitnessed is returned by Witness when the requested commitment
	// was never inserted with a witness, or has since been forgotten.
	ErrNotWitnessed = errors.New("tct: commitment is not witnessed")
)

// RootDecodeError reports that a byte string did not decode to a valid
// Root: its 32 bytes are not the canonical little-endian encoding of a
// BN254 scalar field element.
type RootDecodeError struct {
	Cause error
}

func (e *RootDecodeError) Error() string {
	return "tct: invalid root encoding: " + e.Cause.Error()
}

func (e *RootDecodeError) Unwrap() error { return e.Cause }

// ProofVerifyError reports that a Proof failed to authenticate against a
// claimed root. It carries the proof that failed, for diagnostics.
type ProofVerifyError struct {
	Proof Proof
}

func (e *ProofVerifyError) Error() string {
	return "tct: proof does not verify against the given root"
}
