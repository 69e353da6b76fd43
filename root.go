package tct

import "github.com/shielded-pool/tct/hash"

// Root is the root hash of the eternity at a single point in its history:
// the value an external verifier pins and later checks proofs against.
type Root struct {
	hash hash.Hash
}

// RootFromHash wraps a raw hash as a Root.
func RootFromHash(h hash.Hash) Root { return Root{hash: h} }

// Hash returns the underlying field element.
func (r Root) Hash() hash.Hash { return r.hash }

// Equal reports whether two roots denote the same tree state.
func (r Root) Equal(other Root) bool { return r.hash.Equal(other.hash) }

// Bytes returns the canonical 32-byte encoding of the root.
func (r Root) Bytes() [32]byte { return r.hash.Bytes() }

// String renders the root as a hex string, for logs and diagnostics.
func (r Root) String() string { return r.hash.String() }

// DecodeRoot parses the canonical 32-byte encoding produced by Bytes,
// returning a *RootDecodeError if b does not encode a canonical field
// element.
func DecodeRoot(b [32]byte) (Root, error) {
	h, err := hash.FromBytes(b)
	if err != nil {
		return Root{}, &RootDecodeError{Cause: err}
	}
	return Root{hash: h}, nil
}
