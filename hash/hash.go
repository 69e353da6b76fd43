// Package hash provides the domain-separated node hash used throughout the
// tiered commitment tree, and a lazily-filled, single-writer cache cell for
// it.
//
// Every hash is an element of the BN254 scalar field. Internal nodes are
// hashed with the height mixed in, so two structurally identical subtrees
// occurring at different heights never collide.
package hash

import (
	"crypto/sha256"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// domainNode and domainCommitment separate the two hash usages (combining
// four children, and deriving a leaf hash from a raw commitment) so that
// neither can be confused with the other, even if their inputs happened to
// collide as byte strings.
const (
	domainNode       = "tct/node"
	domainCommitment = "tct/commitment"
)

// Hash is an opaque field element. The zero Hash is Default, the fixed
// constant used to pad missing children.
type Hash struct {
	inner fr.Element
}

// Default is the hash of an empty subtree. It is never returned by Node for
// any real set of inputs (with overwhelming probability), so it safely
// stands for "nothing here".
func Default() Hash {
	return Hash{}
}

// Node computes the domain-separated hash of an internal node at the given
// height, over its four children's hashes.
func Node(height uint8, a, b, c, d Hash) Hash {
	digest := sha256.New()
	digest.Write([]byte(domainNode))
	digest.Write([]byte{height})
	for _, child := range [4]Hash{a, b, c, d} {
		buf := child.inner.Bytes()
		digest.Write(buf[:])
	}
	var out Hash
	out.inner.SetBytes(digest.Sum(nil))
	return out
}

// Of hashes an arbitrary commitment value into the leaf hash stored at the
// bottom of the tree, independent of whether the commitment itself is kept
// as a witness or forgotten.
func Of(commitment [32]byte) Hash {
	digest := sha256.New()
	digest.Write([]byte(domainCommitment))
	digest.Write(commitment[:])
	var out Hash
	out.inner.SetBytes(digest.Sum(nil))
	return out
}

// Equal reports whether two hashes denote the same field element.
func (h Hash) Equal(other Hash) bool {
	return h.inner.Equal(&other.inner)
}

// IsZero reports whether h is the Default hash.
func (h Hash) IsZero() bool {
	return h.inner.IsZero()
}

// Bytes returns the canonical 32-byte little-endian encoding of h. gnark-crypto's
// own Element.Bytes is big-endian, so the byte order is reversed here to match
// the little-endian wire format the tree's external callers expect.
func (h Hash) Bytes() [32]byte {
	be := h.inner.Bytes()
	var out [32]byte
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// FromBytes decodes a canonical 32-byte little-endian field element, the
// inverse of Bytes. It returns an error if the bytes do not represent a
// canonical element (i.e. the integer they encode is >= the field modulus).
func FromBytes(b [32]byte) (Hash, error) {
	var be [32]byte
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	var out Hash
	if err := out.inner.SetBytesCanonical(be[:]); err != nil {
		return Hash{}, err
	}
	return out, nil
}

// String renders the hash as a hex string, for debugging.
func (h Hash) String() string {
	b := h.inner.Bytes()
	const hextable = "0123456789abcdef"
	out := make([]byte, 64)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0xf]
	}
	return string(out)
}
