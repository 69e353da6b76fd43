package complete

import (
	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
)

// Focus is the common interface implemented by both complete.Leaf and
// complete.Node, letting an internal node hold either kind of child
// without runtime type-switching outside this package.
type Focus interface {
	elem.Hashable
	Height() uint8
	CachedHash() (hash.Hash, bool)
	Witness(index uint64) (path.AuthPath, elem.Item, bool)
	ForgetOwned(index uint64) (elem.Insert[Focus], bool)
}
