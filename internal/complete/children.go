package complete

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/elem"
)

// Children is the compact representation of a complete node's four slots:
// at least one must be Keep (an all-Hash node is never stored — it
// collapses to a bare Hash one level up instead). present tracks, as a
// 4-bit set, which of the four slots retain a witness.
type Children struct {
	present *bitset.BitSet
	kept    [4]Focus
	hashed  [4]hash.Hash
}

// fromArray builds a Children from four slots, reporting false if none of
// them retain a witness (in which case the caller should collapse to a
// bare Hash instead of constructing a node).
func fromArray(slots [4]elem.Insert[Focus]) (Children, bool) {
	c := Children{present: bitset.New(4)}
	any := false
	for i, s := range slots {
		if v, ok := s.Keep(); ok {
			c.kept[i] = v
			c.present.Set(uint(i))
			any = true
		} else {
			c.hashed[i] = s.Hash()
		}
	}
	return c, any
}

// Get returns slot i as an Insert.
func (c Children) Get(i int) elem.Insert[Focus] {
	if c.present.Test(uint(i)) {
		return elem.Keep[Focus](c.kept[i])
	}
	return elem.Forgotten[Focus](c.hashed[i])
}

// Array reconstructs the full four-slot view.
func (c Children) Array() [4]elem.Insert[Focus] {
	var out [4]elem.Insert[Focus]
	for i := range out {
		out[i] = c.Get(i)
	}
	return out
}
