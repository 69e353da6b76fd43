// Package tct implements the Tiered Commitment Tree: a sparse, append-only
// quaternary Merkle accumulator of note commitments, organized as three
// nested 8-level tiers — an Eternity of Epochs of Blocks of commitments.
//
// The tree is a single-owner value: like the teacher's own Trie and
// VerkleTrie types, an *Eternity is not safe for concurrent mutation, and
// callers needing concurrent reads should guard it with their own
// sync.RWMutex rather than expect internal locking.
package tct

import (
	"github.com/shielded-pool/tct/internal/elem"
	"github.com/shielded-pool/tct/internal/path"
	"github.com/shielded-pool/tct/tier"
)

// Eternity is the root of the tree: an accumulator of epochs, each an
// accumulator of blocks, each an accumulator of commitments.
type Eternity struct {
	inner     *tier.Tier // leaves are Epochs (*tier.Tier of Blocks)
	position  Position
	witnessed map[Commitment]Position
}

// NewEternity returns a fresh, empty eternity.
func NewEternity() *Eternity {
	return &Eternity{
		inner:     tier.New(),
		witnessed: make(map[Commitment]Position),
	}
}

// IsEmpty reports whether nothing has been inserted yet: no commitment, and
// no block or epoch (nor the root of one), even an empty one.
func (e *Eternity) IsEmpty() bool { return e.inner.IsEmpty() }

// Position returns the position the next inserted commitment will be
// assigned.
func (e *Eternity) Position() Position { return e.position }

// Root returns the current root hash of the entire eternity.
func (e *Eternity) Root() Root { return RootFromHash(e.inner.Hash()) }

// WitnessedCount reports how many commitments currently retain a witness.
func (e *Eternity) WitnessedCount() int { return len(e.witnessed) }

// PositionOf returns the position of a still-witnessed commitment, without
// constructing a full proof for it.
func (e *Eternity) PositionOf(c Commitment) (Position, bool) {
	pos, ok := e.witnessed[c]
	return pos, ok
}

// CurrentEpochRoot returns the root of the epoch currently being built, or
// ok=false if no epoch is open (the eternity is empty, or the last epoch
// was closed by InsertEpochRoot and no commitment has been inserted
// since).
func (e *Eternity) CurrentEpochRoot() (Root, bool) {
	epoch, ok := e.currentEpoch()
	if !ok {
		return Root{}, false
	}
	return RootFromHash(epoch.Hash()), true
}

// CurrentBlockRoot returns the root of the block currently being built,
// under the current epoch, or ok=false if no block is open.
func (e *Eternity) CurrentBlockRoot() (Root, bool) {
	epoch, ok := e.currentEpoch()
	if !ok {
		return Root{}, false
	}
	block, ok := e.currentBlock(epoch)
	if !ok {
		return Root{}, false
	}
	return RootFromHash(block.Hash()), true
}

// Insert adds one commitment to the block currently being built, opening a
// fresh epoch and/or block first if none is open, and rolling over to a
// fresh block or epoch if the current one has filled up. It returns the
// position assigned to the commitment.
func (e *Eternity) Insert(c Commitment, w Witness) (Position, error) {
	epoch, err := e.ensureCurrentEpoch()
	if err != nil {
		return 0, err
	}
	block, err := e.ensureCurrentBlock(epoch)
	if err != nil {
		return 0, err
	}

	x := wrapCommitment(c, w)
	if err := block.InsertItem(x); err != nil {
		block, err = e.rollBlock(epoch)
		if err != nil {
			return 0, err
		}
		if err := block.InsertItem(x); err != nil {
			return 0, ErrBlockFull
		}
	}

	pos := e.position
	if w == Keep {
		e.rebindWitness(c, pos)
	}
	e.advance()
	return pos, nil
}

// InsertBlock finalizes the block currently being built (if any) and
// starts the next block with commitments, witnessed exactly as specified
// by w. It returns the position of the block's first commitment. The new
// block is not closed: it stays the current block, and later Insert calls
// append to it.
func (e *Eternity) InsertBlock(commitments []Commitment, w Witness) (Position, error) {
	epoch, err := e.ensureCurrentEpoch()
	if err != nil {
		return 0, err
	}
	fresh, start, err := e.openFreshBlock(epoch)
	if err != nil {
		return 0, err
	}
	e.position = start

	for _, c := range commitments {
		if err := fresh.InsertItem(wrapCommitment(c, w)); err != nil {
			return 0, ErrBlockFull
		}
		if w == Keep {
			e.rebindWitness(c, e.position)
		}
		e.advance()
	}
	return start, nil
}

// InsertBlockRoot finalizes the block currently being built (if any), then
// inserts the given root hash as an opaque, un-witnessable block: its
// commitments cannot be proven against this eternity, but the block as a
// whole still authenticates the root.
func (e *Eternity) InsertBlockRoot(root Root) (Position, error) {
	epoch, err := e.ensureCurrentEpoch()
	if err != nil {
		return 0, err
	}

	pos := e.position
	if block, ok := e.currentBlock(epoch); ok && !block.IsEmpty() {
		next, nerr := pos.nextBlock()
		if nerr != nil {
			return 0, ErrFull
		}
		pos = next
	}

	if err := epoch.InsertItem(elem.Forgotten[elem.Item](root.Hash())); err != nil {
		// The current epoch had no room left for another block: the block
		// root actually lands at block 0 of a brand-new epoch, not at pos's
		// old epoch/block numbering, so pos must be recomputed to match.
		next, nerr := pos.nextEpoch()
		if nerr != nil {
			return 0, ErrFull
		}
		newEpoch, rerr := e.rollEpoch()
		if rerr != nil {
			return 0, rerr
		}
		pos = next
		epoch = newEpoch
		if err := epoch.InsertItem(elem.Forgotten[elem.Item](root.Hash())); err != nil {
			return 0, ErrEpochFull
		}
	}

	next, err := pos.nextBlock()
	if err != nil {
		return 0, ErrFull
	}
	e.position = next
	return pos, nil
}

// InsertEpoch finalizes the epoch currently being built (if any) and
// starts the next epoch with blocks of commitments, one block per inner
// slice. It returns the position of the epoch's first commitment. The new
// epoch and its last block are not closed: they stay current, and later
// Insert calls append to that last block.
func (e *Eternity) InsertEpoch(blocks [][]Commitment, w Witness) (Position, error) {
	fresh, start, err := e.openFreshEpoch()
	if err != nil {
		return 0, err
	}
	e.position = start

	for i, commitments := range blocks {
		if i > 0 {
			e.position = NewPosition(start.Epoch(), uint16(i), 0)
		}
		block := tier.New()
		for _, c := range commitments {
			if err := block.InsertItem(wrapCommitment(c, w)); err != nil {
				return 0, ErrBlockFull
			}
			if w == Keep {
				e.rebindWitness(c, e.position)
			}
			e.advance()
		}
		if err := fresh.InsertItem(elem.Keep[elem.Item](block)); err != nil {
			return 0, ErrEpochFull
		}
	}
	return start, nil
}

// InsertEpochRoot finalizes the epoch currently being built (if any), then
// inserts the given root hash as an opaque, un-witnessable epoch.
func (e *Eternity) InsertEpochRoot(root Root) (Position, error) {
	pos := e.position
	if epoch, ok := e.currentEpoch(); ok && !epoch.IsEmpty() {
		next, nerr := pos.nextEpoch()
		if nerr != nil {
			return 0, ErrFull
		}
		pos = next
	}

	if err := e.inner.InsertItem(elem.Forgotten[elem.Item](root.Hash())); err != nil {
		return 0, ErrFull
	}

	next, err := pos.nextEpoch()
	if err != nil {
		return 0, ErrFull
	}
	e.position = next
	return pos, nil
}

// Witness produces an authentication path for a still-witnessed
// commitment.
func (e *Eternity) Witness(c Commitment) (Proof, error) {
	pos, ok := e.witnessed[c]
	if !ok {
		return Proof{}, ErrNotWitnessed
	}

	outer, epochItem, ok := e.inner.Witness(uint64(pos.Epoch()))
	if !ok {
		return Proof{}, ErrEpochForgotten
	}
	epoch, ok := epochItem.(*tier.Tier)
	if !ok {
		return Proof{}, ErrEpochForgotten
	}

	middle, blockItem, ok := epoch.Witness(uint64(pos.Block()))
	if !ok {
		return Proof{}, ErrBlockForgotten
	}
	block, ok := blockItem.(*tier.Tier)
	if !ok {
		return Proof{}, ErrBlockForgotten
	}

	inner, item, ok := block.Witness(uint64(pos.Commitment()))
	if !ok {
		return Proof{}, ErrNotWitnessed
	}
	got, ok := item.(Commitment)
	if !ok || got != c {
		return Proof{}, ErrNotWitnessed
	}

	full := make(path.AuthPath, 0, len(outer)+len(middle)+len(inner))
	full = append(full, outer...)
	full = append(full, middle...)
	full = append(full, inner...)
	return Proof{Commitment: c, Position: pos, Path: full}, nil
}

// Forget drops the witness for a commitment, if any, collapsing any
// subtree left entirely opaque. It leaves the root hash unchanged.
func (e *Eternity) Forget(c Commitment) bool {
	pos, ok := e.witnessed[c]
	if !ok {
		return false
	}
	delete(e.witnessed, c)
	return e.forgetAt(pos)
}

// rebindWitness records c as witnessed at pos, first forgetting whatever
// leaf previously held c's witness, if any: the index maps a commitment to
// at most one live Keep leaf, so re-inserting an already-witnessed
// commitment must retire its old position rather than leave it as a
// dangling, unindexed Keep leaf.
func (e *Eternity) rebindWitness(c Commitment, pos Position) {
	if old, exists := e.witnessed[c]; exists {
		e.forgetAt(old)
	}
	e.witnessed[c] = pos
}

// forgetAt forgets the witness at pos directly, without consulting or
// touching the witnessed index, by descending to the leaf the same way
// Witness does. It is the position-keyed counterpart to Forget, used both
// by Forget itself and by rebindWitness to retire a superseded position.
func (e *Eternity) forgetAt(pos Position) bool {
	_, epochItem, ok := e.inner.Witness(uint64(pos.Epoch()))
	if !ok {
		return false
	}
	epoch, ok := epochItem.(*tier.Tier)
	if !ok {
		return false
	}

	_, blockItem, ok := epoch.Witness(uint64(pos.Block()))
	if !ok {
		return false
	}
	block, ok := blockItem.(*tier.Tier)
	if !ok {
		return false
	}

	return block.Forget(uint64(pos.Commitment()))
}

func wrapCommitment(c Commitment, w Witness) elem.Insert[elem.Item] {
	if w == Keep {
		return elem.Keep[elem.Item](c)
	}
	return elem.Forgotten[elem.Item](c.Hash())
}

// currentEpoch returns the epoch currently occupying the eternity's active
// focus, if any live (witnessed) one is open.
func (e *Eternity) currentEpoch() (*tier.Tier, bool) {
	item, ok := e.inner.Current()
	if !ok {
		return nil, false
	}
	epoch, ok := item.(*tier.Tier)
	return epoch, ok
}

// currentBlock is the epoch-level analogue of currentEpoch.
func (e *Eternity) currentBlock(epoch *tier.Tier) (*tier.Tier, bool) {
	item, ok := epoch.Current()
	if !ok {
		return nil, false
	}
	block, ok := item.(*tier.Tier)
	return block, ok
}

// ensureCurrentEpoch returns the live open epoch, opening a fresh one
// (rolling over the eternity itself if the previous epoch filled the
// eternity's last slot) if none is currently open.
func (e *Eternity) ensureCurrentEpoch() (*tier.Tier, error) {
	if epoch, ok := e.currentEpoch(); ok {
		return epoch, nil
	}
	return e.rollEpoch()
}

// ensureCurrentBlock is the epoch-level analogue of ensureCurrentEpoch.
func (e *Eternity) ensureCurrentBlock(epoch *tier.Tier) (*tier.Tier, error) {
	if block, ok := e.currentBlock(epoch); ok {
		return block, nil
	}
	return e.rollBlock(epoch)
}

// rollEpoch opens a fresh epoch as the eternity's next item, finalizing
// whatever epoch currently occupies the focus (the active leaf's own
// Insert cascade handles finalizing the outgoing occupant, whether it was
// fully built or only partially so).
func (e *Eternity) rollEpoch() (*tier.Tier, error) {
	fresh := tier.New()
	if err := e.inner.InsertItem(elem.Keep[elem.Item](fresh)); err != nil {
		return nil, ErrFull
	}
	return fresh, nil
}

// rollBlock is the epoch-level analogue of rollEpoch: it opens a fresh
// block as epoch's next item, cascading to a fresh epoch first if epoch
// itself has no room left.
func (e *Eternity) rollBlock(epoch *tier.Tier) (*tier.Tier, error) {
	fresh := tier.New()
	if err := epoch.InsertItem(elem.Keep[elem.Item](fresh)); err != nil {
		newEpoch, rerr := e.rollEpoch()
		if rerr != nil {
			return nil, rerr
		}
		if err := newEpoch.InsertItem(elem.Keep[elem.Item](fresh)); err != nil {
			return nil, ErrEpochFull
		}
	}
	return fresh, nil
}

// openFreshBlock returns a block under epoch ready to receive a whole new
// unit of commitments, and the position its first commitment will land at.
// If the currently open block is still empty, it is reused directly rather
// than wasting a block slot; otherwise it is closed out first (preserving
// its contents via rollBlock's cascade) and position is advanced past it.
func (e *Eternity) openFreshBlock(epoch *tier.Tier) (*tier.Tier, Position, error) {
	if block, ok := e.currentBlock(epoch); ok {
		if block.IsEmpty() {
			return block, e.position, nil
		}
		next, err := e.position.nextBlock()
		if err != nil {
			return nil, 0, ErrFull
		}
		fresh, err := e.rollBlock(epoch)
		if err != nil {
			return nil, 0, err
		}
		return fresh, next, nil
	}
	fresh, err := e.rollBlock(epoch)
	if err != nil {
		return nil, 0, err
	}
	return fresh, e.position, nil
}

// openFreshEpoch is the eternity-level analogue of openFreshBlock.
func (e *Eternity) openFreshEpoch() (*tier.Tier, Position, error) {
	if epoch, ok := e.currentEpoch(); ok {
		if epoch.IsEmpty() {
			return epoch, e.position, nil
		}
		next, err := e.position.nextEpoch()
		if err != nil {
			return nil, 0, ErrFull
		}
		fresh, err := e.rollEpoch()
		if err != nil {
			return nil, 0, err
		}
		return fresh, next, nil
	}
	fresh, err := e.rollEpoch()
	if err != nil {
		return nil, 0, err
	}
	return fresh, e.position, nil
}

// advance moves the position counter to the next commitment slot, leaving
// it unchanged if doing so would overflow the eternity's capacity (a
// subsequent Insert will then fail with ErrFull via the tier machinery
// itself, since the eternity's last slot is necessarily also full).
func (e *Eternity) advance() {
	if next, err := e.position.next(); err == nil {
		e.position = next
	}
}
