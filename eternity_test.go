package tct

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/davecgh/go-spew/spew"
)

func commitment(seed byte) Commitment {
	var c Commitment
	c[0] = seed
	c[1] = seed ^ 0xff
	return c
}

func TestEmptyEternity(t *testing.T) {
	e := NewEternity()
	if !e.IsEmpty() {
		t.Fatalf("fresh eternity reports non-empty")
	}
	if e.WitnessedCount() != 0 {
		t.Fatalf("fresh eternity has witnesses")
	}
	if _, ok := e.CurrentEpochRoot(); ok {
		t.Fatalf("fresh eternity reports a current epoch")
	}
}

func TestInsertAssignsSequentialPositions(t *testing.T) {
	e := NewEternity()
	var positions []Position
	for i := byte(0); i < 8; i++ {
		pos, err := e.Insert(commitment(i), Keep)
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		positions = append(positions, pos)
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			t.Fatalf("positions not sequential: %v", positions)
		}
	}
	if e.WitnessedCount() != len(positions) {
		t.Fatalf("WitnessedCount() = %d, want %d", e.WitnessedCount(), len(positions))
	}
}

func TestWitnessAndVerifyRoundTrip(t *testing.T) {
	e := NewEternity()
	var cs []Commitment
	for i := byte(0); i < 12; i++ {
		c := commitment(i)
		cs = append(cs, c)
		if _, err := e.Insert(c, Keep); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	root := e.Root()
	for _, c := range cs {
		proof, err := e.Witness(c)
		if err != nil {
			t.Fatalf("witness %x: %v", c, err)
		}
		if err := proof.Verify(root); err != nil {
			t.Fatalf("proof for %x did not verify: %v\n%s", c, err, spew.Sdump(proof))
		}
	}
}

func TestForgetRemovesWitnessButPreservesRoot(t *testing.T) {
	e := NewEternity()
	var cs []Commitment
	for i := byte(0); i < 6; i++ {
		c := commitment(i)
		cs = append(cs, c)
		if _, err := e.Insert(c, Keep); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	before := e.Root()
	if !e.Forget(cs[2]) {
		t.Fatalf("Forget returned false for a witnessed commitment")
	}
	after := e.Root()
	if !before.Equal(after) {
		t.Fatalf("root changed after forgetting: %s != %s", before, after)
	}
	if _, err := e.Witness(cs[2]); err == nil {
		t.Fatalf("forgotten commitment still produced a witness")
	}
	for i, c := range cs {
		if i == 2 {
			continue
		}
		if _, err := e.Witness(c); err != nil {
			t.Fatalf("lost witness for unrelated commitment %d: %v", i, err)
		}
	}
}

func TestReinsertingWitnessedCommitmentForgetsOldPosition(t *testing.T) {
	e := NewEternity()
	c := commitment(7)

	first, err := e.Insert(c, Keep)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	// Pad the block so the second insertion of c lands at a distinct
	// position rather than overwriting the same leaf in place.
	for i := byte(0); i < 4; i++ {
		if _, err := e.Insert(commitment(100+i), Keep); err != nil {
			t.Fatalf("pad insert %d: %v", i, err)
		}
	}
	second, err := e.Insert(c, Keep)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if first == second {
		t.Fatalf("second insert landed at the same position as the first")
	}

	if e.WitnessedCount() != 5 {
		t.Fatalf("WitnessedCount() = %d, want 5 (duplicate must not double-count)", e.WitnessedCount())
	}
	pos, ok := e.PositionOf(c)
	if !ok || pos != second {
		t.Fatalf("PositionOf(c) = %v, %v, want %v, true", pos, ok, second)
	}

	proof, err := e.Witness(c)
	if err != nil {
		t.Fatalf("witness c: %v", err)
	}
	if proof.Position != second {
		t.Fatalf("witness returned a proof for position %v, want %v", proof.Position, second)
	}
	if err := proof.Verify(e.Root()); err != nil {
		t.Fatalf("proof for reinserted commitment did not verify: %v", err)
	}

	// The old leaf at first must have collapsed to a hash stub: forgetting
	// that position again finds no witness left to remove.
	if e.forgetAt(first) {
		t.Fatalf("old position %v still held a witnessed leaf", first)
	}

	// Retiring the old position must leave the padding commitments'
	// witnesses in place.
	stillOld := false
	for i := byte(0); i < 4; i++ {
		if _, err := e.Witness(commitment(100 + i)); err == nil {
			stillOld = true
		}
	}
	if !stillOld {
		t.Fatalf("padding commitments lost their witnesses")
	}
}

func TestInsertWithoutWitnessStillAuthenticatesRoot(t *testing.T) {
	keep := NewEternity()
	forget := NewEternity()
	c := commitment(99)

	if _, err := keep.Insert(c, Keep); err != nil {
		t.Fatalf("insert keep: %v", err)
	}
	if _, err := forget.Insert(c, Forget); err != nil {
		t.Fatalf("insert forget: %v", err)
	}

	if !keep.Root().Equal(forget.Root()) {
		t.Fatalf("witnessed and unwitnessed insertion of the same commitment produced different roots")
	}
	if forget.WitnessedCount() != 0 {
		t.Fatalf("unwitnessed insertion counted as witnessed")
	}
}

func TestInsertBlockRootIsOpaque(t *testing.T) {
	e := NewEternity()
	if _, err := e.Insert(commitment(1), Keep); err != nil {
		t.Fatalf("insert: %v", err)
	}
	stub := RootFromHash(e.Root().Hash())

	before := e.Root()
	pos, err := e.InsertBlockRoot(stub)
	if err != nil {
		t.Fatalf("InsertBlockRoot: %v", err)
	}
	if pos.Commitment() != 0 || pos.Block() == 0 {
		t.Fatalf("InsertBlockRoot did not land at the start of a fresh block: %v", pos)
	}
	if e.Root().Equal(before) {
		t.Fatalf("root did not change after InsertBlockRoot")
	}
	if _, ok := e.CurrentBlockRoot(); ok {
		t.Fatalf("a current block is still open after InsertBlockRoot")
	}
}

// TestRandomSequence exercises interleaved insertions, witnessing, and
// forgetting against an independent model, in the spirit of the teacher's
// own quick.Check-driven random walk over tree operations.
func TestRandomSequence(t *testing.T) {
	run := func(seed int64) bool {
		rng := rand.New(rand.NewSource(seed))
		e := NewEternity()
		witnessed := make(map[Commitment]bool)

		for i := 0; i < 200; i++ {
			switch rng.Intn(3) {
			case 0:
				var c Commitment
				rng.Read(c[:])
				w := Keep
				if rng.Intn(2) == 0 {
					w = Forget
				}
				if _, err := e.Insert(c, w); err != nil {
					return false
				}
				if w == Keep {
					witnessed[c] = true
				}
			case 1:
				for c := range witnessed {
					proof, err := e.Witness(c)
					if err != nil {
						return false
					}
					if err := proof.Verify(e.Root()); err != nil {
						return false
					}
					break
				}
			case 2:
				for c := range witnessed {
					e.Forget(c)
					delete(witnessed, c)
					break
				}
			}
		}
		return len(witnessed) == e.WitnessedCount()
	}

	if err := quick.Check(run, &quick.Config{MaxCount: 50}); err != nil {
		if cerr, ok := err.(*quick.CheckError); ok {
			t.Fatalf("random sequence failed on iteration %d: %s", cerr.Count, spew.Sdump(cerr.In))
		}
		t.Fatal(err)
	}
}
