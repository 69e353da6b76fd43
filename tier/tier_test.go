package tier

import (
	"testing"

	"github.com/shielded-pool/tct/hash"
	"github.com/shielded-pool/tct/internal/elem"
)

func commitment(b byte) elem.Commitment {
	var c elem.Commitment
	c[0] = b
	return c
}

func TestEmptyTierHashIsDefault(t *testing.T) {
	empty := New()
	other := New()
	if !empty.Hash().Equal(other.Hash()) {
		t.Fatalf("two empty tiers disagree on hash")
	}
	if !empty.Hash().Equal(hash.Default()) {
		t.Fatalf("empty tier hash is not the default hash")
	}
	if !empty.IsEmpty() {
		t.Fatalf("fresh tier reports non-empty")
	}
}

func TestInsertGrowsLengthAndChangesHash(t *testing.T) {
	tr := New()
	before := tr.Hash()
	for i := byte(0); i < 16; i++ {
		if err := tr.InsertItem(elem.Keep[elem.Item](commitment(i))); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if tr.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", tr.Len())
	}
	if tr.Witnessed() != 16 {
		t.Fatalf("Witnessed() = %d, want 16", tr.Witnessed())
	}
	if tr.Hash().Equal(before) {
		t.Fatalf("hash did not change after insertion")
	}
}

func TestWitnessThenForgetPreservesHash(t *testing.T) {
	tr := New()
	var cs []elem.Commitment
	for i := byte(0); i < 10; i++ {
		c := commitment(i)
		cs = append(cs, c)
		if err := tr.InsertItem(elem.Keep[elem.Item](c)); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	rootBefore := tr.Hash()

	_, item, ok := tr.Witness(3)
	if !ok {
		t.Fatalf("expected witness at index 3")
	}
	if got, ok := item.(elem.Commitment); !ok || got != cs[3] {
		t.Fatalf("witnessed wrong item: %v", item)
	}

	if !tr.Forget(3) {
		t.Fatalf("Forget(3) = false, want true")
	}
	if tr.Witnessed() != 9 {
		t.Fatalf("Witnessed() after forget = %d, want 9", tr.Witnessed())
	}
	if !tr.Hash().Equal(rootBefore) {
		t.Fatalf("root hash changed after forgetting a witness")
	}

	if _, _, ok := tr.Witness(3); ok {
		t.Fatalf("forgotten index 3 still produced a witness")
	}

	// Every other index should still witness correctly.
	for i, c := range cs {
		if i == 3 {
			continue
		}
		_, item, ok := tr.Witness(uint64(i))
		if !ok {
			t.Fatalf("lost witness at index %d after an unrelated forget", i)
		}
		if got := item.(elem.Commitment); got != c {
			t.Fatalf("index %d witnessed wrong commitment", i)
		}
	}
}

func TestFinalizeThenEqualActiveHash(t *testing.T) {
	tr := New()
	for i := byte(0); i < 5; i++ {
		if err := tr.InsertItem(elem.Keep[elem.Item](commitment(i))); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	before := tr.Hash()
	finalized := tr.Finalize()
	if !finalized.Hash().Equal(before) {
		t.Fatalf("finalize changed the root hash: %s != %s", finalized.Hash(), before)
	}
	// Finalize is idempotent.
	again := tr.Finalize()
	if !again.Hash().Equal(before) {
		t.Fatalf("second finalize changed the root hash")
	}
}

func TestCurrentTracksLiveFocus(t *testing.T) {
	tr := New()
	if _, ok := tr.Current(); ok {
		t.Fatalf("empty tier reports a current item")
	}
	c := commitment(7)
	if err := tr.InsertItem(elem.Keep[elem.Item](c)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	item, ok := tr.Current()
	if !ok {
		t.Fatalf("expected a current item after insertion")
	}
	if got := item.(elem.Commitment); got != c {
		t.Fatalf("Current() = %v, want %v", got, c)
	}
}

func TestForgottenInsertContributesHashWithoutWitness(t *testing.T) {
	witnessed := New()
	forgotten := New()
	c := commitment(42)

	if err := witnessed.InsertItem(elem.Keep[elem.Item](c)); err != nil {
		t.Fatalf("insert keep: %v", err)
	}
	if err := forgotten.InsertItem(elem.Forgotten[elem.Item](c.Hash())); err != nil {
		t.Fatalf("insert forgotten: %v", err)
	}

	if !witnessed.Hash().Equal(forgotten.Hash()) {
		t.Fatalf("witnessed and forgotten insertion of the same commitment disagree on hash")
	}
	if forgotten.Witnessed() != 0 {
		t.Fatalf("forgotten insertion counted as witnessed")
	}
	if _, _, ok := forgotten.Witness(0); ok {
		t.Fatalf("produced a witness for a commitment inserted as forgotten")
	}
}
