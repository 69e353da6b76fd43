package hash

import "testing"

func TestDefaultIsZero(t *testing.T) {
	if !Default().IsZero() {
		t.Fatalf("Default() is not zero")
	}
}

func TestNodeIsDeterministic(t *testing.T) {
	a, b, c, d := Of([32]byte{1}), Of([32]byte{2}), Of([32]byte{3}), Of([32]byte{4})
	h1 := Node(3, a, b, c, d)
	h2 := Node(3, a, b, c, d)
	if !h1.Equal(h2) {
		t.Fatalf("Node is not deterministic: %s != %s", h1, h2)
	}
}

func TestNodeMixesHeight(t *testing.T) {
	a, b, c, d := Of([32]byte{1}), Of([32]byte{2}), Of([32]byte{3}), Of([32]byte{4})
	at3 := Node(3, a, b, c, d)
	at4 := Node(4, a, b, c, d)
	if at3.Equal(at4) {
		t.Fatalf("Node(3, ...) collided with Node(4, ...) for identical children")
	}
}

func TestNodeOrderSensitive(t *testing.T) {
	a, b := Of([32]byte{1}), Of([32]byte{2})
	forward := Node(1, a, b, Default(), Default())
	backward := Node(1, b, a, Default(), Default())
	if forward.Equal(backward) {
		t.Fatalf("Node did not distinguish child order")
	}
}

func TestOfIsDistinctFromNode(t *testing.T) {
	var commitment [32]byte
	copy(commitment[:], "same 32 bytes, wrong domain!!!!!")
	leaf := Of(commitment)
	asNode := Node(0, Default(), Default(), Default(), Default())
	if leaf.Equal(asNode) {
		t.Fatalf("commitment hash collided with an unrelated node hash")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	want := Of([32]byte{0xaa, 0xbb})
	got, err := FromBytes(want.Bytes())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !want.Equal(got) {
		t.Fatalf("round trip mismatch: %s != %s", want, got)
	}
}

func TestCacheSetIfEmptyOnlyComputesOnce(t *testing.T) {
	var c Cache
	calls := 0
	compute := func() Hash {
		calls++
		return Of([32]byte{9})
	}
	first := c.SetIfEmpty(compute)
	second := c.SetIfEmpty(compute)
	if !first.Equal(second) {
		t.Fatalf("cache returned different hashes across calls")
	}
	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
}
