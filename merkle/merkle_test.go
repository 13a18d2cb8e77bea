package merkle

import (
	"testing"

	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
)

func TestRootSingleLeaf(t *testing.T) {
	leaf := codec.Hash256([]byte("leaf"))
	if got := Root([][32]byte{leaf}); got != leaf {
		t.Fatalf("single-leaf root should equal the leaf itself")
	}
}

func TestRootOddLeafDuplication(t *testing.T) {
	a := codec.Hash256([]byte("A"))
	b := codec.Hash256([]byte("B"))
	c := codec.Hash256([]byte("C"))

	got := Root([][32]byte{a, b, c})

	ab := codec.Hash256(concat(a, b))
	cc := codec.Hash256(concat(c, c))
	want := codec.Hash256(concat(ab, cc))

	if got != want {
		t.Fatalf("odd-leaf duplication mismatch: got %x want %x", got, want)
	}
}

func TestRootFourLeavesEvenTree(t *testing.T) {
	a := codec.Hash256([]byte("A"))
	b := codec.Hash256([]byte("B"))
	c := codec.Hash256([]byte("C"))
	d := codec.Hash256([]byte("D"))

	got := Root([][32]byte{a, b, c, d})

	ab := codec.Hash256(concat(a, b))
	cd := codec.Hash256(concat(c, d))
	want := codec.Hash256(concat(ab, cd))

	if got != want {
		t.Fatalf("even tree mismatch: got %x want %x", got, want)
	}
}

func TestWitnessRootZeroesFirstLeaf(t *testing.T) {
	w1 := codec.Hash256([]byte("wtxid1"))
	w2 := codec.Hash256([]byte("wtxid2"))

	got := WitnessRoot([][32]byte{w1, w2})
	want := Root([][32]byte{{}, w2})

	if got != want {
		t.Fatalf("witness root should zero the coinbase wtxid slot")
	}
}

// TestRootKnownAnswerVector checks Root against the literal fixture (spec
// §8 #7): the leaves are given in hex-rendered (display) order and must be
// reversed to internal order before hashing; the root is then reversed back
// to display order for comparison.
func TestRootKnownAnswerVector(t *testing.T) {
	displayLeaves := []string{
		"8c14f0db3df150123e6f3dbbf30f8b955a8249b62ac1d1ff16284aefa3d06d87",
		"fff2525b8931402dd09222c50775608f75787bd2b87e56995a7bdd30f79702c4",
		"6359f0868171b1d194cbee1af2f16ea598ae8fad666d9b012c8ed2b79a236ec4",
		"e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d",
	}
	leaves := make([][32]byte, len(displayLeaves))
	for i, s := range displayLeaves {
		internal, err := codec.HexReverse(s)
		if err != nil {
			t.Fatal(err)
		}
		leaves[i] = internal
	}

	root := Root(leaves)
	displayRoot := codec.Reverse(root)

	want := "f3e94742aca4b5ef85488dc37c06c3282295ffec960994b2c0d5ac2a25a95766"
	if got := codec.EncodeHex(displayRoot[:]); got != want {
		t.Fatalf("merkle root = %s, want %s", got, want)
	}
}

func concat(a, b [32]byte) []byte {
	out := make([]byte, 0, 64)
	out = append(out, a[:]...)
	out = append(out, b[:]...)
	return out
}
