package toposort

import "testing"

func id(n byte) [32]byte {
	var out [32]byte
	out[31] = n
	return out
}

func TestOrderAncestorsPrecedeDescendants(t *testing.T) {
	// spec §8 S3: edges {1→2,1→3,2→4,2→5,3→6,3→7,4→8,6→8}.
	edges := map[byte][]byte{
		1: {2, 3},
		2: {4, 5},
		3: {6, 7},
		4: {8},
		6: {8},
	}
	ids := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	idList := make([][32]byte, len(ids))
	for i, n := range ids {
		idList[i] = id(n)
	}

	order, err := Order(idList, func(x [32]byte) [][32]byte {
		n := x[31]
		var out [][32]byte
		for _, d := range edges[n] {
			out = append(out, id(d))
		}
		return out
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != len(ids) {
		t.Fatalf("expected %d entries, got %d", len(ids), len(order))
	}

	pos := make(map[byte]int, len(order))
	for i, o := range order {
		pos[o[31]] = i
	}

	for from, tos := range edges {
		for _, to := range tos {
			if pos[from] <= pos[to] {
				t.Fatalf("edge %d -> %d violated: pos[%d]=%d pos[%d]=%d", from, to, from, pos[from], to, pos[to])
			}
		}
	}
}

func TestOrderDetectsCycle(t *testing.T) {
	ids := [][32]byte{id(1), id(2)}
	_, err := Order(ids, func(x [32]byte) [][32]byte {
		switch x[31] {
		case 1:
			return [][32]byte{id(2)}
		case 2:
			return [][32]byte{id(1)}
		}
		return nil
	})
	if err != ErrCycle {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestOrderNoDependencies(t *testing.T) {
	ids := [][32]byte{id(1), id(2), id(3)}
	order, err := Order(ids, func([32]byte) [][32]byte { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(order))
	}
}
