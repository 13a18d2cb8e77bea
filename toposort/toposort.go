// Package toposort orders a set of transactions so that every ancestor
// (a transaction whose output another spends) appears before its
// descendant, per spec §4.6.
package toposort

import "fmt"

// ErrCycle is returned if the dependency graph contains a cycle, which
// should never happen for historical txid references (spec §4.6: "Cycles
// are impossible by construction... if one is observed the implementation
// may treat it as a bug and reject").
var ErrCycle = fmt.Errorf("toposort: cycle detected in dependency graph")

type visitState byte

const (
	unvisited visitState = iota
	visiting
	done
)

// Order returns ids in ancestors-before-descendants order. deps(id) must
// return the set of ids within the same set that id depends on (spec §4.6:
// "an edge T -> I.prev_txid if I.prev_txid identifies another transaction
// in the set, else ignored"). Sources are visited in the order they appear
// in ids; ties are broken by that same input ordering, since deps is
// walked in the order it returns.
//
// The algorithm is DFS with post-order push: visiting a node first visits
// all of its not-yet-visited dependencies, then appends the node itself,
// so every dependency is already in the output by the time its dependent
// is appended.
func Order(ids [][32]byte, deps func([32]byte) [][32]byte) ([][32]byte, error) {
	state := make(map[[32]byte]visitState, len(ids))
	order := make([][32]byte, 0, len(ids))

	var visit func(id [32]byte) error
	visit = func(id [32]byte) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return ErrCycle
		}
		state[id] = visiting
		for _, dep := range deps(id) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = done
		order = append(order, id)
		return nil
	}

	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}
