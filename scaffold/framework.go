// Package scaffold extracts Bemis–Murcko frameworks from molecules and turns
// them into canonical grouping keys.
//
// The framework of a molecule is its ring systems plus the linker atoms that
// connect them; side chains are stripped. Atoms doubly bonded to a framework
// atom (ring carbonyl oxygens, for instance) are kept, so cyclohexanone and
// cyclohexane get different scaffolds. Acyclic molecules have an empty
// framework and map to the empty key "".
//
// Keys are produced by Weisfeiler–Lehman refinement over atom and bond
// invariants, hashed with xxh3. Two frameworks that are isomorphic as written
// always share a key. Aromaticity is taken verbatim from the input: feed
// SMILES produced by one toolkit so that benzene is not written once as
// "c1ccccc1" and once in Kekulé form.
package scaffold

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/molsplit/bfs"
	"github.com/katalvlaran/molsplit/core"
	"github.com/katalvlaran/molsplit/dfs"
)

// ErrMolNil is returned when a nil *core.Mol is passed.
var ErrMolNil = errors.New("scaffold: molecule is nil")

// Framework returns the Murcko framework of m as a new molecule. The result
// has zero atoms when m has no ring.
//
// Algorithm:
//  1. Perceive ring bonds (dfs.Rings).
//  2. Peel non-ring atoms of degree <= 1 until none remain; ring atoms and
//     linkers survive.
//  3. Re-attach peeled atoms joined to a surviving atom by a double bond.
//
// Complexity: O(V + E).
func Framework(m *core.Mol) (*core.Mol, error) {
	if m == nil {
		return nil, ErrMolNil
	}
	info, err := dfs.Rings(m)
	if err != nil {
		return nil, errors.Wrap(err, "scaffold: Framework")
	}

	n := m.AtomCount()
	alive := make([]bool, n)
	deg := make([]int, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		alive[i] = true
		if deg[i], err = m.Degree(i); err != nil {
			return nil, errors.Wrap(err, "scaffold: Framework")
		}
		if !info.Atoms[i] && deg[i] <= 1 {
			queue = append(queue, i)
		}
	}

	// 1) Leaf peeling: a queue of removable atoms, refilled as degrees drop.
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		if !alive[a] {
			continue
		}
		alive[a] = false
		nbrs, _ := m.Neighbors(a)
		for _, nb := range nbrs {
			if !alive[nb] {
				continue
			}
			deg[nb]--
			if !info.Atoms[nb] && deg[nb] <= 1 {
				queue = append(queue, nb)
			}
		}
	}

	// 2) Exocyclic and exo-linker double bonds stay with the framework.
	keep := append([]bool(nil), alive...)
	for _, b := range m.Bonds() {
		if b.Order != core.BondDouble || alive[b.From] == alive[b.To] {
			continue
		}
		if alive[b.From] {
			keep[b.To] = true
		} else {
			keep[b.From] = true
		}
	}

	sub, _, err := m.Induced(keep)
	if err != nil {
		return nil, errors.Wrap(err, "scaffold: Framework")
	}

	return sub, nil
}

// LargestFragment returns the connected component of m with the most atoms
// (the first one on ties), dropping counter-ions and solvents.
func LargestFragment(m *core.Mol) (*core.Mol, error) {
	if m == nil {
		return nil, ErrMolNil
	}
	frags, err := bfs.Fragments(m)
	if err != nil {
		return nil, errors.Wrap(err, "scaffold: LargestFragment")
	}
	if len(frags) <= 1 {
		return m, nil
	}

	best := 0
	for i, f := range frags {
		if len(f) > len(frags[best]) {
			best = i
		}
	}
	keep := make([]bool, m.AtomCount())
	for _, a := range frags[best] {
		keep[a] = true
	}
	sub, _, err := m.Induced(keep)
	if err != nil {
		return nil, errors.Wrap(err, "scaffold: LargestFragment")
	}

	return sub, nil
}
