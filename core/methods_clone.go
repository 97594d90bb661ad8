// File: methods_clone.go
// Role: Cloning and induced sub-molecules.
// Determinism:
//   - Induced keeps the relative order of kept atoms and of kept bonds, so
//     new indices are a monotone renumbering of old ones.
// Concurrency:
//   - Read lock on the source for the whole snapshot; the result is fresh.

package core

import (
	"github.com/cockroachdb/errors"
)

// Clone returns a deep copy of the molecule: atoms, bonds and adjacency.
//
// Complexity: O(V + E).
func (m *Mol) Clone() *Mol {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clone := NewMol(WithCapacity(len(m.atoms), len(m.bonds)))
	for _, a := range m.atoms {
		cp := *a
		clone.atoms = append(clone.atoms, &cp)
	}
	for _, b := range m.bonds {
		cp := *b
		clone.bonds = append(clone.bonds, &cp)
	}
	for _, ids := range m.adj {
		clone.adj = append(clone.adj, append([]int(nil), ids...))
	}

	return clone
}

// Induced returns the sub-molecule spanned by the atoms for which keep
// reports true, together with a mapping old index → new index (-1 for
// dropped atoms). A bond survives iff both endpoints survive.
//
// Errors:
//   - ErrAtomNotFound: len(keep) differs from AtomCount().
//
// Complexity: O(V + E).
func (m *Mol) Induced(keep []bool) (*Mol, []int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(keep) != len(m.atoms) {
		return nil, nil, errors.Wrapf(ErrAtomNotFound, "Induced: mask length %d, atoms %d", len(keep), len(m.atoms))
	}

	// 1) Renumber kept atoms in ascending order
	mapping := make([]int, len(m.atoms))
	sub := NewMol()
	for i, a := range m.atoms {
		if !keep[i] {
			mapping[i] = -1
			continue
		}
		cp := *a
		cp.Index = len(sub.atoms)
		mapping[i] = cp.Index
		sub.atoms = append(sub.atoms, &cp)
		sub.adj = append(sub.adj, nil)
	}

	// 2) Copy bonds whose endpoints both survived
	for _, b := range m.bonds {
		u, v := mapping[b.From], mapping[b.To]
		if u < 0 || v < 0 {
			continue
		}
		nb := &Bond{ID: len(sub.bonds), From: u, To: v, Order: b.Order, Stereo: b.Stereo}
		sub.bonds = append(sub.bonds, nb)
		sub.adj[u] = append(sub.adj[u], nb.ID)
		sub.adj[v] = append(sub.adj[v], nb.ID)
	}

	return sub, mapping, nil
}
