// File: methods.go
// Role: Atom and bond mutation plus read-only queries on Mol.
// Determinism:
//   - Atoms() and Bonds() return catalogs in insertion order.
//   - Neighbors(i) follows bond insertion order around atom i.
// Concurrency:
//   - Mutators take the write lock; queries take the read lock.

package core

import (
	"github.com/cockroachdb/errors"
)

// AddAtom appends a copy of a to the molecule and returns its index.
// The Index field of a is ignored and overwritten.
//
// Complexity: O(1) amortized.
func (m *Mol) AddAtom(a Atom) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.Index = len(m.atoms)
	m.atoms = append(m.atoms, &a)
	m.adj = append(m.adj, nil)

	return a.Index
}

// AddBond connects atoms from and to with the given order and returns the bond ID.
//
// Errors:
//   - ErrAtomNotFound: either index is out of range.
//   - ErrLoopNotAllowed: from == to.
//   - ErrDuplicateBond: the atoms are already bonded.
//   - ErrBadBondOrder: order is not a known BondOrder.
//
// Complexity: O(deg(from)).
func (m *Mol) AddBond(from, to int, order BondOrder, opts ...BondOption) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 1) Validate endpoints and order
	if !m.hasAtomLocked(from) || !m.hasAtomLocked(to) {
		return -1, errors.Wrapf(ErrAtomNotFound, "AddBond(%d,%d)", from, to)
	}
	if from == to {
		return -1, errors.Wrapf(ErrLoopNotAllowed, "AddBond(%d,%d)", from, to)
	}
	if !order.Valid() {
		return -1, errors.Wrapf(ErrBadBondOrder, "AddBond(%d,%d): order %d", from, to, int(order))
	}
	// 2) Simple graph: one bond per atom pair
	if _, ok := m.bondBetweenLocked(from, to); ok {
		return -1, errors.Wrapf(ErrDuplicateBond, "AddBond(%d,%d)", from, to)
	}

	// 3) Insert and index on both endpoints
	b := &Bond{ID: len(m.bonds), From: from, To: to, Order: order}
	for _, opt := range opts {
		opt(b)
	}
	m.bonds = append(m.bonds, b)
	m.adj[from] = append(m.adj[from], b.ID)
	m.adj[to] = append(m.adj[to], b.ID)

	return b.ID, nil
}

// AtomCount returns the number of atoms.
func (m *Mol) AtomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.atoms)
}

// BondCount returns the number of bonds.
func (m *Mol) BondCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.bonds)
}

// Atom returns the atom at index i.
// The returned pointer refers to live storage; treat it as read-only.
func (m *Mol) Atom(i int) (*Atom, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasAtomLocked(i) {
		return nil, errors.Wrapf(ErrAtomNotFound, "Atom(%d)", i)
	}

	return m.atoms[i], nil
}

// Bond returns the bond with the given ID.
func (m *Mol) Bond(id int) (*Bond, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 0 || id >= len(m.bonds) {
		return nil, errors.Wrapf(ErrBondNotFound, "Bond(%d)", id)
	}

	return m.bonds[id], nil
}

// Atoms returns a snapshot of the atom catalog in index order.
// The slice is independent; the *Atom values are shared.
func (m *Mol) Atoms() []*Atom {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Atom, len(m.atoms))
	copy(out, m.atoms)

	return out
}

// Bonds returns a snapshot of the bond catalog in ID order.
func (m *Mol) Bonds() []*Bond {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Bond, len(m.bonds))
	copy(out, m.bonds)

	return out
}

// IncidentBonds returns the bonds touching atom i in insertion order.
//
// Complexity: O(deg(i)).
func (m *Mol) IncidentBonds(i int) ([]*Bond, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasAtomLocked(i) {
		return nil, errors.Wrapf(ErrAtomNotFound, "IncidentBonds(%d)", i)
	}
	out := make([]*Bond, 0, len(m.adj[i]))
	for _, id := range m.adj[i] {
		out = append(out, m.bonds[id])
	}

	return out, nil
}

// Neighbors returns the indices of atoms bonded to atom i, following bond
// insertion order.
//
// Complexity: O(deg(i)).
func (m *Mol) Neighbors(i int) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasAtomLocked(i) {
		return nil, errors.Wrapf(ErrAtomNotFound, "Neighbors(%d)", i)
	}
	out := make([]int, 0, len(m.adj[i]))
	for _, id := range m.adj[i] {
		out = append(out, m.bonds[id].Other(i))
	}

	return out, nil
}

// Degree returns the number of bonds incident to atom i.
func (m *Mol) Degree(i int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasAtomLocked(i) {
		return 0, errors.Wrapf(ErrAtomNotFound, "Degree(%d)", i)
	}

	return len(m.adj[i]), nil
}

// BondBetween returns the bond joining u and v, if any.
func (m *Mol) BondBetween(u, v int) (*Bond, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasAtomLocked(u) || !m.hasAtomLocked(v) {
		return nil, false
	}

	return m.bondBetweenLocked(u, v)
}

// hasAtomLocked reports whether i is a valid atom index. Caller holds mu.
func (m *Mol) hasAtomLocked(i int) bool {
	return i >= 0 && i < len(m.atoms)
}

// bondBetweenLocked scans the shorter adjacency list. Caller holds mu.
func (m *Mol) bondBetweenLocked(u, v int) (*Bond, bool) {
	if len(m.adj[v]) < len(m.adj[u]) {
		u, v = v, u
	}
	for _, id := range m.adj[u] {
		if m.bonds[id].Other(u) == v {
			return m.bonds[id], true
		}
	}

	return nil, false
}
