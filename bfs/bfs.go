// Package bfs provides breadth-first helpers over a core.Mol:
// connected fragments and the smallest ring size through each atom.
//
// Both helpers run a queue walker that explores atoms in increasing bond
// distance, optionally ignoring one bond and restricting traversal to a
// subset of bonds.
package bfs

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/molsplit/core"
)

// ErrMolNil is returned when a nil *core.Mol is passed.
var ErrMolNil = errors.New("bfs: molecule is nil")

// ErrMaskLength is returned when a bond mask does not match BondCount().
var ErrMaskLength = errors.New("bfs: bond mask length mismatch")

// queueItem pairs an atom index with its BFS depth.
type queueItem struct {
	atom  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	mol     *core.Mol
	allowed []bool // nil: every bond may be crossed
	skip    int    // bond ID never crossed, -1 for none
	queue   []queueItem
	visited []bool
	depth   []int
}

func newWalker(m *core.Mol, allowed []bool, skip int) *walker {
	n := m.AtomCount()
	w := &walker{
		mol:     m,
		allowed: allowed,
		skip:    skip,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		depth:   make([]int, n),
	}

	return w
}

// reset clears visitation so the same buffers can serve another source.
func (w *walker) reset(skip int) {
	for i := range w.visited {
		w.visited[i] = false
		w.depth[i] = 0
	}
	w.queue = w.queue[:0]
	w.skip = skip
}

func (w *walker) enqueue(atom, d int) {
	w.visited[atom] = true
	w.depth[atom] = d
	w.queue = append(w.queue, queueItem{atom: atom, depth: d})
}

// run explores from start; it stops early and returns the depth of target
// when target >= 0 is reached, otherwise returns -1 after exhausting the queue.
// order receives every dequeued atom when non-nil.
func (w *walker) run(start, target int, order *[]int) (int, error) {
	w.enqueue(start, 0)
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		if order != nil {
			*order = append(*order, item.atom)
		}
		if item.atom == target {
			return item.depth, nil
		}

		bonds, err := w.mol.IncidentBonds(item.atom)
		if err != nil {
			return -1, errors.Wrapf(err, "bfs: IncidentBonds(%d)", item.atom)
		}
		for _, b := range bonds {
			if b.ID == w.skip || (w.allowed != nil && !w.allowed[b.ID]) {
				continue
			}
			if nbr := b.Other(item.atom); !w.visited[nbr] {
				w.enqueue(nbr, item.depth+1)
			}
		}
	}

	return -1, nil
}

// Fragments returns the connected components of m. Each component lists its
// atoms in BFS order from its lowest-index atom; components are ordered by
// that lowest index.
//
// Complexity: O(V + E).
func Fragments(m *core.Mol) ([][]int, error) {
	if m == nil {
		return nil, ErrMolNil
	}
	w := newWalker(m, nil, -1)
	var out [][]int
	for start := 0; start < m.AtomCount(); start++ {
		if w.visited[start] {
			continue
		}
		// visited persists across starts: each atom joins exactly one fragment.
		w.queue = w.queue[:0]
		var comp []int
		if _, err := w.run(start, -1, &comp); err != nil {
			return nil, err
		}
		out = append(out, comp)
	}

	return out, nil
}

// SmallestRings returns, for every atom, the size of the smallest cycle that
// passes through it (0 for acyclic atoms). ringBonds marks the bonds allowed
// on cycles, typically dfs.RingInfo.Bonds.
//
// The smallest cycle through bond (u,v) is the shortest u→v path avoiding
// that bond, plus one; an atom's value is the minimum over its ring bonds.
//
// Complexity: O(E·(V + E)).
func SmallestRings(m *core.Mol, ringBonds []bool) ([]int, error) {
	if m == nil {
		return nil, ErrMolNil
	}
	if len(ringBonds) != m.BondCount() {
		return nil, errors.Wrapf(ErrMaskLength, "got %d, want %d", len(ringBonds), m.BondCount())
	}

	sizes := make([]int, m.AtomCount())
	w := newWalker(m, ringBonds, -1)
	for _, b := range m.Bonds() {
		if !ringBonds[b.ID] {
			continue
		}
		w.reset(b.ID)
		d, err := w.run(b.From, b.To, nil)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			// A ring bond always closes a cycle; unreachable means the mask lied.
			continue
		}
		cycle := d + 1
		for _, a := range []int{b.From, b.To} {
			if sizes[a] == 0 || cycle < sizes[a] {
				sizes[a] = cycle
			}
		}
	}

	return sizes, nil
}
