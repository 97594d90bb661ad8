// Package core defines the central Mol, Atom, and Bond types,
// and provides thread-safe primitives for building, querying, and cloning
// molecular graphs.
//
// A Mol is an undirected simple graph: atoms are vertices addressed by a dense
// integer index (insertion order), bonds are edges carrying a BondOrder.
// Self-bonds and parallel bonds are rejected.
//
// All core APIs guard storage with a single sync.RWMutex, so a parsed
// molecule can be read from several goroutines at once.
//
// Errors:
//
//	ErrAtomNotFound     - atom index out of range.
//	ErrBondNotFound     - bond ID out of range.
//	ErrLoopNotAllowed   - bond from an atom to itself.
//	ErrDuplicateBond    - the two atoms are already bonded.
//	ErrBadBondOrder     - bond order outside the known set.
package core

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for core molecule operations.
var (
	// ErrAtomNotFound indicates an operation referenced a non-existent atom index.
	ErrAtomNotFound = errors.New("core: atom not found")

	// ErrBondNotFound indicates an operation referenced a non-existent bond ID.
	ErrBondNotFound = errors.New("core: bond not found")

	// ErrLoopNotAllowed indicates a bond from an atom to itself was attempted.
	ErrLoopNotAllowed = errors.New("core: self-bond not allowed")

	// ErrDuplicateBond indicates a second bond between the same pair of atoms.
	ErrDuplicateBond = errors.New("core: atoms already bonded")

	// ErrBadBondOrder indicates a BondOrder value outside the known set.
	ErrBadBondOrder = errors.New("core: invalid bond order")
)

// BondOrder is the multiplicity of a bond.
type BondOrder int

// Known bond orders. The zero value is invalid on purpose so that a missing
// order is caught by AddBond.
const (
	BondSingle BondOrder = iota + 1
	BondDouble
	BondTriple
	BondQuadruple
	BondAromatic
)

// String returns the SMILES bond symbol for o.
func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "-"
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondQuadruple:
		return "$"
	case BondAromatic:
		return ":"
	default:
		return "?"
	}
}

// Valid reports whether o is one of the known bond orders.
func (o BondOrder) Valid() bool {
	return o >= BondSingle && o <= BondAromatic
}

// Atom represents a vertex of the molecular graph.
//
// Index uniquely identifies this Atom within its Mol and equals its position
// in insertion order.
type Atom struct {
	// Index is the dense position of the atom in its Mol.
	Index int

	// Symbol is the element symbol with canonical capitalization ("C", "Cl", "*").
	Symbol string

	// Aromatic is true for atoms written in lowercase SMILES form.
	Aromatic bool

	// Isotope is the mass number; 0 means unspecified.
	Isotope int

	// Charge is the formal charge.
	Charge int

	// HCount is the explicit hydrogen count of a bracket atom, or -1 when implicit.
	HCount int

	// Chirality is the tetrahedral tag as written ("", "@", "@@", "@TH1", ...).
	Chirality string

	// Class is the optional atom-map class of a bracket atom.
	Class int
}

// Bond represents an undirected connection between two atoms.
type Bond struct {
	// ID is the dense position of the bond in its Mol.
	ID int

	// From and To are the atom indices of the endpoints, in the order written.
	From int
	To   int

	// Order is the bond multiplicity.
	Order BondOrder

	// Stereo is the directional marker ('/' or '\\') or 0 when absent.
	Stereo byte
}

// Other returns the endpoint of b opposite to atom i.
func (b *Bond) Other(i int) int {
	if b.From == i {
		return b.To
	}

	return b.From
}

// MolOption configures a Mol before creation.
type MolOption func(m *Mol)

// WithCapacity pre-sizes the atom and bond catalogs.
func WithCapacity(atoms, bonds int) MolOption {
	return func(m *Mol) {
		if atoms > 0 {
			m.atoms = make([]*Atom, 0, atoms)
			m.adj = make([][]int, 0, atoms)
		}
		if bonds > 0 {
			m.bonds = make([]*Bond, 0, bonds)
		}
	}
}

// BondOption configures properties of individual bonds when added.
type BondOption func(*Bond)

// WithStereo attaches a directional marker ('/' or '\\') to the bond.
func WithStereo(mark byte) BondOption {
	return func(b *Bond) { b.Stereo = mark }
}

// Mol is the core in-memory molecular graph.
//
// mu guards atoms, bonds and adj. adj[i] lists the IDs of bonds incident to
// atom i in insertion order.
type Mol struct {
	mu sync.RWMutex

	atoms []*Atom
	bonds []*Bond
	adj   [][]int
}

// NewMol creates an empty Mol with the given options.
// Complexity: O(1)
func NewMol(opts ...MolOption) *Mol {
	m := &Mol{}
	for _, opt := range opts {
		opt(m)
	}

	return m
}
