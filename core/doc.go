// Package core is the molecular-graph foundation of molsplit.
//
// What:
//
//   - Mol: an undirected simple graph of Atoms joined by Bonds.
//   - Atom: element symbol, aromaticity, isotope, charge, explicit H count,
//     chirality tag and atom class, as carried by SMILES.
//   - Bond: endpoints, BondOrder and an optional '/' or '\' marker.
//
// Why:
//
//   - Parsers (package smiles) build a Mol; ring perception (dfs, bfs) and
//     scaffold extraction (scaffold) read it. Keeping the representation in
//     one place lets every algorithm share the same deterministic ordering.
//
// Determinism:
//
//   - Atom indices and bond IDs are dense and follow insertion order.
//   - Neighbors(i) follows bond insertion order around i.
//
// Complexity:
//
//   - AddAtom O(1), AddBond O(deg), Neighbors O(deg), Clone/Induced O(V+E).
//
// Errors:
//
//   - ErrAtomNotFound, ErrBondNotFound, ErrLoopNotAllowed, ErrDuplicateBond,
//     ErrBadBondOrder. Match with errors.Is.
package core
