package smiles

import "github.com/cockroachdb/errors"

// Sentinel errors returned by Parse. Every error carries the byte offset of
// the offending character as wrapped context; branch on the sentinel with
// errors.Is.
var (
	// ErrEmpty indicates the input holds no atoms.
	ErrEmpty = errors.New("smiles: empty input")

	// ErrSyntax indicates an unexpected character or malformed bracket atom.
	ErrSyntax = errors.New("smiles: syntax error")

	// ErrUnclosedRing indicates a ring-closure digit was opened but never closed.
	ErrUnclosedRing = errors.New("smiles: unclosed ring")

	// ErrUnbalancedBranch indicates mismatched '(' and ')'.
	ErrUnbalancedBranch = errors.New("smiles: unbalanced branch")

	// ErrDanglingBond indicates a bond symbol not followed by an atom or ring closure.
	ErrDanglingBond = errors.New("smiles: dangling bond")
)
