// Package smiles parses SMILES strings into core.Mol graphs.
//
// Supported grammar: organic-subset atoms (B C N O P S F Cl Br I, aromatic
// b c n o p s, and '*'), bracket atoms with isotope, element, chirality,
// hydrogen count, charge and atom class, bond symbols - = # $ : / \, dot
// disconnection, branches, and ring closures 0-9 / %nn with an optional bond
// symbol on either end.
//
// Parse does not perceive aromaticity, kekulize, or add implicit hydrogens:
// the graph is exactly what the string spells.
package smiles

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/molsplit/core"
)

// bondMark is a bond symbol seen but not yet attached to a second atom.
type bondMark struct {
	set    bool
	order  core.BondOrder
	stereo byte
}

// ringOpen remembers the first half of a ring closure.
type ringOpen struct {
	atom int
	bond bondMark
	pos  int
}

// parser holds the mutable state of one Parse call.
type parser struct {
	src      string
	pos      int
	mol      *core.Mol
	prev     int // last atom on the current chain, -1 at start or after '.'
	pending  bondMark
	branches []int
	rings    map[int]ringOpen
}

// Parse converts s into a molecular graph.
//
// Errors (match with errors.Is):
//   - ErrEmpty: no atoms.
//   - ErrSyntax: unexpected character, malformed bracket atom, conflicting ring bond.
//   - ErrUnclosedRing, ErrUnbalancedBranch, ErrDanglingBond.
//   - core.ErrDuplicateBond / core.ErrLoopNotAllowed from illegal ring closures.
//
// Complexity: O(len(s)).
func Parse(s string) (*core.Mol, error) {
	p := &parser{
		src:   s,
		mol:   core.NewMol(core.WithCapacity(len(s), len(s))),
		prev:  -1,
		rings: make(map[int]ringOpen),
	}
	if err := p.run(); err != nil {
		return nil, errors.Wrapf(err, "parse %q", s)
	}

	return p.mol, nil
}

// run is the main scanner loop.
func (p *parser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		var err error
		switch {
		case c == '(':
			err = p.openBranch()
		case c == ')':
			err = p.closeBranch()
		case c == '.':
			err = p.dot()
		case isBondChar(c):
			err = p.bond(c)
		case c >= '0' && c <= '9', c == '%':
			err = p.ringClosure()
		case c == '[':
			err = p.bracketAtom()
		default:
			err = p.organicAtom()
		}
		if err != nil {
			return err
		}
	}

	// End of input: every construct must be closed.
	if p.pending.set {
		return p.errorf(ErrDanglingBond, "bond at end of input")
	}
	if len(p.branches) > 0 {
		return p.errorf(ErrUnbalancedBranch, "%d unclosed '('", len(p.branches))
	}
	if len(p.rings) > 0 {
		first := -1
		for digit := range p.rings {
			if first < 0 || digit < first {
				first = digit
			}
		}
		return errors.Wrapf(ErrUnclosedRing, "offset %d: ring %d", p.rings[first].pos, first)
	}
	if p.mol.AtomCount() == 0 {
		return ErrEmpty
	}

	return nil
}

func (p *parser) errorf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, "offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *parser) openBranch() error {
	if p.prev < 0 {
		return p.errorf(ErrSyntax, "branch without preceding atom")
	}
	if p.pending.set {
		return p.errorf(ErrDanglingBond, "bond before '('")
	}
	p.branches = append(p.branches, p.prev)
	p.pos++

	return nil
}

func (p *parser) closeBranch() error {
	if len(p.branches) == 0 {
		return p.errorf(ErrUnbalancedBranch, "unexpected ')'")
	}
	if p.pending.set {
		return p.errorf(ErrDanglingBond, "bond before ')'")
	}
	p.prev = p.branches[len(p.branches)-1]
	p.branches = p.branches[:len(p.branches)-1]
	p.pos++

	return nil
}

func (p *parser) dot() error {
	if p.pending.set {
		return p.errorf(ErrDanglingBond, "bond before '.'")
	}
	if len(p.branches) > 0 {
		return p.errorf(ErrSyntax, "'.' inside branch")
	}
	p.prev = -1
	p.pos++

	return nil
}

func isBondChar(c byte) bool {
	switch c {
	case '-', '=', '#', '$', ':', '/', '\\':
		return true
	}

	return false
}

func (p *parser) bond(c byte) error {
	if p.prev < 0 {
		return p.errorf(ErrSyntax, "bond %q without preceding atom", c)
	}
	if p.pending.set {
		return p.errorf(ErrSyntax, "two consecutive bonds")
	}
	mark := bondMark{set: true}
	switch c {
	case '-':
		mark.order = core.BondSingle
	case '=':
		mark.order = core.BondDouble
	case '#':
		mark.order = core.BondTriple
	case '$':
		mark.order = core.BondQuadruple
	case ':':
		mark.order = core.BondAromatic
	case '/', '\\':
		mark.order = core.BondSingle
		mark.stereo = c
	}
	p.pending = mark
	p.pos++

	return nil
}

// resolveOrder picks the order of an implicit or explicit bond between u and v.
func (p *parser) resolveOrder(mark bondMark, u, v int) core.BondOrder {
	if mark.set {
		return mark.order
	}
	au, _ := p.mol.Atom(u)
	av, _ := p.mol.Atom(v)
	if au.Aromatic && av.Aromatic {
		return core.BondAromatic
	}

	return core.BondSingle
}

func stereoOpts(mark bondMark) []core.BondOption {
	if mark.stereo == 0 {
		return nil
	}

	return []core.BondOption{core.WithStereo(mark.stereo)}
}

// addAtom appends a and bonds it to the chain predecessor, if any.
func (p *parser) addAtom(a core.Atom) error {
	idx := p.mol.AddAtom(a)
	if p.prev >= 0 {
		order := p.resolveOrder(p.pending, p.prev, idx)
		if _, err := p.mol.AddBond(p.prev, idx, order, stereoOpts(p.pending)...); err != nil {
			return errors.Wrapf(err, "offset %d", p.pos)
		}
	}
	p.pending = bondMark{}
	p.prev = idx

	return nil
}

func (p *parser) organicAtom() error {
	c := p.src[p.pos]
	a := core.Atom{HCount: -1}
	switch {
	case c == 'C' && p.peek(1) == 'l':
		a.Symbol = "Cl"
		p.pos += 2
	case c == 'B' && p.peek(1) == 'r':
		a.Symbol = "Br"
		p.pos += 2
	case c == 'B' || c == 'C' || c == 'N' || c == 'O' || c == 'P' || c == 'S' || c == 'F' || c == 'I':
		a.Symbol = string(c)
		p.pos++
	case c == '*':
		a.Symbol = "*"
		p.pos++
	default:
		sym, ok := aromaticOrganic[c]
		if !ok {
			return p.errorf(ErrSyntax, "unexpected %q", c)
		}
		a.Symbol = sym
		a.Aromatic = true
		p.pos++
	}

	return p.addAtom(a)
}

// peek returns the byte k positions ahead, or 0 past the end.
func (p *parser) peek(k int) byte {
	if p.pos+k < len(p.src) {
		return p.src[p.pos+k]
	}

	return 0
}

// readInt consumes a run of decimal digits; ok is false when none were present.
func (p *parser) readInt() (int, bool) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, false
	}

	return n, true
}

func (p *parser) ringClosure() error {
	if p.prev < 0 {
		return p.errorf(ErrSyntax, "ring closure without preceding atom")
	}
	start := p.pos
	var digit int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) {
			return p.errorf(ErrSyntax, "truncated %%nn ring closure")
		}
		a, b := p.peek(1), p.peek(2)
		if a < '0' || a > '9' || b < '0' || b > '9' {
			return p.errorf(ErrSyntax, "malformed %%nn ring closure")
		}
		digit = int(a-'0')*10 + int(b-'0')
		p.pos += 3
	} else {
		digit = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[digit]
	if !ok {
		p.rings[digit] = ringOpen{atom: p.prev, bond: p.pending, pos: start}
		p.pending = bondMark{}
		return nil
	}

	// Closing: the bond symbol may sit on either end but must agree.
	mark := open.bond
	if p.pending.set {
		if mark.set && mark.order != p.pending.order {
			return errors.Wrapf(ErrSyntax, "offset %d: conflicting bonds on ring %d", start, digit)
		}
		mark = p.pending
	}
	delete(p.rings, digit)
	order := p.resolveOrder(mark, open.atom, p.prev)
	if _, err := p.mol.AddBond(open.atom, p.prev, order, stereoOpts(mark)...); err != nil {
		return errors.Wrapf(err, "offset %d: ring %d", start, digit)
	}
	p.pending = bondMark{}

	return nil
}

// bracketAtom parses "[" isotope? symbol chiral? hcount? charge? class? "]".
func (p *parser) bracketAtom() error {
	open := p.pos
	p.pos++ // '['
	a := core.Atom{HCount: 0}

	// 1) Isotope
	if n, ok := p.readInt(); ok {
		a.Isotope = n
	}

	// 2) Element symbol
	if err := p.bracketSymbol(&a); err != nil {
		return err
	}

	// 3) Chirality: @, @@, or @XXn
	if p.peek(0) == '@' {
		start := p.pos
		p.pos++
		if p.peek(0) == '@' {
			p.pos++
		} else if isChiralClass(p.peek(0), p.peek(1)) && isDigit(p.peek(2)) {
			p.pos += 2
			_, _ = p.readInt()
		}
		a.Chirality = p.src[start:p.pos]
	}

	// 4) Hydrogen count
	if p.peek(0) == 'H' {
		p.pos++
		a.HCount = 1
		if n, ok := p.readInt(); ok {
			a.HCount = n
		}
	}

	// 5) Charge: +, ++, +2, -, --, -2
	if c := p.peek(0); c == '+' || c == '-' {
		sign := 1
		if c == '-' {
			sign = -1
		}
		p.pos++
		if n, ok := p.readInt(); ok {
			a.Charge = sign * n
		} else {
			a.Charge = sign
			for p.peek(0) == c {
				a.Charge += sign
				p.pos++
			}
		}
	}

	// 6) Atom class
	if p.peek(0) == ':' {
		p.pos++
		n, ok := p.readInt()
		if !ok {
			return p.errorf(ErrSyntax, "atom class without digits")
		}
		a.Class = n
	}

	if p.peek(0) != ']' {
		return errors.Wrapf(ErrSyntax, "offset %d: unterminated bracket atom", open)
	}
	p.pos++

	return p.addAtom(a)
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isChiralClass reports whether ab opens an extended chirality tag (@TH1, @SP2, ...).
func isChiralClass(a, b byte) bool {
	switch string([]byte{a, b}) {
	case "TH", "AL", "SP", "TB", "OH":
		return true
	}

	return false
}
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func (p *parser) bracketSymbol(a *core.Atom) error {
	c := p.peek(0)
	switch {
	case c == '*':
		a.Symbol = "*"
		p.pos++
	case isUpper(c):
		if n := p.peek(1); isLower(n) && isElement(string([]byte{c, n})) {
			a.Symbol = string([]byte{c, n})
			p.pos += 2
		} else if isElement(string(c)) {
			a.Symbol = string(c)
			p.pos++
		} else {
			return p.errorf(ErrSyntax, "unknown element %q", c)
		}
	case isLower(c):
		if n := p.peek(1); isLower(n) {
			if sym, ok := aromaticBracket[string([]byte{c, n})]; ok {
				a.Symbol, a.Aromatic = sym, true
				p.pos += 2
				return nil
			}
		}
		sym, ok := aromaticBracket[string(c)]
		if !ok {
			return p.errorf(ErrSyntax, "unknown aromatic symbol %q", c)
		}
		a.Symbol, a.Aromatic = sym, true
		p.pos++
	default:
		return p.errorf(ErrSyntax, "missing element in bracket atom")
	}

	return nil
}
