package scaffold

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/molsplit/bfs"
	"github.com/katalvlaran/molsplit/core"
	"github.com/katalvlaran/molsplit/dfs"
	"github.com/katalvlaran/molsplit/smiles"
)

// options holds the knobs of MurckoKey.
type options struct {
	includeChirality bool
	largestFragment  bool
}

// Option customizes MurckoKey.
type Option func(*options)

// WithChirality includes tetrahedral chirality tags in the atom invariants.
func WithChirality(on bool) Option {
	return func(o *options) { o.includeChirality = on }
}

// WithLargestFragment keeps only the largest connected component before
// extracting the framework.
func WithLargestFragment() Option {
	return func(o *options) { o.largestFragment = true }
}

// Key returns the scaffold key of a SMILES string. Its signature matches the
// grouping-key collaborator expected by splitter.ScaffoldSplitter.
func Key(smi string, includeChirality bool) (string, error) {
	return MurckoKey(smi, WithChirality(includeChirality))
}

// MurckoKey parses smi, extracts its framework and returns CanonicalKey of it.
// Parse failures are returned wrapped; match them with errors.Is against the
// smiles sentinels.
func MurckoKey(smi string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m, err := smiles.Parse(smi)
	if err != nil {
		return "", errors.Wrap(err, "scaffold: MurckoKey")
	}
	if o.largestFragment {
		if m, err = LargestFragment(m); err != nil {
			return "", err
		}
	}
	fw, err := Framework(m)
	if err != nil {
		return "", err
	}

	return CanonicalKey(fw, o.includeChirality)
}

// CanonicalKey returns an order-independent key of m: "<formula>:<hash>",
// where formula counts element symbols (lowercase for aromatic atoms) and hash
// is the 64-bit Weisfeiler–Lehman digest in hex. An empty molecule yields "".
//
// Complexity: O(V·(V + E)·log d) in the worst case; refinement stops as soon
// as the number of atom classes stops growing.
func CanonicalKey(m *core.Mol, includeChirality bool) (string, error) {
	if m == nil {
		return "", ErrMolNil
	}
	n := m.AtomCount()
	if n == 0 {
		return "", nil
	}

	info, err := dfs.Rings(m)
	if err != nil {
		return "", errors.Wrap(err, "scaffold: CanonicalKey")
	}
	ringSize, err := bfs.SmallestRings(m, info.Bonds)
	if err != nil {
		return "", errors.Wrap(err, "scaffold: CanonicalKey")
	}

	atoms := m.Atoms()
	labels := make([]uint64, n)
	for i, a := range atoms {
		deg, _ := m.Degree(i)
		labels[i] = atomInvariant(a, info.Atoms[i], ringSize[i], deg, includeChirality)
	}

	// Bond labels do not change between rounds.
	bonds := make([][]*core.Bond, n)
	for i := range atoms {
		bonds[i], _ = m.IncidentBonds(i)
	}
	// An implicit aromatic bond between two rings is a single bond.
	bondLabel := func(b *core.Bond) uint64 {
		order := b.Order
		if order == core.BondAromatic && !info.Bonds[b.ID] {
			order = core.BondSingle
		}
		l := uint64(order) << 1
		if info.Bonds[b.ID] {
			l |= 1
		}
		return l
	}

	// Refinement: label' = H(label, sorted{(bond, neighbour label)}).
	classes := countDistinct(labels)
	buf := make([]byte, 0, 64)
	for round := 0; round < n; round++ {
		next := make([]uint64, n)
		for i := range atoms {
			pairs := make([][2]uint64, 0, len(bonds[i]))
			for _, b := range bonds[i] {
				pairs = append(pairs, [2]uint64{bondLabel(b), labels[b.Other(i)]})
			}
			sort.Slice(pairs, func(x, y int) bool {
				if pairs[x][0] != pairs[y][0] {
					return pairs[x][0] < pairs[y][0]
				}
				return pairs[x][1] < pairs[y][1]
			})
			buf = binary.LittleEndian.AppendUint64(buf[:0], labels[i])
			for _, p := range pairs {
				buf = binary.LittleEndian.AppendUint64(buf, p[0])
				buf = binary.LittleEndian.AppendUint64(buf, p[1])
			}
			next[i] = xxh3.Hash(buf)
		}
		labels = next
		c := countDistinct(labels)
		if c == classes {
			break
		}
		classes = c
	}

	// Graph digest: sorted multiset of final labels plus sizes.
	sorted := append([]uint64(nil), labels...)
	sort.Slice(sorted, func(x, y int) bool { return sorted[x] < sorted[y] })
	buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(n))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.BondCount()))
	for _, l := range sorted {
		buf = binary.LittleEndian.AppendUint64(buf, l)
	}

	return fmt.Sprintf("%s:%016x", formula(atoms), xxh3.Hash(buf)), nil
}

// atomInvariant hashes the per-atom properties that seed refinement.
// Explicit hydrogens count only on aromatic heteroatoms, so [nH] differs from
// n while [cH] equals c and [CH2] equals C.
func atomInvariant(a *core.Atom, inRing bool, ringSize, degree int, chiral bool) uint64 {
	var sb strings.Builder
	sb.WriteString(a.Symbol)
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(a.Aromatic))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(a.Charge))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(a.Isotope))
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(inRing))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(ringSize))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(degree))
	if a.Aromatic && a.Symbol != "C" && a.HCount > 0 {
		sb.WriteString("|H")
		sb.WriteString(strconv.Itoa(a.HCount))
	}
	if chiral {
		sb.WriteByte('|')
		sb.WriteString(a.Chirality)
	}

	return xxh3.HashString(sb.String())
}

func countDistinct(labels []uint64) int {
	seen := make(map[uint64]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}

	return len(seen)
}

// formula renders element counts sorted by symbol, e.g. "C5Nc6".
func formula(atoms []*core.Atom) string {
	counts := make(map[string]int)
	for _, a := range atoms {
		sym := a.Symbol
		if a.Aromatic {
			sym = strings.ToLower(sym)
		}
		counts[sym]++
	}
	syms := make([]string, 0, len(counts))
	for s := range counts {
		syms = append(syms, s)
	}
	sort.Strings(syms)

	var sb strings.Builder
	for _, s := range syms {
		sb.WriteString(s)
		sb.WriteString(strconv.Itoa(counts[s]))
	}

	return sb.String()
}
