package splitter

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/molsplit/dataset"
	"github.com/katalvlaran/molsplit/scaffold"
)

// KeyFunc maps one SMILES string to its grouping key.
type KeyFunc func(smiles string, includeChirality bool) (string, error)

// ScaffoldSplitter assigns whole scaffold groups to folds.
type ScaffoldSplitter struct {
	// KeyFunc defaults to scaffold.Key.
	KeyFunc KeyFunc
}

// NewScaffoldSplitter returns a splitter grouping by Murcko scaffold.
func NewScaffoldSplitter() *ScaffoldSplitter {
	return &ScaffoldSplitter{KeyFunc: scaffold.Key}
}

// Split implements Splitter.
//
// Algorithm:
//  1. Key every sample; groups are created in order of first appearance.
//  2. Permute the order of groups with cfg.Rand.
//  3. Targets: nValid = ⌊fv·N⌋, nTest = ⌊ft·N⌋.
//  4. Walk the groups: valid if the whole group fits, else test if it fits,
//     else train. No backtracking; valid and test may end under target but
//     never over it.
//
// Complexity: O(N·K) for keying (K = cost of one key) plus O(N) for the walk.
func (s *ScaffoldSplitter) Split(ds *dataset.TupleDataset, cfg *Config) (*Indices, error) {
	n := ds.Len()
	if cfg.Smiles == nil {
		return nil, ErrMissingSmiles
	}
	if len(cfg.Smiles) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d smiles for %d samples", len(cfg.Smiles), n)
	}
	keyFn := s.KeyFunc
	if keyFn == nil {
		keyFn = scaffold.Key
	}

	// 1) Group by key, first appearance order.
	pos := make(map[string]int)
	var groups [][]int
	for i, smi := range cfg.Smiles {
		key, err := keyFn(smi, cfg.IncludeChirality)
		if err != nil {
			return nil, errors.Wrapf(err, "scaffold key of sample %d", i)
		}
		g, ok := pos[key]
		if !ok {
			g = len(groups)
			pos[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}

	// 2) Permute group order.
	shuffleGroups(groups, cfg.Rand)

	// 3) Targets.
	nValid := quota(cfg.Fractions.Valid, n)
	nTest := quota(cfg.Fractions.Test, n)

	// 4) Greedy first fit.
	out := newIndices(n)
	out.Strata = len(groups)
	for _, g := range groups {
		switch {
		case len(out.Valid)+len(g) <= nValid:
			out.Valid = append(out.Valid, g...)
		case len(out.Test)+len(g) <= nTest:
			out.Test = append(out.Test, g...)
		default:
			out.Train = append(out.Train, g...)
		}
	}

	return out, nil
}

// TrainValidTestSplit splits ds grouped by the scaffolds of smiles.
func (s *ScaffoldSplitter) TrainValidTestSplit(ds *dataset.TupleDataset, smiles []string, opts ...Option) (*Result, error) {
	return TrainValidTestSplit(s, ds, append([]Option{WithSmiles(smiles)}, opts...)...)
}

// TrainValidSplit is the two-fold form of TrainValidTestSplit.
func (s *ScaffoldSplitter) TrainValidSplit(ds *dataset.TupleDataset, smiles []string, opts ...Option) (*Result, error) {
	return TrainValidSplit(s, ds, append([]Option{WithSmiles(smiles)}, opts...)...)
}
