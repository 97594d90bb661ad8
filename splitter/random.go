package splitter

import "github.com/katalvlaran/molsplit/dataset"

// RandomSplitter assigns samples to folds by one uniform permutation.
type RandomSplitter struct{}

// NewRandomSplitter returns a RandomSplitter.
func NewRandomSplitter() *RandomSplitter { return &RandomSplitter{} }

// Split implements Splitter: perm[:⌊ftr·N⌋] is train, the next ⌊fv·N⌋ are
// valid, the remainder is test.
func (s *RandomSplitter) Split(ds *dataset.TupleDataset, cfg *Config) (*Indices, error) {
	n := ds.Len()
	perm := permRange(n, cfg.Rand)
	nTrain := quota(cfg.Fractions.Train, n)
	nValid := quota(cfg.Fractions.Valid, n)
	if cfg.Fractions.Test == 0 || nTrain+nValid > n {
		// two-way, or fractions summing to just above 1
		nValid = n - nTrain
	}

	out := newIndices(n)
	out.Train = append(out.Train, perm[:nTrain]...)
	out.Valid = append(out.Valid, perm[nTrain:nTrain+nValid]...)
	out.Test = append(out.Test, perm[nTrain+nValid:]...)

	return out, nil
}

// TrainValidTestSplit splits ds uniformly at random.
func (s *RandomSplitter) TrainValidTestSplit(ds *dataset.TupleDataset, opts ...Option) (*Result, error) {
	return TrainValidTestSplit(s, ds, opts...)
}

// TrainValidSplit is the two-fold form of TrainValidTestSplit.
func (s *RandomSplitter) TrainValidSplit(ds *dataset.TupleDataset, opts ...Option) (*Result, error) {
	return TrainValidSplit(s, ds, opts...)
}
