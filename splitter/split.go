package splitter

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/molsplit/dataset"
)

// Splitter computes an index partition of ds. Implementations must return
// three disjoint folds whose union is 0..ds.Len()-1 and must draw randomness
// only from cfg.Rand.
type Splitter interface {
	Split(ds *dataset.TupleDataset, cfg *Config) (*Indices, error)
}

// Indices is one partition of 0..N-1. Folds are never nil.
type Indices struct {
	Train, Valid, Test []int
	// Strata is the number of groups (scaffold) or bins (stratified) the
	// split walked over; 0 for RandomSplitter.
	Strata int
}

// Subsets holds materialized folds.
type Subsets struct {
	Train, Valid, Test *dataset.TupleDataset
}

// Result is what the entry points return. Subsets is nil unless WithSubsets
// or WithConverter was given; in a two-way split Test and Subsets.Test are
// empty and nil respectively.
type Result struct {
	Indices
	Subsets *Subsets
}

func newIndices(n int) *Indices {
	return &Indices{
		Train: make([]int, 0, n),
		Valid: make([]int, 0),
		Test:  make([]int, 0),
	}
}

// TrainValidTestSplit validates the fractions (default 0.8/0.1/0.1), runs s
// and optionally materializes the three folds.
//
// Errors: ErrNilDataset, ErrFractionRange, ErrFractionSum before any work;
// variant errors and converter errors are returned wrapped.
func TrainValidTestSplit(s Splitter, ds *dataset.TupleDataset, opts ...Option) (*Result, error) {
	cfg := NewConfig(opts...)

	return run(s, ds, cfg, "TrainValidTestSplit")
}

// TrainValidSplit is the two-fold form (default 0.9/0.1). It runs the
// three-way core with a zero test fraction; any test fraction set through
// WithFractions is overridden. The result's Test fold is always empty.
//
// Errors: as TrainValidTestSplit, plus ErrNonEmptyTestFold if s ignored the
// zero test fraction.
func TrainValidSplit(s Splitter, ds *dataset.TupleDataset, opts ...Option) (*Result, error) {
	cfg := NewConfig(append([]Option{WithFractions(DefaultTwoWayFracTrain, DefaultTwoWayFracValid, 0)}, opts...)...)
	cfg.Fractions.Test = 0

	res, err := run(s, ds, cfg, "TrainValidSplit")
	if err != nil {
		return nil, err
	}
	if len(res.Test) != 0 {
		return nil, errors.Wrapf(ErrNonEmptyTestFold, "splitter: TrainValidSplit got %d test samples", len(res.Test))
	}
	if res.Subsets != nil {
		res.Subsets.Test = nil
	}

	return res, nil
}

func run(s Splitter, ds *dataset.TupleDataset, cfg *Config, method string) (*Result, error) {
	// 1) Validate inputs before any computation.
	if s == nil || ds == nil {
		return nil, errors.Wrapf(ErrNilDataset, "splitter: %s", method)
	}
	if err := cfg.Fractions.Validate(); err != nil {
		return nil, errors.Wrapf(err, "splitter: %s", method)
	}

	// 2) One generator per call.
	cfg.Rand = callRand(cfg)

	// 3) Index core.
	idx, err := s.Split(ds, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "splitter: %s", method)
	}
	res := &Result{Indices: *idx}

	// 4) Optional materialization.
	if cfg.Subsets {
		if res.Subsets, err = materialize(ds, idx, cfg.Converter); err != nil {
			return nil, errors.Wrapf(err, "splitter: %s", method)
		}
	}

	return res, nil
}

func materialize(ds *dataset.TupleDataset, idx *Indices, conv dataset.Converter) (*Subsets, error) {
	if conv == nil {
		conv = dataset.Take
	}
	var (
		out Subsets
		err error
	)
	if out.Train, err = conv(ds, idx.Train); err != nil {
		return nil, errors.Wrap(err, "convert train")
	}
	if out.Valid, err = conv(ds, idx.Valid); err != nil {
		return nil, errors.Wrap(err, "convert valid")
	}
	if out.Test, err = conv(ds, idx.Test); err != nil {
		return nil, errors.Wrap(err, "convert test")
	}

	return &out, nil
}

// Validate checks every fraction lies in [0, 1] and that they sum to 1
// within FractionTolerance.
func (f Fractions) Validate() error {
	for _, v := range []float64{f.Train, f.Valid, f.Test} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return errors.Wrapf(ErrFractionRange, "got %v", v)
		}
	}
	if sum := f.Train + f.Valid + f.Test; math.Abs(sum-1) > FractionTolerance {
		return errors.Wrapf(ErrFractionSum, "got %v", sum)
	}

	return nil
}

// quota floors frac*n, the target size of a fold.
func quota(frac float64, n int) int {
	return int(math.Floor(frac * float64(n)))
}
