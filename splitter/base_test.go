package splitter_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/molsplit/dataset"
	"github.com/katalvlaran/molsplit/splitter"
)

func TestFractions_Validate(t *testing.T) {
	cases := []struct {
		name string
		f    splitter.Fractions
		want error
	}{
		{"defaults", splitter.Fractions{Train: 0.8, Valid: 0.1, Test: 0.1}, nil},
		{"within-tolerance", splitter.Fractions{Train: 0.8000001, Valid: 0.1, Test: 0.1}, nil},
		{"two-way", splitter.Fractions{Train: 0.9, Valid: 0.1}, nil},
		{"sum-low", splitter.Fractions{Train: 0.7, Valid: 0.1, Test: 0.1}, splitter.ErrFractionSum},
		{"sum-high", splitter.Fractions{Train: 0.8, Valid: 0.2, Test: 0.1}, splitter.ErrFractionSum},
		{"negative", splitter.Fractions{Train: 1.1, Valid: -0.1, Test: 0}, splitter.ErrFractionRange},
		{"nan", splitter.Fractions{Train: math.NaN(), Valid: 0.5, Test: 0.5}, splitter.ErrFractionRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.f.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestTrainValidTestSplit_RejectsBeforeWork(t *testing.T) {
	calls := 0
	s := &splitterFunc{fn: func(ds *dataset.TupleDataset, cfg *splitter.Config) (*splitter.Indices, error) {
		calls++
		return &splitter.Indices{}, nil
	}}
	_, err := splitter.TrainValidTestSplit(s, clsDataset(t), splitter.WithFractions(0.5, 0.1, 0.1))
	assert.True(t, errors.Is(err, splitter.ErrFractionSum))
	assert.Zero(t, calls)

	_, err = splitter.TrainValidTestSplit(s, nil)
	assert.True(t, errors.Is(err, splitter.ErrNilDataset))
	assert.Zero(t, calls)
}

func TestTrainValidSplit_NonEmptyTestFold(t *testing.T) {
	leaky := &splitterFunc{fn: func(ds *dataset.TupleDataset, cfg *splitter.Config) (*splitter.Indices, error) {
		return &splitter.Indices{Train: []int{0}, Valid: []int{}, Test: []int{1}}, nil
	}}
	_, err := splitter.TrainValidSplit(leaky, clsDataset(t))
	assert.True(t, errors.Is(err, splitter.ErrNonEmptyTestFold))
}

func TestTrainValidSplit_ForcesZeroTestFraction(t *testing.T) {
	var seen splitter.Fractions
	s := &splitterFunc{fn: func(ds *dataset.TupleDataset, cfg *splitter.Config) (*splitter.Indices, error) {
		seen = cfg.Fractions
		return &splitter.Indices{Train: []int{}, Valid: []int{}, Test: []int{}}, nil
	}}
	_, err := splitter.TrainValidSplit(s, clsDataset(t), splitter.WithFractions(0.7, 0.3, 0.5))
	require.NoError(t, err)
	assert.Equal(t, splitter.Fractions{Train: 0.7, Valid: 0.3, Test: 0}, seen)
}

func TestMaterialize_RoundTrip(t *testing.T) {
	ds := clsDataset(t)
	res, err := splitter.NewStratifiedSplitter().TrainValidTestSplit(ds, splitter.WithSeed(7), splitter.WithSubsets())
	require.NoError(t, err)
	require.NotNil(t, res.Subsets)

	folds := []struct {
		idx []int
		sub *dataset.TupleDataset
	}{
		{res.Train, res.Subsets.Train},
		{res.Valid, res.Subsets.Valid},
		{res.Test, res.Subsets.Test},
	}
	for _, f := range folds {
		assert.Equal(t, len(f.idx), f.sub.Len())
		want, err := ds.Take(f.idx)
		require.NoError(t, err)
		assert.Equal(t, want, f.sub)
	}
}

func TestMaterialize_IndicesOnlyByDefault(t *testing.T) {
	res, err := splitter.NewRandomSplitter().TrainValidTestSplit(clsDataset(t), splitter.WithSeed(1))
	require.NoError(t, err)
	assert.Nil(t, res.Subsets)
}

func TestMaterialize_CustomConverter(t *testing.T) {
	var calls int
	conv := func(ds *dataset.TupleDataset, idx []int) (*dataset.TupleDataset, error) {
		calls++
		return dataset.Take(ds, idx)
	}
	res, err := splitter.NewRandomSplitter().TrainValidSplit(clsDataset(t), splitter.WithSeed(1), splitter.WithConverter(conv))
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 27, res.Subsets.Train.Len())
	assert.Equal(t, 3, res.Subsets.Valid.Len())
	assert.Nil(t, res.Subsets.Test)
}

func TestMaterialize_ConverterError(t *testing.T) {
	boom := errors.New("boom")
	conv := func(*dataset.TupleDataset, []int) (*dataset.TupleDataset, error) { return nil, boom }
	_, err := splitter.NewRandomSplitter().TrainValidTestSplit(clsDataset(t), splitter.WithConverter(conv))
	assert.True(t, errors.Is(err, boom))
}

func TestOptions_PanicOnNil(t *testing.T) {
	assert.Panics(t, func() { splitter.WithRand(nil) })
	assert.Panics(t, func() { splitter.WithConverter(nil) })
	assert.Panics(t, func() { splitter.WithLabels(nil) })
	assert.Panics(t, func() { splitter.WithBins(0) })
}

func TestParseTaskType(t *testing.T) {
	for _, tt := range []splitter.TaskType{splitter.TaskAuto, splitter.TaskClassification, splitter.TaskRegression} {
		got, err := splitter.ParseTaskType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}
	_, err := splitter.ParseTaskType("ranking")
	assert.True(t, errors.Is(err, splitter.ErrInvalidTask))
}

// splitterFunc adapts a function to splitter.Splitter.
type splitterFunc struct {
	fn func(*dataset.TupleDataset, *splitter.Config) (*splitter.Indices, error)
}

func (s *splitterFunc) Split(ds *dataset.TupleDataset, cfg *splitter.Config) (*splitter.Indices, error) {
	return s.fn(ds, cfg)
}
