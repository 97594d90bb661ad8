package splitter_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/molsplit/dataset"
	"github.com/katalvlaran/molsplit/splitter"
)

// clsDataset: 30 samples, 20 of class 0 then 10 of class 1, plus a feature block.
func clsDataset(t *testing.T) *dataset.TupleDataset {
	t.Helper()
	labels := make(dataset.Ints, 30)
	for i := 20; i < 30; i++ {
		labels[i] = 1
	}

	return withFeatures(t, 30, labels)
}

// regDataset: 100 samples with labels 0..99.
func regDataset(t *testing.T) *dataset.TupleDataset {
	t.Helper()
	labels := lo.Map(lo.Range(100), func(i int, _ int) float64 { return float64(i) })

	return withFeatures(t, 100, dataset.Floats(labels))
}

func withFeatures(t *testing.T, n int, labels dataset.Column) *dataset.TupleDataset {
	t.Helper()
	r := rand.New(rand.NewSource(1))
	fp := make([]float64, n*4)
	for i := range fp {
		fp[i] = r.Float64()
	}
	dense, err := dataset.NewDense(fp, 4)
	require.NoError(t, err)
	ds, err := dataset.NewTupleDataset(dense, labels)
	require.NoError(t, err)

	return ds
}

// requirePartition asserts the folds are disjoint and cover 0..n-1.
func requirePartition(t *testing.T, n int, idx splitter.Indices) {
	t.Helper()
	require.NotNil(t, idx.Train)
	require.NotNil(t, idx.Valid)
	require.NotNil(t, idx.Test)
	all := slices.Concat(idx.Train, idx.Valid, idx.Test)
	slices.Sort(all)
	require.Equal(t, lo.Range(n), all)
}

func countWhere[T comparable](ds *dataset.TupleDataset, col int, want T) int {
	c, err := ds.Column(col)
	if err != nil {
		return -1
	}
	switch v := c.(type) {
	case dataset.Ints:
		return lo.Count([]int64(v), any(want).(int64))
	case dataset.Strings:
		return lo.Count([]string(v), any(want).(string))
	}

	return -1
}

func meanOf(ds *dataset.TupleDataset, col int) float64 {
	c, _ := ds.Column(col)
	v := c.(dataset.Floats)

	return lo.Sum([]float64(v)) / float64(len(v))
}
