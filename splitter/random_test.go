package splitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/molsplit/splitter"
)

func TestRandom_Sizes(t *testing.T) {
	ds := regDataset(t)
	s := splitter.NewRandomSplitter()

	res, err := s.TrainValidTestSplit(ds, splitter.WithSeed(1))
	require.NoError(t, err)
	requirePartition(t, 100, res.Indices)
	assert.Len(t, res.Train, 80)
	assert.Len(t, res.Valid, 10)
	assert.Len(t, res.Test, 10)
	assert.Zero(t, res.Strata)

	res, err = s.TrainValidTestSplit(ds, splitter.WithFractions(0.34, 0.33, 0.33))
	require.NoError(t, err)
	requirePartition(t, 100, res.Indices)
	assert.Len(t, res.Train, 34)
	assert.Len(t, res.Valid, 33)
	assert.Len(t, res.Test, 33)
}

func TestRandom_TwoWayCoversAll(t *testing.T) {
	// 67 + 32 floors would leave one sample for test without the two-way rule
	res, err := splitter.NewRandomSplitter().TrainValidSplit(regDataset(t), splitter.WithFractions(0.675, 0.325, 0))
	require.NoError(t, err)
	requirePartition(t, 100, res.Indices)
	assert.Empty(t, res.Test)
	assert.Len(t, res.Train, 67)
	assert.Len(t, res.Valid, 33)
}

func TestRandom_FixedSeed(t *testing.T) {
	ds := clsDataset(t)
	s := splitter.NewRandomSplitter()
	a, err := s.TrainValidTestSplit(ds, splitter.WithSeed(44))
	require.NoError(t, err)
	b, err := s.TrainValidTestSplit(ds, splitter.WithSeed(44))
	require.NoError(t, err)
	assert.Equal(t, a.Indices, b.Indices)

	c, err := s.TrainValidTestSplit(ds, splitter.WithSeed(45))
	require.NoError(t, err)
	assert.NotEqual(t, a.Train, c.Train)
}
