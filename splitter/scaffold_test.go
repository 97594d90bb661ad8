package splitter_test

import (
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/molsplit/dataset"
	"github.com/katalvlaran/molsplit/scaffold"
	"github.com/katalvlaran/molsplit/smiles"
	"github.com/katalvlaran/molsplit/splitter"
)

// molecules spans a handful of scaffolds with uneven group sizes.
var molecules = []string{
	"CCc1ccccc1", "Oc1ccccc1", "Nc1ccccc1", "c1ccccc1C(=O)O", "Clc1ccccc1",
	"CC1CCCCC1", "OC1CCCCC1", "NC1CCCCC1",
	"CCO", "CCCC", "CC(C)O",
	"c1ccncc1C", "Oc1ccncc1",
	"c1ccc2ccccc2c1", "Cc1ccc2ccccc2c1",
	"C1CC1CC", "C1CC1O",
	"O=C1CCCCC1", "CC1=CC(=O)CCC1",
	"c1ccccc1Cc1ccccc1",
}

func molDataset(t *testing.T, smi []string) *dataset.TupleDataset {
	t.Helper()
	y := make(dataset.Floats, len(smi))
	for i := range y {
		y[i] = float64(i)
	}
	ds, err := dataset.NewTupleDataset(dataset.Strings(smi), y)
	require.NoError(t, err)

	return ds
}

func TestScaffold_PartitionAndAtomicity(t *testing.T) {
	ds := molDataset(t, molecules)
	s := splitter.NewScaffoldSplitter()

	for _, seed := range []int64{0, 1, 44, 99} {
		res, err := s.TrainValidTestSplit(ds, molecules, splitter.WithSeed(seed))
		require.NoError(t, err)
		requirePartition(t, len(molecules), res.Indices)

		n := len(molecules)
		assert.LessOrEqual(t, len(res.Valid), n/10)
		assert.LessOrEqual(t, len(res.Test), n/10)

		fold := make(map[int]int)
		for f, idx := range [][]int{res.Train, res.Valid, res.Test} {
			for _, i := range idx {
				fold[i] = f
			}
		}
		byKey := make(map[string]int)
		for i, smi := range molecules {
			key, err := scaffold.Key(smi, false)
			require.NoError(t, err)
			if f, ok := byKey[key]; ok {
				assert.Equal(t, f, fold[i], "group %q split across folds", key)
			}
			byKey[key] = fold[i]
		}
		assert.Equal(t, len(byKey), res.Strata)
	}
}

func TestScaffold_FixedSeed(t *testing.T) {
	ds := molDataset(t, molecules)
	s := splitter.NewScaffoldSplitter()
	a, err := s.TrainValidTestSplit(ds, molecules, splitter.WithSeed(44))
	require.NoError(t, err)
	b, err := s.TrainValidTestSplit(ds, molecules, splitter.WithSeed(44))
	require.NoError(t, err)
	assert.Equal(t, a.Indices, b.Indices)
}

func TestScaffold_SingletonGroupsHitTargets(t *testing.T) {
	n := 50
	smi := make([]string, n)
	for i := range smi {
		smi[i] = strconv.Itoa(i)
	}
	s := &splitter.ScaffoldSplitter{KeyFunc: func(x string, _ bool) (string, error) { return x, nil }}

	res, err := s.TrainValidTestSplit(molDataset(t, smi), smi, splitter.WithSeed(5),
		splitter.WithFractions(0.6, 0.2, 0.2))
	require.NoError(t, err)
	requirePartition(t, n, res.Indices)
	assert.Len(t, res.Valid, 10)
	assert.Len(t, res.Test, 10)
	assert.Len(t, res.Train, 30)
}

func TestScaffold_OversizedGroupFallsToTrain(t *testing.T) {
	// one group of 8 and two singletons; targets are 1 and 1
	keys := []string{"a", "a", "a", "a", "a", "a", "a", "a", "b", "c"}
	s := &splitter.ScaffoldSplitter{KeyFunc: func(x string, _ bool) (string, error) { return x, nil }}

	for seed := int64(0); seed < 10; seed++ {
		res, err := s.TrainValidTestSplit(molDataset(t, keys), keys, splitter.WithSeed(seed))
		require.NoError(t, err)
		assert.Len(t, res.Valid, 1)
		assert.Len(t, res.Test, 1)
		assert.Len(t, res.Train, 8)
		assert.Equal(t, 3, res.Strata)
	}
}

func TestScaffold_GroupOrderWalkedNotSorted(t *testing.T) {
	keys := []string{"x", "y", "x", "y", "z"}
	s := &splitter.ScaffoldSplitter{KeyFunc: func(x string, _ bool) (string, error) { return x, nil }}

	res, err := s.TrainValidTestSplit(molDataset(t, keys), keys, splitter.WithFractions(1, 0, 0), splitter.WithSeed(2))
	require.NoError(t, err)
	require.Len(t, res.Train, 5)
	// members of one group stay adjacent and in sample order
	pos := make(map[int]int)
	for p, i := range res.Train {
		pos[i] = p
	}
	assert.Equal(t, pos[0]+1, pos[2])
	assert.Equal(t, pos[1]+1, pos[3])
}

func TestScaffold_TwoWay(t *testing.T) {
	ds := molDataset(t, molecules)
	res, err := splitter.NewScaffoldSplitter().TrainValidSplit(ds, molecules, splitter.WithSeed(3))
	require.NoError(t, err)
	requirePartition(t, len(molecules), res.Indices)
	assert.Empty(t, res.Test)
	assert.LessOrEqual(t, len(res.Valid), 2)
}

func TestScaffold_Errors(t *testing.T) {
	ds := molDataset(t, molecules)
	s := splitter.NewScaffoldSplitter()

	_, err := splitter.TrainValidTestSplit(s, ds)
	assert.True(t, errors.Is(err, splitter.ErrMissingSmiles))

	_, err = s.TrainValidTestSplit(ds, molecules[:3])
	assert.True(t, errors.Is(err, splitter.ErrLengthMismatch))

	bad := append([]string(nil), molecules...)
	bad[4] = "C1CC(C"
	_, err = s.TrainValidTestSplit(ds, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, smiles.ErrUnbalancedBranch))
	assert.Contains(t, err.Error(), "sample 4")
}

func TestScaffold_ChiralityPassedThrough(t *testing.T) {
	var got []bool
	s := &splitter.ScaffoldSplitter{KeyFunc: func(x string, chiral bool) (string, error) {
		got = append(got, chiral)
		return x, nil
	}}
	keys := []string{"a", "b"}
	_, err := s.TrainValidTestSplit(molDataset(t, keys), keys, splitter.WithChirality(true))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, got)
}
