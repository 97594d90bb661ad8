package core_test

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/molsplit/core"
)

// ethanol builds C-C-O with explicit indices 0,1,2.
func ethanol(t *testing.T) *core.Mol {
	t.Helper()
	m := core.NewMol()
	c1 := m.AddAtom(core.Atom{Symbol: "C", HCount: -1})
	c2 := m.AddAtom(core.Atom{Symbol: "C", HCount: -1})
	o := m.AddAtom(core.Atom{Symbol: "O", HCount: -1})
	_, err := m.AddBond(c1, c2, core.BondSingle)
	require.NoError(t, err)
	_, err = m.AddBond(c2, o, core.BondSingle)
	require.NoError(t, err)

	return m
}

func TestAddAtom_AssignsDenseIndices(t *testing.T) {
	m := core.NewMol(core.WithCapacity(4, 4))
	for i := 0; i < 4; i++ {
		idx := m.AddAtom(core.Atom{Index: 99, Symbol: "C"})
		assert.Equal(t, i, idx) // Index field is overwritten
	}
	assert.Equal(t, 4, m.AtomCount())
	a, err := m.Atom(3)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Index)
}

func TestAddBond_Errors(t *testing.T) {
	m := ethanol(t)

	_, err := m.AddBond(0, 7, core.BondSingle)
	assert.True(t, errors.Is(err, core.ErrAtomNotFound))

	_, err = m.AddBond(1, 1, core.BondSingle)
	assert.True(t, errors.Is(err, core.ErrLoopNotAllowed))

	_, err = m.AddBond(1, 0, core.BondDouble)
	assert.True(t, errors.Is(err, core.ErrDuplicateBond)) // either direction

	_, err = m.AddBond(0, 2, core.BondOrder(0))
	assert.True(t, errors.Is(err, core.ErrBadBondOrder))

	assert.Equal(t, 2, m.BondCount()) // failed calls leave no trace
}

func TestNeighbors_FollowInsertionOrder(t *testing.T) {
	m := ethanol(t)
	extra := m.AddAtom(core.Atom{Symbol: "N"})
	_, err := m.AddBond(extra, 1, core.BondSingle, core.WithStereo('/'))
	require.NoError(t, err)

	nbrs, err := m.Neighbors(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, nbrs)

	deg, err := m.Degree(1)
	require.NoError(t, err)
	assert.Equal(t, 3, deg)

	b, ok := m.BondBetween(1, 3)
	require.True(t, ok)
	assert.Equal(t, byte('/'), b.Stereo)
	assert.Equal(t, 3, b.Other(1))
	assert.Equal(t, 1, b.Other(3))

	_, err = m.Neighbors(-1)
	assert.True(t, errors.Is(err, core.ErrAtomNotFound))
}

func TestInduced_RenumbersAndDropsBonds(t *testing.T) {
	m := ethanol(t)

	sub, mapping, err := m.Induced([]bool{false, true, true})
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 0, 1}, mapping)
	assert.Equal(t, 2, sub.AtomCount())
	assert.Equal(t, 1, sub.BondCount())

	b, err := sub.Bond(0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.From)
	assert.Equal(t, 1, b.To)

	a, err := sub.Atom(1)
	require.NoError(t, err)
	assert.Equal(t, "O", a.Symbol)

	_, _, err = m.Induced([]bool{true})
	assert.True(t, errors.Is(err, core.ErrAtomNotFound))
}

func TestClone_IsDeep(t *testing.T) {
	m := ethanol(t)
	c := m.Clone()

	a, err := c.Atom(0)
	require.NoError(t, err)
	a.Symbol = "N"

	orig, err := m.Atom(0)
	require.NoError(t, err)
	assert.Equal(t, "C", orig.Symbol) // no pointer aliasing

	_, err = c.AddBond(0, 2, core.BondSingle)
	require.NoError(t, err)
	assert.Equal(t, 2, m.BondCount())
	assert.Equal(t, 3, c.BondCount())
}

func TestConcurrentReads(t *testing.T) {
	m := ethanol(t)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = m.Neighbors(i % 3)
				_ = m.Bonds()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, m.AtomCount())
}

func TestBondOrder_String(t *testing.T) {
	assert.Equal(t, "=", core.BondDouble.String())
	assert.Equal(t, ":", core.BondAromatic.String())
	assert.Equal(t, "?", core.BondOrder(42).String())
	assert.False(t, core.BondOrder(0).Valid())
}
