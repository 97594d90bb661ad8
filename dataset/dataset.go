// SPDX-License-Identifier: MIT

package dataset

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// TupleDataset is an ordered collection of N samples stored as columns.
type TupleDataset struct {
	n    int
	cols []Column
}

// NewTupleDataset validates that every column shares one length and wraps them.
// Columns are not copied.
//
// Errors: ErrNoColumns, ErrLengthMismatch.
func NewTupleDataset(cols ...Column) (*TupleDataset, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	n := cols[0].Len()
	for i, c := range cols[1:] {
		if c.Len() != n {
			return nil, errors.Wrapf(ErrLengthMismatch, "column %d has %d samples, column 0 has %d", i+1, c.Len(), n)
		}
	}

	return &TupleDataset{n: n, cols: append([]Column(nil), cols...)}, nil
}

// Len returns N.
func (d *TupleDataset) Len() int { return d.n }

// Arity returns the number of columns.
func (d *TupleDataset) Arity() int { return len(d.cols) }

// Column returns column i; negative i counts from the end (-1 is the last).
func (d *TupleDataset) Column(i int) (Column, error) {
	j := i
	if j < 0 {
		j += len(d.cols)
	}
	if j < 0 || j >= len(d.cols) {
		return nil, errors.Wrapf(ErrOutOfRange, "column %d of %d", i, len(d.cols))
	}

	return d.cols[j], nil
}

// Take returns a new dataset with the samples at idx, in idx order.
func (d *TupleDataset) Take(idx []int) (*TupleDataset, error) {
	cols := make([]Column, len(d.cols))
	for i, c := range d.cols {
		sub, err := c.Take(idx)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: Take column %d", i)
		}
		cols[i] = sub
	}

	return &TupleDataset{n: len(idx), cols: cols}, nil
}

// Converter materializes a sub-dataset from an index list.
type Converter func(ds *TupleDataset, idx []int) (*TupleDataset, error)

// Take is the default Converter.
func Take(ds *TupleDataset, idx []int) (*TupleDataset, error) {
	return ds.Take(idx)
}

// Indices returns 0..Len()-1, handy for building converters and tests.
func (d *TupleDataset) Indices() []int {
	return lo.Range(d.n)
}
