// SPDX-License-Identifier: MIT

package dataset

import (
	"github.com/cockroachdb/errors"
)

// Column is one per-sample array of a TupleDataset.
type Column interface {
	// Len returns the leading length N.
	Len() int
	// Take returns a new column holding the samples at idx, in idx order.
	Take(idx []int) (Column, error)
}

// Ints is an integer-valued column (class labels, counts).
type Ints []int64

// Floats is a real-valued column (regression targets, descriptors).
type Floats []float64

// Strings is a text column (SMILES, identifiers).
type Strings []string

// Len implements Column.
func (c Ints) Len() int { return len(c) }

// Len implements Column.
func (c Floats) Len() int { return len(c) }

// Len implements Column.
func (c Strings) Len() int { return len(c) }

// Take implements Column.
func (c Ints) Take(idx []int) (Column, error) {
	out, err := takeScalars(c, idx)
	if err != nil {
		return nil, err
	}

	return Ints(out), nil
}

// Take implements Column.
func (c Floats) Take(idx []int) (Column, error) {
	out, err := takeScalars(c, idx)
	if err != nil {
		return nil, err
	}

	return Floats(out), nil
}

// Take implements Column.
func (c Strings) Take(idx []int) (Column, error) {
	out, err := takeScalars(c, idx)
	if err != nil {
		return nil, err
	}

	return Strings(out), nil
}

func takeScalars[T any](src []T, idx []int) ([]T, error) {
	out := make([]T, len(idx))
	for k, i := range idx {
		if i < 0 || i >= len(src) {
			return nil, errors.Wrapf(ErrOutOfRange, "sample %d of %d", i, len(src))
		}
		out[k] = src[i]
	}

	return out, nil
}

// Element is the value type a Dense column may hold.
type Element interface {
	~int64 | ~float64
}

// Dense is an N×k row-major column: sample i occupies data[i*k : (i+1)*k].
type Dense[T Element] struct {
	rows, cols int
	data       []T
}

// NewDense wraps data as a row-major block of width cols. data is not copied.
//
// Errors: ErrBadShape if cols <= 0 or len(data) is not a multiple of cols.
func NewDense[T Element](data []T, cols int) (*Dense[T], error) {
	if cols <= 0 || len(data)%cols != 0 {
		return nil, errors.Wrapf(ErrBadShape, "len=%d cols=%d", len(data), cols)
	}

	return &Dense[T]{rows: len(data) / cols, cols: cols, data: data}, nil
}

// Len implements Column.
func (d *Dense[T]) Len() int { return d.rows }

// Width returns k, the number of values per sample.
func (d *Dense[T]) Width() int { return d.cols }

// Row returns sample i as a sub-slice (no copy).
func (d *Dense[T]) Row(i int) ([]T, error) {
	if i < 0 || i >= d.rows {
		return nil, errors.Wrapf(ErrOutOfRange, "Dense.Row(%d) of %d", i, d.rows)
	}

	return d.data[i*d.cols : (i+1)*d.cols], nil
}

// At returns the value at (i, j).
func (d *Dense[T]) At(i, j int) (T, error) {
	var zero T
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return zero, errors.Wrapf(ErrOutOfRange, "Dense.At(%d,%d) of %dx%d", i, j, d.rows, d.cols)
	}

	return d.data[i*d.cols+j], nil
}

// ColumnAt copies the j-th value of every sample into a flat slice.
func (d *Dense[T]) ColumnAt(j int) ([]T, error) {
	if j < 0 || j >= d.cols {
		return nil, errors.Wrapf(ErrOutOfRange, "Dense.ColumnAt(%d) of width %d", j, d.cols)
	}
	out := make([]T, d.rows)
	for i := 0; i < d.rows; i++ {
		out[i] = d.data[i*d.cols+j]
	}

	return out, nil
}

// Take implements Column; the result owns a fresh buffer.
func (d *Dense[T]) Take(idx []int) (Column, error) {
	out := make([]T, 0, len(idx)*d.cols)
	for _, i := range idx {
		row, err := d.Row(i)
		if err != nil {
			return nil, err
		}
		out = append(out, row...)
	}

	return &Dense[T]{rows: len(idx), cols: d.cols, data: out}, nil
}
