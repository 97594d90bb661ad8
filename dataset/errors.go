// SPDX-License-Identifier: MIT

package dataset

import "github.com/cockroachdb/errors"

var (
	// ErrLengthMismatch indicates columns (or a column and its shape) disagree on N.
	ErrLengthMismatch = errors.New("dataset: column length mismatch")

	// ErrOutOfRange indicates a sample or column index outside the dataset.
	ErrOutOfRange = errors.New("dataset: index out of range")

	// ErrNoColumns indicates a dataset built from zero columns.
	ErrNoColumns = errors.New("dataset: no columns")

	// ErrBadShape indicates a Dense column with non-positive width or a data
	// slice that is not a multiple of the width.
	ErrBadShape = errors.New("dataset: bad dense shape")
)
