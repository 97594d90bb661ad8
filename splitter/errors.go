package splitter

import "github.com/cockroachdb/errors"

var (
	// ErrFractionSum indicates train+valid+test deviates from 1 by more than
	// FractionTolerance.
	ErrFractionSum = errors.New("splitter: fractions must sum to 1")

	// ErrFractionRange indicates a fraction outside [0, 1].
	ErrFractionRange = errors.New("splitter: fraction out of range")

	// ErrNilDataset indicates a nil dataset was passed.
	ErrNilDataset = errors.New("splitter: dataset is nil")

	// ErrLengthMismatch indicates an auxiliary input (SMILES list, labels)
	// whose length differs from the dataset length.
	ErrLengthMismatch = errors.New("splitter: auxiliary input length mismatch")

	// ErrMissingSmiles indicates ScaffoldSplitter ran without WithSmiles.
	ErrMissingSmiles = errors.New("splitter: smiles list required")

	// ErrUnsupportedLabels indicates a label column the stratified splitter
	// cannot bin under the requested task type.
	ErrUnsupportedLabels = errors.New("splitter: unsupported label column")

	// ErrNonEmptyTestFold indicates a two-way split whose variant still
	// produced test samples.
	ErrNonEmptyTestFold = errors.New("splitter: test fold must be empty in a two-way split")

	// ErrInvalidTask indicates a TaskType value outside the known set.
	ErrInvalidTask = errors.New("splitter: invalid task type")
)
