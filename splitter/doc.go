// Package splitter partitions a dataset into train / valid / test folds.
//
// Three variants implement the Splitter interface:
//   - ScaffoldSplitter groups samples by a structural key (the Murcko scaffold
//     of each SMILES) and moves whole groups into folds, so near-duplicate
//     molecules never straddle train and test.
//   - StratifiedSplitter keeps the label distribution in every fold: per class
//     for integer labels, per quantile bucket for real-valued labels.
//   - RandomSplitter is the uniform baseline.
//
// The package-level entry points TrainValidTestSplit and TrainValidSplit
// validate fractions, seed a fresh generator per call, run the variant and
// optionally materialize sub-datasets through a dataset.Converter.
//
// Determinism: passing WithSeed makes every variant reproducible; the same
// dataset, auxiliary inputs, fractions and seed always give identical index
// slices. Without a seed each call draws its seed from math/rand's global
// source.
//
// Errors are sentinels; match them with errors.Is.
package splitter
