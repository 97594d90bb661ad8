// SPDX-License-Identifier: MIT

// Package dataset holds an in-memory tuple-of-columns dataset: N samples,
// each a fixed-arity tuple of per-sample values, stored column-wise.
//
// Column kinds:
//   - Ints, Floats, Strings: one scalar per sample.
//   - Dense[T]: N×k row-major block (fingerprints, multi-task labels).
//
// Every column of a TupleDataset shares the leading length N; the last column
// conventionally holds the labels. Datasets are never mutated by splitters:
// Take and Converter build new columns from an index list.
//
// Complexity quicksheet:
//   - NewTupleDataset: O(columns); Column: O(1); Take: O(len(idx)·k) per column.
package dataset
