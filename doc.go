// Package molsplit splits molecular datasets into train, validation and test
// folds without leaking structure across them.
//
// What is in the box:
//
//	core/       molecular graph: Atom, Bond, Mol with safe accessors
//	smiles/     SMILES parser producing *core.Mol
//	dfs/        ring perception (bridge detection; non-bridges are ring bonds)
//	bfs/        connected fragments, smallest ring through each atom
//	scaffold/   Bemis–Murcko framework and canonical scaffold keys
//	dataset/    tuple-of-columns dataset with index-based Take
//	splitter/   Scaffold, Stratified and Random splitters
//	cmd/molsplit  CSV in, .npy fold indices out
//
// Quick example:
//
//	ds, _ := dataset.NewTupleDataset(dataset.Strings(smiles), dataset.Floats(y))
//	res, err := splitter.NewScaffoldSplitter().TrainValidTestSplit(ds, smiles,
//		splitter.WithSeed(44))
//
// Every split is a pure function of its inputs and seed; the folds are
// disjoint and together cover 0..N-1.
//
//	go install github.com/katalvlaran/molsplit/cmd/molsplit@latest
package molsplit
