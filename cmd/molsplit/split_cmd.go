package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/molsplit/dataset"
	"github.com/katalvlaran/molsplit/internal/config"
	"github.com/katalvlaran/molsplit/splitter"
)

func newSplitCmd(a *app) *cobra.Command {
	var (
		cfgPath string
		flags   = config.Default()
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "split <data.csv>",
		Short: "Split a CSV dataset and write train/valid/test index arrays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, cfgPath, flags, seed)
			if err != nil {
				return err
			}
			return runSplit(a.log, args[0], cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "YAML split configuration; flags override it")
	f.StringVar(&flags.Method, "method", flags.Method, "scaffold, stratified or random")
	f.StringVar(&flags.SmilesCol, "smiles-col", flags.SmilesCol, "CSV column holding SMILES")
	f.StringVar(&flags.LabelCol, "label-col", flags.LabelCol, "CSV column holding labels")
	f.StringVar(&flags.Task, "task", flags.Task, "auto, classification or regression")
	f.Float64Var(&flags.FracTrain, "frac-train", flags.FracTrain, "train fraction")
	f.Float64Var(&flags.FracValid, "frac-valid", flags.FracValid, "valid fraction")
	f.Float64Var(&flags.FracTest, "frac-test", flags.FracTest, "test fraction")
	f.Int64Var(&seed, "seed", 0, "random seed; omit for a nondeterministic split")
	f.BoolVar(&flags.Chirality, "chirality", false, "include chirality in scaffold keys")
	f.IntVar(&flags.Bins, "bins", flags.Bins, "quantile buckets for regression labels")
	f.StringVar(&flags.OutDir, "out", flags.OutDir, "output directory")
	f.BoolVar(&flags.TwoWay, "two-way", false, "train/valid only")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file (or the
// defaults) and validates the result.
func resolveConfig(cmd *cobra.Command, path string, flags config.SplitConfig, seed int64) (config.SplitConfig, error) {
	cfg := config.Default()
	keys := map[string]bool{}
	if path != "" {
		var err error
		if cfg, keys, err = config.LoadFile(path); err != nil {
			return config.SplitConfig{}, err
		}
	}

	set := cmd.Flags().Changed
	if set("method") {
		cfg.Method = flags.Method
	}
	if set("smiles-col") {
		cfg.SmilesCol = flags.SmilesCol
	}
	if set("label-col") {
		cfg.LabelCol = flags.LabelCol
	}
	if set("task") {
		cfg.Task = flags.Task
	}
	if set("frac-train") {
		cfg.FracTrain = flags.FracTrain
	}
	if set("frac-valid") {
		cfg.FracValid = flags.FracValid
	}
	if set("frac-test") {
		cfg.FracTest = flags.FracTest
	}
	if set("seed") {
		cfg.Seed = &seed
	}
	if set("chirality") {
		cfg.Chirality = flags.Chirality
	}
	if set("bins") {
		cfg.Bins = flags.Bins
	}
	if set("out") {
		cfg.OutDir = flags.OutDir
	}
	if set("two-way") {
		cfg.TwoWay = flags.TwoWay
	}
	keys["frac_train"] = keys["frac_train"] || set("frac-train")
	keys["frac_valid"] = keys["frac_valid"] || set("frac-valid")
	cfg.ApplyTwoWayDefaults(keys)

	if err := cfg.Validate(); err != nil {
		return config.SplitConfig{}, err
	}

	return cfg, nil
}

func runSplit(log *zap.Logger, path string, cfg config.SplitConfig) error {
	// 1) Input.
	tbl, err := readTable(path)
	if err != nil {
		return err
	}
	ds, smi, err := buildDataset(tbl, cfg)
	if err != nil {
		return err
	}
	log.Info("loaded dataset",
		zap.String("path", path),
		zap.Int("samples", ds.Len()),
		zap.Int("columns", ds.Arity()))

	// 2) Splitter and options.
	s, opts, err := splitterFor(cfg, smi)
	if err != nil {
		return err
	}
	log.Debug("splitting",
		zap.String("method", cfg.Method),
		zap.Float64("frac_train", cfg.FracTrain),
		zap.Float64("frac_valid", cfg.FracValid),
		zap.Float64("frac_test", cfg.Fractions().Test),
		zap.Bool("two_way", cfg.TwoWay))

	var res *splitter.Result
	if cfg.TwoWay {
		res, err = splitter.TrainValidSplit(s, ds, opts...)
	} else {
		res, err = splitter.TrainValidTestSplit(s, ds, opts...)
	}
	if err != nil {
		return errors.Wrapf(err, "molsplit: %s split", cfg.Method)
	}
	log.Info("split done",
		zap.Int("train", len(res.Train)),
		zap.Int("valid", len(res.Valid)),
		zap.Int("test", len(res.Test)),
		zap.Int("strata", res.Strata))

	// 3) Output.
	files, err := writeFolds(cfg.OutDir, res, cfg)
	if err != nil {
		return err
	}
	log.Info("wrote folds", zap.Strings("files", files))

	return nil
}

// buildDataset turns the CSV into a TupleDataset: SMILES first when present,
// labels last when present, a row-number column when neither is.
func buildDataset(tbl *table, cfg config.SplitConfig) (*dataset.TupleDataset, []string, error) {
	var (
		cols []dataset.Column
		smi  []string
	)
	if cfg.Method == "scaffold" {
		raw, err := tbl.column(cfg.SmilesCol)
		if err != nil {
			return nil, nil, err
		}
		smi = raw
		cols = append(cols, dataset.Strings(raw))
	}
	if cfg.LabelCol != "" {
		raw, err := tbl.column(cfg.LabelCol)
		if err != nil {
			return nil, nil, err
		}
		cols = append(cols, labelColumn(raw))
	}
	if len(cols) == 0 {
		rows := make(dataset.Ints, tbl.rows)
		for i := range rows {
			rows[i] = int64(i)
		}
		cols = append(cols, rows)
	}

	ds, err := dataset.NewTupleDataset(cols...)
	if err != nil {
		return nil, nil, err
	}

	return ds, smi, nil
}

func splitterFor(cfg config.SplitConfig, smi []string) (splitter.Splitter, []splitter.Option, error) {
	fr := cfg.Fractions()
	opts := []splitter.Option{splitter.WithFractions(fr.Train, fr.Valid, fr.Test)}
	if cfg.Seed != nil {
		opts = append(opts, splitter.WithSeed(*cfg.Seed))
	}

	switch cfg.Method {
	case "scaffold":
		opts = append(opts, splitter.WithSmiles(smi), splitter.WithChirality(cfg.Chirality))
		return splitter.NewScaffoldSplitter(), opts, nil
	case "stratified":
		task, err := splitter.ParseTaskType(cfg.Task)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, splitter.WithTask(task), splitter.WithBins(cfg.Bins))
		return splitter.NewStratifiedSplitter(), opts, nil
	case "random":
		return splitter.NewRandomSplitter(), opts, nil
	default:
		return nil, nil, errors.Newf("molsplit: unknown method %q", cfg.Method)
	}
}
