package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sbinet/npyio"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/molsplit/internal/config"
	"github.com/katalvlaran/molsplit/splitter"
)

// summary is written next to the index files.
type summary struct {
	Config  config.SplitConfig `yaml:"config"`
	Samples int                `yaml:"samples"`
	Strata  int                `yaml:"strata"`
	Folds   map[string]int     `yaml:"folds"`
}

// writeFolds stores each fold as an int64 .npy array plus summary.yaml and
// returns the paths written.
func writeFolds(dir string, res *splitter.Result, cfg config.SplitConfig) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "molsplit: mkdir %s", dir)
	}

	folds := []struct {
		name string
		idx  []int
	}{
		{"train", res.Train},
		{"valid", res.Valid},
	}
	if !cfg.TwoWay {
		folds = append(folds, struct {
			name string
			idx  []int
		}{"test", res.Test})
	}

	var written []string
	sum := summary{Config: cfg, Strata: res.Strata, Folds: make(map[string]int, len(folds))}
	for _, f := range folds {
		path := filepath.Join(dir, f.name+".npy")
		if err := writeNpy(path, f.idx); err != nil {
			return nil, err
		}
		written = append(written, path)
		sum.Folds[f.name] = len(f.idx)
		sum.Samples += len(f.idx)
	}

	data, err := yaml.Marshal(sum)
	if err != nil {
		return nil, errors.Wrap(err, "molsplit: summary")
	}
	path := filepath.Join(dir, "summary.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "molsplit: write %s", path)
	}

	return append(written, path), nil
}

func writeNpy(path string, idx []int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "molsplit: create %s", path)
	}
	defer f.Close()

	data := lo.Map(idx, func(i int, _ int) int64 { return int64(i) })
	if err := npyio.Write(f, data); err != nil {
		return errors.Wrapf(err, "molsplit: write %s", path)
	}

	return f.Close()
}
