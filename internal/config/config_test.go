package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/molsplit/internal/config"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestDecode_Overrides(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(`
method: stratified
label_col: y
frac_train: 0.5
frac_valid: 0.3
frac_test: 0.2
seed: 44
bins: 5
out: folds
`))
	require.NoError(t, err)
	assert.Equal(t, "stratified", cfg.Method)
	assert.Equal(t, "smiles", cfg.SmilesCol) // default survives
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(44), *cfg.Seed)
	assert.Equal(t, 5, cfg.Bins)
	assert.InDelta(t, 0.2, cfg.Fractions().Test, 1e-12)
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"method":        "method: kmeans",
		"task":          "task: ranking",
		"fraction":      "frac_valid: 1.5",
		"sum":           "frac_train: 0.5",
		"bins":          "bins: 1",
		"unknown-field": "colour: blue",
		"out":           `out: ""`,
		"stratified":    "method: stratified",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(doc))
			require.Error(t, err)
			if name != "unknown-field" {
				assert.True(t, errors.Is(err, config.ErrInvalid), "got %v", err)
			}
		})
	}
}

func TestFractions_TwoWay(t *testing.T) {
	cfg := config.Default()
	cfg.TwoWay = true
	cfg.FracTrain, cfg.FracValid = 0.9, 0.1
	assert.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.Fractions().Test)
}

func TestLoad_RoundTrip(t *testing.T) {
	cfg := config.Default()
	seed := int64(7)
	cfg.Seed = &seed
	cfg.Method = "random"
	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "split.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_TwoWayDefaults(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader("method: random\ntwo_way: true\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.9, cfg.Fractions().Train, 1e-12)
	assert.InDelta(t, 0.1, cfg.Fractions().Valid, 1e-12)
	assert.Zero(t, cfg.Fractions().Test)

	// explicit fractions win
	cfg, err = config.Decode(strings.NewReader("two_way: true\nfrac_train: 0.7\nfrac_valid: 0.3\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, cfg.Fractions().Train, 1e-12)
	assert.InDelta(t, 0.3, cfg.Fractions().Valid, 1e-12)

	// Load applies the same defaults
	path := filepath.Join(t.TempDir(), "split.yaml")
	require.NoError(t, os.WriteFile(path, []byte("two_way: true\n"), 0o600))
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, cfg.Fractions().Train, 1e-12)

	// the raw file loader leaves fractions untouched
	raw, keys, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, keys["two_way"])
	assert.False(t, keys["frac_train"])
	assert.Equal(t, config.Default().FracTrain, raw.FracTrain)
}
