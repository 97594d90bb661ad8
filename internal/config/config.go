// Package config loads and validates split configuration files.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/molsplit/splitter"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid split configuration")

var validate = validator.New()

// SplitConfig describes one split run. Zero values mean "use the default".
type SplitConfig struct {
	Method    string  `yaml:"method" validate:"oneof=scaffold stratified random"`
	SmilesCol string  `yaml:"smiles_col"`
	LabelCol  string  `yaml:"label_col"`
	Task      string  `yaml:"task" validate:"omitempty,oneof=auto classification regression"`
	FracTrain float64 `yaml:"frac_train" validate:"gte=0,lte=1"`
	FracValid float64 `yaml:"frac_valid" validate:"gte=0,lte=1"`
	FracTest  float64 `yaml:"frac_test" validate:"gte=0,lte=1"`
	Seed      *int64  `yaml:"seed,omitempty"`
	Chirality bool    `yaml:"chirality"`
	Bins      int     `yaml:"bins" validate:"gte=2"`
	TwoWay    bool    `yaml:"two_way"`
	OutDir    string  `yaml:"out" validate:"required"`
	LogLevel  string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogJSON   bool    `yaml:"log_json"`
}

// Default returns the configuration used when no file is given.
func Default() SplitConfig {
	return SplitConfig{
		Method:    "scaffold",
		SmilesCol: "smiles",
		Task:      "auto",
		FracTrain: splitter.DefaultFracTrain,
		FracValid: splitter.DefaultFracValid,
		FracTest:  splitter.DefaultFracTest,
		Bins:      splitter.DefaultBins,
		OutDir:    ".",
		LogLevel:  "info",
	}
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (SplitConfig, error) {
	cfg, keys, err := LoadFile(path)
	if err != nil {
		return SplitConfig{}, err
	}
	cfg.ApplyTwoWayDefaults(keys)
	if err := cfg.Validate(); err != nil {
		return SplitConfig{}, errors.Wrapf(err, "config: %s", path)
	}

	return cfg, nil
}

// LoadFile reads a YAML file over Default without validating it, so callers
// can layer flags first. keys reports which top-level keys the file set.
func LoadFile(path string) (cfg SplitConfig, keys map[string]bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return SplitConfig{}, nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()

	if cfg, keys, err = decode(f); err != nil {
		return SplitConfig{}, nil, errors.Wrapf(err, "config: %s", path)
	}

	return cfg, keys, nil
}

// Decode reads YAML from r over Default and validates the result. Unknown
// keys are rejected.
func Decode(r io.Reader) (SplitConfig, error) {
	cfg, keys, err := decode(r)
	if err != nil {
		return SplitConfig{}, err
	}
	cfg.ApplyTwoWayDefaults(keys)
	if err := cfg.Validate(); err != nil {
		return SplitConfig{}, err
	}

	return cfg, nil
}

func decode(r io.Reader) (SplitConfig, map[string]bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SplitConfig{}, nil, errors.Wrap(err, "config: read")
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SplitConfig{}, nil, errors.Wrap(err, "config: decode")
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return SplitConfig{}, nil, errors.Wrap(err, "config: decode")
	}
	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}

	return cfg, keys, nil
}

// ApplyTwoWayDefaults switches a two-way config to the 0.9/0.1 defaults when
// neither frac_train nor frac_valid was set; set lists the keys given
// explicitly (file keys, flag names mapped to them, or both).
func (c *SplitConfig) ApplyTwoWayDefaults(set map[string]bool) {
	if !c.TwoWay || set["frac_train"] || set["frac_valid"] {
		return
	}
	c.FracTrain, c.FracValid = splitter.DefaultTwoWayFracTrain, splitter.DefaultTwoWayFracValid
}

// Validate checks field constraints and the per-method requirements.
func (c SplitConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(ErrInvalid, "%v", err)
	}
	fr := c.Fractions()
	if err := fr.Validate(); err != nil {
		return errors.Wrapf(ErrInvalid, "%v", err)
	}
	switch c.Method {
	case "scaffold":
		if c.SmilesCol == "" {
			return errors.Wrap(ErrInvalid, "scaffold method needs smiles_col")
		}
	case "stratified":
		if c.LabelCol == "" {
			return errors.Wrap(ErrInvalid, "stratified method needs label_col")
		}
	}

	return nil
}

// Fractions returns the fold fractions; a two-way run drops the test share.
func (c SplitConfig) Fractions() splitter.Fractions {
	if c.TwoWay {
		return splitter.Fractions{Train: c.FracTrain, Valid: c.FracValid}
	}

	return splitter.Fractions{Train: c.FracTrain, Valid: c.FracValid, Test: c.FracTest}
}

// Marshal renders c as YAML.
func (c SplitConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "config: encode")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "config: encode")
	}

	return buf.Bytes(), nil
}
