package splitter

import (
	"math/rand"

	"github.com/katalvlaran/molsplit/dataset"
)

// TaskType selects how StratifiedSplitter bins the labels.
type TaskType int

const (
	// TaskAuto infers the task from the label column: integer ⇒
	// classification, real ⇒ regression.
	TaskAuto TaskType = iota
	// TaskClassification bins by distinct label value.
	TaskClassification
	// TaskRegression bins by quantile bucket.
	TaskRegression
)

// String returns the lowercase task name used by the CLI and config files.
func (t TaskType) String() string {
	switch t {
	case TaskAuto:
		return "auto"
	case TaskClassification:
		return "classification"
	case TaskRegression:
		return "regression"
	default:
		return "unknown"
	}
}

// ParseTaskType is the inverse of TaskType.String.
func ParseTaskType(s string) (TaskType, error) {
	switch s {
	case "", "auto":
		return TaskAuto, nil
	case "classification":
		return TaskClassification, nil
	case "regression":
		return TaskRegression, nil
	default:
		return TaskAuto, ErrInvalidTask
	}
}

// Defaults.
const (
	DefaultFracTrain       = 0.8
	DefaultFracValid       = 0.1
	DefaultFracTest        = 0.1
	DefaultTwoWayFracTrain = 0.9
	DefaultTwoWayFracValid = 0.1

	// DefaultBins is the number of quantile buckets for regression labels.
	DefaultBins = 10

	// DefaultLabelsColumn selects the last dataset column.
	DefaultLabelsColumn = -1

	// FractionTolerance bounds |train+valid+test-1|.
	FractionTolerance = 1e-6
)

// Fractions holds the requested share of each fold.
type Fractions struct {
	Train, Valid, Test float64
}

// Config carries every knob of a split call. Variants read the fields they
// need and ignore the rest. Build one with NewConfig; entry points do this
// for you.
type Config struct {
	Fractions Fractions
	// Rand is owned by one call; never shared across goroutines.
	Rand *rand.Rand

	// Scaffold variant.
	Smiles           []string
	IncludeChirality bool

	// Stratified variant.
	Labels       dataset.Column // overrides LabelsColumn when non-nil
	LabelsColumn int
	TaskIndex    int
	Task         TaskType
	Bins         int

	// Materialization.
	Subsets   bool
	Converter dataset.Converter
}

// Option customizes a Config.
type Option func(*Config)

// NewConfig applies opts over the three-way defaults; later options override
// earlier ones. Rand stays nil unless WithSeed or WithRand is given.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		Fractions:    Fractions{Train: DefaultFracTrain, Valid: DefaultFracValid, Test: DefaultFracTest},
		LabelsColumn: DefaultLabelsColumn,
		Task:         TaskAuto,
		Bins:         DefaultBins,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithFractions sets the three fold fractions.
func WithFractions(train, valid, test float64) Option {
	return func(c *Config) {
		c.Fractions = Fractions{Train: train, Valid: valid, Test: test}
	}
}

// WithSeed seeds a fresh generator for the call; identical seeds reproduce
// identical splits.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r for the call. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("splitter: WithRand(nil)")
	}
	return func(c *Config) {
		c.Rand = r
	}
}

// WithSmiles supplies one SMILES string per sample (ScaffoldSplitter).
func WithSmiles(smiles []string) Option {
	return func(c *Config) {
		c.Smiles = smiles
	}
}

// WithChirality includes chirality in scaffold keys.
func WithChirality(on bool) Option {
	return func(c *Config) {
		c.IncludeChirality = on
	}
}

// WithLabelsColumn picks the dataset column holding labels; negative ids
// count from the end.
func WithLabelsColumn(id int) Option {
	return func(c *Config) {
		c.LabelsColumn = id
	}
}

// WithLabels supplies labels directly instead of reading a dataset column.
// Panics on nil.
func WithLabels(col dataset.Column) Option {
	if col == nil {
		panic("splitter: WithLabels(nil)")
	}
	return func(c *Config) {
		c.Labels = col
	}
}

// WithTaskIndex selects the task of a multi-task Dense label column.
func WithTaskIndex(i int) Option {
	return func(c *Config) {
		c.TaskIndex = i
	}
}

// WithTask forces classification or regression binning.
func WithTask(t TaskType) Option {
	return func(c *Config) {
		c.Task = t
	}
}

// WithBins sets the number of regression quantile buckets. Panics if n < 1.
func WithBins(n int) Option {
	if n < 1 {
		panic("splitter: WithBins(n<1)")
	}
	return func(c *Config) {
		c.Bins = n
	}
}

// WithSubsets requests materialized sub-datasets via dataset.Take.
func WithSubsets() Option {
	return func(c *Config) {
		c.Subsets = true
	}
}

// WithConverter requests materialized sub-datasets built by fn. Panics on nil.
func WithConverter(fn dataset.Converter) Option {
	if fn == nil {
		panic("splitter: WithConverter(nil)")
	}
	return func(c *Config) {
		c.Subsets = true
		c.Converter = fn
	}
}
