package splitter

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/molsplit/dataset"
)

// StratifiedSplitter keeps the label distribution of every fold close to the
// dataset's.
type StratifiedSplitter struct{}

// NewStratifiedSplitter returns a StratifiedSplitter.
func NewStratifiedSplitter() *StratifiedSplitter { return &StratifiedSplitter{} }

// strata is the binning chosen once per call.
type strata interface {
	// members lists sample indices per bin, bins in ascending order and
	// indices ascending within a bin.
	members() [][]int
}

// classBins: one bin per distinct label value, classes ascending.
type classBins struct {
	bins [][]int
}

func (c classBins) members() [][]int { return c.bins }

// quantileBins: right-closed quantile buckets over real labels.
type quantileBins struct {
	edges []float64
	bins  [][]int
}

func (q quantileBins) members() [][]int { return q.bins }

// Split implements Splitter.
//
// Algorithm:
//  1. Resolve the label vector and bin it (classes or quantile buckets).
//  2. nValid = ⌊fv·N⌋ and nTest = ⌊ft·N⌋ are apportioned across bins by
//     largest remainder: valid over the bin sizes, then test over what is
//     left in each bin. Fold totals are therefore exact.
//  3. Each bin is permuted with cfg.Rand; its first share goes to valid, the
//     next to test, the rest to train. Bins are visited in ascending order.
//
// Complexity: O(N log N).
func (s *StratifiedSplitter) Split(ds *dataset.TupleDataset, cfg *Config) (*Indices, error) {
	n := ds.Len()

	// 1) Bins.
	st, err := binLabels(ds, cfg)
	if err != nil {
		return nil, err
	}
	bins := st.members()
	sizes := lo.Map(bins, func(b []int, _ int) int { return len(b) })

	// 2) Apportion.
	nValid := quota(cfg.Fractions.Valid, n)
	nTest := min(quota(cfg.Fractions.Test, n), n-nValid)
	validPer := largestRemainder(sizes, nValid)
	rest := make([]int, len(sizes))
	for i := range sizes {
		rest[i] = sizes[i] - validPer[i]
	}
	testPer := largestRemainder(rest, nTest)

	// 3) Slice permuted bins.
	out := newIndices(n)
	out.Strata = len(bins)
	for b, members := range bins {
		perm := append([]int(nil), members...)
		shuffleInts(perm, cfg.Rand)
		v, t := validPer[b], testPer[b]
		out.Valid = append(out.Valid, perm[:v]...)
		out.Test = append(out.Test, perm[v:v+t]...)
		out.Train = append(out.Train, perm[v+t:]...)
	}

	return out, nil
}

// TrainValidTestSplit splits ds stratified on its label column.
func (s *StratifiedSplitter) TrainValidTestSplit(ds *dataset.TupleDataset, opts ...Option) (*Result, error) {
	return TrainValidTestSplit(s, ds, opts...)
}

// TrainValidSplit is the two-fold form of TrainValidTestSplit.
func (s *StratifiedSplitter) TrainValidSplit(ds *dataset.TupleDataset, opts ...Option) (*Result, error) {
	return TrainValidSplit(s, ds, opts...)
}

// largestRemainder splits draws across bins proportionally to counts. Each bin
// gets ⌊count·draws/total⌋; the leftover goes one each to the largest
// remainders, lower bin first on ties. No bin receives more than its count.
func largestRemainder(counts []int, draws int) []int {
	out := make([]int, len(counts))
	total := lo.Sum(counts)
	if total == 0 || draws <= 0 {
		return out
	}
	if draws >= total {
		copy(out, counts)
		return out
	}

	rem := make([]int, len(counts))
	left := draws
	for i, c := range counts {
		out[i] = c * draws / total
		rem[i] = c * draws % total
		left -= out[i]
	}
	order := lo.Range(len(counts))
	sort.SliceStable(order, func(a, b int) bool { return rem[order[a]] > rem[order[b]] })
	for _, i := range order {
		if left == 0 {
			break
		}
		out[i]++
		left--
	}

	return out
}

// labelVector is the resolved label column in one of three concrete forms.
type labelVector struct {
	ints    []int64
	floats  []float64
	strings []string
}

func resolveLabels(ds *dataset.TupleDataset, cfg *Config) (labelVector, error) {
	col := cfg.Labels
	if col == nil {
		var err error
		if col, err = ds.Column(cfg.LabelsColumn); err != nil {
			return labelVector{}, errors.Wrapf(ErrUnsupportedLabels, "labels column %d: %v", cfg.LabelsColumn, err)
		}
	}
	if col.Len() != ds.Len() {
		return labelVector{}, errors.Wrapf(ErrLengthMismatch, "%d labels for %d samples", col.Len(), ds.Len())
	}

	switch c := col.(type) {
	case dataset.Ints:
		return labelVector{ints: c}, nil
	case dataset.Floats:
		return labelVector{floats: c}, nil
	case dataset.Strings:
		return labelVector{strings: c}, nil
	case *dataset.Dense[int64]:
		v, err := c.ColumnAt(cfg.TaskIndex)
		if err != nil {
			return labelVector{}, errors.Wrapf(ErrUnsupportedLabels, "task %d: %v", cfg.TaskIndex, err)
		}
		return labelVector{ints: v}, nil
	case *dataset.Dense[float64]:
		v, err := c.ColumnAt(cfg.TaskIndex)
		if err != nil {
			return labelVector{}, errors.Wrapf(ErrUnsupportedLabels, "task %d: %v", cfg.TaskIndex, err)
		}
		return labelVector{floats: v}, nil
	default:
		return labelVector{}, errors.Wrapf(ErrUnsupportedLabels, "column type %T", col)
	}
}

func binLabels(ds *dataset.TupleDataset, cfg *Config) (strata, error) {
	lv, err := resolveLabels(ds, cfg)
	if err != nil {
		return nil, err
	}

	task := cfg.Task
	if task == TaskAuto {
		switch {
		case lv.ints != nil:
			task = TaskClassification
		case lv.floats != nil:
			task = TaskRegression
		default:
			return nil, errors.Wrap(ErrUnsupportedLabels, "cannot infer task from string labels")
		}
	}

	switch task {
	case TaskClassification:
		switch {
		case lv.ints != nil:
			return classify(lv.ints), nil
		case lv.floats != nil:
			for i, v := range lv.floats {
				if math.IsNaN(v) {
					return nil, errors.Wrapf(ErrUnsupportedLabels, "NaN label at sample %d", i)
				}
			}
			return classify(lv.floats), nil
		default:
			return classify(lv.strings), nil
		}
	case TaskRegression:
		switch {
		case lv.floats != nil:
			return bucketize(lv.floats, cfg.Bins)
		case lv.ints != nil:
			return bucketize(lo.Map(lv.ints, func(v int64, _ int) float64 { return float64(v) }), cfg.Bins)
		default:
			return nil, errors.Wrap(ErrUnsupportedLabels, "regression over string labels")
		}
	default:
		return nil, errors.Wrapf(ErrInvalidTask, "task %d", int(task))
	}
}

// classify groups indices by label value, classes sorted ascending.
func classify[T cmp.Ordered](labels []T) classBins {
	classes := lo.Uniq(labels)
	slices.Sort(classes)
	pos := make(map[T]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	bins := make([][]int, len(classes))
	for i, v := range labels {
		bins[pos[v]] = append(bins[pos[v]], i)
	}

	return classBins{bins: bins}
}

// bucketize assigns labels to nBins quantile buckets. Edges are the
// k/nBins quantiles with linear interpolation; duplicate edges are dropped,
// so fewer buckets may result. Buckets are right-closed and the first also
// holds the minimum. NaN labels are rejected.
func bucketize(labels []float64, nBins int) (quantileBins, error) {
	if len(labels) == 0 {
		return quantileBins{}, nil
	}
	for i, v := range labels {
		if math.IsNaN(v) {
			return quantileBins{}, errors.Wrapf(ErrUnsupportedLabels, "NaN label at sample %d", i)
		}
	}
	sorted := slices.Clone(labels)
	slices.Sort(sorted)

	edges := make([]float64, 0, nBins+1)
	for k := 0; k <= nBins; k++ {
		e := quantile(sorted, float64(k)/float64(nBins))
		if len(edges) == 0 || e != edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	nb := len(edges) - 1
	if nb < 1 {
		// every label equal
		return quantileBins{edges: edges, bins: [][]int{lo.Range(len(labels))}}, nil
	}

	bins := make([][]int, nb)
	upper := edges[1:]
	for i, v := range labels {
		b := sort.SearchFloat64s(upper, v) // first upper edge >= v
		if b >= nb {
			b = nb - 1
		}
		bins[b] = append(bins[b], i)
	}

	return quantileBins{edges: edges, bins: bins}, nil
}

// quantile of an ascending slice with linear interpolation between ranks.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)

	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
