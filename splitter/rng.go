package splitter

import "math/rand"

// callRand returns the generator for one split call: the configured one, or a
// fresh generator seeded from the global source.
//
// Complexity: O(1).
func callRand(cfg *Config) *rand.Rand {
	if cfg.Rand != nil {
		return cfg.Rand
	}

	return rand.New(rand.NewSource(rand.Int63()))
}

// shuffleInts performs an in-place Fisher–Yates shuffle of a using rng.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleInts(a []int, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// permRange returns a permutation of 0..n-1 drawn from rng.
//
// Complexity: O(n) time, O(n) space.
func permRange(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	shuffleInts(p, rng)

	return p
}

// shuffleGroups permutes the order of groups, not their contents.
func shuffleGroups(groups [][]int, rng *rand.Rand) {
	for i := len(groups) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		groups[i], groups[j] = groups[j], groups[i]
	}
}
