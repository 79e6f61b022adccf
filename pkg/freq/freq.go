// Package freq implements the randomized frequency-assignment scheme that
// drives the visual weight contrast in rendered word clouds.
//
// Each assignment partitions a shuffled copy of the word list into three
// tiers: one or two "big" words (weight 9-10), at most one "medium" word
// (weight 5-6), and the remaining "small" words (weight 1-2 each). The
// scheme is randomized by design; callers needing reproducible output inject
// a seeded source.
package freq

import (
	"math/rand/v2"
)

// DefaultVariations is the number of independent weight mappings generated
// for display.
const DefaultVariations = 5

// Weight ranges per tier (inclusive).
const (
	bigMin    = 9
	bigMax    = 10
	mediumMin = 5
	mediumMax = 6
	smallMin  = 1
	smallMax  = 2
)

// NewRand returns a seeded PCG source. A given seed always yields the same
// assignment sequence, which the pipeline relies on for artifact caching.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Assign produces a weight for each word using the three-tier scheme:
//
//  1. Shuffle the words uniformly at random.
//  2. Pick numBig uniformly from {1, 2}; the first numBig shuffled words
//     are the big tier, each weighted uniformly in [9, 10].
//  3. The next word (if any) is the medium tier, weighted in [5, 6].
//  4. All remaining words are the small tier, each weighted independently
//     in [1, 2].
//
// Short lists truncate the tiers without error: one word yields only a big
// entry. An empty list returns an empty mapping. Duplicate words collapse
// into a single key. A nil rng falls back to the shared global source.
func Assign(rng *rand.Rand, words []string) map[string]int {
	weights := make(map[string]int, len(words))
	if len(words) == 0 {
		return weights
	}

	shuffled := make([]string, len(words))
	copy(shuffled, words)
	shuffle(rng, shuffled)

	numBig := 1 + intN(rng, 2)
	if numBig > len(shuffled) {
		numBig = len(shuffled)
	}
	for _, w := range shuffled[:numBig] {
		weights[w] = bigMin + intN(rng, bigMax-bigMin+1)
	}
	rest := shuffled[numBig:]
	if len(rest) > 0 {
		weights[rest[0]] = mediumMin + intN(rng, mediumMax-mediumMin+1)
		rest = rest[1:]
	}
	for _, w := range rest {
		weights[w] = smallMin + intN(rng, smallMax-smallMin+1)
	}
	return weights
}

// Variations invokes Assign count times and returns the independent
// mappings. Two variations may coincide by chance; no correlation is
// enforced between them.
func Variations(rng *rand.Rand, words []string, count int) []map[string]int {
	if count <= 0 {
		count = DefaultVariations
	}
	out := make([]map[string]int, count)
	for i := range out {
		out[i] = Assign(rng, words)
	}
	return out
}

func shuffle(rng *rand.Rand, s []string) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
