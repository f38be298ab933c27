// Package instance - deterministic random instances.
//
// Goals:
//   - Determinism: same (n, m, seed) ⇒ identical instance across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//   - Independent streams: costs and coverage draw from separately derived
//     RNGs, so changing one generation rule does not reshuffle the other.
package instance

import (
	"fmt"
	"math/rand"
)

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// maxGeneratedCost bounds generated integer costs to 1..maxGeneratedCost.
const maxGeneratedCost = 10

const (
	costStream     uint64 = 1
	coverageStream uint64 = 2
)

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64-style finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent deterministic RNG stream from seed.
func deriveRNG(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rngFromSeed(deriveSeed(seed, stream))
}

// Generate returns a pseudo-random instance with n tests and m diseases:
// integer costs uniform in 1..10 and coverage entries that are 1 with
// probability ½. The result is not guaranteed to be feasible (two diseases may
// receive identical columns).
//
// Errors: ErrInvalidInstance if n or m is not positive.
// Complexity: O(n·m).
func Generate(n, m int, seed int64) (*Instance, error) {
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("%w: generate %dx%d", ErrInvalidInstance, n, m)
	}
	var (
		costRNG = deriveRNG(seed, costStream)
		covRNG  = deriveRNG(seed, coverageStream)
		cost    = make([]float64, n)
		cov     = make([][]float64, n)
		k, j    int
	)
	for k = 0; k < n; k++ {
		cost[k] = float64(1 + costRNG.Intn(maxGeneratedCost))
		cov[k] = make([]float64, m)
		for j = 0; j < m; j++ {
			cov[k][j] = float64(covRNG.Intn(2))
		}
	}

	return New(cost, cov)
}
