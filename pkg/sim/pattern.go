// Package sim implements word-parallel AIG simulation:
// deterministic per-node evaluation over 64*W patterns, sequential over
// nodes (topological order) and parallel over the 64 bits of a word.
package sim

import "math/rand/v2"

// Source supplies the simulation words fed to each CI before a Simulate
// call. Three variants are implemented below: all-random, explicit
// caller-supplied words per CI, and append-one-pattern for counterexample
// replay.
type Source interface {
	// Words returns the W-word pattern vector for CI index ci (0-based,
	// in CI insertion order).
	Words(ci int) []uint64
}

// randomSource seeds every CI with independent random words, using
// math/rand/v2's PCG generator for reproducible, seedable sequences.
type randomSource struct {
	w   int
	rng *rand.Rand
}

// NewRandom builds a Source that fills every CI with independent random
// words using the given seed.
func NewRandom(w int, seed uint64) Source {
	return &randomSource{w: w, rng: rand.New(rand.NewPCG(seed, seed^0xA1AE5A1A))}
}

func (s *randomSource) Words(ci int) []uint64 {
	out := make([]uint64, s.w)
	for i := range out {
		out[i] = s.rng.Uint64()
	}
	return out
}

// fixedSource seeds every CI with the caller-supplied words for that CI,
// returned as given; nothing is broadcast, and Simulate zero-fills any
// words a CI's entry does not cover.
type fixedSource struct {
	perCI [][]uint64
}

// NewFixed builds a Source from an explicit per-CI word vector, one entry
// per CI in insertion order. Every entry must have the same length.
func NewFixed(perCI [][]uint64) Source {
	return &fixedSource{perCI: perCI}
}

func (s *fixedSource) Words(ci int) []uint64 {
	if ci >= len(s.perCI) {
		return nil
	}
	return s.perCI[ci]
}

// appendSource replays one fixed bit per CI (a counterexample) as
// single-word (W=1) patterns, for resimulating a refined equivalence
// class after a SAT-sweep counterexample.
type appendSource struct {
	bits []bool // one bit per CI
}

// NewCounterexample builds a single-word Source from a bit assignment,
// one entry per CI in insertion order.
func NewCounterexample(bits []bool) Source {
	return &appendSource{bits: bits}
}

func (s *appendSource) Words(ci int) []uint64 {
	if ci >= len(s.bits) {
		return []uint64{0}
	}
	if s.bits[ci] {
		return []uint64{^uint64(0)}
	}
	return []uint64{0}
}
