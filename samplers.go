// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

import "math/rand/v2"

// Sampler produces one interarrival or service-time draw, in simulated
// time units, each time it is called. It is the Go equivalent of the
// original's RandomGenerator: an engine plus a distribution, erased
// behind a single call operator (dist.h). Concrete distributions are a
// host concern (spec §1's non-goals) — this package only supplies the
// handful of constructors below plus the interface every Generate/Advance
// block actually needs.
type Sampler func() float64

// ConstantSampler always returns value; useful for deterministic tests
// and for blocks that should not introduce variance.
func ConstantSampler(value float64) Sampler {
	return func() float64 { return value }
}

// UniformSampler draws uniformly from [min, max). Panics if max <= min.
func UniformSampler(min, max float64) Sampler {
	if max <= min {
		panic("gpss: UniformSampler requires max > min")
	}
	span := max - min
	return func() float64 { return min + rand.Float64()*span }
}

// ExponentialSampler draws from an exponential distribution with the
// given mean (not rate), mirroring dist.h's exponential_distribution_wrapper.
// Panics if mean <= 0.
func ExponentialSampler(mean float64) Sampler {
	if mean <= 0 {
		panic("gpss: ExponentialSampler requires mean > 0")
	}
	return func() float64 { return rand.ExpFloat64() * mean }
}

// probRNG is the independent random source a Transfer_prob block draws
// its coin-flip from — kept separate from any Sampler so that adding or
// removing timing samplers never perturbs a model's probabilistic
// branching sequence, matching the original's separate minstd_rand engine
// per RandomGenerator instance (dist.h).
type probRNG struct {
	r *rand.Rand
}

// newProbRNG seeds a new probRNG. seed1/seed2 form the 128-bit PCG seed;
// callers wanting reproducible runs should supply fixed values.
func newProbRNG(seed1, seed2 uint64) *probRNG {
	return &probRNG{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// next draws a value uniformly from [0, 1).
func (p *probRNG) next() float64 { return p.r.Float64() }
