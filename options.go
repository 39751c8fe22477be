// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

// simOptions holds configuration resolved from SimOption values by
// NewBuilder.
type simOptions struct {
	logger       Logger
	probSeedSalt uint64
}

// SimOption configures a Simulation when passed to NewBuilder. Mirrors the
// teacher's LoopOption/loopOptionImpl/resolveLoopOptions shape
// (options.go): an interface backed by a closure-holding struct, resolved
// against a defaulted config with nil options skipped.
type SimOption interface {
	applySim(*simOptions)
}

type simOptionImpl struct {
	fn func(*simOptions)
}

func (o *simOptionImpl) applySim(opts *simOptions) { o.fn(opts) }

// WithLogger installs a Logger the Simulation uses for Debug-block traces
// and lifecycle notices. The zero value (no WithLogger) discards
// everything.
func WithLogger(logger Logger) SimOption {
	return &simOptionImpl{func(opts *simOptions) {
		opts.logger = logger
	}}
}

// WithProbSeed fixes the salt mixed into every Transfer_prob block's
// independent RNG (probRNG, samplers.go) alongside that block's own
// per-call seed (add_transfer_prob(alt, p, seed), spec §6.1), for
// reproducible test runs. Without this option the salt is a constant
// default — determinism by default, matching spec §8's emphasis on
// reproducible example runs — rather than drawn from process entropy.
func WithProbSeed(salt uint64) SimOption {
	return &simOptionImpl{func(opts *simOptions) {
		opts.probSeedSalt = salt
	}}
}

// resolveSimOptions applies opts onto a defaulted simOptions, skipping
// nil entries.
func resolveSimOptions(opts []SimOption) *simOptions {
	cfg := &simOptions{
		logger:       defaultLogger,
		probSeedSalt: 2,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.applySim(cfg)
	}
	return cfg
}
