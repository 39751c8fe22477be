// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

// Builder assembles a Simulation's block graph incrementally, one call
// per block, chaining each new block after the previously added one
// (hold). Grounded directly on original_source/sim_builder/builder.cpp's
// SimBuilder: a held "current" block pointer plus three name tables
// (labels, queues, storages), built up call by call.
//
// Unlike the original, which throws on the first error, Builder
// accumulates the first error encountered and turns every subsequent
// Add* call into a no-op; callers check the error once, at Build(), the
// same way strings.Builder-style fluent APIs in Go typically report
// construction failures.
type Builder struct {
	sim  *Simulation
	hold BlockRef
	err  error

	labelIndex   map[string]int
	queueIndex   map[string]int
	storageIndex map[string]int

	probSeedSalt uint64
}

// NewBuilder starts a new Builder for a simulation that runs until
// endTime. opts configure ambient concerns (logger, the salt mixed into
// every Transfer_prob block's independent RNG) that must be known before
// any block referencing them is added.
func NewBuilder(endTime float64, opts ...SimOption) *Builder {
	cfg := resolveSimOptions(opts)
	return &Builder{
		sim: &Simulation{
			endTime: endTime,
			logger:  cfg.logger,
		},
		hold:         noBlock,
		labelIndex:   make(map[string]int),
		queueIndex:   make(map[string]int),
		storageIndex: make(map[string]int),
		probSeedSalt: cfg.probSeedSalt,
	}
}

// Sim returns the Simulation under construction, for callers building
// custom Eval predicates beyond the four canned Is* probes (e.g. a gate
// that opens once simulated time crosses a threshold).
func (b *Builder) Sim() *Simulation { return b.sim }

// fail records the first error and short-circuits all subsequent Add*
// calls; it is a no-op once an error is already recorded.
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// addBlock appends blk to the arena, chains it after hold (if any), and
// advances hold to the new block — the linkage rule every block follows;
// Transfer_imm and Terminate then clear hold again.
func (b *Builder) addBlock(blk *block) BlockRef {
	ref := BlockRef(len(b.sim.blocks))
	blk.self = ref
	blk.next = noBlock
	if b.hold != noBlock {
		b.sim.blocks[b.hold].next = ref
	}
	b.sim.blocks = append(b.sim.blocks, blk)
	b.hold = ref
	return ref
}

// resolveLabel returns the index of name in sim.labels, creating an
// unresolved placeholder (target noBlock) if this is the first reference.
func (b *Builder) resolveLabel(name string) int {
	if idx, ok := b.labelIndex[name]; ok {
		return idx
	}
	idx := len(b.sim.labels)
	b.sim.labels = append(b.sim.labels, label{name: name, target: noBlock})
	b.labelIndex[name] = idx
	return idx
}

// AddLabel binds name to the block most recently added (the current
// hold): a Transfer_expr/Transfer_prob/Transfer_imm referencing name will
// re-enter that exact block. Per builder.cpp, a label must follow a real
// block (TERMINATE/Transfer_imm clear hold, so they cannot be labeled)
// and may not be redeclared once resolved.
func (b *Builder) AddLabel(name string) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(&InvalidLabelError{Reason: "empty label"})
	}
	if b.hold == noBlock {
		return b.fail(&InvalidLabelError{Reason: "label must follow a block; TERMINATE/Transfer_imm cannot be labeled"})
	}
	idx := b.resolveLabel(name)
	if b.sim.labels[idx].target != noBlock {
		return b.fail(&BuilderRedeclarationError{Kind: "label", Name: name})
	}
	b.sim.labels[idx].target = b.hold
	return b
}

// AddStorage declares a finite-capacity resource of the given capacity.
func (b *Builder) AddStorage(name string, capacity int) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.storageIndex[name]; ok {
		return b.fail(&BuilderRedeclarationError{Kind: "storage", Name: name})
	}
	b.storageIndex[name] = len(b.sim.storages)
	b.sim.storages = append(b.sim.storages, newStorage(name, capacity))
	return b
}

// queueRef returns the index of name in sim.queues, declaring it
// implicitly on first use — Queue/Depart share one counter namespace
// and, per the original, a queue never needs an explicit declaration
// call of its own.
func (b *Builder) queueRef(name string) int {
	if idx, ok := b.queueIndex[name]; ok {
		return idx
	}
	idx := len(b.sim.queues)
	b.sim.queues = append(b.sim.queues, queueCounter{name: name})
	b.queueIndex[name] = idx
	return idx
}

// AddQueue appends a Queue block against the named counter, declaring the
// counter on first use.
func (b *Builder) AddQueue(name string) *Builder {
	if b.err != nil {
		return b
	}
	b.addBlock(&block{kind: BlockQueue, name: name, queueIndex: b.queueRef(name)})
	return b
}

// AddDepart appends a Depart block against the named counter; the queue
// must already have been referenced by a prior AddQueue.
func (b *Builder) AddDepart(name string) *Builder {
	if b.err != nil {
		return b
	}
	idx, ok := b.queueIndex[name]
	if !ok {
		return b.fail(&UnknownNameError{Kind: "queue", Name: name})
	}
	b.addBlock(&block{kind: BlockDepart, name: name, queueIndex: idx})
	return b
}

// AddEnter appends an Enter block against the named storage, which must
// already have been declared via AddStorage.
func (b *Builder) AddEnter(name string) *Builder {
	if b.err != nil {
		return b
	}
	idx, ok := b.storageIndex[name]
	if !ok {
		return b.fail(&UnknownNameError{Kind: "storage", Name: name})
	}
	b.addBlock(&block{kind: BlockEnter, name: name, storageIndex: idx})
	return b
}

// AddLeave appends a Leave block against the named storage.
func (b *Builder) AddLeave(name string) *Builder {
	if b.err != nil {
		return b
	}
	idx, ok := b.storageIndex[name]
	if !ok {
		return b.fail(&UnknownNameError{Kind: "storage", Name: name})
	}
	b.addBlock(&block{kind: BlockLeave, name: name, storageIndex: idx})
	return b
}

// AddGenerate appends a Generate block and immediately schedules its
// first spawn at sampler()'s first draw — matching builder.cpp's
// add_generate, which computes first_time and enqueues the seed
// transaction at build time rather than waiting for an external trigger.
func (b *Builder) AddGenerate(sampler Sampler, priority uint32) *Builder {
	if b.err != nil {
		return b
	}
	ref := b.addBlock(&block{kind: BlockGenerate, priority: priority, sampler: sampler})
	first := sampler()
	seed := Transaction{Priority: priority, ID: b.sim.nextID(), justGenerated: true}
	b.sim.scheduleAt(first, spawnData{block: ref, txn: seed})
	return b
}

// AddAdvance appends an Advance block: a pure time delay before
// continuing to the next block.
func (b *Builder) AddAdvance(sampler Sampler) *Builder {
	if b.err != nil {
		return b
	}
	b.addBlock(&block{kind: BlockAdvance, sampler: sampler})
	return b
}

// AddGate appends a Gate block admitting a transaction only when expr
// currently evaluates true and either no waiter is parked or the arriving
// transaction's priority is strictly higher than the top waiter's; see
// block.go's BlockGate case and Simulation.refreshGates.
func (b *Builder) AddGate(expr LogicNode) *Builder {
	if b.err != nil {
		return b
	}
	ref := b.addBlock(&block{kind: BlockGate, expr: expr})
	b.sim.gates = append(b.sim.gates, ref)
	return b
}

// AddTransferImm appends an unconditional jump to altLabel, declaring the
// label as an unresolved forward reference if this is its first mention.
// Transfer_imm clears hold: nothing may be chained after it directly, as
// every transaction reaching it leaves along the jump, never along
// "next".
func (b *Builder) AddTransferImm(altLabel string) *Builder {
	if b.err != nil {
		return b
	}
	idx := b.resolveLabel(altLabel)
	b.addBlock(&block{kind: BlockTransferImm, altLabel: idx})
	b.hold = noBlock
	return b
}

// AddTransferExpr appends a conditional jump to altLabel taken when expr
// evaluates true, falling through to next otherwise.
func (b *Builder) AddTransferExpr(altLabel string, expr LogicNode) *Builder {
	if b.err != nil {
		return b
	}
	idx := b.resolveLabel(altLabel)
	b.addBlock(&block{kind: BlockTransferExpr, altLabel: idx, expr: expr})
	return b
}

// AddTransferProb appends a probabilistic jump to altLabel taken with
// probability prob, falling through to next otherwise — the direct Go
// shape of spec §6.1's add_transfer_prob(alt, p, seed). Each call gets
// its own independent RNG stream, seeded from the caller-supplied seed
// plus the builder's salt (WithProbSeed); the stream is fixed by that
// (seed, salt) pair, so two blocks given the same seed under the same salt
// draw the same sequence.
func (b *Builder) AddTransferProb(altLabel string, prob float64, seed uint64) *Builder {
	if b.err != nil {
		return b
	}
	idx := b.resolveLabel(altLabel)
	b.addBlock(&block{kind: BlockTransferProb, altLabel: idx, prob: prob, prng: newProbRNG(seed, b.probSeedSalt)})
	return b
}

// AddDebug appends a Debug block that traces msg (via Simulation.trace)
// every time a transaction passes through it, then falls through to
// next. Unlike the original's add_debug (which clears hold, making Debug
// a dead end), this keeps hold live — spec semantics require Debug to be
// transparent, and treating the original's behavior here as a fall-through
// omission rather than an intended one.
func (b *Builder) AddDebug(msg string) *Builder {
	if b.err != nil {
		return b
	}
	b.addBlock(&block{kind: BlockDebug, msg: msg})
	return b
}

// AddTerminate appends a Terminate block, ending the transaction's walk.
// Terminate clears hold, the same as Transfer_imm.
func (b *Builder) AddTerminate() *Builder {
	if b.err != nil {
		return b
	}
	b.addBlock(&block{kind: BlockTerminate})
	b.hold = noBlock
	return b
}

// Build finalizes the Simulation: resolves every forward-referenced
// label, sizes the statistics slices, and returns the ready-to-run
// Simulation. A dangling hold (the block graph's tail was never closed
// with Transfer_imm/Terminate) is a warning, not an error, matching
// build()'s cerr notice in the original — transactions may simply fall
// off the end of the graph and vanish, which is sometimes intentional.
func (b *Builder) Build() (*Simulation, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, l := range b.sim.labels {
		if l.target == noBlock {
			return nil, &UnresolvedLabelError{Label: l.name}
		}
	}
	if b.hold != noBlock {
		getGlobalLogger().Noticef("gpss: builder: dangling block chain — transactions may fall out of bounds")
	}
	b.sim.qStats = make([]queueStat, len(b.sim.queues))
	b.sim.storageStat = make([]storageStat, len(b.sim.storages))
	return b.sim, nil
}
