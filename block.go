// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

import "container/heap"

// BlockRef is a stable, non-owning index into a Simulation's block arena.
// Blocks are never freed or moved once built, so a BlockRef stays valid
// for the life of the Simulation. The zero value refers to the first
// block in the arena; use noBlock (-1) to mean "no successor".
type BlockRef int

// noBlock marks the absence of a next block (a terminal block, or a
// Transfer_imm/Terminate block that clears the builder's hold).
const noBlock BlockRef = -1

// BlockKind tags the variant behavior of a Block. Using one tagged struct
// per the design note in spec §9 ("tagged-variant block... eliminates
// vtables and the shared_ptr-cycle hazard") rather than an interface
// hierarchy per block type.
type BlockKind int

const (
	BlockQueue BlockKind = iota
	BlockDepart
	BlockEnter
	BlockLeave
	BlockGenerate
	BlockAdvance
	BlockGate
	BlockTransferImm
	BlockTransferExpr
	BlockTransferProb
	BlockDebug
	BlockTerminate
)

// gateWaiter is one transaction parked at a Gate, tagged with the order
// it arrived in so equal-priority waiters break ties FIFO (see
// gateWaiterHeap.Less).
type gateWaiter struct {
	txn Transaction
	seq uint64
}

// gateWaiterHeap is a max-heap of transactions parked at a Gate,
// ordered by priority — higher priority pops first — and among equal
// priorities by arrival order (FIFO); container/heap is not a stable
// sort, so the seq tiebreak is required to get FIFO among ties.
type gateWaiterHeap []gateWaiter

func (h gateWaiterHeap) Len() int { return len(h) }
func (h gateWaiterHeap) Less(i, j int) bool {
	if h[i].txn.Priority != h[j].txn.Priority {
		return h[j].txn.less(h[i].txn)
	}
	return h[i].seq < h[j].seq
}
func (h gateWaiterHeap) Swap(i, j int)   { h[i], h[j] = h[j], h[i] }
func (h *gateWaiterHeap) Push(x any)     { *h = append(*h, x.(gateWaiter)) }
func (h *gateWaiterHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func (h gateWaiterHeap) peek() Transaction { return h[0].txn }

// block is one node of the simulation graph: a single outgoing "next"
// edge (noBlock for terminal/transfer_imm blocks) plus variant state
// determined by kind. Blocks are owned by the Simulation's arena;
// self and next are indices into that same arena, never pointers.
type block struct {
	kind BlockKind
	self BlockRef
	next BlockRef

	name string // builder-assigned, for debug traces only

	// Queue / Depart
	queueIndex int

	// Enter / Leave
	storageIndex int

	// Generate
	priority uint32
	sampler  Sampler

	// Advance reuses sampler above.

	// Gate
	expr    LogicNode
	waiters gateWaiterHeap
	waitSeq uint64

	// Transfer_imm / Transfer_expr / Transfer_prob
	altLabel int
	prob     float64
	prng     *probRNG

	// Debug
	msg string
}

// advance runs this block's effect against txn and reports the next block
// to continue to. ok is false when the transaction has suspended (parked
// on a gate/storage waiting list, or scheduled into the future by
// Generate/Advance) or terminated; the caller must stop walking in that
// case. advance never re-enters the scheduler itself — suspension is
// expressed purely by the (noBlock, false) / parked-state return.
func (b *block) advance(sim *Simulation, txn Transaction) (next BlockRef, ok bool) {
	switch b.kind {
	case BlockQueue:
		sim.queues[b.queueIndex].current++
		return b.next, true

	case BlockDepart:
		q := &sim.queues[b.queueIndex]
		if q.current == 0 {
			panic(&EmptyQueueError{Queue: q.name})
		}
		q.current--
		return b.next, true

	case BlockEnter:
		st := sim.storages[b.storageIndex]
		if st.enter(txn, b.self) {
			return b.next, true
		}
		return noBlock, false

	case BlockLeave:
		st := sim.storages[b.storageIndex]
		if st.current == 0 {
			panic(&EmptyStorageError{Storage: st.name})
		}
		if waiter, handedOff := st.leave(); handedOff {
			sim.pushReactivation(spawnData{block: sim.blocks[waiter.block].next, txn: waiter.txn})
		}
		return b.next, true

	case BlockGenerate:
		if txn.justGenerated {
			child := Transaction{Priority: b.priority, ID: sim.nextID(), justGenerated: true}
			sim.scheduleAt(sim.time+b.sampler(), spawnData{block: b.self, txn: child})
			txn.justGenerated = false
		}
		return b.next, true

	case BlockAdvance:
		sim.scheduleAt(sim.time+b.sampler(), spawnData{block: b.next, txn: txn})
		return noBlock, false

	case BlockGate:
		if (len(b.waiters) == 0 || txn.Priority > b.waiters.peek().Priority) && b.expr.Eval() {
			return b.next, true
		}
		heap.Push(&b.waiters, gateWaiter{txn: txn, seq: b.waitSeq})
		b.waitSeq++
		return noBlock, false

	case BlockTransferImm:
		return sim.labels[b.altLabel].target, true

	case BlockTransferExpr:
		if !b.expr.Eval() {
			return b.next, true
		}
		return sim.labels[b.altLabel].target, true

	case BlockTransferProb:
		if b.prng.next() < b.prob {
			return sim.labels[b.altLabel].target, true
		}
		return b.next, true

	case BlockDebug:
		sim.trace(txn, b.msg)
		return b.next, true

	case BlockTerminate:
		return noBlock, false

	default:
		panic("gpss: invalid block kind")
	}
}

// refreshGate pops and returns the highest-priority waiter if the gate's
// expression currently evaluates true and the waiting list is non-empty;
// called only from Simulation.refreshGates, in gate declaration order.
func (b *block) refreshGate() (txn Transaction, released bool) {
	if len(b.waiters) == 0 {
		return Transaction{}, false
	}
	if !b.expr.Eval() {
		return Transaction{}, false
	}
	return heap.Pop(&b.waiters).(gateWaiter).txn, true
}
