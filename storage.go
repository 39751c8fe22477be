// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

import "container/heap"

// storageWaiter is one entry parked on a Storage's waiting list: the
// transaction that asked to Enter while the storage was full, and the
// Enter block it parked at; once handed a slot it resumes at that block's
// next. seq records the order
// entries were pushed, breaking ties between equal-priority waiters —
// container/heap is not a stable sort, so without it equal-priority
// waiters would pop in arbitrary order.
type storageWaiter struct {
	txn   Transaction
	block BlockRef
	seq   uint64
}

// storageWaiterHeap is a max-heap ordered by transaction priority —
// higher priority pops first, and among equal priorities the
// earliest-pushed waiter pops first (FIFO). Implements
// container/heap.Interface, following the same shape as the teacher's
// timerHeap (loop.go).
type storageWaiterHeap []storageWaiter

func (h storageWaiterHeap) Len() int { return len(h) }
func (h storageWaiterHeap) Less(i, j int) bool {
	if h[i].txn.Priority != h[j].txn.Priority {
		return h[j].txn.less(h[i].txn) // higher priority first: reverse of natural "less"
	}
	return h[i].seq < h[j].seq // equal priority: earlier arrival first
}
func (h storageWaiterHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *storageWaiterHeap) Push(x any) {
	*h = append(*h, x.(storageWaiter))
}

func (h *storageWaiterHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// storage is a finite-capacity resource. Transactions fill a free slot
// directly on Enter; once full, arrivals park on waiters (a max-heap by
// priority) until a Leave hands a freed slot to the highest-priority
// waiter. Departing transactions never traverse waiters.
//
// Invariant: current < capacity implies waiters is empty — a slot is
// never left idle while someone is parked waiting for one.
type storage struct {
	name     string
	capacity int
	current  int
	waiters  storageWaiterHeap
	waitSeq  uint64
}

func newStorage(name string, capacity int) *storage {
	return &storage{name: name, capacity: capacity}
}

func (s *storage) isEmpty() bool     { return s.current == 0 }
func (s *storage) isAvailable() bool { return s.current < s.capacity }
func (s *storage) isFull() bool      { return s.current >= s.capacity }

// enter admits txn if a slot is free, returning true. Otherwise it parks
// (txn, block) on the waiters heap and returns false; the caller (the
// Enter block) must suspend the transaction.
func (s *storage) enter(txn Transaction, block BlockRef) (admitted bool) {
	if s.isAvailable() {
		s.current++
		return true
	}
	heap.Push(&s.waiters, storageWaiter{txn: txn, block: block, seq: s.waitSeq})
	s.waitSeq++
	return false
}

// leave releases one unit of occupancy, or — if any waiter is parked —
// hands the freed slot directly to the highest-priority one, returning the
// waiter to enqueue onto the re-activation FIFO. Occupancy is unchanged
// in the hand-off case: the released slot is reassigned, not freed.
//
// Returns (waiter, true) when a hand-off occurred and the caller must
// push waiter onto the re-activation FIFO, or (zero, false) when the slot
// was simply freed.
func (s *storage) leave() (waiter storageWaiter, handedOff bool) {
	if s.current == 0 {
		panic("gpss: storage.leave called on empty storage")
	}
	if len(s.waiters) > 0 {
		w := heap.Pop(&s.waiters).(storageWaiter)
		return w, true
	}
	s.current--
	return storageWaiter{}, false
}

// storageStat accumulates time-weighted statistics for one storage.
type storageStat struct {
	max          int
	integral     float64
	idleIntegral float64
	fullIntegral float64
}

func (s *storageStat) observe(current, capacity int, delta float64) {
	if current > s.max {
		s.max = current
	}
	s.integral += float64(current) * delta
	if current == 0 {
		s.idleIntegral += delta
	} else if current >= capacity {
		s.fullIntegral += delta
	}
}

func (s *storageStat) finalize(totalTime float64) (mean, idleFraction, fullFraction float64) {
	if totalTime <= 0 {
		return 0, 0, 0
	}
	return s.integral / totalTime, s.idleIntegral / totalTime, s.fullIntegral / totalTime
}
