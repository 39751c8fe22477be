// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

import "container/heap"

// label is a name -> block binding, resolved either eagerly (the block
// already exists) or lazily (a forward reference, bound later by
// AddLabel). target is noBlock until resolved.
type label struct {
	name   string
	target BlockRef
}

// timedSpawn is one entry in the main event heap: a transaction due to
// (re-)enter a block at a given simulated time. Ordering: earlier time is
// better; ties broken by higher transaction priority — the only tie-break
// either spec.md or the original source defines (§9(c)).
type timedSpawn struct {
	spawn spawnData
	time  float64
}

// timedSpawnHeap is a min-heap on (time, priority), mirroring the
// teacher's timerHeap (loop.go) generalized from a single time key to the
// (time, priority) pair the kernel actually needs.
type timedSpawnHeap []timedSpawn

func (h timedSpawnHeap) Len() int { return len(h) }

func (h timedSpawnHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[j].spawn.txn.less(h[i].spawn.txn)
}

func (h timedSpawnHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timedSpawnHeap) Push(x any) {
	*h = append(*h, x.(timedSpawn))
}

func (h *timedSpawnHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Simulation owns every piece of mutable and immutable state for one
// run: the block arena, queues, storages, labels, the event heap, the
// re-activation FIFO, simulated time, and the monotone transaction id
// counter. Nothing in the block graph is freed or mutated during Launch;
// only counters, RNG state, waiting lists and the schedules change.
type Simulation struct {
	blocks   []*block
	labels   []label
	queues   []queueCounter
	storages []*storage
	gates    []BlockRef

	qStats      []queueStat
	storageStat []storageStat

	schedule     timedSpawnHeap
	reactivation []spawnData // FIFO: append to push, pop from front

	time      float64
	endTime   float64
	idCounter uint64

	logger Logger
}

// nextID returns the next monotonically increasing, never-reused
// transaction id.
func (s *Simulation) nextID() uint64 {
	s.idCounter++
	return s.idCounter
}

// scheduleAt pushes data onto the main event heap for the given absolute
// simulated time. Require time >= s.time: the heap must never contain a
// past event.
func (s *Simulation) scheduleAt(time float64, data spawnData) {
	heap.Push(&s.schedule, timedSpawn{spawn: data, time: time})
}

// pushReactivation appends data to the same-tick re-activation FIFO.
func (s *Simulation) pushReactivation(data spawnData) {
	s.reactivation = append(s.reactivation, data)
}

// popReactivation pops the front of the re-activation FIFO.
func (s *Simulation) popReactivation() (spawnData, bool) {
	if len(s.reactivation) == 0 {
		return spawnData{}, false
	}
	d := s.reactivation[0]
	s.reactivation = s.reactivation[1:]
	return d, true
}

// trace emits a Debug-block human-readable line through the configured
// Logger, including the transaction id and the block's message.
func (s *Simulation) trace(txn Transaction, msg string) {
	s.logger.Debugf(s.time, txn.ID, msg)
}

// serve walks the block graph synchronously from spawn.block, passing
// spawn.txn through each block's advance, until a block returns ok=false
// (the transaction suspended or terminated). No intermediate block may
// re-enter the scheduler directly.
func (s *Simulation) serve(spawn spawnData) {
	current := spawn.block
	txn := spawn.txn
	for current != noBlock {
		b := s.blocks[current]
		next, ok := b.advance(s, txn)
		if b.kind == BlockGenerate {
			// advance works on a copy; clear the flag on the walked
			// transaction as well so a later pass through a Generate block
			// does not schedule a second successor.
			txn.justGenerated = false
		}
		if !ok {
			return
		}
		current = next
	}
}

// refreshGates scans gates in declaration order and releases at most one
// waiter from the first gate that has a waiter and whose expression
// currently evaluates true,
// pushing it onto the re-activation FIFO. Returns true iff a waiter was
// released — the settle loop (Launch) keeps calling refreshGates (and
// draining the FIFO) until a full pass yields nothing.
func (s *Simulation) refreshGates() bool {
	for _, ref := range s.gates {
		gate := s.blocks[ref]
		if txn, released := gate.refreshGate(); released {
			s.pushReactivation(spawnData{block: gate.next, txn: txn})
			return true
		}
	}
	return false
}

// observeStats integrates one tick of duration delta into every queue's
// and storage's running statistics, using the occupancy as it stood for
// that whole interval (i.e. before this tick's events are served).
func (s *Simulation) observeStats(delta float64) {
	for i := range s.queues {
		s.qStats[i].observe(s.queues[i].current, delta)
	}
	for i, st := range s.storages {
		s.storageStat[i].observe(st.current, st.capacity, delta)
	}
}

// Launch runs the simulation to completion: the loop terminates when
// simulated time reaches EndTime or the event heap empties, then
// finalizes statistics. EmptyQueue/EmptyStorage violations (§7) are
// fatal and are returned as an error rather than left to crash the
// process — model bugs, not engine bugs, per spec §7's "no retry, no
// recovery" policy.
func (s *Simulation) Launch() (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *EmptyQueueError, *EmptyStorageError:
				err = r.(error)
				s.logger.Errorf("launch aborted: %v", e)
			default:
				panic(r)
			}
		}
	}()

	s.logger.Noticef("launch starting, end_time=%.4f", s.endTime)

	for s.time < s.endTime && len(s.schedule) > 0 {
		top := heap.Pop(&s.schedule).(timedSpawn)
		delta := top.time - s.time
		if delta < 0 {
			panic("gpss: event heap contains a past event")
		}
		s.observeStats(delta)
		s.time = top.time

		s.serve(top.spawn)

		for {
			if data, ok := s.popReactivation(); ok {
				s.serve(data)
				continue
			}
			if s.refreshGates() {
				continue
			}
			break
		}
	}

	s.finalizeStats()
	s.logger.Noticef("launch complete at t=%.4f", s.time)
	return nil
}

// finalizeStats does nothing: QueueSnapshots and StorageSnapshots (and so
// Report) divide the running integrals by s.time on demand.
func (s *Simulation) finalizeStats() {
	// no-op placeholder kept for symmetry with original save/finalize split;
	// no additional per-field finalize pass is needed here.
}

// isQueueEmpty reports whether the queue at index currently has a zero
// count.
func (s *Simulation) isQueueEmpty(index int) bool { return s.queues[index].current == 0 }

// Time returns the simulation's current simulated time (g_time), usable
// from a custom Eval predicate built via Builder.Sim.
func (s *Simulation) Time() float64 { return s.time }

func (s *Simulation) isStorageEmpty(index int) bool     { return s.storages[index].isEmpty() }
func (s *Simulation) isStorageAvailable(index int) bool { return s.storages[index].isAvailable() }
func (s *Simulation) isStorageFull(index int) bool      { return s.storages[index].isFull() }
