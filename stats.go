// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

// QueueSnapshot is a point-in-time, read-only copy of one queue counter's
// statistics, safe to retain after the Simulation that produced it keeps
// running — the teacher's metrics.go follows the same
// snapshot-returns-a-copy shape for its own Metrics type.
type QueueSnapshot struct {
	Name         string
	Current      int
	Max          int
	Mean         float64
	IdleFraction float64
}

// StorageSnapshot is the storage equivalent of QueueSnapshot.
type StorageSnapshot struct {
	Name             string
	Capacity         int
	Current          int
	Max              int
	Mean             float64
	MeanOverCapacity float64
	IdleFraction     float64
	FullFraction     float64
}

// QueueSnapshots returns one QueueSnapshot per declared queue, in
// declaration order, with statistics finalized against the simulation's
// current g_time (s.time) — callable both mid-run and after Launch
// returns.
func (s *Simulation) QueueSnapshots() []QueueSnapshot {
	out := make([]QueueSnapshot, len(s.queues))
	for i := range s.queues {
		mean, idle := s.qStats[i].finalize(s.time)
		out[i] = QueueSnapshot{
			Name:         s.queues[i].name,
			Current:      s.queues[i].current,
			Max:          s.qStats[i].max,
			Mean:         mean,
			IdleFraction: idle,
		}
	}
	return out
}

// StorageSnapshots returns one StorageSnapshot per declared storage, in
// declaration order.
func (s *Simulation) StorageSnapshots() []StorageSnapshot {
	out := make([]StorageSnapshot, len(s.storages))
	for i, st := range s.storages {
		mean, idle, full := s.storageStat[i].finalize(s.time)
		var meanOverCap float64
		if st.capacity > 0 {
			meanOverCap = mean / float64(st.capacity)
		}
		out[i] = StorageSnapshot{
			Name:             st.name,
			Capacity:         st.capacity,
			Current:          st.current,
			Max:              s.storageStat[i].max,
			Mean:             mean,
			MeanOverCapacity: meanOverCap,
			IdleFraction:     idle,
			FullFraction:     full,
		}
	}
	return out
}
