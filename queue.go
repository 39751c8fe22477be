// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

// queueCounter is a named integer gauge, not a FIFO: it exists purely for
// the Queue/Depart block pair to count occupancy and for the statistics
// collector to integrate over it.
type queueCounter struct {
	name    string
	current int
}

// queueStat accumulates the time-weighted statistics for one queueCounter
// between simulation start and the current g_time.
type queueStat struct {
	max          int
	integral     float64 // sum of current * delta, across ticks
	idleIntegral float64 // sum of delta where current == 0
}

// observe folds one tick of duration delta at the queue's current value
// into the running statistics. Called once per scheduler tick, between
// the previous g_time and the new one, with the count as it stood for
// that whole interval.
func (s *queueStat) observe(current int, delta float64) {
	if current > s.max {
		s.max = current
	}
	s.integral += float64(current) * delta
	if current == 0 {
		s.idleIntegral += delta
	}
}

// finalize converts the accumulated integrals into a mean and an idle
// fraction over the total elapsed simulated time.
func (s *queueStat) finalize(totalTime float64) (mean, idleFraction float64) {
	if totalTime <= 0 {
		return 0, 0
	}
	return s.integral / totalTime, s.idleIntegral / totalTime
}
