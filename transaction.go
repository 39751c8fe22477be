// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

// Transaction is the mobile entity traversing the block graph. Priority
// ordering is "higher is better": a Transaction with a larger Priority
// outranks one with a smaller Priority in every waiting list and schedule
// this package maintains.
type Transaction struct {
	// Priority ranks this transaction against others at the same
	// simulated time, in a gate's waiting list, or in a storage's waiters.
	Priority uint32

	// ID is assigned once at creation, monotonically, and never reused.
	ID uint64

	// justGenerated is true only for the transaction produced at a
	// Generate block, from creation until the first time it leaves that
	// block; it exists solely so Generate schedules its successor exactly
	// once.
	justGenerated bool
}

// less reports whether t ranks below rhs (rhs has strictly higher
// priority). Equal priority is not "less" either way.
func (t Transaction) less(rhs Transaction) bool {
	return t.Priority < rhs.Priority
}

// spawnData pairs a transaction with the block it is about to (re-)enter.
type spawnData struct {
	block BlockRef
	txn   Transaction
}
