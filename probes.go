// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

// The Is* probes below build the closures consumed by Eval() when
// constructing Gate/Transfer_expr predicates; they are the Go shape of
// builder.cpp's is_q_empty/is_storage_empty/is_storage_avail/
// is_storage_full, which each capture a raw Simulation pointer and an
// index. Unlike the original — whose unordered_map silently yields index
// 0 for an unknown name — these return an error for an undeclared name
// rather than quietly probing the wrong queue or storage.

// IsQueueEmpty returns a predicate reporting whether the named queue
// currently has a zero count. name must already have been referenced by
// AddQueue/AddDepart.
func (b *Builder) IsQueueEmpty(name string) (func() bool, error) {
	idx, ok := b.queueIndex[name]
	if !ok {
		return nil, &UnknownNameError{Kind: "queue", Name: name}
	}
	sim := b.sim
	return func() bool { return sim.isQueueEmpty(idx) }, nil
}

// IsStorageEmpty returns a predicate reporting whether the named storage
// currently has zero occupancy.
func (b *Builder) IsStorageEmpty(name string) (func() bool, error) {
	idx, ok := b.storageIndex[name]
	if !ok {
		return nil, &UnknownNameError{Kind: "storage", Name: name}
	}
	sim := b.sim
	return func() bool { return sim.isStorageEmpty(idx) }, nil
}

// IsStorageAvailable returns a predicate reporting whether the named
// storage currently has at least one free slot.
func (b *Builder) IsStorageAvailable(name string) (func() bool, error) {
	idx, ok := b.storageIndex[name]
	if !ok {
		return nil, &UnknownNameError{Kind: "storage", Name: name}
	}
	sim := b.sim
	return func() bool { return sim.isStorageAvailable(idx) }, nil
}

// IsStorageFull returns a predicate reporting whether the named storage
// is currently at capacity.
func (b *Builder) IsStorageFull(name string) (func() bool, error) {
	idx, ok := b.storageIndex[name]
	if !ok {
		return nil, &UnknownNameError{Kind: "storage", Name: name}
	}
	sim := b.sim
	return func() bool { return sim.isStorageFull(idx) }, nil
}
