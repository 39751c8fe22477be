// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package gpss implements a GPSS-style discrete-event simulation kernel:
// transactions traverse a block graph over simulated time, driven by a
// priority-queued event schedule and a same-tick re-activation FIFO.
package gpss

import (
	"errors"
	"fmt"
)

// Sentinel errors, comparable via errors.Is regardless of which name or
// index triggered them.
var (
	// ErrEmptyQueue is the base error for Depart on a zero-count queue.
	ErrEmptyQueue = errors.New("gpss: depart from empty queue")

	// ErrEmptyStorage is the base error for Leave on a zero-occupancy storage.
	ErrEmptyStorage = errors.New("gpss: leave from empty storage")

	// ErrBuilderRedeclaration is the base error for duplicate storage names
	// or rebinding an already-resolved label.
	ErrBuilderRedeclaration = errors.New("gpss: redeclaration")

	// ErrUnknownName is the base error for a Depart/Enter/Leave referencing
	// an undeclared queue or storage.
	ErrUnknownName = errors.New("gpss: unknown name")

	// ErrUnresolvedLabel is the base error for Build() when a label was
	// referenced but never bound via AddLabel.
	ErrUnresolvedLabel = errors.New("gpss: unresolved label")

	// ErrInvalidLabel is the base error for AddLabel called with an empty
	// name or with no preceding block.
	ErrInvalidLabel = errors.New("gpss: invalid label")
)

// EmptyQueueError reports a Depart attempted on a queue whose current count
// is already zero. It is fatal: the caller should treat it as propagating
// out of Launch.
type EmptyQueueError struct {
	Queue string
}

func (e *EmptyQueueError) Error() string {
	return fmt.Sprintf("gpss: depart from empty queue %q", e.Queue)
}

// Unwrap allows errors.Is(err, ErrEmptyQueue) to match.
func (e *EmptyQueueError) Unwrap() error { return ErrEmptyQueue }

// EmptyStorageError reports a Leave attempted on a storage with zero
// occupancy.
type EmptyStorageError struct {
	Storage string
}

func (e *EmptyStorageError) Error() string {
	return fmt.Sprintf("gpss: leave from empty storage %q", e.Storage)
}

// Unwrap allows errors.Is(err, ErrEmptyStorage) to match.
func (e *EmptyStorageError) Unwrap() error { return ErrEmptyStorage }

// BuilderRedeclarationError reports a duplicate storage declaration or a
// second AddLabel call against an already-resolved label.
type BuilderRedeclarationError struct {
	Kind string // "storage" or "label"
	Name string
}

func (e *BuilderRedeclarationError) Error() string {
	return fmt.Sprintf("gpss: redeclaration of %s %q", e.Kind, e.Name)
}

// Unwrap allows errors.Is(err, ErrBuilderRedeclaration) to match.
func (e *BuilderRedeclarationError) Unwrap() error { return ErrBuilderRedeclaration }

// UnknownNameError reports a Depart/Enter/Leave referencing an undeclared
// queue or storage name.
type UnknownNameError struct {
	Kind string // "queue" or "storage"
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("gpss: %s from undeclared %s %q", e.Op(), e.Kind, e.Name)
}

// Op returns the builder verb implied by Kind, purely for error text.
func (e *UnknownNameError) Op() string {
	if e.Kind == "queue" {
		return "depart"
	}
	return "enter/leave"
}

// Unwrap allows errors.Is(err, ErrUnknownName) to match.
func (e *UnknownNameError) Unwrap() error { return ErrUnknownName }

// UnresolvedLabelError reports that Build() was called while a label
// remained without a bound target block.
type UnresolvedLabelError struct {
	Label string
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("gpss: usage of undefined label %q", e.Label)
}

// Unwrap allows errors.Is(err, ErrUnresolvedLabel) to match.
func (e *UnresolvedLabelError) Unwrap() error { return ErrUnresolvedLabel }

// InvalidLabelError reports AddLabel called with an empty name, or with no
// preceding block to bind.
type InvalidLabelError struct {
	Reason string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("gpss: invalid label: %s", e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidLabel) to match.
func (e *InvalidLabelError) Unwrap() error { return ErrInvalidLabel }

// WrapError wraps an error with a message, preserving the cause chain for
// errors.Is/errors.As.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
