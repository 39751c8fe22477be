// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

import (
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// traceEvent is the Event implementation for this package's logger,
// modeled on logiface's own custom-Event pattern (see its
// coverage_extra_test.go) rather than pulling in a backend package this
// module has no other use for. It keeps only what the kernel actually
// emits: a message and a handful of named fields (t, txn).
type traceEvent struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	msg    string
	fields map[string]any
}

func (e *traceEvent) Level() logiface.Level { return e.level }

func (e *traceEvent) AddField(key string, val any) {
	if e.fields == nil {
		e.fields = make(map[string]any, 4)
	}
	e.fields[key] = val
}

func (e *traceEvent) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

// traceEventFactory implements logiface.EventFactory[*traceEvent].
type traceEventFactory struct{}

func (traceEventFactory) NewEvent(level logiface.Level) *traceEvent {
	return &traceEvent{level: level}
}

// traceSink receives one formatted line per flushed event; it is the
// only thing callers of NewLogifaceLogger need to supply.
type traceSink func(level logiface.Level, line string)

// Write renders e as "key=val ..." pairs trailing the message,
// ordering fields is not guaranteed (map iteration), which is acceptable
// for a debug/trace line.
func (s traceSink) Write(e *traceEvent) error {
	line := e.msg
	for k, v := range e.fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	s(e.level, line)
	return nil
}

// Logger is the narrow surface this package's kernel code calls through;
// it exists so callers can swap in any logiface-backed implementation (or
// none) without the kernel depending on a concrete backend. Mirrors the
// teacher's package-level SetStructuredLogger/getGlobalLogger split
// (logging.go), but scoped per-Simulation instead of process-global,
// since multiple Simulations may run concurrently in one process.
type Logger interface {
	Debugf(time float64, txnID uint64, msg string)
	Noticef(format string, args ...any)
	Errorf(format string, args ...any)
}

// logifaceLogger adapts a *logiface.Logger[*traceEvent] to Logger.
type logifaceLogger struct {
	l *logiface.Logger[*traceEvent]
}

// NewLogifaceLogger builds a Logger backed by logiface, flushing each
// rendered line to fn. Passing a nil fn discards everything silently,
// which is useful for tests that only care about the returned error.
func NewLogifaceLogger(fn func(level logiface.Level, line string)) Logger {
	if fn == nil {
		fn = func(logiface.Level, string) {}
	}
	l := logiface.New[*traceEvent](
		logiface.WithEventFactory[*traceEvent](traceEventFactory{}),
		logiface.WithWriter[*traceEvent](traceSink(fn)),
		logiface.WithLevel[*traceEvent](logiface.LevelTrace),
	)
	return &logifaceLogger{l: l}
}

func (g *logifaceLogger) Debugf(time float64, txnID uint64, msg string) {
	if b := g.l.Info(); b != nil {
		b.Float64("t", time).Uint64("txn", txnID).Log(msg)
	}
}

func (g *logifaceLogger) Noticef(format string, args ...any) {
	if b := g.l.Notice(); b != nil {
		b.Log(fmt.Sprintf(format, args...))
	}
}

func (g *logifaceLogger) Errorf(format string, args ...any) {
	if b := g.l.Err(); b != nil {
		b.Log(fmt.Sprintf(format, args...))
	}
}

// noopLogger discards everything; it is the zero-value default so a
// Simulation built without WithLogger never nil-derefs.
type noopLogger struct{}

func (noopLogger) Debugf(float64, uint64, string) {}
func (noopLogger) Noticef(string, ...any)         {}
func (noopLogger) Errorf(string, ...any)          {}

var defaultLogger Logger = noopLogger{}

// globalLogger mirrors the teacher's process-wide, atomic.Value-guarded
// logger slot (logging.go), used only by package-level helpers such as
// builder-time diagnostics emitted before any Simulation exists.
var globalLogger atomic.Value // stores Logger

func init() {
	globalLogger.Store(defaultLogger)
}

// SetGlobalLogger installs the Logger used for builder-time diagnostics
// (warnings issued by Build(), before any Simulation exists). Safe for
// concurrent use.
func SetGlobalLogger(l Logger) {
	if l == nil {
		l = defaultLogger
	}
	globalLogger.Store(l)
}

func getGlobalLogger() Logger {
	if l, ok := globalLogger.Load().(Logger); ok && l != nil {
		return l
	}
	return defaultLogger
}
