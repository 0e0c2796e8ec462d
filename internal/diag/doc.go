// Package diag is the process-wide diagnostic reporting bus.
//
// # Purpose
//
//   - Give every part of a program one place to surface errors, warnings and
//     fatal conditions as human-readable text.
//   - Fan each diagnostic out to an optional Sink (the component that renders
//     it) and to every registered Handler (observers such as the crash-dump
//     recorder or an editor bridge).
//   - Reconstruct best-effort call-stack context for backtrace-flavoured
//     reports, via internal/unwind and internal/symbolize.
//
// # Scope
//
// Package diag carries text, not structure: it does not classify errors
// (callers pick the Kind), does not persist anything, and exposes no
// machine-parseable event schema. Rendering lives behind the Sink interface
// (internal/console provides the default); stack capture and symbol
// resolution live in their own packages.
//
// # Contract
//
// Every entry point is infallible from the caller's perspective. A missing
// sink falls back to a minimal stderr line, per-frame symbolication failures
// degrade to raw names and offsets, and a panicking handler or sink is
// absorbed. The bus is the last line of diagnostic output; it must never be
// the thing that crashes.
//
// # Concurrency
//
// One mutex serializes registry mutation and the notify snapshot. Handlers
// run outside the lock on a snapshot of the registration list, so a handler
// may itself report, register or unregister without deadlocking. Within one
// report, handlers run newest-registered-first.
package diag
