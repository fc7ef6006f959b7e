// Package idgen generates time-sortable, unique 64/128-bit identifiers at
// very high rates.
//
// # Overview
//
// Two ID families are supported:
//
//   - Snowflake-style: a composite integer
//     [reserved | timestamp | machine_id | sequence], deterministically
//     monotonic within a process (given a stable machine ID) and unique
//     across processes that partition machine IDs correctly.
//   - ULID-style: a composite integer [reserved | timestamp | random],
//     monotonic within a single generator during a given millisecond by
//     incrementing the random tail.
//
// The hard part — and the one this package spends almost all of its code
// on — is the generator state machine: the per-generator transition logic
// that packs (clock, prior state, input entropy) into either a Ready(id)
// or a Pending(yield_for) verdict, while preserving three invariants at
// once: uniqueness, strict monotonic order per generator, and lock-free
// (or at least low-contention) forward progress under concurrent callers
// and adversarial clocks.
//
// # Concurrency shells
//
// The pure state-machine transition (package-internal, see
// snowflake_core.go and ulid_core.go) is wrapped by one of three shells:
//
//   - A single-owner shell for generators that are never shared across
//     goroutines (highest throughput, no synchronization at all).
//   - A mutex shell for shared generators where fairness is delegated to
//     sync.Mutex.
//   - An atomic CAS shell (snowflake only — see Uint128's doc comment for
//     why ULID does not get one) for lock-free progress under contention.
//
// All three shells produce bit-identical IDs for an identical sequence of
// (now, entropy) inputs; they differ only in how the state transition is
// committed.
//
// # Back-pressure, not errors
//
// Sequence exhaustion, random-tail overflow, and clock regression are not
// errors: next_id returns Pending{YieldFor} and the caller decides whether
// to spin, sleep, or give up. Only construction-time problems (invalid
// machine ID, malformed layout) are reported as errors, and they never
// appear once a generator is built.
//
// # What this package does not do
//
// It does not coordinate machine-id assignment across processes, repair
// clock skew between nodes, persist sequence state across restarts, or
// order IDs produced by distinct generators relative to one another.
// Those are callers' problems; the package contains no machine-id leasing
// or other coordination code.
package idgen
