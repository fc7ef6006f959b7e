// idgen - snowflake_core.go is the pure state machine at the heart of the
// snowflake ID family: spec.md §4.4.1, implemented exactly as specified.
//
// snowflakeTransition takes no locks, touches no shared memory, and never
// blocks; it is safe to call from any goroutine with any (possibly
// racing) prior state snapshot. The three concurrency shells in
// snowflake_shell.go differ only in how they obtain priorWord and commit
// newWord — the transition logic itself is identical across all three,
// which is what makes "observationally identical output for identical
// input sequences" (spec.md §4.5) true by construction rather than by
// careful duplication.
package idgen

// InitialSnowflakeState returns the state a fresh generator starts from:
// timestamp 0, sequence at its maximum, so the very first transition
// necessarily observes now > ts_old and advances to the current clock
// reading (spec.md §3, Lifecycle).
func InitialSnowflakeState(layout SnowflakeLayout, machineID uint64) uint64 {
	return layout.Pack(0, machineID, layout.Sequence.Max())
}

// SnowflakeResult is the outcome of a single snowflake transition.
type SnowflakeResult struct {
	// NewState is the state word to commit. On Pending it equals the
	// prior state word unchanged.
	NewState uint64
	Status   Status
	// ID is valid only when Status == Ready.
	ID uint64
	// YieldFor is valid only when Status == Pending: an estimate, in
	// milliseconds, of how long the caller should wait before retrying.
	YieldFor int64
	// ClockRegression is valid only when Status == Pending: true when the
	// cause was now < ts_old, false when it was sequence exhaustion.
	// Kept explicit rather than inferred from YieldFor, since a 1ms clock
	// regression and a sequence exhaustion both yield YieldFor == 1.
	ClockRegression bool
}

// snowflakeTransition implements spec.md §4.4.1 exactly. layout and
// machineID are fixed for the lifetime of a generator; prior is the last
// committed state word (with machineID already baked in, per spec.md §3);
// now is a single CurrentMillis() reading.
func snowflakeTransition(layout SnowflakeLayout, machineID uint64, prior uint64, now int64) SnowflakeResult {
	tsOld, _, seqOld, _ := layout.Unpack(prior)
	switch {
	case now > int64(tsOld):
		newState := layout.Pack(uint64(now), machineID, 0)
		return SnowflakeResult{NewState: newState, Status: Ready, ID: newState}

	case now == int64(tsOld):
		maxSeq := layout.Sequence.Max()
		if seqOld < maxSeq {
			newState := layout.Pack(uint64(now), machineID, seqOld+1)
			return SnowflakeResult{NewState: newState, Status: Ready, ID: newState}
		}
		// Sequence exhausted within this millisecond: back off for the
		// shortest interval that might unblock us, without mutating.
		return SnowflakeResult{NewState: prior, Status: Pending, YieldFor: 1}

	default: // now < tsOld: clock regression relative to prior state.
		return SnowflakeResult{NewState: prior, Status: Pending, YieldFor: int64(tsOld) - now, ClockRegression: true}
	}
}
