// idgen - ulid_core.go is the pure state machine for the ULID family:
// spec.md §4.4.2 (monotonic) and §4.4.3 (non-monotonic).

package idgen

// InitialUlidState returns the state a fresh ULID generator starts from:
// timestamp 0, random tail at its maximum, so the first transition
// necessarily observes now > ts_old and draws a fresh random value for
// the current clock reading (spec.md §3, Lifecycle).
func InitialUlidState(layout UlidLayout) Uint128 {
	return layout.Pack(0, layout.Random.Max())
}

// UlidResult is the outcome of a single ULID transition.
type UlidResult struct {
	// NewState is the state word to commit. On Pending it equals the
	// prior state word unchanged.
	NewState Uint128
	Status   Status
	// ID is valid only when Status == Ready.
	ID Uint128
	// YieldFor is valid only when Status == Pending.
	YieldFor int64
	// ClockRegression is valid only when Status == Pending: true when
	// the cause was now < ts_old, false when it was random-tail overflow.
	ClockRegression bool
}

// ulidTransition implements spec.md §4.4.2 exactly: the monotonic
// variant, which increments the random tail within a millisecond instead
// of redrawing. draw is called at most once, and only when a fresh random
// value is actually needed (now > ts_old) — callers typically pass
// randSource.Uint64 composed into an 80-bit value; see drawRandom80.
func ulidTransition(layout UlidLayout, prior Uint128, now int64, draw func() Uint128) UlidResult {
	tsOld, tailOld, _ := layout.Unpack(prior)
	switch {
	case now > int64(tsOld):
		r := draw()
		newState := layout.Pack(uint64(now), r)
		return UlidResult{NewState: newState, Status: Ready, ID: newState}

	case now == int64(tsOld):
		maxTail := layout.Random.Max()
		if tailOld.Less(maxTail) {
			newState := layout.Pack(uint64(now), tailOld.AddLo(1))
			return UlidResult{NewState: newState, Status: Ready, ID: newState}
		}
		// 80-bit random tail overflowed within the same millisecond:
		// astronomically rare, handled identically to snowflake sequence
		// exhaustion.
		return UlidResult{NewState: prior, Status: Pending, YieldFor: 1}

	default: // now < tsOld: clock regression.
		return UlidResult{NewState: prior, Status: Pending, YieldFor: int64(tsOld) - now, ClockRegression: true}
	}
}

// drawRandom80 composes two RandSource.Uint64 draws into an 80-bit random
// value: the low 64 bits of the field come from the first draw, the high
// 16 bits from the low 16 bits of the second. The high 48 bits of the
// second draw are discarded on every call; RandSource implementations are
// expected to be cheap (spec.md §4.3), so this trades those bits for not needing a
// variable-width "fill a bit range" primitive in the RandSource contract.
func drawRandom80(rs RandSource) Uint128 {
	lo := rs.Uint64()
	hi := rs.Uint64() & 0xFFFF
	return Uint128{Hi: hi, Lo: lo}
}

// nonMonotonicUlid implements spec.md §4.4.3: every call draws a fresh
// random value and packs it with the current timestamp, without reading
// or writing any prior state. This has no per-millisecond monotonicity
// guarantee — two calls landing in the same millisecond are ordered only
// by chance — but it skips the read-modify-write entirely, which is the
// throughput trade the spec describes.
func nonMonotonicUlid(layout UlidLayout, now int64, draw func() Uint128) UlidResult {
	r := draw()
	id := layout.Pack(uint64(now), r)
	return UlidResult{NewState: id, Status: Ready, ID: id}
}
