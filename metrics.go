package idgen

import "sync/atomic"

// Metrics is a point-in-time snapshot of a generator's counters. All
// fields are monotonically increasing for the lifetime of the generator.
type Metrics struct {
	// Ready counts successful ID generations.
	Ready int64
	// Pending counts calls that returned a back-off signal instead of
	// an ID, for any reason (sequence/random exhaustion or clock
	// regression).
	Pending int64
	// ClockRegressions counts Pending verdicts caused specifically by
	// now < prior timestamp.
	ClockRegressions int64
	// SequenceExhaustions counts Pending verdicts caused by sequence
	// (snowflake) or random-tail (ULID) exhaustion within one
	// millisecond.
	SequenceExhaustions int64
}

// counters holds the atomic fields backing Metrics. Zero value is ready
// to use. Each shell embeds it directly, with no cache-line padding
// between it and the shell's state.
type counters struct {
	ready               atomic.Int64
	pending             atomic.Int64
	clockRegressions    atomic.Int64
	sequenceExhaustions atomic.Int64
}

func (c *counters) recordReady() {
	c.ready.Add(1)
}

func (c *counters) recordPending(clockRegression bool) {
	c.pending.Add(1)
	if clockRegression {
		c.clockRegressions.Add(1)
	} else {
		c.sequenceExhaustions.Add(1)
	}
}

func (c *counters) snapshot() Metrics {
	return Metrics{
		Ready:               c.ready.Load(),
		Pending:             c.pending.Load(),
		ClockRegressions:    c.clockRegressions.Load(),
		SequenceExhaustions: c.sequenceExhaustions.Load(),
	}
}
