// idgen - ulid_shell.go provides the two concurrency variants available
// for the ULID family. Only single-owner and mutex shells exist here: Go
// has no native 128-bit atomic, so the lock-free CAS shell from
// spec.md §4.5.3 has no counterpart for a Uint128 state word. See
// uint128.go's doc comment for the full rationale; this is the documented
// exception from spec.md §9, not an oversight.

package idgen

import (
	"sync"

	"go.uber.org/zap"
)

// UlidIDResult is what every ULID shell's NextID returns.
type UlidIDResult struct {
	Status   Status
	ID       UlidID
	YieldFor int64
}

type ulidCommon struct {
	layout     UlidLayout
	timeSource TimeSource
	randSource RandSource
	logger     *zap.Logger
	counters
}

func newUlidCommon(cfg UlidConfig) ulidCommon {
	return ulidCommon{
		layout:     cfg.Layout,
		timeSource: cfg.TimeSource,
		randSource: cfg.RandSource,
		logger:     cfg.Logger,
	}
}

// logPending updates the counters and logs the back-off reason at Debug
// level, mirroring snowflakeCommon.logPending.
func (c *ulidCommon) logPending(clockRegression bool, yieldFor int64) {
	c.counters.recordPending(clockRegression)
	if clockRegression {
		c.logger.Debug("clock regression", zap.Int64("yield_for_ms", yieldFor))
	} else {
		c.logger.Debug("random tail exhausted", zap.Int64("yield_for_ms", yieldFor))
	}
}

// GetMetrics returns a snapshot of this generator's counters.
func (c *ulidCommon) GetMetrics() Metrics {
	return c.counters.snapshot()
}

func (c *ulidCommon) draw() Uint128 {
	return drawRandom80(c.randSource)
}

// SingleOwnerUlidGenerator is the single-owner ULID shell: no
// synchronization, safe only when never shared across goroutines.
type SingleOwnerUlidGenerator struct {
	ulidCommon
	state Uint128
}

// NewSingleOwnerUlidGenerator builds a single-owner monotonic ULID
// generator from cfg, or returns a *ConfigurationError.
func NewSingleOwnerUlidGenerator(cfg UlidConfig) (*SingleOwnerUlidGenerator, error) {
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	g := &SingleOwnerUlidGenerator{ulidCommon: newUlidCommon(cfg)}
	g.state = InitialUlidState(g.layout)
	return g, nil
}

// NextID implements the monotonic ULID transition with no locking.
func (g *SingleOwnerUlidGenerator) NextID() UlidIDResult {
	now := g.timeSource.CurrentMillis()
	res := ulidTransition(g.layout, g.state, now, g.draw)
	g.state = res.NewState
	if res.Status == Ready {
		g.counters.recordReady()
	} else {
		g.logPending(res.ClockRegression, res.YieldFor)
	}
	return UlidIDResult{Status: res.Status, ID: UlidID(res.ID), YieldFor: res.YieldFor}
}

// MutexUlidGenerator is the mutex ULID shell: acquire, read, transition,
// write, release.
type MutexUlidGenerator struct {
	ulidCommon
	mu    sync.Mutex
	state Uint128
}

// NewMutexUlidGenerator builds a mutex-shell monotonic ULID generator from
// cfg, or returns a *ConfigurationError.
func NewMutexUlidGenerator(cfg UlidConfig) (*MutexUlidGenerator, error) {
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	g := &MutexUlidGenerator{ulidCommon: newUlidCommon(cfg)}
	g.state = InitialUlidState(g.layout)
	return g, nil
}

// NextID implements the monotonic ULID transition under a mutex.
func (g *MutexUlidGenerator) NextID() UlidIDResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.timeSource.CurrentMillis()
	res := ulidTransition(g.layout, g.state, now, g.draw)
	g.state = res.NewState
	if res.Status == Ready {
		g.counters.recordReady()
	} else {
		g.logPending(res.ClockRegression, res.YieldFor)
	}
	return UlidIDResult{Status: res.Status, ID: UlidID(res.ID), YieldFor: res.YieldFor}
}

// NonMonotonicUlidGenerator implements spec.md §4.4.3: every call draws a
// fresh random value against the current timestamp with no shared state
// at all, so it needs neither a lock nor a CAS loop. Concurrent calls
// never race because there is nothing to race over.
type NonMonotonicUlidGenerator struct {
	ulidCommon
}

// NewNonMonotonicUlidGenerator builds a stateless ULID generator from cfg,
// or returns a *ConfigurationError.
func NewNonMonotonicUlidGenerator(cfg UlidConfig) (*NonMonotonicUlidGenerator, error) {
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &NonMonotonicUlidGenerator{ulidCommon: newUlidCommon(cfg)}, nil
}

// NextID always returns Ready: spec.md §4.4.3 has no Pending path, since
// there is no shared state to exhaust or regress against.
func (g *NonMonotonicUlidGenerator) NextID() UlidIDResult {
	now := g.timeSource.CurrentMillis()
	res := nonMonotonicUlid(g.layout, now, g.draw)
	g.counters.recordReady()
	return UlidIDResult{Status: res.Status, ID: UlidID(res.ID)}
}
