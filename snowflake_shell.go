// idgen - snowflake_shell.go provides the three concurrency variants from
// spec.md §4.5, each wrapping the pure snowflakeTransition with a
// different commit discipline. Control flow matches §2: obtain now,
// snapshot prior state, compute the candidate via the core, commit,
// return Ready or Pending.

package idgen

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// IDResult is what every snowflake shell's NextID returns: either an ID
// (Status == Ready) or a back-off estimate (Status == Pending).
type IDResult struct {
	Status   Status
	ID       SnowflakeID
	YieldFor int64
}

// snowflakeCommon holds the fields shared by all three shells: the
// immutable per-generator configuration, which NextID only reads, and the
// embedded counters, which are updated atomically.
type snowflakeCommon struct {
	layout     SnowflakeLayout
	machineID  uint64
	timeSource TimeSource
	logger     *zap.Logger
	counters
}

func newSnowflakeCommon(cfg SnowflakeConfig) snowflakeCommon {
	return snowflakeCommon{
		layout:     cfg.Layout,
		machineID:  uint64(cfg.MachineID),
		timeSource: cfg.TimeSource,
		logger:     cfg.Logger,
	}
}

// logPending updates the counters and logs the back-off reason at
// Debug level, per spec.md §7: this sits off the hot path's success
// shape, so it costs nothing when nothing is Pending.
func (c *snowflakeCommon) logPending(clockRegression bool, yieldFor int64) {
	c.counters.recordPending(clockRegression)
	if clockRegression {
		c.logger.Debug("clock regression", zap.Int64("yield_for_ms", yieldFor))
	} else {
		c.logger.Debug("sequence exhausted", zap.Int64("yield_for_ms", yieldFor))
	}
}

// GetMetrics returns a snapshot of this generator's counters.
func (c *snowflakeCommon) GetMetrics() Metrics {
	return c.counters.snapshot()
}

// MachineID returns the machine ID baked into every ID this generator
// produces.
func (c *snowflakeCommon) MachineID() int64 {
	return int64(c.machineID)
}

// SingleOwnerSnowflakeGenerator is the single-owner shell: no
// synchronization at all. Safe only when the generator is never shared
// across goroutines; highest throughput of the three.
type SingleOwnerSnowflakeGenerator struct {
	snowflakeCommon
	state uint64
}

// NewSingleOwnerSnowflakeGenerator builds a single-owner snowflake
// generator from cfg, or returns a *ConfigurationError.
func NewSingleOwnerSnowflakeGenerator(cfg SnowflakeConfig) (*SingleOwnerSnowflakeGenerator, error) {
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	g := &SingleOwnerSnowflakeGenerator{snowflakeCommon: newSnowflakeCommon(cfg)}
	g.state = InitialSnowflakeState(g.layout, g.machineID)
	return g, nil
}

// NextID implements spec.md §4.5.1: read state, transition, write state,
// return. No lock, no retry.
func (g *SingleOwnerSnowflakeGenerator) NextID() IDResult {
	now := g.timeSource.CurrentMillis()
	res := snowflakeTransition(g.layout, g.machineID, g.state, now)
	g.state = res.NewState
	if res.Status == Ready {
		g.counters.recordReady()
	} else {
		g.logPending(res.ClockRegression, res.YieldFor)
	}
	return IDResult{Status: res.Status, ID: SnowflakeID(res.ID), YieldFor: res.YieldFor}
}

// MutexSnowflakeGenerator is the mutex shell: acquire, read, transition,
// write, release. Fair scheduling is delegated to sync.Mutex; the lock is
// held only for the duration of one transition.
type MutexSnowflakeGenerator struct {
	snowflakeCommon
	mu    sync.Mutex
	state uint64
}

// NewMutexSnowflakeGenerator builds a mutex-shell snowflake generator
// from cfg, or returns a *ConfigurationError.
func NewMutexSnowflakeGenerator(cfg SnowflakeConfig) (*MutexSnowflakeGenerator, error) {
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	g := &MutexSnowflakeGenerator{snowflakeCommon: newSnowflakeCommon(cfg)}
	g.state = InitialSnowflakeState(g.layout, g.machineID)
	return g, nil
}

// NextID implements spec.md §4.5.2.
func (g *MutexSnowflakeGenerator) NextID() IDResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.timeSource.CurrentMillis()
	res := snowflakeTransition(g.layout, g.machineID, g.state, now)
	g.state = res.NewState
	if res.Status == Ready {
		g.counters.recordReady()
	} else {
		g.logPending(res.ClockRegression, res.YieldFor)
	}
	return IDResult{Status: res.Status, ID: SnowflakeID(res.ID), YieldFor: res.YieldFor}
}

// AtomicSnowflakeGenerator is the lock-free CAS shell from spec.md
// §4.5.3. State lives in an atomic.Uint64, which doubles as the
// last-issued ID snapshot (per the "packing into one word" design note in
// spec.md §9). NextID is a bounded retry loop: on a failed CAS, the
// re-observed state is always strictly larger (some other writer already
// advanced it), so any given caller makes progress in O(contending
// writers) retries.
type AtomicSnowflakeGenerator struct {
	snowflakeCommon
	state atomic.Uint64
}

// NewAtomicSnowflakeGenerator builds a lock-free snowflake generator from
// cfg, or returns a *ConfigurationError.
func NewAtomicSnowflakeGenerator(cfg SnowflakeConfig) (*AtomicSnowflakeGenerator, error) {
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	g := &AtomicSnowflakeGenerator{snowflakeCommon: newSnowflakeCommon(cfg)}
	g.state.Store(InitialSnowflakeState(g.layout, g.machineID))
	return g, nil
}

// NextID implements spec.md §4.5.3's retry loop. Acquire ordering on the
// load and on a failed CAS publishes the winning writer's state to this
// goroutine; Release ordering on a successful CAS publishes this
// goroutine's state to future readers. Go's atomic.Uint64 does not expose
// separate Acquire/Release orderings (it is sequentially consistent,
// which is strictly stronger than what the spec requires), so the
// ordering rationale in spec.md §4.5.3 is satisfied by construction.
func (g *AtomicSnowflakeGenerator) NextID() IDResult {
	for {
		prior := g.state.Load()
		now := g.timeSource.CurrentMillis()
		res := snowflakeTransition(g.layout, g.machineID, prior, now)

		if res.Status == Pending {
			g.logPending(res.ClockRegression, res.YieldFor)
			return IDResult{Status: Pending, YieldFor: res.YieldFor}
		}

		if g.state.CompareAndSwap(prior, res.NewState) {
			g.counters.recordReady()
			return IDResult{Status: Ready, ID: SnowflakeID(res.ID)}
		}
		// Lost the race: another writer already advanced state.
		// Restart from a fresh load; no back-off, spinning is bounded
		// by contention, not by time.
	}
}
