package idgen

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultEpochMillis is January 1, 2024 00:00:00 UTC in Unix
// milliseconds, chosen (as the teacher's Epoch constant was) to maximize
// a 41-48 bit timestamp field's remaining lifespan over a fixed
// Unix-epoch alternative.
const DefaultEpochMillis int64 = 1704067200000

// SnowflakeConfig configures a snowflake-family generator of any
// concurrency shell.
type SnowflakeConfig struct {
	// MachineID identifies this generator instance. Must be unique
	// across all generators sharing a machine-id partition scheme;
	// enforcing that uniqueness is the caller's responsibility (spec.md
	// §9 Open Question) — the library does not and cannot detect a
	// collision at runtime.
	MachineID int64
	// Layout selects the bit allocation. Defaults to LayoutTwitter.
	Layout SnowflakeLayout
	// Epoch is the datum, in Unix milliseconds, from which Timestamp is
	// measured. Defaults to DefaultEpochMillis.
	Epoch int64
	// TimeSource overrides the clock. Nil selects a MonotonicTimeSource
	// anchored at Epoch; tests inject FixedTimeSource/SequenceTimeSource
	// here.
	TimeSource TimeSource
	// Logger receives diagnostic events (clock regressions, sequence
	// exhaustion) at Debug level. Nil selects zap.NewNop() — logging is
	// off the hot path's success path by default, per spec.md §7's
	// single branch-predictable success shape.
	Logger *zap.Logger
}

// DefaultSnowflakeConfig returns production-ready defaults for the given
// machine ID: LayoutTwitter, DefaultEpochMillis, a MonotonicTimeSource,
// and a no-op logger.
func DefaultSnowflakeConfig(machineID int64) SnowflakeConfig {
	return SnowflakeConfig{
		MachineID: machineID,
		Layout:    LayoutTwitter,
		Epoch:     DefaultEpochMillis,
	}
}

// resolve validates cfg and fills in defaults, returning an error that is
// always a *ConfigurationError.
func (cfg *SnowflakeConfig) resolve() error {
	if (cfg.Layout == SnowflakeLayout{}) {
		cfg.Layout = LayoutTwitter
	}
	if err := cfg.Layout.Validate(); err != nil {
		return err
	}
	if err := cfg.Layout.ValidateMachineID(cfg.MachineID); err != nil {
		return err
	}
	if cfg.Epoch == 0 {
		cfg.Epoch = DefaultEpochMillis
	}
	if cfg.Epoch < 0 {
		return newConfigurationError("Epoch", fmt.Sprintf("%d", cfg.Epoch), "must be non-negative", "epoch is milliseconds since the Unix epoch")
	}
	if cfg.Epoch > time.Now().UnixMilli() {
		return newConfigurationError("Epoch", fmt.Sprintf("%d", cfg.Epoch), "epoch is in the future", "epoch must not be after the current wall-clock time")
	}
	if cfg.TimeSource == nil {
		cfg.TimeSource = NewMonotonicTimeSource(cfg.Epoch)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

// UlidConfig configures a ULID-family generator of any concurrency shell.
type UlidConfig struct {
	// Layout defaults to LayoutULID.
	Layout UlidLayout
	// Epoch is the datum, in Unix milliseconds, from which Timestamp is
	// measured. Defaults to DefaultEpochMillis.
	Epoch int64
	// TimeSource overrides the clock; see SnowflakeConfig.TimeSource.
	TimeSource TimeSource
	// RandSource overrides entropy. Nil selects CryptoRandSource.
	RandSource RandSource
	// Logger receives diagnostic events; nil selects zap.NewNop().
	Logger *zap.Logger
}

// DefaultUlidConfig returns production-ready defaults: LayoutULID,
// DefaultEpochMillis, a MonotonicTimeSource, CryptoRandSource, and a
// no-op logger.
func DefaultUlidConfig() UlidConfig {
	return UlidConfig{
		Layout: LayoutULID,
		Epoch:  DefaultEpochMillis,
	}
}

func (cfg *UlidConfig) resolve() error {
	if (cfg.Layout == UlidLayout{}) {
		cfg.Layout = LayoutULID
	}
	if err := cfg.Layout.Validate(); err != nil {
		return err
	}
	if cfg.Epoch == 0 {
		cfg.Epoch = DefaultEpochMillis
	}
	if cfg.Epoch < 0 {
		return newConfigurationError("Epoch", fmt.Sprintf("%d", cfg.Epoch), "must be non-negative", "epoch is milliseconds since the Unix epoch")
	}
	if cfg.Epoch > time.Now().UnixMilli() {
		return newConfigurationError("Epoch", fmt.Sprintf("%d", cfg.Epoch), "epoch is in the future", "epoch must not be after the current wall-clock time")
	}
	if cfg.TimeSource == nil {
		cfg.TimeSource = NewMonotonicTimeSource(cfg.Epoch)
	}
	if cfg.RandSource == nil {
		cfg.RandSource = NewCryptoRandSource()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}
