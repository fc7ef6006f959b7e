// idgen - errors.go provides the construction-time error taxonomy.
//
// Per the failure-semantics design: everything that can happen on the hot
// path (sequence exhaustion, random-tail overflow, clock regression) is
// reported as Pending, never as an error. Only configuration mistakes
// (bad layout, out-of-range machine ID, a future epoch) and decode-time
// problems surface as errors, and both are detected before a generator
// ever produces an ID.

package idgen

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is.
var (
	// ErrInvalidLayout is returned when a Layout's field widths do not
	// sum to its backing word width.
	ErrInvalidLayout = errors.New("idgen: invalid layout")

	// ErrInvalidMachineID is returned when a machine ID exceeds the
	// field's maximum value for the chosen layout.
	ErrInvalidMachineID = errors.New("idgen: invalid machine id")

	// ErrInvalidEpoch is returned when a configured epoch is not usable
	// (e.g. in the future relative to the wall clock at construction).
	ErrInvalidEpoch = errors.New("idgen: invalid epoch")

	// ErrReservedBitsSet is returned when decoding external bytes or
	// constructing an ID from raw components would produce a non-zero
	// reserved field.
	ErrReservedBitsSet = errors.New("idgen: reserved bits must be zero")
)

// ConfigurationError reports why a generator could not be built. It is
// always returned from a New*/Build call, never from next_id.
type ConfigurationError struct {
	Field      string
	Value      string
	Reason     string
	Constraint string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("idgen: invalid configuration: %s=%s (%s) - %s",
		e.Field, e.Value, e.Reason, e.Constraint)
}

func (e *ConfigurationError) Unwrap() error {
	switch e.Field {
	case "MachineID":
		return ErrInvalidMachineID
	case "Epoch":
		return ErrInvalidEpoch
	default:
		return ErrInvalidLayout
	}
}

func newConfigurationError(field, value, reason, constraint string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason, Constraint: constraint}
}

// DecodeOverflowError is returned by external decoders (byte unpacking,
// string parsing) when the offending value carries non-zero reserved
// bits. The caller may mask them out and retry if that is an acceptable
// recovery for their protocol.
type DecodeOverflowError struct {
	// Raw is the offending value, as decoded before validation.
	Raw string
	// ReservedMask identifies which bits were expected to be zero.
	ReservedMask uint64
}

func (e *DecodeOverflowError) Error() string {
	return fmt.Sprintf("idgen: decode overflow: value %s sets reserved bits (mask %#x)", e.Raw, e.ReservedMask)
}

func (e *DecodeOverflowError) Unwrap() error {
	return ErrReservedBitsSet
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsDecodeOverflowError reports whether err is or wraps a *DecodeOverflowError.
func IsDecodeOverflowError(err error) bool {
	var de *DecodeOverflowError
	return errors.As(err, &de)
}
