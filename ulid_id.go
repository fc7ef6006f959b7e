// idgen - ulid_id.go provides UlidID, a strongly-typed wrapper around the
// 128-bit word a ULID-family generator produces. The encoding set is
// intentionally smaller than SnowflakeID's: base58/base62/base36 would
// need full big-integer division per character on every encode, which is
// a worse trade for a 128-bit value than for a 64-bit one, so only the
// encodings with a natural byte-oriented implementation are offered.

package idgen

import (
	"database/sql/driver"
	"encoding/base64"
	"fmt"
	"time"
)

// UlidID is a generated ULID-family identifier.
type UlidID Uint128

// Uint128 returns the underlying 128-bit value.
func (id UlidID) Uint128() Uint128 {
	return Uint128(id)
}

// String returns the decimal representation, implementing fmt.Stringer.
func (id UlidID) String() string {
	return Uint128(id).String()
}

// Hex returns a zero-padded 32-character lowercase hexadecimal
// representation.
func (id UlidID) Hex() string {
	return Uint128(id).Hex()
}

// Bytes returns the 16-byte little-endian encoding, the canonical wire
// form from spec.md §6/§9.
func (id UlidID) Bytes() [16]byte {
	return Uint128(id).Bytes()
}

// Base64 returns the standard base64 encoding of the 16-byte little-endian
// form.
func (id UlidID) Base64() string {
	b := id.Bytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

// Base64URL returns the URL-safe base64 encoding of the 16-byte
// little-endian form.
func (id UlidID) Base64URL() string {
	b := id.Bytes()
	return base64.URLEncoding.EncodeToString(b[:])
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id UlidID) MarshalBinary() ([]byte, error) {
	b := id.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *UlidID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("idgen: invalid binary UlidID length: %d", len(data))
	}
	var b [16]byte
	copy(b[:], data)
	*id = UlidID(Uint128FromBytes(b))
	return nil
}

// MarshalJSON renders the ID as a JSON string (hex form, fixed-width and
// avoids any precision loss a numeric encoding would suffer at 128 bits).
func (id UlidID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Hex() + `"`), nil
}

// UnmarshalJSON accepts a quoted hex string.
func (id *UlidID) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("idgen: invalid JSON UlidID: %q", data)
	}
	s := string(data)
	if s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := parseUlidHex(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id UlidID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *UlidID) UnmarshalText(text []byte) error {
	v, err := parseUlidHex(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

func parseUlidHex(s string) (UlidID, error) {
	if len(s) != 32 {
		return UlidID{}, fmt.Errorf("idgen: invalid UlidID hex length: %d", len(s))
	}
	var hi, lo uint64
	if _, err := fmt.Sscanf(s[:16], "%016x", &hi); err != nil {
		return UlidID{}, fmt.Errorf("idgen: invalid UlidID hex: %w", err)
	}
	if _, err := fmt.Sscanf(s[16:], "%016x", &lo); err != nil {
		return UlidID{}, fmt.Errorf("idgen: invalid UlidID hex: %w", err)
	}
	return UlidID{Hi: hi, Lo: lo}, nil
}

// Scan implements sql.Scanner, accepting a 16-byte blob, a 32-character
// hex string, or NULL.
func (id *UlidID) Scan(value interface{}) error {
	if value == nil {
		*id = UlidID{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 16 {
			var b [16]byte
			copy(b[:], v)
			*id = UlidID(Uint128FromBytes(b))
			return nil
		}
		parsed, err := parseUlidHex(string(v))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case string:
		parsed, err := parseUlidHex(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("idgen: cannot scan %T into UlidID", value)
	}
}

// Value implements driver.Valuer. Stored as a 16-byte blob, matching the
// BLOB/BYTEA column a 128-bit value needs regardless of backend.
func (id UlidID) Value() (driver.Value, error) {
	b := id.Bytes()
	return b[:], nil
}

// Timestamp returns this ID's timestamp field, in milliseconds since the
// epoch of the generator that produced it.
func (id UlidID) Timestamp(layout UlidLayout) uint64 {
	ts, _, _ := layout.Unpack(Uint128(id))
	return ts
}

// Random returns this ID's random field.
func (id UlidID) Random(layout UlidLayout) Uint128 {
	_, random, _ := layout.Unpack(Uint128(id))
	return random
}

// Components extracts (timestamp, random) in one call.
func (id UlidID) Components(layout UlidLayout) (timestamp uint64, random Uint128) {
	ts, r, _ := layout.Unpack(Uint128(id))
	return ts, r
}

// Time returns the wall-clock time this ID was generated, given the
// layout and epoch (in Unix milliseconds) the generator was configured
// with.
func (id UlidID) Time(layout UlidLayout, epochMillis int64) time.Time {
	ms := int64(id.Timestamp(layout)) + epochMillis
	return time.UnixMilli(ms)
}

// IsValid reports whether id carries zero reserved bits under layout.
func (id UlidID) IsValid(layout UlidLayout) bool {
	return Uint128(id).And(layout.ReservedMask()).Equal(Uint128{})
}

// Before reports whether id was generated before other.
func (id UlidID) Before(other UlidID) bool {
	return Uint128(id).Less(Uint128(other))
}

// After reports whether id was generated after other.
func (id UlidID) After(other UlidID) bool {
	return Uint128(other).Less(Uint128(id))
}

// Equal reports whether id and other are identical.
func (id UlidID) Equal(other UlidID) bool {
	return Uint128(id).Equal(Uint128(other))
}

// Compare returns -1, 0, or 1 as id is less than, equal to, or greater
// than other.
func (id UlidID) Compare(other UlidID) int {
	switch {
	case id.Before(other):
		return -1
	case id.After(other):
		return 1
	default:
		return 0
	}
}
