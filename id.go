// idgen - id.go provides SnowflakeID, a strongly-typed wrapper around the
// 64-bit word a snowflake-family generator produces: encodings, database
// and JSON integration, component extraction, and comparison.

package idgen

import (
	"database/sql/driver"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// SnowflakeID is a generated snowflake-family ID. The zero value is not a
// valid ID produced by any generator (every generator's first Ready call
// advances past timestamp 0), so it doubles as an explicit "unset" value.
type SnowflakeID uint64

// Uint64 returns the ID as a uint64.
func (id SnowflakeID) Uint64() uint64 {
	return uint64(id)
}

// Int64 returns the ID as an int64, for interop with APIs that use signed
// BIGINT columns. The conversion never panics. Under layouts with a
// reserved top bit (LayoutTwitter, LayoutDiscord) every valid ID is
// non-negative; under LayoutInstagram and LayoutMastodon, which have no
// reserved bit, an ID with bit 63 set comes out negative.
func (id SnowflakeID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation, implementing fmt.Stringer.
func (id SnowflakeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Base2 returns a binary string representation, mainly useful for
// debugging layout math.
func (id SnowflakeID) Base2() string {
	return strconv.FormatUint(uint64(id), 2)
}

// Base36 returns a base36 (0-9, a-z) encoded string.
func (id SnowflakeID) Base36() string {
	return strconv.FormatUint(uint64(id), 36)
}

// Base58 returns a base58 encoded string in the Flickr alphabet:
// case-sensitive, excludes visually similar characters.
func (id SnowflakeID) Base58() string {
	return encodeBase58(uint64(id))
}

// Base62 returns a URL-safe base62 encoded string: no escaping needed in
// a URL path segment.
func (id SnowflakeID) Base62() string {
	return encodeBase62(uint64(id))
}

// Base64 returns the standard base64 encoding of the 8-byte big-endian
// form.
func (id SnowflakeID) Base64() string {
	b := id.IntBytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

// Base64URL returns the URL-safe base64 encoding of the 8-byte big-endian
// form.
func (id SnowflakeID) Base64URL() string {
	b := id.IntBytes()
	return base64.URLEncoding.EncodeToString(b[:])
}

// Hex returns a lowercase hexadecimal representation.
func (id SnowflakeID) Hex() string {
	return strconv.FormatUint(uint64(id), 16)
}

// IntBytes returns the ID as an 8-byte big-endian integer. This is not the
// wire form: PackSnowflakeChunk writes IDs little-endian.
func (id SnowflakeID) IntBytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id SnowflakeID) MarshalBinary() ([]byte, error) {
	b := id.IntBytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *SnowflakeID) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("idgen: invalid binary SnowflakeID length: %d", len(data))
	}
	*id = SnowflakeID(binary.BigEndian.Uint64(data))
	return nil
}

// MarshalJSON renders the ID as a JSON string, avoiding the precision
// loss JavaScript's float64 Number would introduce for values above
// 2^53.
func (id SnowflakeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON accepts both a quoted string and a bare JSON number.
func (id *SnowflakeID) UnmarshalJSON(data []byte) error {
	if len(data) < 1 {
		return fmt.Errorf("idgen: invalid JSON SnowflakeID: %q", data)
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("idgen: invalid SnowflakeID: %w", err)
	}
	*id = SnowflakeID(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id SnowflakeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SnowflakeID) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return err
	}
	*id = SnowflakeID(v)
	return nil
}

// Scan implements sql.Scanner, accepting BIGINT, VARCHAR/TEXT, or NULL.
func (id *SnowflakeID) Scan(value interface{}) error {
	if value == nil {
		*id = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*id = SnowflakeID(uint64(v))
	case []byte:
		n, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil {
			return err
		}
		*id = SnowflakeID(n)
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		*id = SnowflakeID(n)
	default:
		return fmt.Errorf("idgen: cannot scan %T into SnowflakeID", value)
	}
	return nil
}

// Value implements driver.Valuer. Stored as int64 since most SQL drivers
// (including go-sqlite3) represent BIGINT columns as int64. The bit
// pattern is kept as is, so Scan restores the same ID; an ID with bit 63
// set (possible only under layouts without a reserved bit) is stored as a
// negative number.
func (id SnowflakeID) Value() (driver.Value, error) {
	return int64(id), nil
}

// ParseSnowflakeString parses a decimal string into a SnowflakeID.
func ParseSnowflakeString(s string) (SnowflakeID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return SnowflakeID(v), nil
}

// ParseSnowflakeBase36 parses a base36 string into a SnowflakeID.
func ParseSnowflakeBase36(s string) (SnowflakeID, error) {
	v, err := strconv.ParseUint(s, 36, 64)
	if err != nil {
		return 0, err
	}
	return SnowflakeID(v), nil
}

// ParseSnowflakeBase58 parses a base58 string into a SnowflakeID.
func ParseSnowflakeBase58(s string) (SnowflakeID, error) {
	v, err := decodeBase58(s)
	if err != nil {
		return 0, err
	}
	return SnowflakeID(v), nil
}

// ParseSnowflakeBase62 parses a base62 string into a SnowflakeID.
func ParseSnowflakeBase62(s string) (SnowflakeID, error) {
	v, err := decodeBase62(s)
	if err != nil {
		return 0, err
	}
	return SnowflakeID(v), nil
}

// ParseSnowflakeHex parses a hexadecimal string into a SnowflakeID.
func ParseSnowflakeHex(s string) (SnowflakeID, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return SnowflakeID(v), nil
}

// ParseSnowflakeIntBytes parses an 8-byte big-endian integer into a
// SnowflakeID.
func ParseSnowflakeIntBytes(b [8]byte) SnowflakeID {
	return SnowflakeID(binary.BigEndian.Uint64(b[:]))
}

// Timestamp returns this ID's timestamp field, in milliseconds since the
// epoch of the generator that produced it — add that epoch (in Unix
// milliseconds) to get Unix milliseconds.
func (id SnowflakeID) Timestamp(layout SnowflakeLayout) uint64 {
	ts, _, _, _ := layout.Unpack(uint64(id))
	return ts
}

// MachineID returns this ID's machine-id field.
func (id SnowflakeID) MachineID(layout SnowflakeLayout) uint64 {
	_, machineID, _, _ := layout.Unpack(uint64(id))
	return machineID
}

// Sequence returns this ID's sequence field.
func (id SnowflakeID) Sequence(layout SnowflakeLayout) uint64 {
	_, _, seq, _ := layout.Unpack(uint64(id))
	return seq
}

// Components extracts (timestamp, machineID, sequence) in one call.
func (id SnowflakeID) Components(layout SnowflakeLayout) (timestamp, machineID, sequence uint64) {
	ts, m, s, _ := layout.Unpack(uint64(id))
	return ts, m, s
}

// Time returns the wall-clock time this ID was generated, given the
// layout and epoch (in Unix milliseconds) the generator that produced it
// was configured with.
func (id SnowflakeID) Time(layout SnowflakeLayout, epochMillis int64) time.Time {
	ms := int64(id.Timestamp(layout)) + epochMillis
	return time.UnixMilli(ms)
}

// IsValid reports whether id carries zero reserved bits under layout —
// the only structural property a SnowflakeID can be checked against
// without knowing which generator produced it.
func (id SnowflakeID) IsValid(layout SnowflakeLayout) bool {
	return uint64(id)&layout.ReservedMask() == 0
}

// Before reports whether id was generated before other. Snowflake IDs
// are time-ordered within one generator, so this is a plain numeric
// comparison.
func (id SnowflakeID) Before(other SnowflakeID) bool { return id < other }

// After reports whether id was generated after other.
func (id SnowflakeID) After(other SnowflakeID) bool { return id > other }

// Equal reports whether id and other are identical.
func (id SnowflakeID) Equal(other SnowflakeID) bool { return id == other }

// Compare returns -1, 0, or 1 as id is less than, equal to, or greater
// than other.
func (id SnowflakeID) Compare(other SnowflakeID) int {
	switch {
	case id < other:
		return -1
	case id > other:
		return 1
	default:
		return 0
	}
}

// Shard distributes ids evenly across numShards partitions.
func (id SnowflakeID) Shard(numShards int64) int64 {
	if numShards <= 0 {
		return 0
	}
	return int64(id % SnowflakeID(numShards))
}

// ShardByMachine routes every ID from the same machine to the same
// shard, trading even distribution for write affinity.
func (id SnowflakeID) ShardByMachine(layout SnowflakeLayout, numShards int64) int64 {
	if numShards <= 0 {
		return 0
	}
	return int64(id.MachineID(layout)) % numShards
}
