package idgen

import (
	"encoding/base64"
	"encoding/binary"
	"testing"
)

func TestSnowflakeIDEncodingRoundTrips(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(1234567, 42, 17))

	if got, err := ParseSnowflakeString(id.String()); err != nil || got != id {
		t.Errorf("decimal round trip: got (%d,%v), want (%d,nil)", got, err, id)
	}
	if got, err := ParseSnowflakeBase36(id.Base36()); err != nil || got != id {
		t.Errorf("base36 round trip: got (%d,%v), want (%d,nil)", got, err, id)
	}
	if got, err := ParseSnowflakeBase58(id.Base58()); err != nil || got != id {
		t.Errorf("base58 round trip: got (%d,%v), want (%d,nil)", got, err, id)
	}
	if got, err := ParseSnowflakeBase62(id.Base62()); err != nil || got != id {
		t.Errorf("base62 round trip: got (%d,%v), want (%d,nil)", got, err, id)
	}
	if got, err := ParseSnowflakeHex(id.Hex()); err != nil || got != id {
		t.Errorf("hex round trip: got (%d,%v), want (%d,nil)", got, err, id)
	}
	if got := ParseSnowflakeIntBytes(id.IntBytes()); got != id {
		t.Errorf("IntBytes round trip: got %d, want %d", got, id)
	}
}

func TestSnowflakeIDBase64RoundTrip(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(999, 5, 5))

	raw, err := base64.StdEncoding.DecodeString(id.Base64())
	if err != nil || len(raw) != 8 || SnowflakeID(binary.BigEndian.Uint64(raw)) != id {
		t.Errorf("Base64 round trip: got (%x,%v), want id %d", raw, err, id)
	}
	rawURL, err := base64.URLEncoding.DecodeString(id.Base64URL())
	if err != nil || len(rawURL) != 8 || SnowflakeID(binary.BigEndian.Uint64(rawURL)) != id {
		t.Errorf("Base64URL round trip: got (%x,%v), want id %d", rawURL, err, id)
	}
}

func TestSnowflakeIDMarshalJSON(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(1, 1, 1))

	data, err := id.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var roundTripped SnowflakeID
	if err := roundTripped.UnmarshalJSON(data); err != nil || roundTripped != id {
		t.Errorf("UnmarshalJSON(quoted) = (%d,%v), want (%d,nil)", roundTripped, err, id)
	}

	var bare SnowflakeID
	if err := bare.UnmarshalJSON([]byte(id.String())); err != nil || bare != id {
		t.Errorf("UnmarshalJSON(bare number) = (%d,%v), want (%d,nil)", bare, err, id)
	}
}

func TestSnowflakeIDMarshalText(t *testing.T) {
	id := SnowflakeID(12345)
	text, err := id.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	var out SnowflakeID
	if err := out.UnmarshalText(text); err != nil || out != id {
		t.Errorf("UnmarshalText() = (%d,%v), want (%d,nil)", out, err, id)
	}
}

func TestSnowflakeIDMarshalBinary(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(1000, 1, 1))
	data, err := id.MarshalBinary()
	if err != nil || len(data) != 8 {
		t.Fatalf("MarshalBinary() = (%v,%v), want 8 bytes, nil", data, err)
	}
	var out SnowflakeID
	if err := out.UnmarshalBinary(data); err != nil || out != id {
		t.Errorf("UnmarshalBinary() = (%d,%v), want (%d,nil)", out, err, id)
	}
	if err := out.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Error("UnmarshalBinary() with wrong length should error")
	}
}

func TestSnowflakeIDScanValue(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(1, 1, 1))

	v, err := id.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if _, ok := v.(int64); !ok {
		t.Fatalf("Value() returned %T, want int64", v)
	}

	var fromInt64 SnowflakeID
	if err := fromInt64.Scan(v); err != nil || fromInt64 != id {
		t.Errorf("Scan(int64) = (%d,%v), want (%d,nil)", fromInt64, err, id)
	}

	var fromString SnowflakeID
	if err := fromString.Scan(id.String()); err != nil || fromString != id {
		t.Errorf("Scan(string) = (%d,%v), want (%d,nil)", fromString, err, id)
	}

	var fromBytes SnowflakeID
	if err := fromBytes.Scan([]byte(id.String())); err != nil || fromBytes != id {
		t.Errorf("Scan([]byte) = (%d,%v), want (%d,nil)", fromBytes, err, id)
	}

	var fromNil SnowflakeID = 7
	if err := fromNil.Scan(nil); err != nil || fromNil != 0 {
		t.Errorf("Scan(nil) = (%d,%v), want (0,nil)", fromNil, err)
	}

	var bad SnowflakeID
	if err := bad.Scan(3.14); err == nil {
		t.Error("Scan(float64) should error")
	}
}

func TestSnowflakeIDComponents(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(555, 9, 3))
	ts, mid, seq := id.Components(LayoutTwitter)
	if ts != 555 || mid != 9 || seq != 3 {
		t.Errorf("Components() = (%d,%d,%d), want (555,9,3)", ts, mid, seq)
	}
	if id.Timestamp(LayoutTwitter) != 555 {
		t.Errorf("Timestamp() = %d, want 555", id.Timestamp(LayoutTwitter))
	}
	if id.MachineID(LayoutTwitter) != 9 {
		t.Errorf("MachineID() = %d, want 9", id.MachineID(LayoutTwitter))
	}
	if id.Sequence(LayoutTwitter) != 3 {
		t.Errorf("Sequence() = %d, want 3", id.Sequence(LayoutTwitter))
	}
}

func TestSnowflakeIDTime(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(2000, 1, 1))
	tm := id.Time(LayoutTwitter, DefaultEpochMillis)
	want := DefaultEpochMillis + 2000
	if tm.UnixMilli() != want {
		t.Errorf("Time() = %d, want %d", tm.UnixMilli(), want)
	}
}

func TestSnowflakeIDIsValid(t *testing.T) {
	valid := SnowflakeID(LayoutTwitter.Pack(1, 1, 1))
	if !valid.IsValid(LayoutTwitter) {
		t.Error("IsValid() = false for a freshly packed id, want true")
	}
	invalid := valid | SnowflakeID(LayoutTwitter.ReservedMask())
	if invalid.IsValid(LayoutTwitter) {
		t.Error("IsValid() = true for an id with reserved bits set, want false")
	}
}

func TestSnowflakeIDComparisons(t *testing.T) {
	a := SnowflakeID(100)
	b := SnowflakeID(200)
	if !a.Before(b) || b.Before(a) {
		t.Error("Before() is inconsistent")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After() is inconsistent")
	}
	if !a.Equal(a) || a.Equal(b) {
		t.Error("Equal() is inconsistent")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("Compare() is inconsistent")
	}
}

func TestSnowflakeIDShard(t *testing.T) {
	id := SnowflakeID(107)
	if got := id.Shard(10); got != 7 {
		t.Errorf("Shard(10) = %d, want 7", got)
	}
	if got := id.Shard(0); got != 0 {
		t.Errorf("Shard(0) = %d, want 0 (guarded against division by zero)", got)
	}
}

func TestSnowflakeIDShardByMachine(t *testing.T) {
	id := SnowflakeID(LayoutTwitter.Pack(1, 13, 1))
	if got := id.ShardByMachine(LayoutTwitter, 4); got != 1 {
		t.Errorf("ShardByMachine(4) = %d, want 1", got)
	}
	if got := id.ShardByMachine(LayoutTwitter, 0); got != 0 {
		t.Errorf("ShardByMachine(0) = %d, want 0", got)
	}
}
