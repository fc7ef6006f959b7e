// idgen - wire.go documents the on-the-wire contract for a streaming ID
// service, per spec.md §6/§9: a client asks for a batch of IDs, the
// server replies with tightly packed fixed-width bytes. These types are
// contract-only — no transport is implemented in this package — since a
// faithful gRPC/protobuf binding needs protoc-generated stubs that can't
// be hand-authored here; see DESIGN.md for how this was scoped.

package idgen

import "fmt"

// StreamIDsRequest asks a hypothetical ID service for Count consecutive
// IDs from a single generator.
type StreamIDsRequest struct {
	Count uint64
}

// IDChunk carries a batch of packed IDs: PackedIDs is a concatenation of
// fixed-width little-endian words (8 bytes per snowflake ID, as written by
// PackSnowflakeChunk; 16 per ULID, the UlidID.Bytes encoding), so
// receivers that know the family in advance can decode without any
// framing beyond slicing PackedIDs into equal-sized chunks.
type IDChunk struct {
	PackedIDs []byte
}

// PackSnowflakeChunk encodes ids into an IDChunk using the 8-byte
// little-endian wire form (the reverse byte order of IntBytes, which is
// big-endian and meant for BIGINT-compatible storage, not wire framing).
func PackSnowflakeChunk(ids []SnowflakeID) IDChunk {
	buf := make([]byte, 0, len(ids)*8)
	for _, id := range ids {
		v := uint64(id)
		for i := 0; i < 8; i++ {
			buf = append(buf, byte(v>>(8*i)))
		}
	}
	return IDChunk{PackedIDs: buf}
}

// UnpackSnowflakeChunk decodes a chunk produced by PackSnowflakeChunk.
func UnpackSnowflakeChunk(chunk IDChunk) ([]SnowflakeID, error) {
	if len(chunk.PackedIDs)%8 != 0 {
		return nil, fmt.Errorf("idgen: malformed snowflake chunk: %d bytes is not a multiple of 8", len(chunk.PackedIDs))
	}
	out := make([]SnowflakeID, 0, len(chunk.PackedIDs)/8)
	for i := 0; i < len(chunk.PackedIDs); i += 8 {
		var v uint64
		for j := 0; j < 8; j++ {
			v |= uint64(chunk.PackedIDs[i+j]) << (8 * j)
		}
		out = append(out, SnowflakeID(v))
	}
	return out, nil
}

// PackUlidChunk encodes ids into an IDChunk using the 16-byte
// little-endian wire form from Uint128.Bytes.
func PackUlidChunk(ids []UlidID) IDChunk {
	buf := make([]byte, 0, len(ids)*16)
	for _, id := range ids {
		b := id.Bytes()
		buf = append(buf, b[:]...)
	}
	return IDChunk{PackedIDs: buf}
}

// UnpackUlidChunk decodes a chunk produced by PackUlidChunk.
func UnpackUlidChunk(chunk IDChunk) ([]UlidID, error) {
	if len(chunk.PackedIDs)%16 != 0 {
		return nil, fmt.Errorf("idgen: malformed ulid chunk: %d bytes is not a multiple of 16", len(chunk.PackedIDs))
	}
	out := make([]UlidID, 0, len(chunk.PackedIDs)/16)
	for i := 0; i < len(chunk.PackedIDs); i += 16 {
		var b [16]byte
		copy(b[:], chunk.PackedIDs[i:i+16])
		out = append(out, UlidID(Uint128FromBytes(b)))
	}
	return out, nil
}
