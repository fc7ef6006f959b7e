package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpackSnowflakeChunkRoundTrip(t *testing.T) {
	tcs := []struct {
		name string
		ids  []SnowflakeID
	}{
		{"empty", nil},
		{"single", []SnowflakeID{SnowflakeID(LayoutTwitter.Pack(100, 1, 1))}},
		{"boundary values", []SnowflakeID{0, 1, SnowflakeID(LayoutTwitter.Pack(100, 1, 1)), ^SnowflakeID(0)}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			chunk := PackSnowflakeChunk(tc.ids)
			assert.Len(t, chunk.PackedIDs, len(tc.ids)*8)

			out, err := UnpackSnowflakeChunk(chunk)
			assert.NoError(t, err)
			assert.Len(t, out, len(tc.ids))
			for i := range tc.ids {
				assert.Equal(t, tc.ids[i], out[i])
			}
		})
	}
}

func TestUnpackSnowflakeChunkRejectsMalformedLength(t *testing.T) {
	chunk := IDChunk{PackedIDs: make([]byte, 7)}
	_, err := UnpackSnowflakeChunk(chunk)
	assert.Error(t, err)
}

func TestPackUnpackUlidChunkRoundTrip(t *testing.T) {
	ids := []UlidID{
		{},
		{Hi: 1, Lo: 1},
		UlidID(LayoutULID.Pack(500, Uint128{Hi: 0xAAAA, Lo: 0xBBBB})),
	}
	chunk := PackUlidChunk(ids)
	assert.Len(t, chunk.PackedIDs, len(ids)*16)

	out, err := UnpackUlidChunk(chunk)
	assert.NoError(t, err)
	assert.Equal(t, len(ids), len(out))
	for i, id := range ids {
		assert.True(t, out[i].Equal(id), "index %d: got %s, want %s", i, out[i], id)
	}
}

func TestUnpackUlidChunkRejectsMalformedLength(t *testing.T) {
	chunk := IDChunk{PackedIDs: make([]byte, 17)}
	_, err := UnpackUlidChunk(chunk)
	assert.Error(t, err)
}
