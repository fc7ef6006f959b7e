package idgen

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

// RandSource delivers uniformly random bits for the ULID random field.
// Implementations must be safe for concurrent use (or thread-local) but
// are not required to be cryptographically secure — cost and quality are
// the implementation's trade-off to make, per spec.md §4.3.
type RandSource interface {
	// Uint64 returns 64 random bits. The ULID core draws two of these
	// (and discards the unused high bits of the second) to fill an
	// 80-bit random field.
	Uint64() uint64
}

// CryptoRandSource is the default RandSource, backed by crypto/rand. A
// small per-call buffer is reused via sync.Pool to keep the hot path
// allocation-free, mirroring the zero-allocation discipline the teacher
// applies to its own hot path.
type CryptoRandSource struct {
	pool sync.Pool
}

// NewCryptoRandSource builds a CryptoRandSource.
func NewCryptoRandSource() *CryptoRandSource {
	return &CryptoRandSource{
		pool: sync.Pool{New: func() any { b := make([]byte, 8); return &b }},
	}
}

// Uint64 implements RandSource.
func (c *CryptoRandSource) Uint64() uint64 {
	bufp := c.pool.Get().(*[]byte)
	defer c.pool.Put(bufp)
	buf := *bufp
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is
		// unavailable, which is unrecoverable for any caller; there is
		// no Pending-style backoff that helps here.
		panic("idgen: crypto/rand unavailable: " + err.Error())
	}
	return binary.BigEndian.Uint64(buf)
}

// FixedRandSource is a test double that replays a scripted sequence of
// Uint64 values, repeating the last one once exhausted — the ULID analog
// of SequenceTimeSource, used to reproduce scenarios E and F from
// spec.md §8 bit-exactly.
type FixedRandSource struct {
	mu     sync.Mutex
	values []uint64
	idx    int
}

// NewFixedRandSource builds a FixedRandSource over values.
func NewFixedRandSource(values ...uint64) *FixedRandSource {
	if len(values) == 0 {
		panic("idgen: FixedRandSource requires at least one value")
	}
	cp := make([]uint64, len(values))
	copy(cp, values)
	return &FixedRandSource{values: cp}
}

// Uint64 implements RandSource.
func (f *FixedRandSource) Uint64() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values[f.idx]
	if f.idx < len(f.values)-1 {
		f.idx++
	}
	return v
}
