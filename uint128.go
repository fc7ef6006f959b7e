package idgen

import (
	"fmt"
	"math/big"
)

// Uint128 is a 128-bit unsigned integer, stored as two big-endian-ordered
// 64-bit halves. Go has no native 128-bit integer or atomic primitive, so
// the ULID family — whose layout is 128 bits wide — is built on this type
// instead of a native scalar.
//
// This is also why the ULID family does not get an atomic-CAS shell: per
// spec.md §9, "implementations on platforms without native 128-bit CAS
// must fall back to the mutex shell for ULID; this is documented but not
// a correctness compromise." Go is such a platform (sync/atomic tops out
// at 64 bits), so the ULID shells in ulid_shell.go are single-owner and
// mutex only.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Less reports whether u < v as a 128-bit unsigned integer.
func (u Uint128) Less(v Uint128) bool {
	if u.Hi != v.Hi {
		return u.Hi < v.Hi
	}
	return u.Lo < v.Lo
}

// Equal reports whether u == v.
func (u Uint128) Equal(v Uint128) bool {
	return u.Hi == v.Hi && u.Lo == v.Lo
}

// Or returns the bitwise OR of u and v.
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

// And returns the bitwise AND of u and v.
func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

// AddLo adds a small (<= 64-bit) delta to the low half, carrying into the
// high half on overflow. Used by the ULID core to increment the random
// tail by one within a millisecond.
func (u Uint128) AddLo(delta uint64) Uint128 {
	lo := u.Lo + delta
	hi := u.Hi
	if lo < u.Lo { // overflow, carry
		hi++
	}
	return Uint128{Hi: hi, Lo: lo}
}

// Shl returns u << n for 0 <= n < 128.
func (u Uint128) Shl(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64), Lo: 0}
	default:
		return Uint128{Hi: (u.Hi << n) | (u.Lo >> (64 - n)), Lo: u.Lo << n}
	}
}

// Shr returns u >> n for 0 <= n < 128.
func (u Uint128) Shr(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: 0, Lo: u.Hi >> (n - 64)}
	default:
		return Uint128{Hi: u.Hi >> n, Lo: (u.Lo >> n) | (u.Hi << (64 - n))}
	}
}

// FromUint64 widens a 64-bit value to Uint128.
func FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Bytes returns the 16-byte little-endian encoding of u, per the wire
// format normative rule in spec.md §6/§9.
func (u Uint128) Bytes() [16]byte {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(u.Lo >> (8 * i))
		b[8+i] = byte(u.Hi >> (8 * i))
	}
	return b
}

// Uint128FromBytes decodes a 16-byte little-endian buffer into a Uint128.
func Uint128FromBytes(b [16]byte) Uint128 {
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(b[i]) << (8 * i)
		hi |= uint64(b[8+i]) << (8 * i)
	}
	return Uint128{Hi: hi, Lo: lo}
}

// String renders u in decimal, via math/big — this is only used for
// human-readable output (logging, CLI), never on the hot path.
func (u Uint128) String() string {
	return u.big().String()
}

func (u Uint128) big() *big.Int {
	z := new(big.Int).SetUint64(u.Hi)
	z.Lsh(z, 64)
	z.Or(z, new(big.Int).SetUint64(u.Lo))
	return z
}

// Hex renders u as a zero-padded 32-character lowercase hex string.
func (u Uint128) Hex() string {
	return fmt.Sprintf("%016x%016x", u.Hi, u.Lo)
}
