// idgen - ulid_layout.go provides the compile-time bit-field descriptor
// for the ULID family: reserved | timestamp | random, widths summing to
// 128 bits, backed by Uint128 since Go has no native 128-bit scalar.

package idgen

import "fmt"

// Uint128Field is the Uint128 analog of Field: an LSB-relative bit range
// within a 128-bit word.
type Uint128Field struct {
	Offset uint
	Width  uint
}

// Mask returns a Uint128 with the low Width bits set.
func (f Uint128Field) Mask() Uint128 {
	if f.Width == 0 {
		return Uint128{}
	}
	return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}.Shr(128 - f.Width)
}

// Max returns the largest value the field can hold.
func (f Uint128Field) Max() Uint128 {
	return f.Mask()
}

func (f Uint128Field) extract(word Uint128) Uint128 {
	return word.Shr(f.Offset).And(f.Mask())
}

func (f Uint128Field) place(value Uint128) Uint128 {
	if f.Width > 0 && f.Max().Less(value) {
		panic(fmt.Sprintf("idgen: value %s exceeds field max %s (width=%d)", value, f.Max(), f.Width))
	}
	return value.And(f.Mask()).Shl(f.Offset)
}

// UlidLayout is the immutable bit-field descriptor for the ULID family:
// reserved | timestamp | random, widths summing to 128.
type UlidLayout struct {
	Name      string
	Reserved  Uint128Field
	Timestamp Uint128Field
	Random    Uint128Field
}

// Validate checks that field widths sum to 128 and are contiguous in
// random-then-timestamp-then-reserved order.
func (l UlidLayout) Validate() error {
	total := l.Reserved.Width + l.Timestamp.Width + l.Random.Width
	if total != 128 {
		return newConfigurationError("Layout", l.Name,
			fmt.Sprintf("field widths sum to %d, not 128", total),
			fmt.Sprintf("reserved(%d)+timestamp(%d)+random(%d) must equal 128",
				l.Reserved.Width, l.Timestamp.Width, l.Random.Width))
	}
	wantRandom := Uint128Field{Offset: 0, Width: l.Random.Width}
	wantTimestamp := Uint128Field{Offset: l.Random.Width, Width: l.Timestamp.Width}
	wantReserved := Uint128Field{Offset: l.Random.Width + l.Timestamp.Width, Width: l.Reserved.Width}
	if l.Random != wantRandom || l.Timestamp != wantTimestamp || l.Reserved != wantReserved {
		return newConfigurationError("Layout", l.Name, "fields are not contiguous in random,timestamp,reserved order",
			"offsets must be derived from field widths, not set independently")
	}
	return nil
}

// Pack composes a 128-bit word from (timestamp, random). Values exceeding
// their field's range panic — see the package-level precondition note in
// layout.go.
func (l UlidLayout) Pack(ts uint64, random Uint128) Uint128 {
	return l.Timestamp.place(FromUint64(ts)).Or(l.Random.place(random))
}

// Unpack decomposes a 128-bit word into (timestamp, random, reserved).
func (l UlidLayout) Unpack(word Uint128) (ts uint64, random Uint128, reserved Uint128) {
	return l.Timestamp.extract(word).Lo, l.Random.extract(word), l.Reserved.extract(word)
}

// ReservedMask returns the mask covering this layout's reserved field.
func (l UlidLayout) ReservedMask() Uint128 {
	return l.Reserved.Mask().Shl(l.Reserved.Offset)
}

// LayoutULID is the canonical ULID layout from spec.md §6: no reserved
// bits, 48-bit millisecond timestamp, 80-bit random tail.
var LayoutULID = UlidLayout{
	Name:      "ulid",
	Random:    Uint128Field{Offset: 0, Width: 80},
	Timestamp: Uint128Field{Offset: 80, Width: 48},
	Reserved:  Uint128Field{Offset: 128, Width: 0},
}
