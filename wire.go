package cbor

import "encoding/binary"

// Additional-information values with special meaning (RFC 8949 §3).
const (
	infoMaxInline  = 23 // 0..23: argument is the additional-info field itself
	info1Byte      = 24 // argument follows in 1 byte
	info2Byte      = 25 // argument follows in 2 bytes, big-endian
	info4Byte      = 26 // argument follows in 4 bytes, big-endian
	info8Byte      = 27 // argument follows in 8 bytes, big-endian
	infoIndefinite = 31 // indefinite-length marker / break byte

	// breakByte terminates an indefinite-length array or map (major 7,
	// additional info 31).
	breakByte = 0xFF
)

// Simple-value additional-info codes used directly by major type 7.
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
)

// splitInitialByte decomposes a CBOR initial byte into its major type (top
// 3 bits) and additional-information field (low 5 bits).
func splitInitialByte(b byte) (MajorType, uint8) {
	return MajorType(b >> 5), b & 0x1f
}

// peekInitialByte returns the major type and additional-info field of the
// byte at d.cur without consuming it. It fails with ErrEndOfInput if d.cur
// has no readable byte.
func (d *Decoder) peekInitialByte() (MajorType, uint8, error) {
	if d.cur >= d.end {
		return 0, 0, ErrEndOfInput
	}
	major, info := splitInitialByte(d.buf[d.cur])
	return major, info, nil
}

// decodeArgument decodes the argument of the item at d.cur, which must be of
// major type want. It does not advance d; callers use the returned width to
// do so once the rest of the item (if any) has also been validated. width
// counts the initial byte plus any following argument bytes, not any
// subsequent payload.
//
// decodeArgument rejects the indefinite marker (additional info 31) as an
// argument; callers that must allow indefinite-length items (container
// entry) inspect the initial byte directly instead of calling this
// function.
func (d *Decoder) decodeArgument(want MajorType, maxWidth int) (value uint64, width int, err error) {
	major, info, err := d.peekInitialByte()
	if err != nil {
		return 0, 0, err
	}
	if major != want {
		return 0, 0, ErrInvalidType
	}
	return d.decodeArgumentInfo(info, maxWidth)
}

// decodeArgumentInfo decodes the argument given an already-extracted
// additional-info field, reading any following bytes from immediately
// after d.cur's initial byte. It is shared by decodeArgument (major type
// already checked) and callers that dispatch on major type 7's
// additional-info directly (float/simple/tag).
func (d *Decoder) decodeArgumentInfo(info uint8, maxWidth int) (value uint64, width int, err error) {
	switch {
	case info <= infoMaxInline:
		return uint64(info), 1, nil
	case info == info1Byte:
		if maxWidth < 1 {
			return 0, 0, ErrOverflow
		}
		if d.cur+2 > d.end {
			return 0, 0, ErrEndOfInput
		}
		return uint64(d.buf[d.cur+1]), 2, nil
	case info == info2Byte:
		if maxWidth < 2 {
			return 0, 0, ErrOverflow
		}
		if d.cur+3 > d.end {
			return 0, 0, ErrEndOfInput
		}
		return uint64(binary.BigEndian.Uint16(d.buf[d.cur+1 : d.cur+3])), 3, nil
	case info == info4Byte:
		if maxWidth < 4 {
			return 0, 0, ErrOverflow
		}
		if d.cur+5 > d.end {
			return 0, 0, ErrEndOfInput
		}
		return uint64(binary.BigEndian.Uint32(d.buf[d.cur+1 : d.cur+5])), 5, nil
	case info == info8Byte:
		if maxWidth < 8 {
			return 0, 0, ErrOverflow
		}
		if d.cur+9 > d.end {
			return 0, 0, ErrEndOfInput
		}
		return binary.BigEndian.Uint64(d.buf[d.cur+1 : d.cur+9]), 9, nil
	default: // infoIndefinite (31) or reserved 28..30
		return 0, 0, ErrInvalidType
	}
}

// argWidthBytes returns how many bytes the additional-info field says will
// follow the initial byte as the encoded argument: 0 for an inline value,
// or 1/2/4/8. It returns -1 for the indefinite marker and reserved codes.
func argWidthBytes(info uint8) int {
	switch info {
	case info1Byte:
		return 1
	case info2Byte:
		return 2
	case info4Byte:
		return 4
	case info8Byte:
		return 8
	default:
		if info <= infoMaxInline {
			return 0
		}
		return -1
	}
}
