package cbor

import "math"

// halfBitsToFloat32Bits widens an IEEE-754 binary16 bit pattern to the
// equivalent binary32 bit pattern. Normal and infinite/NaN values are
// rebiased directly; subnormals use the magic-number technique: the
// fraction is placed where a binary32 subnormal-adjacent normal's fraction
// would be (biased exponent fixed so the result equals 2^-14 plus the
// subnormal's value), then 2^-14 is subtracted back out.
func halfBitsToFloat32Bits(h uint16) uint32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if frac == 0 {
			return sign
		}
		const magicExp = 113 // biased exponent of 2^-14 in binary32
		magic := math.Float32frombits(magicExp << 23)
		val := math.Float32frombits((magicExp<<23)|(frac<<13)) - magic
		bits := math.Float32bits(val)
		return sign | bits
	case 0x1f:
		return sign | 0xff<<23 | (frac << 13)
	default:
		return sign | ((exp + 112) << 23) | (frac << 13)
	}
}

// float32BitsToFloat64Bits widens a binary32 bit pattern to the equivalent
// binary64 bit pattern, bit for bit (including NaN payload placement),
// without relying on the language's float32-to-float64 conversion.
func float32BitsToFloat64Bits(bits uint32) uint64 {
	sign := uint64(bits>>31) << 63
	exp := (bits >> 23) & 0xff
	frac := uint64(bits & 0x7fffff)

	switch exp {
	case 0:
		if frac == 0 {
			return sign
		}
		e := -126
		for frac&0x800000 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x7fffff
		return sign | uint64(e+1023)<<52 | frac<<29
	case 0xff:
		return sign | 0x7ff<<52 | frac<<29
	default:
		return sign | uint64(int(exp)-127+1023)<<52 | frac<<29
	}
}

// decodeHalf decodes a 2-byte IEEE-754 binary16 value as a float64, widened
// through binary32 per spec.md §4.2.
func decodeHalf(b0, b1 byte) float64 {
	h := uint16(b0)<<8 | uint16(b1)
	f32 := halfBitsToFloat32Bits(h)
	return math.Float64frombits(float32BitsToFloat64Bits(f32))
}

// decodeSingle decodes a 4-byte IEEE-754 binary32 value as a float64.
func decodeSingle(bits uint32) float64 {
	return math.Float64frombits(float32BitsToFloat64Bits(bits))
}

// decodeDouble decodes an 8-byte IEEE-754 binary64 value.
func decodeDouble(bits uint64) float64 {
	return math.Float64frombits(bits)
}
