package cbor

import "math"

// read.go implements the typed readers of spec.md §4.2: one method per
// CBOR construct, each returning (value, error), mirroring the teacher's
// one-method-per-construct style (EncodeInteger, EncodeBoolean, ...) on the
// decode side.
//
// Every reader is wrapped in withPacked, which — when packed support is
// enabled — resolves the cursor through the packed-CBOR engine before
// decoding, and afterward restores the caller's original stream position
// if resolution followed a reference into a table (see packed.go). Readers
// that fully consume one logical item call consumeOne afterward so
// Remaining stays accurate; GetTag does not, since it only consumes a
// prefix of the item the caller is still in the middle of reading.
//
// Text strings are not zero-copy the way the source's pointer+length pair
// is: converting a byte slice to a Go string copies it, since Go strings
// are immutable and this package does not reach for unsafe to avoid that
// copy. Byte strings remain zero-copy — GetByteString returns a sub-slice
// of the input.

// withPacked resolves d through the packed-CBOR engine, runs body against
// the resolved position, and restores d's original buffer/cursor/table
// state if resolution followed a reference into a table, so the caller's
// stream position advances by the reference form's own width rather than
// by whatever was consumed inside the table.
func withPacked[T any](d *Decoder, body func() (T, error)) (T, error) {
	var zero T
	origBuf, origCur, origEnd := d.buf, d.cur, d.end
	origTables, origActive := d.tables, d.active

	jumped, err := d.resolvePacked()
	if err != nil {
		return zero, err
	}
	v, err := body()
	if err != nil {
		return zero, err
	}
	if jumped {
		next, serr := skipOne(origBuf, origCur, origEnd, d.maxDepth)
		if serr != nil {
			return zero, serr
		}
		d.buf = origBuf
		d.end = origEnd
		d.cur = next
		d.tables = origTables
		d.active = origActive
	}
	return v, nil
}

// consumeOne decrements Remaining when d is positioned inside a
// definite-length container, after a reader has fully consumed one item.
func (d *Decoder) consumeOne() {
	if d.fl&flagContainer != 0 && d.fl&flagIndefinite == 0 {
		d.remaining--
	}
}

func checkUnsignedRange(n uint64, bits int) error {
	if bits >= 64 {
		if n > uint64(1)<<63-1 {
			return ErrOverflow
		}
		return nil
	}
	if n > uint64(1)<<(bits-1)-1 {
		return ErrOverflow
	}
	return nil
}

// checkNegativeRange excludes the most negative representable value, per
// spec.md §4.2's note on signed readers.
func checkNegativeRange(n uint64, bits int) error {
	var maxN uint64
	if bits >= 64 {
		maxN = uint64(1)<<63 - 2
	} else {
		maxN = uint64(1)<<(bits-1) - 2
	}
	if n > maxN {
		return ErrOverflow
	}
	return nil
}

func (d *Decoder) rawUnsignedBits(bits int) (uint64, error) {
	v, width, err := d.decodeArgument(MajorUnsignedInt, bits/8)
	if err != nil {
		return 0, err
	}
	d.cur += width
	return v, nil
}

func (d *Decoder) getUnsignedBits(bits int) (uint64, error) {
	return withPacked(d, func() (uint64, error) { return d.rawUnsignedBits(bits) })
}

// GetUint8 decodes an unsigned integer item as a uint8.
func (d *Decoder) GetUint8() (uint8, error) {
	v, err := d.getUnsignedBits(8)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return uint8(v), nil
}

// GetUint16 decodes an unsigned integer item as a uint16.
func (d *Decoder) GetUint16() (uint16, error) {
	v, err := d.getUnsignedBits(16)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return uint16(v), nil
}

// GetUint32 decodes an unsigned integer item as a uint32.
func (d *Decoder) GetUint32() (uint32, error) {
	v, err := d.getUnsignedBits(32)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return uint32(v), nil
}

// GetUint64 decodes an unsigned integer item as a uint64.
func (d *Decoder) GetUint64() (uint64, error) {
	v, err := d.getUnsignedBits(64)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return v, nil
}

func (d *Decoder) rawSignedBits(bits int) (int64, error) {
	major, info, err := d.peekInitialByte()
	if err != nil {
		return 0, err
	}
	switch major {
	case MajorUnsignedInt:
		n, width, err := d.decodeArgumentInfo(info, bits/8)
		if err != nil {
			return 0, err
		}
		if err := checkUnsignedRange(n, bits); err != nil {
			return 0, err
		}
		d.cur += width
		return int64(n), nil
	case MajorNegativeInt:
		n, width, err := d.decodeArgumentInfo(info, bits/8)
		if err != nil {
			return 0, err
		}
		if err := checkNegativeRange(n, bits); err != nil {
			return 0, err
		}
		d.cur += width
		return -1 - int64(n), nil
	default:
		return 0, ErrInvalidType
	}
}

func (d *Decoder) getSignedBits(bits int) (int64, error) {
	return withPacked(d, func() (int64, error) { return d.rawSignedBits(bits) })
}

// GetInt8 decodes a signed integer item as an int8. The most negative
// representable value (-128) is rejected with ErrOverflow.
func (d *Decoder) GetInt8() (int8, error) {
	v, err := d.getSignedBits(8)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return int8(v), nil
}

// GetInt16 decodes a signed integer item as an int16, excluding -32768.
func (d *Decoder) GetInt16() (int16, error) {
	v, err := d.getSignedBits(16)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return int16(v), nil
}

// GetInt32 decodes a signed integer item as an int32, excluding
// math.MinInt32.
func (d *Decoder) GetInt32() (int32, error) {
	v, err := d.getSignedBits(32)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return int32(v), nil
}

// GetInt64 decodes a signed integer item as an int64, excluding
// math.MinInt64.
func (d *Decoder) GetInt64() (int64, error) {
	v, err := d.getSignedBits(64)
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return v, nil
}

func (d *Decoder) readStringLike(want MajorType) ([]byte, error) {
	major, info, err := d.peekInitialByte()
	if err != nil {
		return nil, err
	}
	if major != want {
		return nil, ErrInvalidType
	}
	if info == infoIndefinite {
		return nil, ErrInvalidType
	}
	length, width, err := d.decodeArgumentInfo(info, 8)
	if err != nil {
		return nil, err
	}
	start := d.cur + width
	end := start + int(length)
	if end > d.end || end < start {
		return nil, ErrEndOfInput
	}
	d.cur = end
	return d.buf[start:end], nil
}

// GetByteString decodes a definite-length byte string, returning a
// zero-copy slice into the input.
func (d *Decoder) GetByteString() ([]byte, error) {
	v, err := withPacked(d, func() ([]byte, error) { return d.readStringLike(MajorByteString) })
	if err != nil {
		return nil, err
	}
	d.consumeOne()
	return v, nil
}

// GetTextString decodes a definite-length text string. Unlike
// GetByteString this allocates, since converting bytes to a Go string
// copies them.
func (d *Decoder) GetTextString() (string, error) {
	v, err := withPacked(d, func() (string, error) {
		b, err := d.readStringLike(MajorTextString)
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
	if err != nil {
		return "", err
	}
	d.consumeOne()
	return v, nil
}

// GetTag decodes a tag item's tag number, leaving the cursor positioned at
// the tagged content item rather than skipping past it. GetTag does not
// decrement Remaining — the content item, read separately, does.
func (d *Decoder) GetTag() (uint32, error) {
	return withPacked(d, func() (uint32, error) {
		v, width, err := d.decodeArgument(MajorTag, 4)
		if err != nil {
			return 0, err
		}
		d.cur += width
		return uint32(v), nil
	})
}

// GetNull consumes a null item.
func (d *Decoder) GetNull() error {
	_, err := withPacked(d, func() (struct{}, error) {
		major, info, err := d.peekInitialByte()
		if err != nil {
			return struct{}{}, err
		}
		if major != MajorFloat || info != simpleNull {
			return struct{}{}, ErrInvalidType
		}
		d.cur++
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	d.consumeOne()
	return nil
}

// GetUndefined consumes an undefined item.
func (d *Decoder) GetUndefined() error {
	_, err := withPacked(d, func() (struct{}, error) {
		major, info, err := d.peekInitialByte()
		if err != nil {
			return struct{}{}, err
		}
		if major != MajorFloat || info != simpleUndefined {
			return struct{}{}, ErrInvalidType
		}
		d.cur++
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	d.consumeOne()
	return nil
}

// GetBool decodes a boolean item.
func (d *Decoder) GetBool() (bool, error) {
	v, err := withPacked(d, func() (bool, error) {
		major, info, err := d.peekInitialByte()
		if err != nil {
			return false, err
		}
		if major != MajorFloat {
			return false, ErrInvalidType
		}
		switch info {
		case simpleFalse:
			d.cur++
			return false, nil
		case simpleTrue:
			d.cur++
			return true, nil
		default:
			return false, ErrInvalidType
		}
	})
	if err != nil {
		return false, err
	}
	d.consumeOne()
	return v, nil
}

// GetSimple decodes a simple value, returning its numeric value. Inline
// values 0..23 are all accepted, including false/true/null/undefined
// (20..23). Additional-info codes 25..31 (float widths and the break
// marker) are not simple values and are rejected, as are 1-byte extended
// encodings of values below 32 — 0..23 have an inline form and 24..31 are
// reserved.
func (d *Decoder) GetSimple() (uint8, error) {
	v, err := withPacked(d, func() (uint8, error) {
		major, info, err := d.peekInitialByte()
		if err != nil {
			return 0, err
		}
		if major != MajorFloat {
			return 0, ErrInvalidType
		}
		switch {
		case info <= infoMaxInline:
			d.cur++
			return info, nil
		case info == info1Byte:
			if d.cur+2 > d.end {
				return 0, ErrEndOfInput
			}
			val := d.buf[d.cur+1]
			if val < 32 {
				return 0, ErrInvalidType
			}
			d.cur += 2
			return val, nil
		default:
			return 0, ErrInvalidType
		}
	})
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return v, nil
}

// GetFloat decodes a half- or single-precision float item, widened to
// float32.
func (d *Decoder) GetFloat() (float32, error) {
	v, err := withPacked(d, func() (float32, error) {
		major, info, err := d.peekInitialByte()
		if err != nil {
			return 0, err
		}
		if major != MajorFloat {
			return 0, ErrInvalidType
		}
		switch info {
		case info2Byte:
			bits, width, err := d.decodeArgumentInfo(info, 2)
			if err != nil {
				return 0, err
			}
			d.cur += width
			return math.Float32frombits(halfBitsToFloat32Bits(uint16(bits))), nil
		case info4Byte:
			bits, width, err := d.decodeArgumentInfo(info, 4)
			if err != nil {
				return 0, err
			}
			d.cur += width
			return math.Float32frombits(uint32(bits)), nil
		default:
			return 0, ErrInvalidType
		}
	})
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return v, nil
}

// GetDouble decodes a half-, single-, or double-precision float item,
// widened to float64.
func (d *Decoder) GetDouble() (float64, error) {
	v, err := withPacked(d, func() (float64, error) {
		major, info, err := d.peekInitialByte()
		if err != nil {
			return 0, err
		}
		if major != MajorFloat {
			return 0, ErrInvalidType
		}
		switch info {
		case info2Byte:
			bits, width, err := d.decodeArgumentInfo(info, 2)
			if err != nil {
				return 0, err
			}
			d.cur += width
			return decodeHalf(byte(bits>>8), byte(bits)), nil
		case info4Byte:
			bits, width, err := d.decodeArgumentInfo(info, 4)
			if err != nil {
				return 0, err
			}
			d.cur += width
			return decodeSingle(uint32(bits)), nil
		case info8Byte:
			bits, width, err := d.decodeArgumentInfo(info, 8)
			if err != nil {
				return 0, err
			}
			d.cur += width
			return decodeDouble(bits), nil
		default:
			return 0, ErrInvalidType
		}
	})
	if err != nil {
		return 0, err
	}
	d.consumeOne()
	return v, nil
}

// GetDecimalFraction decodes a tag-4 decimal fraction, [exponent,
// mantissa], returning the two signed 32-bit integers directly rather than
// the wrapping tag and array. Per spec.md §4.2's typing of this reader's
// output as "two signed 32-bit integers", a magnitude that doesn't fit an
// int32 is rejected with ErrOverflow rather than silently widened.
func (d *Decoder) GetDecimalFraction() (exponent int32, mantissa int32, err error) {
	type fraction struct{ e, m int32 }
	v, err := withPacked(d, func() (fraction, error) {
		tagVal, width, err := d.decodeArgument(MajorTag, 8)
		if err != nil {
			return fraction{}, err
		}
		if tagVal != 4 {
			return fraction{}, ErrInvalidType
		}
		d.cur += width

		major, info, err := d.peekInitialByte()
		if err != nil {
			return fraction{}, err
		}
		if major != MajorArray || info == infoIndefinite {
			return fraction{}, ErrInvalidType
		}
		count, awidth, err := d.decodeArgumentInfo(info, 8)
		if err != nil {
			return fraction{}, err
		}
		if count != 2 {
			return fraction{}, ErrInvalidType
		}
		d.cur += awidth

		e, err := d.rawSignedBits(32)
		if err != nil {
			return fraction{}, err
		}
		m, err := d.rawSignedBits(32)
		if err != nil {
			return fraction{}, err
		}
		return fraction{e: int32(e), m: int32(m)}, nil
	})
	if err != nil {
		return 0, 0, err
	}
	d.consumeOne()
	return v.e, v.m, nil
}
