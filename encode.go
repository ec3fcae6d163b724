package cbor

import (
	"encoding/binary"
	"math"
)

// encode.go implements the encoder half of spec.md §6: a cursor over a
// caller-owned destination buffer, with one method per CBOR construct,
// following the teacher's per-construct style of citing the governing
// specification clause directly above each method — ported here from
// ITU-T X.691 clause numbers to RFC 8949 section numbers.
//
// Encoder tracks the total encoded length regardless of destination
// capacity: once dst's capacity is exhausted, further Put* calls stop
// writing but keep advancing Len, so a caller can size a buffer with one
// dry-run pass and then re-encode into it, matching NanoCBOR's
// nanocbor_fmt_* dry-run convention.

// Encoder is a cursor over a caller-owned destination slice.
type Encoder struct {
	dst []byte
	len int
}

// NewEncoder creates an Encoder that appends into dst (dst[:0], so any
// existing contents are overwritten from the start). Pass a nil or
// zero-capacity slice to run a dry-run length count without writing
// anything.
func NewEncoder(dst []byte) *Encoder {
	return &Encoder{dst: dst[:0]}
}

// Len returns the total number of bytes encoded so far, including bytes
// that did not fit in dst's capacity.
func (e *Encoder) Len() int { return e.len }

// Bytes returns the portion of dst actually written.
func (e *Encoder) Bytes() []byte { return e.dst }

// appendBytes appends b to dst if capacity allows, and unconditionally
// advances Len by len(b).
func (e *Encoder) appendBytes(b []byte) {
	if len(e.dst)+len(b) <= cap(e.dst) {
		e.dst = append(e.dst, b...)
	}
	e.len += len(b)
}

// putHeader encodes an initial byte plus its argument (RFC 8949 §3),
// choosing the shortest of the inline / 1 / 2 / 4 / 8-byte forms.
func (e *Encoder) putHeader(major MajorType, arg uint64) {
	var buf [9]byte
	b := byte(major) << 5
	switch {
	case arg <= infoMaxInline:
		buf[0] = b | byte(arg)
		e.appendBytes(buf[:1])
	case arg <= 0xff:
		buf[0] = b | info1Byte
		buf[1] = byte(arg)
		e.appendBytes(buf[:2])
	case arg <= 0xffff:
		buf[0] = b | info2Byte
		binary.BigEndian.PutUint16(buf[1:3], uint16(arg))
		e.appendBytes(buf[:3])
	case arg <= 0xffffffff:
		buf[0] = b | info4Byte
		binary.BigEndian.PutUint32(buf[1:5], uint32(arg))
		e.appendBytes(buf[:5])
	default:
		buf[0] = b | info8Byte
		binary.BigEndian.PutUint64(buf[1:9], arg)
		e.appendBytes(buf[:9])
	}
}

// PutUint encodes an unsigned integer (RFC 8949 §3.1, major type 0).
func (e *Encoder) PutUint(v uint64) { e.putHeader(MajorUnsignedInt, v) }

// PutInt encodes a signed integer (RFC 8949 §3.1, major types 0 and 1).
func (e *Encoder) PutInt(v int64) {
	if v >= 0 {
		e.putHeader(MajorUnsignedInt, uint64(v))
		return
	}
	e.putHeader(MajorNegativeInt, uint64(-1-v))
}

// PutByteString encodes a definite-length byte string (RFC 8949 §3.1,
// major type 2).
func (e *Encoder) PutByteString(b []byte) {
	e.putHeader(MajorByteString, uint64(len(b)))
	e.appendBytes(b)
}

// PutTextString encodes a definite-length text string (RFC 8949 §3.1,
// major type 3).
func (e *Encoder) PutTextString(s string) {
	e.putHeader(MajorTextString, uint64(len(s)))
	e.appendBytes([]byte(s))
}

// PutArrayHeader encodes a definite-length array header (RFC 8949 §3.1,
// major type 4); the caller follows with exactly n encoded items.
func (e *Encoder) PutArrayHeader(n int) { e.putHeader(MajorArray, uint64(n)) }

// PutArrayIndefiniteHeader opens an indefinite-length array (RFC 8949
// §3.2.1); the caller terminates it with PutBreak.
func (e *Encoder) PutArrayIndefiniteHeader() {
	e.appendBytes([]byte{byte(MajorArray)<<5 | infoIndefinite})
}

// PutMapHeader encodes a definite-length map header (RFC 8949 §3.1, major
// type 5); the caller follows with exactly n encoded key/value pairs.
func (e *Encoder) PutMapHeader(n int) { e.putHeader(MajorMap, uint64(n)) }

// PutMapIndefiniteHeader opens an indefinite-length map (RFC 8949 §3.2.1);
// the caller terminates it with PutBreak.
func (e *Encoder) PutMapIndefiniteHeader() {
	e.appendBytes([]byte{byte(MajorMap)<<5 | infoIndefinite})
}

// PutBreak terminates an indefinite-length array or map (RFC 8949 §3.2.1).
func (e *Encoder) PutBreak() { e.appendBytes([]byte{breakByte}) }

// PutTag encodes a tag header (RFC 8949 §3.4); the caller follows with the
// tagged content item.
func (e *Encoder) PutTag(tag uint32) { e.putHeader(MajorTag, uint64(tag)) }

// PutNull encodes the null simple value (RFC 8949 §3.3).
func (e *Encoder) PutNull() { e.appendBytes([]byte{byte(MajorFloat)<<5 | simpleNull}) }

// PutUndefined encodes the undefined simple value (RFC 8949 §3.3).
func (e *Encoder) PutUndefined() {
	e.appendBytes([]byte{byte(MajorFloat)<<5 | simpleUndefined})
}

// PutBool encodes a boolean (RFC 8949 §3.3).
func (e *Encoder) PutBool(v bool) {
	if v {
		e.appendBytes([]byte{byte(MajorFloat)<<5 | simpleTrue})
		return
	}
	e.appendBytes([]byte{byte(MajorFloat)<<5 | simpleFalse})
}

// PutSimple encodes a simple value other than false/true/null/undefined
// (RFC 8949 §3.3). Values 0..19 use the inline form; 32..255 use the
// 1-byte extension. PutSimple panics for 20..31: 20..23 are written by
// PutBool, PutNull and PutUndefined, and 24..31 are reserved with no valid
// encoding. Asking for either is a caller bug, not a runtime condition a
// returned error would help with.
func (e *Encoder) PutSimple(v uint8) {
	switch {
	case v <= 19:
		e.appendBytes([]byte{byte(MajorFloat)<<5 | v})
	case v >= 32:
		e.appendBytes([]byte{byte(MajorFloat)<<5 | info1Byte, v})
	default:
		panic("cbor: simple value 20..31 has no valid encoding")
	}
}

// PutFloat encodes a single-precision float (RFC 8949 §3.3). This package
// never emits the half-precision form when encoding — spec.md §9 scopes
// half-float encoding out, so PutFloat always chooses binary32.
func (e *Encoder) PutFloat(v float32) {
	var buf [5]byte
	buf[0] = byte(MajorFloat)<<5 | info4Byte
	binary.BigEndian.PutUint32(buf[1:], math.Float32bits(v))
	e.appendBytes(buf[:])
}

// PutDouble encodes a double-precision float (RFC 8949 §3.3).
func (e *Encoder) PutDouble(v float64) {
	var buf [9]byte
	buf[0] = byte(MajorFloat)<<5 | info8Byte
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(v))
	e.appendBytes(buf[:])
}

// PutDecimalFraction encodes a tag-4 decimal fraction, [exponent, mantissa]
// (RFC 8949 §3.4.4), matching GetDecimalFraction's 32-bit typing of both
// fields (spec.md §4.2).
func (e *Encoder) PutDecimalFraction(exponent, mantissa int32) {
	e.PutTag(4)
	e.PutArrayHeader(2)
	e.PutInt(int64(exponent))
	e.PutInt(int64(mantissa))
}

// PutRaw appends already-encoded CBOR bytes verbatim — for forwarding an
// opaque item obtained from Decoder.RawItem without re-encoding it.
func (e *Encoder) PutRaw(b []byte) { e.appendBytes(b) }
