package cbor

// skipOne advances past exactly one CBOR item starting at cur, following
// spec.md §4.4's five-case major-type dispatch, and returns the position
// immediately after it. depth bounds nesting: it is decremented before
// recursing into a container element or a tag's content, and skipOne fails
// with ErrRecursion once it would go negative. skipOne never consults the
// packed-CBOR engine — it is a purely syntactic walk over whatever bytes
// are actually present, which is what both the public Skip operation and
// the packed engine's internal bookkeeping need.
func skipOne(buf []byte, cur, end, depth int) (int, error) {
	if cur >= end {
		return 0, ErrEndOfInput
	}
	major, info := splitInitialByte(buf[cur])

	switch major {
	case MajorUnsignedInt, MajorNegativeInt:
		return skipArgumentOnly(buf, cur, end, info)

	case MajorByteString, MajorTextString:
		return skipStringLike(buf, cur, end, info, depth)

	case MajorArray:
		return skipArray(buf, cur, end, info, depth)

	case MajorMap:
		return skipMap(buf, cur, end, info, depth)

	case MajorTag:
		next, err := skipArgumentOnly(buf, cur, end, info)
		if err != nil {
			return 0, err
		}
		if depth <= 0 {
			return 0, ErrRecursion
		}
		return skipOne(buf, next, end, depth-1)

	case MajorFloat:
		return skipSimpleOrFloat(buf, cur, end, info)
	}
	return 0, ErrInvalidType
}

// skipArgumentOnly advances past an item whose on-wire form is just an
// initial byte plus its argument (unsigned/negative integers, and the tag
// number of a MajorTag item).
func skipArgumentOnly(buf []byte, cur, end int, info uint8) (int, error) {
	w := argWidthBytes(info)
	if w < 0 {
		return 0, ErrInvalidType
	}
	next := cur + 1 + w
	if next > end {
		return 0, ErrEndOfInput
	}
	return next, nil
}

// skipStringLike advances past a byte or text string, definite or
// indefinite length.
func skipStringLike(buf []byte, cur, end int, info uint8, depth int) (int, error) {
	if info == infoIndefinite {
		next := cur + 1
		for {
			if next >= end {
				return 0, ErrEndOfInput
			}
			if buf[next] == breakByte {
				return next + 1, nil
			}
			chunkMajor, chunkInfo := splitInitialByte(buf[next])
			if chunkMajor != MajorByteString && chunkMajor != MajorTextString {
				return 0, ErrInvalidType
			}
			if chunkInfo == infoIndefinite {
				return 0, ErrInvalidType
			}
			n, err := skipStringLike(buf, next, end, chunkInfo, depth)
			if err != nil {
				return 0, err
			}
			next = n
		}
	}
	length, width, err := decodeArgumentFromInfo(buf, cur, end, info, 8)
	if err != nil {
		return 0, err
	}
	next := cur + width + int(length)
	if next > end || next < cur {
		return 0, ErrEndOfInput
	}
	return next, nil
}

// skipArray advances past an array, definite or indefinite length.
func skipArray(buf []byte, cur, end int, info uint8, depth int) (int, error) {
	if depth <= 0 {
		return 0, ErrRecursion
	}
	if info == infoIndefinite {
		next := cur + 1
		for {
			if next >= end {
				return 0, ErrEndOfInput
			}
			if buf[next] == breakByte {
				return next + 1, nil
			}
			n, err := skipOne(buf, next, end, depth-1)
			if err != nil {
				return 0, err
			}
			next = n
		}
	}
	count, width, err := decodeArgumentFromInfo(buf, cur, end, info, 8)
	if err != nil {
		return 0, err
	}
	next := cur + width
	for i := uint64(0); i < count; i++ {
		n, err := skipOne(buf, next, end, depth-1)
		if err != nil {
			return 0, err
		}
		next = n
	}
	return next, nil
}

// skipMap advances past a map, definite or indefinite length (each entry
// being two items: key then value).
func skipMap(buf []byte, cur, end int, info uint8, depth int) (int, error) {
	if depth <= 0 {
		return 0, ErrRecursion
	}
	if info == infoIndefinite {
		next := cur + 1
		for {
			if next >= end {
				return 0, ErrEndOfInput
			}
			if buf[next] == breakByte {
				return next + 1, nil
			}
			n, err := skipOne(buf, next, end, depth-1)
			if err != nil {
				return 0, err
			}
			n, err = skipOne(buf, n, end, depth-1)
			if err != nil {
				return 0, err
			}
			next = n
		}
	}
	pairs, width, err := decodeArgumentFromInfo(buf, cur, end, info, 8)
	if err != nil {
		return 0, err
	}
	next := cur + width
	for i := uint64(0); i < pairs; i++ {
		n, err := skipOne(buf, next, end, depth-1)
		if err != nil {
			return 0, err
		}
		n, err = skipOne(buf, n, end, depth-1)
		if err != nil {
			return 0, err
		}
		next = n
	}
	return next, nil
}

// skipSimpleOrFloat advances past a major-7 item: a boolean, null,
// undefined, simple value, or half/single/double float. The break byte
// (info 31) is not a valid standalone item and is rejected.
func skipSimpleOrFloat(buf []byte, cur, end int, info uint8) (int, error) {
	if info == infoIndefinite {
		return 0, ErrInvalidType
	}
	w := argWidthBytes(info)
	if w < 0 {
		return 0, ErrInvalidType
	}
	next := cur + 1 + w
	if next > end {
		return 0, ErrEndOfInput
	}
	return next, nil
}

// decodeArgumentFromInfo is decodeArgumentInfo's logic, usable without a
// live Decoder (skipOne works over raw buf/cur/end triples, including
// table buffers the Decoder isn't currently positioned on).
func decodeArgumentFromInfo(buf []byte, cur, end int, info uint8, maxWidth int) (value uint64, width int, err error) {
	tmp := Decoder{buf: buf, cur: cur, end: end}
	return tmp.decodeArgumentInfo(info, maxWidth)
}

// Skip advances d past exactly one item, recursively consuming any nested
// content, without decoding it into a value. It does not consult the
// packed-CBOR engine: it walks whatever bytes are literally present at the
// cursor. On success, if d is positioned inside a definite-length
// container, Remaining is decremented by one.
func (d *Decoder) Skip() error {
	next, err := skipOne(d.buf, d.cur, d.end, d.maxDepth)
	if err != nil {
		return err
	}
	d.cur = next
	if d.fl&flagContainer != 0 && d.fl&flagIndefinite == 0 {
		d.remaining--
	}
	return nil
}

// RawItem skips exactly one item at the cursor and returns the raw bytes it
// spanned, without decoding them. This mirrors NanoCBOR's
// nanocbor_get_subcbor: callers that want to forward, hash, or store an
// opaque sub-item use this instead of reconstructing it field by field.
func (d *Decoder) RawItem() ([]byte, error) {
	start := d.cur
	if err := d.Skip(); err != nil {
		return nil, err
	}
	return d.buf[start:d.cur], nil
}
