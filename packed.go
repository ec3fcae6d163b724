package cbor

// packed.go implements the packed-CBOR unpacking engine (spec.md §4.6).
// There is no teacher or pack precedent for this mechanism — NanoCBOR's
// shared-item/table extension has no analog in the teacher's ASN.1 PER
// codec — so this follows spec.md's algorithm directly, shaped the way
// spec.md §9 asks: a single reusable helper that either reports "no packed
// form here" or rewrites the cursor in place, rather than a macro expanded
// at every call site.

type packedForm int

const (
	packedNone packedForm = iota
	packedReference
	packedTableDef
)

// detectPackedForm classifies the item at cur without consuming anything.
// For packedReference, width is the number of bytes the reference form
// itself occupies (1 for a direct simple-value reference, or the tag
// header plus its integer content for a tag-6 reference) and index is the
// resolved index to feed into followReference's forward stack-walk (spec.md
// §4.6's "Resolving a reference (index i)" — there is no end-relative
// addressing anywhere in that algorithm, for either tag-6 form). For
// packedTableDef, width is the tag header's width. Decode errors
// encountered while peeking are swallowed (packedNone, nil) and left for
// the ordinary decode path to report, since a malformed tag that merely
// resembles a packed form is not this engine's concern.
//
// A tag-6 reference is tag 6 wrapping a plain integer: a non-negative
// content n resolves to index 16+2n, a negative content -1-u to index
// 16+2u+1. Tag 6 wrapping anything other than an unsigned or negative
// integer item is not treated as a reference. An index too large for an
// int is reported as -1, which followReference rejects as undefined.
func detectPackedForm(buf []byte, cur, end int) (form packedForm, width, index int) {
	if cur >= end {
		return packedNone, 0, 0
	}
	major, info := splitInitialByte(buf[cur])

	if major == MajorFloat && info <= 15 {
		return packedReference, 1, int(info)
	}

	if major != MajorTag {
		return packedNone, 0, 0
	}
	arg, w, err := decodeArgumentFromInfo(buf, cur, end, info, 8)
	if err != nil {
		return packedNone, 0, 0
	}
	switch {
	case arg == 113:
		return packedTableDef, w, 0
	case arg == 6:
		if cur+w >= end {
			return packedNone, 0, 0
		}
		cMajor, cInfo := splitInitialByte(buf[cur+w])
		n, cw, err := decodeArgumentFromInfo(buf, cur+w, end, cInfo, 8)
		if err != nil || cMajor > MajorNegativeInt {
			return packedNone, 0, 0
		}
		if n > uint64(int(^uint(0)>>1)-17)/2 {
			return packedReference, w + cw, -1
		}
		return packedReference, w + cw, 16 + 2*int(n) + int(cMajor)
	default:
		return packedNone, 0, 0
	}
}

// resolvePacked follows zero or more layers of packed-CBOR forms at d's
// current position, mutating d in place, until the cursor stands on an
// item that is not itself a supported packed form. jumped reports whether
// resolution ever redirected d away from its original buffer by following
// a reference (as opposed to consuming a table definition inline, which
// stays in the same buffer). Callers use jumped to know whether the
// caller's original stream position needs separate restoration once the
// resolved value has been read (see read.go's withPacked).
func (d *Decoder) resolvePacked() (jumped bool, err error) {
	if d.fl&flagPacked == 0 {
		return false, nil
	}
	budget := d.maxDepth
	for {
		form, width, index := detectPackedForm(d.buf, d.cur, d.end)
		if form == packedNone {
			return jumped, nil
		}
		if budget <= 0 {
			return jumped, ErrRecursion
		}
		budget--
		switch form {
		case packedTableDef:
			if err := d.consumeTableDef(width, budget); err != nil {
				return jumped, err
			}
		case packedReference:
			if err := d.followReference(index); err != nil {
				return jumped, err
			}
			jumped = true
		}
	}
}

// consumeTableDef consumes a tag-113 table definition inline: it installs
// the definition's first element (an array of shareable items) as a new
// active table, then repositions d at the definition's second element (the
// rump), capping d.end to the rump's own extent.
func (d *Decoder) consumeTableDef(tagWidth, budget int) error {
	pos := d.cur + tagWidth
	if pos >= d.end {
		return ErrEndOfInput
	}
	major, info := splitInitialByte(d.buf[pos])
	if major != MajorArray || info == infoIndefinite {
		return ErrPackedFormat
	}
	count, width, err := decodeArgumentFromInfo(d.buf, pos, d.end, info, 8)
	if err != nil {
		return err
	}
	if count != 2 {
		return ErrPackedFormat
	}

	tableStart := pos + width
	if tableStart >= d.end {
		return ErrPackedFormat
	}
	tMajor, tInfo := splitInitialByte(d.buf[tableStart])
	if tMajor != MajorArray || tInfo == infoIndefinite {
		return ErrPackedFormat
	}
	_, tWidth, err := decodeArgumentFromInfo(d.buf, tableStart, d.end, tInfo, 8)
	if err != nil {
		return err
	}
	elementsStart := tableStart + tWidth
	tableEnd, err := skipOne(d.buf, tableStart, d.end, budget)
	if err != nil {
		return err
	}

	rumpStart := tableEnd
	rumpEnd, err := skipOne(d.buf, rumpStart, d.end, budget)
	if err != nil {
		return err
	}

	if d.active >= d.maxTables {
		return ErrPackedMemory
	}
	d.tables[d.active] = activeTable{buf: d.buf, start: elementsStart, end: tableEnd, length: -1}
	d.active++

	d.cur = rumpStart
	d.end = rumpEnd
	return nil
}

// followReference redirects d to the entry addressed by index into the
// concatenation of currently active tables, walked innermost table first
// per spec.md §4.6's "Resolving a reference (index i)": i is a plain
// forward index into that concatenation — both tag-6 forms (and the
// simple-value form) resolve to a forward index, despite the "negative"
// framing of one of them. After a successful follow, d's active table
// stack is truncated to the tables visible from the entry's own table
// outward, so nested packed forms inside the referenced item cannot see
// tables installed after it.
func (d *Decoder) followReference(index int) error {
	if index < 0 {
		return ErrPackedUndefinedReference
	}
	remaining := index
	for i := d.active - 1; i >= 0; i-- {
		n, err := d.tableItemCount(i)
		if err != nil {
			return err
		}
		if remaining < n {
			s, e, serr := nthItemSpan(d.tables[i].buf, d.tables[i].start, d.tables[i].end, remaining, d.maxDepth)
			if serr != nil {
				return serr
			}
			d.buf = d.tables[i].buf
			d.cur = s
			d.end = e
			d.active = i + 1
			return nil
		}
		remaining -= n
	}
	return ErrPackedUndefinedReference
}

// tableItemCount returns the number of items table i holds, computing and
// caching it on first use.
func (d *Decoder) tableItemCount(i int) (int, error) {
	t := &d.tables[i]
	if t.length >= 0 {
		return t.length, nil
	}
	count := 0
	cur := t.start
	for cur < t.end {
		next, err := skipOne(t.buf, cur, t.end, d.maxDepth)
		if err != nil {
			return 0, err
		}
		cur = next
		count++
	}
	t.length = count
	return count, nil
}

// nthItemSpan returns the byte span of the nth item (0-based) in the
// sequence starting at start and ending at end.
func nthItemSpan(buf []byte, start, end, n, depth int) (s, e int, err error) {
	cur := start
	for i := 0; i < n; i++ {
		cur, err = skipOne(buf, cur, end, depth)
		if err != nil {
			return 0, 0, err
		}
	}
	s = cur
	e, err = skipOne(buf, cur, end, depth)
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}

// installExternalTable installs table as the sole initial active table on
// a freshly constructed Decoder. table must hold exactly one definite-length
// CBOR array; anything else fails with ErrPackedFormat.
func (d *Decoder) installExternalTable(table []byte) error {
	if len(table) == 0 {
		return ErrPackedFormat
	}
	major, info := splitInitialByte(table[0])
	if major != MajorArray {
		return ErrPackedFormat
	}
	end, err := skipOne(table, 0, len(table), d.maxDepth)
	if err != nil {
		return ErrPackedFormat
	}
	if end != len(table) {
		return ErrPackedFormat
	}
	_, width, err := decodeArgumentFromInfo(table, 0, len(table), info, 8)
	if err != nil {
		return ErrPackedFormat
	}
	if d.active >= d.maxTables {
		return ErrPackedMemory
	}
	d.tables[d.active] = activeTable{buf: table, start: width, end: len(table), length: -1}
	d.active++
	return nil
}

// MajorType peeks at the cursor's current item without consuming it. The
// reported major type reflects the item as written on the wire — if packed
// support is enabled and the item is an unresolved packed form, resolved is
// false and major reports the literal major type present (MajorFloat for a
// simple-value reference, MajorTag for a tag-6 reference or a table
// definition), not the major type of whatever it would resolve to. This
// mirrors NanoCBOR's nanocbor_get_type peek.
func (d *Decoder) MajorType() (major MajorType, resolved bool, err error) {
	major, _, perr := d.peekInitialByte()
	if perr != nil {
		return 0, false, perr
	}
	if d.fl&flagPacked == 0 {
		return major, true, nil
	}
	form, _, _ := detectPackedForm(d.buf, d.cur, d.end)
	return major, form == packedNone, nil
}
