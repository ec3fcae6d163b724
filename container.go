package cbor

// container.go implements array and map traversal (spec.md §4.3): entering
// a container produces a child cursor scoped to the container's content;
// leaving it advances the parent past the whole container. The general
// "push a child scope, pop it back on leave" shape follows the same stack
// bookkeeping idea as the teacher's tokenizer state (push/pop a nesting
// level per container), generalized here to a derived cursor value instead
// of an integer depth counter: each cursor keeps its own offset (and end)
// into the shared input slice, so parent and child are positioned
// independently.

// enterContainer resolves d's current item through the packed engine (if
// enabled), verifies it is a container of major type want, and returns a
// new cursor scoped to that container's content. d itself is not advanced;
// only Leave advances it, once the child has been fully consumed.
func (d *Decoder) enterContainer(want MajorType) (Decoder, error) {
	resolved := *d
	jumped, err := resolved.resolvePacked()
	if err != nil {
		return Decoder{}, err
	}
	if !jumped {
		d.tables = resolved.tables
		d.active = resolved.active
	}

	major, info, err := resolved.peekInitialByte()
	if err != nil {
		return Decoder{}, err
	}
	if major != want {
		return Decoder{}, ErrInvalidType
	}

	child := Decoder{
		buf:       resolved.buf,
		maxDepth:  d.maxDepth,
		maxTables: d.maxTables,
		tables:    resolved.tables,
		active:    resolved.active,
		fl:        flagContainer | (d.fl & flagPacked),
	}
	if jumped {
		child.fl |= flagSharedItem
	}

	if info == infoIndefinite {
		child.fl |= flagIndefinite
		child.cur = resolved.cur + 1
		child.end = resolved.end
		return child, nil
	}

	count, width, err := resolved.decodeArgumentInfo(info, 8)
	if err != nil {
		return Decoder{}, err
	}
	if want == MajorMap {
		count *= 2
	}
	const maxInt = int(^uint(0) >> 1)
	if count > uint64(maxInt) {
		return Decoder{}, ErrOverflow
	}
	child.cur = resolved.cur + width
	child.end = resolved.end
	child.remaining = int(count)
	return child, nil
}

// EnterArray resolves and enters an array, returning a cursor scoped to
// its elements.
func (d *Decoder) EnterArray() (Decoder, error) {
	return d.enterContainer(MajorArray)
}

// EnterMap resolves and enters a map, returning a cursor scoped to its
// key/value pairs (Remaining counts individual items — keys and values —
// not pairs, so a map with 3 entries reports Remaining() == 6 on entry).
func (d *Decoder) EnterMap() (Decoder, error) {
	return d.enterContainer(MajorMap)
}

// Leave advances d (the parent cursor child was derived from) past the
// container child represents. child must be exhausted (AtEnd) or Leave
// fails with ErrInvalidType, per spec.md §9's resolution of the
// not-at-end open question.
//
// If child carries the is-shared-item flag — it was reached through a
// packed-CBOR reference — d is still positioned at the literal reference
// form that produced it, so d advances by skipping exactly that one item
// rather than by child's own internal position. Otherwise d advances
// directly to where child left off.
func (d *Decoder) Leave(child *Decoder) error {
	if child.fl&flagContainer == 0 {
		return ErrInvalidType
	}
	if !child.AtEnd() {
		return ErrInvalidType
	}

	if child.fl&flagSharedItem != 0 {
		next, err := skipOne(d.buf, d.cur, d.end, d.maxDepth)
		if err != nil {
			return err
		}
		d.cur = next
	} else {
		next := child.cur
		if child.fl&flagIndefinite != 0 {
			next++ // past the break byte, which AtEnd left unconsumed
		}
		if next < d.cur || next > d.end {
			return ErrInvalidType
		}
		d.cur = next
	}

	if d.fl&flagContainer != 0 && d.fl&flagIndefinite == 0 {
		d.remaining--
	}
	return nil
}
