package cbor

// FindKey performs a linear scan (spec.md §4.5) over d, a cursor positioned
// at the start of a map's key/value pairs (as returned by EnterMap),
// looking for a text-string key equal to key. On success it returns nil
// with d positioned at the matching value, ready to be read. If no pair
// matches, it returns ErrNotFound with d left positioned at the end of the
// map, per spec.md §7.
//
// A key that is not a text string cannot match and is skipped along with
// its value without being decoded.
func (d *Decoder) FindKey(key string) error {
	for !d.AtEnd() {
		start := d.cur
		major, _, err := d.peekInitialByte()
		if err != nil {
			return err
		}
		if major != MajorTextString {
			if err := d.Skip(); err != nil {
				return err
			}
			if err := d.Skip(); err != nil {
				return err
			}
			continue
		}

		k, err := d.GetTextString()
		if err != nil {
			d.cur = start
			return err
		}
		if k == key {
			return nil
		}
		if err := d.Skip(); err != nil {
			return err
		}
	}
	return ErrNotFound
}
