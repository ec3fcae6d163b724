package cbor

// Error is a decode or encode failure. Every Error is a plain enumerated
// value — it never carries a payload, so two errors of the same kind
// compare equal with == and with errors.Is, and callers do not need to
// unwrap anything to recover the failure's identity.
type Error int8

// Error kinds, in the order spec.md §7 lists them.
const (
	// ErrOverflow is returned when a value does not fit the target's
	// width (for example, decoding a 64-bit argument with GetUint8).
	ErrOverflow Error = iota + 1

	// ErrInvalidType is returned when the item at the cursor does not
	// have the major type or shape the caller asked for.
	ErrInvalidType

	// ErrEndOfInput is returned when decoding would read past the end
	// of the input slice.
	ErrEndOfInput

	// ErrNotFound is returned by FindKey when no matching key exists.
	// The cursor is left positioned at the end of the map.
	ErrNotFound

	// ErrRecursion is returned when Skip or the packed-CBOR engine
	// would exceed its configured recursion bound.
	ErrRecursion

	// ErrPackedFormat is returned when a packed-CBOR construct (a
	// table definition or a reference) is malformed.
	ErrPackedFormat

	// ErrPackedMemory is returned when installing a packed table would
	// exceed the configured table-stack capacity.
	ErrPackedMemory

	// ErrPackedUndefinedReference is returned when a packed reference
	// index has no corresponding entry in any active table.
	ErrPackedUndefinedReference
)

// Error implements the error interface.
func (e Error) Error() string {
	switch e {
	case ErrOverflow:
		return "cbor: value does not fit target width"
	case ErrInvalidType:
		return "cbor: unexpected major type or item shape"
	case ErrEndOfInput:
		return "cbor: read past end of input"
	case ErrNotFound:
		return "cbor: key not found"
	case ErrRecursion:
		return "cbor: recursion limit exceeded"
	case ErrPackedFormat:
		return "cbor: malformed packed-CBOR construct"
	case ErrPackedMemory:
		return "cbor: packed table stack exhausted"
	case ErrPackedUndefinedReference:
		return "cbor: packed reference has no matching table entry"
	default:
		return "cbor: unknown error"
	}
}
