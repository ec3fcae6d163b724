package cbor

// MajorType identifies the 3-bit classifier of a CBOR data item
// (RFC 8949 §3.1).
type MajorType uint8

// The eight CBOR major types.
const (
	MajorUnsignedInt MajorType = 0
	MajorNegativeInt MajorType = 1
	MajorByteString  MajorType = 2
	MajorTextString  MajorType = 3
	MajorArray       MajorType = 4
	MajorMap         MajorType = 5
	MajorTag         MajorType = 6
	MajorFloat       MajorType = 7
)

const (
	// DefaultMaxDepth bounds the recursion of Skip and the packed-CBOR
	// engine. It guards against adversarially deep or cyclic input; it
	// is not a limit on the shape of well-formed data.
	DefaultMaxDepth = 16

	// DefaultMaxTables bounds the number of packed-CBOR tables
	// simultaneously active on a Decoder.
	DefaultMaxTables = 4

	// hardMaxTables is the fixed size of the table array every Decoder
	// carries inline. WithMaxTables cannot raise DefaultMaxTables past
	// this ceiling; it exists so the table stack never allocates.
	hardMaxTables = 8
)

type flagSet uint8

const (
	flagContainer flagSet = 1 << iota
	flagIndefinite
	flagPacked
	flagSharedItem
)

// activeTable is a packed-CBOR table: a byte range, inside some buffer, that
// holds the CBOR encoding of an array of shareable items. It does not own
// the bytes it points at.
type activeTable struct {
	buf    []byte
	start  int
	end    int
	length int // item count, or -1 until first counted
}

// Decoder is a cursor over a contiguous, caller-owned byte slice. The zero
// Decoder is not usable; construct one with NewDecoder or NewDecoderWithTable.
//
// A Decoder value represents either the top of a stream, or — once derived
// through EnterArray / EnterMap — a position inside a container. Decoding
// performs no I/O and no dynamic allocation beyond the Decoder's own
// construction, except that GetTextString copies its result into a new Go
// string: every other typed read, every container traversal, and the
// packed-CBOR engine operate entirely on the bytes the caller supplied.
type Decoder struct {
	buf []byte // input slice; never mutated
	cur int    // read position, index into buf
	end int    // one past the last readable byte, index into buf

	remaining int // items (array) / 2x pairs (map) left in a definite container
	fl        flagSet

	maxDepth  int
	maxTables int
	tables    [hardMaxTables]activeTable
	active    int // valid entries in tables[:active]
}

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithMaxDepth overrides DefaultMaxDepth, the recursion bound shared by Skip
// and the packed-CBOR engine.
func WithMaxDepth(n int) Option {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithMaxTables overrides DefaultMaxTables, the number of packed-CBOR
// tables that may be simultaneously active. n is clamped to hardMaxTables.
func WithMaxTables(n int) Option {
	return func(d *Decoder) {
		if n > hardMaxTables {
			n = hardMaxTables
		}
		if n < 0 {
			n = 0
		}
		d.maxTables = n
	}
}

// WithPacked enables the packed-CBOR unpacking engine. Packed support is
// off by default.
func WithPacked() Option {
	return func(d *Decoder) { d.fl |= flagPacked }
}

// NewDecoder creates a top-level Decoder over buf. buf is never copied or
// mutated; the caller must keep it alive and unmodified for the Decoder's
// lifetime.
func NewDecoder(buf []byte, opts ...Option) *Decoder {
	d := &Decoder{
		buf:       buf,
		cur:       0,
		end:       len(buf),
		maxDepth:  DefaultMaxDepth,
		maxTables: DefaultMaxTables,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDecoderWithTable creates a top-level Decoder over buf with packed
// support enabled and table installed as the sole initial active table.
// table must hold exactly one definite-length CBOR array;
// NewDecoderWithTable returns ErrPackedFormat immediately if it does not.
func NewDecoderWithTable(buf, table []byte, opts ...Option) (*Decoder, error) {
	d := NewDecoder(buf, opts...)
	d.fl |= flagPacked
	for _, opt := range opts {
		opt(d)
	}
	if err := d.installExternalTable(table); err != nil {
		return nil, err
	}
	return d, nil
}

// Reset reassigns d to decode buf from the beginning, clearing cursor and
// table-stack state while preserving the configured maxDepth, maxTables,
// and packed-support setting.
func (d *Decoder) Reset(buf []byte) {
	d.buf = buf
	d.cur = 0
	d.end = len(buf)
	d.remaining = 0
	d.fl &^= flagContainer | flagIndefinite | flagSharedItem
	d.active = 0
}

// AtEnd reports whether d has no more items to read. Inside a definite-
// length container this is remaining == 0. Inside an indefinite-length
// container this is true iff the byte at the cursor is the break marker;
// the marker is not consumed. At the top level this is cur >= end.
func (d *Decoder) AtEnd() bool {
	if d.fl&flagContainer != 0 {
		if d.fl&flagIndefinite != 0 {
			if d.cur >= d.end {
				return true
			}
			return d.buf[d.cur] == breakByte
		}
		return d.remaining == 0
	}
	return d.cur >= d.end
}

// Indefinite reports whether d denotes a position inside an
// indefinite-length container.
func (d *Decoder) Indefinite() bool {
	return d.fl&flagContainer != 0 && d.fl&flagIndefinite != 0
}

// InContainer reports whether d denotes a position inside any container.
func (d *Decoder) InContainer() bool {
	return d.fl&flagContainer != 0
}

// Remaining returns the number of items (array) or half-pairs (map) left to
// consume in a definite-length container. Its value is unspecified outside
// a definite-length container.
func (d *Decoder) Remaining() int {
	return d.remaining
}

// InputOffset returns d's current read position as an offset into the
// buffer backing d (the top-level buffer, or the table buffer d was last
// redirected into while resolving a packed reference).
func (d *Decoder) InputOffset() int {
	return d.cur
}

// debugTrace gates the Decoder's trace helper. It is always false in this
// build, mirroring the teacher's ENABLE_TRACE switch; trace currently has no
// callers, so flipping it on changes no output by itself. There is no logging
// facility here — this is a developer-only trace, never production output.
const debugTrace = false

func (d *Decoder) trace(event, fn string) {
	if !debugTrace {
		return
	}
	println(event, fn, "cur=", d.cur, "end=", d.end, "remaining=", d.remaining)
}
