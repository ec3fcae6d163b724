package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeUintWidths(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{23, []byte{0x17}},
		{24, []byte{0x18, 0x18}},
		{255, []byte{0x18, 0xFF}},
		{256, []byte{0x19, 0x01, 0x00}},
		{65536, []byte{0x1A, 0x00, 0x01, 0x00, 0x00}},
		{4294967296, []byte{0x1B, 0, 0, 0, 1, 0, 0, 0, 0}},
	}
	for _, c := range cases {
		e := NewEncoder(make([]byte, 0, 16))
		e.PutUint(c.v)
		require.Equal(t, c.want, e.Bytes(), "v=%d", c.v)
		require.Equal(t, len(c.want), e.Len())
	}
}

func TestEncodeNegativeInt(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 4))
	e.PutInt(-1)
	require.Equal(t, []byte{0x20}, e.Bytes())

	e2 := NewEncoder(make([]byte, 0, 4))
	e2.PutInt(-100)
	require.Equal(t, []byte{0x38, 0x63}, e2.Bytes())
}

func TestEncodeByteAndTextString(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 8))
	e.PutByteString([]byte{0xAA, 0xBB})
	require.Equal(t, []byte{0x42, 0xAA, 0xBB}, e.Bytes())

	e2 := NewEncoder(make([]byte, 0, 8))
	e2.PutTextString("ab")
	require.Equal(t, []byte{0x62, 0x61, 0x62}, e2.Bytes())
}

func TestEncodeArrayAndMapHeaders(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 4))
	e.PutArrayHeader(3)
	require.Equal(t, []byte{0x83}, e.Bytes())

	e2 := NewEncoder(make([]byte, 0, 4))
	e2.PutMapHeader(1)
	require.Equal(t, []byte{0xA1}, e2.Bytes())
}

func TestEncodeIndefiniteArrayRoundTripsThroughDecoder(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 16))
	e.PutArrayIndefiniteHeader()
	e.PutUint(1)
	e.PutUint(2)
	e.PutBreak()

	d := NewDecoder(e.Bytes())
	child, err := d.EnterArray()
	require.NoError(t, err)
	require.True(t, child.Indefinite())
	v1, err := child.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v1)
	v2, err := child.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(2), v2)
	require.True(t, child.AtEnd())
	require.NoError(t, d.Leave(&child))
}

func TestEncodeSimpleValues(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 4))
	e.PutNull()
	require.Equal(t, []byte{0xF6}, e.Bytes())

	e2 := NewEncoder(make([]byte, 0, 4))
	e2.PutBool(true)
	require.Equal(t, []byte{0xF5}, e2.Bytes())

	e3 := NewEncoder(make([]byte, 0, 4))
	e3.PutBool(false)
	require.Equal(t, []byte{0xF4}, e3.Bytes())

	e4 := NewEncoder(make([]byte, 0, 4))
	e4.PutUndefined()
	require.Equal(t, []byte{0xF7}, e4.Bytes())
}

func TestEncodeSimplePanicsOnReservedRange(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 4))
	require.Panics(t, func() { e.PutSimple(25) })
}

func TestEncodeDecimalFractionRoundTrips(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 8))
	e.PutDecimalFraction(-2, 27315)

	d := NewDecoder(e.Bytes())
	exp, mant, err := d.GetDecimalFraction()
	require.NoError(t, err)
	require.Equal(t, int32(-2), exp)
	require.Equal(t, int32(27315), mant)
}

func TestDecimalFractionOverflowsOnOutOfInt32Mantissa(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 16))
	e.PutTag(4)
	e.PutArrayHeader(2)
	e.PutInt(0)
	e.PutInt(int64(1) << 32) // well past math.MaxInt32

	d := NewDecoder(e.Bytes())
	_, _, err := d.GetDecimalFraction()
	require.ErrorIs(t, err, ErrOverflow)
}

func TestEncoderDryRunTracksLenPastCapacity(t *testing.T) {
	e := NewEncoder(make([]byte, 0, 1))
	e.PutTextString("hello")
	require.Equal(t, 6, e.Len())
	require.LessOrEqual(t, len(e.Bytes()), 1)
}

func TestEncodeRawForwardsOpaqueItem(t *testing.T) {
	src := NewDecoder([]byte{0x82, 0x01, 0x02, 0xF6})
	raw, err := src.RawItem()
	require.NoError(t, err)

	e := NewEncoder(make([]byte, 0, 16))
	e.PutArrayHeader(1)
	e.PutRaw(raw)

	d := NewDecoder(e.Bytes())
	outer, err := d.EnterArray()
	require.NoError(t, err)
	inner, err := outer.EnterArray()
	require.NoError(t, err)
	v1, err := inner.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v1)
	v2, err := inner.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(2), v2)
	require.True(t, inner.AtEnd())
	require.NoError(t, outer.Leave(&inner))
	require.True(t, outer.AtEnd())
	require.NoError(t, d.Leave(&outer))
}
