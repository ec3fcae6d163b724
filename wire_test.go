package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitInitialByte(t *testing.T) {
	major, info := splitInitialByte(0x63)
	require.Equal(t, MajorTextString, major)
	require.Equal(t, uint8(3), info)
}

func TestArgWidthBytes(t *testing.T) {
	cases := map[uint8]int{
		0:              0,
		infoMaxInline:  0,
		info1Byte:      1,
		info2Byte:      2,
		info4Byte:      4,
		info8Byte:      8,
		infoIndefinite: -1,
		28:             -1,
	}
	for info, want := range cases {
		require.Equal(t, want, argWidthBytes(info), "info=%d", info)
	}
}

func TestDecodeArgumentInfoWidths(t *testing.T) {
	d := &Decoder{buf: []byte{0x18, 0xFF}, cur: 0, end: 2}
	v, w, err := d.decodeArgumentInfo(info1Byte, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(0xFF), v)
	require.Equal(t, 2, w)

	d2 := &Decoder{buf: []byte{0x19, 0x01, 0x02}, cur: 0, end: 3}
	v, w, err = d2.decodeArgumentInfo(info2Byte, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102), v)
	require.Equal(t, 3, w)

	d3 := &Decoder{buf: []byte{0x1a}, cur: 0, end: 1}
	_, _, err = d3.decodeArgumentInfo(info4Byte, 8)
	require.ErrorIs(t, err, ErrEndOfInput)
}

func TestDecodeArgumentInfoMaxWidthRejection(t *testing.T) {
	d := &Decoder{buf: []byte{0x1a, 0, 0, 0, 1}, cur: 0, end: 5}
	_, _, err := d.decodeArgumentInfo(info4Byte, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestDecodeArgumentRejectsWrongMajor(t *testing.T) {
	d := NewDecoder([]byte{0x01})
	_, _, err := d.decodeArgument(MajorTextString, 8)
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestPeekInitialByteEndOfInput(t *testing.T) {
	d := NewDecoder(nil)
	_, _, err := d.peekInitialByte()
	require.ErrorIs(t, err, ErrEndOfInput)
}
