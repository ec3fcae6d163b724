package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioS1IndefiniteArray covers spec.md §8 S1: an indefinite-length
// array of three unsigned integers.
func TestScenarioS1IndefiniteArray(t *testing.T) {
	input := []byte{0x9F, 0x01, 0x02, 0x03, 0xFF}
	d := NewDecoder(input)

	child, err := d.EnterArray()
	require.NoError(t, err)
	require.True(t, child.Indefinite())

	for _, want := range []uint8{1, 2, 3} {
		require.False(t, child.AtEnd())
		v, err := child.GetUint8()
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
	require.True(t, child.AtEnd())

	require.NoError(t, d.Leave(&child))
	require.True(t, d.AtEnd())
}

// TestScenarioS2MapWithNestedEmptyArrays covers spec.md §8 S2.
func TestScenarioS2MapWithNestedEmptyArrays(t *testing.T) {
	input := []byte{
		0xA5,
		0x01, 0x02,
		0x03, 0x80,
		0x04, 0x9F, 0xFF,
		0x05, 0x9F, 0xFF,
		0x06, 0xF6,
	}
	d := NewDecoder(input)

	m, err := d.EnterMap()
	require.NoError(t, err)
	require.Equal(t, 10, m.Remaining())

	k1, err := m.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), k1)
	v1, err := m.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(2), v1)

	k2, err := m.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(3), k2)
	arr1, err := m.EnterArray()
	require.NoError(t, err)
	require.True(t, arr1.AtEnd())
	require.NoError(t, m.Leave(&arr1))

	k3, err := m.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(4), k3)
	arr2, err := m.EnterArray()
	require.NoError(t, err)
	require.True(t, arr2.Indefinite())
	require.True(t, arr2.AtEnd())
	require.NoError(t, m.Leave(&arr2))

	k4, err := m.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(5), k4)
	arr3, err := m.EnterArray()
	require.NoError(t, err)
	require.True(t, arr3.AtEnd())
	require.NoError(t, m.Leave(&arr3))

	k5, err := m.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(6), k5)
	require.NoError(t, m.GetNull())

	require.True(t, m.AtEnd())
	require.NoError(t, d.Leave(&m))
	require.True(t, d.AtEnd())
}

// TestScenarioS3TagChain covers spec.md §8 S3: a self-describe tag
// wrapping a tag spelling "RIOT" in hex, wrapping a 3-byte string.
func TestScenarioS3TagChain(t *testing.T) {
	input := []byte{
		0xD9, 0xD9, 0xF7,
		0xDA, 0x52, 0x49, 0x4F, 0x54,
		0x43, 0x42, 0x4F, 0x52,
	}
	d := NewDecoder(input)

	tag1, err := d.GetTag()
	require.NoError(t, err)
	require.Equal(t, uint32(55799), tag1)

	tag2, err := d.GetTag()
	require.NoError(t, err)
	require.Equal(t, uint32(0x52494F54), tag2)

	content, err := d.GetByteString()
	require.NoError(t, err)
	require.Equal(t, []byte("BOR"), content)

	require.True(t, d.AtEnd())
}

// TestScenarioS4DecimalFraction covers spec.md §8 S4.
func TestScenarioS4DecimalFraction(t *testing.T) {
	input := []byte{0xC4, 0x82, 0x21, 0x19, 0x6A, 0xB3}
	d := NewDecoder(input)

	exp, mant, err := d.GetDecimalFraction()
	require.NoError(t, err)
	require.Equal(t, int32(-2), exp)
	require.Equal(t, int32(27315), mant)
	require.True(t, d.AtEnd())
}

// TestScenarioS5PackedSimpleReference covers spec.md §8 S5: two simple-value
// references resolved against an externally supplied table.
func TestScenarioS5PackedSimpleReference(t *testing.T) {
	table := []byte{0x82, 0xF5, 0xF4} // [true, false]
	input := []byte{0xE0, 0xE1}

	d, err := NewDecoderWithTable(input, table)
	require.NoError(t, err)

	v1, err := d.GetBool()
	require.NoError(t, err)
	require.True(t, v1)

	v2, err := d.GetBool()
	require.NoError(t, err)
	require.False(t, v2)

	require.True(t, d.AtEnd())
}

// TestScenarioS6PackedTableDefinition covers spec.md §8 S6: a tag-113
// table definition whose rump is a reference into the table it just
// installed.
func TestScenarioS6PackedTableDefinition(t *testing.T) {
	input := []byte{
		0xD8, 0x71,
		0x82,
		0x82, 0x61, 0x61, 0x61, 0x62,
		0xE1,
	}
	d := NewDecoder(input, WithPacked())

	s, err := d.GetTextString()
	require.NoError(t, err)
	require.Equal(t, "b", s)
	require.True(t, d.AtEnd())
}

// TestScenarioS7PackedReferenceLoop covers spec.md §8 S7: a table whose
// first entry references itself, which must terminate with ErrRecursion
// rather than looping forever.
func TestScenarioS7PackedReferenceLoop(t *testing.T) {
	table := []byte{0x83, 0xE0, 0xE2, 0xE1}
	input := []byte{0xE0}

	d, err := NewDecoderWithTable(input, table)
	require.NoError(t, err)

	_, err = d.GetSimple()
	require.ErrorIs(t, err, ErrRecursion)
}

// TestScenarioS8PackedUndefinedReference covers spec.md §8 S8: a reference
// into a table definition whose table is empty.
func TestScenarioS8PackedUndefinedReference(t *testing.T) {
	input := []byte{0xD8, 0x71, 0x82, 0x80, 0xE0}
	d := NewDecoder(input, WithPacked())

	_, err := d.GetSimple()
	require.ErrorIs(t, err, ErrPackedUndefinedReference)
}
