package cbor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHalfZero(t *testing.T) {
	require.Equal(t, float64(0), decodeHalf(0x00, 0x00))
	neg := decodeHalf(0x80, 0x00)
	require.Equal(t, 0.0, neg)
	require.True(t, math.Signbit(neg))
}

func TestDecodeHalfOne(t *testing.T) {
	// binary16 1.0 = 0x3C00
	require.Equal(t, 1.0, decodeHalf(0x3C, 0x00))
}

func TestDecodeHalfSubnormal(t *testing.T) {
	// smallest positive binary16 subnormal: 2^-24
	got := decodeHalf(0x00, 0x01)
	want := math.Ldexp(1, -24)
	require.InDelta(t, want, got, 1e-30)
}

func TestDecodeHalfInfinityAndNaN(t *testing.T) {
	require.True(t, math.IsInf(decodeHalf(0x7C, 0x00), 1))
	require.True(t, math.IsInf(decodeHalf(0xFC, 0x00), -1))
	require.True(t, math.IsNaN(decodeHalf(0x7E, 0x00)))
}

func TestDecodeSingleRoundTrip(t *testing.T) {
	v := float32(3.14159)
	got := decodeSingle(math.Float32bits(v))
	require.Equal(t, float64(v), got)
}

func TestDecodeDoubleRoundTrip(t *testing.T) {
	v := 2.71828182845904523536
	require.Equal(t, v, decodeDouble(math.Float64bits(v)))
}

func TestHalfBitsToFloat32BitsMatchesMaxValue(t *testing.T) {
	// binary16 65504.0 (max finite half) = 0x7BFF
	bits := halfBitsToFloat32Bits(0x7BFF)
	require.Equal(t, float32(65504.0), math.Float32frombits(bits))
}
