package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingRoundTrip(t *testing.T) {
	b := make([]byte, 16)

	PutU16(b, 0, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), ReadU16(b, 0))

	PutU32(b, 2, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadU32(b, 2))

	PutI32(b, 6, -12345)
	require.Equal(t, int32(-12345), ReadI32(b, 6))

	PutU64(b, 8, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), ReadU64(b, 8))

	PutI64(b, 8, -1)
	require.Equal(t, int64(-1), ReadI64(b, 8))

	PutF32(b, 0, 3.5)
	require.Equal(t, float32(3.5), ReadF32(b, 0))

	PutF64(b, 8, -0.25)
	require.Equal(t, -0.25, ReadF64(b, 8))
}

func TestEncodingIsLittleEndian(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04}
	require.Equal(t, uint32(0x04030201), ReadU32(b, 0))
}

func TestUnpackVersion64(t *testing.T) {
	// 4.1.33.616 packed the way the 64-bit header stores it.
	packed := int64(4)<<55 | int64(1)<<47 | int64(33)<<31 | int64(616)
	v := UnpackVersion64(packed)
	require.Equal(t, PackedVersion{Major: 4, Minor: 1, Revision: 33, Build: 616}, v)
	require.Equal(t, "4.1.33.616", v.String())
}

func TestUnpackVersion32(t *testing.T) {
	packed := int32(3)<<28 | int32(6)<<24 | int32(4)<<16 | int32(99)
	v := UnpackVersion32(packed)
	require.Equal(t, PackedVersion{Major: 3, Minor: 6, Revision: 4, Build: 99}, v)
}

func TestLSFVersionSupported(t *testing.T) {
	require.False(t, LSFVersion(0).Supported())
	for v := VerInitial; v <= VerPatch3; v++ {
		require.True(t, v.Supported())
	}
	require.False(t, LSFVersion(8).Supported())
}
