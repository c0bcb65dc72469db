package codec

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/lskit/lskit/pkg/types"
)

var plaintext = bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 64)

func zlibCompress(t *testing.T, src []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func lz4Block(t *testing.T, src []byte) []byte {
	t.Helper()
	var c lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := c.CompressBlock(src, dst)
	require.NoError(t, err)
	require.Positive(t, n, "fixture must be compressible")
	return dst[:n]
}

func lz4Frame(t *testing.T, src []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstdCompress(t *testing.T, src []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(src, nil)
}

func TestDecompress_RoundTrips(t *testing.T) {
	cases := []struct {
		name       string
		method     types.CompressionMethod
		chunked    bool
		compressed []byte
	}{
		{"none", types.CompressionNone, false, plaintext},
		{"zlib", types.CompressionZlib, false, zlibCompress(t, plaintext)},
		{"lz4-block", types.CompressionLZ4, false, lz4Block(t, plaintext)},
		{"lz4-frame", types.CompressionLZ4, true, lz4Frame(t, plaintext)},
		{"zstd", types.CompressionZstd, false, zstdCompress(t, plaintext)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Decompress(tc.compressed, tc.method, len(plaintext), tc.chunked)
			require.NoError(t, err)
			require.Equal(t, plaintext, out)
		})
	}
}

func TestDecompress_TruncatedInput(t *testing.T) {
	cases := []struct {
		name       string
		method     types.CompressionMethod
		chunked    bool
		compressed []byte
	}{
		{"zlib", types.CompressionZlib, false, zlibCompress(t, plaintext)},
		{"lz4-block", types.CompressionLZ4, false, lz4Block(t, plaintext)},
		{"lz4-frame", types.CompressionLZ4, true, lz4Frame(t, plaintext)},
		{"zstd", types.CompressionZstd, false, zstdCompress(t, plaintext)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			short := tc.compressed[:len(tc.compressed)-1]
			_, err := Decompress(short, tc.method, len(plaintext), tc.chunked)
			require.ErrorIs(t, err, types.ErrCorrupt, "one missing byte must never produce a short silent result")
		})
	}
}

func TestDecompress_SizeDisagreements(t *testing.T) {
	zl := zlibCompress(t, plaintext)

	// Stream holds more than the caller expects.
	_, err := Decompress(zl, types.CompressionZlib, len(plaintext)-10, false)
	require.ErrorIs(t, err, types.ErrCorrupt)

	// Stream holds less than the caller expects.
	_, err = Decompress(zl, types.CompressionZlib, len(plaintext)+10, false)
	require.ErrorIs(t, err, types.ErrCorrupt)

	blk := lz4Block(t, plaintext)
	_, err = Decompress(blk, types.CompressionLZ4, len(plaintext)+1, false)
	require.ErrorIs(t, err, types.ErrCorrupt)
}

func TestDecompress_None(t *testing.T) {
	out, err := Decompress([]byte{1, 2, 3}, types.CompressionNone, 3, false)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, out)

	_, err = Decompress([]byte{1, 2, 3}, types.CompressionNone, 4, false)
	require.ErrorIs(t, err, types.ErrCorrupt)
}

func TestDecompress_UnknownMethod(t *testing.T) {
	_, err := Decompress([]byte{0}, types.CompressionMethod(9), 1, false)
	require.ErrorIs(t, err, types.ErrUnsupportedCompression)
}

func TestDecompress_GarbageHeader(t *testing.T) {
	junk := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB}
	_, err := Decompress(junk, types.CompressionZlib, 16, false)
	require.ErrorIs(t, err, types.ErrCorrupt)
	_, err = Decompress(junk, types.CompressionZstd, 16, false)
	require.ErrorIs(t, err, types.ErrCorrupt)
}
