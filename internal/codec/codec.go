// Package codec is the byte-to-byte decompression layer shared by the
// package container and resource decoders. It knows nothing about either
// format: callers supply the compressed bytes, the method tag and the
// expected output size from the surrounding tables.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/lskit/lskit/pkg/types"
)

// Decompress inflates input with the given method and verifies the result
// is exactly expected bytes long. chunked selects LZ4 frame decoding over
// raw block decoding; it is ignored for the other methods. Frames need not
// declare their own content size — decoding stops at expected bytes, and a
// stream that under- or over-produces fails with types.ErrCorrupt.
func Decompress(input []byte, method types.CompressionMethod, expected int, chunked bool) ([]byte, error) {
	if expected < 0 {
		return nil, fmt.Errorf("codec: negative expected size %d: %w", expected, types.ErrCorrupt)
	}

	switch method {
	case types.CompressionNone:
		if len(input) != expected {
			return nil, fmt.Errorf("codec: stored size %d != expected %d: %w",
				len(input), expected, types.ErrCorrupt)
		}
		return input, nil

	case types.CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("codec: zlib header: %v: %w", err, types.ErrCorrupt)
		}
		defer zr.Close()
		return readExactly(zr, expected, "zlib")

	case types.CompressionLZ4:
		if chunked {
			return readExactly(lz4.NewReader(bytes.NewReader(input)), expected, "lz4 frame")
		}
		out := make([]byte, expected)
		n, err := lz4.UncompressBlock(input, out)
		if err != nil {
			return nil, fmt.Errorf("codec: lz4 block: %v: %w", err, types.ErrCorrupt)
		}
		if n != expected {
			return nil, fmt.Errorf("codec: lz4 block produced %d bytes, expected %d: %w",
				n, expected, types.ErrCorrupt)
		}
		return out, nil

	case types.CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd init: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(input, make([]byte, 0, expected))
		if err != nil {
			return nil, fmt.Errorf("codec: zstd: %v: %w", err, types.ErrCorrupt)
		}
		if len(out) != expected {
			return nil, fmt.Errorf("codec: zstd produced %d bytes, expected %d: %w",
				len(out), expected, types.ErrCorrupt)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("codec: method %d: %w", method, types.ErrUnsupportedCompression)
	}
}

// readExactly drains exactly expected bytes from r and then requires the
// stream to end. A short read means truncated input; a leftover byte means
// the stream disagrees with the caller's size table. Both are corruption,
// never a silent short result.
func readExactly(r io.Reader, expected int, what string) ([]byte, error) {
	out := make([]byte, expected)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("codec: %s truncated after %d expected bytes: %v: %w",
			what, expected, err, types.ErrCorrupt)
	}
	var one [1]byte
	if n, err := r.Read(one[:]); n > 0 {
		return nil, fmt.Errorf("codec: %s produced more than the expected %d bytes: %w",
			what, expected, types.ErrCorrupt)
	} else if err != nil && err != io.EOF {
		return nil, fmt.Errorf("codec: %s trailer: %v: %w", what, err, types.ErrCorrupt)
	}
	return out, nil
}
