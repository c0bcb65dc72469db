package types

import "github.com/lskit/lskit/internal/format"

// CompressionMethod identifies the codec applied to a member or stream.
// On disk it lives in the low 4 bits of a flags byte.
type CompressionMethod uint8

const (
	CompressionNone CompressionMethod = 0
	CompressionZlib CompressionMethod = 1
	CompressionLZ4  CompressionMethod = 2
	CompressionZstd CompressionMethod = 3
)

// MethodFromFlags extracts the compression method from a flags byte.
// ok is false when the low bits name a method outside the known set.
func MethodFromFlags(flags uint8) (m CompressionMethod, ok bool) {
	m = CompressionMethod(flags & format.CompressionMask)
	return m, m <= CompressionZstd
}

func (m CompressionMethod) String() string {
	switch m {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}
