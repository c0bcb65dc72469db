package format

import "fmt"

// LSFVersion is the format version stored in the LSF header. It is the
// single source of truth for which layout variants apply to the rest of
// the stream.
type LSFVersion uint32

const (
	// VerInitial is the first LSF revision.
	VerInitial LSFVersion = 1
	// VerChunkedCompress allows LZ4 frame ("chunked") compression for the
	// node, attribute and value streams.
	VerChunkedCompress LSFVersion = 2
	// VerExtendedNodes introduces the wide node/attribute records carrying
	// explicit sibling links.
	VerExtendedNodes LSFVersion = 3
	// VerBG3 changes the translated-string encoding to handle+version form.
	VerBG3 LSFVersion = 4
	// VerExtendedHeader widens the engine version field to 64 bits.
	VerExtendedHeader LSFVersion = 5
	// VerAdditionalBlob adds an extra u64 to the stream metadata block.
	VerAdditionalBlob LSFVersion = 6
	// VerPatch3 is the most recent revision this library reads.
	VerPatch3 LSFVersion = 7
)

// Supported reports whether v is a version this library decodes.
func (v LSFVersion) Supported() bool {
	return v >= VerInitial && v <= VerPatch3
}

// PackedVersion is the engine version number unpacked from its on-disk
// bitfield form.
type PackedVersion struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Build    uint32
}

func (v PackedVersion) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Revision, v.Build)
}

// UnpackVersion64 decodes the 64-bit engine version used from
// VerExtendedHeader onward.
// Layout: major 7 bits @55, minor 8 bits @47, revision 16 bits @31,
// build 31 bits @0.
func UnpackVersion64(packed int64) PackedVersion {
	return PackedVersion{
		Major:    uint32((packed >> 55) & 0x7F),
		Minor:    uint32((packed >> 47) & 0xFF),
		Revision: uint32((packed >> 31) & 0xFFFF),
		Build:    uint32(packed & 0x7FFFFFFF),
	}
}

// UnpackVersion32 decodes the 32-bit engine version used before
// VerExtendedHeader.
// Layout: major 4 bits @28, minor 4 bits @24, revision 8 bits @16,
// build 16 bits @0.
func UnpackVersion32(packed int32) PackedVersion {
	return PackedVersion{
		Major:    uint32((packed >> 28) & 0x0F),
		Minor:    uint32((packed >> 24) & 0x0F),
		Revision: uint32((packed >> 16) & 0xFF),
		Build:    uint32(packed & 0xFFFF),
	}
}
