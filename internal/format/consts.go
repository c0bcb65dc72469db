// Package format houses the low-level byte layout of the LSPK package
// container and the LSF node-tree resource format. The goal is to keep the
// raw offsets and record sizes in one place, independent from the public
// API, so the higher-level packages can orchestrate the data in a more
// ergonomic form.
package format

var (
	// PAKSignature is the four-byte signature at the start of every save
	// package file.
	// Layout:
	//   0x00  'L' 'S' 'P' 'K'
	PAKSignature = []byte{'L', 'S', 'P', 'K'}

	// LSFSignature is the four-byte signature at the start of every LSF
	// resource stream.
	// Layout:
	//   0x00  'L' 'S' 'O' 'F'
	LSFSignature = []byte{'L', 'S', 'O', 'F'}
)

const (
	// SignatureSize is the length of both magic signatures above.
	SignatureSize = 4

	// PackageVersion18 is the only package container version this library
	// reads (the BG3 release format).
	PackageVersion18 = 18

	// PAKHeaderSize is the size of the package header that follows the
	// signature. The version field is part of the header, so the header
	// region spans [0x04, 0x04+PAKHeaderSize).
	PAKHeaderSize = 36

	// Package header field offsets, absolute within the file.
	PAKVersionOffset        = 0x04
	PAKFileListOffsetOffset = 0x08 // u64
	PAKFileListSizeOffset   = 0x10 // u32
	PAKFlagsOffset          = 0x14 // u8
	PAKPriorityOffset       = 0x15 // u8
	PAKMD5Offset            = 0x16 // 16 bytes
	PAKNumPartsOffset       = 0x26 // u16

	// PAKMinSize is the smallest buffer that can hold signature + header.
	PAKMinSize = SignatureSize + PAKHeaderSize

	// FileTableHeaderSize covers the numFiles (u32) and compressedSize (u32)
	// fields preceding the LZ4-compressed entry array.
	FileTableHeaderSize = 8

	// FileEntrySize is the size of one decompressed file table record.
	FileEntrySize = 272

	// File entry field offsets, relative to the record start.
	FileEntryNameLen            = 256
	FileEntryOffsetLoOffset     = 0x100 // u32, low 32 bits
	FileEntryOffsetHiOffset     = 0x104 // u16, high 16 bits
	FileEntryArchivePartOffset  = 0x106 // u8
	FileEntryFlagsOffset        = 0x107 // u8
	FileEntrySizeOnDiskOffset   = 0x108 // u32
	FileEntryUncompressedOffset = 0x10C // u32

	// CompressionMask extracts the compression method from an entry's flags.
	CompressionMask = 0x0F

	// FileEntryKnownFlags is the set of flag bits with a defined meaning.
	// Anything outside it marks an entry we must not guess at.
	FileEntryKnownFlags = 0x7F
)

const (
	// LSFHeaderSize covers the LSF signature plus the u32 format version.
	LSFHeaderSize = 8

	// MetadataSizeV5 and MetadataSizeV6 are the two stream-metadata block
	// layouts. V6 (format version >= VerAdditionalBlob) inserts an extra
	// u64 after the string stream sizes.
	MetadataSizeV5 = 40
	MetadataSizeV6 = 48

	// Node record sizes for the two on-disk layouts. The compact layout
	// stores nameRef/firstAttr/parent; the wide layout adds an explicit
	// next-sibling field.
	NodeSizeCompact = 12
	NodeSizeWide    = 16

	// Attribute record sizes. The compact layout stores the owning node
	// index and derives value offsets by accumulation; the wide layout
	// stores an explicit next-attribute index and value offset.
	AttrSizeCompact = 12
	AttrSizeWide    = 16

	// Attribute records pack the type tag and the value length into one
	// u32: low 6 bits are the tag, the rest is the byte length.
	AttrTypeMask    = 0x3F
	AttrLengthShift = 6

	// Name references pack a string table page index (high 16 bits) and an
	// offset within that page (low 16 bits) into one u32.
	NameRefPageShift  = 16
	NameRefOffsetMask = 0xFFFF

	// NilIndex is the normalized sentinel for "no parent / no next /
	// no attribute" in the in-memory node and attribute arrays.
	NilIndex = int32(-1)
)
