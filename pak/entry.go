package pak

import (
	"bytes"
	"fmt"

	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// FileEntry is one member record of the package's file table. Entries are
// owned by the Package and never mutated; extraction requests reference
// them by name.
type FileEntry struct {
	// Name is the member path, with forward-slash separators.
	Name string
	// Offset is the byte position of the compressed payload within its
	// archive part.
	Offset uint64
	// ArchivePart selects which part file the payload lives in.
	ArchivePart uint8
	// Flags carries the compression method in its low bits.
	Flags uint8
	// SizeOnDisk is the stored (compressed) payload size.
	SizeOnDisk uint32
	// UncompressedSize is the member's size after decompression.
	UncompressedSize uint32
}

// Method returns the member's compression method.
func (f FileEntry) Method() types.CompressionMethod {
	m, _ := types.MethodFromFlags(f.Flags)
	return m
}

// Size returns the number of bytes ReadMember will produce for this entry.
func (f FileEntry) Size() uint32 {
	if f.Method() == types.CompressionNone {
		return f.SizeOnDisk
	}
	return f.UncompressedSize
}

// parseFileTable decodes the decompressed 272-byte member records. A
// record's flags must stay within the known bit set and its method within
// the known codec set; anything else would be silently misdecoded, so it
// fails instead.
func parseFileTable(table []byte, numFiles int) ([]FileEntry, error) {
	if len(table) != numFiles*format.FileEntrySize {
		return nil, fmt.Errorf("pak: file table is %d bytes for %d entries: %w",
			len(table), numFiles, types.ErrCorrupt)
	}

	files := make([]FileEntry, 0, numFiles)
	for i := 0; i < numFiles; i++ {
		rec := table[i*format.FileEntrySize : (i+1)*format.FileEntrySize]

		name := rec[:format.FileEntryNameLen]
		if z := bytes.IndexByte(name, 0); z >= 0 {
			name = name[:z]
		}

		flags := rec[format.FileEntryFlagsOffset]
		if _, ok := types.MethodFromFlags(flags); !ok || flags&^uint8(format.FileEntryKnownFlags) != 0 {
			return nil, fmt.Errorf("pak: member %q has unsupported flags %#02x: %w",
				name, flags, types.ErrUnsupportedCompression)
		}

		files = append(files, FileEntry{
			Name: string(name),
			Offset: uint64(format.ReadU32(rec, format.FileEntryOffsetLoOffset)) |
				uint64(format.ReadU16(rec, format.FileEntryOffsetHiOffset))<<32,
			ArchivePart:      rec[format.FileEntryArchivePartOffset],
			Flags:            flags,
			SizeOnDisk:       format.ReadU32(rec, format.FileEntrySizeOnDiskOffset),
			UncompressedSize: format.ReadU32(rec, format.FileEntryUncompressedOffset),
		})
	}
	return files, nil
}
