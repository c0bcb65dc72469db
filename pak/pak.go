// Package pak reads the LSPK save package container: an outer archive
// holding named, independently compressed member byte streams, with the
// file table itself stored LZ4-compressed behind a fixed header.
//
// A Package is parsed once and immutable afterwards. Member reads slice
// the recorded range out of the backing part and decompress on demand;
// nothing is cached beyond the parsed table, so callers that re-read a
// member repeatedly should keep the returned bytes themselves.
package pak

import (
	"bytes"
	"fmt"

	"github.com/lskit/lskit/internal/codec"
	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/internal/mmfile"
	"github.com/lskit/lskit/pkg/types"
)

// Package is an opened save package. All fields are fixed at open time.
type Package struct {
	// Version is the container format version (18).
	Version uint32
	// Flags and Priority are the package-level metadata bytes.
	Flags    uint8
	Priority uint8
	// MD5 is the content digest recorded in the header, unverified.
	MD5 [16]byte
	// NumParts is the part count the header declares. Parts beyond the
	// ones actually supplied fail member reads with corrupt-range errors.
	NumParts uint16

	parts  [][]byte
	files  []FileEntry
	byName map[string]int
	unmap  func() error
}

// Open maps the package file at path read-only and parses it. Close
// releases the mapping; member slices returned by ReadMember stay valid
// because they are always freshly allocated.
func Open(path string) (*Package, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("pak: open %s: %w", path, err)
	}
	p, err := OpenBytes(data)
	if err != nil {
		if unmap != nil {
			_ = unmap()
		}
		return nil, err
	}
	p.unmap = unmap
	return p, nil
}

// OpenBytes parses a package from in-memory parts. parts[0] must be the
// primary file carrying the header and file table; additional slices are
// the extra archive parts of a split package, in part order.
func OpenBytes(parts ...[]byte) (*Package, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("pak: no parts supplied: %w", types.ErrNotPackage)
	}
	p := &Package{parts: parts}
	if err := p.parse(parts[0]); err != nil {
		return nil, err
	}
	return p, nil
}

// Close unmaps the backing file, if the package was opened from a path.
func (p *Package) Close() error {
	if p.unmap == nil {
		return nil
	}
	unmap := p.unmap
	p.unmap = nil
	return unmap()
}

func (p *Package) parse(data []byte) error {
	if len(data) < format.PAKMinSize || !bytes.Equal(data[:format.SignatureSize], format.PAKSignature) {
		return fmt.Errorf("pak: %w", types.ErrNotPackage)
	}

	p.Version = format.ReadU32(data, format.PAKVersionOffset)
	if p.Version != format.PackageVersion18 {
		return fmt.Errorf("pak: package version %d: %w", p.Version, types.ErrUnsupported)
	}
	p.Flags = data[format.PAKFlagsOffset]
	p.Priority = data[format.PAKPriorityOffset]
	copy(p.MD5[:], data[format.PAKMD5Offset:format.PAKMD5Offset+16])
	p.NumParts = format.ReadU16(data, format.PAKNumPartsOffset)

	tableOff := format.ReadU64(data, format.PAKFileListOffsetOffset)
	if tableOff > uint64(len(data)) || uint64(len(data))-tableOff < format.FileTableHeaderSize {
		return fmt.Errorf("pak: file table offset %d past end of %d-byte part: %w",
			tableOff, len(data), types.ErrCorrupt)
	}

	off := int(tableOff)
	numFiles := format.ReadU32(data, off)
	compSize := format.ReadU32(data, off+4)
	tableEnd := uint64(off) + format.FileTableHeaderSize + uint64(compSize)
	if tableEnd > uint64(len(data)) {
		return fmt.Errorf("pak: compressed file table [%d:%d] past end of %d-byte part: %w",
			off, tableEnd, len(data), types.ErrCorrupt)
	}

	rawSize := uint64(numFiles) * format.FileEntrySize
	if rawSize > 1<<31 {
		return fmt.Errorf("pak: file table declares %d entries: %w", numFiles, types.ErrCorrupt)
	}
	table, err := codec.Decompress(
		data[off+format.FileTableHeaderSize:tableEnd],
		types.CompressionLZ4, int(rawSize), false,
	)
	if err != nil {
		return fmt.Errorf("pak: file table: %w", err)
	}

	files, err := parseFileTable(table, int(numFiles))
	if err != nil {
		return err
	}

	byName := make(map[string]int, len(files))
	for i, f := range files {
		if _, dup := byName[f.Name]; dup {
			return fmt.Errorf("pak: duplicate member name %q: %w", f.Name, types.ErrCorrupt)
		}
		byName[f.Name] = i

		// The table's own byte range must never overlap a member payload
		// in the primary part.
		if f.ArchivePart == 0 && f.Offset < tableEnd && uint64(off) < f.Offset+uint64(f.SizeOnDisk) {
			return fmt.Errorf("pak: member %q payload overlaps the file table: %w",
				f.Name, types.ErrCorrupt)
		}
	}

	p.files = files
	p.byName = byName
	return nil
}
