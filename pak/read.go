package pak

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lskit/lskit/internal/codec"
	"github.com/lskit/lskit/lsf"
	"github.com/lskit/lskit/pkg/types"
)

// Files returns the file table entries in table order.
func (p *Package) Files() []FileEntry {
	out := make([]FileEntry, len(p.files))
	copy(out, p.files)
	return out
}

// ListMembers returns the member names in file table order.
func (p *Package) ListMembers() []string {
	out := make([]string, len(p.files))
	for i, f := range p.files {
		out[i] = f.Name
	}
	return out
}

// ReadMember locates the member by exact name and returns its decompressed
// bytes. The result is always a fresh allocation, independent of the
// package's backing storage. Decompression happens once per call.
func (p *Package) ReadMember(name string) ([]byte, error) {
	i, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("pak: member %q: %w", name, types.ErrNotFound)
	}
	return p.readEntry(p.files[i])
}

func (p *Package) readEntry(f FileEntry) ([]byte, error) {
	if int(f.ArchivePart) >= len(p.parts) {
		return nil, fmt.Errorf("pak: member %q lives in part %d, only %d supplied: %w",
			f.Name, f.ArchivePart, len(p.parts), types.ErrCorrupt)
	}
	part := p.parts[f.ArchivePart]

	end := f.Offset + uint64(f.SizeOnDisk)
	if end > uint64(len(part)) {
		return nil, fmt.Errorf("pak: member %q range [%d:%d] past end of %d-byte part %d: %w",
			f.Name, f.Offset, end, len(part), f.ArchivePart, types.ErrCorrupt)
	}
	compressed := part[f.Offset:end]

	out, err := codec.Decompress(compressed, f.Method(), int(f.Size()), false)
	if err != nil {
		return nil, fmt.Errorf("pak: member %q: %w", f.Name, err)
	}
	if f.Method() == types.CompressionNone {
		out = bytes.Clone(out)
	}
	return out, nil
}

// ExtractDocument reads the named member and decodes it as an LSF
// resource document.
func (p *Package) ExtractDocument(name string) (*lsf.Document, error) {
	b, err := p.ReadMember(name)
	if err != nil {
		return nil, err
	}
	return lsf.Parse(b)
}

// LoadGlobals decodes the save's globals.lsf member, matched
// case-insensitively, which is where the interesting state lives in
// practice.
func (p *Package) LoadGlobals() (*lsf.Document, error) {
	for _, f := range p.files {
		if strings.EqualFold(f.Name, "globals.lsf") {
			b, err := p.readEntry(f)
			if err != nil {
				return nil, err
			}
			return lsf.Parse(b)
		}
	}
	return nil, fmt.Errorf("pak: no globals.lsf member: %w", types.ErrNotFound)
}
