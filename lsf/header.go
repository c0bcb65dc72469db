package lsf

import (
	"bytes"
	"fmt"

	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// metadata is the stream size block that follows the engine version. Two
// on-disk forms exist (V5 and V6); both normalize into this struct.
type metadata struct {
	stringsUnc  uint32
	stringsDisk uint32
	nodesUnc    uint32
	nodesDisk   uint32
	attrsUnc    uint32
	attrsDisk   uint32
	valuesUnc   uint32
	valuesDisk  uint32
	compression uint8
	hasSiblings bool
}

type header struct {
	version format.LSFVersion
	engine  format.PackedVersion
	meta    metadata
}

// parseHeader reads the signature, format version, engine version and
// stream metadata. It returns the offset of the first stream.
func parseHeader(data []byte) (header, int, error) {
	var h header
	if len(data) < format.LSFHeaderSize || !bytes.Equal(data[:format.SignatureSize], format.LSFSignature) {
		return h, 0, fmt.Errorf("lsf: %w", types.ErrNotResource)
	}

	h.version = format.LSFVersion(format.ReadU32(data, format.SignatureSize))
	if !h.version.Supported() {
		return h, 0, fmt.Errorf("lsf: version %d: %w", h.version, types.ErrUnsupported)
	}

	off := format.LSFHeaderSize
	if h.version >= format.VerExtendedHeader {
		if off+8 > len(data) {
			return h, 0, fmt.Errorf("lsf: truncated engine version: %w", types.ErrCorrupt)
		}
		h.engine = format.UnpackVersion64(format.ReadI64(data, off))
		off += 8
		// Merged saves occasionally ship a zeroed engine version; pin
		// those to the first release that produced them.
		if h.engine.Major == 0 {
			h.engine = format.PackedVersion{Major: 4, Minor: 0, Revision: 9, Build: 0}
		}
	} else {
		if off+4 > len(data) {
			return h, 0, fmt.Errorf("lsf: truncated engine version: %w", types.ErrCorrupt)
		}
		h.engine = format.UnpackVersion32(format.ReadI32(data, off))
		off += 4
	}

	metaSize := format.MetadataSizeV5
	if h.version >= format.VerAdditionalBlob {
		metaSize = format.MetadataSizeV6
	}
	if off+metaSize > len(data) {
		return h, 0, fmt.Errorf("lsf: truncated stream metadata: %w", types.ErrCorrupt)
	}

	m := &h.meta
	m.stringsUnc = format.ReadU32(data, off)
	m.stringsDisk = format.ReadU32(data, off+4)
	rest := off + 8
	if h.version >= format.VerAdditionalBlob {
		rest += 8 // unknown u64, present from V6 on
	}
	m.nodesUnc = format.ReadU32(data, rest)
	m.nodesDisk = format.ReadU32(data, rest+4)
	m.attrsUnc = format.ReadU32(data, rest+8)
	m.attrsDisk = format.ReadU32(data, rest+12)
	m.valuesUnc = format.ReadU32(data, rest+16)
	m.valuesDisk = format.ReadU32(data, rest+20)
	m.compression = data[rest+24]
	// one unused byte and an unused u16 follow the compression flags
	m.hasSiblings = format.ReadU32(data, rest+28) == 1

	return h, off + metaSize, nil
}

// wideLayout reports whether the node/attribute streams use the 16-byte
// records with explicit sibling links.
func (h header) wideLayout() bool {
	return h.version >= format.VerExtendedNodes && h.meta.hasSiblings
}
