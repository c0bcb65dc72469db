package lsf

import (
	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// Fixture builders for synthetic LSF streams. Streams are stored raw
// (zero on-disk size) unless a test assembles its own compressed variant.

func ref(page, idx int) uint32 {
	return uint32(page)<<format.NameRefPageShift | uint32(idx)
}

func tag(t types.DataType, length int) uint32 {
	return uint32(t) | uint32(length)<<format.AttrLengthShift
}

func namesStream(pages ...[]string) []byte {
	tmp := make([]byte, 4)
	format.PutU32(tmp, 0, uint32(len(pages)))
	out := append([]byte(nil), tmp...)
	for _, page := range pages {
		format.PutU16(tmp, 0, uint16(len(page)))
		out = append(out, tmp[:2]...)
		for _, s := range page {
			format.PutU16(tmp, 0, uint16(len(s)))
			out = append(out, tmp[:2]...)
			out = append(out, s...)
		}
	}
	return out
}

func wideNode(nameRef uint32, parent, firstAttr int32) []byte {
	b := make([]byte, format.NodeSizeWide)
	format.PutU32(b, 0, nameRef)
	format.PutI32(b, 4, parent)
	format.PutI32(b, 8, format.NilIndex) // on-disk sibling link, not consulted
	format.PutI32(b, 12, firstAttr)
	return b
}

func compactNode(nameRef uint32, firstAttr, parent int32) []byte {
	b := make([]byte, format.NodeSizeCompact)
	format.PutU32(b, 0, nameRef)
	format.PutI32(b, 4, firstAttr)
	format.PutI32(b, 8, parent)
	return b
}

func wideAttr(nameRef, typeAndLen uint32, next int32, offset uint32) []byte {
	b := make([]byte, format.AttrSizeWide)
	format.PutU32(b, 0, nameRef)
	format.PutU32(b, 4, typeAndLen)
	format.PutI32(b, 8, next)
	format.PutU32(b, 12, offset)
	return b
}

func compactAttr(nameRef, typeAndLen uint32, owner int32) []byte {
	b := make([]byte, format.AttrSizeCompact)
	format.PutU32(b, 0, nameRef)
	format.PutU32(b, 4, typeAndLen)
	format.PutI32(b, 8, owner)
	return b
}

func cat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

type docSpec struct {
	version  format.LSFVersion
	siblings bool
	names    []byte
	nodes    []byte
	attrs    []byte
	values   []byte
}

// buildDoc serializes a complete resource stream around the given tables.
// The engine version is 4.1.9.0 for the wide 64-bit header and 3.6.2.100
// for the older 32-bit one.
func buildDoc(s docSpec) []byte {
	engW := 4
	if s.version >= format.VerExtendedHeader {
		engW = 8
	}
	metaSize := format.MetadataSizeV5
	if s.version >= format.VerAdditionalBlob {
		metaSize = format.MetadataSizeV6
	}

	hdr := make([]byte, format.LSFHeaderSize+engW+metaSize)
	copy(hdr, format.LSFSignature)
	format.PutU32(hdr, 4, uint32(s.version))
	if engW == 8 {
		format.PutI64(hdr, format.LSFHeaderSize, 4<<55|1<<47|9<<31)
	} else {
		format.PutI32(hdr, format.LSFHeaderSize, 3<<28|6<<24|2<<16|100)
	}

	off := format.LSFHeaderSize + engW
	format.PutU32(hdr, off, uint32(len(s.names)))
	rest := off + 8
	if s.version >= format.VerAdditionalBlob {
		rest += 8
	}
	format.PutU32(hdr, rest, uint32(len(s.nodes)))
	format.PutU32(hdr, rest+8, uint32(len(s.attrs)))
	format.PutU32(hdr, rest+16, uint32(len(s.values)))
	if s.siblings {
		format.PutU32(hdr, rest+28, 1)
	}

	return cat(hdr, s.names, s.nodes, s.attrs, s.values)
}
