package lsf

import (
	"bytes"
	"fmt"

	"github.com/lskit/lskit/internal/codec"
	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// NodeID indexes a node inside a Document. IDs are plain positions in the
// flat node array, so they stay valid for the document's lifetime and cost
// nothing to copy.
type NodeID int32

// NilNode is the sentinel for "no node".
const NilNode NodeID = NodeID(format.NilIndex)

// Document is the decoded node-tree for one resource stream. It is
// immutable after Parse and owns every backing buffer it references, so a
// caller may discard the input bytes immediately.
type Document struct {
	Version     format.LSFVersion
	GameVersion format.PackedVersion

	// Names is the deduplicated string table, as pages of strings.
	Names [][]string
	// Nodes and Attrs are the flat record arrays; see Node and Attr for
	// the index-linkage rules.
	Nodes []Node
	Attrs []Attr

	values  []byte
	regions []NodeID
}

// Parse decodes a complete LSF resource from data. The header's version
// field decides every layout variant: engine version width, metadata form,
// compact vs wide records and whether streams may be LZ4-frame compressed.
func Parse(data []byte) (*Document, error) {
	h, off, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	method, ok := types.MethodFromFlags(h.meta.compression)
	if !ok {
		return nil, fmt.Errorf("lsf: compression flags %#02x: %w",
			h.meta.compression, types.ErrUnsupportedCompression)
	}
	// Frame ("chunked") compression never applies to the string table and
	// only exists from VerChunkedCompress on.
	chunked := h.version >= format.VerChunkedCompress

	d := &Document{
		Version:     h.version,
		GameVersion: h.engine,
	}

	namesRaw, err := readStream(data, &off, h.meta.stringsDisk, h.meta.stringsUnc, method, false)
	if err != nil {
		return nil, fmt.Errorf("lsf: strings stream: %w", err)
	}
	if d.Names, err = parseNames(namesRaw); err != nil {
		return nil, err
	}

	nodesRaw, err := readStream(data, &off, h.meta.nodesDisk, h.meta.nodesUnc, method, chunked)
	if err != nil {
		return nil, fmt.Errorf("lsf: nodes stream: %w", err)
	}
	if d.Nodes, err = parseNodes(nodesRaw, h.wideLayout()); err != nil {
		return nil, err
	}

	attrsRaw, err := readStream(data, &off, h.meta.attrsDisk, h.meta.attrsUnc, method, chunked)
	if err != nil {
		return nil, fmt.Errorf("lsf: attributes stream: %w", err)
	}
	if d.Attrs, err = parseAttrs(attrsRaw, h.wideLayout(), len(d.Nodes)); err != nil {
		return nil, err
	}

	if d.values, err = readStream(data, &off, h.meta.valuesDisk, h.meta.valuesUnc, method, chunked); err != nil {
		return nil, fmt.Errorf("lsf: values stream: %w", err)
	}

	// Node records were validated against each other; now pin them to the
	// attribute array.
	for i, n := range d.Nodes {
		if n.FirstAttr >= int32(len(d.Attrs)) {
			return nil, fmt.Errorf("lsf: node %d: first attribute %d out of range: %w",
				i, n.FirstAttr, types.ErrCorrupt)
		}
		if n.Parent == format.NilIndex {
			d.regions = append(d.regions, NodeID(i))
		}
	}
	return d, nil
}

// readStream slices the next stream out of data at *off and inflates it.
// A zero on-disk size with a nonzero uncompressed size means the stream is
// stored raw regardless of the compression flags. The result never aliases
// data, so the document owns its bytes.
func readStream(data []byte, off *int, onDisk, unc uint32, method types.CompressionMethod, chunked bool) ([]byte, error) {
	if onDisk == 0 && unc == 0 {
		return nil, nil
	}
	if onDisk == 0 {
		raw, err := take(data, off, int(unc))
		if err != nil {
			return nil, err
		}
		return bytes.Clone(raw), nil
	}

	n := int(onDisk)
	if method == types.CompressionNone {
		n = int(unc)
	}
	in, err := take(data, off, n)
	if err != nil {
		return nil, err
	}
	out, err := codec.Decompress(in, method, int(unc), chunked)
	if err != nil {
		return nil, err
	}
	if method == types.CompressionNone {
		out = bytes.Clone(out)
	}
	return out, nil
}

func take(data []byte, off *int, n int) ([]byte, error) {
	if n < 0 || *off+n > len(data) {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w",
			n, *off, len(data)-*off, types.ErrCorrupt)
	}
	b := data[*off : *off+n]
	*off += n
	return b, nil
}

// Regions returns the parent-less nodes in file order. Typical documents
// have exactly one, but merged resources can carry several.
func (d *Document) Regions() []NodeID {
	out := make([]NodeID, len(d.regions))
	copy(out, d.regions)
	return out
}

// NodeName resolves a node's name through the string table.
func (d *Document) NodeName(id NodeID) (string, error) {
	if id < 0 || int(id) >= len(d.Nodes) {
		return "", fmt.Errorf("lsf: node id %d out of range: %w", id, types.ErrCorrupt)
	}
	return d.resolveName(d.Nodes[id].NameRef)
}

// AttrName resolves an attribute's name through the string table.
func (d *Document) AttrName(a Attr) (string, error) {
	return d.resolveName(a.NameRef)
}

func (d *Document) resolveName(ref uint32) (string, error) {
	page := int(ref >> format.NameRefPageShift)
	idx := int(ref & format.NameRefOffsetMask)
	if page >= len(d.Names) {
		return "", fmt.Errorf("lsf: name page %d out of range (%d pages): %w",
			page, len(d.Names), types.ErrCorrupt)
	}
	if idx >= len(d.Names[page]) {
		return "", fmt.Errorf("lsf: name %d out of range on page %d (%d strings): %w",
			idx, page, len(d.Names[page]), types.ErrCorrupt)
	}
	return d.Names[page][idx], nil
}

// Children returns the direct children of id in file order by walking the
// sibling chain. The walk is bounded by the node count; chains are built
// from validated backward parent links, so they cannot cycle.
func (d *Document) Children(id NodeID) []NodeID {
	if id < 0 || int(id) >= len(d.Nodes) {
		return nil
	}
	var out []NodeID
	for c := d.Nodes[id].FirstChild; c != format.NilIndex && len(out) <= len(d.Nodes); c = d.Nodes[c].NextSibling {
		out = append(out, NodeID(c))
	}
	return out
}

// AttrNames resolves the names of id's attributes, in chain order.
func (d *Document) AttrNames(id NodeID) ([]string, error) {
	attrs, err := d.Attributes(id)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(attrs))
	for i, a := range attrs {
		if out[i], err = d.resolveName(a.NameRef); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Attributes returns the attribute records owned by id, in chain order.
func (d *Document) Attributes(id NodeID) ([]Attr, error) {
	if id < 0 || int(id) >= len(d.Nodes) {
		return nil, fmt.Errorf("lsf: node id %d out of range: %w", id, types.ErrCorrupt)
	}
	var out []Attr
	for a := d.Nodes[id].FirstAttr; a != format.NilIndex; a = d.Attrs[a].Next {
		if len(out) > len(d.Attrs) {
			return nil, fmt.Errorf("lsf: attribute chain of node %d does not terminate: %w",
				id, types.ErrCorrupt)
		}
		out = append(out, d.Attrs[a])
	}
	return out, nil
}
