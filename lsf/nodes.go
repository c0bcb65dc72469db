package lsf

import (
	"fmt"

	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// Node is one record of the document's flat node array. Links are indices
// into the same array (or Attrs for FirstAttr), with format.NilIndex (-1)
// as the nil sentinel. Children and attributes form singly-linked chains
// via the Next* fields; nothing owns anything, so the tree reconstructs by
// index lookup alone.
type Node struct {
	NameRef     uint32
	Parent      int32
	FirstAttr   int32
	FirstChild  int32
	NextSibling int32
}

// Attr is one record of the document's flat attribute array. Offset and
// Length locate the raw value bytes inside the document's value stream.
type Attr struct {
	NameRef uint32
	Type    types.DataType
	Length  uint32
	Next    int32
	Offset  uint32
}

// parseNodes decodes the node stream into the flat array, for either the
// compact 12-byte or the wide 16-byte record layout. Both normalize to the
// same Node form; the wide layout's on-disk sibling field is ignored and
// the child/sibling chains are instead rebuilt from each record's own
// parent field, so the decoder never depends on records being adjacent.
//
// The structural invariant enforced here is what makes every later
// traversal terminate: a non-root parent index must be strictly less than
// the record's own position.
func parseNodes(b []byte, wide bool) ([]Node, error) {
	size := format.NodeSizeCompact
	if wide {
		size = format.NodeSizeWide
	}
	if len(b)%size != 0 {
		return nil, fmt.Errorf("lsf: node stream length %d is not a multiple of %d: %w",
			len(b), size, types.ErrCorrupt)
	}

	count := len(b) / size
	nodes := make([]Node, count)
	lastChild := make([]int32, count)

	for i := 0; i < count; i++ {
		off := i * size
		n := Node{
			NameRef:     format.ReadU32(b, off),
			FirstChild:  format.NilIndex,
			NextSibling: format.NilIndex,
		}
		if wide {
			n.Parent = format.ReadI32(b, off+4)
			n.FirstAttr = format.ReadI32(b, off+12)
		} else {
			n.FirstAttr = format.ReadI32(b, off+4)
			n.Parent = format.ReadI32(b, off+8)
		}

		if n.Parent != format.NilIndex && (n.Parent < 0 || n.Parent >= int32(i)) {
			return nil, fmt.Errorf("lsf: node %d: parent index %d does not point backward: %w",
				i, n.Parent, types.ErrCorrupt)
		}
		if n.FirstAttr < format.NilIndex {
			return nil, fmt.Errorf("lsf: node %d: first attribute index %d: %w",
				i, n.FirstAttr, types.ErrCorrupt)
		}

		nodes[i] = n
		lastChild[i] = format.NilIndex

		if p := n.Parent; p != format.NilIndex {
			if nodes[p].FirstChild == format.NilIndex {
				nodes[p].FirstChild = int32(i)
			} else {
				nodes[lastChild[p]].NextSibling = int32(i)
			}
			lastChild[p] = int32(i)
		}
	}
	return nodes, nil
}

// parseAttrs decodes the attribute stream. The wide layout stores each
// record's next-attribute link and value offset explicitly. The compact
// layout instead stores the owning node index: value offsets accumulate in
// file order, and the per-node chains are threaded through the last record
// seen for each owner, mirroring how the engine wrote them out.
func parseAttrs(b []byte, wide bool, nodeCount int) ([]Attr, error) {
	size := format.AttrSizeCompact
	if wide {
		size = format.AttrSizeWide
	}
	if len(b)%size != 0 {
		return nil, fmt.Errorf("lsf: attribute stream length %d is not a multiple of %d: %w",
			len(b), size, types.ErrCorrupt)
	}

	count := len(b) / size
	attrs := make([]Attr, count)

	var lastForNode []int32
	if !wide {
		lastForNode = make([]int32, nodeCount)
		for i := range lastForNode {
			lastForNode[i] = format.NilIndex
		}
	}

	var dataOffset uint32
	for i := 0; i < count; i++ {
		off := i * size
		typeAndLen := format.ReadU32(b, off+4)

		a := Attr{
			NameRef: format.ReadU32(b, off),
			Type:    types.DataType(typeAndLen & format.AttrTypeMask),
			Length:  typeAndLen >> format.AttrLengthShift,
			Next:    format.NilIndex,
		}
		if !a.Type.Valid() {
			return nil, fmt.Errorf("lsf: attribute %d: type tag %d: %w",
				i, uint32(a.Type), types.ErrUnsupportedType)
		}

		if wide {
			a.Next = format.ReadI32(b, off+8)
			a.Offset = format.ReadU32(b, off+12)
			if a.Next < format.NilIndex || a.Next >= int32(count) {
				return nil, fmt.Errorf("lsf: attribute %d: next index %d out of range: %w",
					i, a.Next, types.ErrCorrupt)
			}
		} else {
			owner := format.ReadI32(b, off+8)
			if owner < 0 || owner >= int32(nodeCount) {
				return nil, fmt.Errorf("lsf: attribute %d: owner node %d out of range: %w",
					i, owner, types.ErrCorrupt)
			}
			a.Offset = dataOffset
			dataOffset += a.Length

			if prev := lastForNode[owner]; prev != format.NilIndex {
				attrs[prev].Next = int32(i)
			}
			lastForNode[owner] = int32(i)
		}

		attrs[i] = a
	}
	return attrs, nil
}
