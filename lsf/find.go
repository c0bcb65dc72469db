package lsf

import (
	"fmt"

	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// Find walks from the root regions down the child chains, matching each
// path segment against node names in file order. The first segment selects
// the region. Matching is exact; a segment with no matching child fails
// with types.ErrNotFound.
func (d *Document) Find(path ...string) (NodeID, error) {
	if len(path) == 0 {
		return NilNode, fmt.Errorf("lsf: empty path: %w", types.ErrNotFound)
	}

	cur := NilNode
	for _, r := range d.regions {
		name, err := d.NodeName(r)
		if err != nil {
			return NilNode, err
		}
		if name == path[0] {
			cur = r
			break
		}
	}
	if cur == NilNode {
		return NilNode, fmt.Errorf("lsf: no region %q: %w", path[0], types.ErrNotFound)
	}

	for _, seg := range path[1:] {
		next := NilNode
		for _, child := range d.Children(cur) {
			name, err := d.NodeName(child)
			if err != nil {
				return NilNode, err
			}
			if name == seg {
				next = child
				break
			}
		}
		if next == NilNode {
			return NilNode, fmt.Errorf("lsf: node %q has no child %q: %w",
				path[0], seg, types.ErrNotFound)
		}
		cur = next
	}
	return cur, nil
}

// Attribute locates the named attribute on the node at path.
func (d *Document) Attribute(path []string, name string) (Attr, error) {
	id, err := d.Find(path...)
	if err != nil {
		return Attr{}, err
	}
	steps := 0
	for a := d.Nodes[id].FirstAttr; a != format.NilIndex; a = d.Attrs[a].Next {
		if steps++; steps > len(d.Attrs) {
			return Attr{}, fmt.Errorf("lsf: attribute chain of node %d does not terminate: %w",
				id, types.ErrCorrupt)
		}
		attrName, err := d.AttrName(d.Attrs[a])
		if err != nil {
			return Attr{}, err
		}
		if attrName == name {
			return d.Attrs[a], nil
		}
	}
	return Attr{}, fmt.Errorf("lsf: node has no attribute %q: %w", name, types.ErrNotFound)
}

// Blob extracts the named binary attribute verbatim. Attributes of any
// other type fail with types.ErrTypeMismatch.
func (d *Document) Blob(path []string, name string) ([]byte, error) {
	a, err := d.Attribute(path, name)
	if err != nil {
		return nil, err
	}
	if a.Type != types.DTScratchBuffer {
		return nil, fmt.Errorf("lsf: attribute %q is %s, not ScratchBuffer: %w",
			name, a.Type, types.ErrTypeMismatch)
	}
	v, err := d.DecodeAttr(a)
	if err != nil {
		return nil, err
	}
	return v.Bytes, nil
}
