package lsf

import (
	"fmt"
	"unicode/utf8"

	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// parseNames decodes the deduplicated string table. The stream groups
// strings into pages: a u32 page count, then per page a u16 string count
// followed by that many u16-length-prefixed UTF-8 runs. Node and attribute
// records reference the result as (page, index-within-page) pairs.
func parseNames(b []byte) ([][]string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b) < 4 {
		return nil, fmt.Errorf("lsf: names: truncated page count: %w", types.ErrCorrupt)
	}
	pages := int(format.ReadU32(b, 0))
	off := 4
	// Each page needs at least its u16 string count, which bounds how many
	// pages the remaining bytes can possibly hold. Checked before the count
	// is used as allocation capacity.
	if pages > (len(b)-off)/2 {
		return nil, fmt.Errorf("lsf: names: page count %d exceeds %d-byte stream: %w",
			pages, len(b), types.ErrCorrupt)
	}

	names := make([][]string, 0, pages)
	for p := 0; p < pages; p++ {
		if off+2 > len(b) {
			return nil, fmt.Errorf("lsf: names: page %d: truncated string count: %w", p, types.ErrCorrupt)
		}
		count := int(format.ReadU16(b, off))
		off += 2

		page := make([]string, 0, count)
		for i := 0; i < count; i++ {
			if off+2 > len(b) {
				return nil, fmt.Errorf("lsf: names: page %d string %d: truncated length: %w",
					p, i, types.ErrCorrupt)
			}
			n := int(format.ReadU16(b, off))
			off += 2
			if off+n > len(b) {
				return nil, fmt.Errorf("lsf: names: page %d string %d: length %d past end: %w",
					p, i, n, types.ErrCorrupt)
			}
			raw := b[off : off+n]
			off += n
			// Names are load-bearing for the rest of decoding; never
			// substitute replacement characters.
			if !utf8.Valid(raw) {
				return nil, fmt.Errorf("lsf: names: page %d string %d: %w", p, i, types.ErrInvalidEncoding)
			}
			page = append(page, string(raw))
		}
		names = append(names, page)
	}
	return names, nil
}
