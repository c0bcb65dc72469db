package lsf

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/lskit/lskit/internal/format"
	"github.com/lskit/lskit/pkg/types"
)

// fixedSize returns the static decode width of a tag, when it has one.
// String, wide-string, blob and translated tags use the attribute's own
// declared length instead.
func fixedSize(t types.DataType) (int, bool) {
	switch t {
	case types.DTNone:
		return 0, true
	case types.DTByte, types.DTInt8, types.DTBool:
		return 1, true
	case types.DTShort, types.DTUShort:
		return 2, true
	case types.DTInt, types.DTUInt, types.DTFloat:
		return 4, true
	case types.DTDouble, types.DTULongLong, types.DTLong, types.DTInt64:
		return 8, true
	case types.DTIVec2, types.DTVec2:
		return 8, true
	case types.DTIVec3, types.DTVec3:
		return 12, true
	case types.DTIVec4, types.DTVec4, types.DTMat2, types.DTUUID:
		return 16, true
	case types.DTMat3:
		return 36, true
	case types.DTMat3x4, types.DTMat4x3:
		return 48, true
	case types.DTMat4:
		return 64, true
	}
	return 0, false
}

// matShape gives rows×cols for the matrix tags, matching the on-disk
// row-major float order.
func matShape(t types.DataType) (rows, cols int) {
	switch t {
	case types.DTMat2:
		return 2, 2
	case types.DTMat3:
		return 3, 3
	case types.DTMat3x4:
		return 3, 4
	case types.DTMat4x3:
		return 4, 3
	default:
		return 4, 4
	}
}

// DecodeAttr interprets an attribute's raw value bytes according to its
// type tag. Every read is bounds-checked against the value stream; a
// declared length that disagrees with a fixed-width tag's static size is
// corruption, never truncated or padded.
func (d *Document) DecodeAttr(a Attr) (types.Value, error) {
	v := types.Value{Type: a.Type}

	end := int64(a.Offset) + int64(a.Length)
	if end > int64(len(d.values)) {
		return v, fmt.Errorf("lsf: attribute value [%d:%d] past value stream end %d: %w",
			a.Offset, end, len(d.values), types.ErrCorrupt)
	}
	raw := d.values[a.Offset:end]

	if w, ok := fixedSize(a.Type); ok && int(a.Length) != w {
		return v, fmt.Errorf("lsf: %s attribute declares length %d, tag decodes %d bytes: %w",
			a.Type, a.Length, w, types.ErrCorrupt)
	}

	switch a.Type {
	case types.DTNone:

	case types.DTByte:
		v.Uint = uint64(raw[0])
	case types.DTUShort:
		v.Uint = uint64(format.ReadU16(raw, 0))
	case types.DTUInt:
		v.Uint = uint64(format.ReadU32(raw, 0))
	case types.DTULongLong:
		v.Uint = format.ReadU64(raw, 0)

	case types.DTInt8:
		v.Int = int64(int8(raw[0]))
	case types.DTShort:
		v.Int = int64(int16(format.ReadU16(raw, 0)))
	case types.DTInt:
		v.Int = int64(format.ReadI32(raw, 0))
	case types.DTLong, types.DTInt64:
		v.Int = format.ReadI64(raw, 0)

	case types.DTFloat:
		v.Float = float64(format.ReadF32(raw, 0))
	case types.DTDouble:
		v.Float = format.ReadF64(raw, 0)

	case types.DTBool:
		v.Bool = raw[0] != 0

	case types.DTIVec2, types.DTIVec3, types.DTIVec4:
		n := len(raw) / 4
		v.IVec = make([]int32, n)
		for i := 0; i < n; i++ {
			v.IVec[i] = format.ReadI32(raw, i*4)
		}

	case types.DTVec2, types.DTVec3, types.DTVec4:
		n := len(raw) / 4
		v.Vec = make([]float32, n)
		for i := 0; i < n; i++ {
			v.Vec[i] = format.ReadF32(raw, i*4)
		}

	case types.DTMat2, types.DTMat3, types.DTMat3x4, types.DTMat4x3, types.DTMat4:
		rows, cols := matShape(a.Type)
		v.Mat = make([][]float32, rows)
		for r := 0; r < rows; r++ {
			row := make([]float32, cols)
			for c := 0; c < cols; c++ {
				row[c] = format.ReadF32(raw, (r*cols+c)*4)
			}
			v.Mat[r] = row
		}

	case types.DTString, types.DTPath, types.DTFixedString, types.DTLSString:
		s, err := decodeText(raw)
		if err != nil {
			return v, err
		}
		v.Str = s

	case types.DTWString, types.DTLSWString:
		s, err := decodeWideText(raw)
		if err != nil {
			return v, err
		}
		v.Str = s

	case types.DTScratchBuffer:
		// Pass-through: exactly Length bytes, zero interpretation, owned.
		v.Bytes = bytes.Clone(raw)

	case types.DTUUID:
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return v, fmt.Errorf("lsf: uuid attribute: %v: %w", err, types.ErrCorrupt)
		}
		v.UUID = id

	case types.DTTranslatedString:
		c := cursor{b: raw}
		ts, err := d.readTranslated(&c)
		if err != nil {
			return v, err
		}
		v.TS = ts

	case types.DTTranslatedFSString:
		c := cursor{b: raw}
		fs, err := d.readTranslatedFS(&c)
		if err != nil {
			return v, err
		}
		v.FS = fs

	default:
		return v, fmt.Errorf("lsf: type tag %d: %w", uint32(a.Type), types.ErrUnsupportedType)
	}
	return v, nil
}

// decodeText decodes a null-terminated UTF-8 run. The engine pads string
// values with trailing NULs; all of them are stripped. A nonzero final
// byte or invalid UTF-8 is surfaced, never replaced.
func decodeText(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if raw[len(raw)-1] != 0 {
		return "", fmt.Errorf("lsf: string value is not null-terminated: %w", types.ErrInvalidEncoding)
	}
	end := len(raw) - 1
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	s := raw[:end]
	if !utf8.Valid(s) {
		return "", fmt.Errorf("lsf: string value is not UTF-8: %w", types.ErrInvalidEncoding)
	}
	return string(s), nil
}

var utf16Dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeWideText decodes a null-terminated UTF-16LE run.
func decodeWideText(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("lsf: wide string value has odd length %d: %w",
			len(raw), types.ErrInvalidEncoding)
	}
	if raw[len(raw)-1] != 0 || raw[len(raw)-2] != 0 {
		return "", fmt.Errorf("lsf: wide string value is not null-terminated: %w", types.ErrInvalidEncoding)
	}
	end := len(raw) - 2
	for end > 0 && raw[end-1] == 0 && raw[end-2] == 0 {
		end -= 2
	}
	out, err := utf16Dec.NewDecoder().Bytes(raw[:end])
	if err != nil {
		return "", fmt.Errorf("lsf: wide string value: %v: %w", err, types.ErrInvalidEncoding)
	}
	return string(out), nil
}

// embedsTranslatedText reports whether translated strings in this document
// carry literal text instead of a version number. Newer streams (VerBG3 or
// a new enough engine) store handle+version only.
func (d *Document) embedsTranslatedText() bool {
	if d.Version >= format.VerBG3 {
		return false
	}
	gv := d.GameVersion
	switch {
	case gv.Major > 4:
		return false
	case gv.Major == 4 && gv.Revision > 0:
		return false
	case gv.Major == 4 && gv.Revision == 0 && gv.Build >= 0x1A:
		return false
	}
	return true
}

func (d *Document) readTranslated(c *cursor) (*types.TranslatedString, error) {
	ts := &types.TranslatedString{}
	if d.embedsTranslatedText() {
		value, err := c.lenString()
		if err != nil {
			return nil, err
		}
		ts.Value = value
	} else {
		ver, err := c.u16()
		if err != nil {
			return nil, err
		}
		ts.Version = ver
	}
	handle, err := c.lenString()
	if err != nil {
		return nil, err
	}
	ts.Handle = handle
	return ts, nil
}

func (d *Document) readTranslatedFS(c *cursor) (*types.TranslatedFSString, error) {
	fs := &types.TranslatedFSString{}
	if d.Version >= format.VerBG3 {
		ver, err := c.u16()
		if err != nil {
			return nil, err
		}
		fs.Version = ver
	} else {
		value, err := c.lenString()
		if err != nil {
			return nil, err
		}
		fs.Value = value
	}
	handle, err := c.lenString()
	if err != nil {
		return nil, err
	}
	fs.Handle = handle

	argc, err := c.i32()
	if err != nil {
		return nil, err
	}
	if argc < 0 || int(argc) > c.remaining() {
		return nil, fmt.Errorf("lsf: translated string declares %d arguments with %d bytes left: %w",
			argc, c.remaining(), types.ErrCorrupt)
	}
	if argc > 0 {
		fs.Arguments = make([]types.TranslatedFSArgument, 0, argc)
	}
	for i := int32(0); i < argc; i++ {
		key, err := c.lenString()
		if err != nil {
			return nil, err
		}
		nested, err := d.readTranslatedFS(c)
		if err != nil {
			return nil, err
		}
		value, err := c.lenString()
		if err != nil {
			return nil, err
		}
		fs.Arguments = append(fs.Arguments, types.TranslatedFSArgument{
			Key:    key,
			String: *nested,
			Value:  value,
		})
	}
	return fs, nil
}

// cursor is a bounds-checked reader over one attribute's value slice, for
// the variable-layout translated-string tags.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) remaining() int { return len(c.b) - c.off }

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.b) {
		return nil, fmt.Errorf("lsf: value needs %d bytes at %d, have %d: %w",
			n, c.off, c.remaining(), types.ErrCorrupt)
	}
	b := c.b[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return format.ReadU16(b, 0), nil
}

func (c *cursor) i32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return format.ReadI32(b, 0), nil
}

// lenString reads an i32 length prefix followed by that many bytes of
// null-terminated UTF-8.
func (c *cursor) lenString() (string, error) {
	n, err := c.i32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("lsf: negative string length %d: %w", n, types.ErrCorrupt)
	}
	b, err := c.take(int(n))
	if err != nil {
		return "", err
	}
	return decodeText(b)
}
