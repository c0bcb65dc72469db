package types

import "github.com/google/uuid"

// Value is a decoded attribute value. Type selects which field carries the
// payload; all other fields are zero. Values are never mutated after
// construction, so callers can switch on Type and read the matching field
// without copying.
type Value struct {
	Type DataType

	Bool  bool
	Int   int64   // Short, Int, Long, Int8, Int64
	Uint  uint64  // Byte, UShort, UInt, ULongLong
	Float float64 // Float, Double

	IVec []int32     // IVec2/3/4
	Vec  []float32   // Vec2/3/4
	Mat  [][]float32 // Mat2..Mat4, row-major [rows][cols]

	Str   string    // String, Path, FixedString, LSString, WString, LSWString
	Bytes []byte    // ScratchBuffer: owned copy, extracted verbatim
	UUID  uuid.UUID // UUID

	TS *TranslatedString   // TranslatedString
	FS *TranslatedFSString // TranslatedFSString
}

// TranslatedString names a localizable string by handle plus version rather
// than embedding literal text. The handle is opaque at this layer; resolving
// it against a localization table is a caller concern.
type TranslatedString struct {
	Version uint16
	Handle  string
	Value   string // only set by pre-VerBG3 streams that embed the text
}

// TranslatedFSString is a TranslatedString carrying nested format arguments.
type TranslatedFSString struct {
	TranslatedString
	Arguments []TranslatedFSArgument
}

// TranslatedFSArgument is one key/value substitution of a TranslatedFSString.
type TranslatedFSArgument struct {
	Key    string
	String TranslatedFSString
	Value  string
}
