package types

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // unrecognized magic/header
	ErrKindCorrupt                    // structural corruption (bad sizes/offsets/indices)
	ErrKindUnsupported                // recognized feature or version we don't decode
	ErrKindNotFound                   // missing member/node/attribute by name
	ErrKindType                       // value requested as the wrong variant
	ErrKindEncoding                   // non-UTF-8 (or non-UTF-16) bytes where text is required
)

// Error is a typed error with an optional underlying cause. Decoders wrap
// these sentinels with fmt.Errorf("...: %w", sentinel) to add context, so
// errors.Is against a sentinel always works.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned by the decoders.
var (
	// ErrNotPackage indicates the buffer lacks the package signature.
	ErrNotPackage = &Error{Kind: ErrKindFormat, Msg: "not a save package (bad LSPK signature)"}
	// ErrNotResource indicates the buffer lacks the resource signature.
	ErrNotResource = &Error{Kind: ErrKindFormat, Msg: "not a resource stream (bad LSOF signature)"}
	// ErrCorrupt indicates a non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt data"}
	// ErrUnsupported indicates a recognized but unsupported format version.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported format version"}
	// ErrUnsupportedCompression indicates an unknown compression method tag.
	ErrUnsupportedCompression = &Error{Kind: ErrKindUnsupported, Msg: "unsupported compression method"}
	// ErrUnsupportedType indicates an attribute type tag outside the known set.
	ErrUnsupportedType = &Error{Kind: ErrKindUnsupported, Msg: "unsupported attribute type"}
	// ErrNotFound indicates a missing member, node or attribute.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrTypeMismatch indicates the attribute holds a different value variant.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "attribute has different type"}
	// ErrInvalidEncoding indicates text bytes that do not decode.
	ErrInvalidEncoding = &Error{Kind: ErrKindEncoding, Msg: "invalid text encoding"}
)
