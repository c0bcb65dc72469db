package types

import "fmt"

// DataType enumerates the attribute value types of the LSF format. The tag
// space is closed: the on-disk field is 6 bits wide and every defined tag
// is listed here. (The numbers match the engine's own definitions.)
type DataType uint32

const (
	DTNone               DataType = 0
	DTByte               DataType = 1
	DTShort              DataType = 2
	DTUShort             DataType = 3
	DTInt                DataType = 4
	DTUInt               DataType = 5
	DTFloat              DataType = 6
	DTDouble             DataType = 7
	DTIVec2              DataType = 8
	DTIVec3              DataType = 9
	DTIVec4              DataType = 10
	DTVec2               DataType = 11
	DTVec3               DataType = 12
	DTVec4               DataType = 13
	DTMat2               DataType = 14
	DTMat3               DataType = 15
	DTMat3x4             DataType = 16
	DTMat4x3             DataType = 17
	DTMat4               DataType = 18
	DTBool               DataType = 19
	DTString             DataType = 20
	DTPath               DataType = 21
	DTFixedString        DataType = 22
	DTLSString           DataType = 23
	DTULongLong          DataType = 24
	DTScratchBuffer      DataType = 25
	DTLong               DataType = 26
	DTInt8               DataType = 27
	DTTranslatedString   DataType = 28
	DTWString            DataType = 29
	DTLSWString          DataType = 30
	DTUUID               DataType = 31
	DTInt64              DataType = 32
	DTTranslatedFSString DataType = 33

	// DTMax is the last defined tag; anything above it is unsupported.
	DTMax = DTTranslatedFSString
)

// Valid reports whether t is a defined tag.
func (t DataType) Valid() bool { return t <= DTMax }

// IsText reports whether t is one of the narrow (UTF-8) string tags.
func (t DataType) IsText() bool {
	switch t {
	case DTString, DTPath, DTFixedString, DTLSString:
		return true
	}
	return false
}

// IsWideText reports whether t is one of the UTF-16LE string tags.
func (t DataType) IsWideText() bool {
	return t == DTWString || t == DTLSWString
}

func (t DataType) String() string {
	switch t {
	case DTNone:
		return "None"
	case DTByte:
		return "Byte"
	case DTShort:
		return "Short"
	case DTUShort:
		return "UShort"
	case DTInt:
		return "Int"
	case DTUInt:
		return "UInt"
	case DTFloat:
		return "Float"
	case DTDouble:
		return "Double"
	case DTIVec2:
		return "IVec2"
	case DTIVec3:
		return "IVec3"
	case DTIVec4:
		return "IVec4"
	case DTVec2:
		return "Vec2"
	case DTVec3:
		return "Vec3"
	case DTVec4:
		return "Vec4"
	case DTMat2:
		return "Mat2"
	case DTMat3:
		return "Mat3"
	case DTMat3x4:
		return "Mat3x4"
	case DTMat4x3:
		return "Mat4x3"
	case DTMat4:
		return "Mat4"
	case DTBool:
		return "Bool"
	case DTString:
		return "String"
	case DTPath:
		return "Path"
	case DTFixedString:
		return "FixedString"
	case DTLSString:
		return "LSString"
	case DTULongLong:
		return "ULongLong"
	case DTScratchBuffer:
		return "ScratchBuffer"
	case DTLong:
		return "Long"
	case DTInt8:
		return "Int8"
	case DTTranslatedString:
		return "TranslatedString"
	case DTWString:
		return "WString"
	case DTLSWString:
		return "LSWString"
	case DTUUID:
		return "UUID"
	case DTInt64:
		return "Int64"
	case DTTranslatedFSString:
		return "TranslatedFSString"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint32(t))
	}
}
