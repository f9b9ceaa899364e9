// Package format defines the wire-level type constants shared across bondwire.
package format

type (
	// DataType is a Bond wire type tag. The numeric values are part of the
	// external wire contract and must match the Bond type enumeration exactly.
	DataType uint8

	// CompressionType selects a batch compression algorithm.
	CompressionType uint8
)

const (
	TypeStop     DataType = 0  // TypeStop marks the end of a struct in tagged protocols.
	TypeStopBase DataType = 1  // TypeStopBase marks the end of a base struct.
	TypeBool     DataType = 2  // TypeBool is a single-byte boolean.
	TypeUint8    DataType = 3  // TypeUint8 is an unsigned 8-bit integer.
	TypeUint16   DataType = 4  // TypeUint16 is an unsigned 16-bit integer.
	TypeUint32   DataType = 5  // TypeUint32 is an unsigned 32-bit integer.
	TypeUint64   DataType = 6  // TypeUint64 is an unsigned 64-bit integer.
	TypeFloat    DataType = 7  // TypeFloat is an IEEE-754 single-precision float.
	TypeDouble   DataType = 8  // TypeDouble is an IEEE-754 double-precision float.
	TypeString   DataType = 9  // TypeString is a length-prefixed UTF-8 string.
	TypeStruct   DataType = 10 // TypeStruct is a nested struct.
	TypeList     DataType = 11 // TypeList is a homogeneous list container.
	TypeSet      DataType = 12 // TypeSet is a set container.
	TypeMap      DataType = 13 // TypeMap is a key/value container.
	TypeInt8     DataType = 14 // TypeInt8 is a signed 8-bit integer.
	TypeInt16    DataType = 15 // TypeInt16 is a signed 16-bit integer.
	TypeInt32    DataType = 16 // TypeInt32 is a signed 32-bit integer.
	TypeInt64    DataType = 17 // TypeInt64 is a signed 64-bit integer.
	TypeWString  DataType = 18 // TypeWString is a length-prefixed UTF-16LE string.

	// TypeUnavailable marks a type slot that carries no wire representation.
	TypeUnavailable DataType = 127

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (t DataType) String() string {
	switch t {
	case TypeStop:
		return "Stop"
	case TypeStopBase:
		return "StopBase"
	case TypeBool:
		return "Bool"
	case TypeUint8:
		return "Uint8"
	case TypeUint16:
		return "Uint16"
	case TypeUint32:
		return "Uint32"
	case TypeUint64:
		return "Uint64"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	case TypeSet:
		return "Set"
	case TypeMap:
		return "Map"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeWString:
		return "WString"
	case TypeUnavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
