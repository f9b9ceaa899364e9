package schema

import (
	"fmt"

	"github.com/lanefield/bondwire/endian"
	"github.com/lanefield/bondwire/errs"
	"github.com/lanefield/bondwire/format"
)

// Parse decodes the compact schema wire form into an ordered field list.
//
// Every fixed-size element is bounds-checked before it is consumed, so a
// truncated buffer fails cleanly with a typed error instead of reading past
// the end. Bytes remaining after the last declared field are ignored.
//
// Parameters:
//   - data: Compact schema bytes
//
// Returns:
//   - []FieldDef: Parsed fields in declaration order
//   - error: ErrSchemaTooShort if the field count header is missing,
//     ErrFieldTruncated if any field entry is incomplete
func Parse(data []byte) ([]FieldDef, error) {
	engine := endian.GetLittleEndianEngine()

	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d bytes, need 2 for field count", errs.ErrSchemaTooShort, len(data))
	}

	count := int(engine.Uint16(data[0:2]))
	off := 2

	fields := make([]FieldDef, 0, count)
	for i := 0; i < count; i++ {
		if len(data)-off < 1 {
			return nil, fmt.Errorf("%w: field %d: missing name length", errs.ErrFieldTruncated, i)
		}
		nameLen := int(data[off])
		off++

		// name bytes + type tag + field id must all be present
		if len(data)-off < nameLen+1+2 {
			return nil, fmt.Errorf("%w: field %d: need %d bytes, have %d",
				errs.ErrFieldTruncated, i, nameLen+1+2, len(data)-off)
		}

		name := string(data[off : off+nameLen])
		off += nameLen

		typeTag := format.DataType(data[off])
		off++

		id := engine.Uint16(data[off : off+2])
		off += 2

		fields = append(fields, FieldDef{Name: name, Type: typeTag, ID: id})
	}

	return fields, nil
}

// AppendCompact appends the compact wire form of fields to dst and returns
// the extended slice. It is the inverse of Parse and exists mainly so tests
// and callers can build schema buffers without hand-packing bytes.
//
// Returns an error if there are more than 65535 fields or any field name
// exceeds 255 bytes.
func AppendCompact(dst []byte, fields []FieldDef) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	if len(fields) > 0xFFFF {
		return nil, fmt.Errorf("%w: %d fields exceed u16 field count", errs.ErrValueTooLong, len(fields))
	}

	dst = engine.AppendUint16(dst, uint16(len(fields))) //nolint:gosec
	for _, f := range fields {
		if len(f.Name) > 0xFF {
			return nil, fmt.Errorf("%w: field name %q is %d bytes", errs.ErrNameTooLong, f.Name, len(f.Name))
		}
		dst = append(dst, byte(len(f.Name)))
		dst = append(dst, f.Name...)
		dst = append(dst, byte(f.Type))
		dst = engine.AppendUint16(dst, f.ID)
	}

	return dst, nil
}
