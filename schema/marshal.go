package schema

import (
	"github.com/lanefield/bondwire/encoding"
	"github.com/lanefield/bondwire/endian"
	"github.com/lanefield/bondwire/format"
)

// Descriptor layout constants. The serialized form is a Bond SchemaDef
// marshaled with Simple Protocol; the fixed runs of zeros reproduce the
// defaults block and alignment padding the reference decoder expects.
const (
	descDefaultsSize    = 8 + 8 + 8 + 4 + 4 + 1 // default_uint, default_int, default_double, default_string, default_wstring, default_nothing
	descFieldPadding    = 8                     // between consecutive field definitions
	descStructPadding   = 8                     // between the field list and the root typedef
	descTrailingPadding = 9                     // after the root typedef
)

// marshalDescriptor serializes a struct descriptor to the Simple Protocol
// schema blob form. Deterministic: the same metadata and field list always
// produce identical bytes.
func marshalDescriptor(structName, qualifiedName string, fields []FieldDef) ([]byte, error) {
	w := encoding.NewWriter(endian.GetLittleEndianEngine())
	defer w.Release()

	w.WriteVersion()
	w.WriteUint32(1) // one struct definition

	// Struct metadata: name, qualified name, empty attribute map, Optional
	// modifier, zeroed default-value block.
	if err := w.WriteString(structName); err != nil {
		return nil, err
	}
	if err := w.WriteString(qualifiedName); err != nil {
		return nil, err
	}
	w.WriteUint32(0) // attributes
	w.WriteUint8(0)  // modifier: Optional
	w.WriteZeros(descDefaultsSize)

	w.WriteUint32(0) // base def: none
	w.WriteZeros(3)

	w.WriteUint32(uint32(len(fields))) //nolint:gosec // compact form caps fields at u16
	for i, f := range fields {
		if err := marshalField(w, f); err != nil {
			return nil, err
		}
		if i != len(fields)-1 {
			w.WriteZeros(descFieldPadding)
		}
	}
	w.WriteZeros(descStructPadding)

	// Root typedef: struct type referencing struct index 0.
	w.WriteUint8(uint8(format.TypeStruct))
	w.WriteUint16(0) // struct index
	w.WriteUint8(0)  // element type
	w.WriteUint8(0)  // key type
	w.WriteUint8(0)  // bonded: false
	w.WriteZeros(descTrailingPadding)

	return w.CopyBytes(), nil
}

// marshalField serializes one FieldDef: metadata (name, empty qualified
// name, attributes, modifier, defaults), then the field id and typedef.
func marshalField(w *encoding.Writer, f FieldDef) error {
	if err := w.WriteString(f.Name); err != nil {
		return err
	}
	if err := w.WriteString(""); err != nil {
		return err
	}
	w.WriteUint32(0) // attributes
	w.WriteUint8(0)  // modifier: Optional
	w.WriteZeros(descDefaultsSize)
	w.WriteZeros(3)

	w.WriteUint16(f.ID)
	w.WriteUint8(uint8(f.Type))
	w.WriteUint16(0) // struct index: unused for scalar types
	w.WriteUint8(0)  // element type
	w.WriteUint8(0)  // key type
	w.WriteUint8(0)  // bonded: false
	w.WriteUint8(0)  // default value present: false

	return nil
}
