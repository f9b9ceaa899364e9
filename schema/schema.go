// Package schema compiles compact schema descriptions into immutable schema
// handles and serialized Bond schema descriptor blobs.
//
// The input is a compact, self-describing field list:
//
//	u16 LE field_count
//	repeat field_count times:
//	  u8  name_len
//	  u8[name_len] name (UTF-8)
//	  u8  type_tag
//	  u16 LE field_id
//
// Compile parses that buffer, wraps the field list in a struct descriptor
// (name, qualified name, optional modifier) and serializes the descriptor
// using Simple Protocol marshal framing. The resulting Schema handle is
// immutable and safe for concurrent use by any number of row encoders.
package schema

import (
	"fmt"

	"github.com/lanefield/bondwire/format"
	"github.com/lanefield/bondwire/internal/hash"
	"github.com/lanefield/bondwire/internal/options"
)

// Default struct metadata embedded in compiled descriptors. These match the
// container naming expected by the downstream ingestion decoder.
const (
	DefaultStructName = "MdsContainer"
	DefaultNamespace  = "testNamespace"
)

// FieldDef describes a single field: its name, wire type tag, and
// protocol-level numeric id. The id is distinct from the field's position in
// the schema and is preserved verbatim in the serialized descriptor.
type FieldDef struct {
	Name string
	Type format.DataType
	ID   uint16
}

// Schema is a compiled, immutable schema handle.
//
// A Schema owns an ordered field list plus struct-level metadata, along with
// the serialized descriptor blob produced at compile time. It carries no
// mutable state, so a single handle may drive arbitrarily many concurrent row
// encodes. The zero value is not a valid schema; use Compile or New.
type Schema struct {
	structName    string
	qualifiedName string
	fields        []FieldDef
	encoded       []byte
	id            uint64
	structs       int
}

// Config holds schema compilation settings, applied via functional options.
type Config struct {
	structName string
	namespace  string
}

// Option is a functional option for schema compilation.
type Option = options.Option[*Config]

// WithStructName overrides the struct name embedded in the descriptor.
func WithStructName(name string) Option {
	return options.New(func(c *Config) error {
		if name == "" {
			return fmt.Errorf("struct name must not be empty")
		}
		c.structName = name

		return nil
	})
}

// WithNamespace overrides the namespace used to build the descriptor's
// qualified struct name.
func WithNamespace(namespace string) Option {
	return options.New(func(c *Config) error {
		if namespace == "" {
			return fmt.Errorf("namespace must not be empty")
		}
		c.namespace = namespace

		return nil
	})
}

// Compile parses a compact schema description and returns the immutable
// Schema handle together with a caller-owned copy of the serialized
// descriptor blob.
//
// The handle drives subsequent row encodes; the blob is what gets transmitted
// alongside encoded records. Field order and field ids from the input are
// preserved verbatim in both. Compile performs no I/O and is deterministic:
// identical input yields byte-identical blobs.
//
// Parameters:
//   - raw: Compact schema bytes (see package documentation for the layout)
//   - opts: Optional struct metadata overrides (WithStructName, WithNamespace)
//
// Returns:
//   - *Schema: Immutable schema handle
//   - []byte: Caller-owned serialized descriptor blob
//   - error: ErrSchemaTooShort or ErrFieldTruncated on malformed input
func Compile(raw []byte, opts ...Option) (*Schema, []byte, error) {
	cfg := &Config{
		structName: DefaultStructName,
		namespace:  DefaultNamespace,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, nil, err
	}

	fields, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	s, err := New(cfg.structName, cfg.namespace, fields)
	if err != nil {
		return nil, nil, err
	}

	blob := make([]byte, len(s.encoded))
	copy(blob, s.encoded)

	return s, blob, nil
}

// New builds a Schema directly from an already-parsed field list.
//
// Use this when field definitions come from application code rather than the
// compact wire form. The field slice is copied; the caller may reuse it.
func New(structName, namespace string, fields []FieldDef) (*Schema, error) {
	s := &Schema{
		structName:    structName,
		qualifiedName: namespace + "." + structName,
		fields:        append([]FieldDef(nil), fields...),
		structs:       1,
	}

	encoded, err := marshalDescriptor(s.structName, s.qualifiedName, s.fields)
	if err != nil {
		return nil, err
	}
	s.encoded = encoded
	s.id = hash.ID(encoded)

	return s, nil
}

// StructName returns the descriptor's struct name.
func (s *Schema) StructName() string {
	return s.structName
}

// QualifiedName returns the descriptor's namespace-qualified struct name.
func (s *Schema) QualifiedName() string {
	return s.qualifiedName
}

// Fields returns the ordered field list.
//
// The returned slice is the schema's internal state. Do not modify it.
func (s *Schema) Fields() []FieldDef {
	return s.fields
}

// NumFields returns the number of fields in the schema.
func (s *Schema) NumFields() int {
	return len(s.fields)
}

// Bytes returns the serialized descriptor blob.
//
// The returned slice is the schema's internal state. Do not modify it.
func (s *Schema) Bytes() []byte {
	return s.encoded
}

// ID returns the schema's 64-bit identity: the xxHash64 of the serialized
// descriptor blob. Two schemas with identical struct metadata, field order,
// names, types and ids share the same ID.
func (s *Schema) ID() uint64 {
	return s.id
}

// Valid reports whether the handle carries at least one struct definition.
// The zero value and a nil handle are invalid.
func (s *Schema) Valid() bool {
	return s != nil && s.structs > 0
}
