package blob

import (
	"fmt"
	"math"

	"github.com/lanefield/bondwire/encoding"
	"github.com/lanefield/bondwire/endian"
	"github.com/lanefield/bondwire/errs"
	"github.com/lanefield/bondwire/format"
	"github.com/lanefield/bondwire/schema"
)

// RowEncoder encodes packed row buffers into record blobs against a fixed
// schema handle.
//
// The encoder reuses one pooled working buffer across Encode calls, making it
// the cheap path for encoding many rows of the same schema. Each call returns
// a fresh caller-owned blob; the working buffer never escapes.
//
// Note: The RowEncoder is NOT thread-safe. For concurrent encoding against a
// shared schema, use the stateless EncodeRow function from each goroutine.
type RowEncoder struct {
	schema *schema.Schema
	writer *encoding.Writer
}

// NewRowEncoder creates a RowEncoder bound to the given schema handle.
//
// Returns:
//   - *RowEncoder: New encoder instance
//   - error: ErrInvalidSchema if the handle is nil or carries no struct definition
func NewRowEncoder(s *schema.Schema) (*RowEncoder, error) {
	if !s.Valid() {
		return nil, errs.ErrInvalidSchema
	}

	return &RowEncoder{
		schema: s,
		writer: encoding.NewWriter(endian.GetLittleEndianEngine()),
	}, nil
}

// Encode consumes one packed row buffer and returns its record blob.
//
// The row buffer is read in schema field order according to each field's
// width rule; see EncodeRow for the per-type layout. On any failure no
// partial record is returned and the encoder remains usable for further rows.
//
// Parameters:
//   - row: Packed field values in schema order (caller-owned, not retained)
//
// Returns:
//   - []byte: Caller-owned record blob
//   - error: ErrRowTooShort, ErrUnsupportedType, or ErrEncoderFinished
func (e *RowEncoder) Encode(row []byte) ([]byte, error) {
	if e.writer == nil {
		return nil, errs.ErrEncoderFinished
	}

	e.writer.Reset()
	if err := encodeRowInto(e.writer, e.schema, row); err != nil {
		return nil, err
	}

	return e.writer.CopyBytes(), nil
}

// Schema returns the schema handle this encoder is bound to.
func (e *RowEncoder) Schema() *schema.Schema {
	return e.schema
}

// Reset releases the encoder's working buffer back to the pool.
//
// After calling Reset, the encoder must not be used again.
func (e *RowEncoder) Reset() {
	if e.writer != nil {
		e.writer.Release()
		e.writer = nil
	}
}

// EncodeRow encodes one packed row buffer into a record blob.
//
// The row buffer is consumed in schema field order, one segment per field:
//
//	Bool     -> 1 byte (nonzero is true)
//	Double   -> 8 bytes LE IEEE-754
//	Float    -> 4 bytes LE IEEE-754
//	Int32    -> 4 bytes LE signed
//	Int64    -> 8 bytes LE signed
//	String   -> u32 LE byte length N, then N UTF-8 bytes
//	WString  -> u16 LE code-unit count M, then 2*M UTF-16LE bytes
//
// Bytes remaining after the last field are ignored. A shortfall at any
// boundary aborts the call with ErrRowTooShort and no output; a field whose
// type tag is outside the set above fails with ErrUnsupportedType.
//
// EncodeRow never mutates the schema handle and keeps no state between
// calls, so concurrent calls against one shared handle are safe and produce
// independent blobs. Identical inputs produce byte-identical output.
//
// Parameters:
//   - s: Compiled schema handle driving field order and widths
//   - row: Packed field values (caller-owned, read-only, not retained)
//
// Returns:
//   - []byte: Caller-owned record blob
//   - error: ErrInvalidSchema, ErrRowTooShort, or ErrUnsupportedType
func EncodeRow(s *schema.Schema, row []byte) ([]byte, error) {
	if !s.Valid() {
		return nil, errs.ErrInvalidSchema
	}

	w := encoding.NewWriter(endian.GetLittleEndianEngine())
	defer w.Release()

	if err := encodeRowInto(w, s, row); err != nil {
		return nil, err
	}

	return w.CopyBytes(), nil
}

// encodeRowInto walks the schema's field list and transcodes one row buffer
// into the writer. The writer is left with a complete record on success; on
// error its contents are undefined and the caller must discard them.
func encodeRowInto(w *encoding.Writer, s *schema.Schema, row []byte) error {
	engine := endian.GetLittleEndianEngine()
	remain := row

	w.WriteStructBegin()
	for i, f := range s.Fields() {
		switch f.Type {
		case format.TypeBool:
			seg, rest, err := take(remain, 1, i, f)
			if err != nil {
				return err
			}
			w.WriteBool(seg[0] != 0)
			remain = rest

		case format.TypeDouble:
			seg, rest, err := take(remain, 8, i, f)
			if err != nil {
				return err
			}
			w.WriteFloat64(math.Float64frombits(engine.Uint64(seg)))
			remain = rest

		case format.TypeFloat:
			seg, rest, err := take(remain, 4, i, f)
			if err != nil {
				return err
			}
			w.WriteFloat32(math.Float32frombits(engine.Uint32(seg)))
			remain = rest

		case format.TypeInt32:
			seg, rest, err := take(remain, 4, i, f)
			if err != nil {
				return err
			}
			w.WriteInt32(int32(engine.Uint32(seg))) //nolint:gosec
			remain = rest

		case format.TypeInt64:
			seg, rest, err := take(remain, 8, i, f)
			if err != nil {
				return err
			}
			w.WriteInt64(int64(engine.Uint64(seg))) //nolint:gosec
			remain = rest

		case format.TypeString:
			seg, rest, err := take(remain, 4, i, f)
			if err != nil {
				return err
			}
			n := int(engine.Uint32(seg))
			data, rest, err := take(rest, n, i, f)
			if err != nil {
				return err
			}
			if err := w.WriteStringBytes(data); err != nil {
				return err
			}
			remain = rest

		case format.TypeWString:
			seg, rest, err := take(remain, 2, i, f)
			if err != nil {
				return err
			}
			units := engine.Uint16(seg)
			data, rest, err := take(rest, int(units)*2, i, f)
			if err != nil {
				return err
			}
			if err := w.WriteWStringUnits(uint32(units), data); err != nil {
				return err
			}
			remain = rest

		default:
			return fmt.Errorf("%w: field %d (%q) has type tag %d",
				errs.ErrUnsupportedType, i, f.Name, uint8(f.Type))
		}
	}

	return w.WriteStructEnd()
}

// take splits the next n bytes off remain, failing with ErrRowTooShort when
// fewer bytes are available.
func take(remain []byte, n int, fieldIdx int, f schema.FieldDef) ([]byte, []byte, error) {
	if len(remain) < n {
		return nil, nil, fmt.Errorf("%w: field %d (%q, %s): need %d bytes, have %d",
			errs.ErrRowTooShort, fieldIdx, f.Name, f.Type, n, len(remain))
	}

	return remain[:n], remain[n:], nil
}
