// Package bondwire provides a schema-driven binary row encoder for the Bond
// Simple Protocol wire format.
//
// Given a compact, self-describing schema buffer and packed row buffers,
// bondwire produces a serialized schema descriptor blob plus one serialized
// record blob per row, ready to be framed into ingestion batches and
// compressed for upload.
//
// # Core Features
//
//   - Defensive parsing of the compact schema wire form (truncation-safe)
//   - Immutable schema handles, safe for unlimited concurrent row encodes
//   - Self-contained Simple Protocol writer (no external Bond dependency)
//   - Batch framing with schema deduplication (xxHash64 identity, MD5 digests)
//   - Optional compression (None, Zstd, S2, LZ4, chunked LZ4)
//
// # Basic Usage
//
//	// Compact schema: one string field "name" with id 5.
//	schemaBytes := []byte{
//	    0x01, 0x00, // field count
//	    0x04, 'n', 'a', 'm', 'e', // name
//	    0x09,       // type tag: string
//	    0x05, 0x00, // field id
//	}
//	handle, schemaBlob, err := bondwire.CompileSchema(schemaBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Row: u32 length + UTF-8 bytes, per the string width rule.
//	row := []byte{0x04, 0x00, 0x00, 0x00, 't', 'e', 's', 't'}
//	record, err := bondwire.EncodeRow(handle, row)
//
//	// Frame into an ingestion batch.
//	batch, _ := bondwire.NewBatchEncoder("namespace=demo/eventVersion=Ver1v0")
//	batch.AddRecord(handle, 5, "demoEvent", record)
//	payload, err := batch.Finish()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the schema and
// blob packages, simplifying the most common use cases. For fine-grained
// control (reusable row encoders, custom struct metadata, batch header
// overrides), use those packages directly.
package bondwire

import (
	"github.com/lanefield/bondwire/blob"
	"github.com/lanefield/bondwire/internal/hash"
	"github.com/lanefield/bondwire/schema"
)

// CompileSchema parses a compact schema description and returns an immutable
// schema handle plus a caller-owned copy of the serialized descriptor blob.
//
// The handle drives row encoding; the blob travels alongside encoded records.
// Field order and field ids are preserved verbatim. Compile performs no I/O
// and is deterministic for a given input.
//
// Parameters:
//   - raw: Compact schema bytes (u16 LE field count, then per field:
//     u8 name length, name, u8 type tag, u16 LE field id)
//   - opts: Optional metadata overrides (schema.WithStructName, schema.WithNamespace)
//
// Returns:
//   - *schema.Schema: Immutable schema handle
//   - []byte: Serialized descriptor blob
//   - error: errs.ErrSchemaTooShort or errs.ErrFieldTruncated on malformed input
func CompileSchema(raw []byte, opts ...schema.Option) (*schema.Schema, []byte, error) {
	return schema.Compile(raw, opts...)
}

// EncodeRow encodes one packed row buffer into a record blob using the given
// schema handle.
//
// Safe for concurrent use: many goroutines may encode against the same
// handle simultaneously. See blob.EncodeRow for the per-type width rules.
//
// Parameters:
//   - s: Schema handle from CompileSchema
//   - row: Packed field values in schema order
//
// Returns:
//   - []byte: Caller-owned record blob
//   - error: errs.ErrInvalidSchema, errs.ErrRowTooShort, or errs.ErrUnsupportedType
func EncodeRow(s *schema.Schema, row []byte) ([]byte, error) {
	return blob.EncodeRow(s, row)
}

// NewRowEncoder creates a reusable row encoder bound to one schema handle.
//
// Prefer this over repeated EncodeRow calls when a single goroutine encodes
// many rows of the same schema; the encoder reuses its working buffer.
//
// Parameters:
//   - s: Schema handle from CompileSchema
//
// Returns:
//   - *blob.RowEncoder: The created row encoder.
//   - error: errs.ErrInvalidSchema if the handle is invalid.
func NewRowEncoder(s *schema.Schema) (*blob.RowEncoder, error) {
	return blob.NewRowEncoder(s)
}

// NewBatchEncoder creates a batch encoder that frames schemas and records
// into the central blob ingestion payload.
//
// Parameters:
//   - metadata: Opaque routing metadata string, stored UTF-16LE in the header
//   - opts: Optional header overrides (blob.WithBatchVersion, blob.WithBatchFormat)
//
// Returns:
//   - *blob.BatchEncoder: The created batch encoder.
//   - error: An error if an option is invalid.
func NewBatchEncoder(metadata string, opts ...blob.BatchOption) (*blob.BatchEncoder, error) {
	return blob.NewBatchEncoder(metadata, opts...)
}

// SchemaID computes the 64-bit identity of a serialized schema blob.
//
// This matches schema.Schema.ID for blobs produced by CompileSchema, letting
// callers that persist schema blobs recover the id without recompiling.
func SchemaID(descriptor []byte) uint64 {
	return hash.ID(descriptor)
}
