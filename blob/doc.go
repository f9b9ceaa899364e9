// Package blob encodes packed row buffers into Simple Protocol record blobs
// and assembles records and schema descriptors into batch payloads.
//
// The two encoders map to the two halves of the wire contract:
//
//   - RowEncoder / EncodeRow consume a packed row buffer in schema field
//     order and emit one record blob per row. Record blobs carry no framing
//     header; they are decodable only alongside the matching schema blob.
//   - BatchEncoder frames compiled schemas and encoded records into the
//     central blob payload consumed by the ingestion pipeline, including
//     per-entry terminators, schema identity (xxHash64 id + MD5 digest), and
//     UTF-16LE metadata.
//
// A Schema handle is immutable, so any number of goroutines may call
// EncodeRow against the same handle concurrently. The encoder types
// themselves are single-goroutine.
package blob
