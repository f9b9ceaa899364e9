// Package encoding implements the Bond Simple Protocol writer used by the
// schema and row encoders.
//
// Simple Protocol is an untagged binary protocol: values are written in
// declaration order with no per-field framing, so the emitted bytes are only
// decodable alongside the matching schema descriptor. Struct begin/end
// markers carry no wire representation; the Writer still tracks them to catch
// unbalanced framing at encode time. Marshal framing (the 'SP' magic plus a
// protocol version) prefixes schema descriptor blobs and batched records, but
// never standalone record blobs.
//
// All multi-byte values are little-endian on the wire.
package encoding
