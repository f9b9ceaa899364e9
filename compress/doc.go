// Package compress provides compression codecs for encoded batch payloads.
//
// The central blob payloads produced by the blob package are highly
// repetitive (schema descriptors share long zero runs, records share field
// layouts), so they compress well with any of the supported algorithms.
// Callers pick a codec by format.CompressionType through GetCodec, or use
// ChunkedLZ4 when the downstream collector expects the 64 KiB chunked LZ4
// framing.
package compress
