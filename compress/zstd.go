package compress

// ZstdCompressor provides Zstandard compression for batch payloads.
//
// Zstd trades compression speed for ratio, which suits batches that are
// uploaded over constrained links or retained for replay. Two backends are
// available behind build tags: the pure-Go klauspost/compress implementation
// (default) and the cgo gozstd binding (build tag "gozstd") for callers that
// already link libzstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
