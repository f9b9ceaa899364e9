package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/lanefield/bondwire/endian"
)

// ChunkSize is the uncompressed chunk size of the chunked LZ4 framing.
const ChunkSize = 64 * 1024

// ChunkedLZ4 implements the chunked LZ4 framing expected by the ingestion
// collector: the input is split into 64 KiB chunks and each chunk is
// LZ4 block-compressed and prefixed with a 4-byte little-endian length:
//
//	|<--- Chunk 1 --->|<--- Chunk 2 --->| ... |<--- Chunk N --->|
//	+-----+-----------+-----+-----------+     +-----+-----------+
//	| len | lz4 block | len | lz4 block | ... | len | lz4 block |
//	+-----+-----------+-----+-----------+     +-----+-----------+
//
// The per-chunk framing lets the collector decompress incrementally: read 4
// bytes, decompress that many, repeat. This is a convention of the transport,
// not part of LZ4 itself.
type ChunkedLZ4 struct{}

var _ Codec = (*ChunkedLZ4)(nil)

// NewChunkedLZ4 creates a new chunked LZ4 codec.
func NewChunkedLZ4() ChunkedLZ4 {
	return ChunkedLZ4{}
}

// chunkScratchPool pools per-chunk compression scratch buffers.
var chunkScratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, lz4.CompressBlockBound(ChunkSize))
		return &buf
	},
}

// Compress compresses the input in 64 KiB chunks, each prefixed with its
// compressed length. Empty input yields nil (zero chunks).
func (c ChunkedLZ4) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	engine := endian.GetLittleEndianEngine()

	numChunks := (len(data) + ChunkSize - 1) / ChunkSize
	out := make([]byte, 0, numChunks*4+lz4.CompressBlockBound(min(len(data), ChunkSize)))

	scratch, _ := chunkScratchPool.Get().(*[]byte)
	defer chunkScratchPool.Put(scratch)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	for offset := 0; offset < len(data); offset += ChunkSize {
		end := min(offset+ChunkSize, len(data))
		chunk := data[offset:end]

		n, err := lc.CompressBlock(chunk, *scratch)
		if err != nil {
			return nil, err
		}

		if n > 0 {
			out = engine.AppendUint32(out, uint32(n)) //nolint:gosec
			out = append(out, (*scratch)[:n]...)

			continue
		}

		// A zero return means no compressed block was produced. The framing
		// requires a decodable block per chunk, so emit a literal-only one.
		litLen := len(chunk) + literalBlockOverhead(len(chunk))
		out = engine.AppendUint32(out, uint32(litLen)) //nolint:gosec
		out = appendLiteralBlock(out, chunk)
	}

	return out, nil
}

// Decompress reverses Compress: reads a 4-byte length, decompresses that many
// bytes as one LZ4 block, and repeats until the input is exhausted.
func (c ChunkedLZ4) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	engine := endian.GetLittleEndianEngine()

	out := make([]byte, 0, len(data)*3)
	buf := make([]byte, ChunkSize)

	off := 0
	for off < len(data) {
		if len(data)-off < 4 {
			return nil, fmt.Errorf("chunked lz4: truncated chunk header at offset %d", off)
		}
		chunkLen := int(engine.Uint32(data[off : off+4]))
		off += 4

		if len(data)-off < chunkLen {
			return nil, fmt.Errorf("chunked lz4: chunk declares %d bytes, %d remain", chunkLen, len(data)-off)
		}

		n, err := lz4.UncompressBlock(data[off:off+chunkLen], buf)
		if err != nil {
			return nil, fmt.Errorf("chunked lz4: %w", err)
		}
		out = append(out, buf[:n]...)
		off += chunkLen
	}

	return out, nil
}

// literalBlockOverhead returns the token/length byte count of a literal-only
// LZ4 block holding n literal bytes.
func literalBlockOverhead(n int) int {
	if n < 15 {
		return 1
	}

	return 2 + (n-15)/255
}

// appendLiteralBlock appends a valid LZ4 block consisting of a single
// literal-only sequence. Used when block compression produces no output.
func appendLiteralBlock(dst, src []byte) []byte {
	n := len(src)
	if n < 15 {
		dst = append(dst, byte(n<<4))
		return append(dst, src...)
	}

	dst = append(dst, 0xF0)
	rem := n - 15
	for rem >= 255 {
		dst = append(dst, 255)
		rem -= 255
	}
	dst = append(dst, byte(rem))

	return append(dst, src...)
}
