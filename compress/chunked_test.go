package compress

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestChunkedLZ4_RoundTripSingleChunk(t *testing.T) {
	codec := NewChunkedLZ4()
	data := compressibleData(1024)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, restored))

	// One chunk: its length prefix covers the rest of the payload.
	chunkLen := binary.LittleEndian.Uint32(compressed[:4])
	require.Equal(t, len(compressed)-4, int(chunkLen))
}

func TestChunkedLZ4_RoundTripMultiChunk(t *testing.T) {
	codec := NewChunkedLZ4()

	// Three full chunks plus a partial tail.
	data := compressibleData(3*ChunkSize + 1000)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, restored))

	// Walk the framing: each chunk is a length-prefixed LZ4 block that
	// expands to at most ChunkSize bytes.
	chunks := 0
	buf := make([]byte, ChunkSize)
	for off := 0; off < len(compressed); {
		require.LessOrEqual(t, off+4, len(compressed))
		n := int(binary.LittleEndian.Uint32(compressed[off : off+4]))
		off += 4
		require.LessOrEqual(t, off+n, len(compressed))

		decoded, err := lz4.UncompressBlock(compressed[off:off+n], buf)
		require.NoError(t, err)
		require.LessOrEqual(t, decoded, ChunkSize)

		off += n
		chunks++
	}
	require.Equal(t, 4, chunks)
}

func TestChunkedLZ4_IncompressibleInput(t *testing.T) {
	codec := NewChunkedLZ4()

	// Random chunks expand rather than shrink; the framing must stay
	// decodable regardless.
	data := randomData(2*ChunkSize+333, 42)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Greater(t, len(compressed), len(data), "incompressible chunks expand")

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, restored))
}

func TestChunkedLZ4_MixedChunks(t *testing.T) {
	codec := NewChunkedLZ4()

	// First chunk compressible, second incompressible.
	data := append(compressibleData(ChunkSize), randomData(ChunkSize, 7)...)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, restored))
}

func TestChunkedLZ4_SmallLiteralBlock(t *testing.T) {
	codec := NewChunkedLZ4()

	// Tiny chunks still round-trip, whatever block form the compressor emits.
	for _, size := range []int{1, 14, 15, 16, 100} {
		data := randomData(size, int64(size))

		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Truef(t, bytes.Equal(data, restored), "size %d", size)
	}
}

func TestChunkedLZ4_EmptyInput(t *testing.T) {
	codec := NewChunkedLZ4()

	compressed, err := codec.Compress(nil)
	require.NoError(t, err)
	require.Empty(t, compressed)

	restored, err := codec.Decompress(nil)
	require.NoError(t, err)
	require.Empty(t, restored)
}

func TestChunkedLZ4_TruncatedHeader(t *testing.T) {
	codec := NewChunkedLZ4()

	compressed, err := codec.Compress(compressibleData(100))
	require.NoError(t, err)

	_, err = codec.Decompress(compressed[:2])
	require.ErrorContains(t, err, "truncated chunk header")
}

func TestChunkedLZ4_TruncatedChunkBody(t *testing.T) {
	codec := NewChunkedLZ4()

	compressed, err := codec.Compress(compressibleData(100))
	require.NoError(t, err)
	require.Greater(t, len(compressed), 6)

	_, err = codec.Decompress(compressed[:len(compressed)-1])
	require.Error(t, err)
}

func TestLiteralBlockHelpers(t *testing.T) {
	tests := []struct {
		n        int
		overhead int
	}{
		{n: 0, overhead: 1},
		{n: 14, overhead: 1},
		{n: 15, overhead: 2},
		{n: 269, overhead: 2},
		{n: 270, overhead: 3},
	}

	for _, tt := range tests {
		require.Equalf(t, tt.overhead, literalBlockOverhead(tt.n), "n=%d", tt.n)
	}

	// A literal-only block must decode back to its source.
	src := []byte("0123456789abcdefghij")
	block := appendLiteralBlock(nil, src)
	require.Len(t, block, len(src)+literalBlockOverhead(len(src)))

	buf := make([]byte, len(src))
	n, err := lz4.UncompressBlock(block, buf)
	require.NoError(t, err)
	require.Equal(t, src, buf[:n])
}
