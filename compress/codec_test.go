package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lanefield/bondwire/format"
)

// compressibleData produces data with enough repetition to shrink under every
// codec.
func compressibleData(size int) []byte {
	pattern := []byte("the quick brown fox jumps over the lazy dog ")
	data := make([]byte, 0, size)
	for len(data) < size {
		data = append(data, pattern...)
	}

	return data[:size]
}

// randomData is effectively incompressible.
func randomData(size int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, size)
	rng.Read(data)

	return data
}

func TestCreateCodec(t *testing.T) {
	tests := []struct {
		name            string
		compressionType format.CompressionType
		wantErr         bool
	}{
		{name: "none", compressionType: format.CompressionNone},
		{name: "zstd", compressionType: format.CompressionZstd},
		{name: "s2", compressionType: format.CompressionS2},
		{name: "lz4", compressionType: format.CompressionLZ4},
		{name: "invalid", compressionType: format.CompressionType(0xEE), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := CreateCodec(tt.compressionType, "payload")
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, codec)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0xEE))
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"small":        []byte("hello world"),
		"compressible": compressibleData(256 * 1024),
	}

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, restored))
			})
		}
	}
}

func TestCodec_IncompressibleRoundTrip(t *testing.T) {
	data := randomData(64*1024, 1)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Truef(t, bytes.Equal(data, restored), "%s round trip", ct)
	}
}

func TestLZ4Compressor_IncompressibleExpands(t *testing.T) {
	// Incompressible input still yields a valid block, slightly larger than
	// the input, that decodes back to the original bytes.
	codec := NewLZ4Compressor()
	data := randomData(64*1024, 1)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Greater(t, len(compressed), len(data))

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, restored))
}

func TestCodec_CompressibleDataShrinks(t *testing.T) {
	data := compressibleData(256 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Lessf(t, len(compressed), len(data), "%s should shrink repetitive data", ct)
	}
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte{1, 2, 3}

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, &data[0], &compressed[0], "no-op must not copy")
}

func TestLZ4Compressor_DecompressCorruptInput(t *testing.T) {
	codec := NewLZ4Compressor()

	_, err := codec.Decompress([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	require.Error(t, err)
}
