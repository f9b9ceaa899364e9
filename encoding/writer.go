package encoding

import (
	"fmt"
	"math"

	"github.com/lanefield/bondwire/endian"
	"github.com/lanefield/bondwire/errs"
	"github.com/lanefield/bondwire/internal/pool"
)

// Simple Protocol marshal framing.
const (
	// MagicNumber is the two-byte 'SP' marker opening marshaled payloads.
	MagicNumber uint16 = 0x5053 // little-endian on the wire: 0x53 'S', 0x50 'P'

	// ProtocolVersion is the Simple Protocol version emitted by this writer.
	ProtocolVersion uint16 = 1

	// VersionHeaderSize is the byte length of the magic + version framing.
	VersionHeaderSize = 4
)

// Writer encodes values into the Bond Simple Protocol wire format.
//
// The writer accumulates bytes in a pooled buffer. Callers retrieve the
// result with Bytes (borrowed, valid until Reset/Release) or CopyBytes
// (caller-owned), then call Release to return the buffer to the pool.
//
// Note: The Writer is NOT thread-safe. Each writer instance should be used by
// a single goroutine at a time.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	depth  int
}

// NewWriter creates a Simple Protocol writer using the specified endian
// engine. The wire format is little-endian; the engine parameter exists so
// tests can exercise byte-swapped output.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		engine: engine,
		buf:    pool.GetRecordBuffer(),
	}
}

// WriteVersion emits the marshal framing: the 'SP' magic followed by the
// protocol version. Schema descriptor blobs and batched records carry this
// header; standalone record blobs do not.
func (w *Writer) WriteVersion() {
	w.buf.B = w.engine.AppendUint16(w.buf.B, MagicNumber)
	w.buf.B = w.engine.AppendUint16(w.buf.B, ProtocolVersion)
}

// WriteStructBegin opens a struct scope. Simple Protocol emits no bytes for
// struct framing; the writer only tracks nesting depth so mismatched
// begin/end pairs surface as errors instead of silent corruption.
func (w *Writer) WriteStructBegin() {
	w.depth++
}

// WriteStructEnd closes the current struct scope.
//
// Returns:
//   - error: ErrUnbalancedStruct if no struct scope is open
func (w *Writer) WriteStructEnd() error {
	if w.depth == 0 {
		return fmt.Errorf("%w: struct end without begin", errs.ErrUnbalancedStruct)
	}
	w.depth--

	return nil
}

// Depth returns the current struct nesting depth.
func (w *Writer) Depth() int {
	return w.depth
}

// WriteBool writes a boolean as a single byte (1 for true, 0 for false).
func (w *Writer) WriteBool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	w.buf.B = append(w.buf.B, b)
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.B = append(w.buf.B, v)
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

// WriteInt8 writes a signed 8-bit integer.
func (w *Writer) WriteInt8(v int8) {
	w.buf.B = append(w.buf.B, byte(v))
}

// WriteInt16 writes a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(v)) //nolint:gosec
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
}

// WriteInt64 writes a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, uint64(v)) //nolint:gosec
}

// WriteFloat32 writes an IEEE-754 single-precision float.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, math.Float32bits(v))
}

// WriteFloat64 writes an IEEE-754 double-precision float.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteString writes a UTF-8 string as a uint32 byte-length prefix followed
// by the raw bytes.
//
// Returns:
//   - error: ErrValueTooLong if the string exceeds the uint32 prefix capacity
func (w *Writer) WriteString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("%w: string length %d", errs.ErrValueTooLong, len(s))
	}

	w.buf.Grow(4 + len(s))
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(len(s))) //nolint:gosec
	w.buf.B = append(w.buf.B, s...)

	return nil
}

// WriteStringBytes writes pre-encoded UTF-8 bytes as a uint32 byte-length
// prefix followed by the raw bytes. The bytes are not validated; the wire
// format carries no semantic guarantees about string content.
func (w *Writer) WriteStringBytes(b []byte) error {
	if uint64(len(b)) > math.MaxUint32 {
		return fmt.Errorf("%w: string length %d", errs.ErrValueTooLong, len(b))
	}

	w.buf.Grow(4 + len(b))
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(len(b))) //nolint:gosec
	w.buf.B = append(w.buf.B, b...)

	return nil
}

// WriteWString writes a UTF-8 string as a UTF-16 value: a uint32 code-unit
// count prefix followed by the UTF-16LE bytes.
func (w *Writer) WriteWString(s string) error {
	w.buf.Grow(4 + len(s)*2)

	// Reserve the prefix, encode, then patch the count in place.
	prefixAt := len(w.buf.B)
	w.buf.B = w.engine.AppendUint32(w.buf.B, 0)

	var count int
	w.buf.B, count = AppendUTF16LE(w.buf.B, s)
	if uint64(count) > math.MaxUint32 { //nolint:gosec
		return fmt.Errorf("%w: wstring length %d code units", errs.ErrValueTooLong, count)
	}
	w.engine.PutUint32(w.buf.B[prefixAt:prefixAt+4], uint32(count)) //nolint:gosec

	return nil
}

// WriteWStringUnits writes an already UTF-16LE-encoded value: a uint32
// code-unit count prefix followed by the raw bytes. len(utf16le) must be
// exactly 2*count.
func (w *Writer) WriteWStringUnits(count uint32, utf16le []byte) error {
	if len(utf16le) != int(count)*2 {
		return fmt.Errorf("%w: %d code units but %d bytes", errs.ErrValueTooLong, count, len(utf16le))
	}

	w.buf.Grow(4 + len(utf16le))
	w.buf.B = w.engine.AppendUint32(w.buf.B, count)
	w.buf.B = append(w.buf.B, utf16le...)

	return nil
}

// WriteRaw appends pre-encoded bytes verbatim.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.MustWrite(b)
}

// WriteZeros appends n zero bytes. The schema descriptor layout contains
// fixed runs of padding between sections.
func (w *Writer) WriteZeros(n int) {
	w.buf.Grow(n)
	for i := 0; i < n; i++ {
		w.buf.B = append(w.buf.B, 0)
	}
}

// Bytes returns the accumulated bytes.
//
// The returned slice shares the writer's pooled buffer and is only valid
// until Reset or Release. Use CopyBytes for a caller-owned copy.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// CopyBytes returns a newly allocated, caller-owned copy of the accumulated
// bytes.
func (w *Writer) CopyBytes() []byte {
	return w.buf.CopyBytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the accumulated bytes and struct depth, keeping the buffer
// for reuse by the same writer.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.depth = 0
}

// Release returns the writer's buffer to the pool.
//
// After calling Release, the writer must not be used again.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutRecordBuffer(w.buf)
		w.buf = nil
	}
	w.depth = 0
}
