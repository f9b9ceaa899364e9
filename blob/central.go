package blob

import (
	"crypto/md5" //nolint:gosec // digest is part of the wire format, not a security boundary
	"fmt"
	"math"

	"github.com/lanefield/bondwire/encoding"
	"github.com/lanefield/bondwire/endian"
	"github.com/lanefield/bondwire/errs"
	"github.com/lanefield/bondwire/internal/options"
	"github.com/lanefield/bondwire/internal/pool"
	"github.com/lanefield/bondwire/schema"
)

// Central blob layout constants.
const (
	// DefaultBatchVersion is the payload header version.
	DefaultBatchVersion uint32 = 1

	// DefaultBatchFormat is the payload header format code.
	DefaultBatchFormat uint32 = 2

	// batchTerminator closes every schema and event entry.
	batchTerminator uint64 = 0xdeadc0dedeadc0de

	entityTypeSchema uint16 = 0
	entityTypeEvent  uint16 = 2
)

// BatchEncoder assembles compiled schemas and encoded records into the
// central blob batch payload:
//
//	u32 LE version, u32 LE format
//	u32 LE metadata byte length, metadata UTF-16LE
//	per schema: u16 LE entity type 0, u64 LE schema id, 16-byte MD5 of the
//	            schema blob, u32 LE blob length, blob, u64 LE terminator
//	per event:  u16 LE entity type 2, u64 LE schema id, u8 level,
//	            u16 LE name byte length, event name UTF-16LE,
//	            u32 LE record length (including the 4-byte Simple Protocol
//	            header), 'SP' header, record blob, u64 LE terminator
//
// Schemas are deduplicated by id: registering the same schema twice is a
// no-op, and AddRecord registers its schema automatically. Schema entries
// always precede event entries in the final payload regardless of call order.
//
// Note: The BatchEncoder is NOT thread-safe and NOT reusable. After calling
// Finish, create a new encoder for the next batch.
type BatchEncoder struct {
	engine endian.EndianEngine

	version    uint32
	blobFormat uint32
	metadata   string

	schemaBuf *pool.ByteBuffer // schema entries, in registration order
	eventBuf  *pool.ByteBuffer // event entries, in add order

	schemaIDs map[uint64]struct{}
	numEvents int
	finished  bool
}

// BatchOption is a functional option for BatchEncoder construction.
type BatchOption = options.Option[*BatchEncoder]

// WithBatchVersion overrides the payload header version.
func WithBatchVersion(version uint32) BatchOption {
	return options.NoError(func(e *BatchEncoder) {
		e.version = version
	})
}

// WithBatchFormat overrides the payload header format code.
func WithBatchFormat(formatCode uint32) BatchOption {
	return options.NoError(func(e *BatchEncoder) {
		e.blobFormat = formatCode
	})
}

// NewBatchEncoder creates a BatchEncoder with the given metadata string.
//
// The metadata is an opaque routing string for the ingestion pipeline
// (for example "namespace=ns/eventVersion=Ver1v0/tenant=T/role=R"); it is
// stored UTF-16LE in the payload header.
//
// Parameters:
//   - metadata: Routing metadata string
//   - opts: Optional header overrides (WithBatchVersion, WithBatchFormat)
//
// Returns:
//   - *BatchEncoder: New encoder instance
//   - error: Option application error
func NewBatchEncoder(metadata string, opts ...BatchOption) (*BatchEncoder, error) {
	e := &BatchEncoder{
		engine:     endian.GetLittleEndianEngine(),
		version:    DefaultBatchVersion,
		blobFormat: DefaultBatchFormat,
		metadata:   metadata,
		schemaBuf:  pool.GetRecordBuffer(),
		eventBuf:   pool.GetBatchBuffer(),
		schemaIDs:  make(map[uint64]struct{}),
	}

	if err := options.Apply(e, opts...); err != nil {
		e.release()
		return nil, err
	}

	return e, nil
}

// AddSchema registers a schema with the batch. Registering a schema that is
// already present is a no-op. AddRecord registers its schema automatically,
// so calling AddSchema directly is only needed to emit a schema with no
// events.
//
// Returns:
//   - error: ErrInvalidSchema or ErrEncoderFinished
func (e *BatchEncoder) AddSchema(s *schema.Schema) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if !s.Valid() {
		return errs.ErrInvalidSchema
	}

	if _, exists := e.schemaIDs[s.ID()]; exists {
		return nil
	}
	e.schemaIDs[s.ID()] = struct{}{}

	blob := s.Bytes()
	digest := md5.Sum(blob) //nolint:gosec

	buf := e.schemaBuf
	buf.B = e.engine.AppendUint16(buf.B, entityTypeSchema)
	buf.B = e.engine.AppendUint64(buf.B, s.ID())
	buf.MustWrite(digest[:])
	buf.B = e.engine.AppendUint32(buf.B, uint32(len(blob))) //nolint:gosec
	buf.MustWrite(blob)
	buf.B = e.engine.AppendUint64(buf.B, batchTerminator)

	return nil
}

// AddRecord appends one event entry referencing the given schema, registering
// the schema first if needed.
//
// Parameters:
//   - s: Schema the record was encoded against
//   - level: Event severity level (ETW-style, 0 through 5)
//   - eventName: Event name, stored UTF-16LE in the entry
//   - record: Record blob from EncodeRow (caller-owned, copied)
//
// Returns:
//   - error: ErrInvalidSchema, ErrNameTooLong if the encoded event name
//     exceeds the u16 length prefix, ErrValueTooLong if the record exceeds
//     the u32 length prefix, or ErrEncoderFinished
func (e *BatchEncoder) AddRecord(s *schema.Schema, level uint8, eventName string, record []byte) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if err := e.AddSchema(s); err != nil {
		return err
	}

	name16 := encoding.UTF16LEBytes(eventName)
	if len(name16) > math.MaxUint16 {
		return fmt.Errorf("%w: event name is %d UTF-16 bytes", errs.ErrNameTooLong, len(name16))
	}

	recordLen := uint64(encoding.VersionHeaderSize) + uint64(len(record))
	if recordLen > math.MaxUint32 {
		return fmt.Errorf("%w: record is %d bytes", errs.ErrValueTooLong, len(record))
	}

	buf := e.eventBuf
	buf.Grow(2 + 8 + 1 + 2 + len(name16) + 4 + int(recordLen) + 8)
	buf.B = e.engine.AppendUint16(buf.B, entityTypeEvent)
	buf.B = e.engine.AppendUint64(buf.B, s.ID())
	buf.B = append(buf.B, level)
	buf.B = e.engine.AppendUint16(buf.B, uint16(len(name16))) //nolint:gosec
	buf.MustWrite(name16)
	buf.B = e.engine.AppendUint32(buf.B, uint32(recordLen)) //nolint:gosec
	buf.B = e.engine.AppendUint16(buf.B, encoding.MagicNumber)
	buf.B = e.engine.AppendUint16(buf.B, encoding.ProtocolVersion)
	buf.MustWrite(record)
	buf.B = e.engine.AppendUint64(buf.B, batchTerminator)

	e.numEvents++

	return nil
}

// NumSchemas returns the number of distinct schemas registered so far.
func (e *BatchEncoder) NumSchemas() int {
	return len(e.schemaIDs)
}

// NumRecords returns the number of event entries added so far.
func (e *BatchEncoder) NumRecords() int {
	return e.numEvents
}

// Finish assembles the final batch payload and returns it as a caller-owned
// slice. The encoder's pooled buffers are released; the encoder must not be
// used afterwards.
//
// Returns:
//   - []byte: Caller-owned batch payload
//   - error: ErrEncoderFinished on reuse, ErrValueTooLong if the UTF-16
//     metadata exceeds the u32 length prefix
func (e *BatchEncoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true
	defer e.release()

	meta16 := encoding.UTF16LEBytes(e.metadata)
	if uint64(len(meta16)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: metadata is %d UTF-16 bytes", errs.ErrValueTooLong, len(meta16))
	}

	out := make([]byte, 0, 8+4+len(meta16)+e.schemaBuf.Len()+e.eventBuf.Len())
	out = e.engine.AppendUint32(out, e.version)
	out = e.engine.AppendUint32(out, e.blobFormat)
	out = e.engine.AppendUint32(out, uint32(len(meta16))) //nolint:gosec
	out = append(out, meta16...)
	out = append(out, e.schemaBuf.Bytes()...)
	out = append(out, e.eventBuf.Bytes()...)

	return out, nil
}

// Reset abandons the batch and releases the encoder's pooled buffers without
// producing a payload. The encoder must not be used afterwards.
func (e *BatchEncoder) Reset() {
	e.finished = true
	e.release()
}

func (e *BatchEncoder) release() {
	if e.schemaBuf != nil {
		pool.PutRecordBuffer(e.schemaBuf)
		e.schemaBuf = nil
	}
	if e.eventBuf != nil {
		pool.PutBatchBuffer(e.eventBuf)
		e.eventBuf = nil
	}
}
