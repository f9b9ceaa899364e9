// Package errs defines the sentinel errors returned by bondwire.
//
// All errors are plain values suitable for errors.Is checks. Call sites wrap
// them with fmt.Errorf("%w: ...") to attach context without losing identity.
package errs

import "errors"

var (
	// ErrSchemaTooShort indicates the compact schema buffer ended before the
	// declared field count header could be read.
	ErrSchemaTooShort = errors.New("schema too short")

	// ErrFieldTruncated indicates the compact schema buffer ended inside a
	// field entry (name length, name bytes, type tag, or field id).
	ErrFieldTruncated = errors.New("schema field truncated")

	// ErrInvalidSchema indicates a nil schema handle or a handle carrying no
	// struct definition.
	ErrInvalidSchema = errors.New("invalid or empty schema")

	// ErrRowTooShort indicates the row buffer ended before a field's fixed
	// width or declared variable-length segment could be consumed.
	ErrRowTooShort = errors.New("row too short")

	// ErrUnsupportedType indicates a field carries a type tag the row encoder
	// does not recognize.
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrNameTooLong indicates a string exceeds its length-prefix capacity.
	ErrNameTooLong = errors.New("name too long")

	// ErrValueTooLong indicates a value exceeds its length-prefix capacity.
	ErrValueTooLong = errors.New("value too long")

	// ErrUnbalancedStruct indicates mismatched struct begin/end calls on the
	// wire writer.
	ErrUnbalancedStruct = errors.New("unbalanced struct begin/end")

	// ErrEncoderFinished indicates an encoder was used after Finish or Reset.
	ErrEncoderFinished = errors.New("encoder already finished")
)
