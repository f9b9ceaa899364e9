// Package endian provides byte order utilities for binary encoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so encoders can both
// read fixed-width values and append them to growing buffers through one
// value. The Bond Simple Protocol is little-endian on the wire, so
// GetLittleEndianEngine is what the rest of bondwire uses; the big-endian
// engine exists for tests and tooling that need to byte-swap.
//
// The returned engines are the immutable stdlib implementations and are safe
// for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy this interface, so an
// EndianEngine is always compatible with code expecting the stdlib types.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
