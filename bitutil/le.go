package bitutil

import (
	"encoding/binary"
	"math"
)

// ReadU16LE reads a little-endian uint16 at offset.
func ReadU16LE(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

// ReadU32LE reads a little-endian uint32 at offset.
func ReadU32LE(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// ReadU64LE reads a little-endian uint64 at offset.
func ReadU64LE(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

// ReadF32LE reads a little-endian IEEE-754 float32 at offset.
func ReadF32LE(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

// PutU16LE writes a little-endian uint16 at offset.
func PutU16LE(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:], v)
}

// PutU32LE writes a little-endian uint32 at offset.
func PutU32LE(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// PutF32LE writes a little-endian IEEE-754 float32 at offset.
func PutF32LE(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

// AppendF32LE appends the little-endian encoding of v to b.
func AppendF32LE(b []byte, v float32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	return append(b, tmp[:]...)
}

// AppendU32LE appends the little-endian encoding of v to b.
func AppendU32LE(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// AppendU16LE appends the little-endian encoding of v to b.
func AppendU16LE(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}
