// Package spzwire is a self-contained black-box SPZ wire codec,
// shaped the way an externally vendored compression library would be:
// a narrow GaussianCloud struct plus Encode/Decode, with no knowledge
// of the caller's own IR conventions. Its rotation order is
// [x, y, z, w], which the gsplat/codec/spz adapter permutes to and
// from the IR's [w, x, y, z].
package spzwire

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gsplatlib/gsplat-core/bitutil"
)

const magic uint32 = 0x5053474e // "NGSP" little-endian
const wireVersion uint32 = 2

// GaussianCloud is the wire-level point cloud shape exchanged with
// the SPZ codec: five parallel float arrays plus rotations, carrying
// their own shDegree/antialiased flags.
type GaussianCloud struct {
	NumPoints   int
	ShDegree    int
	Antialiased bool

	Positions []float32 // 3*N
	Scales    []float32 // 3*N, log space
	Rotations []float32 // 4*N, [x,y,z,w]
	Alphas    []float32 // N, pre-sigmoid
	Colors    []float32 // 3*N, SH-0 coefficients
	SH        []float32 // N * coefficients-per-point
}

// Encode gzip-frames a fixed binary serialization of gc.
func Encode(gc GaussianCloud) ([]byte, error) {
	var body bytes.Buffer
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magic)
	binary.LittleEndian.PutUint32(hdr[4:8], wireVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(gc.NumPoints))
	flags := byte(0)
	if gc.Antialiased {
		flags = 1
	}
	hdr[12] = byte(gc.ShDegree)
	hdr[13] = flags
	body.Write(hdr[:])

	writeFloats(&body, gc.Positions)
	writeFloats(&body, gc.Scales)
	writeFloats(&body, gc.Rotations)
	writeFloats(&body, gc.Alphas)
	writeFloats(&body, gc.Colors)
	writeU32(&body, uint32(len(gc.SH)))
	writeFloats(&body, gc.SH)

	var out bytes.Buffer
	gw := gzip.NewWriter(&out)
	if _, err := gw.Write(body.Bytes()); err != nil {
		return nil, fmt.Errorf("spzwire: gzip write: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("spzwire: gzip close: %w", err)
	}
	return out.Bytes(), nil
}

// Decode reverses Encode.
func Decode(data []byte) (GaussianCloud, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return GaussianCloud{}, fmt.Errorf("spzwire: not gzip-framed: %w", err)
	}
	defer gr.Close()
	body, err := io.ReadAll(gr)
	if err != nil {
		return GaussianCloud{}, fmt.Errorf("spzwire: gzip read: %w", err)
	}
	if len(body) < 16 {
		return GaussianCloud{}, fmt.Errorf("spzwire: truncated header")
	}
	if got := binary.LittleEndian.Uint32(body[0:4]); got != magic {
		return GaussianCloud{}, fmt.Errorf("spzwire: bad magic %#x", got)
	}
	n := int(binary.LittleEndian.Uint32(body[8:12]))
	shDegree := int(body[12])
	antialiased := body[13] != 0

	off := 16
	var gc GaussianCloud
	gc.NumPoints = n
	gc.ShDegree = shDegree
	gc.Antialiased = antialiased

	gc.Positions, off, err = readFloats(body, off, 3*n)
	if err != nil {
		return GaussianCloud{}, err
	}
	gc.Scales, off, err = readFloats(body, off, 3*n)
	if err != nil {
		return GaussianCloud{}, err
	}
	gc.Rotations, off, err = readFloats(body, off, 4*n)
	if err != nil {
		return GaussianCloud{}, err
	}
	gc.Alphas, off, err = readFloats(body, off, n)
	if err != nil {
		return GaussianCloud{}, err
	}
	gc.Colors, off, err = readFloats(body, off, 3*n)
	if err != nil {
		return GaussianCloud{}, err
	}
	if off+4 > len(body) {
		return GaussianCloud{}, fmt.Errorf("spzwire: truncated sh length")
	}
	shLen := int(binary.LittleEndian.Uint32(body[off : off+4]))
	off += 4
	gc.SH, _, err = readFloats(body, off, shLen)
	if err != nil {
		return GaussianCloud{}, err
	}
	return gc, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeFloats(buf *bytes.Buffer, vals []float32) {
	for _, v := range vals {
		var tmp [4]byte
		bitutil.PutF32LE(tmp[:], 0, v)
		buf.Write(tmp[:])
	}
}

func readFloats(body []byte, off, count int) ([]float32, int, error) {
	need := off + count*4
	if need > len(body) {
		return nil, off, fmt.Errorf("spzwire: truncated float array: need %d bytes, have %d", need, len(body))
	}
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		out[i] = bitutil.ReadF32LE(body, off+i*4)
	}
	return out, need, nil
}
