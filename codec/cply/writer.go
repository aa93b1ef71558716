package cply

import (
	"fmt"
	"strings"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

// Writer implements gsplat.Writer for compressed PLY files.
type Writer struct{}

// Write serializes an IR to a compressed PLY buffer.
func (Writer) Write(ir *gsplat.GaussianCloudIR, _ gsplat.Options) ([]byte, error) {
	if msg := gsplat.Validate(ir, false); msg != "" {
		return nil, newError(gsplat.KindSemantic, "%s", msg)
	}

	n := ir.NumPoints
	chunkCount := 0
	if n > 0 {
		chunkCount = (n + ChunkSize - 1) / ChunkSize
	}
	dim := gsplat.ShCoeffsPerPoint(ir.Meta.ShDegree) / 3
	shProps := dim * 3

	header := buildHeader(n, chunkCount, shProps)

	bounds := make([]chunkBounds, chunkCount)
	for c := 0; c < chunkCount; c++ {
		bounds[c] = computeChunkBounds(ir, c)
	}

	size := len(header) + chunkCount*72 + n*16
	if shProps > 0 {
		size += n * shProps
	}
	out := make([]byte, size)
	copy(out, header)

	off := len(header)
	for c := 0; c < chunkCount; c++ {
		off = writeChunkBounds(out, off, bounds[c])
	}

	vertexOff := off
	for i := 0; i < n; i++ {
		b := bounds[i/ChunkSize]
		pos, rot, scale, color := packVertex(ir, i, b)
		rec := vertexOff + i*16
		bitutil.PutU32LE(out, rec+0, pos)
		bitutil.PutU32LE(out, rec+4, rot)
		bitutil.PutU32LE(out, rec+8, scale)
		bitutil.PutU32LE(out, rec+12, color)
	}
	off = vertexOff + n*16

	if shProps > 0 {
		shPerPoint := dim * 3
		for i := 0; i < n; i++ {
			row := out[off+i*shProps : off+(i+1)*shProps]
			for c := 0; c < 3; c++ {
				for j := 0; j < dim; j++ {
					v := ir.SH[i*shPerPoint+j*3+c]
					row[c*dim+j] = packSHByte(v)
				}
			}
		}
	}

	return out, nil
}

func buildHeader(vertexCount, chunkCount, shProps int) []byte {
	var sb strings.Builder
	sb.WriteString("ply\n")
	sb.WriteString("format binary_little_endian 1.0\n")
	fmt.Fprintf(&sb, "element chunk %d\n", chunkCount)
	for _, name := range chunkPropOrder {
		fmt.Fprintf(&sb, "property float %s\n", name)
	}
	fmt.Fprintf(&sb, "element vertex %d\n", vertexCount)
	for _, name := range vertexPropOrder {
		fmt.Fprintf(&sb, "property uint %s\n", name)
	}
	if shProps > 0 {
		fmt.Fprintf(&sb, "element sh %d\n", vertexCount)
		for i := 0; i < shProps; i++ {
			fmt.Fprintf(&sb, "property uchar f_rest_%d\n", i)
		}
	}
	sb.WriteString("end_header\n")
	return []byte(sb.String())
}

func writeChunkBounds(out []byte, off int, b chunkBounds) int {
	vals := []float32{
		b.posMin[0], b.posMin[1], b.posMin[2], b.posMax[0], b.posMax[1], b.posMax[2],
		b.scaleMin[0], b.scaleMin[1], b.scaleMin[2], b.scaleMax[0], b.scaleMax[1], b.scaleMax[2],
		b.colorMin[0], b.colorMin[1], b.colorMin[2], b.colorMax[0], b.colorMax[1], b.colorMax[2],
	}
	for _, v := range vals {
		bitutil.PutF32LE(out, off, v)
		off += 4
	}
	return off
}
