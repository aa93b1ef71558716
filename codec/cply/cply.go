// Package cply implements the compressed-PLY codec: the same ASCII
// header container as plain PLY, followed by per-256-point chunk
// min/max records and bit-packed vertex records, with optional
// uint8-quantized higher-order spherical harmonics.
package cply

import "github.com/gsplatlib/gsplat-core"

const codecName = "compressed.ply"

// ChunkSize is the fixed number of points covered by one chunk
// min/max record.
const ChunkSize = 256

// chunkBounds holds the per-axis quantization range for one chunk.
type chunkBounds struct {
	posMin, posMax     [3]float32
	scaleMin, scaleMax [3]float32
	colorMin, colorMax [3]float32
}

var chunkPropOrder = []string{
	"min_x", "min_y", "min_z", "max_x", "max_y", "max_z",
	"min_scale_x", "min_scale_y", "min_scale_z", "max_scale_x", "max_scale_y", "max_scale_z",
	"min_r", "min_g", "min_b", "max_r", "max_g", "max_b",
}

var vertexPropOrder = []string{"packed_position", "packed_rotation", "packed_scale", "packed_color"}

func shDegreeForDim(dim int) int {
	switch {
	case dim < 3:
		return 0
	case dim < 8:
		return 1
	case dim < 15:
		return 2
	default:
		return 3
	}
}

// clamp20 rejects outliers when accumulating a chunk's scale bounds.
func clamp20(v float32) float32 {
	if v < -20 {
		return -20
	}
	if v > 20 {
		return 20
	}
	return v
}

func newError(kind gsplat.ErrorKind, format string, args ...any) error {
	return gsplat.NewError(codecName, kind, format, args...)
}
