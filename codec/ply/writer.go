package ply

import (
	"fmt"
	"strings"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

// Writer implements gsplat.Writer for plain PLY files.
type Writer struct{}

// Write serializes an IR to a plain PLY buffer.
func (Writer) Write(ir *gsplat.GaussianCloudIR, _ gsplat.Options) ([]byte, error) {
	if msg := gsplat.Validate(ir, false); msg != "" {
		return nil, gsplat.NewError(codecName, gsplat.KindSemantic, "%s", msg)
	}

	n := ir.NumPoints
	dim := gsplat.ShCoeffsPerPoint(ir.Meta.ShDegree) / 3

	var sb strings.Builder
	sb.WriteString("ply\n")
	sb.WriteString("format binary_little_endian 1.0\n")
	fmt.Fprintf(&sb, "element vertex %d\n", n)
	for _, name := range []string{"x", "y", "z", "scale_0", "scale_1", "scale_2",
		"rot_0", "rot_1", "rot_2", "rot_3", "opacity", "f_dc_0", "f_dc_1", "f_dc_2"} {
		fmt.Fprintf(&sb, "property float %s\n", name)
	}
	for i := 0; i < 3*dim; i++ {
		fmt.Fprintf(&sb, "property float f_rest_%d\n", i)
	}
	sb.WriteString("end_header\n")

	header := []byte(sb.String())
	numProps := 14 + 3*dim
	out := make([]byte, len(header)+n*numProps*4)
	copy(out, header)

	off := len(header)
	for i := 0; i < n; i++ {
		off = appendF32(out, off, ir.Positions[3*i+0], ir.Positions[3*i+1], ir.Positions[3*i+2])
		off = appendF32(out, off, ir.Scales[3*i+0], ir.Scales[3*i+1], ir.Scales[3*i+2])
		off = appendF32(out, off, ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3])
		off = appendF32(out, off, ir.Alphas[i])
		off = appendF32(out, off, ir.Colors[3*i+0], ir.Colors[3*i+1], ir.Colors[3*i+2])

		shPerPoint := dim * 3
		for c := 0; c < 3; c++ {
			for j := 0; j < dim; j++ {
				v := ir.SH[i*shPerPoint+j*3+c]
				bitutil.PutF32LE(out, off, v)
				off += 4
			}
		}
	}

	return out, nil
}

func appendF32(dst []byte, off int, vals ...float32) int {
	for _, v := range vals {
		bitutil.PutF32LE(dst, off, v)
		off += 4
	}
	return off
}
