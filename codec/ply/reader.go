// Package ply implements the plain PLY codec: an ASCII header
// followed by a dense little-endian float32 payload, one row per
// point, laid out structure-of-arrays style within a row.
package ply

import (
	"fmt"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
	"github.com/gsplatlib/gsplat-core/internal/plyheader"
)

const codecName = "ply"

var baseFields = []string{"x", "y", "z", "scale_0", "scale_1", "scale_2",
	"rot_0", "rot_1", "rot_2", "rot_3", "opacity", "f_dc_0", "f_dc_1", "f_dc_2"}

// Reader implements gsplat.Reader for plain PLY files.
type Reader struct{}

// Read parses a plain PLY buffer into an IR.
func (Reader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	hdr, err := plyheader.Parse(data)
	if err != nil {
		return nil, "", gsplat.WrapError(codecName, gsplat.KindStructural, err)
	}
	if len(hdr.Elements) != 1 {
		return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "expected exactly one element, got %d", len(hdr.Elements))
	}
	el := hdr.Elements[0]
	if el.Name != "vertex" {
		return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "expected element \"vertex\", got %q", el.Name)
	}
	if el.Count < 0 {
		return nil, "", gsplat.NewError(codecName, gsplat.KindSemantic, "negative vertex count: %d", el.Count)
	}
	for _, p := range el.Properties {
		if p.Type != "float" {
			return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "unknown property type %q for %q (only float is supported)", p.Type, p.Name)
		}
	}

	index := make(map[string]int, len(el.Properties))
	for i, p := range el.Properties {
		index[p.Name] = i
	}

	for _, name := range baseFields {
		if _, ok := index[name]; !ok {
			return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "missing required field %q", name)
		}
	}

	dim, restIdx, err := restLayout(index, el.Count)
	if err != nil {
		return nil, "", err
	}

	n := el.Count
	numProps := len(el.Properties)
	needed := hdr.HeaderLen + n*numProps*4
	if len(data) < needed {
		return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "truncated payload: need %d bytes, have %d", needed, len(data))
	}

	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: make([]float32, 3*n),
		Scales:    make([]float32, 3*n),
		Rotations: make([]float32, 4*n),
		Alphas:    make([]float32, n),
		Colors:    make([]float32, 3*n),
	}
	shDegree := shDegreeForDim(dim)
	shPerPoint := dim * 3
	if dim > 0 {
		ir.SH = make([]float32, n*shPerPoint)
	}
	ir.Meta = gsplat.CloudMeta{ShDegree: shDegree, SourceFormat: codecName}

	row := make([]float32, numProps)
	off := hdr.HeaderLen
	for i := 0; i < n; i++ {
		for j := 0; j < numProps; j++ {
			row[j] = bitutil.ReadF32LE(data, off)
			off += 4
		}

		ir.Positions[3*i+0] = row[index["x"]]
		ir.Positions[3*i+1] = row[index["y"]]
		ir.Positions[3*i+2] = row[index["z"]]
		ir.Scales[3*i+0] = row[index["scale_0"]]
		ir.Scales[3*i+1] = row[index["scale_1"]]
		ir.Scales[3*i+2] = row[index["scale_2"]]
		ir.Rotations[4*i+0] = row[index["rot_0"]]
		ir.Rotations[4*i+1] = row[index["rot_1"]]
		ir.Rotations[4*i+2] = row[index["rot_2"]]
		ir.Rotations[4*i+3] = row[index["rot_3"]]
		ir.Alphas[i] = row[index["opacity"]]
		ir.Colors[3*i+0] = row[index["f_dc_0"]]
		ir.Colors[3*i+1] = row[index["f_dc_1"]]
		ir.Colors[3*i+2] = row[index["f_dc_2"]]

		// PLY stores higher-order SH channel-major (all R, then G, then
		// B); the IR wants coefficient-major interleaved RGB.
		for j := 0; j < dim; j++ {
			for c := 0; c < 3; c++ {
				v := row[restIdx[c*dim+j]]
				ir.SH[i*shPerPoint+j*3+c] = v
			}
		}
	}

	warning := ""
	if opts.Strict {
		if msg := gsplat.Validate(ir, true); msg != "" {
			return nil, "", gsplat.NewError(codecName, gsplat.KindSemantic, "%s", msg)
		}
	} else if msg := gsplat.Validate(ir, false); msg != "" {
		warning = msg
	}

	return ir, warning, nil
}

// restLayout locates the f_rest_* properties (if any) and returns the
// per-channel coefficient count plus the property index of each
// (channel, coefficient) pair, indexed as restIdx[c*dim+j].
func restLayout(index map[string]int, _ int) (dim int, restIdx []int, err error) {
	count := 0
	for {
		name := fmt.Sprintf("f_rest_%d", count)
		if _, ok := index[name]; !ok {
			break
		}
		count++
	}
	if count == 0 {
		return 0, nil, nil
	}
	if count%3 != 0 {
		return 0, nil, gsplat.NewError(codecName, gsplat.KindStructural, "f_rest_* count %d is not a multiple of 3", count)
	}
	dim = count / 3
	restIdx = make([]int, count)
	for i := 0; i < count; i++ {
		restIdx[i] = index[fmt.Sprintf("f_rest_%d", i)]
	}
	return dim, restIdx, nil
}

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
