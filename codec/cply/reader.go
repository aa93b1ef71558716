package cply

import (
	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
	"github.com/gsplatlib/gsplat-core/internal/plyheader"
)

// Reader implements gsplat.Reader for compressed PLY files.
type Reader struct{}

// Read parses a compressed PLY buffer into an IR.
func (Reader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	hdr, err := plyheader.Parse(data)
	if err != nil {
		return nil, "", newError(gsplat.KindStructural, "%v", err)
	}

	chunkEl, ok := hdr.FindElement("chunk")
	if !ok {
		return nil, "", newError(gsplat.KindStructural, "missing chunk element")
	}
	vertexEl, ok := hdr.FindElement("vertex")
	if !ok {
		return nil, "", newError(gsplat.KindStructural, "missing vertex element")
	}
	shEl, hasSH := hdr.FindElement("sh")

	chunkIdx, err := columnIndex(chunkEl.Properties, chunkPropOrder)
	if err != nil {
		return nil, "", err
	}
	vertexIdx, err := columnIndex(vertexEl.Properties, vertexPropOrder)
	if err != nil {
		return nil, "", err
	}

	chunkCount := chunkEl.Count
	vertexCount := vertexEl.Count
	if vertexCount < 0 {
		return nil, "", newError(gsplat.KindSemantic, "negative vertex count")
	}
	wantChunks := 0
	if vertexCount > 0 {
		wantChunks = (vertexCount + ChunkSize - 1) / ChunkSize
	}
	if chunkCount != wantChunks {
		return nil, "", newError(gsplat.KindStructural, "chunk_count %d does not match ceil(vertex_count/256) = %d", chunkCount, wantChunks)
	}

	shProps := 0
	dim := 0
	if hasSH {
		shProps = len(shEl.Properties)
		dim = shProps / 3
	}

	chunkOff := hdr.HeaderLen
	chunkBytes := chunkCount * 18 * 4
	vertexOff := chunkOff + chunkBytes
	vertexBytes := vertexCount * 4 * 4
	shOff := vertexOff + vertexBytes
	shBytes := vertexCount * shProps

	needed := shOff + shBytes
	if len(data) < needed {
		return nil, "", newError(gsplat.KindStructural, "truncated payload: need %d bytes, have %d", needed, len(data))
	}

	bounds := make([]chunkBounds, chunkCount)
	for c := 0; c < chunkCount; c++ {
		bounds[c] = readChunkBounds(data, chunkOff+c*72, chunkIdx)
	}

	shDegree := shDegreeForDim(dim)
	shPerPoint := dim * 3

	ir := &gsplat.GaussianCloudIR{
		NumPoints: vertexCount,
		Positions: make([]float32, 3*vertexCount),
		Scales:    make([]float32, 3*vertexCount),
		Rotations: make([]float32, 4*vertexCount),
		Alphas:    make([]float32, vertexCount),
		Colors:    make([]float32, 3*vertexCount),
	}
	if dim > 0 {
		ir.SH = make([]float32, vertexCount*shPerPoint)
	}
	ir.Meta = gsplat.CloudMeta{ShDegree: shDegree, SourceFormat: codecName}

	for i := 0; i < vertexCount; i++ {
		rec := vertexOff + i*16
		pos := bitutil.ReadU32LE(data, rec+vertexIdx["packed_position"]*4)
		rot := bitutil.ReadU32LE(data, rec+vertexIdx["packed_rotation"]*4)
		scale := bitutil.ReadU32LE(data, rec+vertexIdx["packed_scale"]*4)
		color := bitutil.ReadU32LE(data, rec+vertexIdx["packed_color"]*4)

		b := bounds[i/ChunkSize]
		position, sc, quat, rgb, alpha01 := unpackVertex(pos, rot, scale, color, b)

		ir.Positions[3*i+0], ir.Positions[3*i+1], ir.Positions[3*i+2] = position[0], position[1], position[2]
		ir.Scales[3*i+0], ir.Scales[3*i+1], ir.Scales[3*i+2] = sc[0], sc[1], sc[2]
		ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3] = quat[0], quat[1], quat[2], quat[3]
		ir.Colors[3*i+0] = gsplat.RGBToColor(rgb[0])
		ir.Colors[3*i+1] = gsplat.RGBToColor(rgb[1])
		ir.Colors[3*i+2] = gsplat.RGBToColor(rgb[2])
		ir.Alphas[i] = bitutil.Logit(alpha01, 0.001)

		if dim > 0 {
			row := data[shOff+i*shProps : shOff+(i+1)*shProps]
			for j := 0; j < dim; j++ {
				for c := 0; c < 3; c++ {
					v := unpackSHByte(row[c*dim+j])
					ir.SH[i*shPerPoint+j*3+c] = v
				}
			}
		}
	}

	warning := ""
	if opts.Strict {
		if msg := gsplat.Validate(ir, true); msg != "" {
			return nil, "", newError(gsplat.KindSemantic, "%s", msg)
		}
	} else if msg := gsplat.Validate(ir, false); msg != "" {
		warning = msg
	}

	return ir, warning, nil
}

func columnIndex(props []plyheader.Property, want []string) (map[string]int, error) {
	idx := make(map[string]int, len(props))
	for i, p := range props {
		idx[p.Name] = i
	}
	for _, name := range want {
		if _, ok := idx[name]; !ok {
			return nil, newError(gsplat.KindStructural, "missing required property %q", name)
		}
	}
	return idx, nil
}

func readChunkBounds(data []byte, off int, idx map[string]int) chunkBounds {
	f := func(name string) float32 {
		return bitutil.ReadF32LE(data, off+idx[name]*4)
	}
	var b chunkBounds
	b.posMin = [3]float32{f("min_x"), f("min_y"), f("min_z")}
	b.posMax = [3]float32{f("max_x"), f("max_y"), f("max_z")}
	b.scaleMin = [3]float32{f("min_scale_x"), f("min_scale_y"), f("min_scale_z")}
	b.scaleMax = [3]float32{f("max_scale_x"), f("max_scale_y"), f("max_scale_z")}
	b.colorMin = [3]float32{f("min_r"), f("min_g"), f("min_b")}
	b.colorMax = [3]float32{f("max_r"), f("max_g"), f("max_b")}
	return b
}
