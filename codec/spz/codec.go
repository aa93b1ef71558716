// Package spz adapts the gsplat IR to the external spzwire codec,
// whose only convention difference is rotation component order.
package spz

import (
	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/internal/spzwire"
)

const codecName = "spz"

// Reader implements gsplat.Reader for SPZ files.
type Reader struct{}

// Read decodes an SPZ buffer via spzwire and permutes its rotations
// from [x,y,z,w] to the IR's [w,x,y,z].
func (Reader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	gc, err := spzwire.Decode(data)
	if err != nil {
		return nil, "", gsplat.WrapError(codecName, gsplat.KindDependency, err)
	}

	n := gc.NumPoints
	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: gc.Positions,
		Scales:    gc.Scales,
		Alphas:    gc.Alphas,
		Colors:    gc.Colors,
		Rotations: make([]float32, 4*n),
		Meta: gsplat.CloudMeta{
			ShDegree:     gc.ShDegree,
			Antialiased:  gc.Antialiased,
			SourceFormat: codecName,
		},
	}
	if len(gc.SH) > 0 {
		ir.SH = gc.SH
	}
	for i := 0; i < n; i++ {
		x, y, z, w := gc.Rotations[4*i+0], gc.Rotations[4*i+1], gc.Rotations[4*i+2], gc.Rotations[4*i+3]
		ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3] = w, x, y, z
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

// Writer implements gsplat.Writer for SPZ files.
type Writer struct{}

// Write permutes the IR's [w,x,y,z] rotations to SPZ's [x,y,z,w] and
// encodes via spzwire.
func (Writer) Write(ir *gsplat.GaussianCloudIR, _ gsplat.Options) ([]byte, error) {
	if msg := gsplat.Validate(ir, false); msg != "" {
		return nil, gsplat.NewError(codecName, gsplat.KindSemantic, "%s", msg)
	}

	n := ir.NumPoints
	rotations := make([]float32, 4*n)
	for i := 0; i < n; i++ {
		w, x, y, z := ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3]
		rotations[4*i+0], rotations[4*i+1], rotations[4*i+2], rotations[4*i+3] = x, y, z, w
	}

	gc := spzwire.GaussianCloud{
		NumPoints:   n,
		ShDegree:    ir.Meta.ShDegree,
		Antialiased: ir.Meta.Antialiased,
		Positions:   ir.Positions,
		Scales:      ir.Scales,
		Rotations:   rotations,
		Alphas:      ir.Alphas,
		Colors:      ir.Colors,
		SH:          ir.SH,
	}

	out, err := spzwire.Encode(gc)
	if err != nil {
		return nil, gsplat.WrapError(codecName, gsplat.KindDependency, err)
	}
	return out, nil
}
