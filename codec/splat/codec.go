// Package splat implements the plain SPLAT codec: fixed 32-byte
// records with uint8-quantized color and quaternion, no header.
package splat

import (
	"math"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

const codecName = "splat"

// RecordSize is the fixed per-point record length in bytes.
const RecordSize = 32

// MaxLogit bounds the pre-sigmoid opacity recovered from a byte 0 or
// 255, which would otherwise map to +/-Inf.
const MaxLogit = 10.0

// Reader implements gsplat.Reader for plain SPLAT files.
type Reader struct{}

// Read parses a plain SPLAT buffer into an IR.
func (Reader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	if len(data) == 0 || len(data)%RecordSize != 0 {
		return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "file size %d is not a non-zero multiple of %d", len(data), RecordSize)
	}
	n := len(data) / RecordSize

	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: make([]float32, 3*n),
		Scales:    make([]float32, 3*n),
		Rotations: make([]float32, 4*n),
		Alphas:    make([]float32, n),
		Colors:    make([]float32, 3*n),
		Meta:      gsplat.CloudMeta{ShDegree: 0, SourceFormat: codecName},
	}

	for i := 0; i < n; i++ {
		rec := data[i*RecordSize : (i+1)*RecordSize]

		ir.Positions[3*i+0] = bitutil.ReadF32LE(rec, 0)
		ir.Positions[3*i+1] = bitutil.ReadF32LE(rec, 4)
		ir.Positions[3*i+2] = bitutil.ReadF32LE(rec, 8)

		for axis := 0; axis < 3; axis++ {
			s := bitutil.ReadF32LE(rec, 12+axis*4)
			if s > 0 {
				ir.Scales[3*i+axis] = float32(math.Log(float64(s)))
			} else {
				ir.Scales[3*i+axis] = -10.0
			}
		}

		r, g, b, a := rec[24], rec[25], rec[26], rec[27]
		ir.Colors[3*i+0] = (float32(r)/255 - 0.5) / gsplat.SHC0
		ir.Colors[3*i+1] = (float32(g)/255 - 0.5) / gsplat.SHC0
		ir.Colors[3*i+2] = (float32(b)/255 - 0.5) / gsplat.SHC0
		ir.Alphas[i] = decodeAlphaByte(a)

		qw, qx, qy, qz := rec[28], rec[29], rec[30], rec[31]
		ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3] = decodeQuatBytes(qw, qx, qy, qz)
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

func decodeAlphaByte(a byte) float32 {
	switch a {
	case 0:
		return -MaxLogit
	case 255:
		return MaxLogit
	default:
		v := float32(-math.Log(255/float64(a) - 1))
		return bitutil.ClampF32(v, -MaxLogit, MaxLogit)
	}
}

// decodeQuatBytes decodes the on-disk byte order [w,x,y,z] into IR
// order [w,x,y,z], normalizing the result (identity if zero-length).
func decodeQuatBytes(w, x, y, z byte) (qw, qx, qy, qz float32) {
	f := func(b byte) float32 { return (float32(b) - 128) / 128 }
	q := [4]float32{f(w), f(x), f(y), f(z)}
	norm := bitutil.NormalizeQuat(q)
	return norm[0], norm[1], norm[2], norm[3]
}

// Writer implements gsplat.Writer for plain SPLAT files.
type Writer struct{}

// Write serializes an IR to a plain SPLAT buffer. Only SH degree 0 is
// representable; any higher-order SH in the IR is silently dropped.
func (Writer) Write(ir *gsplat.GaussianCloudIR, _ gsplat.Options) ([]byte, error) {
	if msg := gsplat.Validate(ir, false); msg != "" {
		return nil, gsplat.NewError(codecName, gsplat.KindSemantic, "%s", msg)
	}

	n := ir.NumPoints
	out := make([]byte, n*RecordSize)
	for i := 0; i < n; i++ {
		rec := out[i*RecordSize : (i+1)*RecordSize]

		bitutil.PutF32LE(rec, 0, ir.Positions[3*i+0])
		bitutil.PutF32LE(rec, 4, ir.Positions[3*i+1])
		bitutil.PutF32LE(rec, 8, ir.Positions[3*i+2])

		for axis := 0; axis < 3; axis++ {
			s := float32(math.Exp(float64(ir.Scales[3*i+axis])))
			bitutil.PutF32LE(rec, 12+axis*4, s)
		}

		rec[24] = saturateByte(ir.Colors[3*i+0]*gsplat.SHC0 + 0.5)
		rec[25] = saturateByte(ir.Colors[3*i+1]*gsplat.SHC0 + 0.5)
		rec[26] = saturateByte(ir.Colors[3*i+2]*gsplat.SHC0 + 0.5)
		rec[27] = saturateByte(bitutil.Sigmoid(ir.Alphas[i]))

		q := bitutil.NormalizeQuat([4]float32{ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3]})
		rec[28] = encodeQuatComponent(q[0])
		rec[29] = encodeQuatComponent(q[1])
		rec[30] = encodeQuatComponent(q[2])
		rec[31] = encodeQuatComponent(q[3])
	}
	return out, nil
}

func saturateByte(v float32) byte {
	r := math.Round(float64(v) * 255)
	if r < 0 {
		r = 0
	}
	if r > 255 {
		r = 255
	}
	return byte(r)
}

func encodeQuatComponent(v float32) byte {
	r := math.Round(float64(v)*128 + 128)
	if r < 0 {
		r = 0
	}
	if r > 255 {
		r = 255
	}
	return byte(r)
}
