package cply

import (
	"math"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

var posBits = []uint{11, 10, 11}
var scaleBits = []uint{11, 10, 11}
var colorBits = []uint{8, 8, 8, 8}
var rotBits = []uint{2, 10, 10, 10}

func computeChunkBounds(ir *gsplat.GaussianCloudIR, chunkIdx int) chunkBounds {
	start := chunkIdx * ChunkSize
	end := start + ChunkSize
	n := ir.NumPoints
	lastReal := n - 1

	var b chunkBounds
	for axis := 0; axis < 3; axis++ {
		b.posMin[axis] = math.MaxFloat32
		b.posMax[axis] = -math.MaxFloat32
		b.scaleMin[axis] = math.MaxFloat32
		b.scaleMax[axis] = -math.MaxFloat32
		b.colorMin[axis] = math.MaxFloat32
		b.colorMax[axis] = -math.MaxFloat32
	}

	for slot := start; slot < end; slot++ {
		i := slot
		if i > lastReal {
			i = lastReal
		}
		for axis := 0; axis < 3; axis++ {
			p := ir.Positions[3*i+axis]
			if p < b.posMin[axis] {
				b.posMin[axis] = p
			}
			if p > b.posMax[axis] {
				b.posMax[axis] = p
			}

			s := clamp20(ir.Scales[3*i+axis])
			if s < b.scaleMin[axis] {
				b.scaleMin[axis] = s
			}
			if s > b.scaleMax[axis] {
				b.scaleMax[axis] = s
			}

			rgb := gsplat.ColorToRGB(ir.Colors[3*i+axis])
			if rgb < b.colorMin[axis] {
				b.colorMin[axis] = rgb
			}
			if rgb > b.colorMax[axis] {
				b.colorMax[axis] = rgb
			}
		}
	}
	return b
}

func packVertex(ir *gsplat.GaussianCloudIR, i int, b chunkBounds) (pos, rot, scale, color uint32) {
	var posT, scaleT, colorT [3]uint32
	for axis := 0; axis < 3; axis++ {
		pt := bitutil.Normalize01(ir.Positions[3*i+axis], b.posMin[axis], b.posMax[axis])
		posT[axis] = bitutil.PackUnorm(pt, posBits[axis])

		st := bitutil.Normalize01(ir.Scales[3*i+axis], b.scaleMin[axis], b.scaleMax[axis])
		scaleT[axis] = bitutil.PackUnorm(st, scaleBits[axis])

		rgb := gsplat.ColorToRGB(ir.Colors[3*i+axis])
		ct := bitutil.Normalize01(rgb, b.colorMin[axis], b.colorMax[axis])
		colorT[axis] = bitutil.PackUnorm(ct, colorBits[axis])
	}

	pos = bitutil.PackWords([]uint32{posT[0], posT[1], posT[2]}, posBits)
	scale = bitutil.PackWords([]uint32{scaleT[0], scaleT[1], scaleT[2]}, scaleBits)

	alpha01 := bitutil.Sigmoid(ir.Alphas[i])
	alphaQ := bitutil.PackUnorm(alpha01, 8)
	color = bitutil.PackWords([]uint32{colorT[0], colorT[1], colorT[2], alphaQ}, colorBits)

	q := [4]float32{ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3]}
	q = bitutil.NormalizeQuat(q)
	canon, maxIdx := bitutil.SmallestThreeIndex(q)
	a, cc, d := bitutil.SmallestThreeComponents(canon, maxIdx)
	aq := bitutil.PackUnorm(toUnit(a), 10)
	cq := bitutil.PackUnorm(toUnit(cc), 10)
	dq := bitutil.PackUnorm(toUnit(d), 10)
	rot = bitutil.PackWords([]uint32{uint32(maxIdx), aq, cq, dq}, rotBits)

	return pos, rot, scale, color
}

// toUnit maps a smallest-three component from [-1/sqrt2, 1/sqrt2] to [0,1].
func toUnit(v float32) float32 {
	return (v/bitutil.SqrtHalf + 1) / 2
}

// fromUnit is the inverse of toUnit.
func fromUnit(t float32) float32 {
	return (t*2 - 1) * bitutil.SqrtHalf
}

func unpackVertex(pos, rot, scale, color uint32, b chunkBounds) (position, sc [3]float32, quat [4]float32, rgbColor [3]float32, alpha float32) {
	posT := bitutil.UnpackWords(pos, posBits)
	scaleT := bitutil.UnpackWords(scale, scaleBits)
	colorT := bitutil.UnpackWords(color, colorBits)
	rotT := bitutil.UnpackWords(rot, rotBits)

	for axis := 0; axis < 3; axis++ {
		t := bitutil.UnpackUnorm(posT[axis], posBits[axis])
		position[axis] = bitutil.Lerp(b.posMin[axis], b.posMax[axis], t)

		st := bitutil.UnpackUnorm(scaleT[axis], scaleBits[axis])
		sc[axis] = bitutil.Lerp(b.scaleMin[axis], b.scaleMax[axis], st)

		ct := bitutil.UnpackUnorm(colorT[axis], colorBits[axis])
		rgbColor[axis] = bitutil.Lerp(b.colorMin[axis], b.colorMax[axis], ct)
	}
	alpha = bitutil.UnpackUnorm(colorT[3], colorBits[3])

	maxIdx := int(rotT[0])
	a := fromUnit(bitutil.UnpackUnorm(rotT[1], rotBits[1]))
	c := fromUnit(bitutil.UnpackUnorm(rotT[2], rotBits[2]))
	d := fromUnit(bitutil.UnpackUnorm(rotT[3], rotBits[3]))
	quat = bitutil.SmallestThreeReconstruct(a, c, d, maxIdx)

	return position, sc, quat, rgbColor, alpha
}

// packSHByte quantizes one higher-order SH coefficient to a uint8.
func packSHByte(v float32) byte {
	f := (v/8 + 0.5) * 256
	if f < 0 {
		f = 0
	}
	if f > 255 {
		f = 255
	}
	return byte(math.Floor(float64(f)))
}

// unpackSHByte is the inverse of packSHByte: 0 and 255 map to the
// normalized endpoints 0.0 and 1.0 exactly, every other byte uses
// (b+0.5)/256.
func unpackSHByte(b byte) float32 {
	var n float32
	switch b {
	case 0:
		n = 0
	case 255:
		n = 1
	default:
		n = (float32(b) + 0.5) / 256
	}
	return (n - 0.5) * 8
}
