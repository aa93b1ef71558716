package sog

import (
	"math"

	"github.com/gsplatlib/gsplat-core/internal/webp"
)

const invSqrt2 = 0.7071067811865476

// encodeQuats packs each quaternion's three non-largest components into
// RGB (mapped from [-1/sqrt2, 1/sqrt2] to [0,255]) and tags the index of
// the omitted largest component into alpha as 252+idx. No sign is
// stored: the quaternion is negated first if needed so that the
// omitted component is non-negative.
func encodeQuats(rotations []float32, n int) webp.Image {
	w, h := texDims(n)
	img := webp.Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for i := 0; i < n; i++ {
		q := [4]float32{
			rotations[4*i+0], rotations[4*i+1],
			rotations[4*i+2], rotations[4*i+3],
		}
		maxIdx, maxAbs := 0, float32(math.Abs(float64(q[0])))
		for k := 1; k < 4; k++ {
			a := float32(math.Abs(float64(q[k])))
			if a > maxAbs {
				maxAbs, maxIdx = a, k
			}
		}
		if q[maxIdx] < 0 {
			for k := range q {
				q[k] = -q[k]
			}
		}

		var rgb [3]byte
		c := 0
		for k := 0; k < 4; k++ {
			if k == maxIdx {
				continue
			}
			t := clamp01(q[k]/invSqrt2/2 + 0.5)
			rgb[c] = saturateByte(t)
			c++
		}

		pix := i * 4
		img.Pix[pix+0] = rgb[0]
		img.Pix[pix+1] = rgb[1]
		img.Pix[pix+2] = rgb[2]
		img.Pix[pix+3] = byte(252 + maxIdx)
	}
	return img
}

// decodeQuats is the inverse of encodeQuats.
func decodeQuats(img webp.Image, n int) []float32 {
	out := make([]float32, 4*n)
	w := img.Width
	for i := 0; i < n; i++ {
		x, y := i%w, i/w
		pix := (y*w + x) * 4
		alpha := img.Pix[pix+3]
		if alpha < 252 {
			out[4*i+0] = 1
			out[4*i+1] = 0
			out[4*i+2] = 0
			out[4*i+3] = 0
			continue
		}
		maxIdx := int(alpha) - 252
		if maxIdx < 0 || maxIdx > 3 {
			maxIdx = 0
		}

		var comps [3]float32
		for c := 0; c < 3; c++ {
			t := float32(img.Pix[pix+c]) / 255
			comps[c] = (t - 0.5) * 2 * invSqrt2
		}

		var q [4]float32
		c := 0
		var sumSq float32
		for k := 0; k < 4; k++ {
			if k == maxIdx {
				continue
			}
			q[k] = comps[c]
			sumSq += comps[c] * comps[c]
			c++
		}
		rem := float32(1) - sumSq
		if rem < 0 {
			rem = 0
		}
		q[maxIdx] = float32(math.Sqrt(float64(rem)))

		out[4*i+0] = q[0]
		out[4*i+1] = q[1]
		out[4*i+2] = q[2]
		out[4*i+3] = q[3]
	}
	return out
}
