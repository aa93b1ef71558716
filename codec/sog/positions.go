package sog

import (
	"math"

	"github.com/gsplatlib/gsplat-core/internal/webp"
)

// logTransform applies f(v) = sign(v)*log(|v|+1).
func logTransform(v float32) float32 {
	if v == 0 {
		return 0
	}
	sign := float32(1)
	if v < 0 {
		sign = -1
	}
	return sign * float32(math.Log(float64(float32(math.Abs(float64(v)))+1)))
}

// inverseLogTransform reverses logTransform.
func inverseLogTransform(t float32) float32 {
	if t == 0 {
		return 0
	}
	sign := float32(1)
	if t < 0 {
		sign = -1
	}
	return sign * float32(math.Exp(float64(float32(math.Abs(float64(t)))))-1)
}

// encodePositions builds the means_l/means_u textures and returns the
// per-axis min/max of the log-transformed values used to normalize.
func encodePositions(positions []float32, n int) (lo, hiImg webp.Image, mins, maxs [3]float32) {
	w, h := texDims(n)
	transformed := make([]float32, 3*n)
	for axis := 0; axis < 3; axis++ {
		mins[axis] = math.MaxFloat32
		maxs[axis] = -math.MaxFloat32
	}
	for i := 0; i < n; i++ {
		for axis := 0; axis < 3; axis++ {
			t := logTransform(positions[3*i+axis])
			transformed[3*i+axis] = t
			if t < mins[axis] {
				mins[axis] = t
			}
			if t > maxs[axis] {
				maxs[axis] = t
			}
		}
	}

	lo = webp.Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	hiImg = webp.Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for i := range lo.Pix {
		if i%4 == 3 {
			lo.Pix[i] = 255
			hiImg.Pix[i] = 255
		}
	}

	for i := 0; i < n; i++ {
		for axis := 0; axis < 3; axis++ {
			span := maxs[axis] - mins[axis]
			var u16 uint16
			if span > 0 {
				t := (transformed[3*i+axis] - mins[axis]) / span
				u16 = uint16(math.Round(float64(t) * 65535))
			}
			lo.Pix[i*4+axis] = byte(u16 & 0xFF)
			hiImg.Pix[i*4+axis] = byte(u16 >> 8)
		}
	}
	return lo, hiImg, mins, maxs
}

// decodePositions is the inverse of encodePositions.
func decodePositions(lo, hi webp.Image, n int, mins, maxs [3]float32) []float32 {
	out := make([]float32, 3*n)
	w := lo.Width
	for i := 0; i < n; i++ {
		x, y := i%w, i/w
		pix := (y*w + x) * 4
		for axis := 0; axis < 3; axis++ {
			u16 := uint16(lo.Pix[pix+axis]) | uint16(hi.Pix[pix+axis])<<8
			span := maxs[axis] - mins[axis]
			t := mins[axis]
			if span > 0 {
				t = mins[axis] + (float32(u16)/65535)*span
			}
			out[3*i+axis] = inverseLogTransform(t)
		}
	}
	return out
}
