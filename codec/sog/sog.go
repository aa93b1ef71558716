// Package sog implements the SOG codec: a STORED-mode ZIP of
// lossless-WebP textures plus a meta.json side table, encoding
// positions, quaternions, scales, SH-0 color and alpha, and
// optionally a higher-order spherical-harmonics palette.
package sog

import (
	"math"

	"github.com/gsplatlib/gsplat-core"
)

const codecName = "sog"

func newError(kind gsplat.ErrorKind, format string, args ...any) error {
	return gsplat.NewError(codecName, kind, format, args...)
}

// texDims returns the W x H a count-indexed texture must have:
// W = ceil(sqrt(count)), H = ceil(count/W), with a 1x1 floor so an
// empty cloud still produces a valid (unused) texture.
func texDims(count int) (w, h int) {
	if count < 1 {
		return 1, 1
	}
	w = int(math.Ceil(math.Sqrt(float64(count))))
	if w < 1 {
		w = 1
	}
	h = (count + w - 1) / w
	return w, h
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func saturateByte(v float32) byte {
	r := math.Round(float64(clamp01(v)) * 255)
	if r < 0 {
		r = 0
	}
	if r > 255 {
		r = 255
	}
	return byte(r)
}
