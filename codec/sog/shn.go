package sog

import (
	"github.com/gsplatlib/gsplat-core/internal/kmeans"
	"github.com/gsplatlib/gsplat-core/internal/webp"
)

// shVectorQuantize quantizes the flat higher-order SH values (all
// points, all coefficients, all three color channels interleaved
// per-coefficient) against one shared 256-entry scalar codebook, then
// deduplicates each point's resulting byte-index vector into a
// palette. The label texture stores each point's 16-bit palette index
// split across R (low byte) and G (high byte); the centroid texture
// lays out every palette entry as a horizontal run of shCoeffs pixels,
// each pixel's RGB holding the codebook-quantized value for that
// coefficient's three color channels.
func encodeSHN(flat []float32, n, shCoeffs int) (labels, centroids webp.Image, codebook []float32) {
	cb, indices := kmeans.Quantize(flat)
	codebook = cb

	perPoint := shCoeffs * 3
	type vecKey string
	paletteOf := make(map[vecKey]int)
	var order []vecKey
	pointPalette := make([]int, n)

	for i := 0; i < n; i++ {
		key := make([]byte, perPoint)
		for k := 0; k < perPoint; k++ {
			key[k] = byte(indices[i*perPoint+k])
		}
		vk := vecKey(key)
		idx, ok := paletteOf[vk]
		if !ok {
			idx = len(order)
			paletteOf[vk] = idx
			order = append(order, vk)
		}
		pointPalette[i] = idx
	}

	lw, lh := texDims(n)
	labels = webp.Image{Width: lw, Height: lh, Pix: make([]byte, lw*lh*4)}
	for i := 0; i < n; i++ {
		pix := i * 4
		idx := pointPalette[i]
		labels.Pix[pix+0] = byte(idx & 0xFF)
		labels.Pix[pix+1] = byte(idx >> 8)
		labels.Pix[pix+2] = 0
		labels.Pix[pix+3] = 255
	}

	paletteCount := len(order)
	cw := 64 * shCoeffs
	ch := (paletteCount + 63) / 64
	if ch < 1 {
		ch = 1
	}
	centroids = webp.Image{Width: cw, Height: ch, Pix: make([]byte, cw*ch*4)}
	for p, vk := range order {
		baseX := (p % 64) * shCoeffs
		y := p / 64
		key := []byte(vk)
		for c := 0; c < shCoeffs; c++ {
			x := baseX + c
			pix := (y*cw + x) * 4
			centroids.Pix[pix+0] = key[c*3+0]
			centroids.Pix[pix+1] = key[c*3+1]
			centroids.Pix[pix+2] = key[c*3+2]
			centroids.Pix[pix+3] = 255
		}
	}
	return labels, centroids, codebook
}

// decodeSHN is the inverse of encodeSHN, reconstructing the flat
// per-point higher-order SH values in coefficient-major interleaved
// order matching the IR.
func decodeSHN(labels, centroids webp.Image, n, shCoeffs int, codebook []float32) []float32 {
	perPoint := shCoeffs * 3
	out := make([]float32, n*perPoint)
	lw := labels.Width
	cw := centroids.Width

	for i := 0; i < n; i++ {
		x, y := i%lw, i/lw
		pix := (y*lw + x) * 4
		idx := int(labels.Pix[pix+0]) | int(labels.Pix[pix+1])<<8

		baseX := (idx % 64) * shCoeffs
		cy := idx / 64
		for c := 0; c < shCoeffs; c++ {
			cx := baseX + c
			cpix := (cy*cw + cx) * 4
			out[i*perPoint+c*3+0] = codebook[centroids.Pix[cpix+0]]
			out[i*perPoint+c*3+1] = codebook[centroids.Pix[cpix+1]]
			out[i*perPoint+c*3+2] = codebook[centroids.Pix[cpix+2]]
		}
	}
	return out
}
