package sog

import (
	"github.com/gsplatlib/gsplat-core/bitutil"
	"github.com/gsplatlib/gsplat-core/internal/kmeans"
	"github.com/gsplatlib/gsplat-core/internal/webp"
)

// encodeScales flattens log-space scale triples, quantizes them against
// a shared 256-entry codebook, and lays the per-axis indices into RGB
// of a texture (alpha is unused, fixed at 255).
func encodeScales(scales []float32, n int) (img webp.Image, codebook [256]float32) {
	cb, indices := kmeans.Quantize(scales)
	copy(codebook[:], cb)

	w, h := texDims(n)
	img = webp.Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for i := 0; i < n; i++ {
		pix := i * 4
		img.Pix[pix+0] = byte(indices[3*i+0])
		img.Pix[pix+1] = byte(indices[3*i+1])
		img.Pix[pix+2] = byte(indices[3*i+2])
		img.Pix[pix+3] = 255
	}
	return img, codebook
}

// decodeScales is the inverse of encodeScales.
func decodeScales(img webp.Image, n int, codebook [256]float32) []float32 {
	out := make([]float32, 3*n)
	w := img.Width
	for i := 0; i < n; i++ {
		x, y := i%w, i/w
		pix := (y*w + x) * 4
		out[3*i+0] = codebook[img.Pix[pix+0]]
		out[3*i+1] = codebook[img.Pix[pix+1]]
		out[3*i+2] = codebook[img.Pix[pix+2]]
	}
	return out
}

// encodeSH0 quantizes the flat SH-0 color triples against a shared
// codebook into RGB, with alpha carrying the sigmoid-mapped opacity.
func encodeSH0(colors, alphas []float32, n int) (img webp.Image, codebook [256]float32) {
	cb, indices := kmeans.Quantize(colors)
	copy(codebook[:], cb)

	w, h := texDims(n)
	img = webp.Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for i := 0; i < n; i++ {
		pix := i * 4
		img.Pix[pix+0] = byte(indices[3*i+0])
		img.Pix[pix+1] = byte(indices[3*i+1])
		img.Pix[pix+2] = byte(indices[3*i+2])
		img.Pix[pix+3] = saturateByte(bitutil.Sigmoid(alphas[i]))
	}
	return img, codebook
}

// decodeSH0 is the inverse of encodeSH0, returning colors and alphas
// (alphas are returned pre-sigmoid, i.e. logit space, matching the IR).
func decodeSH0(img webp.Image, n int, codebook [256]float32) (colors, alphas []float32) {
	colors = make([]float32, 3*n)
	alphas = make([]float32, n)
	w := img.Width
	for i := 0; i < n; i++ {
		x, y := i%w, i/w
		pix := (y*w + x) * 4
		colors[3*i+0] = codebook[img.Pix[pix+0]]
		colors[3*i+1] = codebook[img.Pix[pix+1]]
		colors[3*i+2] = codebook[img.Pix[pix+2]]
		a := float32(img.Pix[pix+3]) / 255
		alphas[i] = bitutil.Logit(a, 1e-6)
	}
	return colors, alphas
}
