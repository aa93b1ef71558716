// Package webp adapts the gsplat SOG codec to lossless WebP: decoding
// delegates to golang.org/x/image/webp, the real ecosystem decoder.
// No pure-Go lossless WebP *encoder* exists in the examined ecosystem,
// so Encode is a from-scratch minimal VP8L writer: no predictor or
// color-indexing transforms, no color cache, no backward references,
// one literal-only canonical Huffman code per channel. It trades
// compression ratio for a bitstream that is simple enough to get
// right without a running decoder to check against.
package webp

import (
	"encoding/binary"
)

var codeLengthCodeOrder = [19]int{17, 18, 0, 1, 2, 3, 4, 5, 16, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

const (
	greenAlphabetSize = 256 + 24
	colorAlphabetSize = 256
	distAlphabetSize  = 24 + 16 // distance code space; never indexed
)

// Image is the minimal RGBA raster this package encodes and decodes.
type Image struct {
	Width, Height int
	// Pix holds interleaved R,G,B,A bytes, row-major, 4 bytes/pixel.
	Pix []byte
}

// Encode serializes img as a lossless RIFF/WEBP/VP8L file.
func Encode(img Image) []byte {
	w, h := img.Width, img.Height
	n := w * h

	green := make([]int, n)
	red := make([]int, n)
	blue := make([]int, n)
	alpha := make([]int, n)
	for i := 0; i < n; i++ {
		red[i] = int(img.Pix[4*i+0])
		green[i] = int(img.Pix[4*i+1])
		blue[i] = int(img.Pix[4*i+2])
		alpha[i] = int(img.Pix[4*i+3])
	}

	greenFreqs := freqsOf(green, greenAlphabetSize)
	redFreqs := freqsOf(red, colorAlphabetSize)
	blueFreqs := freqsOf(blue, colorAlphabetSize)
	alphaFreqs := freqsOf(alpha, colorAlphabetSize)
	distFreqs := make([]int, distAlphabetSize)
	distFreqs[0] = 1 // trivial, never indexed

	bw := &bitWriter{}
	bw.writeBits(0x2F, 8)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	bw.writeBits(uint32(w-1), 14)
	bw.writeBits(uint32(h-1), 14)
	bw.writeBits(1, 1) // alpha_is_used
	bw.writeBits(0, 3) // version_number

	bw.writeBits(0, 1) // no transform
	bw.writeBits(0, 1) // no color cache
	bw.writeBits(0, 1) // no meta huffman image

	greenLens, greenCodes := writeHuffmanCode(bw, greenFreqs, 15)
	redLens, redCodes := writeHuffmanCode(bw, redFreqs, 15)
	blueLens, blueCodes := writeHuffmanCode(bw, blueFreqs, 15)
	alphaLens, alphaCodes := writeHuffmanCode(bw, alphaFreqs, 15)
	writeHuffmanCode(bw, distFreqs, 15)

	for i := 0; i < n; i++ {
		bw.writeBits(greenCodes[green[i]], uint(greenLens[green[i]]))
		bw.writeBits(redCodes[red[i]], uint(redLens[red[i]]))
		bw.writeBits(blueCodes[blue[i]], uint(blueLens[blue[i]]))
		bw.writeBits(alphaCodes[alpha[i]], uint(alphaLens[alpha[i]]))
	}

	payload := bw.bytes()
	return wrapRIFF(payload)
}

func freqsOf(samples []int, alphabetSize int) []int {
	freqs := make([]int, alphabetSize)
	for _, s := range samples {
		freqs[s]++
	}
	return freqs
}

// writeHuffmanCode writes one VP8L Huffman code group and returns the
// per-symbol lengths and canonical codes it derived, for reuse when
// encoding the pixel stream. The simple/normal choice is made from
// raw symbol frequency (how many distinct values actually occur), not
// from the derived lengths, because a single-symbol alphabet legally
// decodes with a zero-bit code length.
func writeHuffmanCode(bw *bitWriter, freqs []int, maxBits int) ([]int, []uint32) {
	used := make([]int, 0, 2)
	for sym, f := range freqs {
		if f > 0 {
			used = append(used, sym)
		}
	}

	lengths := buildCodeLengths(freqs, maxBits)
	codes, _ := canonicalCodes(lengths)

	if len(used) == 0 {
		used = append(used, 0)
	}
	if len(used) <= 2 {
		bw.writeBits(1, 1) // is_simple
		bw.writeBits(uint32(len(used)-1), 1)
		bw.writeBits(1, 1) // is_first_8bits
		bw.writeBits(uint32(used[0]), 8)
		if len(used) == 2 {
			bw.writeBits(uint32(used[1]), 8)
		}
		return lengths, codes
	}

	bw.writeBits(0, 1) // not simple

	clcFreqs := make([]int, 16)
	for _, l := range lengths {
		clcFreqs[l]++
	}
	clcLengths := buildCodeLengths(clcFreqs, 7)
	clcCodes, _ := canonicalCodes(clcLengths)

	bw.writeBits(19-4, 4) // num_code_lengths - 4 == 15 -> transmit all 19
	for _, sym := range codeLengthCodeOrder {
		l := 0
		if sym < len(clcLengths) {
			l = clcLengths[sym]
		}
		bw.writeBits(uint32(l), 3)
	}

	bw.writeBits(0, 1) // no max-symbol truncation
	for _, l := range lengths {
		bw.writeBits(clcCodes[l], uint(clcLengths[l]))
	}

	return lengths, codes
}

func wrapRIFF(vp8l []byte) []byte {
	payload := vp8l
	if len(payload)%2 != 0 {
		payload = append(payload, 0)
	}

	out := make([]byte, 0, 20+len(payload))
	out = append(out, 'R', 'I', 'F', 'F')
	out = appendU32(out, 0) // patched below
	out = append(out, 'W', 'E', 'B', 'P', 'V', 'P', '8', 'L')
	out = appendU32(out, uint32(len(vp8l)))
	out = append(out, payload...)

	riffSize := uint32(len(out) - 8)
	binary.LittleEndian.PutUint32(out[4:8], riffSize)
	return out
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}
