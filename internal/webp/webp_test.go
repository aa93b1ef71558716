package webp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeProducesWellFormedRIFFContainer(t *testing.T) {
	img := Image{Width: 2, Height: 2, Pix: []byte{
		10, 20, 30, 255,
		40, 50, 60, 255,
		70, 80, 90, 128,
		100, 110, 120, 0,
	}}
	data := Encode(img)
	require.True(t, len(data) > 20)
	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WEBP", string(data[8:12]))
	require.Equal(t, "VP8L", string(data[12:16]))
	require.Equal(t, byte(0x2F), data[20])
}

func TestEncodeSinglePixelFlatImage(t *testing.T) {
	img := Image{Width: 1, Height: 1, Pix: []byte{5, 5, 5, 255}}
	data := Encode(img)
	require.Equal(t, "RIFF", string(data[0:4]))
}

func TestBuildCodeLengthsSingleSymbolIsZeroBits(t *testing.T) {
	freqs := make([]int, 256)
	freqs[42] = 100
	lengths := buildCodeLengths(freqs, 15)
	require.Equal(t, 0, lengths[42])
}

func TestBuildCodeLengthsTwoSymbolsAreOneBit(t *testing.T) {
	freqs := make([]int, 256)
	freqs[1] = 10
	freqs[2] = 10
	lengths := buildCodeLengths(freqs, 15)
	require.Equal(t, 1, lengths[1])
	require.Equal(t, 1, lengths[2])
}

func TestCanonicalCodesSatisfyKraftEquality(t *testing.T) {
	freqs := make([]int, 16)
	freqs[0] = 1
	freqs[1] = 1
	freqs[2] = 2
	freqs[3] = 5
	freqs[4] = 9
	lengths := buildCodeLengths(freqs, 15)
	_, maxLen := canonicalCodes(lengths)
	require.Greater(t, maxLen, 0)

	var kraft float64
	for _, l := range lengths {
		if l > 0 {
			kraft += 1.0 / float64(int(1)<<uint(l))
		}
	}
	require.InDelta(t, 1.0, kraft, 1e-9)
}
