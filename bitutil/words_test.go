package bitutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackWords(t *testing.T) {
	vals := []uint32{0x3, 0x1FF, 0x3FF, 0x2FF}
	bits := []uint{2, 10, 10, 10}
	word := PackWords(vals, bits)
	out := UnpackWords(word, bits)
	require.Equal(t, vals, out)
}

func TestPackWordsTruncatesOverflow(t *testing.T) {
	word := PackWords([]uint32{0xFFFF}, []uint{8})
	require.Equal(t, uint32(0xFF), word)
}
