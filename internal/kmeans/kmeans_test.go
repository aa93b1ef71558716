package kmeans

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantizeRecoversDistinctClusters(t *testing.T) {
	vals := make([]float32, 0, 300)
	for i := 0; i < 100; i++ {
		vals = append(vals, -1.0)
		vals = append(vals, 0.0)
		vals = append(vals, 5.0)
	}
	codebook, indices := Quantize(vals)
	require.Len(t, codebook, Centers)
	require.Len(t, indices, len(vals))

	for i, v := range vals {
		got := codebook[indices[i]]
		require.InDelta(t, v, got, 0.2)
	}
}

func TestQuantizeSingleValue(t *testing.T) {
	vals := []float32{3.0, 3.0, 3.0}
	codebook, indices := Quantize(vals)
	for i := range vals {
		require.InDelta(t, float32(3.0), codebook[indices[i]], 1e-6)
	}
}

func TestQuantizeEmpty(t *testing.T) {
	codebook, indices := Quantize(nil)
	require.Len(t, codebook, Centers)
	require.Empty(t, indices)
}
