package spz

import (
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/stretchr/testify/require"
)

func TestRoundTripPermutesRotationOrder(t *testing.T) {
	n := 3
	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: []float32{0, 0, 0, 1, 2, 3, -1, -2, -3},
		Scales:    []float32{-1, -1, -1, -2, -2, -2, 0, 0, 0},
		Rotations: []float32{1, 0, 0, 0, 0.7071, 0.7071, 0, 0, 0.5, 0.5, 0.5, 0.5},
		Alphas:    []float32{0, 1, -1},
		Colors:    []float32{0.1, 0.2, 0.3, -0.1, -0.2, -0.3, 0, 0, 0},
		Meta:      gsplat.CloudMeta{ShDegree: 0, SourceFormat: "test"},
	}

	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, n, got.NumPoints)
	require.InDeltaSlice(t, ir.Positions, got.Positions, 1e-5)
	require.InDeltaSlice(t, ir.Rotations, got.Rotations, 1e-5)
	require.InDeltaSlice(t, ir.Colors, got.Colors, 1e-5)
}

func TestDecodeRejectsNonGzip(t *testing.T) {
	_, _, err := (Reader{}).Read([]byte("not a gzip stream"), gsplat.Options{})
	require.Error(t, err)
}
