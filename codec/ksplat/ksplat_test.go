package ksplat

import (
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/stretchr/testify/require"
)

func makeIR(n, shDegree int) *gsplat.GaussianCloudIR {
	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: make([]float32, 3*n),
		Scales:    make([]float32, 3*n),
		Rotations: make([]float32, 4*n),
		Alphas:    make([]float32, n),
		Colors:    make([]float32, 3*n),
		Meta:      gsplat.CloudMeta{ShDegree: shDegree, SourceFormat: "test"},
	}
	shPerPoint := gsplat.ShCoeffsPerPoint(shDegree)
	if shPerPoint > 0 {
		ir.SH = make([]float32, n*shPerPoint)
	}
	for i := 0; i < n; i++ {
		f := float32(i)
		ir.Positions[3*i+0] = f
		ir.Positions[3*i+1] = -f
		ir.Positions[3*i+2] = f * 2
		ir.Scales[3*i+0] = -1
		ir.Scales[3*i+1] = -1.2
		ir.Scales[3*i+2] = -0.8
		ir.Rotations[4*i+0] = 1
		ir.Alphas[i] = 0.5
		ir.Colors[3*i+0] = 0.1
		ir.Colors[3*i+1] = 0.2
		ir.Colors[3*i+2] = 0.3
		for j := 0; j < shPerPoint; j++ {
			ir.SH[i*shPerPoint+j] = float32(j%3) - 1
		}
	}
	return ir
}

func TestRoundTripSingleSplatMode0(t *testing.T) {
	ir := makeIR(1, 0)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, mainHeaderSize+sectionHeaderSize+44, len(data))

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, 1, got.NumPoints)
	require.Equal(t, 0, got.Meta.ShDegree)
	require.InDelta(t, ir.Positions[0], got.Positions[0], 1e-4)
	require.InDelta(t, ir.Scales[0], got.Scales[0], 1e-3)
}

func TestRoundTripManySplatsWithSH(t *testing.T) {
	ir := makeIR(20, 1)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, 20, got.NumPoints)
	require.Equal(t, 1, got.Meta.ShDegree)
	require.Equal(t, len(ir.SH), len(got.SH))
	for i := range ir.SH {
		require.InDelta(t, ir.SH[i], got.SH[i], 1e-3)
	}
}

func TestRejectsUnsupportedVersion(t *testing.T) {
	ir := makeIR(1, 0)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)
	data[0] = 1 // majorVersion must be 0
	_, _, err = (Reader{}).Read(data, gsplat.Options{})
	require.Error(t, err)
}

func TestRejectsTruncatedMainHeader(t *testing.T) {
	_, _, err := (Reader{}).Read(make([]byte, 10), gsplat.Options{})
	require.Error(t, err)
}
