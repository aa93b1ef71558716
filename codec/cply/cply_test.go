package cply

import (
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
	"github.com/stretchr/testify/require"
)

func makeIR(n int, shDegree int) *gsplat.GaussianCloudIR {
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
		ir.Positions[3*i+0] = f * 0.1
		ir.Positions[3*i+1] = f * 0.2
		ir.Positions[3*i+2] = f * 0.3
		ir.Scales[3*i+0] = -1 + float32(i%5)*0.1
		ir.Scales[3*i+1] = -2 + float32(i%3)*0.1
		ir.Scales[3*i+2] = -0.5
		ir.Rotations[4*i+0] = 1
		ir.Rotations[4*i+1] = 0.1 * float32(i%4)
		ir.Rotations[4*i+2] = 0
		ir.Rotations[4*i+3] = 0
		ir.Alphas[i] = -1 + float32(i%7)*0.3
		ir.Colors[3*i+0] = 0.1
		ir.Colors[3*i+1] = -0.1
		ir.Colors[3*i+2] = 0.05
		for j := 0; j < shPerPoint; j++ {
			ir.SH[i*shPerPoint+j] = float32(j%5) - 2
		}
	}
	return ir
}

func TestRoundTripSinglePoint(t *testing.T) {
	ir := makeIR(1, 0)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, 1, got.NumPoints)
	require.InDelta(t, ir.Positions[0], got.Positions[0], 1e-3)
}

func TestChunkBoundaryRoundTrip(t *testing.T) {
	ir := makeIR(257, 0)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, 257, got.NumPoints)
	for i := 0; i < 257; i++ {
		require.InDelta(t, ir.Positions[3*i], got.Positions[3*i], 1e-2)
	}
}

func TestRoundTripWithSH(t *testing.T) {
	ir := makeIR(10, 2)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, ir.Meta.ShDegree, got.Meta.ShDegree)
	require.Equal(t, len(ir.SH), len(got.SH))
	for i := range ir.SH {
		require.InDelta(t, ir.SH[i], got.SH[i], 0.1)
	}
}

func TestQuaternionRoundTripWithinTolerance(t *testing.T) {
	ir := makeIR(4, 0)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)
	got, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)

	tol := 1.0/(2*(1<<10-1))/1.4142135624 + 1e-3
	for i := 0; i < 4; i++ {
		// The writer normalizes before packing, so compare against the
		// normalized input quaternion.
		want := bitutil.NormalizeQuat([4]float32{ir.Rotations[4*i+0], ir.Rotations[4*i+1], ir.Rotations[4*i+2], ir.Rotations[4*i+3]})
		for c := 0; c < 4; c++ {
			require.InDelta(t, want[c], got.Rotations[4*i+c], tol*4)
		}
	}
}
