package splat

import (
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/stretchr/testify/require"
)

func makeIR(n int) *gsplat.GaussianCloudIR {
	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: make([]float32, 3*n),
		Scales:    make([]float32, 3*n),
		Rotations: make([]float32, 4*n),
		Alphas:    make([]float32, n),
		Colors:    make([]float32, 3*n),
		Meta:      gsplat.CloudMeta{ShDegree: 0, SourceFormat: "test"},
	}
	for i := 0; i < n; i++ {
		f := float32(i)
		ir.Positions[3*i+0] = f * 0.5
		ir.Positions[3*i+1] = -f * 0.25
		ir.Positions[3*i+2] = f
		ir.Scales[3*i+0] = -1.5 + float32(i%4)*0.2
		ir.Scales[3*i+1] = -2
		ir.Scales[3*i+2] = -0.1
		ir.Rotations[4*i+0] = 1
		ir.Rotations[4*i+1] = 0
		ir.Rotations[4*i+2] = 0
		ir.Rotations[4*i+3] = 0
		ir.Alphas[i] = -0.5 + float32(i%5)*0.2
		ir.Colors[3*i+0] = 0.2
		ir.Colors[3*i+1] = -0.1
		ir.Colors[3*i+2] = 0.05
	}
	return ir
}

func TestRoundTrip(t *testing.T) {
	ir := makeIR(8)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, 8*RecordSize, len(data))

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, 8, got.NumPoints)
	for i := range ir.Positions {
		require.InDelta(t, ir.Positions[i], got.Positions[i], 1e-3)
	}
	for i := range ir.Colors {
		require.InDelta(t, ir.Colors[i], got.Colors[i], 0.05)
	}
	for i := range ir.Alphas {
		require.InDelta(t, ir.Alphas[i], got.Alphas[i], 0.1)
	}
}

func TestNonPositiveScaleSentinel(t *testing.T) {
	ir := makeIR(1)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)
	// Force the on-disk linear scale to zero to exercise the sentinel path.
	for axis := 0; axis < 3; axis++ {
		for b := 0; b < 4; b++ {
			data[12+axis*4+b] = 0
		}
	}
	got, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	for axis := 0; axis < 3; axis++ {
		require.Equal(t, float32(-10.0), got.Scales[axis])
	}
}

func TestAlphaEndpointBytes(t *testing.T) {
	require.Equal(t, float32(-MaxLogit), decodeAlphaByte(0))
	require.Equal(t, float32(MaxLogit), decodeAlphaByte(255))
}

func TestTruncatedFileIsStructuralError(t *testing.T) {
	_, _, err := (Reader{}).Read(make([]byte, RecordSize+1), gsplat.Options{})
	require.Error(t, err)
	var codecErr *gsplat.CodecError
	require.ErrorAs(t, err, &codecErr)
	require.Equal(t, gsplat.KindStructural, codecErr.Kind)
}

func TestHigherOrderSHDroppedOnWrite(t *testing.T) {
	ir := makeIR(2)
	ir.Meta.ShDegree = 1
	ir.SH = make([]float32, 2*gsplat.ShCoeffsPerPoint(1))
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, 2*RecordSize, len(data))

	got, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, got.Meta.ShDegree)
	require.Nil(t, got.SH)
}
