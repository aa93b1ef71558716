package sog

import (
	"encoding/json"
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/internal/zipcontainer"
	"github.com/stretchr/testify/require"
)

func makeIR(n int) *gsplat.GaussianCloudIR {
	positions := make([]float32, 3*n)
	scales := make([]float32, 3*n)
	rotations := make([]float32, 4*n)
	colors := make([]float32, 3*n)
	alphas := make([]float32, n)
	for i := 0; i < n; i++ {
		f := float32(i + 1)
		positions[3*i+0] = f * 0.5
		positions[3*i+1] = -f * 0.25
		positions[3*i+2] = f
		scales[3*i+0] = -1.5
		scales[3*i+1] = -2.0
		scales[3*i+2] = -1.0
		rotations[4*i+0] = 0.9238795
		rotations[4*i+1] = 0.3826834
		rotations[4*i+2] = 0
		rotations[4*i+3] = 0
		colors[3*i+0] = 0.1 * f
		colors[3*i+1] = -0.1 * f
		colors[3*i+2] = 0.05 * f
		alphas[i] = 1.0
	}
	return &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: positions,
		Scales:    scales,
		Rotations: rotations,
		Colors:    colors,
		Alphas:    alphas,
		Meta:      gsplat.CloudMeta{SourceFormat: "test"},
	}
}

func TestRoundTripAtZero(t *testing.T) {
	ir := &gsplat.GaussianCloudIR{
		NumPoints: 1,
		Positions: []float32{0, 0, 0},
		Scales:    []float32{0, 0, 0},
		Rotations: []float32{1, 0, 0, 0},
		Colors:    []float32{0, 0, 0},
		Alphas:    []float32{0},
		Meta:      gsplat.CloudMeta{SourceFormat: "test"},
	}

	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, 1, got.NumPoints)
	require.InDeltaSlice(t, []float32{0, 0, 0}, got.Positions, 1e-4)
	require.InDeltaSlice(t, []float32{1, 0, 0, 0}, got.Rotations, 1e-2)
	require.Equal(t, "right", got.Meta.Handedness)
	require.Equal(t, "y", got.Meta.UpAxis)
	require.Equal(t, "linear", got.Meta.ColorSpace)
}

func TestRoundTripManyPoints(t *testing.T) {
	n := 20
	ir := makeIR(n)

	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, n, got.NumPoints)
	require.InDeltaSlice(t, ir.Positions, got.Positions, 5e-2)
	for i := 0; i < n; i++ {
		require.InDelta(t, float32(1), dot4(ir.Rotations[4*i:4*i+4], got.Rotations[4*i:4*i+4]), 5e-2)
	}
}

func dot4(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func TestRoundTripWithHigherOrderSH(t *testing.T) {
	n := 5
	ir := makeIR(n)
	ir.Meta.ShDegree = 1
	ir.SH = make([]float32, n*9)
	for i := range ir.SH {
		ir.SH[i] = float32(i%7) * 0.1
	}

	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	got, warn, err := (Reader{}).Read(data, gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)
	require.Equal(t, 1, got.Meta.ShDegree)
	require.Len(t, got.SH, n*9)
	require.InDeltaSlice(t, ir.SH, got.SH, 5e-2)
}

func TestReadRejectsMissingMeta(t *testing.T) {
	data := zipcontainer.Write([]zipcontainer.Entry{{Name: fileQuats, Data: []byte{0}}})
	_, _, err := (Reader{}).Read(data, gsplat.Options{})
	require.Error(t, err)
}

func TestReadRejectsVersionBelow2(t *testing.T) {
	ir := makeIR(3)
	data, err := (Writer{}).Write(ir, gsplat.Options{})
	require.NoError(t, err)

	entries, err := zipcontainer.Read(data)
	require.NoError(t, err)

	for i, e := range entries {
		if e.Name != fileMeta {
			continue
		}
		var meta Meta
		require.NoError(t, json.Unmarshal(e.Data, &meta))
		meta.Version = 1
		raw, err := json.Marshal(meta)
		require.NoError(t, err)
		entries[i].Data = raw
	}

	downgraded := zipcontainer.Write(entries)
	_, _, err = (Reader{}).Read(downgraded, gsplat.Options{})
	require.Error(t, err)

	var codecErr *gsplat.CodecError
	require.ErrorAs(t, err, &codecErr)
	require.Equal(t, gsplat.KindVersioning, codecErr.Kind)
}
