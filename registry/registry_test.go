package registry

import (
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFilename(t *testing.T) {
	cases := map[string]string{
		"cloud.ply":            "ply",
		"cloud.PLY":             "ply",
		"cloud.compressed.ply": "compressed.ply",
		"cloud.COMPRESSED.PLY": "compressed.ply",
		"cloud.splat":          "splat",
		"noext":                "",
	}
	for name, want := range cases {
		require.Equal(t, want, NormalizeFilename(name), name)
	}
}

func TestDefaultRegistryHasAllExtensions(t *testing.T) {
	r := Default()
	want := []string{"ply", "compressed.ply", "splat", "ksplat", "spz", "sog"}
	for _, ext := range want {
		_, ok := r.ReaderFor(ext)
		require.True(t, ok, "reader for %s", ext)
		_, ok = r.WriterFor(ext)
		require.True(t, ok, "writer for %s", ext)
	}
	require.Len(t, r.Extensions(), len(want))
}

func TestConvertRoundTripsSplatToPLY(t *testing.T) {
	r := Default()
	ir := &gsplat.GaussianCloudIR{
		NumPoints: 2,
		Positions: []float32{0, 0, 0, 1, 1, 1},
		Scales:    []float32{-1, -1, -1, -2, -2, -2},
		Rotations: []float32{1, 0, 0, 0, 1, 0, 0, 0},
		Alphas:    []float32{1, 0},
		Colors:    []float32{0, 0, 0, 0.1, 0.1, 0.1},
		Meta:      gsplat.CloudMeta{SourceFormat: "test"},
	}
	splatBytes, err := r.Write(ir, "splat", gsplat.Options{})
	require.NoError(t, err)

	plyBytes, warn, err := r.Convert(splatBytes, "splat", "ply", gsplat.Options{})
	require.NoError(t, err)
	require.Empty(t, warn)

	got, _, err := r.Read(plyBytes, "ply", gsplat.Options{})
	require.NoError(t, err)
	require.Equal(t, 2, got.NumPoints)
}

func TestReadUnknownExtension(t *testing.T) {
	r := Default()
	_, _, err := r.Read(nil, "unknown", gsplat.Options{})
	require.Error(t, err)
}
