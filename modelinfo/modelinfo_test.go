package modelinfo

import (
	"testing"

	"github.com/gsplatlib/gsplat-core"
	"github.com/stretchr/testify/require"
)

func testIR() *gsplat.GaussianCloudIR {
	return &gsplat.GaussianCloudIR{
		NumPoints: 2,
		Positions: []float32{0, 0, 0, 1, 2, 3},
		Scales:    []float32{-1, -1, -1, 0, 0, 0},
		Rotations: []float32{1, 0, 0, 0, 1, 0, 0, 0},
		Alphas:    []float32{0, 2},
		Colors:    []float32{0, 0, 0, 1, 1, 1},
		Meta:      gsplat.CloudMeta{ShDegree: 0, SourceFormat: "ply"},
	}
}

func TestSummarizeBounds(t *testing.T) {
	s := Summarize(testIR())
	require.Equal(t, 2, s.NumPoints)
	require.Equal(t, [3]float32{0, 0, 0}, s.Bounds.Min)
	require.Equal(t, [3]float32{1, 2, 3}, s.Bounds.Max)
}

func TestSummarizeStats(t *testing.T) {
	s := Summarize(testIR())
	require.Equal(t, float32(-1), s.Scales.Min)
	require.Equal(t, float32(0), s.Scales.Max)
	require.Equal(t, float32(0), s.Alphas.Min)
	require.Equal(t, float32(2), s.Alphas.Max)
	require.Equal(t, float32(1), s.Alphas.Mean)
}

func TestSummarizeCarriesMetadataConventions(t *testing.T) {
	ir := testIR()
	ir.Meta.Handedness = "right"
	ir.Meta.UpAxis = "y"
	ir.Meta.LengthUnit = "meters"
	ir.Meta.ColorSpace = "linear"

	s := Summarize(ir)
	require.Equal(t, "right", s.Handedness)
	require.Equal(t, "y", s.UpAxis)
	require.Equal(t, "meters", s.LengthUnit)
	require.Equal(t, "linear", s.ColorSpace)
}

func TestSummarizeSizes(t *testing.T) {
	s := Summarize(testIR())
	require.Equal(t, int64(len(testIR().Positions)*4), sizeOf(s, "positions"))
	require.Greater(t, s.TotalBytes, int64(0))
}

func sizeOf(s Summary, name string) int64 {
	for _, sz := range s.Sizes {
		if sz.Name == name {
			return sz.Bytes
		}
	}
	return -1
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "0 B", FormatBytes(0))
	require.Equal(t, "512 B", FormatBytes(512))
	require.Equal(t, "1.00 KB", FormatBytes(1024))
	require.Equal(t, "1.50 KB", FormatBytes(1536))
	require.Equal(t, "1.00 MB", FormatBytes(1024*1024))
}

func TestNewConversionReportStampsRunID(t *testing.T) {
	r1 := NewConversionReport(Summarize(testIR()))
	r2 := NewConversionReport(Summarize(testIR()))
	require.NotEmpty(t, r1.RunID)
	require.NotEqual(t, r1.RunID, r2.RunID)
}
