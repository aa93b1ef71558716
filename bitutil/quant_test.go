package bitutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackUnorm(t *testing.T) {
	cases := []float32{0, 0.25, 0.5, 0.75, 1}
	for _, v := range cases {
		packed := PackUnorm(v, 10)
		got := UnpackUnorm(packed, 10)
		require.InDelta(t, float64(v), float64(got), 1.0/1023.0)
	}
}

func TestUnormClamps(t *testing.T) {
	require.Equal(t, uint32(0), PackUnorm(-1, 8))
	require.Equal(t, uint32(255), PackUnorm(2, 8))
}

func TestHalfFloatRoundTrip(t *testing.T) {
	cases := []float32{0, 1, -1, 0.5, -0.5, 3.14159, 65504, -65504, 0.000123}
	for _, v := range cases {
		h := Float32ToHalf(v)
		got := HalfToFloat32(h)
		require.InDelta(t, float64(v), float64(got), 0.01*math.Abs(float64(v))+1e-3)
	}
}

func TestHalfFloatZero(t *testing.T) {
	require.Equal(t, float32(0), HalfToFloat32(Float32ToHalf(0)))
}

func TestSigmoidLogitRoundTrip(t *testing.T) {
	for _, x := range []float32{-5, -1, 0, 1, 5} {
		a := Sigmoid(x)
		back := Logit(a, 0.001)
		require.InDelta(t, float64(x), float64(back), 0.05)
	}
}

func TestLogitClampsAwayFromInfinity(t *testing.T) {
	v := Logit(1.0, 0.001)
	require.False(t, math.IsInf(float64(v), 0))
	v = Logit(0.0, 0.001)
	require.False(t, math.IsInf(float64(v), 0))
}
