package bitutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmallestThreeRoundTrip(t *testing.T) {
	inputs := [][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0.7071, 0.7071, 0, 0},
		{0.5, 0.5, 0.5, 0.5},
		{-0.2, 0.4, -0.8, 0.4},
	}
	for _, in := range inputs {
		q := NormalizeQuat(in)
		canon, maxIdx := SmallestThreeIndex(q)
		require.GreaterOrEqual(t, canon[maxIdx], float32(0))

		a, b, c := SmallestThreeComponents(canon, maxIdx)
		out := SmallestThreeReconstruct(a, b, c, maxIdx)

		maxDelta := float32(0)
		for i := range canon {
			d := absf32(canon[i] - out[i])
			if d > maxDelta {
				maxDelta = d
			}
		}
		require.LessOrEqual(t, float64(maxDelta), 1e-5)
	}
}

func TestSmallestThreeComponentsWithinRange(t *testing.T) {
	q := NormalizeQuat([4]float32{0.1, 0.2, 0.3, 0.9})
	canon, maxIdx := SmallestThreeIndex(q)
	a, b, c := SmallestThreeComponents(canon, maxIdx)
	for _, v := range []float32{a, b, c} {
		require.LessOrEqual(t, math.Abs(float64(v)), SqrtHalf+1e-6)
	}
}
