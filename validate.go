package gsplat

import (
	"fmt"
	"math"
)

// Validate checks a GaussianCloudIR's array-length invariants against
// NumPoints and ShDegree, in the fixed field order positions, scales,
// rotations, alphas, colors, sh. It returns the first mismatch found
// as a non-empty message, or "" if the IR is structurally sound.
//
// If strict is true, Validate additionally scans every float array
// for non-finite values and reports the first offense; on a non-strict
// call any returned message should be treated as a warning accompanying
// the IR rather than a hard failure.
func Validate(ir *GaussianCloudIR, strict bool) string {
	n := ir.NumPoints
	if n < 0 {
		return fmt.Sprintf("numPoints must be >= 0, got %d", n)
	}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"positions", len(ir.Positions), 3 * n},
		{"scales", len(ir.Scales), 3 * n},
		{"rotations", len(ir.Rotations), 4 * n},
		{"alphas", len(ir.Alphas), n},
		{"colors", len(ir.Colors), 3 * n},
		{"sh", len(ir.SH), n * ShCoeffsPerPoint(ir.Meta.ShDegree)},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Sprintf("%s: length %d, expected %d", c.name, c.got, c.want)
		}
	}

	switch ir.Meta.ShDegree {
	case 0, 1, 2, 3:
	default:
		return fmt.Sprintf("shDegree: %d, expected 0..3", ir.Meta.ShDegree)
	}

	if !strict {
		return ""
	}

	for _, c := range []struct {
		name string
		arr  []float32
	}{
		{"positions", ir.Positions},
		{"scales", ir.Scales},
		{"rotations", ir.Rotations},
		{"alphas", ir.Alphas},
		{"colors", ir.Colors},
		{"sh", ir.SH},
	} {
		if i := firstNonFinite(c.arr); i >= 0 {
			return fmt.Sprintf("%s[%d]: non-finite value %v", c.name, i, c.arr[i])
		}
	}

	return ""
}

func firstNonFinite(arr []float32) int {
	for i, v := range arr {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}
