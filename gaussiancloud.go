package gsplat

// SHC0 is the zeroth-order spherical-harmonics basis constant used to
// convert between SH-0 coefficients and 0-1 RGB: rgb = color*SHC0 + 0.5.
const SHC0 = 0.28209479177387814

// HarmonicsComponentCount gives the total number of higher-order SH
// coefficients per point, summed over the three color channels, for a
// given degree (0..3).
var HarmonicsComponentCount = [4]int{0, 9, 24, 45}

// ShCoeffsPerPoint returns the total number of higher-order SH floats
// stored per point (all channels) for a given degree: 0 for degree<=0,
// else ((degree+1)^2 - 1) * 3.
func ShCoeffsPerPoint(degree int) int {
	if degree <= 0 {
		return 0
	}
	n := (degree+1)*(degree+1) - 1
	return n * 3
}

// CloudMeta carries side information about a GaussianCloudIR that
// does not participate in the per-point arrays: SH degree, the
// antialiasing flag carried by some formats, the format a cloud was
// read from, and an optional set of conventions declared by some
// source formats but not enforced by the IR itself.
type CloudMeta struct {
	ShDegree     int
	Antialiased  bool
	SourceFormat string

	// Optional conventions, preserved when a source format declares
	// them; codecs that don't understand a convention leave it zero.
	Handedness string // "right" | "left" | ""
	UpAxis     string // "y" | "z" | ""
	LengthUnit string // e.g. "meters" | ""
	ColorSpace string // e.g. "srgb" | "linear" | ""
}

// GaussianCloudIR is the structure-of-arrays intermediate
// representation every codec reads from and writes to.
//
// Quaternion storage order is always [w, x, y, z] regardless of what
// the on-disk format uses. Colors are SH-0 coefficients, not 0-1 RGB.
// Alphas are pre-sigmoid (logit). Scales are log-space per-axis
// standard deviations. Higher-order SH is interleaved-RGB per
// coefficient, ordered by ascending band: sh[i*K + j*3 + c] is
// coefficient j, channel c, point i.
type GaussianCloudIR struct {
	NumPoints int

	Positions []float32 // 3*N
	Scales    []float32 // 3*N, log space
	Rotations []float32 // 4*N, [w,x,y,z]
	Alphas    []float32 // N, pre-sigmoid
	Colors    []float32 // 3*N, SH-0 coefficients
	SH        []float32 // N * ShCoeffsPerPoint(meta.ShDegree)

	Extras map[string][]float32

	Meta CloudMeta
}

// ColorToRGB converts an SH-0 coefficient to an 8-bit-displayable
// 0-1 RGB channel value, clamped.
func ColorToRGB(c float32) float32 {
	v := c*SHC0 + 0.5
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RGBToColor is the inverse of ColorToRGB.
func RGBToColor(rgb float32) float32 {
	return (rgb - 0.5) / SHC0
}
