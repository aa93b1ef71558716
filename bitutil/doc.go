// Package bitutil centralizes the numeric primitives every codec in
// gsplat/codec/* shares: little-endian scalar readers/writers,
// normalized-integer packing, half-precision float conversion, the
// smallest-three quaternion encoding, and the sigmoid/logit pair used
// for pre-sigmoid opacity. Keeping these in one place means rounding
// and saturation match bit-for-bit across formats.
package bitutil
