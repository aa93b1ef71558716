// Package gsplat implements the core of a Gaussian Splatting
// format-conversion library.
//
// It defines a single in-memory intermediate representation,
// GaussianCloudIR, and a family of codecs that read and write six
// on-disk formats to and from it: ply, compressed.ply, splat, ksplat,
// spz, and sog. Every codec is a pure function over a byte buffer; the
// package performs no file I/O, rendering, or GPU upload.
//
// # Data flow
//
//	bytes_in -> reader(ext_in) -> GaussianCloudIR -> [Validate] -> writer(ext_out) -> bytes_out
//
// # Numeric conventions
//
// Quaternions are always stored [w, x, y, z] in the IR, regardless of
// the on-disk order; codecs translate at the boundary. Colors are SH-0
// coefficients (not 0-1 RGB); alpha is stored pre-sigmoid (logit).
// Scales are stored in log space. See GaussianCloudIR for the full
// field table.
//
// Concrete codecs live in the codec/ subpackages; gsplat/registry maps
// a file extension to the appropriate reader and writer.
package gsplat
