package ksplat

import (
	"math"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

// splatRecordSize returns the per-splat byte stride for the given
// compression mode and number of higher-order SH coefficients.
func splatRecordSize(mode CompressionMode, shCount int) int {
	switch mode {
	case ModeFull:
		return 12 + 12 + 16 + 4 + shCount*4
	case ModeHalf:
		return 6 + 6 + 8 + 4 + shCount*2
	case ModeByteSH:
		return 6 + 6 + 8 + 4 + shCount
	default:
		return 0
	}
}

// bucketIndex resolves splat index i to its bucket, honoring the
// fixed-size run of full buckets followed by variably-sized partial
// buckets whose per-bucket sizes are read in order as the cursor
// advances past the full-bucket range.
func bucketIndex(i int, fullBuckets, bucketCapacity int, partialSizes []int) int {
	fullCount := fullBuckets * bucketCapacity
	if i < fullCount {
		return i / bucketCapacity
	}
	rem := i - fullCount
	idx := fullBuckets
	for _, sz := range partialSizes {
		if rem < sz {
			return idx
		}
		rem -= sz
		idx++
	}
	return idx
}

// decodeSplat reads one splat record at rec, dequantizing position
// against the supplied bucket center, and returns IR-shaped fields.
func decodeSplat(rec []byte, mode CompressionMode, shCount int, bucketCenter [3]float32, spatialBlockSize float32, quantizationRange uint32, minHarm, maxHarm float32) (pos, scale [3]float32, rot [4]float32, rgba [4]byte, sh []float32) {
	switch mode {
	case ModeFull:
		for a := 0; a < 3; a++ {
			pos[a] = bitutil.ReadF32LE(rec, a*4)
			scale[a] = bitutil.ReadF32LE(rec, 12+a*4)
		}
		for c := 0; c < 4; c++ {
			rot[c] = bitutil.ReadF32LE(rec, 24+c*4)
		}
		copy(rgba[:], rec[40:44])
		sh = make([]float32, shCount)
		for j := 0; j < shCount; j++ {
			sh[j] = bitutil.ReadF32LE(rec, 44+j*4)
		}

	case ModeHalf:
		halfRange := float32(quantizationRange)
		for a := 0; a < 3; a++ {
			q := bitutil.ReadU16LE(rec, a*2)
			pos[a] = (float32(q)-halfRange)*(spatialBlockSize/(2*halfRange)) + bucketCenter[a]
			scale[a] = bitutil.HalfToFloat32(bitutil.ReadU16LE(rec, 6+a*2))
		}
		for c := 0; c < 4; c++ {
			rot[c] = bitutil.HalfToFloat32(bitutil.ReadU16LE(rec, 12+c*2))
		}
		copy(rgba[:], rec[20:24])
		sh = make([]float32, shCount)
		for j := 0; j < shCount; j++ {
			sh[j] = bitutil.HalfToFloat32(bitutil.ReadU16LE(rec, 24+j*2))
		}

	case ModeByteSH:
		halfRange := float32(quantizationRange)
		for a := 0; a < 3; a++ {
			q := bitutil.ReadU16LE(rec, a*2)
			pos[a] = (float32(q)-halfRange)*(spatialBlockSize/(2*halfRange)) + bucketCenter[a]
			scale[a] = bitutil.HalfToFloat32(bitutil.ReadU16LE(rec, 6+a*2))
		}
		for c := 0; c < 4; c++ {
			rot[c] = bitutil.HalfToFloat32(bitutil.ReadU16LE(rec, 12+c*2))
		}
		copy(rgba[:], rec[20:24])
		sh = make([]float32, shCount)
		for j := 0; j < shCount; j++ {
			t := float32(rec[24+j]) / 255
			sh[j] = minHarm + t*(maxHarm-minHarm)
		}
	}
	return
}

// encodeSplatMode0 writes one mode-0 (full precision) splat record.
func encodeSplatMode0(rec []byte, ir *gsplat.GaussianCloudIR, i, shCount, shPerPoint int) {
	for a := 0; a < 3; a++ {
		bitutil.PutF32LE(rec, a*4, ir.Positions[3*i+a])
		lin := float32(math.Exp(float64(ir.Scales[3*i+a])))
		bitutil.PutF32LE(rec, 12+a*4, lin)
	}
	for c := 0; c < 4; c++ {
		bitutil.PutF32LE(rec, 24+c*4, ir.Rotations[4*i+c])
	}
	rec[40] = saturateByte(ir.Colors[3*i+0]*gsplat.SHC0 + 0.5)
	rec[41] = saturateByte(ir.Colors[3*i+1]*gsplat.SHC0 + 0.5)
	rec[42] = saturateByte(ir.Colors[3*i+2]*gsplat.SHC0 + 0.5)
	rec[43] = saturateByte(bitutil.Sigmoid(ir.Alphas[i]))

	channelMajorIntoF32(rec[44:], ir.SH, i, shCount, shPerPoint)
}

func channelMajorIntoF32(dst []byte, sh []float32, i, shCount, shPerPoint int) {
	if shCount == 0 {
		return
	}
	dim := shCount / 3
	for c := 0; c < 3; c++ {
		for j := 0; j < dim; j++ {
			v := sh[i*shPerPoint+j*3+c]
			bitutil.PutF32LE(dst, (c*dim+j)*4, v)
		}
	}
}

func saturateByte(v float32) byte {
	r := bitutil.PackUnorm(v, 8)
	if r > 255 {
		r = 255
	}
	return byte(r)
}
