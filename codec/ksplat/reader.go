package ksplat

import (
	"math"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

// Reader implements gsplat.Reader for KSPLAT containers.
type Reader struct{}

// Read parses a KSPLAT buffer into an IR, decoding every non-empty
// section and concatenating their splats in section order.
func (Reader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	main, err := parseMainHeader(data)
	if err != nil {
		return nil, "", err
	}
	if main.majorVersion != 0 {
		return nil, "", newError(gsplat.KindVersioning, "unsupported majorVersion %d", main.majorVersion)
	}
	if main.minorVersion < 1 {
		return nil, "", newError(gsplat.KindVersioning, "minorVersion must be >= 1, got %d", main.minorVersion)
	}
	if main.compressionMode > ModeByteSH {
		return nil, "", newError(gsplat.KindVersioning, "unknown compressionMode %d", main.compressionMode)
	}

	ir := &gsplat.GaussianCloudIR{Meta: gsplat.CloudMeta{SourceFormat: codecName}}
	maxDegree := 0

	sectionHeaderBase := mainHeaderSize
	payloadBase := mainHeaderSize + int(main.maxSections)*sectionHeaderSize
	cursor := payloadBase

	for s := 0; s < int(main.maxSections); s++ {
		sh, err := parseSectionHeader(data, sectionHeaderBase+s*sectionHeaderSize)
		if err != nil {
			return nil, "", err
		}

		shCount := 0
		if int(sh.harmonicsDegree) < len(HarmonicsComponentCount) {
			shCount = HarmonicsComponentCount[sh.harmonicsDegree]
		}
		recSize := splatRecordSize(main.compressionMode, shCount)

		bucketComponentSize := int(sh.bucketStorageSize)
		if bucketComponentSize == 0 {
			bucketComponentSize = 4
		}
		partialBytes := int(sh.partialBuckets) * 4
		bucketBytes := int(sh.bucketCount) * 3 * bucketComponentSize
		splatBytes := int(sh.maxSectionSplats) * recSize

		if int(sh.sectionSplatCount) > 0 {
			wantSum := int(sh.fullBuckets) * int(sh.bucketCapacity)
			partialSizes := make([]int, sh.partialBuckets)
			for i := range partialSizes {
				partialSizes[i] = int(bitutil.ReadU32LE(data, cursor+i*4))
				wantSum += partialSizes[i]
			}
			if sh.bucketCount > 0 && wantSum != int(sh.sectionSplatCount) {
				return nil, "", newError(gsplat.KindSemantic, "section %d: full+partial bucket sizes sum to %d, want %d", s, wantSum, sh.sectionSplatCount)
			}

			centers := make([][3]float32, sh.bucketCount)
			centerOff := cursor + partialBytes
			for b := range centers {
				for a := 0; a < 3; a++ {
					off := centerOff + (b*3+a)*bucketComponentSize
					if bucketComponentSize == 2 {
						centers[b][a] = bitutil.HalfToFloat32(bitutil.ReadU16LE(data, off))
					} else {
						centers[b][a] = bitutil.ReadF32LE(data, off)
					}
				}
			}

			splatOff := cursor + partialBytes + bucketBytes
			if len(data) < splatOff+int(sh.sectionSplatCount)*recSize {
				return nil, "", newError(gsplat.KindStructural, "section %d: truncated splat payload", s)
			}

			shPerPoint := shCount
			base := ir.NumPoints
			ir.NumPoints += int(sh.sectionSplatCount)
			ir.Positions = append(ir.Positions, make([]float32, 3*int(sh.sectionSplatCount))...)
			ir.Scales = append(ir.Scales, make([]float32, 3*int(sh.sectionSplatCount))...)
			ir.Rotations = append(ir.Rotations, make([]float32, 4*int(sh.sectionSplatCount))...)
			ir.Alphas = append(ir.Alphas, make([]float32, int(sh.sectionSplatCount))...)
			ir.Colors = append(ir.Colors, make([]float32, 3*int(sh.sectionSplatCount))...)
			if shCount > 0 {
				if ir.SH == nil && base > 0 {
					ir.SH = make([]float32, base*shCount)
				}
				ir.SH = append(ir.SH, make([]float32, int(sh.sectionSplatCount)*shCount)...)
			}

			for i := 0; i < int(sh.sectionSplatCount); i++ {
				rec := data[splatOff+i*recSize : splatOff+(i+1)*recSize]
				var center [3]float32
				if sh.bucketCount > 0 {
					bi := bucketIndex(i, int(sh.fullBuckets), int(sh.bucketCapacity), partialSizes)
					if bi < len(centers) {
						center = centers[bi]
					}
				}
				qRange := sh.quantizationRange
				if qRange == 0 {
					qRange = 1
				}
				pos, scale, rot, rgba, coeffs := decodeSplat(rec, main.compressionMode, shCount, center, sh.spatialBlockSize, qRange, main.minHarmonicsValue, main.maxHarmonicsValue)

				n := base + i
				ir.Positions[3*n+0], ir.Positions[3*n+1], ir.Positions[3*n+2] = pos[0], pos[1], pos[2]
				for a := 0; a < 3; a++ {
					if scale[a] > 0 {
						ir.Scales[3*n+a] = logScale(scale[a])
					} else {
						ir.Scales[3*n+a] = -10.0
					}
				}
				norm := bitutil.NormalizeQuat(rot)
				ir.Rotations[4*n+0], ir.Rotations[4*n+1], ir.Rotations[4*n+2], ir.Rotations[4*n+3] = norm[0], norm[1], norm[2], norm[3]
				ir.Colors[3*n+0] = (float32(rgba[0])/255 - 0.5) / gsplat.SHC0
				ir.Colors[3*n+1] = (float32(rgba[1])/255 - 0.5) / gsplat.SHC0
				ir.Colors[3*n+2] = (float32(rgba[2])/255 - 0.5) / gsplat.SHC0
				ir.Alphas[n] = bitutil.Logit(float32(rgba[3])/255, 0.001)

				// On disk SH is channel-major; the IR wants
				// coefficient-major interleaved RGB.
				dim := shPerPoint / 3
				for j := 0; j < dim; j++ {
					for c := 0; c < 3; c++ {
						ir.SH[n*shCount+j*3+c] = coeffs[c*dim+j]
					}
				}
			}

			if int(sh.harmonicsDegree) > maxDegree {
				maxDegree = int(sh.harmonicsDegree)
			}
		}

		cursor += partialBytes + bucketBytes + splatBytes
	}

	ir.Meta.ShDegree = maxDegree

	warning := ""
	if opts.Strict {
		if msg := gsplat.Validate(ir, true); msg != "" {
			return nil, "", newError(gsplat.KindSemantic, "%s", msg)
		}
	} else if msg := gsplat.Validate(ir, false); msg != "" {
		warning = msg
	}

	return ir, warning, nil
}

func logScale(lin float32) float32 {
	return float32(math.Log(float64(lin)))
}
