package ksplat

import "github.com/gsplatlib/gsplat-core"

// Writer implements gsplat.Writer for KSPLAT containers. It always
// emits a single mode-0 section with identity bucketing; this is the
// one supported shape described for the writer side.
type Writer struct{}

// Write serializes an IR to a KSPLAT buffer.
func (Writer) Write(ir *gsplat.GaussianCloudIR, _ gsplat.Options) ([]byte, error) {
	if msg := gsplat.Validate(ir, false); msg != "" {
		return nil, newError(gsplat.KindSemantic, "%s", msg)
	}

	n := ir.NumPoints
	shCount := 0
	if ir.Meta.ShDegree >= 0 && ir.Meta.ShDegree < len(HarmonicsComponentCount) {
		shCount = HarmonicsComponentCount[ir.Meta.ShDegree]
	}
	shPerPoint := shCount
	recSize := splatRecordSize(ModeFull, shCount)

	main := mainHeader{
		majorVersion:      0,
		minorVersion:      1,
		maxSections:       1,
		numSplats:         uint32(n),
		compressionMode:   ModeFull,
		minHarmonicsValue: -1.5,
		maxHarmonicsValue: 1.5,
	}
	section := sectionHeader{
		sectionSplatCount: uint32(n),
		maxSectionSplats:  uint32(n),
		bucketCapacity:    0,
		bucketCount:       0,
		spatialBlockSize:  1.0,
		bucketStorageSize: 4,
		quantizationRange: 1,
		fullBuckets:       0,
		partialBuckets:    0,
		harmonicsDegree:   uint16(ir.Meta.ShDegree),
	}

	total := mainHeaderSize + sectionHeaderSize + n*recSize
	out := make([]byte, total)
	writeMainHeader(out, main)
	writeSectionHeader(out, mainHeaderSize, section)

	payloadOff := mainHeaderSize + sectionHeaderSize
	for i := 0; i < n; i++ {
		rec := out[payloadOff+i*recSize : payloadOff+(i+1)*recSize]
		encodeSplatMode0(rec, ir, i, shCount, shPerPoint)
	}

	return out, nil
}
