package ksplat

import (
	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/bitutil"
)

func parseMainHeader(data []byte) (mainHeader, error) {
	if len(data) < mainHeaderSize {
		return mainHeader{}, newError(gsplat.KindStructural, "truncated main header: need %d bytes, have %d", mainHeaderSize, len(data))
	}
	var h mainHeader
	h.majorVersion = data[0]
	h.minorVersion = data[1]
	h.maxSections = bitutil.ReadU32LE(data, 4)
	h.numSplats = bitutil.ReadU32LE(data, 16)
	h.compressionMode = CompressionMode(bitutil.ReadU16LE(data, 20))
	h.minHarmonicsValue = bitutil.ReadF32LE(data, 36)
	h.maxHarmonicsValue = bitutil.ReadF32LE(data, 40)
	if h.minHarmonicsValue == 0 {
		h.minHarmonicsValue = -1.5
	}
	if h.maxHarmonicsValue == 0 {
		h.maxHarmonicsValue = 1.5
	}
	return h, nil
}

func writeMainHeader(out []byte, h mainHeader) {
	out[0] = h.majorVersion
	out[1] = h.minorVersion
	bitutil.PutU32LE(out, 4, h.maxSections)
	bitutil.PutU32LE(out, 16, h.numSplats)
	bitutil.PutU16LE(out, 20, uint16(h.compressionMode))
	bitutil.PutF32LE(out, 36, h.minHarmonicsValue)
	bitutil.PutF32LE(out, 40, h.maxHarmonicsValue)
}

func parseSectionHeader(data []byte, off int) (sectionHeader, error) {
	if len(data) < off+sectionHeaderSize {
		return sectionHeader{}, newError(gsplat.KindStructural, "truncated section header at offset %d", off)
	}
	b := data[off:]
	var s sectionHeader
	s.sectionSplatCount = bitutil.ReadU32LE(b, 0)
	s.maxSectionSplats = bitutil.ReadU32LE(b, 4)
	s.bucketCapacity = bitutil.ReadU32LE(b, 8)
	s.bucketCount = bitutil.ReadU32LE(b, 12)
	s.spatialBlockSize = bitutil.ReadF32LE(b, 16)
	s.bucketStorageSize = bitutil.ReadU16LE(b, 20)
	s.quantizationRange = bitutil.ReadU32LE(b, 24)
	s.fullBuckets = bitutil.ReadU32LE(b, 32)
	s.partialBuckets = bitutil.ReadU32LE(b, 36)
	s.harmonicsDegree = bitutil.ReadU16LE(b, 40)
	return s, nil
}

func writeSectionHeader(out []byte, off int, s sectionHeader) {
	b := out[off:]
	bitutil.PutU32LE(b, 0, s.sectionSplatCount)
	bitutil.PutU32LE(b, 4, s.maxSectionSplats)
	bitutil.PutU32LE(b, 8, s.bucketCapacity)
	bitutil.PutU32LE(b, 12, s.bucketCount)
	bitutil.PutF32LE(b, 16, s.spatialBlockSize)
	bitutil.PutU16LE(b, 20, s.bucketStorageSize)
	bitutil.PutU32LE(b, 24, s.quantizationRange)
	bitutil.PutU32LE(b, 32, s.fullBuckets)
	bitutil.PutU32LE(b, 36, s.partialBuckets)
	bitutil.PutU16LE(b, 40, s.harmonicsDegree)
}
