// Package ksplat implements the KSPLAT container codec: a fixed-size
// main header, a fixed-size array of section headers, and per-section
// splat payloads under one of three compression modes.
package ksplat

import "github.com/gsplatlib/gsplat-core"

const codecName = "ksplat"

const (
	mainHeaderSize    = 4096
	sectionHeaderSize = 1024
)

// HarmonicsComponentCount mirrors §3's per-degree coefficient counts.
var HarmonicsComponentCount = [4]int{0, 9, 24, 45}

// CompressionMode selects the on-disk byte layout of a splat record.
type CompressionMode uint16

const (
	ModeFull    CompressionMode = 0
	ModeHalf    CompressionMode = 1
	ModeByteSH  CompressionMode = 2
)

type mainHeader struct {
	majorVersion, minorVersion uint8
	maxSections                uint32
	numSplats                  uint32
	compressionMode            CompressionMode
	minHarmonicsValue          float32
	maxHarmonicsValue          float32
}

type sectionHeader struct {
	sectionSplatCount uint32
	maxSectionSplats  uint32
	bucketCapacity    uint32
	bucketCount       uint32
	spatialBlockSize  float32
	bucketStorageSize uint16
	quantizationRange uint32
	fullBuckets       uint32
	partialBuckets    uint32
	harmonicsDegree   uint16
}

func newError(kind gsplat.ErrorKind, format string, args ...any) error {
	return gsplat.NewError(codecName, kind, format, args...)
}
