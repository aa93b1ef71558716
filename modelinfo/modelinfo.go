// Package modelinfo summarizes a GaussianCloudIR into bounds,
// per-attribute statistics, and size breakdowns, without mutating or
// retaining the IR it borrows.
package modelinfo

import (
	"fmt"

	"github.com/gsplatlib/gsplat-core"
)

// Bounds is an axis-aligned bounding box over point positions.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Stat holds the min, max, and mean of a flattened float array.
type Stat struct {
	Min  float32
	Max  float32
	Mean float32
}

// AttributeSize reports the byte footprint of one IR field.
type AttributeSize struct {
	Name  string
	Count int
	Bytes int64
}

// Summary is the pure, borrowed-value result of summarizing an IR.
type Summary struct {
	NumPoints    int
	Bounds       Bounds
	Scales       Stat
	Alphas       Stat
	ShDegree     int
	Antialiased  bool
	SourceFormat string
	Handedness   string
	UpAxis       string
	LengthUnit   string
	ColorSpace   string

	Sizes      []AttributeSize
	TotalBytes int64
	Extras     map[string]int64
}

// Summarize computes a Summary over ir. It never mutates ir.
func Summarize(ir *gsplat.GaussianCloudIR) Summary {
	s := Summary{
		NumPoints:    ir.NumPoints,
		ShDegree:     ir.Meta.ShDegree,
		Antialiased:  ir.Meta.Antialiased,
		SourceFormat: ir.Meta.SourceFormat,
		Handedness:   ir.Meta.Handedness,
		UpAxis:       ir.Meta.UpAxis,
		LengthUnit:   ir.Meta.LengthUnit,
		ColorSpace:   ir.Meta.ColorSpace,
		Extras:       make(map[string]int64, len(ir.Extras)),
	}

	s.Bounds = boundsOf(ir.Positions)
	s.Scales = statOf(ir.Scales)
	s.Alphas = statOf(ir.Alphas)

	sizes := []AttributeSize{
		{"positions", len(ir.Positions), byteSize(len(ir.Positions))},
		{"scales", len(ir.Scales), byteSize(len(ir.Scales))},
		{"rotations", len(ir.Rotations), byteSize(len(ir.Rotations))},
		{"alphas", len(ir.Alphas), byteSize(len(ir.Alphas))},
		{"colors", len(ir.Colors), byteSize(len(ir.Colors))},
		{"sh", len(ir.SH), byteSize(len(ir.SH))},
	}

	var total int64
	for _, sz := range sizes {
		total += sz.Bytes
	}
	for name, arr := range ir.Extras {
		b := byteSize(len(arr))
		s.Extras[name] = b
		total += b
	}

	s.Sizes = sizes
	s.TotalBytes = total
	return s
}

func byteSize(count int) int64 {
	return int64(count) * 4
}

func boundsOf(positions []float32) Bounds {
	var b Bounds
	if len(positions) < 3 {
		return b
	}
	b.Min = [3]float32{positions[0], positions[1], positions[2]}
	b.Max = b.Min
	for i := 0; i+2 < len(positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := positions[i+axis]
			if v < b.Min[axis] {
				b.Min[axis] = v
			}
			if v > b.Max[axis] {
				b.Max[axis] = v
			}
		}
	}
	return b
}

func statOf(arr []float32) Stat {
	if len(arr) == 0 {
		return Stat{}
	}
	st := Stat{Min: arr[0], Max: arr[0]}
	var sum float64
	for _, v := range arr {
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
		sum += float64(v)
	}
	st.Mean = float32(sum / float64(len(arr)))
	return st
}

// FormatBytes renders a byte count using base-1024 B/KB/MB/GB
// suffixes. KB, MB and GB values carry two decimal places; counts
// below 1024 are printed as a plain integer ("512 B").
func FormatBytes(n int64) string {
	const unit = 1024.0
	units := []string{"B", "KB", "MB", "GB"}

	f := float64(n)
	idx := 0
	for f >= unit && idx < len(units)-1 {
		f /= unit
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.2f %s", f, units[idx])
}
