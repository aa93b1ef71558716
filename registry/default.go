package registry

import (
	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/codec/cply"
	"github.com/gsplatlib/gsplat-core/codec/ksplat"
	"github.com/gsplatlib/gsplat-core/codec/ply"
	"github.com/gsplatlib/gsplat-core/codec/sog"
	"github.com/gsplatlib/gsplat-core/codec/splat"
	"github.com/gsplatlib/gsplat-core/codec/spz"
	"github.com/gsplatlib/gsplat-core/internal/plyheader"
)

// autoDetectPLYReader classifies a PLY buffer by its header and
// dispatches to the plain or compressed reader. It never reads the
// payload itself.
type autoDetectPLYReader struct{}

func (autoDetectPLYReader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	compressed, _, err := plyheader.Classify(data)
	if err != nil {
		return nil, "", gsplat.WrapError("ply", gsplat.KindStructural, err)
	}
	if compressed {
		return cply.Reader{}.Read(data, opts)
	}
	return ply.Reader{}.Read(data, opts)
}

// Default returns a Registry populated with the built-in handlers for
// ply, compressed.ply, splat, ksplat, spz, and sog. The ply reader is
// the auto-detector; the ply writer always emits the plain layout.
func Default() *Registry {
	r := New()
	r.Register([]string{"ply"}, autoDetectPLYReader{}, ply.Writer{})
	r.Register([]string{"compressed.ply"}, cply.Reader{}, cply.Writer{})
	r.Register([]string{"splat"}, splat.Reader{}, splat.Writer{})
	r.Register([]string{"ksplat"}, ksplat.Reader{}, ksplat.Writer{})
	r.Register([]string{"spz"}, spz.Reader{}, spz.Writer{})
	r.Register([]string{"sog"}, sog.Reader{}, sog.Writer{})
	return r
}
