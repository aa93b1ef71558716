package sog

import (
	"encoding/json"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/internal/webp"
	"github.com/gsplatlib/gsplat-core/internal/zipcontainer"
)

// Reader implements gsplat.Reader for the SOG container.
type Reader struct{}

// Read decodes a STORED-mode ZIP of lossless-WebP textures plus a
// meta.json side table back into a GaussianCloudIR.
func (Reader) Read(data []byte, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	entries, err := zipcontainer.Read(data)
	if err != nil {
		return nil, "", gsplat.WrapError(codecName, gsplat.KindStructural, err)
	}
	byName := make(map[string][]byte, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.Data
	}

	metaRaw, ok := byName[fileMeta]
	if !ok {
		return nil, "", gsplat.NewError(codecName, gsplat.KindStructural, "missing %s", fileMeta)
	}
	var meta Meta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, "", gsplat.WrapError(codecName, gsplat.KindStructural, err)
	}
	if meta.Version < 2 {
		return nil, "", gsplat.NewError(codecName, gsplat.KindVersioning, "version %d not supported, want >= 2", meta.Version)
	}
	n := meta.Count

	decodeNamed := func(name string) (webp.Image, error) {
		raw, ok := byName[name]
		if !ok {
			return webp.Image{}, gsplat.NewError(codecName, gsplat.KindStructural, "missing %s", name)
		}
		img, err := webp.Decode(raw)
		if err != nil {
			return webp.Image{}, gsplat.WrapError(codecName, gsplat.KindDependency, err)
		}
		return img, nil
	}

	lo, err := decodeNamed(meta.Means.Files[0])
	if err != nil {
		return nil, "", err
	}
	hi, err := decodeNamed(meta.Means.Files[1])
	if err != nil {
		return nil, "", err
	}
	quatImg, err := decodeNamed(meta.Quats.Files[0])
	if err != nil {
		return nil, "", err
	}
	scalesImg, err := decodeNamed(meta.Scales.Files[0])
	if err != nil {
		return nil, "", err
	}
	sh0Img, err := decodeNamed(meta.SH0.Files[0])
	if err != nil {
		return nil, "", err
	}

	positions := decodePositions(lo, hi, n, meta.Means.Mins, meta.Means.Maxs)
	rotations := decodeQuats(quatImg, n)
	scales := decodeScales(scalesImg, n, meta.Scales.Codebook)
	colors, alphas := decodeSH0(sh0Img, n, meta.SH0.Codebook)

	ir := &gsplat.GaussianCloudIR{
		NumPoints: n,
		Positions: positions,
		Scales:    scales,
		Rotations: rotations,
		Colors:    colors,
		Alphas:    alphas,
		Meta: gsplat.CloudMeta{
			Antialiased:  meta.Antialias,
			SourceFormat: codecName,
			Handedness:   "right",
			UpAxis:       "y",
			ColorSpace:   "linear",
		},
	}

	if meta.ShN != nil {
		labels, err := decodeNamed(meta.ShN.Files[0])
		if err != nil {
			return nil, "", err
		}
		centroids, err := decodeNamed(meta.ShN.Files[1])
		if err != nil {
			return nil, "", err
		}
		shCoeffs := shCoeffsForBands(meta.ShN.Bands)
		ir.SH = decodeSHN(labels, centroids, n, shCoeffs, meta.ShN.Codebook)
		ir.Meta.ShDegree = meta.ShN.Bands
	}

	warning := ""
	if opts.Strict {
		if msg := gsplat.Validate(ir, true); msg != "" {
			return nil, "", gsplat.NewError(codecName, gsplat.KindSemantic, "%s", msg)
		}
	} else if msg := gsplat.Validate(ir, false); msg != "" {
		warning = msg
	}

	return ir, warning, nil
}
