package sog

import (
	"encoding/json"

	"github.com/gsplatlib/gsplat-core"
	"github.com/gsplatlib/gsplat-core/internal/webp"
	"github.com/gsplatlib/gsplat-core/internal/zipcontainer"
)

const (
	fileMeansLow      = "means_l.webp"
	fileMeansHigh     = "means_u.webp"
	fileQuats         = "quats.webp"
	fileScales        = "scales.webp"
	fileSH0           = "sh0.webp"
	fileSHNLabels     = "shN_labels.webp"
	fileSHNCentroids  = "shN_centroids.webp"
	fileMeta          = "meta.json"
	metaVersion       = 2
)

// Writer implements gsplat.Writer for the SOG container.
type Writer struct{}

// Write encodes the cloud as a STORED-mode ZIP of lossless-WebP
// textures plus a meta.json side table.
func (Writer) Write(ir *gsplat.GaussianCloudIR, _ gsplat.Options) ([]byte, error) {
	if msg := gsplat.Validate(ir, false); msg != "" {
		return nil, gsplat.NewError(codecName, gsplat.KindSemantic, "%s", msg)
	}

	n := ir.NumPoints
	meta := Meta{Version: metaVersion, Count: n, Antialias: ir.Meta.Antialiased}

	lo, hi, mins, maxs := encodePositions(ir.Positions, n)
	meta.Means = MeansMeta{Mins: mins, Maxs: maxs, Files: [2]string{fileMeansLow, fileMeansHigh}}

	quatImg := encodeQuats(ir.Rotations, n)
	meta.Quats = QuatsMeta{Files: [1]string{fileQuats}}

	scalesImg, scalesCB := encodeScales(ir.Scales, n)
	meta.Scales = CodebookRef{Codebook: scalesCB, Files: [1]string{fileScales}}

	sh0Img, sh0CB := encodeSH0(ir.Colors, ir.Alphas, n)
	meta.SH0 = CodebookRef{Codebook: sh0CB, Files: [1]string{fileSH0}}

	entries := []zipcontainer.Entry{
		{Name: fileMeansLow, Data: webp.Encode(lo)},
		{Name: fileMeansHigh, Data: webp.Encode(hi)},
		{Name: fileQuats, Data: webp.Encode(quatImg)},
		{Name: fileScales, Data: webp.Encode(scalesImg)},
		{Name: fileSH0, Data: webp.Encode(sh0Img)},
	}

	bands := bandsForShDegree(ir.Meta.ShDegree)
	if bands > 0 && len(ir.SH) > 0 {
		shCoeffs := shCoeffsForBands(bands)
		labels, centroids, codebook := encodeSHN(ir.SH, n, shCoeffs)
		meta.ShN = &ShNMeta{
			Count:    n,
			Bands:    bands,
			Codebook: codebook,
			Files:    [2]string{fileSHNLabels, fileSHNCentroids},
		}
		entries = append(entries,
			zipcontainer.Entry{Name: fileSHNLabels, Data: webp.Encode(labels)},
			zipcontainer.Entry{Name: fileSHNCentroids, Data: webp.Encode(centroids)},
		)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, gsplat.WrapError(codecName, gsplat.KindStructural, err)
	}
	entries = append([]zipcontainer.Entry{{Name: fileMeta, Data: metaJSON}}, entries...)

	return zipcontainer.Write(entries), nil
}
