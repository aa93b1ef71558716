package webp

import (
	"bytes"
	"fmt"

	"golang.org/x/image/webp"
)

// Decode reads a lossless RGBA WebP image via the real x/image/webp
// decoder and flattens it to an Image.
func Decode(data []byte) (Image, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("webp: decode: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			out.Pix[i+0] = byte(r >> 8)
			out.Pix[i+1] = byte(g >> 8)
			out.Pix[i+2] = byte(b >> 8)
			out.Pix[i+3] = byte(a >> 8)
		}
	}
	return out, nil
}
