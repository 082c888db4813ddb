package ocr

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// Prepare converts img to grayscale and, when it has more than maxPixels
// pixels, scales it down to fit. It returns the prepared image and the scale
// factor applied (prepared size / original size). maxPixels <= 0 disables
// scaling.
func Prepare(img image.Image, maxPixels int) (*image.Gray, float64) {
	b := img.Bounds()
	scale := 1.0
	if n := b.Dx() * b.Dy(); maxPixels > 0 && n > maxPixels {
		scale = math.Sqrt(float64(maxPixels) / float64(n))
	}

	w := int(math.Max(1, math.Round(float64(b.Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*scale)))
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return dst, scale
}

// EncodePNG encodes img as an uncompressed PNG, the fastest form for the
// engine to ingest.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unscale maps a box from prepared-image pixels back to original pixels.
func unscale(r image.Rectangle, scale float64) image.Rectangle {
	if scale == 1 || scale <= 0 {
		return r
	}
	f := func(v int) int { return int(math.Round(float64(v) / scale)) }
	return image.Rect(f(r.Min.X), f(r.Min.Y), f(r.Max.X), f(r.Max.Y))
}
