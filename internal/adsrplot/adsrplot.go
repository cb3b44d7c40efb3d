// adsrplot.go - rasterize a rendered ADSR table to a PNG for preset preview

package adsrplot

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Width and Height are the plot's native render size before any
// caller-requested scaling.
const (
	Width  = 800
	Height = 200
)

// Render draws samples (expected to span [0,1] phase, [0,1] value, the
// shape of an internal/adsr RenderedTable) as a single polyline on a
// black background and encodes it as PNG to w. outWidth/outHeight scale
// the native Width x Height canvas via draw.BiLinear; 0 means "use the
// native size".
func Render(samples []float32, outWidth, outHeight int, w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	trace := color.RGBA{R: 80, G: 220, B: 140, A: 255}
	n := len(samples)
	for x := 0; x < Width; x++ {
		ix := x * (n - 1) / (Width - 1)
		if ix < 0 {
			ix = 0
		}
		if ix >= n {
			ix = n - 1
		}
		v := samples[ix]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		y := Height - 1 - int(v*float32(Height-1))
		img.SetRGBA(x, y, trace)
	}

	if outWidth <= 0 || outHeight <= 0 || (outWidth == Width && outHeight == Height) {
		return png.Encode(w, img)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
	return png.Encode(w, scaled)
}
