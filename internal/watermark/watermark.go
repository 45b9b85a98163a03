// Package watermark overlays a visible preview mark on generated portraits.
// The transform is a pure function: no I/O, deterministic for a given input,
// and the input buffer is never mutated.
package watermark

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

const (
	markText    = "fotofocinho · preview"
	jpegQuality = 85
)

// Apply decodes a JPEG, PNG or WebP image, tiles a semi-transparent text
// mark across it and re-encodes the result as JPEG. The mark makes the
// public preview visibly different from the clean deliverable.
func Apply(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)

	stamp := renderStamp(markText)
	scaled := scaleStamp(stamp, canvas.Bounds().Dx())
	tileStamp(canvas, scaled)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode watermarked image: %w", err)
	}

	return buf.Bytes(), nil
}

// renderStamp draws the mark text in white at 60% opacity onto a
// transparent background, sized to the basicfont metrics.
func renderStamp(text string) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, width+2, height+2))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 153}),
		Face: face,
		Dot:  fixed.P(1, face.Metrics().Ascent.Ceil()+1),
	}
	drawer.DrawString(text)

	return img
}

// scaleStamp scales the rendered text to roughly a third of the target
// image width so the mark stays legible at any resolution.
func scaleStamp(stamp *image.RGBA, imageWidth int) *image.RGBA {
	targetWidth := imageWidth / 3
	if targetWidth < stamp.Bounds().Dx() {
		targetWidth = stamp.Bounds().Dx()
	}
	targetHeight := targetWidth * stamp.Bounds().Dy() / stamp.Bounds().Dx()

	scaled := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), stamp, stamp.Bounds(), xdraw.Over, nil)
	return scaled
}

// tileStamp lays the stamp out in a brick pattern across the whole canvas.
func tileStamp(canvas *image.RGBA, stamp *image.RGBA) {
	stampW := stamp.Bounds().Dx()
	stampH := stamp.Bounds().Dy()
	stepX := stampW + stampW/2
	stepY := stampH * 4

	row := 0
	for y := stampH; y < canvas.Bounds().Dy(); y += stepY {
		offset := 0
		if row%2 == 1 {
			offset = stepX / 2
		}
		for x := -offset; x < canvas.Bounds().Dx(); x += stepX {
			target := image.Rect(x, y, x+stampW, y+stampH)
			draw.Draw(canvas, target, stamp, image.Point{}, draw.Over)
		}
		row++
	}
}
