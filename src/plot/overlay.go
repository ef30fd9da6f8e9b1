package plot

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// blank returns a plain dark canvas of the given size.
func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}

// drawNotice writes text centred on a copy of img, over a translucent box.
func drawNotice(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), Face: face}
	tw := dr.MeasureString(text).Ceil()
	asc := face.Metrics().Ascent.Ceil()
	x := b.Min.X + (b.Dx()-tw)/2
	y := b.Min.Y + (b.Dy()+asc)/2

	const pad = 6
	bg := image.NewUniform(color.RGBA{A: 200})
	draw.Draw(rgba, image.Rect(x-pad, y-asc-pad, x+tw+pad, y+pad), bg, image.Point{}, draw.Over)

	shadow := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{A: 180}), Face: face, Dot: fixed.P(x+1, y+1)}
	shadow.DrawString(text)
	dr.Dot = fixed.P(x, y)
	dr.DrawString(text)
	return rgba
}
