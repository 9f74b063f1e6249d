package hud

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Bitmap draws text with the basicfont 7x13 face.
type Bitmap struct {
	face font.Face
}

// NewBitmap returns the fixed 7x13 face.
func NewBitmap() *Bitmap {
	return &Bitmap{face: basicfont.Face7x13}
}

func (b *Bitmap) LineHeight() int { return b.face.Metrics().Height.Ceil() }

func (b *Bitmap) Ascent() int { return b.face.Metrics().Ascent.Ceil() }

func (b *Bitmap) Measure(line string) int { return font.MeasureString(b.face, line).Ceil() }

func (b *Bitmap) Draw(dst draw.Image, x, y int, line string, src image.Image) {
	d := &font.Drawer{Dst: dst, Src: src, Face: b.face, Dot: fixed.P(x, y)}
	d.DrawString(line)
}
