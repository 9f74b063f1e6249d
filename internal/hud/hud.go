// Package hud draws a text overlay onto rendered frames.
//
// Two faces are provided: Bitmap, the fixed 7x13 face from basicfont, and
// Outline, which shapes lines with go-text/typesetting and rasterizes the
// glyph outlines with anti-aliasing.
package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Text draws single lines of text.
type Text interface {
	// LineHeight is the distance between baselines in pixels.
	LineHeight() int

	// Ascent is the distance from the top of a line to its baseline.
	Ascent() int

	// Measure returns the advance width of line in pixels.
	Measure(line string) int

	// Draw paints line with its baseline starting at (x, y).
	Draw(dst draw.Image, x, y int, line string, src image.Image)
}

const (
	margin  = 8
	padding = 6
)

// shade is the panel background: black at about 60% coverage.
var shade = image.NewUniform(color.RGBA{A: 0xA0})

// Panel draws lines in a translucent box at the top-left corner of dst and
// returns the box. Nothing is drawn for no lines.
func Panel(dst draw.Image, t Text, lines []string) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}

	w := 0
	for _, l := range lines {
		w = max(w, t.Measure(l))
	}
	lh := t.LineHeight()
	box := image.Rect(margin, margin, margin+2*padding+w, margin+2*padding+len(lines)*lh)
	box = box.Add(dst.Bounds().Min).Intersect(dst.Bounds())
	if box.Empty() {
		return box
	}

	draw.Draw(dst, box, shade, image.Point{}, draw.Over)
	for i, l := range lines {
		t.Draw(dst, box.Min.X+padding, box.Min.Y+padding+i*lh+t.Ascent(), l, image.White)
	}
	return box
}
