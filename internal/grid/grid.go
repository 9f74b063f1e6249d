// Package grid holds the per-frame pixel state shared by the strip
// evaluators: a packed ARGB color buffer and a parallel status bitset.
//
// Strips own disjoint row ranges of one Grid. Nothing in this package
// locks; concurrent writers must stay within their own rows.
package grid

import (
	"errors"
	"image"
	"image/color"

	icolor "github.com/gogpu/mandel/internal/color"
)

// ErrInvalidDimensions is returned when width or height is non-positive.
var ErrInvalidDimensions = errors.New("grid: invalid dimensions")

// Status is a per-pixel flag set. Flags are only ever set during a frame and
// cleared when a strip starts its next evaluation.
type Status uint8

const (
	// Calculated means the pixel was submitted to the kernel. Its color is
	// valid once the evaluator's pending batch is flushed.
	Calculated Status = 1 << iota

	// Scanned means the pixel entered the scan queue. Scanned implies
	// Calculated.
	Scanned
)

// Has reports whether all flags in f are set.
func (s Status) Has(f Status) bool {
	return s&f == f
}

// Grid is a width×height frame buffer in row-major order.
type Grid struct {
	width  int
	height int
	color  []uint32
	status []Status
}

// New allocates a grid. All pixels start transparent black with no flags.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	n := width * height
	return &Grid{
		width:  width,
		height: height,
		color:  make([]uint32, n),
		status: make([]Status, n),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns width·height.
func (g *Grid) Len() int { return len(g.color) }

// Index returns the flat index of pixel (x, y).
func (g *Grid) Index(x, y int) int { return y*g.width + x }

// Color returns the packed ARGB color at index i.
func (g *Grid) Color(i int) uint32 { return g.color[i] }

// SetColor stores a packed ARGB color at index i.
func (g *Grid) SetColor(i int, c uint32) { g.color[i] = c }

// Status returns the flags at index i.
func (g *Grid) Status(i int) Status { return g.status[i] }

// Mark sets flag f at index i. It returns false, without changing anything,
// if f was already set.
func (g *Grid) Mark(i int, f Status) bool {
	if g.status[i]&f != 0 {
		return false
	}
	g.status[i] |= f
	return true
}

// ResetRows clears every flag in rows [first, last].
func (g *Grid) ResetRows(first, last int) {
	clear(g.status[first*g.width : (last+1)*g.width])
}

// Colors returns the color buffer. The slice aliases the grid.
func (g *Grid) Colors() []uint32 { return g.color }

// Fill sets every pixel to c and clears all flags.
func (g *Grid) Fill(c uint32) {
	for i := range g.color {
		g.color[i] = c
	}
	clear(g.status)
}

// CopyTo writes the grid into dst, which must be at least as large.
func (g *Grid) CopyTo(dst *image.RGBA) {
	for y := 0; y < g.height; y++ {
		row := dst.Pix[y*dst.Stride:]
		src := g.color[y*g.width : (y+1)*g.width]
		for x, c := range src {
			o := x * 4
			row[o+0] = uint8(c >> 16) //nolint:gosec // G115: byte extraction
			row[o+1] = uint8(c >> 8)  //nolint:gosec // G115: byte extraction
			row[o+2] = uint8(c)       //nolint:gosec // G115: byte extraction
			row[o+3] = uint8(c >> 24) //nolint:gosec // G115: byte extraction
		}
	}
}

// ToImage converts the grid to a new image.RGBA.
func (g *Grid) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	g.CopyTo(img)
	return img
}

// At implements the image.Image interface.
func (g *Grid) At(x, y int) color.Color {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return color.RGBA{}
	}
	return icolor.ToRGBA(g.color[g.Index(x, y)])
}

// Bounds implements the image.Image interface.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// ColorModel implements the image.Image interface.
func (g *Grid) ColorModel() color.Model {
	return color.RGBAModel
}

// Plane maps pixel positions to complex-plane coordinates:
// cr = X0 + x·DX and ci = Y0 − y·DY.
type Plane struct {
	X0, Y0 float64
	DX, DY float64
}

// Point returns the coordinate of pixel (x, y).
func (p Plane) Point(x, y int) (cr, ci float64) {
	return p.X0 + float64(x)*p.DX, p.Y0 - float64(y)*p.DY
}

// PointAt returns the coordinate of flat index i in a grid of the given width.
func (p Plane) PointAt(i, width int) (cr, ci float64) {
	return p.Point(i%width, i/width)
}
