// Package color maps escape counts to packed ARGB colors.
//
// A Palette is a pure function of the iteration count and the cap. Because
// the evaluator writes a color for every kernel result, palettes are
// expanded once per frame into a LUT indexed by iteration count.
package color

import "image/color"

// Opaque is the alpha byte of every palette color.
const Opaque uint32 = 0xFF << 24

// Palette returns the packed ARGB color for an escape count it in [0, maxIt].
type Palette func(it, maxIt int) uint32

// Ramp is the default polynomial palette. It runs from black at it = 0
// through blue and orange back to black at it = maxIt, so the interior of
// the set is black.
func Ramp(it, maxIt int) uint32 {
	t := float64(it) / float64(maxIt)
	s := 1 - t
	r := uint32(9 * s * t * t * t * 255)
	g := uint32(15 * s * s * t * t * 255)
	b := uint32(8.5 * s * s * s * t * 255)
	return Opaque | r<<16 | g<<8 | b
}

// Grayscale maps escape counts linearly to gray and the interior to black.
func Grayscale(it, maxIt int) uint32 {
	if it >= maxIt {
		return Opaque
	}
	v := uint32(255 * it / maxIt)
	return Opaque | v<<16 | v<<8 | v
}

// ToRGBA unpacks a packed ARGB value.
func ToRGBA(argb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(argb >> 16), //nolint:gosec // G115: byte extraction
		G: uint8(argb >> 8),  //nolint:gosec // G115: byte extraction
		B: uint8(argb),       //nolint:gosec // G115: byte extraction
		A: uint8(argb >> 24), //nolint:gosec // G115: byte extraction
	}
}
