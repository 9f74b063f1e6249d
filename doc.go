// Package mandel renders the Mandelbrot set with a boundary-tracing
// evaluator.
//
// # Overview
//
// A frame maps a pixel grid onto a rectangle of the complex plane and
// colors each pixel by how many iterations of z = z² + c it takes to leave
// the disk of radius 2. Rather than iterating every pixel, the renderer
// splits the grid into horizontal strips and, in each strip, evaluates the
// perimeter and follows color discontinuities inward. Pixels enclosed by a
// traced boundary are filled from their left neighbor without evaluation.
//
// # Quick Start
//
//	import "github.com/gogpu/mandel"
//
//	g, _ := mandel.NewGrid(800, 800)
//	v := mandel.DefaultViewport(800, 800)
//
//	stats, err := mandel.EvaluateFrame(g, v, mandel.DefaultIterations, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := g.ToImage()
//
// For repeated frames, create a [Renderer] once and reuse it; it keeps a
// worker pool and the color table between frames. [Explorer] adds the
// interactive state (viewport, iteration cap) on top of a Renderer and
// applies input only between frames.
//
// # Kernels
//
// The escape-time kernel comes in a scalar form and in 4- and 8-lane forms
// that advance several points in lockstep. All forms produce identical
// counts. [KernelAuto] picks the widest form the CPU handles well.
//
// # Coordinate System
//
//   - Pixel (0,0) is the top-left corner of the grid
//   - x grows to the right, y grows downward
//   - The viewport's Y0 is the top edge, so the imaginary part decreases with y
//
// # Logging
//
// mandel is silent by default. See [SetLogger].
package mandel

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
