package mandel

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/mandel/internal/grid"
)

// ErrInvalidViewport is returned for a viewport with non-finite or
// degenerate bounds.
var ErrInvalidViewport = errors.New("mandel: invalid viewport")

// zoomFactor is the fraction of the extent one zoom step removes or adds.
const zoomFactor = 0.1

// Viewport is the rectangle of the complex plane mapped onto the grid.
// X0 and X1 are the real parts of the left and right edges; Y0 and Y1 are
// the imaginary parts of the top and bottom edges, so Y0 > Y1.
type Viewport struct {
	X0, Y0, X1, Y1 float64
}

// DefaultViewport returns the initial view for a width×height grid: the real
// axis spans [-2, 2] and the imaginary axis starts at 2 and keeps the pixel
// aspect square.
func DefaultViewport(width, height int) Viewport {
	return Viewport{
		X0: -2,
		Y0: 2,
		X1: 2,
		Y1: 2 - 4*float64(height)/float64(width),
	}
}

// Width returns the real extent X1 - X0.
func (v Viewport) Width() float64 { return v.X1 - v.X0 }

// Height returns the imaginary extent Y0 - Y1.
func (v Viewport) Height() float64 { return v.Y0 - v.Y1 }

// Step returns the distance between adjacent pixel centers on a
// width×height grid.
func (v Viewport) Step(width, height int) (dx, dy float64) {
	return v.Width() / float64(width), v.Height() / float64(height)
}

// Plane returns the pixel-to-plane mapping for a width×height grid.
func (v Viewport) Plane(width, height int) grid.Plane {
	dx, dy := v.Step(width, height)
	return grid.Plane{X0: v.X0, Y0: v.Y0, DX: dx, DY: dy}
}

// Validate reports whether every bound is finite and the extent is
// positive along both axes.
func (v Viewport) Validate() error {
	for _, f := range [...]float64{v.X0, v.Y0, v.X1, v.Y1} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrInvalidViewport, v)
		}
	}
	if !(v.X1 > v.X0) || !(v.Y0 > v.Y1) {
		return fmt.Errorf("%w: empty extent in %+v", ErrInvalidViewport, v)
	}
	return nil
}

// ZoomAt shrinks (in) or grows the viewport by a tenth of its extent,
// keeping the point at fraction (fx, fy) of the view in place. fx runs left
// to right and fy top to bottom, both in [0, 1].
func (v Viewport) ZoomAt(fx, fy float64, in bool) Viewport {
	dx := v.Width() * zoomFactor
	dy := v.Height() * zoomFactor
	if !in {
		dx, dy = -dx, -dy
	}
	return Viewport{
		X0: v.X0 + fx*dx,
		X1: v.X1 - (1-fx)*dx,
		Y0: v.Y0 - fy*dy,
		Y1: v.Y1 + (1-fy)*dy,
	}
}

// Pan moves the viewport by fractions of its extent. Positive fx moves the
// view right and positive fy moves it down.
func (v Viewport) Pan(fx, fy float64) Viewport {
	dx := v.Width() * fx
	dy := v.Height() * fy
	return Viewport{
		X0: v.X0 + dx,
		X1: v.X1 + dx,
		Y0: v.Y0 - dy,
		Y1: v.Y1 - dy,
	}
}

// Iteration cap defaults and limits.
const (
	// DefaultIterations is the initial iteration cap.
	DefaultIterations = 100

	// IterationStep is how much Raise and Lower change the cap.
	IterationStep = 50

	// MinIterations is the cap below which Lower stops.
	MinIterations = 100
)

// Raise returns the next higher iteration cap.
func Raise(maxIter int) int {
	return maxIter + IterationStep
}

// Lower returns the next lower iteration cap. Caps at or below
// MinIterations are returned unchanged.
func Lower(maxIter int) int {
	if maxIter > MinIterations {
		return maxIter - IterationStep
	}
	return maxIter
}
