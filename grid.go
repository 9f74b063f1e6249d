package mandel

import (
	"errors"
	"fmt"
	"strings"

	intColor "github.com/gogpu/mandel/internal/color"
	"github.com/gogpu/mandel/internal/grid"
	"github.com/gogpu/mandel/internal/kernel"
	"github.com/gogpu/mandel/internal/trace"
)

// Grid is a public alias for the pixel grid a frame is written into.
// Colors are 0xAARRGGBB; Grid also implements image.Image.
type Grid = grid.Grid

// Status holds per-pixel tracing flags.
type Status = grid.Status

// Pixel flags.
const (
	// Calculated marks a pixel whose color came from the kernel.
	Calculated = grid.Calculated

	// Scanned marks a pixel whose neighbors were examined by the tracer.
	Scanned = grid.Scanned
)

// NewGrid allocates a width×height grid.
func NewGrid(width, height int) (*Grid, error) {
	return grid.New(width, height)
}

// Strip is an inclusive range of grid rows owned by one tracer.
type Strip = trace.Strip

// Stats counts the work done for a frame.
type Stats = trace.Stats

// Palette maps an escape count in [0, maxIter] to a 0xAARRGGBB color.
type Palette = intColor.Palette

// Palettes.
var (
	// Ramp is the default smooth polynomial palette. Points that never
	// escape are black.
	Ramp Palette = intColor.Ramp

	// Grayscale maps counts linearly to gray, with the interior black.
	Grayscale Palette = intColor.Grayscale
)

// ErrUnknownPalette is returned by ParsePalette for an unrecognized name.
var ErrUnknownPalette = errors.New("mandel: unknown palette")

// ParsePalette returns the palette named "ramp" or "gray".
func ParsePalette(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ramp":
		return Ramp, nil
	case "gray", "grey", "grayscale":
		return Grayscale, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// KernelKind selects an escape-time kernel.
type KernelKind = kernel.Kind

// Kernel kinds.
const (
	// KernelAuto picks the widest kernel the CPU supports.
	KernelAuto = kernel.KindAuto

	// KernelScalar evaluates one point at a time.
	KernelScalar = kernel.KindScalar

	// KernelLanes4 evaluates four points in lockstep.
	KernelLanes4 = kernel.KindLanes4

	// KernelLanes8 evaluates eight points in lockstep.
	KernelLanes8 = kernel.KindLanes8
)

// ParseKernelKind converts a kernel name ("auto", "scalar", "x4", "x8")
// to a KernelKind.
func ParseKernelKind(s string) (KernelKind, error) {
	return kernel.ParseKind(s)
}

// DetectKernel returns the kernel kind KernelAuto resolves to on this CPU.
func DetectKernel() KernelKind {
	return kernel.Detect()
}
