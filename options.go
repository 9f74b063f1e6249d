package mandel

import "log/slog"

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// Defaults: detected kernel, GOMAXPROCS strips and workers
//	r, err := mandel.NewRenderer()
//
//	// Fixed kernel and partition
//	r, err := mandel.NewRenderer(mandel.WithKernel(mandel.KernelScalar), mandel.WithStrips(4))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	kernel  KernelKind
	strips  int
	workers int
	palette Palette
	logger  *slog.Logger
}

func defaultOptions() rendererOptions {
	return rendererOptions{
		kernel:  KernelAuto,
		strips:  0,   // GOMAXPROCS, capped at the grid height
		workers: 0,   // GOMAXPROCS
		palette: nil, // Ramp
		logger:  nil, // package Logger()
	}
}

// WithKernel selects the escape-time kernel.
func WithKernel(k KernelKind) RendererOption {
	return func(o *rendererOptions) {
		o.kernel = k
	}
}

// WithStrips sets the number of strips a frame is split into. Zero uses
// GOMAXPROCS strips, reduced to the grid height for short grids. A fixed
// count larger than the grid height makes EvaluateFrame fail with
// ErrInvalidStripCount.
func WithStrips(n int) RendererOption {
	return func(o *rendererOptions) {
		o.strips = n
	}
}

// WithWorkers sets the size of the worker pool. Zero or negative uses
// GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithPalette sets the palette. nil selects Ramp.
func WithPalette(p Palette) RendererOption {
	return func(o *rendererOptions) {
		o.palette = p
	}
}

// WithLogger sets a logger for this renderer only. Without it the renderer
// logs through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) RendererOption {
	return func(o *rendererOptions) {
		o.logger = l
	}
}
