package mandel

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/gogpu/mandel/internal/cache"
	intColor "github.com/gogpu/mandel/internal/color"
	"github.com/gogpu/mandel/internal/kernel"
	"github.com/gogpu/mandel/internal/parallel"
)

// Errors returned by EvaluateFrame.
var (
	// ErrNilGrid is returned when no grid is given.
	ErrNilGrid = errors.New("mandel: nil grid")

	// ErrInvalidIterations is returned for an iteration cap below 1.
	ErrInvalidIterations = errors.New("mandel: iteration cap must be at least 1")

	// ErrInvalidStripCount is returned when the grid cannot be split into
	// the requested number of strips.
	ErrInvalidStripCount = parallel.ErrInvalidStripCount

	// ErrClosed is returned by a Renderer after Close.
	ErrClosed = parallel.ErrPoolClosed
)

// FrameStats describes one evaluated frame.
type FrameStats struct {
	Stats

	// Strips is the number of strips the frame was split into.
	Strips int

	// CoveredRows is the number of rows that belong to a strip. Rows below
	// it are left as they were.
	CoveredRows int

	// Pixels is the number of pixels in covered rows.
	Pixels int

	// Duration is the wall time of the evaluation.
	Duration time.Duration

	// Kernel is the name of the kernel that ran.
	Kernel string
}

// Savings returns the fraction of covered pixels that were filled instead
// of evaluated.
func (s FrameStats) Savings() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return 1 - float64(s.Evaluated)/float64(s.Pixels)
}

// lutCacheSize is the number of iteration caps whose color tables a
// Renderer keeps.
const lutCacheSize = 8

// Renderer evaluates frames. It owns a worker pool and caches color tables
// for recently used iteration caps.
//
// A Renderer evaluates one frame at a time; concurrent EvaluateFrame calls
// are serialized.
type Renderer struct {
	opts    rendererOptions
	kernel  kernel.Kernel
	pool    *parallel.WorkerPool
	driver  *parallel.Driver
	palette Palette

	mu   sync.Mutex
	luts *cache.Cache[int, intColor.LUT]
}

// NewRenderer creates a renderer and starts its worker pool.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.strips < 0 {
		return nil, fmt.Errorf("new renderer: %w: %d", ErrInvalidStripCount, o.strips)
	}

	k, err := kernel.New(o.kernel)
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}

	palette := o.palette
	if palette == nil {
		palette = Ramp
	}

	pool := parallel.NewWorkerPool(o.workers)
	r := &Renderer{
		opts:    o,
		kernel:  k,
		pool:    pool,
		driver:  parallel.NewDriver(pool),
		palette: palette,
		luts:    cache.New[int, intColor.LUT](lutCacheSize),
	}

	f := kernel.CPUFeatures()
	r.logger().Info("mandel: kernel selected",
		"kernel", k.Name(),
		"requested", o.kernel.String(),
		"workers", pool.Workers(),
		"avx2", f.AVX2,
		"avx512f", f.AVX512F,
		"asimd", f.ASIMD)
	return r, nil
}

func (r *Renderer) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// Kernel returns the name of the kernel this renderer runs.
func (r *Renderer) Kernel() string { return r.kernel.Name() }

// Workers returns the size of the worker pool.
func (r *Renderer) Workers() int { return r.pool.Workers() }

// StripsFor returns the number of strips a frame of the given height is
// split into.
func (r *Renderer) StripsFor(height int) int {
	if r.opts.strips > 0 {
		return r.opts.strips
	}
	return min(runtime.GOMAXPROCS(0), height)
}

// EvaluateFrame renders one frame of viewport v into g with the given
// iteration cap and returns once every strip is written.
//
// Every covered pixel is either computed by the kernel or copied from its
// left neighbor. Rows past the last full strip are not written.
func (r *Renderer) EvaluateFrame(g *Grid, v Viewport, maxIter int) (FrameStats, error) {
	if g == nil {
		return FrameStats{}, ErrNilGrid
	}
	if maxIter < 1 {
		return FrameStats{}, fmt.Errorf("%w: %d", ErrInvalidIterations, maxIter)
	}
	if err := v.Validate(); err != nil {
		return FrameStats{}, err
	}

	strips, err := parallel.Partition(g.Height(), r.StripsFor(g.Height()))
	if err != nil {
		return FrameStats{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lut := r.luts.GetOrCreate(maxIter, func() intColor.LUT {
		return intColor.NewLUT(r.palette, maxIter)
	})

	start := time.Now()
	stats, err := r.driver.Run(parallel.Frame{
		Grid:   g,
		Plane:  v.Plane(g.Width(), g.Height()),
		Strips: strips,
		Kernel: r.kernel,
		LUT:    lut,
	})
	if err != nil {
		return FrameStats{}, err
	}

	covered := parallel.Covered(strips)
	fs := FrameStats{
		Stats:       stats,
		Strips:      len(strips),
		CoveredRows: covered,
		Pixels:      covered * g.Width(),
		Duration:    time.Since(start),
		Kernel:      r.kernel.Name(),
	}

	log := r.logger()
	if covered < g.Height() {
		log.Debug("mandel: rows not covered by any strip",
			"first", covered,
			"last", g.Height()-1)
	}
	log.Debug("mandel: frame evaluated",
		"strips", fs.Strips,
		"max_iter", maxIter,
		"evaluated", fs.Evaluated,
		"filled", fs.Filled,
		"batches", fs.Batches,
		"savings", fs.Savings(),
		"duration", fs.Duration)
	return fs, nil
}

// Close stops the worker pool. Frames after Close fail with ErrClosed.
// Close is safe to call more than once.
func (r *Renderer) Close() {
	r.pool.Close()
}

// EvaluateFrame renders one frame with a temporary renderer split into the
// given number of strips.
func EvaluateFrame(g *Grid, v Viewport, maxIter, strips int) (FrameStats, error) {
	if strips < 1 {
		return FrameStats{}, fmt.Errorf("%w: %d", ErrInvalidStripCount, strips)
	}
	r, err := NewRenderer(WithStrips(strips))
	if err != nil {
		return FrameStats{}, err
	}
	defer r.Close()
	return r.EvaluateFrame(g, v, maxIter)
}
