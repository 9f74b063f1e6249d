// Command mandeldemo renders a zoom sequence headlessly and reports how much
// work boundary tracing saved on each frame.
//
// With -compare every frame is also rendered with each kernel, and the run
// fails if any two kernels disagree on a single pixel.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandel"
)

type config struct {
	width, height int
	frames        int
	zoomX, zoomY  float64
	raiseEvery    int
	strips        int
	kernel        mandel.KernelKind
	compare       bool
}

type summary struct {
	frames    int
	evaluated int
	pixels    int
	elapsed   time.Duration
}

func main() {
	var (
		width      = flag.Int("width", 640, "grid width")
		height     = flag.Int("height", 480, "grid height")
		frames     = flag.Int("frames", 40, "number of zoom steps")
		zoomX      = flag.Float64("zoom-x", -0.743643887037151, "real part of the zoom target")
		zoomY      = flag.Float64("zoom-y", 0.131825904205330, "imaginary part of the zoom target")
		raiseEvery = flag.Int("raise-every", 8, "raise the iteration cap every n frames (0 = never)")
		strips     = flag.Int("strips", 0, "strips per frame (0 = GOMAXPROCS)")
		kernel     = flag.String("kernel", "auto", "escape-time kernel: auto, scalar, x4, x8")
		compare    = flag.Bool("compare", false, "render every frame with each kernel and verify identical output")
		verbose    = flag.Bool("v", false, "log library diagnostics")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	k, err := mandel.ParseKernelKind(*kernel)
	if err != nil {
		log.Fatalf("Invalid -kernel: %v", err)
	}

	cfg := config{
		width:      *width,
		height:     *height,
		frames:     *frames,
		zoomX:      *zoomX,
		zoomY:      *zoomY,
		raiseEvery: *raiseEvery,
		strips:     *strips,
		kernel:     k,
		compare:    *compare,
	}
	sum, err := run(cfg, logger)
	if err != nil {
		log.Fatalf("Demo failed: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("%d frames of %dx%d in %v\n", sum.frames, cfg.width, cfg.height, sum.elapsed.Round(time.Millisecond))
	p.Printf("evaluated %d of %d pixels, %.1f%% filled by tracing\n",
		sum.evaluated, sum.pixels, 100*(1-float64(sum.evaluated)/float64(max(sum.pixels, 1))))
}

func run(cfg config, logger *slog.Logger) (summary, error) {
	if cfg.frames < 1 {
		return summary{}, fmt.Errorf("need at least one frame, got %d", cfg.frames)
	}

	r, err := mandel.NewRenderer(mandel.WithKernel(cfg.kernel), mandel.WithStrips(cfg.strips))
	if err != nil {
		return summary{}, err
	}
	defer r.Close()

	g, err := mandel.NewGrid(cfg.width, cfg.height)
	if err != nil {
		return summary{}, err
	}

	var others []*checker
	if cfg.compare {
		others, err = newCheckers(cfg)
		if err != nil {
			return summary{}, err
		}
		defer func() {
			for _, c := range others {
				c.renderer.Close()
			}
		}()
	}

	v := mandel.DefaultViewport(cfg.width, cfg.height)
	maxIter := mandel.DefaultIterations
	var sum summary

	for frame := 0; frame < cfg.frames; frame++ {
		stats, err := r.EvaluateFrame(g, v, maxIter)
		if err != nil {
			return sum, fmt.Errorf("frame %d: %w", frame, err)
		}
		sum.frames++
		sum.evaluated += stats.Evaluated
		sum.pixels += stats.Pixels
		sum.elapsed += stats.Duration

		logger.Info("frame",
			"n", frame,
			"kernel", stats.Kernel,
			"max_iter", maxIter,
			"width", v.Width(),
			"evaluated", stats.Evaluated,
			"savings", fmt.Sprintf("%.3f", stats.Savings()),
			"duration", stats.Duration)

		for _, c := range others {
			if err := c.check(g, v, maxIter); err != nil {
				return sum, fmt.Errorf("frame %d: %w", frame, err)
			}
		}

		// Zoom toward the target, keeping it at the same spot on screen.
		fx := (cfg.zoomX - v.X0) / v.Width()
		fy := (v.Y0 - cfg.zoomY) / v.Height()
		next := v.ZoomAt(fx, fy, true)
		if next.Validate() != nil {
			logger.Warn("zoom reached float64 precision, stopping", "frame", frame)
			break
		}
		v = next
		if cfg.raiseEvery > 0 && (frame+1)%cfg.raiseEvery == 0 {
			maxIter = mandel.Raise(maxIter)
		}
	}
	return sum, nil
}

// checker renders the same frame with one specific kernel.
type checker struct {
	kind     mandel.KernelKind
	renderer *mandel.Renderer
	grid     *mandel.Grid
}

func newCheckers(cfg config) ([]*checker, error) {
	var out []*checker
	for _, k := range []mandel.KernelKind{mandel.KernelScalar, mandel.KernelLanes4, mandel.KernelLanes8} {
		r, err := mandel.NewRenderer(mandel.WithKernel(k), mandel.WithStrips(cfg.strips))
		if err != nil {
			return nil, err
		}
		g, err := mandel.NewGrid(cfg.width, cfg.height)
		if err != nil {
			r.Close()
			return nil, err
		}
		out = append(out, &checker{kind: k, renderer: r, grid: g})
	}
	return out, nil
}

func (c *checker) check(ref *mandel.Grid, v mandel.Viewport, maxIter int) error {
	if _, err := c.renderer.EvaluateFrame(c.grid, v, maxIter); err != nil {
		return fmt.Errorf("%v kernel: %w", c.kind, err)
	}
	got, want := c.grid.Colors(), ref.Colors()
	if !slices.Equal(got, want) {
		i := 0
		for got[i] == want[i] {
			i++
		}
		return fmt.Errorf("%v kernel: pixel (%d,%d) = %#08x, want %#08x",
			c.kind, i%ref.Width(), i/ref.Width(), got[i], want[i])
	}
	return nil
}
