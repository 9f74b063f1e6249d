// Package trace implements the boundary-tracing evaluator for one strip.
//
// Instead of evaluating every pixel, a Tracer evaluates the strip's
// perimeter, then follows color discontinuities inward: each pixel in the
// scan queue gets its four neighbors evaluated, and any neighbor with a
// different color is queued in turn. Pixels the trace never reached are
// then filled with the color of their left neighbor.
//
// The fill is a linear extrapolation, not a flood fill. It is exact for
// regions whose boundary the trace found, and can mis-fill regions whose
// boundary runs between scanned pixels.
package trace

import (
	"fmt"

	"github.com/gogpu/mandel/internal/color"
	"github.com/gogpu/mandel/internal/grid"
	"github.com/gogpu/mandel/internal/kernel"
)

// Strip is an inclusive range of rows.
type Strip struct {
	First, Last int
}

// Rows returns the number of rows in the strip.
func (s Strip) Rows() int { return s.Last - s.First + 1 }

// String returns "[first,last]".
func (s Strip) String() string { return fmt.Sprintf("[%d,%d]", s.First, s.Last) }

// Phase is the state of a Tracer.
type Phase uint8

const (
	// Idle is the state of a new Tracer.
	Idle Phase = iota

	// Seeding evaluates the strip perimeter.
	Seeding

	// Tracing follows color discontinuities from the scan queue.
	Tracing

	// Filling extrapolates the remaining interior pixels.
	Filling

	// Done means the strip is complete until the next frame.
	Done
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Seeding:
		return "seeding"
	case Tracing:
		return "tracing"
	case Filling:
		return "filling"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Stats counts the work a Tracer did.
type Stats struct {
	// Evaluated is the number of pixels computed by the kernel.
	Evaluated int

	// Batches is the number of kernel calls.
	Batches int

	// Scanned is the number of pixels that entered the scan queue.
	Scanned int

	// Filled is the number of pixels colored by the left-neighbor fill.
	Filled int
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Evaluated: s.Evaluated + o.Evaluated,
		Batches:   s.Batches + o.Batches,
		Scanned:   s.Scanned + o.Scanned,
		Filled:    s.Filled + o.Filled,
	}
}

// Config describes one strip evaluation.
type Config struct {
	Grid   *grid.Grid
	Plane  grid.Plane
	Strip  Strip
	Kernel kernel.Kernel

	// LUT maps escape counts to colors; its MaxIter is the iteration cap.
	LUT color.LUT
}

// Tracer evaluates one strip of a grid. A Tracer runs once; build a new one
// for the next frame.
type Tracer struct {
	g      *grid.Grid
	plane  grid.Plane
	strip  Strip
	kernel kernel.Kernel
	lut    color.LUT
	width  int

	// lo and hi bound the strip's flat indices: [lo, hi).
	lo, hi int

	scan  queue
	batch []int
	cr    []float64
	ci    []float64
	count []int

	phase Phase
	stats Stats
}

// New returns a Tracer in the Idle phase. It panics if the strip lies
// outside the grid or the configuration is incomplete.
func New(cfg Config) *Tracer {
	if cfg.Grid == nil || cfg.Kernel == nil || len(cfg.LUT) == 0 {
		panic("trace: incomplete config")
	}
	s := cfg.Strip
	if s.First < 0 || s.Last < s.First || s.Last >= cfg.Grid.Height() {
		panic(fmt.Sprintf("trace: strip %v outside grid of %d rows", s, cfg.Grid.Height()))
	}

	w := cfg.Grid.Width()
	lanes := cfg.Kernel.Lanes()
	return &Tracer{
		g:      cfg.Grid,
		plane:  cfg.Plane,
		strip:  s,
		kernel: cfg.Kernel,
		lut:    cfg.LUT,
		width:  w,
		lo:     s.First * w,
		hi:     (s.Last + 1) * w,
		batch:  make([]int, 0, lanes),
		cr:     make([]float64, lanes),
		ci:     make([]float64, lanes),
		count:  make([]int, lanes),
	}
}

// Phase returns the current phase.
func (t *Tracer) Phase() Phase { return t.phase }

// Stats returns the work counters so far.
func (t *Tracer) Stats() Stats { return t.stats }

// Strip returns the rows this tracer owns.
func (t *Tracer) Strip() Strip { return t.strip }

// Run performs Seed, Trace and Fill.
func (t *Tracer) Run() Stats {
	t.Seed()
	t.Trace()
	t.Fill()
	return t.stats
}

// Seed clears the strip's flags and evaluates its perimeter: the left and
// right column of every row, and the top and bottom rows.
func (t *Tracer) Seed() {
	t.enter(Idle, Seeding)
	t.g.ResetRows(t.strip.First, t.strip.Last)

	w := t.width
	for row := t.strip.First; row <= t.strip.Last; row++ {
		t.addScan(row * w)
		t.addScan((row+1)*w - 1)
	}
	for col := 1; col < w-1; col++ {
		t.addScan(t.strip.First*w + col)
		t.addScan(t.strip.Last*w + col)
	}
	t.flush()
}

// Trace drains the scan queue, evaluating neighbors and queuing every
// neighbor whose color differs from the scanned pixel.
func (t *Tracer) Trace() {
	t.enter(Seeding, Tracing)

	w := t.width
	for t.scan.len() > 0 {
		p := t.scan.pop()
		col := p % w
		up, down, left, right := p-w, p+w, p-1, p+1
		upOK := up >= t.lo
		downOK := down < t.hi
		leftOK := col > 0
		rightOK := col < w-1

		if upOK {
			t.addCalc(up)
		}
		if downOK {
			t.addCalc(down)
		}
		if leftOK {
			t.addCalc(left)
		}
		if rightOK {
			t.addCalc(right)
		}
		t.flush()

		c := t.g.Color(p)
		upDiff := upOK && t.g.Color(up) != c
		downDiff := downOK && t.g.Color(down) != c
		leftDiff := leftOK && t.g.Color(left) != c
		rightDiff := rightOK && t.g.Color(right) != c

		if upDiff {
			t.addScan(up)
		}
		if downDiff {
			t.addScan(down)
		}
		if leftDiff {
			t.addScan(left)
		}
		if rightDiff {
			t.addScan(right)
		}

		// Diagonals catch boundaries too thin for a 4-connected trace.
		if upOK && leftOK && (upDiff || leftDiff) {
			t.addScan(up - 1)
		}
		if upOK && rightOK && (upDiff || rightDiff) {
			t.addScan(up + 1)
		}
		if downOK && leftOK && (downDiff || leftDiff) {
			t.addScan(down - 1)
		}
		if downOK && rightOK && (downDiff || rightDiff) {
			t.addScan(down + 1)
		}
	}
	t.flush()
}

// Fill colors every interior pixel the trace did not evaluate with the
// color of its left neighbor, scanning left to right so runs propagate.
func (t *Tracer) Fill() {
	t.enter(Tracing, Filling)

	w := t.width
	end := t.strip.Last * w
	for i := (t.strip.First+1)*w + 1; i < end; i++ {
		if !t.g.Status(i).Has(grid.Calculated) {
			t.g.SetColor(i, t.g.Color(i-1))
			t.stats.Filled++
		}
	}
	t.phase = Done
}

func (t *Tracer) enter(from, to Phase) {
	if t.phase != from {
		panic(fmt.Sprintf("trace: cannot enter %v from %v", to, t.phase))
	}
	t.phase = to
}

// addScan queues p for neighbor exploration, at most once per frame.
func (t *Tracer) addScan(p int) {
	if !t.g.Mark(p, grid.Scanned) {
		return
	}
	t.scan.push(p)
	t.stats.Scanned++
	t.addCalc(p)
}

// addCalc schedules p for evaluation unless it was already scheduled.
func (t *Tracer) addCalc(p int) {
	if !t.g.Mark(p, grid.Calculated) {
		return
	}
	t.batch = append(t.batch, p)
	if len(t.batch) == cap(t.batch) {
		t.flush()
	}
}

// flush evaluates the pending batch and writes the colors back.
func (t *Tracer) flush() {
	n := len(t.batch)
	if n == 0 {
		return
	}
	for i, p := range t.batch {
		t.cr[i], t.ci[i] = t.plane.PointAt(p, t.width)
	}
	t.kernel.Escape(t.cr[:n], t.ci[:n], t.lut.MaxIter(), t.count[:n])
	for i, p := range t.batch {
		t.g.SetColor(p, t.lut[t.count[i]])
	}
	t.stats.Evaluated += n
	t.stats.Batches++
	t.batch = t.batch[:0]
}
