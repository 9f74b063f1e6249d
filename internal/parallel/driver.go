package parallel

import (
	"fmt"

	"github.com/gogpu/mandel/internal/color"
	"github.com/gogpu/mandel/internal/grid"
	"github.com/gogpu/mandel/internal/kernel"
	"github.com/gogpu/mandel/internal/trace"
)

// Frame is one evaluation of a grid.
type Frame struct {
	Grid   *grid.Grid
	Plane  grid.Plane
	Strips []trace.Strip
	Kernel kernel.Kernel
	LUT    color.LUT
}

// Driver evaluates frames on a worker pool.
type Driver struct {
	pool *WorkerPool
}

// NewDriver returns a driver that schedules strips on pool.
func NewDriver(pool *WorkerPool) *Driver {
	return &Driver{pool: pool}
}

// Run traces every strip of f concurrently and returns once all strips are
// done. The returned stats are the sum over strips.
func (d *Driver) Run(f Frame) (trace.Stats, error) {
	mustBeDisjoint(f.Strips)

	stats := make([]trace.Stats, len(f.Strips))
	work := make([]func(), len(f.Strips))
	for k, s := range f.Strips {
		// Build tracers up front so a bad strip panics on the caller's goroutine.
		tr := trace.New(trace.Config{
			Grid:   f.Grid,
			Plane:  f.Plane,
			Strip:  s,
			Kernel: f.Kernel,
			LUT:    f.LUT,
		})
		work[k] = func() { stats[k] = tr.Run() }
	}

	if err := d.pool.ExecuteAll(work); err != nil {
		return trace.Stats{}, fmt.Errorf("run frame: %w", err)
	}

	var total trace.Stats
	for _, s := range stats {
		total = total.Add(s)
	}
	return total, nil
}
