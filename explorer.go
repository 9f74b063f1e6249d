package mandel

import (
	"fmt"
	"sync"
)

// view is the state one frame is rendered from.
type view struct {
	viewport Viewport
	maxIter  int
}

func defaultView(width, height int) view {
	return view{viewport: DefaultViewport(width, height), maxIter: DefaultIterations}
}

// Explorer is the interactive state of a viewer: a grid, a renderer, and
// the viewport and iteration cap of the next frame.
//
// Input methods may be called from any goroutine at any time. They only
// record the change; Render applies everything recorded so far before the
// frame starts, so a frame never sees a viewport or cap that changes under
// it.
type Explorer struct {
	grid     *Grid
	renderer *Renderer

	mu      sync.Mutex
	pending view
	dirty   bool

	// render serializes frames and guards the fields below.
	render  sync.Mutex
	current view
	frames  int
	last    FrameStats
}

// NewExplorer creates a width×height explorer at the default view.
func NewExplorer(width, height int, opts ...RendererOption) (*Explorer, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, fmt.Errorf("new explorer: %w", err)
	}
	r, err := NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("new explorer: %w", err)
	}
	v := defaultView(width, height)
	return &Explorer{
		grid:     g,
		renderer: r,
		pending:  v,
		dirty:    true,
		current:  v,
	}, nil
}

func (e *Explorer) update(fn func(*view)) {
	e.mu.Lock()
	fn(&e.pending)
	e.dirty = true
	e.mu.Unlock()
}

// ZoomAt zooms in or out around the point at fraction (fx, fy) of the view.
func (e *Explorer) ZoomAt(fx, fy float64, in bool) {
	e.update(func(v *view) { v.viewport = v.viewport.ZoomAt(fx, fy, in) })
}

// Pan moves the view by fractions of its extent.
func (e *Explorer) Pan(fx, fy float64) {
	e.update(func(v *view) { v.viewport = v.viewport.Pan(fx, fy) })
}

// RaiseIterations raises the iteration cap by IterationStep.
func (e *Explorer) RaiseIterations() {
	e.update(func(v *view) { v.maxIter = Raise(v.maxIter) })
}

// LowerIterations lowers the iteration cap by IterationStep unless it is
// already at MinIterations.
func (e *Explorer) LowerIterations() {
	e.update(func(v *view) { v.maxIter = Lower(v.maxIter) })
}

// Reset returns to the default viewport and iteration cap.
func (e *Explorer) Reset() {
	e.update(func(v *view) { *v = defaultView(e.grid.Width(), e.grid.Height()) })
}

// Dirty reports whether input arrived since the last Render.
func (e *Explorer) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Render applies pending input and evaluates one frame into the grid.
// If the pending viewport is invalid, for example after zooming past
// float64 precision, the input is discarded and the previous view is
// rendered again.
func (e *Explorer) Render() (FrameStats, error) {
	e.render.Lock()
	defer e.render.Unlock()

	e.mu.Lock()
	next := e.pending
	e.dirty = false
	if next.viewport.Validate() != nil {
		e.pending = e.current
		next = e.current
	}
	e.mu.Unlock()

	stats, err := e.renderer.EvaluateFrame(e.grid, next.viewport, next.maxIter)
	if err != nil {
		e.mu.Lock()
		e.dirty = true
		e.mu.Unlock()
		return FrameStats{}, err
	}
	e.current = next
	e.frames++
	e.last = stats
	return stats, nil
}

// Viewport returns the viewport of the last rendered frame.
func (e *Explorer) Viewport() Viewport {
	e.render.Lock()
	defer e.render.Unlock()
	return e.current.viewport
}

// MaxIterations returns the iteration cap of the last rendered frame.
func (e *Explorer) MaxIterations() int {
	e.render.Lock()
	defer e.render.Unlock()
	return e.current.maxIter
}

// Frames returns the number of frames rendered.
func (e *Explorer) Frames() int {
	e.render.Lock()
	defer e.render.Unlock()
	return e.frames
}

// LastStats returns the stats of the last rendered frame.
func (e *Explorer) LastStats() FrameStats {
	e.render.Lock()
	defer e.render.Unlock()
	return e.last
}

// Grid returns the grid frames are rendered into. Its contents are stable
// between Render calls.
func (e *Explorer) Grid() *Grid {
	return e.grid
}

// Close releases the renderer's worker pool.
func (e *Explorer) Close() {
	e.renderer.Close()
}
