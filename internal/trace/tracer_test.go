package trace

import (
	"testing"

	"github.com/gogpu/mandel/internal/color"
	"github.com/gogpu/mandel/internal/grid"
	"github.com/gogpu/mandel/internal/kernel"
)

// square returns a plane spanning [x0, x0+size] x [y0-size, y0] on a w×h grid.
func square(x0, y0, size float64, w, h int) grid.Plane {
	return grid.Plane{X0: x0, Y0: y0, DX: size / float64(w), DY: size / float64(h)}
}

func newTracer(t *testing.T, g *grid.Grid, p grid.Plane, s Strip, k kernel.Kernel, maxIter int) *Tracer {
	t.Helper()
	return New(Config{
		Grid:   g,
		Plane:  p,
		Strip:  s,
		Kernel: k,
		LUT:    color.NewLUT(color.Ramp, maxIter),
	})
}

func mustGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("grid.New(%d, %d) error = %v", w, h, err)
	}
	return g
}

func kernels() []kernel.Kernel {
	return []kernel.Kernel{kernel.Scalar{}, kernel.Lanes4{}, kernel.Lanes8{}}
}

// direct returns the color the kernel gives pixel i.
func direct(g *grid.Grid, p grid.Plane, lut color.LUT, i int) uint32 {
	cr, ci := p.PointAt(i, g.Width())
	return lut[kernel.Escape(cr, ci, lut.MaxIter())]
}

func onPerimeter(x, y, w int, s Strip) bool {
	return x == 0 || x == w-1 || y == s.First || y == s.Last
}

func TestTracer_UniformRegionEvaluatesOnlyBorderRings(t *testing.T) {
	tests := []struct {
		name  string
		plane grid.Plane
		iter  int
	}{
		{"escapes at once", square(10, 11, 1, 16, 16), 1},
		{"inside the cardioid", square(-0.1, 0.1, 0.2, 16, 16), 64},
	}

	for _, tt := range tests {
		for _, k := range kernels() {
			t.Run(tt.name+"/"+k.Name(), func(t *testing.T) {
				g := mustGrid(t, 16, 16)
				tr := newTracer(t, g, tt.plane, Strip{0, 15}, k, 64)
				stats := tr.Run()

				lut := color.NewLUT(color.Ramp, 64)
				want := lut[tt.iter]
				for i := 0; i < g.Len(); i++ {
					if g.Color(i) != want {
						t.Fatalf("pixel %d = %#08x, want %#08x", i, g.Color(i), want)
					}
				}

				// 60 perimeter pixels plus the 52 pixels of the ring inside it.
				if stats.Evaluated != 112 {
					t.Errorf("Evaluated = %d, want 112", stats.Evaluated)
				}
				if stats.Scanned != 60 {
					t.Errorf("Scanned = %d, want 60", stats.Scanned)
				}
				if stats.Filled != 196-52 {
					t.Errorf("Filled = %d, want %d", stats.Filled, 196-52)
				}
				if stats.Batches == 0 || stats.Batches > stats.Evaluated {
					t.Errorf("Batches = %d for %d evaluations", stats.Batches, stats.Evaluated)
				}
			})
		}
	}
}

func TestTracer_SeedCoversPerimeter(t *testing.T) {
	const w, h, maxIter = 24, 20, 80
	g := mustGrid(t, w, h)
	p := square(-2, 1.5, 3, w, h)
	s := Strip{First: 5, Last: 14}
	tr := newTracer(t, g, p, s, kernel.Lanes4{}, maxIter)
	lut := color.NewLUT(color.Ramp, maxIter)

	tr.Seed()
	if tr.Phase() != Seeding {
		t.Fatalf("Phase() = %v after Seed, want seeding", tr.Phase())
	}

	for y := s.First; y <= s.Last; y++ {
		for x := 0; x < w; x++ {
			i := g.Index(x, y)
			st := g.Status(i)
			if !onPerimeter(x, y, w, s) {
				if st != 0 {
					t.Errorf("interior (%d,%d) status = %b after Seed", x, y, st)
				}
				continue
			}
			if !st.Has(grid.Calculated | grid.Scanned) {
				t.Errorf("perimeter (%d,%d) status = %b, want calculated and scanned", x, y, st)
			}
			if got, want := g.Color(i), direct(g, p, lut, i); got != want {
				t.Errorf("perimeter (%d,%d) = %#08x, kernel gives %#08x", x, y, got, want)
			}
		}
	}
	if want := 2*s.Rows() + 2*(w-2); tr.Stats().Evaluated != want {
		t.Errorf("Evaluated = %d, want %d", tr.Stats().Evaluated, want)
	}
}

func TestTracer_FillCopiesLeftNeighbor(t *testing.T) {
	const w, h, maxIter = 64, 48, 120
	g := mustGrid(t, w, h)
	p := square(-2.2, 1.4, 2.8, w, h)
	s := Strip{First: 0, Last: h - 1}
	tr := newTracer(t, g, p, s, kernel.Lanes8{}, maxIter)
	lut := color.NewLUT(color.Ramp, maxIter)

	stats := tr.Run()
	if tr.Phase() != Done {
		t.Fatalf("Phase() = %v after Run, want done", tr.Phase())
	}

	filled := 0
	for y := s.First + 1; y < s.Last; y++ {
		for x := 1; x < w-1; x++ {
			i := g.Index(x, y)
			if g.Status(i).Has(grid.Calculated) {
				if got, want := g.Color(i), direct(g, p, lut, i); got != want {
					t.Errorf("evaluated (%d,%d) = %#08x, kernel gives %#08x", x, y, got, want)
				}
				continue
			}
			filled++
			if g.Color(i) != g.Color(i-1) {
				t.Errorf("filled (%d,%d) = %#08x, left neighbor %#08x", x, y, g.Color(i), g.Color(i-1))
			}
		}
	}
	if filled != stats.Filled {
		t.Errorf("counted %d filled pixels, Stats.Filled = %d", filled, stats.Filled)
	}
	if stats.Evaluated+stats.Filled != w*h {
		t.Errorf("Evaluated(%d) + Filled(%d) != %d pixels", stats.Evaluated, stats.Filled, w*h)
	}
	if stats.Evaluated >= w*h {
		t.Errorf("Evaluated = %d, expected fewer than %d", stats.Evaluated, w*h)
	}
}

func TestTracer_ScannedImpliesCalculated(t *testing.T) {
	g := mustGrid(t, 40, 30)
	tr := newTracer(t, g, square(-1.8, 1.2, 2.4, 40, 30), Strip{0, 29}, kernel.Scalar{}, 60)
	tr.Run()
	for i := 0; i < g.Len(); i++ {
		st := g.Status(i)
		if st.Has(grid.Scanned) && !st.Has(grid.Calculated) {
			t.Fatalf("pixel %d scanned but not calculated", i)
		}
	}
}

func TestTracer_KernelsAgree(t *testing.T) {
	const w, h, maxIter = 50, 40, 200
	p := square(-0.76, 0.16, 0.06, w, h)

	var want []uint32
	var wantStats Stats
	for _, k := range kernels() {
		g := mustGrid(t, w, h)
		stats := newTracer(t, g, p, Strip{0, h - 1}, k, maxIter).Run()
		got := append([]uint32(nil), g.Colors()...)
		if want == nil {
			want, wantStats = got, stats
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: pixel %d = %#08x, scalar %#08x", k.Name(), i, got[i], want[i])
			}
		}
		if stats.Evaluated != wantStats.Evaluated || stats.Filled != wantStats.Filled {
			t.Errorf("%s: stats %+v, scalar %+v", k.Name(), stats, wantStats)
		}
	}
}

func TestTracer_StaysInsideStrip(t *testing.T) {
	const w, h = 20, 15
	g := mustGrid(t, w, h)
	const marker = 0x12345678
	for i := 0; i < g.Len(); i++ {
		g.SetColor(i, marker)
		g.Mark(i, grid.Calculated|grid.Scanned)
	}

	s := Strip{First: 5, Last: 9}
	newTracer(t, g, square(-2, 1.5, 3, w, h), s, kernel.Lanes4{}, 50).Run()

	for y := 0; y < h; y++ {
		inside := y >= s.First && y <= s.Last
		for x := 0; x < w; x++ {
			i := g.Index(x, y)
			if !inside && (g.Color(i) != marker || g.Status(i) != grid.Calculated|grid.Scanned) {
				t.Fatalf("row %d outside %v was modified", y, s)
			}
			if inside && g.Color(i) == marker {
				t.Fatalf("(%d,%d) inside %v was not written", x, y, s)
			}
		}
	}
}

func TestTracer_DegenerateShapes(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		s    Strip
	}{
		{"single row", 12, 1, Strip{0, 0}},
		{"single column", 1, 9, Strip{0, 8}},
		{"single pixel", 1, 1, Strip{0, 0}},
		{"two rows", 7, 2, Strip{0, 1}},
		{"two columns", 2, 6, Strip{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.w, tt.h)
			p := square(-2, 2, 4, tt.w, tt.h)
			lut := color.NewLUT(color.Ramp, 40)
			stats := newTracer(t, g, p, tt.s, kernel.Lanes4{}, 40).Run()

			// Every pixel is on the perimeter, so everything is exact.
			if stats.Filled != 0 {
				t.Errorf("Filled = %d, want 0", stats.Filled)
			}
			for i := 0; i < g.Len(); i++ {
				if got, want := g.Color(i), direct(g, p, lut, i); got != want {
					t.Errorf("pixel %d = %#08x, want %#08x", i, got, want)
				}
			}
		})
	}
}

func TestTracer_PhaseOrder(t *testing.T) {
	g := mustGrid(t, 8, 8)
	p := square(-2, 2, 4, 8, 8)

	tr := newTracer(t, g, p, Strip{0, 7}, kernel.Scalar{}, 10)
	if tr.Phase() != Idle {
		t.Errorf("new tracer Phase() = %v, want idle", tr.Phase())
	}

	assertPanics(t, "Trace before Seed", tr.Trace)
	assertPanics(t, "Fill before Trace", tr.Fill)

	tr.Run()
	assertPanics(t, "second Run", func() { tr.Run() })
}

func TestNew_InvalidConfigPanics(t *testing.T) {
	g := mustGrid(t, 8, 8)
	lut := color.NewLUT(nil, 10)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"nil grid", Config{Kernel: kernel.Scalar{}, LUT: lut, Strip: Strip{0, 1}}},
		{"nil kernel", Config{Grid: g, LUT: lut, Strip: Strip{0, 1}}},
		{"no lut", Config{Grid: g, Kernel: kernel.Scalar{}, Strip: Strip{0, 1}}},
		{"past the bottom", Config{Grid: g, Kernel: kernel.Scalar{}, LUT: lut, Strip: Strip{4, 8}}},
		{"reversed", Config{Grid: g, Kernel: kernel.Scalar{}, LUT: lut, Strip: Strip{3, 2}}},
		{"negative", Config{Grid: g, Kernel: kernel.Scalar{}, LUT: lut, Strip: Strip{-1, 2}}},
	}
	for _, tt := range tests {
		assertPanics(t, tt.name, func() { New(tt.cfg) })
	}
}

func TestPhase_String(t *testing.T) {
	want := []string{"idle", "seeding", "tracing", "filling", "done"}
	for i, w := range want {
		if got := Phase(i).String(); got != w {
			t.Errorf("Phase(%d).String() = %q, want %q", i, got, w)
		}
	}
}

func TestStrip(t *testing.T) {
	s := Strip{First: 3, Last: 7}
	if s.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", s.Rows())
	}
	if s.String() != "[3,7]" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestStats_Add(t *testing.T) {
	a := Stats{Evaluated: 1, Batches: 2, Scanned: 3, Filled: 4}
	b := Stats{Evaluated: 10, Batches: 20, Scanned: 30, Filled: 40}
	if got := a.Add(b); got != (Stats{Evaluated: 11, Batches: 22, Scanned: 33, Filled: 44}) {
		t.Errorf("Add() = %+v", got)
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
