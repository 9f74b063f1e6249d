// Command mandelview is an interactive Mandelbrot explorer.
//
// Mouse wheel zooms at the cursor, dragging or the left/right arrows pan
// (shift+up/down pans vertically), up/down change the iteration cap, R
// resets the view and Escape quits.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/internal/hud"
)

// panStep is the fraction of the view one arrow key press pans.
const panStep = 0.05

type viewer struct {
	explorer *mandel.Explorer
	scale    int

	frame  *image.RGBA // grid resolution
	screen *image.RGBA // window resolution
	image  *ebiten.Image
	text   hud.Text
	print  *message.Printer

	dragging bool
	dragX    int
	dragY    int
}

func main() {
	var (
		width    = flag.Int("width", 800, "grid width")
		height   = flag.Int("height", 800, "grid height")
		strips   = flag.Int("strips", 0, "strips per frame (0 = GOMAXPROCS)")
		workers  = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		kernel   = flag.String("kernel", "auto", "escape-time kernel: auto, scalar, x4, x8")
		palette  = flag.String("palette", "ramp", "palette: ramp, gray")
		scale    = flag.Int("scale", 1, "window pixels per grid pixel")
		hudFace  = flag.String("hud", "outline", "overlay: outline, bitmap, off")
		verbose  = flag.Bool("v", false, "log per-frame statistics")
		fontSize = flag.Float64("hud-size", 14, "outline overlay font size in pixels")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	k, err := mandel.ParseKernelKind(*kernel)
	if err != nil {
		log.Fatalf("Invalid -kernel: %v", err)
	}
	p, err := mandel.ParsePalette(*palette)
	if err != nil {
		log.Fatalf("Invalid -palette: %v", err)
	}
	if *scale < 1 {
		log.Fatalf("Invalid -scale %d: must be at least 1", *scale)
	}

	e, err := mandel.NewExplorer(*width, *height,
		mandel.WithKernel(k),
		mandel.WithStrips(*strips),
		mandel.WithWorkers(*workers),
		mandel.WithPalette(p),
	)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer e.Close()

	text, err := newText(*hudFace, *fontSize)
	if err != nil {
		log.Fatalf("Invalid -hud: %v", err)
	}

	v := newViewer(e, *scale, text)
	ebiten.SetWindowTitle("mandelview")
	ebiten.SetWindowSize(*width*(*scale), *height*(*scale))
	if err := ebiten.RunGame(v); err != nil {
		log.Fatalf("Viewer stopped: %v", err)
	}
}

func newText(face string, size float64) (hud.Text, error) {
	switch face {
	case "off", "none", "":
		return nil, nil
	case "bitmap":
		return hud.NewBitmap(), nil
	case "outline":
		return hud.NewGoRegular(size)
	}
	return nil, fmt.Errorf("unknown overlay %q", face)
}

func newViewer(e *mandel.Explorer, scale int, text hud.Text) *viewer {
	g := e.Grid()
	w, h := g.Width(), g.Height()
	v := &viewer{
		explorer: e,
		scale:    scale,
		frame:    image.NewRGBA(image.Rect(0, 0, w, h)),
		image:    ebiten.NewImage(w*scale, h*scale),
		text:     text,
		print:    message.NewPrinter(language.English),
	}
	v.screen = v.frame
	if scale > 1 {
		v.screen = image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	}
	return v
}

// Update forwards input to the explorer and renders a frame when the view
// changed. The frame completes before Update returns, so the next batch of
// input is only read once the grid is consistent.
func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.input()

	if !v.explorer.Dirty() {
		return nil
	}
	stats, err := v.explorer.Render()
	if err != nil {
		return err
	}
	v.present(stats)
	return nil
}

func (v *viewer) input() {
	e := v.explorer
	bw, bh := v.screen.Bounds().Dx(), v.screen.Bounds().Dy()

	if _, dy := ebiten.Wheel(); dy != 0 {
		cx, cy := ebiten.CursorPosition()
		e.ZoomAt(float64(cx)/float64(bw), float64(cy)/float64(bh), dy > 0)
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && shift:
		e.Pan(0, -panStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && shift:
		e.Pan(0, panStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		e.RaiseIterations()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		e.LowerIterations()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		e.Pan(-panStep, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		e.Pan(panStep, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		e.Reset()
	}

	// Dragging moves the plane with the cursor.
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.dragging = true
		v.dragX, v.dragY = ebiten.CursorPosition()
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.dragging = false
	case v.dragging:
		x, y := ebiten.CursorPosition()
		if x != v.dragX || y != v.dragY {
			e.Pan(float64(v.dragX-x)/float64(bw), float64(v.dragY-y)/float64(bh))
			v.dragX, v.dragY = x, y
		}
	}
}

// present copies the grid into the window image and draws the overlay.
func (v *viewer) present(stats mandel.FrameStats) {
	v.explorer.Grid().CopyTo(v.frame)
	if v.screen != v.frame {
		draw.NearestNeighbor.Scale(v.screen, v.screen.Bounds(), v.frame, v.frame.Bounds(), draw.Src, nil)
	}
	if v.text != nil {
		hud.Panel(v.screen, v.text, v.status(stats))
	}
	v.image.WritePixels(v.screen.Pix)
}

func (v *viewer) status(s mandel.FrameStats) []string {
	vp := v.explorer.Viewport()
	return []string{
		v.print.Sprintf("frame %d  %s kernel  %d strips", v.explorer.Frames(), s.Kernel, s.Strips),
		v.print.Sprintf("max iterations %d", v.explorer.MaxIterations()),
		v.print.Sprintf("evaluated %d of %d pixels (%.1f%% filled)", s.Evaluated, s.Pixels, 100*s.Savings()),
		fmt.Sprintf("%v per frame", s.Duration.Round(10*time.Microsecond)),
		fmt.Sprintf("re [%.10g, %.10g]", vp.X0, vp.X1),
		fmt.Sprintf("im [%.10g, %.10g]", vp.Y1, vp.Y0),
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.image, nil)
}

func (v *viewer) Layout(int, int) (int, int) {
	b := v.screen.Bounds()
	return b.Dx(), b.Dy()
}
