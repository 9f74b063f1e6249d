package hud

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/mandel/internal/cache"
)

// ErrInvalidSize is returned for a non-positive font size.
var ErrInvalidSize = errors.New("hud: font size must be positive")

const (
	// subpixelSteps is the number of horizontal glyph positions per pixel.
	subpixelSteps = 4

	glyphCacheSize = 512
)

// glyphKey identifies a rasterized glyph at one subpixel offset.
type glyphKey struct {
	id  sfnt.GlyphIndex
	sub uint8
}

// Outline draws anti-aliased text from a TrueType font. Lines are shaped
// with HarfBuzz, so kerning and ligatures apply. Rasterized glyphs are
// cached per subpixel offset.
//
// Outline is not safe for concurrent use.
type Outline struct {
	face    *gtfont.Face
	sfnt    *sfnt.Font
	buf     sfnt.Buffer
	shaper  shaping.HarfbuzzShaper
	ppem    fixed.Int26_6
	metrics font.Metrics
	raster  vector.Rasterizer
	glyphs  *cache.Cache[glyphKey, *image.Alpha]
}

// NewOutline parses a TrueType font and prepares it at size pixels per em.
func NewOutline(ttf []byte, size float64) (*Outline, error) {
	if !(size > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("hud: parse font: %w", err)
	}
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("hud: parse outlines: %w", err)
	}

	o := &Outline{
		face:   face,
		sfnt:   f,
		ppem:   fixed.Int26_6(size * 64),
		glyphs: cache.New[glyphKey, *image.Alpha](glyphCacheSize),
	}
	o.metrics, err = f.Metrics(&o.buf, o.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("hud: font metrics: %w", err)
	}
	return o, nil
}

// NewGoRegular returns Go Regular at size pixels per em.
func NewGoRegular(size float64) (*Outline, error) {
	return NewOutline(goregular.TTF, size)
}

func (o *Outline) LineHeight() int { return o.metrics.Height.Ceil() }

func (o *Outline) Ascent() int { return o.metrics.Ascent.Ceil() }

func (o *Outline) Measure(line string) int {
	var w fixed.Int26_6
	for _, g := range o.shape(line) {
		w += g.Advance
	}
	return w.Ceil()
}

func (o *Outline) Draw(dst draw.Image, x, y int, line string, src image.Image) {
	pen := fixed.I(x)
	base := fixed.I(y)
	for _, g := range o.shape(line) {
		gx, gy := pen+g.XOffset, base-g.YOffset
		pen += g.Advance

		ix := gx.Floor()
		key := glyphKey{
			id:  sfnt.GlyphIndex(g.GlyphID), //nolint:gosec // G115: glyph IDs of a TrueType font fit in 16 bits
			sub: uint8((gx - fixed.I(ix)) / (64 / subpixelSteps)), //nolint:gosec // G115: in [0, subpixelSteps)
		}
		m := o.glyphs.GetOrCreate(key, func() *image.Alpha { return o.rasterize(key) })
		if m == nil {
			continue
		}
		r := m.Bounds().Add(image.Pt(ix, gy.Round()))
		draw.DrawMask(dst, r, src, image.Point{}, m, m.Bounds().Min, draw.Over)
	}
}

func (o *Outline) shape(line string) []shaping.Glyph {
	if line == "" {
		return nil
	}
	runes := []rune(line)
	out := o.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      o.face,
		Size:      o.ppem,
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs
}

// rasterize renders a glyph into a mask whose bounds are relative to the
// glyph origin. It returns nil for glyphs without ink.
func (o *Outline) rasterize(key glyphKey) *image.Alpha {
	segs, err := o.sfnt.LoadGlyph(&o.buf, key.id, o.ppem, nil)
	if err != nil || len(segs) == 0 {
		return nil
	}
	shift := fixed.Int26_6(key.sub) * (64 / subpixelSteps)
	b := bounds(segs)
	r := image.Rect((shift + b.Min.X).Floor(), b.Min.Y.Floor(), (shift + b.Max.X).Ceil(), b.Max.Y.Ceil())
	if r.Empty() {
		return nil
	}

	o.raster.Reset(r.Dx(), r.Dy())
	ox := float32(shift)/64 - float32(r.Min.X)
	oy := -float32(r.Min.Y)
	px := func(p fixed.Point26_6) float32 { return ox + float32(p.X)/64 }
	py := func(p fixed.Point26_6) float32 { return oy + float32(p.Y)/64 }

	open := false
	for _, s := range segs {
		a := s.Args
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				o.raster.ClosePath()
			}
			o.raster.MoveTo(px(a[0]), py(a[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			o.raster.LineTo(px(a[0]), py(a[0]))
		case sfnt.SegmentOpQuadTo:
			o.raster.QuadTo(px(a[0]), py(a[0]), px(a[1]), py(a[1]))
		case sfnt.SegmentOpCubeTo:
			o.raster.CubeTo(px(a[0]), py(a[0]), px(a[1]), py(a[1]), px(a[2]), py(a[2]))
		}
	}
	if open {
		o.raster.ClosePath()
	}

	mask := image.NewAlpha(r)
	o.raster.Draw(mask, r, image.Opaque, image.Point{})
	return mask
}

// bounds returns the box around every point of segs, relative to the
// glyph origin with y growing downward.
func bounds(segs sfnt.Segments) fixed.Rectangle26_6 {
	b := fixed.Rectangle26_6{Min: segs[0].Args[0], Max: segs[0].Args[0]}
	for _, s := range segs {
		n := 1
		switch s.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range s.Args[:n] {
			b.Min.X = min(b.Min.X, p.X)
			b.Min.Y = min(b.Min.Y, p.Y)
			b.Max.X = max(b.Max.X, p.X)
			b.Max.Y = max(b.Max.Y, p.Y)
		}
	}
	return b
}
