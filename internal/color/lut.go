package color

// LUT holds one color per escape count in [0, maxIt].
type LUT []uint32

// NewLUT evaluates p for every count up to maxIt.
// A nil palette means Ramp.
func NewLUT(p Palette, maxIt int) LUT {
	if p == nil {
		p = Ramp
	}
	if maxIt < 1 {
		maxIt = 1
	}
	lut := make(LUT, maxIt+1)
	for it := range lut {
		lut[it] = p(it, maxIt)
	}
	return lut
}

// MaxIter returns the largest count the table covers.
func (l LUT) MaxIter() int {
	return len(l) - 1
}

// At returns the color for count it, clamping to the table range.
func (l LUT) At(it int) uint32 {
	switch {
	case it < 0:
		return l[0]
	case it >= len(l):
		return l[len(l)-1]
	}
	return l[it]
}
