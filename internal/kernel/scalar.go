package kernel

// Escape returns the escape count of c = cr + i·ci with cap maxIter.
//
// The squares of the current orbit value are kept between steps, so each
// step costs three multiplications. Products are rounded explicitly to keep
// the result identical to the lane kernels.
func Escape(cr, ci float64, maxIter int) int {
	var zr, zi, zr2, zi2 float64
	n := 0
	for zr2+zi2 <= 4 && n < maxIter {
		zi = float64(float64(2*zi)*zr) + ci
		zr = zr2 - zi2 + cr
		zr2 = float64(zr * zr)
		zi2 = float64(zi * zi)
		n++
	}
	return n
}

// Scalar evaluates each point independently with Escape.
type Scalar struct{}

// Name implements Kernel.
func (Scalar) Name() string { return "scalar" }

// Lanes implements Kernel.
func (Scalar) Lanes() int { return 1 }

// Escape implements Kernel. Unlike the lane kernels it accepts any batch
// length.
func (Scalar) Escape(cr, ci []float64, maxIter int, counts []int) {
	for i := range cr {
		counts[i] = Escape(cr[i], ci[i], maxIter)
	}
}
