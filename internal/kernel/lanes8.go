package kernel

import "github.com/gogpu/mandel/internal/wide"

// Lanes8 evaluates up to 8 points in lockstep.
//
// A lane stays live while its orbit is bounded and its counter is below the
// cap; once it drops out it never comes back, and only live lanes count.
// The loop ends when no lane is live. Unused lanes start at Sentinel and are
// never live.
type Lanes8 struct{}

// Name implements Kernel.
func (Lanes8) Name() string { return "x8" }

// Lanes implements Kernel.
func (Lanes8) Lanes() int { return 8 }

// Escape implements Kernel.
func (k Lanes8) Escape(cr, ci []float64, maxIter int, counts []int) {
	checkBatch(k, cr, ci, counts)

	var vcr, vci wide.F64x8
	n := wide.SplatI64x8(Sentinel)
	for i := range cr {
		vcr[i] = cr[i]
		vci[i] = ci[i]
		n[i] = 0
	}

	limit := wide.SplatI64x8(int64(maxIter))
	four := wide.SplatF64x8(4)
	two := wide.SplatF64x8(2)
	one := wide.SplatI64x8(1)
	live := wide.SplatI64x8(-1)

	var zr, zi, zr2, zi2 wide.F64x8
	for {
		live = live.And(zr2.Add(zi2).LessEqual(four)).And(n.Less(limit))
		if !live.Any() {
			break
		}
		n = n.Add(live.And(one))

		zi = two.Mul(zi).Mul(zr).Add(vci)
		zr = zr2.Sub(zi2).Add(vcr)
		zr2 = zr.Mul(zr)
		zi2 = zi.Mul(zi)
	}

	for i := range cr {
		counts[i] = int(n[i])
	}
}
