package kernel

import "github.com/gogpu/mandel/internal/wide"

// Lanes4 evaluates up to 4 points in lockstep.
//
// A lane stays live while its orbit is bounded and its counter is below the
// cap; once it drops out it never comes back, and only live lanes count.
// The loop ends when no lane is live. Unused lanes start at Sentinel and are
// never live.
type Lanes4 struct{}

// Name implements Kernel.
func (Lanes4) Name() string { return "x4" }

// Lanes implements Kernel.
func (Lanes4) Lanes() int { return 4 }

// Escape implements Kernel.
func (k Lanes4) Escape(cr, ci []float64, maxIter int, counts []int) {
	checkBatch(k, cr, ci, counts)

	var vcr, vci wide.F64x4
	n := wide.SplatI64x4(Sentinel)
	for i := range cr {
		vcr[i] = cr[i]
		vci[i] = ci[i]
		n[i] = 0
	}

	limit := wide.SplatI64x4(int64(maxIter))
	four := wide.SplatF64x4(4)
	two := wide.SplatF64x4(2)
	one := wide.SplatI64x4(1)
	live := wide.SplatI64x4(-1)

	var zr, zi, zr2, zi2 wide.F64x4
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
