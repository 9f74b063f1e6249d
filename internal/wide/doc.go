// Package wide provides SIMD-friendly lane types for the escape-time kernels.
//
// The types are fixed-size arrays operated on with simple loops so the Go
// compiler can keep them in vector registers and auto-vectorize the
// element-wise operations on SSE, AVX and NEON targets.
//
// # Lane Types
//
// F64x4, F64x8: 4 or 8 float64 lanes holding complex-plane coordinates and
// orbit values.
//
// I64x4, I64x8: 4 or 8 int64 lanes holding per-lane iteration counters and
// comparison masks.
//
// # Masks
//
// Comparisons return an integer vector whose lanes are all ones (-1) where
// the comparison holds and zero elsewhere, the same convention AVX uses for
// vcmppd. Masks combine with And and are tested with Any.
//
// # Rounding
//
// Mul rounds every product explicitly. Without the conversion the compiler
// is allowed to fuse a following Add into an FMA, which would make a lane
// disagree with the scalar kernel in the last bit and eventually in the
// escape count.
//
// # Usage Example
//
//	four := wide.SplatF64x4(4)
//	live := zr2.Add(zi2).LessEqual(four).And(n.Less(limit))
//	if !live.Any() {
//		return
//	}
//	n = n.Add(live.And(wide.SplatI64x4(1)))
package wide
