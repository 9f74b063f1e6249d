package kernel

import "testing"

func benchmarkKernel(b *testing.B, k Kernel) {
	cr, ci := samplePoints()
	counts := make([]int, len(cr))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for start := 0; start < len(cr); start += k.Lanes() {
			end := min(start+k.Lanes(), len(cr))
			k.Escape(cr[start:end], ci[start:end], 256, counts[start:end])
		}
	}
}

func BenchmarkScalar(b *testing.B) { benchmarkKernel(b, Scalar{}) }
func BenchmarkLanes4(b *testing.B) { benchmarkKernel(b, Lanes4{}) }
func BenchmarkLanes8(b *testing.B) { benchmarkKernel(b, Lanes8{}) }
