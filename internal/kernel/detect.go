package kernel

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Features reports the vector capabilities relevant to kernel selection.
type Features struct {
	AVX512F bool
	AVX2    bool
	FMA     bool
	ASIMD   bool
}

// features is read once; CPU capabilities do not change while running.
var features = sync.OnceValue(func() Features {
	return Features{
		AVX512F: cpu.X86.HasAVX512F,
		AVX2:    cpu.X86.HasAVX2,
		FMA:     cpu.X86.HasFMA,
		ASIMD:   cpu.ARM64.HasASIMD,
	}
})

// CPUFeatures returns the detected capabilities.
func CPUFeatures() Features {
	return features()
}

// Detect returns the widest kernel kind worth using on this CPU.
func Detect() Kind {
	return choose(features())
}

func choose(f Features) Kind {
	switch {
	case f.AVX512F:
		return KindLanes8
	case f.AVX2, f.ASIMD:
		return KindLanes4
	default:
		return KindScalar
	}
}
