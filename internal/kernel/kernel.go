// Package kernel evaluates the escape-time recurrence z = z² + c.
//
// A Kernel maps a batch of complex-plane coordinates to iteration counts.
// Three implementations exist: Scalar evaluates one point at a time,
// Lanes4 and Lanes8 evaluate 4 or 8 points in lockstep using the lane types
// from internal/wide. All of them return bit-identical counts for the same
// coordinate, so the evaluator can switch between them without changing the
// rendered image.
//
// The count for c with cap N is the smallest n ≤ N such that |z_n|² > 4,
// or N if the orbit stays bounded for N steps.
package kernel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a kernel name or kind is not recognized.
var ErrUnknownKind = errors.New("kernel: unknown kind")

// Sentinel is the counter value preloaded into padding lanes. It is far
// above any usable iteration cap, so a padded lane never passes the
// below-cap test and never keeps the loop alive.
const Sentinel int64 = 1 << 62

// Kernel computes escape counts for a batch of coordinates.
//
// Escape writes into counts[i] the escape count of (cr[i], ci[i]).
// len(cr) must be in [1, Lanes()] and len(ci), len(counts) must be at
// least len(cr). Lane order is the identity: input i is lane i.
type Kernel interface {
	Name() string
	Lanes() int
	Escape(cr, ci []float64, maxIter int, counts []int)
}

// Kind selects a kernel implementation.
type Kind uint8

const (
	// KindAuto picks the widest kernel the CPU supports (see Detect).
	KindAuto Kind = iota

	// KindScalar evaluates one point per call.
	KindScalar

	// KindLanes4 evaluates 4 points per call.
	KindLanes4

	// KindLanes8 evaluates 8 points per call.
	KindLanes8
)

// String returns the kind name accepted by ParseKind.
func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindScalar:
		return "scalar"
	case KindLanes4:
		return "x4"
	case KindLanes8:
		return "x8"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts a kernel name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "scalar", "x1":
		return KindScalar, nil
	case "x4", "lanes4":
		return KindLanes4, nil
	case "x8", "lanes8":
		return KindLanes8, nil
	}
	return KindAuto, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New returns the kernel for kind. KindAuto resolves through Detect.
func New(kind Kind) (Kernel, error) {
	if kind == KindAuto {
		kind = Detect()
	}
	switch kind {
	case KindScalar:
		return Scalar{}, nil
	case KindLanes4:
		return Lanes4{}, nil
	case KindLanes8:
		return Lanes8{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// checkBatch panics when a caller hands a kernel more points than it has
// lanes or mismatched slices.
func checkBatch(k Kernel, cr, ci []float64, counts []int) {
	n := len(cr)
	if n == 0 || n > k.Lanes() || len(ci) < n || len(counts) < n {
		panic(fmt.Sprintf("kernel: %s: bad batch of %d points (ci=%d counts=%d lanes=%d)",
			k.Name(), n, len(ci), len(counts), k.Lanes()))
	}
}
