package wide

import (
	"math"
	"testing"
)

func TestSplatF64x4(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0.0},
		{"one", 1.0},
		{"negative", -2.5},
		{"tiny", 1e-300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatF64x4(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("lane %d = %g, want %g", i, v, tt.value)
				}
			}
		})
	}
}

func TestF64x4_Arithmetic(t *testing.T) {
	a := F64x4{1, 2, 3, 4}
	b := F64x4{0.5, -2, 3, 10}

	tests := []struct {
		name string
		got  F64x4
		want F64x4
	}{
		{"add", a.Add(b), F64x4{1.5, 0, 6, 14}},
		{"sub", a.Sub(b), F64x4{0.5, 4, 0, -6}},
		{"mul", a.Mul(b), F64x4{0.5, -4, 9, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestF64x4_MulMatchesScalar(t *testing.T) {
	a := F64x4{0.1, 1.0 / 3, -0.7, 1e10}
	b := F64x4{0.2, 3, 0.7, 1e-10}
	got := a.Mul(b)
	for i := range a {
		if want := float64(a[i] * b[i]); got[i] != want {
			t.Errorf("lane %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestF64x4_LessEqual(t *testing.T) {
	v := F64x4{1, 4, 5, math.NaN()}
	got := v.LessEqual(SplatF64x4(4))
	want := I64x4{-1, -1, 0, 0}
	if got != want {
		t.Errorf("LessEqual() = %v, want %v", got, want)
	}
}

func TestI64x4_MaskOps(t *testing.T) {
	n := I64x4{0, 5, 10, 1 << 40}
	limit := SplatI64x4(10)

	less := n.Less(limit)
	if want := (I64x4{-1, -1, 0, 0}); less != want {
		t.Errorf("Less() = %v, want %v", less, want)
	}

	step := less.And(SplatI64x4(1))
	if want := (I64x4{1, 1, 0, 0}); step != want {
		t.Errorf("And() = %v, want %v", step, want)
	}

	if got, want := n.Add(step), (I64x4{1, 6, 10, 1 << 40}); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestI64x4_Any(t *testing.T) {
	tests := []struct {
		name string
		v    I64x4
		want bool
	}{
		{"zero", I64x4{}, false},
		{"first", I64x4{-1, 0, 0, 0}, true},
		{"last", I64x4{0, 0, 0, 1}, true},
		{"all", SplatI64x4(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Any(); got != tt.want {
				t.Errorf("Any() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestF64x8_Ops(t *testing.T) {
	a := F64x8{1, 2, 3, 4, 5, 6, 7, 8}
	b := SplatF64x8(2)

	if got, want := a.Mul(b), (F64x8{2, 4, 6, 8, 10, 12, 14, 16}); got != want {
		t.Errorf("Mul() = %v, want %v", got, want)
	}
	if got, want := a.Sub(b).Add(b), a; got != want {
		t.Errorf("Sub().Add() = %v, want %v", got, want)
	}

	mask := a.LessEqual(SplatF64x8(4))
	if want := (I64x8{-1, -1, -1, -1, 0, 0, 0, 0}); mask != want {
		t.Errorf("LessEqual() = %v, want %v", mask, want)
	}
	if !mask.Any() {
		t.Error("Any() = false for a non-empty mask")
	}
	if SplatI64x8(0).Any() {
		t.Error("Any() = true for an empty mask")
	}

	counts := SplatI64x8(3).Less(SplatI64x8(4)).And(SplatI64x8(1))
	if want := SplatI64x8(1); counts != want {
		t.Errorf("Less().And() = %v, want %v", counts, want)
	}
}
