package mandel

import (
	"errors"
	"testing"
)

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name string
		want Palette
	}{
		{"", Ramp},
		{"ramp", Ramp},
		{" Gray ", Grayscale},
		{"grayscale", Grayscale},
	}
	for _, tt := range tests {
		p, err := ParsePalette(tt.name)
		if err != nil {
			t.Fatalf("ParsePalette(%q) error = %v", tt.name, err)
		}
		if p(37, 100) != tt.want(37, 100) {
			t.Errorf("ParsePalette(%q) returned the wrong palette", tt.name)
		}
	}

	if _, err := ParsePalette("plasma"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("ParsePalette(plasma) error = %v, want ErrUnknownPalette", err)
	}
}

func TestParseKernelKind(t *testing.T) {
	tests := map[string]KernelKind{
		"auto":   KernelAuto,
		"scalar": KernelScalar,
		"x4":     KernelLanes4,
		"x8":     KernelLanes8,
	}
	for s, want := range tests {
		got, err := ParseKernelKind(s)
		if err != nil || got != want {
			t.Errorf("ParseKernelKind(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	if _, err := ParseKernelKind("avx1024"); err == nil {
		t.Error("ParseKernelKind(avx1024) should fail")
	}
}

func TestDetectKernel(t *testing.T) {
	switch k := DetectKernel(); k {
	case KernelScalar, KernelLanes4, KernelLanes8:
	default:
		t.Errorf("DetectKernel() = %v, want a concrete kind", k)
	}
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(3, 2)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
	if _, err := NewGrid(0, 5); err == nil {
		t.Error("NewGrid(0, 5) should fail")
	}
}
