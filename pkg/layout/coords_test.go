package layout

import (
	"strings"
	"testing"
)

func TestFrameFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want Frame
	}{
		{"paper", FrameRelative},
		{"pixel", FramePixel},
		{"x", FrameAbsolute},
		{"x2", FrameAbsolute},
		{"", FrameAbsolute},
	}
	for _, tt := range tests {
		if got := FrameFromRef(tt.ref); got != tt.want {
			t.Errorf("FrameFromRef(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestResolveFullyRelative(t *testing.T) {
	r := Resolve(0.5, 0.9, FrameRelative, FrameRelative, Bounds{}, Bounds{})
	if !r.FullyRelative {
		t.Fatal("both-relative input should stay relative")
	}
	if r.X != "0.5" || r.Y != "0.9" {
		t.Errorf("relative values should pass through, got (%s, %s)", r.X, r.Y)
	}
}

func TestResolveMixedFrames(t *testing.T) {
	xb := Bounds{Min: 0, Max: 10, Known: true}
	r := Resolve(0.5, 3, FrameRelative, FrameAbsolute, xb, Bounds{})

	if r.FullyRelative {
		t.Fatal("mixed input must not be fully relative")
	}
	if want := "0 + 0.5*10 - 0.5*0"; r.X != want {
		t.Errorf("X = %q, want %q", r.X, want)
	}
	if r.Y != "3" {
		t.Errorf("absolute Y should pass through, got %q", r.Y)
	}
}

func TestResolveSymbolicBounds(t *testing.T) {
	r := Resolve(0.25, 1, FrameRelative, FrameAbsolute, Bounds{}, Bounds{})
	if !strings.Contains(r.X, `\pgfkeysvalueof{/pgfplots/xmin}`) ||
		!strings.Contains(r.X, `\pgfkeysvalueof{/pgfplots/xmax}`) {
		t.Errorf("unknown bounds should resolve symbolically, got %q", r.X)
	}
}

func TestResolvePixelPassthrough(t *testing.T) {
	r := Resolve(120, 0.5, FramePixel, FrameRelative, Bounds{}, Bounds{Min: 0, Max: 1, Known: true})
	if r.X != "120" {
		t.Errorf("pixel X should pass through, got %q", r.X)
	}
}
