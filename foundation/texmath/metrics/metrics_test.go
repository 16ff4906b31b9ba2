package metrics

import "testing"

func TestHeightAndDepth(t *testing.T) {
	tests := []struct {
		value         string
		height, depth float64
	}{
		{"x", 0.430554, 0},
		{"b", 0.694444, 0},
		{"j", 0.659525, 0.194444},
		{"t", 0.615079, 0},
		{"y", 0.430554, 0.194444},
		{"Q", 0.683331, 0.194444},
		{"+", 0.583333, 0.083333},
		{"2", DefaultHeight, DefaultDepth},
		{`\alpha`, DefaultHeight, DefaultDepth},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := Height(tt.value); got != tt.height {
				t.Errorf("Height(%q) = %v, want %v", tt.value, got, tt.height)
			}
			if got := Depth(tt.value); got != tt.depth {
				t.Errorf("Depth(%q) = %v, want %v", tt.value, got, tt.depth)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	tests := map[string]string{
		`\alpha`: "α",
		`\cdot`:  "⋅",
		"-":      "−",
		`\ `:     "\u00a0",
		"x":      "x",
		`\Omega`: "Ω",
	}
	for in, want := range tests {
		if got := Glyph(in); got != want {
			t.Errorf("Glyph(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSizeMultiplier(t *testing.T) {
	if SizeMultiplier(5) != 1.0 || SizeMultiplier(1) != 0.5 || SizeMultiplier(10) != 2.49 {
		t.Error("unexpected size multipliers")
	}
	if SizeMultiplier(0) != 1.0 || SizeMultiplier(11) != 1.0 {
		t.Error("out of range sizes should scale by 1")
	}
	for i := 2; i <= 10; i++ {
		if SizeMultiplier(i) <= SizeMultiplier(i-1) {
			t.Errorf("size %d is not larger than size %d", i, i-1)
		}
	}
}

func TestSpaceWidth(t *testing.T) {
	if w, ok := SpaceWidth("quad"); !ok || w != 1 {
		t.Errorf("quad = %v, %v", w, ok)
	}
	if w, _ := SpaceWidth("negativethinspace"); w >= 0 {
		t.Errorf("negative thin space should be negative, got %v", w)
	}
	if _, ok := SpaceWidth("hugespace"); ok {
		t.Error("unknown spacer class should not resolve")
	}
}
