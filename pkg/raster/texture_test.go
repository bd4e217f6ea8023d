package raster

import "testing"

func TestTextureInvalidSamplesWhite(t *testing.T) {
	var tex *Texture
	if tex.IsValid() {
		t.Fatal("nil texture should be invalid")
	}
	if got := tex.GetColor(0, 0); got != ColorWhite {
		t.Errorf("GetColor on invalid texture = %v, want white", got)
	}
	if got := tex.Sample(0.5, 0.5); got != ColorWhite {
		t.Errorf("Sample on invalid texture = %v, want white", got)
	}

	empty := NewTexture(0, 0)
	if empty.IsValid() {
		t.Fatal("0x0 texture should be invalid")
	}
}

func TestTextureGetColorWraps(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGB(1, 0, 0))
	tex.SetPixel(1, 0, RGB(2, 0, 0))
	tex.SetPixel(0, 1, RGB(3, 0, 0))
	tex.SetPixel(1, 1, RGB(4, 0, 0))

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 1},
		{2, 0, 1},  // wraps to x=0
		{-1, 0, 2}, // wraps to x=1
		{0, 2, 1},  // wraps to y=0
		{0, -1, 3}, // wraps to y=1
	}

	for _, tc := range tests {
		if got := tex.GetColor(tc.x, tc.y).R; got != tc.want {
			t.Errorf("GetColor(%d,%d).R = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestTextureSampleVFlip(t *testing.T) {
	// Top row (y=0) is red, bottom row (y=1) is blue. Sample v=0 should
	// address the bottom row (blue) per the V-flip convention.
	tex := NewTexture(1, 2)
	tex.SetPixel(0, 0, RGB(255, 0, 0))
	tex.SetPixel(0, 1, RGB(0, 0, 255))

	bottom := tex.Sample(0.5, 0.0)
	if bottom.B != 255 {
		t.Errorf("Sample(v=0) = %v, want blue (bottom row)", bottom)
	}

	top := tex.Sample(0.5, 0.99)
	if top.R != 255 {
		t.Errorf("Sample(v=~1) = %v, want red (top row)", top)
	}
}

func TestWrapPixelCoordModes(t *testing.T) {
	tests := []struct {
		name string
		x    int
		size int
		mode WrapMode
		want int
	}{
		{"repeat positive overflow", 5, 4, WrapRepeat, 1},
		{"repeat negative", -1, 4, WrapRepeat, 3},
		{"clamp positive overflow", 5, 4, WrapClamp, 3},
		{"clamp negative", -1, 4, WrapClamp, 0},
		{"in range", 2, 4, WrapRepeat, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapPixelCoord(tc.x, tc.size, tc.mode); got != tc.want {
				t.Errorf("wrapPixelCoord(%d, %d, %v) = %d, want %d", tc.x, tc.size, tc.mode, got, tc.want)
			}
		})
	}
}

func TestCheckerTextureAlternates(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 1, RGB(255, 255, 255), RGB(0, 0, 0))
	if tex.GetColor(0, 0) == tex.GetColor(1, 0) {
		t.Error("adjacent checker cells should differ")
	}
}
