package raster

import (
	"image"
	"image/png"
	"os"
)

// Framebuffer is a 2D grid of RGBA8 pixels stored as a flat, row-major
// byte span with no row padding: Pixels[(y*Width+x)*4 : ...+4] is (r,g,b,a).
type Framebuffer struct {
	Width, Height int
	Pixels        []byte
	ClearColor    Color
}

// NewFramebuffer creates a new framebuffer with the given dimensions,
// cleared to opaque black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]byte, width*height*4),
		ClearColor: ColorBlack,
	}
	fb.Clear()
	return fb
}

// Resize reallocates the pixel span for new dimensions and clears it.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]byte, width*height*4)
	fb.Clear()
}

// Clear fills the framebuffer with ClearColor.
func (fb *Framebuffer) Clear() {
	if len(fb.Pixels) == 0 {
		return
	}
	fb.Pixels[0] = fb.ClearColor.R
	fb.Pixels[1] = fb.ClearColor.G
	fb.Pixels[2] = fb.ClearColor.B
	fb.Pixels[3] = fb.ClearColor.A
	for i := 4; i < len(fb.Pixels); i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// inBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel writes a pixel at (x, y), bounds-checked.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.inBounds(x, y) {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2], fb.Pixels[i+3] = c.R, c.G, c.B, c.A
}

// GetPixel reads the color at (x, y). Returns transparent black out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.inBounds(x, y) {
		return Color{}
	}
	i := (y*fb.Width + x) * 4
	return Color{fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2], fb.Pixels[i+3]}
}

// blendPixel composites c onto the pixel at (x, y) using the alpha rule:
// a<=0 is a no-op, a>=1 (255) is a direct write, otherwise
// mix(dst, vec4(rgb,1), a) per-channel, alpha included, so the stored
// alpha itself moves toward opaque by the same factor as the color.
func (fb *Framebuffer) blendPixel(x, y int, c Color) {
	if c.A == 0 {
		return
	}
	if c.A >= 255 {
		fb.SetPixel(x, y, c)
		return
	}
	dst := fb.GetPixel(x, y)
	t := float64(c.A) / 255.0
	mix := func(d, s uint8) uint8 {
		return uint8(float64(d) + (float64(s)-float64(d))*t)
	}
	fb.SetPixel(x, y, Color{mix(dst.R, c.R), mix(dst.G, c.G), mix(dst.B, c.B), mix(dst.A, 255)})
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using the same
// steep-slope-swap Bresenham walk regardless of which endpoint is given
// first, so DrawLine(a, b) and DrawLine(b, a) paint the identical pixel set.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	derror2 := abs(dy) * 2
	error2 := 0
	y := y0
	ystep := 1
	if y1 < y0 {
		ystep = -1
	}

	for x := x0; x <= x1; x++ {
		if steep {
			fb.SetPixel(y, x, c)
		} else {
			fb.SetPixel(x, y, c)
		}
		error2 += derror2
		if error2 > dx {
			y += ystep
			error2 -= dx * 2
		}
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawRectOutline draws a rectangle outline.
func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, c Color) {
	for px := x; px < x+w; px++ {
		fb.SetPixel(px, y, c)
		fb.SetPixel(px, y+h-1, c)
	}
	for py := y; py < y+h; py++ {
		fb.SetPixel(x, py, c)
		fb.SetPixel(x+w-1, py, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GetResult returns the raw RGBA8 byte span backing the framebuffer.
func (fb *Framebuffer) GetResult() []byte {
	return fb.Pixels
}

// ToImage converts the framebuffer to a standard Go image.RGBA, sharing
// the underlying byte slice (no per-pixel copy).
func (fb *Framebuffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pixels,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

// DepthBuffer is a 2D grid of depth samples. Screen-space depth follows
// the convention z' = 1 - z_ndc: larger values are closer to the camera.
// Clearing sets every sample to 0.0, the farthest possible value.
type DepthBuffer struct {
	Width, Height int
	Depth         []float64
}

// NewDepthBuffer creates a depth buffer already cleared to 0.0.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{Width: width, Height: height, Depth: make([]float64, width*height)}
}

// Resize reallocates and clears the depth buffer for new dimensions.
func (d *DepthBuffer) Resize(width, height int) {
	d.Width = width
	d.Height = height
	d.Depth = make([]float64, width*height)
}

// Clear resets every sample to 0.0.
func (d *DepthBuffer) Clear() {
	for i := range d.Depth {
		d.Depth[i] = 0
	}
}

func (d *DepthBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// Get returns the depth at (x, y), or 0 out of bounds.
func (d *DepthBuffer) Get(x, y int) float64 {
	if !d.inBounds(x, y) {
		return 0
	}
	return d.Depth[y*d.Width+x]
}

// Set writes the depth at (x, y).
func (d *DepthBuffer) Set(x, y int, z float64) {
	if !d.inBounds(x, y) {
		return
	}
	d.Depth[y*d.Width+x] = z
}

// DepthMode selects how a candidate depth is compared against the buffer.
type DepthMode int

const (
	// DepthNone never tests or writes depth; every fragment passes.
	DepthNone DepthMode = iota
	// DepthLess passes when the stored depth is less than the candidate
	// (the candidate is closer than what's already there).
	DepthLess
	// DepthGreater passes when the stored depth is greater than the
	// candidate (the candidate is farther than what's already there).
	DepthGreater
)

// Test reports whether a candidate depth passes against the stored depth
// at (x, y) under the given mode.
func (d *DepthBuffer) Test(x, y int, candidate float64, mode DepthMode) bool {
	switch mode {
	case DepthNone:
		return true
	case DepthGreater:
		return d.Get(x, y) > candidate
	default: // DepthLess
		return d.Get(x, y) < candidate
	}
}

// FaceMode selects which winding(s) of a triangle are rasterized.
type FaceMode int

const (
	FaceBoth FaceMode = iota
	FaceFront
	FaceBack
)
