package raster

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture holds a 2D image for texture mapping. A Width==Height==0 texture
// is the "invalid" sentinel: every sample from it reads back opaque white.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color // row-major pixel data, len == Width*Height
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates an empty (all-zero, transparent black) texture with the
// given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:      width,
		Height:     height,
		Pixels:     make([]Color, width*height),
		WrapU:      WrapRepeat,
		WrapV:      WrapRepeat,
		FilterMode: FilterNearest,
	}
}

// LoadTexture loads a texture from an image file (PNG/JPEG via image.Decode).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := c.RGBA()
			tex.SetPixel(x, y, Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)})
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			cx := x / checkSize
			cy := y / checkSize
			if (cx+cy)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// NewGradientTexture creates a horizontal gradient texture.
func NewGradientTexture(width, height int, left, right Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			t := float64(x) / float64(width-1)
			tex.SetPixel(x, y, lerpColor(left, right, t))
		}
	}
	return tex
}

// IsValid reports whether the texture has pixel data to sample.
func (t *Texture) IsValid() bool {
	return t != nil && t.Width > 0 && t.Height > 0
}

// SetPixel sets a pixel in the texture, no bounds check.
func (t *Texture) SetPixel(x, y int, c Color) {
	t.Pixels[y*t.Width+x] = c
}

// GetColor does an integer pixel fetch, wrapping both axes. An invalid
// (empty) texture reads back as opaque white.
func (t *Texture) GetColor(x, y int) Color {
	if !t.IsValid() {
		return ColorWhite
	}
	x = wrapPixelCoord(x, t.Width, WrapRepeat)
	y = wrapPixelCoord(y, t.Height, WrapRepeat)
	return t.Pixels[y*t.Width+x]
}

// Sample samples the texture at normalized UV coordinates (0-1 range),
// wrapping per WrapU/WrapV and flipping V so that v=0 addresses the bottom
// row of the source image. An invalid texture samples as opaque white.
func (t *Texture) Sample(u, v float64) Color {
	if !t.IsValid() {
		return ColorWhite
	}

	u = t.wrapCoord(u, t.WrapU)
	v = t.wrapCoord(v, t.WrapV)
	v = 1.0 - v

	switch t.FilterMode {
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		return t.sampleNearest(u, v)
	}
}

func (t *Texture) wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord = coord - math.Floor(coord)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}

func (t *Texture) sampleNearest(u, v float64) Color {
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x0 = wrapPixelCoord(x0, t.Width, t.WrapU)
	x1 = wrapPixelCoord(x1, t.Width, t.WrapU)
	y0 = wrapPixelCoord(y0, t.Height, t.WrapV)
	y1 = wrapPixelCoord(y1, t.Height, t.WrapV)

	c00 := t.Pixels[y0*t.Width+x0]
	c10 := t.Pixels[y0*t.Width+x1]
	c01 := t.Pixels[y1*t.Width+x0]
	c11 := t.Pixels[y1*t.Width+x1]

	top := lerpColor(c00, c10, tx)
	bot := lerpColor(c01, c11, tx)
	return lerpColor(top, bot, ty)
}

func wrapPixelCoord(x, size int, mode WrapMode) int {
	switch mode {
	case WrapClamp:
		if x < 0 {
			return 0
		}
		if x >= size {
			return size - 1
		}
		return x
	default: // WrapRepeat
		x = x % size
		if x < 0 {
			x += size
		}
		return x
	}
}
