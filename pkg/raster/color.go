// Package raster implements a tiny software 3D rasterizer: a framebuffer,
// depth buffer, triangle/line primitives and a programmable-material mesh
// pipeline, all driven purely on the CPU.
package raster

// Color is four 8-bit channels, row-major RGBA, matching the byte layout
// the framebuffer and textures store pixels in.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Common colors.
var (
	ColorBlack = Color{0, 0, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
	ColorRed   = Color{255, 0, 0, 255}
	ColorGreen = Color{0, 255, 0, 255}
	ColorBlue  = Color{0, 0, 255, 255}
)

// Vec4 returns the color as a signed 32-bit integer 4-vector (R,G,B,A), the
// form the rasterizer core does blend arithmetic in.
func (c Color) Vec4() [4]int32 {
	return [4]int32{int32(c.R), int32(c.G), int32(c.B), int32(c.A)}
}

// colorFromVec4 clamps a float RGBA vector (channels may run outside
// [0,255] mid-computation) back down to a Color.
func colorFromVec4(v [4]float64) Color {
	clamp := func(f float64) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 255 {
			return 255
		}
		return uint8(f)
	}
	return Color{clamp(v[0]), clamp(v[1]), clamp(v[2]), clamp(v[3])}
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// MultiplyColor multiplies a color by a scalar (for lighting).
func MultiplyColor(c Color, intensity float64) Color {
	clamp := func(f float64) uint8 {
		if f >= 255 {
			return 255
		}
		if f <= 0 {
			return 0
		}
		return uint8(f)
	}
	return Color{clamp(float64(c.R) * intensity), clamp(float64(c.G) * intensity), clamp(float64(c.B) * intensity), c.A}
}

// ModulateColor modulates one color by another (texture * vertex color).
func ModulateColor(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) * int(b.R)) / 255),
		G: uint8((int(a.G) * int(b.G)) / 255),
		B: uint8((int(a.B) * int(b.B)) / 255),
		A: uint8((int(a.A) * int(b.A)) / 255),
	}
}
