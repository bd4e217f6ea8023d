// Package scene provides small debug-overlay helpers (axes, grid) built on
// top of a raster.Renderer and a camera.Camera — conveniences for the
// interactive viewer, not part of the core rasterizer pipeline.
package scene

import (
	"github.com/taigrr/sw3d/pkg/camera"
	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/raster"
)

// Wireframe draws camera-projected debug lines directly into a Renderer's
// framebuffer, bypassing the depth-tested mesh pipeline (these are always
// drawn on top).
type Wireframe struct {
	Cam *camera.Camera
	R   *raster.Renderer
}

// NewWireframe creates a debug-overlay helper bound to a camera and renderer.
func NewWireframe(cam *camera.Camera, r *raster.Renderer) *Wireframe {
	return &Wireframe{Cam: cam, R: r}
}

func (w *Wireframe) projectLine(p1, p2 math3d.Vec3) (a, b [2]int, ok bool) {
	vp := w.Cam.ViewProjectionMatrix()
	c1 := vp.MulVec4(math3d.V4FromV3(p1, 1))
	c2 := vp.MulVec4(math3d.V4FromV3(p2, 1))
	if c1.W <= 0 && c2.W <= 0 {
		return a, b, false
	}
	if c1.W > 0 {
		c1.X /= c1.W
		c1.Y /= c1.W
	}
	if c2.W > 0 {
		c2.X /= c2.W
		c2.Y /= c2.W
	}
	width, height := float64(w.R.Width()), float64(w.R.Height())
	a = [2]int{int((c1.X + 1) * 0.5 * width), int((1 - c1.Y) * 0.5 * height)}
	b = [2]int{int((c2.X + 1) * 0.5 * width), int((1 - c2.Y) * 0.5 * height)}
	return a, b, true
}

// DrawLine3D projects and draws a single 3D line.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, col raster.Color) {
	a, b, ok := w.projectLine(p1, p2)
	if !ok {
		return
	}
	w.R.DrawLine(a, b, col)
}

// DrawAxes draws the X (red), Y (green), Z (blue) axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), raster.ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), raster.ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), raster.ColorBlue)
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (w *Wireframe) DrawGrid(size, step float64, col raster.Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), col)
	}
	for z := -half; z <= half; z += step {
		w.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), col)
	}
}
