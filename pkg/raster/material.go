package raster

import (
	"math"

	"github.com/taigrr/sw3d/pkg/math3d"
)

// Material is the programmable pair the rasterizer drives every vertex and
// fragment through. VertexStage runs once per vertex per draw and receives
// the projection, view, model and normal matrices so it can place the
// vertex in clip space itself; FragmentStage runs once per covered pixel
// and returns straight (non-premultiplied) RGBA with every channel, alpha
// included, on the 0-255 byte scale. The renderer clamps each channel to
// [0,255] when compositing: an alpha below 1 leaves the pixel's color
// unchanged, 255 or above overwrites it, and values between blend by
// alpha/255. Channels given on a [0,1] scale are not rescaled.
type Material interface {
	VertexStage(in VertexBundle, proj, view, model, normalMat math3d.Mat4) VertexBundle
	FragmentStage(in VertexBundle) [4]float64
}

// DefaultMaterial transforms position by proj*view*model and the normal by
// the normal matrix, and shades every fragment opaque white. It is the
// pipeline's zero value behavior: a mesh drawn with no other material still
// rasterizes, it's just blank.
type DefaultMaterial struct{}

func (DefaultMaterial) VertexStage(in VertexBundle, proj, view, model, normalMat math3d.Mat4) VertexBundle {
	out := in
	mvp := proj.Mul(view).Mul(model)
	out.Position = mvp.MulVec4(in.Position)
	out.Normal = normalMat.MulVec3Dir(in.Normal).Normalize()
	return out
}

func (DefaultMaterial) FragmentStage(VertexBundle) [4]float64 {
	return [4]float64{255, 255, 255, 255}
}

// LitMaterial shades a flat base color with a single directional light,
// using the same ambient+diffuse formula the teacher's DrawTriangleLit
// used: intensity = 0.3 + 0.7*max(dot(n, l), 0).
type LitMaterial struct {
	BaseColor math3d.Vec3 // 0-255 per channel
	LightDir  math3d.Vec3 // world-space direction *toward* the light
	Alpha     float64     // 0-255
}

func (m LitMaterial) VertexStage(in VertexBundle, proj, view, model, normalMat math3d.Mat4) VertexBundle {
	return DefaultMaterial{}.VertexStage(in, proj, view, model, normalMat)
}

func (m LitMaterial) FragmentStage(in VertexBundle) [4]float64 {
	intensity := lightIntensity(in.Normal, m.LightDir)
	a := m.Alpha
	if a == 0 {
		a = 255
	}
	return [4]float64{m.BaseColor.X * intensity, m.BaseColor.Y * intensity, m.BaseColor.Z * intensity, a}
}

// TexturedMaterial samples a texture at the fragment's UV and modulates it
// by per-fragment directional lighting, mirroring the teacher's
// DrawTriangleTextured path.
type TexturedMaterial struct {
	Texture  *Texture
	LightDir math3d.Vec3
}

func (m TexturedMaterial) VertexStage(in VertexBundle, proj, view, model, normalMat math3d.Mat4) VertexBundle {
	return DefaultMaterial{}.VertexStage(in, proj, view, model, normalMat)
}

func (m TexturedMaterial) FragmentStage(in VertexBundle) [4]float64 {
	c := m.Texture.Sample(in.UV.X, in.UV.Y)
	intensity := lightIntensity(in.Normal, m.LightDir)
	return [4]float64{float64(c.R) * intensity, float64(c.G) * intensity, float64(c.B) * intensity, float64(c.A)}
}

// TransparentMaterial flat-shades a base color with lighting like
// LitMaterial, but always returns its own Alpha verbatim, making it the
// natural material to reach for when a draw call needs alpha blending.
type TransparentMaterial struct {
	BaseColor math3d.Vec3
	LightDir  math3d.Vec3
	Alpha     float64 // 0-255
}

func (m TransparentMaterial) VertexStage(in VertexBundle, proj, view, model, normalMat math3d.Mat4) VertexBundle {
	return DefaultMaterial{}.VertexStage(in, proj, view, model, normalMat)
}

func (m TransparentMaterial) FragmentStage(in VertexBundle) [4]float64 {
	intensity := lightIntensity(in.Normal, m.LightDir)
	return [4]float64{m.BaseColor.X * intensity, m.BaseColor.Y * intensity, m.BaseColor.Z * intensity, m.Alpha}
}

func lightIntensity(normal, lightDir math3d.Vec3) float64 {
	l := lightDir.Normalize()
	d := math.Max(0, normal.Normalize().Dot(l))
	return 0.3 + 0.7*d
}
