package raster

import (
	"math"

	"github.com/taigrr/sw3d/pkg/math3d"
)

// pipeline holds the shared state a Renderer and an Occluder both rasterize
// against: a depth buffer, the view/projection pair, and the dispatch
// knobs that select how a triangle is culled and depth-tested. It has no
// public surface of its own — Renderer and Occluder embed it and expose
// the operations spec.md names.
type pipeline struct {
	depth      *DepthBuffer
	width      int
	height     int
	view       math3d.Mat4
	projection math3d.Mat4
	faceMode   FaceMode
	depthMode  DepthMode
	zWrite     bool
}

func newPipeline(width, height int) pipeline {
	return pipeline{
		depth:      NewDepthBuffer(width, height),
		width:      width,
		height:     height,
		view:       math3d.Identity(),
		projection: math3d.Identity(),
		faceMode:   FaceBoth,
		depthMode:  DepthLess,
		zWrite:     true,
	}
}

func (p *pipeline) resize(width, height int) {
	p.width, p.height = width, height
	p.depth.Resize(width, height)
}

// cameraPosition reads the camera's world position out of the inverse view
// matrix, used for world-space back-face culling.
func (p *pipeline) cameraPosition() math3d.Vec3 {
	return p.view.Inverse().Translation()
}

// faceVisible applies FaceMode to a world-space face normal and the
// direction from the first vertex to the camera. Computed on positions
// transformed only by the model matrix, before any vertex shader runs.
func (p *pipeline) faceVisible(p0, p1, p2 math3d.Vec3) bool {
	if p.faceMode == FaceBoth {
		return true
	}
	faceNormal := p1.Sub(p0).Cross(p2.Sub(p0))
	toCamera := p.cameraPosition().Sub(p0)
	dot := faceNormal.Dot(toCamera)
	if p.faceMode == FaceFront {
		return dot > 0
	}
	return dot <= 0 // FaceBack
}

// screenVertex is a vertex after the full proj*view*model transform,
// perspective divide and viewport mapping.
type screenVertex struct {
	X, Y, Z float64 // Z is screen-space depth: 1 - ndc.Z, larger is closer
	bundle  VertexBundle
}

// normalMatrix computes transpose(inverse(upper-left 3x3 of model)),
// extended back out to a Mat4 whose translation row/column is inert for
// MulVec3Dir use.
func normalMatrix(model math3d.Mat4) math3d.Mat4 {
	return model.Inverse().Transpose()
}

// projectVertex runs a vertex through the material's vertex stage and maps
// the result into screen space. Returns ok=false if the vertex sits behind
// the camera (w<=0), since this pipeline does no near-plane clipping.
func (p *pipeline) projectVertex(mat Material, in VertexBundle, model, normalMat math3d.Mat4) (screenVertex, bool) {
	out := mat.VertexStage(in, p.projection, p.view, model, normalMat)
	clip := out.Position
	if clip.W <= 0 {
		return screenVertex{}, false
	}
	ndc := clip.PerspectiveDivide()

	var sv screenVertex
	sv.X = (ndc.X + 1) * 0.5 * float64(p.width)
	sv.Y = (1 - ndc.Y) * 0.5 * float64(p.height)
	sv.Z = 1 - ndc.Z
	sv.bundle = out
	return sv, true
}

// barycentric computes the barycentric weights of (px,py) against triangle
// (x0,y0)-(x1,y1)-(x2,y2) via the cross-product method: a near-zero-area
// triangle (|cross.z| < 1) can't be solved numerically and is forced to
// (-1,1,1), which always fails the "all components >= 0" inside test.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	ux := math3d.V3(x2-x0, x1-x0, x0-px)
	uy := math3d.V3(y2-y0, y1-y0, y0-py)
	u := ux.Cross(uy)
	if math.Abs(u.Z) < 1 {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func lerpBundle(a, b, c VertexBundle, bc math3d.Vec3) VertexBundle {
	var out VertexBundle
	out.UV = math3d.V2(
		a.UV.X*bc.X+b.UV.X*bc.Y+c.UV.X*bc.Z,
		a.UV.Y*bc.X+b.UV.Y*bc.Y+c.UV.Y*bc.Z,
	)
	out.UV2 = math3d.V2(
		a.UV2.X*bc.X+b.UV2.X*bc.Y+c.UV2.X*bc.Z,
		a.UV2.Y*bc.X+b.UV2.Y*bc.Y+c.UV2.Y*bc.Z,
	)
	out.Normal = math3d.V3(
		a.Normal.X*bc.X+b.Normal.X*bc.Y+c.Normal.X*bc.Z,
		a.Normal.Y*bc.X+b.Normal.Y*bc.Y+c.Normal.Y*bc.Z,
		a.Normal.Z*bc.X+b.Normal.Z*bc.Y+c.Normal.Z*bc.Z,
	)
	out.Color = math3d.V3(
		a.Color.X*bc.X+b.Color.X*bc.Y+c.Color.X*bc.Z,
		a.Color.Y*bc.X+b.Color.Y*bc.Y+c.Color.Y*bc.Z,
		a.Color.Z*bc.X+b.Color.Z*bc.Y+c.Color.Z*bc.Z,
	)
	return out
}

// rasterizeTriangle walks the triangle's screen-space bounding box (clamped
// to the viewport), tests each covered pixel with linear-interpolated
// (not perspective-correct) attributes, and hands passing fragments to
// fill. fill reports whether the fragment was kept; only a kept fragment
// has its depth written (when zWrite is on and the mode is not DepthNone).
func (p *pipeline) rasterizeTriangle(sv [3]screenVertex, fill func(x, y int, bundle VertexBundle, z float64) bool) {
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(p.width-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(p.height-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			bc := barycentric(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y, sv[2].X, sv[2].Y, px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if !p.depth.Test(x, y, z, p.depthMode) {
				continue
			}

			bundle := lerpBundle(sv[0].bundle, sv[1].bundle, sv[2].bundle, bc)
			passed := fill(x, y, bundle, z)
			if passed && p.zWrite && p.depthMode != DepthNone {
				p.depth.Set(x, y, z)
			}
		}
	}
}
