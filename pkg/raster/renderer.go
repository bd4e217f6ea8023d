package raster

import "github.com/taigrr/sw3d/pkg/math3d"

// Renderer is the public rasterizer façade: it owns a framebuffer and
// depth buffer, the current view/projection/face/depth state, and exposes
// every drawing primitive. Nothing in Renderer synchronizes its own state —
// see pkg/raster/async for a concurrent wrapper.
type Renderer struct {
	pipeline
	fb *Framebuffer
}

// NewRenderer creates a Renderer with a width x height framebuffer and
// depth buffer, default FaceBoth/DepthLess/zWrite=true state.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		pipeline: newPipeline(width, height),
		fb:       NewFramebuffer(width, height),
	}
}

// Resize reallocates the framebuffer and depth buffer for new dimensions.
func (r *Renderer) Resize(width, height int) {
	r.pipeline.resize(width, height)
	r.fb.Resize(width, height)
}

func (r *Renderer) Width() int  { return r.width }
func (r *Renderer) Height() int { return r.height }

func (r *Renderer) SetClearColor(c Color)       { r.fb.ClearColor = c }
func (r *Renderer) SetFaceMode(m FaceMode)      { r.faceMode = m }
func (r *Renderer) SetView(m math3d.Mat4)       { r.view = m }
func (r *Renderer) SetProjection(m math3d.Mat4) { r.projection = m }
func (r *Renderer) SetDepthMode(m DepthMode)    { r.depthMode = m }
func (r *Renderer) SetZWrite(on bool)           { r.zWrite = on }
func (r *Renderer) View() math3d.Mat4           { return r.view }
func (r *Renderer) Projection() math3d.Mat4     { return r.projection }
func (r *Renderer) FaceMode() FaceMode          { return r.faceMode }
func (r *Renderer) DepthMode() DepthMode        { return r.depthMode }
func (r *Renderer) ZWrite() bool                { return r.zWrite }

// Clear clears both the color and depth buffers — the usual start of a frame.
func (r *Renderer) Clear() {
	r.ClearFrameBuffer()
	r.ClearZBuffer()
}

func (r *Renderer) ClearFrameBuffer() { r.fb.Clear() }
func (r *Renderer) ClearZBuffer()     { r.depth.Clear() }

// DrawPoint writes a single pixel, bounds-checked.
func (r *Renderer) DrawPoint(x, y int, c Color) {
	r.fb.SetPixel(x, y, c)
}

// DrawLine draws a 2D line between two screen points.
func (r *Renderer) DrawLine(a, b [2]int, c Color) {
	r.fb.DrawLine(a[0], a[1], b[0], b[1], c)
}

// DrawTriangleWireFrame draws the three edges of a 2D screen-space triangle.
func (r *Renderer) DrawTriangleWireFrame(a, b, c [2]int, col Color) {
	r.fb.DrawLine(a[0], a[1], b[0], b[1], col)
	r.fb.DrawLine(b[0], b[1], c[0], c[1], col)
	r.fb.DrawLine(c[0], c[1], a[0], a[1], col)
}

// DrawBasicTriangle fills a 2D screen-space triangle with a flat color,
// sorting the three corners by Y and sweeping two scanline segments split
// at the middle vertex.
func (r *Renderer) DrawBasicTriangle(a, b, c [2]int, col Color) {
	if a[1] > b[1] {
		a, b = b, a
	}
	if a[1] > c[1] {
		a, c = c, a
	}
	if b[1] > c[1] {
		b, c = c, b
	}

	totalHeight := c[1] - a[1]
	if totalHeight == 0 {
		return
	}

	lerpX := func(p0, p1 [2]int, t float64) int {
		return p0[0] + int(float64(p1[0]-p0[0])*t)
	}

	for y := a[1]; y <= c[1]; y++ {
		secondHalf := y > b[1] || b[1] == a[1]
		var segmentHeight, segStart int
		alpha := float64(y-a[1]) / float64(totalHeight)
		ax := lerpX(a, c, alpha)

		if secondHalf {
			segmentHeight = c[1] - b[1]
			segStart = b[1]
		} else {
			segmentHeight = b[1] - a[1]
			segStart = a[1]
		}

		var bx int
		if segmentHeight == 0 {
			if secondHalf {
				bx = c[0]
			} else {
				bx = b[0]
			}
		} else {
			beta := float64(y-segStart) / float64(segmentHeight)
			if secondHalf {
				bx = lerpX(b, c, beta)
			} else {
				bx = lerpX(a, b, beta)
			}
		}

		x0, x1 := ax, bx
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			r.fb.SetPixel(x, y, col)
		}
	}
}

// DrawTexture blits a texture's pixels verbatim into the framebuffer at the
// given offset, top row first, no sampling or blending.
func (r *Renderer) DrawTexture(tex *Texture, offset [2]int) {
	if !tex.IsValid() {
		return
	}
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			r.fb.SetPixel(offset[0]+x, offset[1]+y, tex.GetColor(x, y))
		}
	}
}

// DrawShadedMesh draws every face of mesh through mat, placed in the world
// by transform. Back-face culling (when FaceMode != FaceBoth) is evaluated
// in world space against positions transformed only by `transform`, before
// the material's vertex stage ever runs.
func (r *Renderer) DrawShadedMesh(mesh MeshProvider, mat Material, transform math3d.Mat4) {
	if !mesh.IsValid() {
		return
	}
	normalMat := normalMatrix(transform)

	for f := 0; f < mesh.FaceCount(); f++ {
		id0, id1, id2 := 3*f, 3*f+1, 3*f+2
		v0 := mesh.GetVertexData(id0)
		v1 := mesh.GetVertexData(id1)
		v2 := mesh.GetVertexData(id2)

		wp0 := transform.MulVec3(v0.Position.Vec3())
		wp1 := transform.MulVec3(v1.Position.Vec3())
		wp2 := transform.MulVec3(v2.Position.Vec3())

		if !r.faceVisible(wp0, wp1, wp2) {
			continue
		}

		sv0, ok0 := r.projectVertex(mat, v0, transform, normalMat)
		sv1, ok1 := r.projectVertex(mat, v1, transform, normalMat)
		sv2, ok2 := r.projectVertex(mat, v2, transform, normalMat)
		if !ok0 && !ok1 && !ok2 {
			continue
		}

		r.rasterizeTriangle([3]screenVertex{sv0, sv1, sv2}, func(x, y int, bundle VertexBundle, z float64) bool {
			rgba := mat.FragmentStage(bundle)
			if rgba[3] <= 0 {
				return false
			}
			r.fb.blendPixel(x, y, colorFromVec4(rgba))
			return true
		})
	}
}

// GetResult returns the raw RGBA8 byte span backing the color framebuffer.
func (r *Renderer) GetResult() []byte {
	return r.fb.GetResult()
}

// Framebuffer exposes the backing framebuffer for presentation code (e.g.
// terminal blitting, PNG export) that needs more than the raw byte span.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }
