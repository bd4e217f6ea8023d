package async

import (
	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/raster"
)

// Clear enqueues a full clear of the color and depth buffers.
func (r *Renderer) Clear() {
	r.enqueue(func() { r.inner.Clear() })
}

// ClearFrameBuffer enqueues a clear of the color buffer alone.
func (r *Renderer) ClearFrameBuffer() {
	r.enqueue(func() { r.inner.ClearFrameBuffer() })
}

// ClearZBuffer enqueues a clear of the depth buffer alone.
func (r *Renderer) ClearZBuffer() {
	r.enqueue(func() { r.inner.ClearZBuffer() })
}

// DrawPoint enqueues a single pixel write.
func (r *Renderer) DrawPoint(x, y int, c raster.Color) {
	r.enqueue(func() { r.inner.DrawPoint(x, y, c) })
}

// DrawLine enqueues a 2D line draw.
func (r *Renderer) DrawLine(a, b [2]int, c raster.Color) {
	r.enqueue(func() { r.inner.DrawLine(a, b, c) })
}

// DrawTriangleWireFrame enqueues a 2D wireframe triangle draw.
func (r *Renderer) DrawTriangleWireFrame(a, b, c [2]int, col raster.Color) {
	r.enqueue(func() { r.inner.DrawTriangleWireFrame(a, b, c, col) })
}

// DrawBasicTriangle enqueues a flat-filled 2D triangle draw.
func (r *Renderer) DrawBasicTriangle(a, b, c [2]int, col raster.Color) {
	r.enqueue(func() { r.inner.DrawBasicTriangle(a, b, c, col) })
}

// DrawTexture enqueues a verbatim texture blit at offset.
func (r *Renderer) DrawTexture(tex *raster.Texture, offset [2]int) {
	r.enqueue(func() { r.inner.DrawTexture(tex, offset) })
}

// DrawShadedMesh enqueues a full mesh draw through mat.
func (r *Renderer) DrawShadedMesh(mesh raster.MeshProvider, mat raster.Material, transform math3d.Mat4) {
	r.enqueue(func() { r.inner.DrawShadedMesh(mesh, mat, transform) })
}

// GetResult enqueues a sentinel task that copies the current framebuffer's
// raw RGBA8 bytes and sends them back, then blocks until every task
// enqueued before it — and that copy itself — has run. This is the one
// call in the package that waits on the worker instead of firing and
// forgetting.
func (r *Renderer) GetResult() []byte {
	result := make(chan []byte, 1)
	r.enqueue(func() {
		src := r.inner.GetResult()
		out := make([]byte, len(src))
		copy(out, src)
		result <- out
	})
	select {
	case out := <-result:
		return out
	case <-r.ctx.Done():
		return nil
	}
}
