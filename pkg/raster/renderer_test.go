package raster

import (
	"testing"

	"github.com/taigrr/sw3d/pkg/math3d"
)

// quadMesh is a single full-screen-covering triangle (when seen through an
// orthographic-like projection), used to exercise the shaded-mesh path
// without depending on glTF loading.
type quadMesh struct {
	z float64
}

func (q quadMesh) FaceCount() int { return 1 }
func (q quadMesh) VertCount() int { return 3 }
func (q quadMesh) IsValid() bool  { return true }
func (q quadMesh) GetVertexData(id int) VertexBundle {
	// A triangle big enough to cover the whole viewport under an identity
	// projection mapping [-1,1] to the screen.
	corners := [3]math3d.Vec3{
		{X: -4, Y: -4, Z: q.z},
		{X: 4, Y: -4, Z: q.z},
		{X: 0, Y: 4, Z: q.z},
	}
	return VertexBundle{Position: math3d.V4FromV3(corners[id], 1), Normal: math3d.V3(0, 0, 1)}
}

// constAlphaMaterial always returns the same straight RGBA regardless of
// fragment input, letting tests pin an exact blended result.
type constAlphaMaterial struct {
	rgba [4]float64
}

func (m constAlphaMaterial) VertexStage(in VertexBundle, proj, view, model, normalMat math3d.Mat4) VertexBundle {
	return DefaultMaterial{}.VertexStage(in, proj, view, model, normalMat)
}

func (m constAlphaMaterial) FragmentStage(VertexBundle) [4]float64 { return m.rgba }

func TestDrawShadedMeshAlphaBlend(t *testing.T) {
	r := NewRenderer(1, 1)
	r.SetClearColor(RGBA(0, 0, 0, 255))
	r.SetFaceMode(FaceBoth)
	r.SetDepthMode(DepthNone)
	r.SetProjection(math3d.Identity())
	r.SetView(math3d.Identity())
	r.Clear()

	mat := constAlphaMaterial{rgba: [4]float64{255, 0, 0, 128}}
	r.DrawShadedMesh(quadMesh{z: 0}, mat, math3d.Identity())

	got := r.Framebuffer().GetPixel(0, 0)
	if absDiff(int(got.R), 128) > 1 {
		t.Errorf("blended R = %d, want ~128", got.R)
	}
	if got.A != 255 {
		t.Errorf("blended A = %d, want 255", got.A)
	}
}

func TestDrawShadedMeshDepthLessOverlap(t *testing.T) {
	r := NewRenderer(4, 4)
	r.SetClearColor(RGBA(0, 0, 0, 255))
	r.SetFaceMode(FaceBoth)
	r.SetDepthMode(DepthLess)
	r.SetZWrite(true)
	r.SetProjection(math3d.Identity())
	r.SetView(math3d.Identity())
	r.Clear()

	red := constAlphaMaterial{rgba: [4]float64{255, 0, 0, 255}}
	green := constAlphaMaterial{rgba: [4]float64{0, 255, 0, 255}}

	// quadMesh.z is NDC z; screen-space depth is 1-ndc.z, so the *smaller*
	// NDC z is the *larger*, closer screen-space depth. Red at NDC z=0.2
	// (screen.z=0.8, closer) is drawn first and should survive; green at
	// NDC z=0.5 (screen.z=0.5, farther) is drawn second and should fail
	// DepthLess against red's already-written depth.
	r.DrawShadedMesh(quadMesh{z: 0.2}, red, math3d.Identity())
	r.DrawShadedMesh(quadMesh{z: 0.5}, green, math3d.Identity())

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := r.Framebuffer().GetPixel(x, y)
			if c.R != 255 || c.G != 0 {
				t.Errorf("pixel (%d,%d) = %v, want red (the closer-drawn-first surface should win)", x, y, c)
			}
		}
	}
}

func TestDrawShadedMeshSkipsZeroAlphaFragments(t *testing.T) {
	r := NewRenderer(1, 1)
	r.SetClearColor(RGBA(10, 10, 10, 255))
	r.SetFaceMode(FaceBoth)
	r.SetDepthMode(DepthNone)
	r.SetProjection(math3d.Identity())
	r.SetView(math3d.Identity())
	r.Clear()

	mat := constAlphaMaterial{rgba: [4]float64{255, 255, 255, 0}}
	r.DrawShadedMesh(quadMesh{z: 0}, mat, math3d.Identity())

	if got := r.Framebuffer().GetPixel(0, 0); got != RGBA(10, 10, 10, 255) {
		t.Errorf("alpha=0 fragment should not modify the framebuffer, got %v", got)
	}
}

func TestDrawShadedMeshAlphaZeroLeavesDepthUntouched(t *testing.T) {
	r := NewRenderer(1, 1)
	r.SetClearColor(RGBA(10, 10, 10, 255))
	r.SetFaceMode(FaceBoth)
	r.SetDepthMode(DepthLess)
	r.SetZWrite(true)
	r.SetProjection(math3d.Identity())
	r.SetView(math3d.Identity())
	r.Clear()

	mat := constAlphaMaterial{rgba: [4]float64{255, 255, 255, 0}}
	r.DrawShadedMesh(quadMesh{z: 0.9}, mat, math3d.Identity())

	if got := r.depth.Get(0, 0); got != 0 {
		t.Errorf("a fully transparent fragment should not burn a depth entry, got %v", got)
	}

	// A subsequent opaque draw at a farther Z should still pass, proving the
	// depth buffer was never written by the alpha=0 draw above.
	opaque := constAlphaMaterial{rgba: [4]float64{0, 255, 0, 255}}
	r.DrawShadedMesh(quadMesh{z: 0.95}, opaque, math3d.Identity())
	if got := r.Framebuffer().GetPixel(0, 0); got.G != 255 {
		t.Errorf("expected the farther opaque draw to pass since depth was never written, got %v", got)
	}
}

func TestDrawTriangleWireFrameDrawsThreeEdges(t *testing.T) {
	r := NewRenderer(8, 8)
	r.SetClearColor(ColorBlack)
	r.ClearFrameBuffer()
	r.DrawTriangleWireFrame([2]int{1, 1}, [2]int{6, 1}, [2]int{1, 6}, ColorWhite)

	want := NewFramebuffer(8, 8)
	want.ClearColor = ColorBlack
	want.Clear()
	want.DrawLine(1, 1, 6, 1, ColorWhite)
	want.DrawLine(6, 1, 1, 6, ColorWhite)
	want.DrawLine(1, 6, 1, 1, ColorWhite)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if r.Framebuffer().GetPixel(x, y) != want.GetPixel(x, y) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, r.Framebuffer().GetPixel(x, y), want.GetPixel(x, y))
			}
		}
	}
}
