package async

import (
	"testing"
	"time"

	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/raster"
)

// quadMesh is a single full-screen-covering triangle under an identity
// projection, used to exercise DrawShadedMesh without a glTF loader.
type quadMesh struct{ z float64 }

func (q quadMesh) FaceCount() int { return 1 }
func (q quadMesh) VertCount() int { return 3 }
func (q quadMesh) IsValid() bool  { return true }
func (q quadMesh) GetVertexData(id int) raster.VertexBundle {
	corners := [3]math3d.Vec3{
		{X: -4, Y: -4, Z: q.z},
		{X: 4, Y: -4, Z: q.z},
		{X: 0, Y: 4, Z: q.z},
	}
	return raster.VertexBundle{Position: math3d.V4FromV3(corners[id], 1), Normal: math3d.V3(0, 0, 1)}
}

// TestMatchesSingleThreaded exercises invariant 9: the concurrent façade,
// given the same sequence of setter/draw calls as the single-threaded
// renderer, produces an identical framebuffer.
func TestMatchesSingleThreaded(t *testing.T) {
	run := func(setClearColor func(raster.Color), setView func(math3d.Mat4), setProj func(math3d.Mat4), clear func(), drawMesh func(raster.MeshProvider, raster.Material, math3d.Mat4)) {
		setClearColor(raster.RGBA(5, 5, 5, 255))
		setView(math3d.Identity())
		setProj(math3d.Identity())
		clear()
		drawMesh(quadMesh{z: 0.2}, raster.TransparentMaterial{BaseColor: math3d.V3(200, 0, 0), LightDir: math3d.V3(0, 0, 1), Alpha: 255}, math3d.Identity())
		setClearColor(raster.RGBA(9, 9, 9, 255))
		drawMesh(quadMesh{z: 0.6}, raster.TransparentMaterial{BaseColor: math3d.V3(0, 200, 0), LightDir: math3d.V3(0, 0, 1), Alpha: 128}, math3d.Identity())
	}

	want := raster.NewRenderer(6, 6)
	want.SetFaceMode(raster.FaceBoth)
	want.SetDepthMode(raster.DepthLess)
	want.SetZWrite(true)
	run(want.SetClearColor, want.SetView, want.SetProjection, want.Clear, want.DrawShadedMesh)

	got := NewRenderer(6, 6)
	defer got.Close()
	got.SetFaceMode(raster.FaceBoth)
	got.SetDepthMode(raster.DepthLess)
	got.SetZWrite(true)
	run(got.SetClearColor, got.SetView, got.SetProjection, got.Clear, got.DrawShadedMesh)

	wantBytes := want.GetResult()
	gotBytes := got.GetResult()
	if len(wantBytes) != len(gotBytes) {
		t.Fatalf("length mismatch: want %d, got %d", len(wantBytes), len(gotBytes))
	}
	for i := range wantBytes {
		if wantBytes[i] != gotBytes[i] {
			t.Fatalf("byte %d: want %d, got %d", i, wantBytes[i], gotBytes[i])
		}
	}
}

// TestGetResultDrainsQueuedWork checks that GetResult only returns after
// every previously enqueued draw has actually run, even when the worker
// is kept intentionally busy beforehand.
func TestGetResultDrainsQueuedWork(t *testing.T) {
	r := NewRenderer(1, 1)
	defer r.Close()

	r.SetDepthMode(raster.DepthNone)
	r.SetClearColor(raster.ColorBlack)
	for i := 0; i < 50; i++ {
		r.DrawPoint(0, 0, raster.ColorBlack)
	}
	r.DrawPoint(0, 0, raster.ColorWhite)

	out := r.GetResult()
	if out[0] != 255 || out[1] != 255 || out[2] != 255 || out[3] != 255 {
		t.Fatalf("expected the last enqueued draw to have landed, got %v", out[:4])
	}
}

// TestShadowSettersObservedInSubmissionOrder checks that an interleaved
// setClearColor/draw sequence produces two distinct draws observing the
// clear color in effect at the time each was submitted, per spec's FIFO
// ordering requirement.
func TestShadowSettersObservedInSubmissionOrder(t *testing.T) {
	r := NewRenderer(1, 1)
	defer r.Close()

	r.SetClearColor(raster.ColorBlack)
	r.ClearFrameBuffer()
	first := r.GetResult()
	firstCopy := append([]byte(nil), first...)

	r.SetClearColor(raster.ColorWhite)
	r.ClearFrameBuffer()
	second := r.GetResult()

	if firstCopy[0] != 0 {
		t.Fatalf("first clear should have been black, got %v", firstCopy)
	}
	if second[0] != 255 {
		t.Fatalf("second clear should have been white, got %v", second)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r := NewRenderer(2, 2)
	r.Close()
	done := make(chan struct{})
	go func() {
		r.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Close call did not return")
	}
}
