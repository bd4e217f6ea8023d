// Package async wraps the single-threaded raster.Renderer with a
// single-consumer task queue, so a caller can drive it from multiple
// goroutines without touching its unsynchronized internal state directly.
// Every setter and draw call is a fire-and-forget enqueue onto the one
// goroutine that owns the wrapped renderer; GetResult is the sole
// synchronous call, since its caller needs the bytes back before continuing.
package async

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/raster"
)

type workerState int32

const (
	stateRunning workerState = iota
	stateStopping
	stateJoined
)

// Renderer is a concurrent-safe façade over *raster.Renderer. Every public
// method enqueues a closure onto a dedicated worker goroutine that alone
// touches the wrapped renderer. A shadow copy of its view/projection/
// face/depth state lives under mu so getters can answer without round-
// tripping through the queue.
type Renderer struct {
	inner *raster.Renderer // owned exclusively by the worker goroutine

	mu     sync.Mutex
	shadow shadowState

	tasks chan func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	st     atomic.Int32
}

type shadowState struct {
	width, height int
	clearColor    raster.Color
	faceMode      raster.FaceMode
	depthMode     raster.DepthMode
	zWrite        bool
	view          math3d.Mat4
	projection    math3d.Mat4
}

// NewRenderer starts a worker goroutine owning a width x height
// raster.Renderer and returns a handle to it. Call Close when done.
func NewRenderer(width, height int) *Renderer {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Renderer{
		inner:  raster.NewRenderer(width, height),
		tasks:  make(chan func(), 64),
		ctx:    ctx,
		cancel: cancel,
		shadow: shadowState{
			width:      width,
			height:     height,
			clearColor: raster.ColorBlack,
			faceMode:   raster.FaceBoth,
			depthMode:  raster.DepthLess,
			zWrite:     true,
			view:       math3d.Identity(),
			projection: math3d.Identity(),
		},
	}
	r.st.Store(int32(stateRunning))

	r.wg.Add(1)
	go r.run()
	return r
}

// run is the single consumer: every closure it pulls off tasks is the only
// code anywhere that touches r.inner. A panicking task is never recovered —
// it brings down the worker goroutine and, left unhandled, the process
// along with it.
func (r *Renderer) run() {
	defer r.wg.Done()
	for {
		select {
		case task, ok := <-r.tasks:
			if !ok {
				return
			}
			task()
		case <-r.ctx.Done():
			r.drainRemaining()
			return
		}
	}
}

// drainRemaining runs whatever is already queued before the worker exits,
// so a Close racing with an in-flight enqueue doesn't drop work that was
// submitted before the cancellation was observed.
func (r *Renderer) drainRemaining() {
	for {
		select {
		case task, ok := <-r.tasks:
			if !ok {
				return
			}
			task()
		default:
			return
		}
	}
}

func (r *Renderer) enqueue(task func()) {
	if workerState(r.st.Load()) != stateRunning {
		return
	}
	select {
	case r.tasks <- task:
	case <-r.ctx.Done():
	}
}

// Close stops the worker after draining anything already queued and waits
// for it to exit. Safe to call more than once.
func (r *Renderer) Close() {
	if !r.st.CompareAndSwap(int32(stateRunning), int32(stateStopping)) {
		r.wg.Wait()
		return
	}
	r.cancel()
	r.wg.Wait()
	r.st.Store(int32(stateJoined))
}

func (r *Renderer) SetClearColor(c raster.Color) {
	r.mu.Lock()
	r.shadow.clearColor = c
	r.mu.Unlock()
	r.enqueue(func() { r.inner.SetClearColor(c) })
}

// Resize updates the shadow dimensions and enqueues the reallocation of the
// wrapped renderer's framebuffer and depth buffer.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	r.shadow.width, r.shadow.height = width, height
	r.mu.Unlock()
	r.enqueue(func() { r.inner.Resize(width, height) })
}

// Width and Height answer from the shadow dimensions set at construction or
// by the most recent Resize call.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.width
}

func (r *Renderer) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.height
}

// ClearColor answers from the shadow state set by the most recent
// SetClearColor call.
func (r *Renderer) ClearColor() raster.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.clearColor
}

func (r *Renderer) SetFaceMode(m raster.FaceMode) {
	r.mu.Lock()
	r.shadow.faceMode = m
	r.mu.Unlock()
	r.enqueue(func() { r.inner.SetFaceMode(m) })
}

func (r *Renderer) SetDepthMode(m raster.DepthMode) {
	r.mu.Lock()
	r.shadow.depthMode = m
	r.mu.Unlock()
	r.enqueue(func() { r.inner.SetDepthMode(m) })
}

func (r *Renderer) SetZWrite(on bool) {
	r.mu.Lock()
	r.shadow.zWrite = on
	r.mu.Unlock()
	r.enqueue(func() { r.inner.SetZWrite(on) })
}

func (r *Renderer) SetView(m math3d.Mat4) {
	r.mu.Lock()
	r.shadow.view = m
	r.mu.Unlock()
	r.enqueue(func() { r.inner.SetView(m) })
}

func (r *Renderer) SetProjection(m math3d.Mat4) {
	r.mu.Lock()
	r.shadow.projection = m
	r.mu.Unlock()
	r.enqueue(func() { r.inner.SetProjection(m) })
}

// FaceMode, DepthMode, ZWrite, View and Projection answer from the shadow
// state set by the corresponding setter — they don't round-trip through
// the worker, so they reflect the last value set rather than necessarily
// the state currently applied to a frame still queued for render.
func (r *Renderer) FaceMode() raster.FaceMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.faceMode
}

func (r *Renderer) DepthMode() raster.DepthMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.depthMode
}

func (r *Renderer) ZWrite() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.zWrite
}

func (r *Renderer) View() math3d.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.view
}

func (r *Renderer) Projection() math3d.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadow.projection
}
