package async

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/raster"
)

// OcclusionQuery is one mesh/transform pair to test against a shared
// occluder's depth buffer.
type OcclusionQuery struct {
	Mesh      raster.MeshProvider
	Transform math3d.Mat4
}

// OcclusionPool runs CheckMesh queries against a single *raster.Occluder
// concurrently, throttled to at most maxConcurrent in flight at once. This
// is only safe because the pool requires ZWrite off: CheckMesh then never
// writes to the occluder's depth buffer, so concurrent readers never race.
type OcclusionPool struct {
	occ *raster.Occluder
	sem *semaphore.Weighted
}

// NewOcclusionPool builds a pool around occ and turns ZWrite off on occ
// itself (occ.SetZWrite(false)), so a caller can't accidentally hand it a
// write-enabled occluder and corrupt the buffer under concurrent queries.
func NewOcclusionPool(occ *raster.Occluder, maxConcurrent int64) *OcclusionPool {
	occ.SetZWrite(false)
	return &OcclusionPool{occ: occ, sem: semaphore.NewWeighted(maxConcurrent)}
}

// CheckAll runs every query concurrently (bounded by the pool's
// concurrency limit) and returns one bool per query in the same order.
// It returns ctx.Err() if ctx is canceled before every query finishes
// acquiring its slot; queries already running are still allowed to finish.
func (p *OcclusionPool) CheckAll(ctx context.Context, queries []OcclusionQuery) ([]bool, error) {
	results := make([]bool, len(queries))
	var wg sync.WaitGroup

	for i, q := range queries {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return results, err
		}

		wg.Add(1)
		go func(i int, q OcclusionQuery) {
			defer wg.Done()
			defer p.sem.Release(1)
			results[i] = p.occ.CheckMesh(q.Mesh, q.Transform)
		}(i, q)
	}

	wg.Wait()
	return results, nil
}
