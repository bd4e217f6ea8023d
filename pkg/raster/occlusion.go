package raster

import "github.com/taigrr/sw3d/pkg/math3d"

// Occluder is a depth-only rasterizer: it shares the transform and pixel
// traversal the Renderer uses for DrawShadedMesh, but never writes color
// and never culls on FaceMode (an occluder needs to know about backfaces
// too, since they still block light). CheckMesh answers "would any part
// of this mesh be visible against what's already in the depth buffer."
type Occluder struct {
	pipeline
}

// NewOccluder creates an Occluder with its own width x height depth buffer.
func NewOccluder(width, height int) *Occluder {
	o := &Occluder{pipeline: newPipeline(width, height)}
	o.faceMode = FaceBoth
	return o
}

func (o *Occluder) Resize(width, height int)     { o.pipeline.resize(width, height) }
func (o *Occluder) SetView(m math3d.Mat4)        { o.view = m }
func (o *Occluder) SetProjection(m math3d.Mat4)  { o.projection = m }
func (o *Occluder) SetDepthMode(m DepthMode)     { o.depthMode = m }
func (o *Occluder) SetZWrite(on bool)            { o.zWrite = on }
func (o *Occluder) Clear()                       { o.depth.Clear() }

// CheckMesh rasterizes mesh's depth against the occluder's buffer and
// reports whether any triangle produced a pixel that passed the depth
// test — i.e. whether any part of the mesh is visible. When ZWrite is
// false this stops after the first triangle that has a passing pixel
// instead of walking every triangle, since nothing downstream depends on
// the buffer being complete; the remaining pixels of that triangle are
// still walked.
func (o *Occluder) CheckMesh(mesh MeshProvider, transform math3d.Mat4) bool {
	if !mesh.IsValid() {
		return false
	}
	mat := DefaultMaterial{}
	normalMat := normalMatrix(transform)
	visible := false

	for f := 0; f < mesh.FaceCount(); f++ {
		if !o.zWrite && visible {
			break
		}

		id0, id1, id2 := 3*f, 3*f+1, 3*f+2
		v0 := mesh.GetVertexData(id0)
		v1 := mesh.GetVertexData(id1)
		v2 := mesh.GetVertexData(id2)

		sv0, ok0 := o.projectVertex(mat, v0, transform, normalMat)
		sv1, ok1 := o.projectVertex(mat, v1, transform, normalMat)
		sv2, ok2 := o.projectVertex(mat, v2, transform, normalMat)
		if !ok0 && !ok1 && !ok2 {
			continue
		}

		triangleVisible := false
		o.rasterizeTriangle([3]screenVertex{sv0, sv1, sv2}, func(x, y int, bundle VertexBundle, z float64) bool {
			triangleVisible = true
			return true
		})
		if triangleVisible {
			visible = true
			if !o.zWrite {
				break
			}
		}
	}

	return visible
}
