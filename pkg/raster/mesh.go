package raster

import "github.com/taigrr/sw3d/pkg/math3d"

// VertexBundle carries every attribute a vertex may need to flow through
// the pipeline: position (w=1 for a point), two UV channels, a normal, a
// per-vertex tint, and skinning slots that the default pipeline never
// applies but still carries so a mesh format that supplies them doesn't
// lose them in transit.
type VertexBundle struct {
	Position math3d.Vec4
	UV       math3d.Vec2
	UV2      math3d.Vec2
	Normal   math3d.Vec3
	Color    math3d.Vec3

	BoneIndices  [4]int
	BoneWeights  [4]float64
	BoneMatrices [4]math3d.Mat4
}

// MeshProvider is the capability a shape must provide to be drawn by the
// rasterizer. Vertices are addressed flatly: face i's three corners are
// vertex ids 3*i, 3*i+1, 3*i+2. There is no shared-vertex indexing — a
// provider that stores an indexed mesh internally is responsible for
// expanding a shared vertex into each face that touches it.
type MeshProvider interface {
	FaceCount() int
	VertCount() int
	IsValid() bool
	GetVertexData(id int) VertexBundle
}

// BoundedMeshProvider is a MeshProvider that can also report a local-space
// axis-aligned bounding box, letting a caller cull or frame it cheaply
// without walking every vertex.
type BoundedMeshProvider interface {
	MeshProvider
	GetBounds() (min, max math3d.Vec3)
}
