// Package models provides 3D model loading and representation for sw3d.
package models

import (
	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/raster"
)

// Mesh represents a 3D mesh with shared vertices and indexed triangle
// faces. It implements raster.MeshProvider by resolving the capability's
// flat vertex ids (3*face+corner) back to a shared vertex through Faces,
// so a mesh format with an index buffer (glTF, most model formats) never
// has to pre-expand it into a flat vertex soup.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes sw3d meshes carry.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
	UV2      math3d.Vec2
	Color    math3d.Vec3
}

// Face represents a triangle face with vertex indices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateNormals computes per-face normals (flat shading): every corner
// of a face gets that face's normal, so shared vertices end up with
// whichever face touched them last.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // unnormalized: area-weighted
		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to every vertex in place.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// FaceCount implements raster.MeshProvider.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// VertCount implements raster.MeshProvider: the capability addresses
// vertices flatly (one id per face corner), not by the shared-vertex count.
func (m *Mesh) VertCount() int { return len(m.Faces) * 3 }

// IsValid implements raster.MeshProvider.
func (m *Mesh) IsValid() bool { return len(m.Faces) > 0 && len(m.Vertices) > 0 }

// GetVertexData implements raster.MeshProvider, resolving a flat vertex id
// back to a shared Mesh vertex and filling the bundle's unused bone slots
// with zero weights (this mesh format carries no skinning data).
func (m *Mesh) GetVertexData(id int) raster.VertexBundle {
	face := m.Faces[id/3]
	v := m.Vertices[face.V[id%3]]

	return raster.VertexBundle{
		Position: math3d.V4FromV3(v.Position, 1),
		UV:       v.UV,
		UV2:      v.UV2,
		Normal:   v.Normal,
		Color:    v.Color,
	}
}

// GetBounds implements raster.BoundedMeshProvider.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
