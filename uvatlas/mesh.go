package uvatlas

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is an indexed triangle mesh.
//
// Charts refer to triangles by their index in Triangles, and edge adjacency
// is determined by shared vertex indices rather than shared coordinates.
type Mesh struct {
	Vertices  []model3d.Coord3D
	Triangles [][3]int
}

// NewMesh creates an indexed mesh from a model3d mesh.
//
// Vertices with exactly equal coordinates are merged into a single index.
// Vertices are numbered in the order they are first encountered while
// iterating over m.TriangleSlice().
func NewMesh(m *model3d.Mesh) *Mesh {
	return NewMeshTriangles(m.TriangleSlice())
}

// NewMeshTriangles is like NewMesh, but takes an ordered triangle list so
// that triangle indices are reproducible.
func NewMeshTriangles(tris []*model3d.Triangle) *Mesh {
	res := &Mesh{Triangles: make([][3]int, len(tris))}
	indices := map[model3d.Coord3D]int{}
	for i, t := range tris {
		for j, c := range t {
			idx, ok := indices[c]
			if !ok {
				idx = len(res.Vertices)
				indices[c] = idx
				res.Vertices = append(res.Vertices, c)
			}
			res.Triangles[i][j] = idx
		}
	}
	return res
}

func (m *Mesh) NumTriangles() int {
	return len(m.Triangles)
}

// Triangle gets the coordinates of the i-th triangle.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	t := m.Triangles[i]
	return &model3d.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
}

// Validate checks that every triangle references three distinct, existing
// vertices.
func (m *Mesh) Validate() error {
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(m.Vertices) {
				return errors.Errorf("triangle %d: vertex index %d out of range", i, idx)
			}
		}
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			return errors.Errorf("triangle %d: repeated vertex index in %v", i, t)
		}
	}
	return nil
}
