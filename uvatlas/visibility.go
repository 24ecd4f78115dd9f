package uvatlas

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// PointVisibility stores, for each mesh vertex, the IDs of the cameras which
// observed it.
type PointVisibility [][]int

// AllCamerasVisibility creates a PointVisibility where every camera observes
// every vertex. In this case, only the projection test decides which cameras
// can texture a triangle.
func AllCamerasVisibility(numVertices, numCameras int) PointVisibility {
	all := make([]int, numCameras)
	for i := range all {
		all[i] = i
	}
	res := make(PointVisibility, numVertices)
	for i := range res {
		res[i] = append([]int{}, all...)
	}
	return res
}

// RemapVisibility transfers the visibility of a reference mesh onto another
// mesh of the same surface, such as a retopologized or simplified version.
//
// Each vertex of mesh receives a copy of the cameras of the nearest vertex of
// ref. If ref has no vertices, every vertex gets an empty list.
func RemapVisibility(ref *Mesh, refVis PointVisibility, mesh *Mesh) PointVisibility {
	res := make(PointVisibility, len(mesh.Vertices))
	if len(ref.Vertices) == 0 {
		return res
	}
	indices := make(map[model3d.Coord3D]int, len(ref.Vertices))
	for i, c := range ref.Vertices {
		if _, ok := indices[c]; !ok {
			indices[c] = i
		}
	}
	tree := model3d.NewCoordTree(ref.Vertices)
	for i, c := range mesh.Vertices {
		nearest := indices[tree.NearestNeighbor(c)]
		if nearest < len(refVis) {
			res[i] = append([]int{}, refVis[nearest]...)
		}
	}
	return res
}

// TriangleCameras computes the candidate cameras for each triangle as the
// cameras which observed all three of its vertices.
//
// Each resulting list is sorted and contains no duplicates.
// Every camera ID in vis must be in the range [0, numCameras).
func TriangleCameras(mesh *Mesh, vis PointVisibility, numCameras int) ([][]int, error) {
	if len(vis) != len(mesh.Vertices) {
		return nil, errors.Errorf("visibility has %d entries but mesh has %d vertices",
			len(vis), len(mesh.Vertices))
	}
	for v, cams := range vis {
		for _, cam := range cams {
			if cam < 0 || cam >= numCameras {
				return nil, errors.Errorf("vertex %d: camera %d out of range", v, cam)
			}
		}
	}
	res := make([][]int, len(mesh.Triangles))
	for i, t := range mesh.Triangles {
		cams := sortedUnique(vis[t[0]])
		for _, idx := range t[1:] {
			cams = intersectSorted(cams, sortedUnique(vis[idx]))
		}
		res[i] = cams
	}
	return res, nil
}

// ReadPointVisibility decodes a JSON array of per-vertex camera lists.
func ReadPointVisibility(r io.Reader) (PointVisibility, error) {
	var res PointVisibility
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "read point visibility")
	}
	return res, nil
}

// WritePointVisibility encodes v in the format read by ReadPointVisibility.
func WritePointVisibility(w io.Writer, v PointVisibility) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrap(err, "write point visibility")
	}
	return nil
}

func sortedUnique[T constraints.Integer](s []T) []T {
	res := append([]T{}, s...)
	slices.Sort(res)
	return slices.Compact(res)
}

// intersectSorted computes the intersection of two ascending lists.
func intersectSorted[T constraints.Integer](a, b []T) []T {
	var res []T
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			i++
		} else if a[i] > b[j] {
			j++
		} else {
			res = append(res, a[i])
			i++
			j++
		}
	}
	return res
}
