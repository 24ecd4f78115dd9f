package uvatlas

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// An edge is an unordered pair of vertex indices, along with the triangles
// that contain it.
type edge struct {
	A         int
	B         int
	Triangles []int
}

// MergeCharts merges charts of adjacent triangles whenever the charts have at
// least one camera in common, and returns the remaining root charts.
//
// The charts must be the output of BuildCharts for the same mesh, so that the
// chart at index i initially holds triangle i.
//
// Only edges shared by exactly two triangles connect charts. Boundary and
// non-manifold edges are ignored.
func MergeCharts(charts []*Chart, mesh *Mesh) ([]*Chart, error) {
	if len(charts) != mesh.NumTriangles() {
		return nil, errors.Errorf("merge charts: have %d charts for %d triangles",
			len(charts), mesh.NumTriangles())
	}
	for _, e := range meshEdges(mesh) {
		if len(e.Triangles) != 2 {
			continue
		}
		idxA := findChart(charts, e.Triangles[0])
		idxB := findChart(charts, e.Triangles[1])
		if idxA == idxB {
			continue
		}
		a, b := charts[idxA], charts[idxB]
		common := intersectSorted(a.CommonCameraIDs, b.CommonCameraIDs)
		if len(common) == 0 {
			continue
		}
		if len(a.TriangleIDs) > len(b.TriangleIDs) {
			absorbChart(a, b, idxA, common)
		} else {
			absorbChart(b, a, idxB, common)
		}
	}

	var roots []*Chart
	for _, c := range charts {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

func absorbChart(dst, src *Chart, dstIdx int, common []int) {
	dst.CommonCameraIDs = common
	dst.TriangleIDs = append(dst.TriangleIDs, src.TriangleIDs...)
	src.MergedWith = dstIdx
}

// findChart finds the root of the chart at index idx, pointing every chart
// along the way directly at the root.
func findChart(charts []*Chart, idx int) int {
	root := idx
	for !charts[root].IsRoot() {
		root = charts[root].MergedWith
	}
	for idx != root {
		next := charts[idx].MergedWith
		charts[idx].MergedWith = root
		idx = next
	}
	return root
}

// meshEdges lists the unique edges of the mesh, sorted by vertex pair.
func meshEdges(mesh *Mesh) []*edge {
	all := make([]*edge, 0, mesh.NumTriangles()*3)
	for i, t := range mesh.Triangles {
		for j := 0; j < 3; j++ {
			a, b := t[j], t[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			all = append(all, &edge{A: a, B: b, Triangles: []int{i}})
		}
	}
	slices.SortStableFunc(all, func(x, y *edge) bool {
		if x.A != y.A {
			return x.A < y.A
		}
		return x.B < y.B
	})

	var res []*edge
	for _, e := range all {
		if len(res) > 0 {
			last := res[len(res)-1]
			if last.A == e.A && last.B == e.B {
				last.Triangles = append(last.Triangles, e.Triangles...)
				continue
			}
		}
		res = append(res, e)
	}
	for _, e := range res {
		e.Triangles = sortedUnique(e.Triangles)
	}
	return res
}
