package uvatlas

import (
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/slices"
)

// DefaultMargin is the number of pixels a projected triangle must stay away
// from every image border for the camera to be accepted.
const DefaultMargin = 10

// A Chart is a group of triangles which are textured together from one
// reference camera.
type Chart struct {
	// ID is the index of the chart as created by BuildCharts.
	ID int

	TriangleIDs []int

	// CommonCameraIDs is the ascending list of cameras which fully see every
	// triangle in the chart.
	CommonCameraIDs []int

	// MergedWith is the index of the chart that absorbed this one, or -1 if
	// this chart is a root.
	MergedWith int

	// RefCameraID is only valid after FinalizeCharts.
	RefCameraID int

	// SourceLU and SourceRD bound the chart in RefCameraID's image.
	SourceLU Pixel
	SourceRD Pixel

	// TargetLU is the top-left corner of the chart in its atlas page,
	// including the gutter. It is only set by PackCharts.
	TargetLU Pixel
}

func (c *Chart) Width() int {
	return c.SourceRD.X - c.SourceLU.X
}

func (c *Chart) Height() int {
	return c.SourceRD.Y - c.SourceLU.Y
}

func (c *Chart) IsRoot() bool {
	return c.MergedWith < 0
}

// BuildCharts creates one chart per triangle, containing the candidate
// cameras that see the entire triangle at least margin pixels inside the
// image.
//
// Triangles without any such camera still get a chart with no cameras.
// The second return value lists the accepted cameras per triangle.
//
// The concurrency argument specifies the maximum number of Goroutines to use
// for projection. If concurrency is 0, GOMAXPROCS is used.
func BuildCharts(
	mesh *Mesh,
	candidates [][]int,
	projector Projector,
	margin int,
	concurrency int,
) (charts []*Chart, triangleCameras [][]int) {
	charts = make([]*Chart, mesh.NumTriangles())
	triangleCameras = make([][]int, mesh.NumTriangles())
	essentials.ConcurrentMap(concurrency, mesh.NumTriangles(), func(i int) {
		var accepted []int
		for _, cameraID := range candidates[i] {
			if triangleInCamera(projector, i, cameraID, margin) {
				accepted = append(accepted, cameraID)
			}
		}
		slices.Sort(accepted)
		accepted = slices.Compact(accepted)
		triangleCameras[i] = accepted
		charts[i] = &Chart{
			ID:              i,
			TriangleIDs:     []int{i},
			CommonCameraIDs: append([]int{}, accepted...),
			MergedWith:      -1,
			RefCameraID:     -1,
		}
	})
	return
}

func triangleInCamera(p Projector, triangleID, cameraID, margin int) bool {
	width, height := p.ImageSize(cameraID)
	proj := p.Project(triangleID, cameraID, width, height)
	for _, c := range proj.Corners {
		if !p.InImage(c, margin, cameraID) {
			return false
		}
	}
	return true
}
