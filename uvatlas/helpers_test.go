package uvatlas

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// testProjector returns fixed footprints for (triangle, camera) pairs.
// Pairs without a footprint project outside of every image.
type testProjector struct {
	Cameras    int
	Width      int
	Height     int
	Footprints map[[2]int][3]model2d.Coord
}

func newTestProjector() *testProjector {
	return &testProjector{
		Cameras:    16,
		Width:      100,
		Height:     100,
		Footprints: map[[2]int][3]model2d.Coord{},
	}
}

// SetBox makes a triangle project to a right triangle spanning a box.
func (t *testProjector) SetBox(tri, cam int, min, max model2d.Coord) {
	t.Footprints[[2]int{tri, cam}] = [3]model2d.Coord{min, model2d.XY(max.X, min.Y), max}
}

func (t *testProjector) NumCameras() int {
	return t.Cameras
}

func (t *testProjector) ImageSize(cameraID int) (int, int) {
	return t.Width, t.Height
}

func (t *testProjector) Project(triangleID, cameraID, width, height int) *Projection {
	corners, ok := t.Footprints[[2]int{triangleID, cameraID}]
	if !ok {
		nan := model2d.XY(math.NaN(), math.NaN())
		corners = [3]model2d.Coord{nan, nan, nan}
	}
	return NewProjection(corners)
}

func (t *testProjector) InImage(p model2d.Coord, margin, cameraID int) bool {
	return inImage(p, margin, t.Width, t.Height)
}

// newTestChart creates a finalized chart with a given size.
func newTestChart(id, width, height int) *Chart {
	return &Chart{
		ID:              id,
		TriangleIDs:     []int{id},
		CommonCameraIDs: []int{0},
		MergedWith:      -1,
		SourceLU:        Pixel{X: 10, Y: 20},
		SourceRD:        Pixel{X: 10 + width, Y: 20 + height},
	}
}

// twoTriangleMesh creates triangles T0={A,B,C} and T1={B,C,D}.
func twoTriangleMesh() *Mesh {
	return &Mesh{
		Vertices:  make([]model3d.Coord3D, 4),
		Triangles: [][3]int{{0, 1, 2}, {1, 2, 3}},
	}
}
