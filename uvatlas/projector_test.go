package uvatlas

import (
	"bytes"
	"math"
	"reflect"
	"testing"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

func TestCameraProject(t *testing.T) {
	cam := NewCameraLookAt(model3d.Z(-2), model3d.Origin, model3d.Y(1), math.Pi/2, 200, 100)
	center := cam.Project(model3d.Origin)
	if center.Dist(model2d.XY(100, 50)) > 1e-8 {
		t.Errorf("unexpected center projection: %v", center)
	}

	// Image Y points down, so world up maps to smaller Y.
	up := cam.Project(model3d.Y(0.5))
	if up.Y >= center.Y || math.Abs(up.X-center.X) > 1e-8 {
		t.Errorf("unexpected up projection: %v", up)
	}
	right := cam.Project(cam.X)
	if math.Abs(right.X-150) > 1e-8 {
		t.Errorf("unexpected right projection: %v", right)
	}

	behind := cam.Project(model3d.Z(-3))
	if !math.IsNaN(behind.X) || inImage(behind, 0, 200, 100) {
		t.Errorf("point behind camera should not be in image: %v", behind)
	}
}

func TestNewProjection(t *testing.T) {
	p := NewProjection([3]model2d.Coord{
		model2d.XY(3.7, 9.1),
		model2d.XY(-1.5, 4.2),
		model2d.XY(8.0, 2.9),
	})
	if p.LU != (Pixel{X: -2, Y: 2}) || p.RD != (Pixel{X: 8, Y: 9}) {
		t.Errorf("unexpected bounds %v %v", p.LU, p.RD)
	}
}

func TestMeshProjectorScale(t *testing.T) {
	mesh := NewMeshTriangles([]*model3d.Triangle{
		{model3d.XYZ(-0.1, -0.1, 0), model3d.XYZ(0.1, -0.1, 0), model3d.XYZ(0, 0.1, 0)},
	})
	cam := NewCameraLookAt(model3d.Z(-2), model3d.Origin, model3d.Y(1), math.Pi/2, 200, 200)
	projector := &MeshProjector{Mesh: mesh, Cameras: []*Camera{cam}}
	full := projector.Project(0, 0, 200, 200)
	half := projector.Project(0, 0, 100, 100)
	for i := range full.Corners {
		if full.Corners[i].Scale(0.5).Dist(half.Corners[i]) > 1e-8 {
			t.Errorf("corner %d: %v is not half of %v", i, half.Corners[i], full.Corners[i])
		}
		if !projector.InImage(full.Corners[i], DefaultMargin, 0) {
			t.Errorf("corner %d should be in image", i)
		}
	}
}

func TestInImage(t *testing.T) {
	cases := []struct {
		P        model2d.Coord
		Expected bool
	}{
		{model2d.XY(10, 10), true},
		{model2d.XY(9.99, 50), false},
		{model2d.XY(89.99, 89.99), true},
		{model2d.XY(90, 50), false},
		{model2d.XY(50, 90), false},
	}
	for _, c := range cases {
		if actual := inImage(c.P, 10, 100, 100); actual != c.Expected {
			t.Errorf("point %v: expected %v but got %v", c.P, c.Expected, actual)
		}
	}
}

func TestReadWriteCameras(t *testing.T) {
	cams := []*Camera{
		NewCameraLookAt(model3d.XYZ(1, 2, 3), model3d.Origin, model3d.Z(1), 0.8, 640, 480),
		NewCameraLookAt(model3d.XYZ(-1, 0.5, 0), model3d.X(1), model3d.Y(1), 1.2, 320, 240),
	}
	var buf bytes.Buffer
	if err := WriteCameras(&buf, cams); err != nil {
		t.Fatal(err)
	}
	actual, err := ReadCameras(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(actual, cams) {
		t.Errorf("expected %v but got %v", cams, actual)
	}

	if _, err := ReadCameras(bytes.NewReader([]byte(`[{"width": 0, "height": 10}]`))); err == nil {
		t.Error("expected error for empty image")
	}
}
