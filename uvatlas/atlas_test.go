package uvatlas

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func TestNewAtlasGrid(t *testing.T) {
	mesh, projector := testAtlasScene()
	vis := AllCamerasVisibility(len(mesh.Vertices), len(projector.Cameras))
	cfg := Config{TextureSide: 256, GutterSize: 2, Margin: DefaultMargin}
	atlas, err := NewAtlas(mesh, vis, projector, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// The far triangle is not seen by any camera.
	farTriangle := mesh.NumTriangles() - 1
	if len(atlas.TriangleCameras[farTriangle]) != 0 {
		t.Errorf("far triangle has cameras: %v", atlas.TriangleCameras[farTriangle])
	}
	if _, _, ok := atlas.ChartPage(farTriangle); ok {
		t.Error("far triangle should not be textured")
	}

	var numSeen int
	for _, cams := range atlas.TriangleCameras {
		if len(cams) > 0 {
			numSeen++
		}
	}
	if numSeen != mesh.NumTriangles()-1 {
		t.Errorf("expected %d visible triangles but got %d", mesh.NumTriangles()-1, numSeen)
	}
	if n := atlas.NumTriangles(); n != numSeen {
		t.Errorf("expected %d textured triangles but got %d", numSeen, n)
	}

	// The grid is connected and fully seen by the top camera.
	if len(atlas.Pages) != 1 || atlas.NumCharts() != 1 {
		t.Fatalf("expected a single chart but got %d pages, %d charts", len(atlas.Pages),
			atlas.NumCharts())
	}
	chart := atlas.Pages[0].Charts[0]
	if chart.RefCameraID != 0 {
		t.Errorf("expected reference camera 0 but got %d", chart.RefCameraID)
	}
	if chart.TargetLU != (Pixel{X: 2, Y: 2}) {
		t.Errorf("unexpected placement %v", chart.TargetLU)
	}
	if w, h := chart.Width(), chart.Height(); w < 45 || w > 55 || h < 45 || h > 55 {
		t.Errorf("unexpected chart size %dx%d", w, h)
	}
	for i := 0; i < farTriangle; i++ {
		page, c, ok := atlas.ChartPage(i)
		if !ok || page != 0 || c != chart {
			t.Errorf("triangle %d not found in chart", i)
		}
	}
}

func TestNewAtlasDeterministic(t *testing.T) {
	var outputs [][]byte
	for i := 0; i < 3; i++ {
		mesh, projector := testAtlasScene()
		vis := AllCamerasVisibility(len(mesh.Vertices), len(projector.Cameras))
		cfg := Config{TextureSide: 64, GutterSize: 1, Margin: DefaultMargin, Concurrency: i + 1}
		atlas, err := NewAtlas(mesh, vis, projector, cfg)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := WriteAtlas(&buf, atlas); err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, buf.Bytes())
	}
	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestNewAtlasVisibility(t *testing.T) {
	mesh, projector := testAtlasScene()

	// Only the side camera observed the vertices, and it sees nothing.
	vis := make(PointVisibility, len(mesh.Vertices))
	for i := range vis {
		vis[i] = []int{1}
	}
	atlas, err := NewAtlas(mesh, vis, projector, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(atlas.Pages) != 0 || atlas.NumTriangles() != 0 {
		t.Errorf("expected an empty atlas but got %d pages", len(atlas.Pages))
	}
}

func TestNewAtlasErrors(t *testing.T) {
	mesh, projector := testAtlasScene()
	vis := AllCamerasVisibility(len(mesh.Vertices), len(projector.Cameras))

	_, err := NewAtlas(mesh, vis, projector, Config{TextureSide: 0})
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("expected config error but got %v", err)
	}

	_, err = NewAtlas(mesh, vis[1:], projector, DefaultConfig())
	if err == nil {
		t.Error("expected visibility size error")
	}

	extra := AllCamerasVisibility(len(mesh.Vertices), len(projector.Cameras)+1)
	_, err = NewAtlas(mesh, extra, projector, DefaultConfig())
	if err == nil {
		t.Error("expected error for camera out of range")
	}
	negative := AllCamerasVisibility(len(mesh.Vertices), len(projector.Cameras))
	negative[3] = []int{-1, 0}
	_, err = NewAtlas(mesh, negative, projector, DefaultConfig())
	if err == nil {
		t.Error("expected error for negative camera")
	}

	cfg := Config{TextureSide: 32, GutterSize: 2, Margin: DefaultMargin}
	_, err = NewAtlas(mesh, vis, projector, cfg)
	if errors.Cause(err) != ErrChartTooLarge {
		t.Errorf("expected ErrChartTooLarge but got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []Config{
		{TextureSide: -1},
		{TextureSide: 10, GutterSize: -1},
		{TextureSide: 10, GutterSize: 5},
		{TextureSide: 10, Margin: -1},
		{TextureSide: 10, Concurrency: -2},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}

// testAtlasScene creates a 4x4 grid in the unit square plus one distant
// triangle, along with a camera looking down at the grid and a camera looking
// away from it.
func testAtlasScene() (*Mesh, *MeshProjector) {
	tris := testGridTriangles(4)
	tris = append(tris, &model3d.Triangle{
		model3d.XYZ(10, 10, 0),
		model3d.XYZ(11, 10, 0),
		model3d.XYZ(10, 11, 0),
	})
	mesh := NewMeshTriangles(tris)
	cameras := []*Camera{
		NewCameraLookAt(
			model3d.XYZ(0.5, 0.5, 2),
			model3d.XYZ(0.5, 0.5, 0),
			model3d.Y(1),
			math.Pi/2,
			200,
			200,
		),
		NewCameraLookAt(
			model3d.XYZ(0.5, 0.5, 2),
			model3d.XYZ(0.5, 0.5, 4),
			model3d.Y(1),
			math.Pi/2,
			200,
			200,
		),
	}
	return mesh, &MeshProjector{Mesh: mesh, Cameras: cameras}
}
