package uvatlas

import (
	"encoding/json"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Projector maps mesh triangles into camera images.
//
// Implementations must be safe to call from multiple Goroutines.
type Projector interface {
	// NumCameras gets the number of cameras. Valid camera IDs are in the
	// range [0, NumCameras()).
	NumCameras() int

	// ImageSize gets the pixel dimensions of a camera's image.
	ImageSize(cameraID int) (width, height int)

	// Project computes the footprint of a triangle in a camera image of the
	// given size.
	Project(triangleID, cameraID, width, height int) *Projection

	// InImage checks if a point is inside a camera's image, at least margin
	// pixels away from every border.
	InImage(p model2d.Coord, margin, cameraID int) bool
}

// A Camera is a pinhole camera.
//
// The image X axis points right and the Y axis points down, so that Z, the
// viewing direction, is X cross Y.
type Camera struct {
	Origin model3d.Coord3D
	X      model3d.Coord3D
	Y      model3d.Coord3D
	Z      model3d.Coord3D

	// FocalLength is measured in pixels.
	FocalLength float64
	Center      model2d.Coord

	Width  int
	Height int
}

// NewCameraLookAt creates a camera at origin which faces target, with a
// horizontal field of view fov (in radians).
func NewCameraLookAt(origin, target, up model3d.Coord3D, fov float64, width,
	height int) *Camera {
	z := target.Sub(origin).Normalize()
	y := up.Sub(z.Scale(up.Dot(z))).Normalize().Scale(-1)
	x := y.Cross(z)
	return &Camera{
		Origin:      origin,
		X:           x,
		Y:           y,
		Z:           z,
		FocalLength: float64(width) / 2 / math.Tan(fov/2),
		Center:      model2d.XY(float64(width)/2, float64(height)/2),
		Width:       width,
		Height:      height,
	}
}

// Project maps a point into image coordinates.
//
// Points at or behind the image plane produce NaN coordinates, which are
// never inside the image.
func (c *Camera) Project(p model3d.Coord3D) model2d.Coord {
	d := p.Sub(c.Origin)
	z := d.Dot(c.Z)
	if z <= 0 {
		return model2d.XY(math.NaN(), math.NaN())
	}
	return model2d.XY(
		c.FocalLength*d.Dot(c.X)/z+c.Center.X,
		c.FocalLength*d.Dot(c.Y)/z+c.Center.Y,
	)
}

type cameraJSON struct {
	Origin      [3]float64 `json:"origin"`
	X           [3]float64 `json:"x"`
	Y           [3]float64 `json:"y"`
	Z           [3]float64 `json:"z"`
	FocalLength float64    `json:"focal_length"`
	Center      [2]float64 `json:"center"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
}

// ReadCameras decodes a JSON list of cameras written by WriteCameras.
func ReadCameras(r io.Reader) ([]*Camera, error) {
	var raw []cameraJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "read cameras")
	}
	res := make([]*Camera, len(raw))
	for i, c := range raw {
		if c.Width <= 0 || c.Height <= 0 {
			return nil, errors.Errorf("read cameras: camera %d has invalid size %dx%d", i,
				c.Width, c.Height)
		}
		res[i] = &Camera{
			Origin:      model3d.NewCoord3DArray(c.Origin),
			X:           model3d.NewCoord3DArray(c.X),
			Y:           model3d.NewCoord3DArray(c.Y),
			Z:           model3d.NewCoord3DArray(c.Z),
			FocalLength: c.FocalLength,
			Center:      model2d.XY(c.Center[0], c.Center[1]),
			Width:       c.Width,
			Height:      c.Height,
		}
	}
	return res, nil
}

// WriteCameras encodes cameras as JSON.
func WriteCameras(w io.Writer, cams []*Camera) error {
	raw := make([]cameraJSON, len(cams))
	for i, c := range cams {
		raw[i] = cameraJSON{
			Origin:      c.Origin.Array(),
			X:           c.X.Array(),
			Y:           c.Y.Array(),
			Z:           c.Z.Array(),
			FocalLength: c.FocalLength,
			Center:      [2]float64{c.Center.X, c.Center.Y},
			Width:       c.Width,
			Height:      c.Height,
		}
	}
	if err := json.NewEncoder(w).Encode(raw); err != nil {
		return errors.Wrap(err, "write cameras")
	}
	return nil
}

// A MeshProjector projects the triangles of a mesh with pinhole cameras.
type MeshProjector struct {
	Mesh    *Mesh
	Cameras []*Camera
}

func (m *MeshProjector) NumCameras() int {
	return len(m.Cameras)
}

func (m *MeshProjector) ImageSize(cameraID int) (width, height int) {
	c := m.Cameras[cameraID]
	return c.Width, c.Height
}

// Project projects a triangle, rescaling the camera's native image to the
// requested size.
func (m *MeshProjector) Project(triangleID, cameraID, width, height int) *Projection {
	c := m.Cameras[cameraID]
	scale := model2d.XY(float64(width)/float64(c.Width), float64(height)/float64(c.Height))
	var corners [3]model2d.Coord
	for i, p := range m.Mesh.Triangle(triangleID) {
		corners[i] = c.Project(p).Mul(scale)
	}
	return NewProjection(corners)
}

func (m *MeshProjector) InImage(p model2d.Coord, margin, cameraID int) bool {
	c := m.Cameras[cameraID]
	return inImage(p, margin, c.Width, c.Height)
}

func inImage(p model2d.Coord, margin, width, height int) bool {
	x, y := math.Floor(p.X), math.Floor(p.Y)
	m := float64(margin)
	return x >= m && x < float64(width)-m && y >= m && y < float64(height)-m
}
