package uvatlas

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Config controls how an atlas is created.
type Config struct {
	// TextureSide is the width and height of every page, in pixels.
	TextureSide int `toml:"texture_side"`

	// GutterSize is the padding around every chart, in pixels.
	GutterSize int `toml:"gutter_size"`

	// Margin is the minimum distance between a projected triangle and the
	// borders of a camera image for the camera to be used.
	Margin int `toml:"margin"`

	// Concurrency is the maximum number of Goroutines used to project
	// triangles. If 0, GOMAXPROCS is used.
	Concurrency int `toml:"concurrency"`
}

func DefaultConfig() Config {
	return Config{
		TextureSide: 4096,
		GutterSize:  15,
		Margin:      DefaultMargin,
	}
}

func (c *Config) Validate() error {
	if c.TextureSide < 1 {
		return &ConfigError{Field: "TextureSide", Reason: "must be positive"}
	}
	if c.GutterSize < 0 {
		return &ConfigError{Field: "GutterSize", Reason: "must be non-negative"}
	}
	if c.GutterSize*2 >= c.TextureSide-1 {
		return &ConfigError{Field: "GutterSize", Reason: "leaves no room for charts"}
	}
	if c.Margin < 0 {
		return &ConfigError{Field: "Margin", Reason: "must be non-negative"}
	}
	if c.Concurrency < 0 {
		return &ConfigError{Field: "Concurrency", Reason: "must be non-negative"}
	}
	return nil
}

// A ConfigError is returned for an invalid Config.
type ConfigError struct {
	Field  string
	Reason string
}

func (c *ConfigError) Error() string {
	return fmt.Sprintf("invalid atlas config: %s %s", c.Field, c.Reason)
}

// An Atlas is a set of texture pages holding every textured triangle of a
// mesh.
type Atlas struct {
	TextureSide int
	GutterSize  int
	Pages       []*Page

	// TriangleCameras lists, for every mesh triangle, the cameras which saw
	// the entire triangle.
	TriangleCameras [][]int
}

// NewAtlas splits a mesh into charts and packs them into pages.
func NewAtlas(mesh *Mesh, vis PointVisibility, projector Projector, cfg Config) (*Atlas,
	error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := mesh.Validate(); err != nil {
		return nil, errors.Wrap(err, "create atlas")
	}
	candidates, err := TriangleCameras(mesh, vis, projector.NumCameras())
	if err != nil {
		return nil, errors.Wrap(err, "create atlas")
	}
	charts, triCams := BuildCharts(mesh, candidates, projector, cfg.Margin, cfg.Concurrency)
	charts, err = MergeCharts(charts, mesh)
	if err != nil {
		return nil, errors.Wrap(err, "create atlas")
	}
	charts = FinalizeCharts(charts, projector)
	pages, err := PackCharts(charts, cfg.TextureSide, cfg.GutterSize)
	if err != nil {
		return nil, errors.Wrap(err, "create atlas")
	}
	return &Atlas{
		TextureSide:     cfg.TextureSide,
		GutterSize:      cfg.GutterSize,
		Pages:           pages,
		TriangleCameras: triCams,
	}, nil
}

// NumCharts counts the charts across all pages.
func (a *Atlas) NumCharts() int {
	var res int
	for _, p := range a.Pages {
		res += len(p.Charts)
	}
	return res
}

// NumTriangles counts the textured triangles across all pages.
func (a *Atlas) NumTriangles() int {
	var res int
	for _, p := range a.Pages {
		res += p.NumTriangles()
	}
	return res
}

// ChartPage finds the page and chart which contain a triangle.
//
// If the triangle was not textured, ok is false.
func (a *Atlas) ChartPage(triangleID int) (page int, chart *Chart, ok bool) {
	for i, p := range a.Pages {
		for _, c := range p.Charts {
			if _, found := slices.BinarySearch(c.TriangleIDs, triangleID); found {
				return i, c, true
			}
		}
	}
	return -1, nil, false
}
