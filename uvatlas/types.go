package uvatlas

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// A Pixel is an integer coordinate in some image.
type Pixel struct {
	X int
	Y int
}

func (p Pixel) Add(p1 Pixel) Pixel {
	return Pixel{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// A Projection is the footprint of a triangle in a camera's image.
type Projection struct {
	Corners [3]model2d.Coord

	// LU and RD are the upper-left and lower-right pixels of the bounding
	// box of the corners.
	LU Pixel
	RD Pixel
}

// NewProjection computes the pixel bounding box of three projected corners.
func NewProjection(corners [3]model2d.Coord) *Projection {
	min, max := corners[0], corners[0]
	for _, c := range corners[1:] {
		min = min.Min(c)
		max = max.Max(c)
	}
	return &Projection{
		Corners: corners,
		LU:      Pixel{X: floorPixel(min.X), Y: floorPixel(min.Y)},
		RD:      Pixel{X: floorPixel(max.X), Y: floorPixel(max.Y)},
	}
}

func floorPixel(x float64) int {
	if math.IsNaN(x) || x < math.MinInt32 {
		return math.MinInt32
	} else if x > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(x))
}
