package uvatlas

import (
	"math"

	"github.com/unixpickle/essentials"
	"golang.org/x/exp/slices"
)

// FinalizeCharts prepares merged charts for packing.
//
// Charts with no common camera are dropped. Every other chart is assigned its
// lowest camera ID as the reference camera, its triangle list is sorted and
// made unique, and its bounds are computed in the reference camera's image.
func FinalizeCharts(charts []*Chart, projector Projector) []*Chart {
	var res []*Chart
	for _, c := range charts {
		if len(c.CommonCameraIDs) == 0 {
			continue
		}
		c.RefCameraID = c.CommonCameraIDs[0]

		slices.Sort(c.TriangleIDs)
		c.TriangleIDs = slices.Compact(c.TriangleIDs)

		c.SourceLU = Pixel{X: math.MaxInt32, Y: math.MaxInt32}
		c.SourceRD = Pixel{X: math.MinInt32, Y: math.MinInt32}
		width, height := projector.ImageSize(c.RefCameraID)
		for _, t := range c.TriangleIDs {
			proj := projector.Project(t, c.RefCameraID, width, height)
			c.SourceLU.X = essentials.MinInt(c.SourceLU.X, proj.LU.X)
			c.SourceLU.Y = essentials.MinInt(c.SourceLU.Y, proj.LU.Y)
			c.SourceRD.X = essentials.MaxInt(c.SourceRD.X, proj.RD.X)
			c.SourceRD.Y = essentials.MaxInt(c.SourceRD.Y, proj.RD.Y)
		}
		res = append(res, c)
	}
	return res
}
