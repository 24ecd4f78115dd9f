package uvatlas

// A ChartRect is a node in a guillotine partition of an atlas page.
//
// A leaf holds at most one chart. When a chart is inserted into an empty
// leaf, the unused remainder of the leaf is cut into up to two children.
type ChartRect struct {
	LU Pixel
	RD Pixel

	Children [2]*ChartRect
	Chart    *Chart
}

// NewChartRect creates the root of a page with the given side length.
func NewChartRect(textureSide int) *ChartRect {
	return &ChartRect{
		RD: Pixel{X: textureSide - 1, Y: textureSide - 1},
	}
}

func (c *ChartRect) IsLeaf() bool {
	return c.Children[0] == nil && c.Children[1] == nil
}

// Insert finds room for a chart surrounded by a gutter on every side.
//
// Returns the leaf that now holds the chart, or nil if there was no room.
// Leaves are searched depth-first, trying the first child before the second.
func (c *ChartRect) Insert(chart *Chart, gutter int) *ChartRect {
	if !c.IsLeaf() {
		for _, child := range c.Children {
			if child != nil {
				if rect := child.Insert(chart, gutter); rect != nil {
					return rect
				}
			}
		}
		return nil
	}

	if c.Chart != nil {
		return nil
	}
	chartWidth := chart.Width() + gutter*2
	chartHeight := chart.Height() + gutter*2
	width := c.RD.X - c.LU.X
	height := c.RD.Y - c.LU.Y
	if chartWidth > width || chartHeight > height {
		return nil
	}

	if chartWidth >= chartHeight {
		if chartWidth < width {
			c.Children[0] = &ChartRect{
				LU: Pixel{X: c.LU.X + chartWidth, Y: c.LU.Y},
				RD: Pixel{X: c.RD.X, Y: c.LU.Y + chartHeight},
			}
		}
		if chartHeight < height {
			c.Children[1] = &ChartRect{
				LU: Pixel{X: c.LU.X, Y: c.LU.Y + chartHeight},
				RD: c.RD,
			}
		}
	} else {
		if chartHeight < height {
			c.Children[0] = &ChartRect{
				LU: Pixel{X: c.LU.X, Y: c.LU.Y + chartHeight},
				RD: Pixel{X: c.LU.X + chartWidth, Y: c.RD.Y},
			}
		}
		if chartWidth < width {
			c.Children[1] = &ChartRect{
				LU: Pixel{X: c.LU.X + chartWidth, Y: c.LU.Y},
				RD: c.RD,
			}
		}
	}
	c.Chart = chart
	return c
}

// Occupied calls f for every node holding a chart, parents before children.
func (c *ChartRect) Occupied(f func(r *ChartRect)) {
	if c.Chart != nil {
		f(c)
	}
	for _, child := range c.Children {
		if child != nil {
			child.Occupied(f)
		}
	}
}
