package uvatlas

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// ErrChartTooLarge is returned when a chart cannot fit in an empty page.
var ErrChartTooLarge = errors.New("chart does not fit in an empty texture page")

// A Page is one square texture image of an atlas.
type Page struct {
	// Charts are stored in the order they were placed.
	Charts []*Chart
}

// NumTriangles counts the triangles of all charts in the page.
func (p *Page) NumTriangles() int {
	var res int
	for _, c := range p.Charts {
		res += len(c.TriangleIDs)
	}
	return res
}

// Utilization computes the fraction of the page covered by chart contents,
// excluding gutters.
func (p *Page) Utilization(textureSide int) float64 {
	var area int
	for _, c := range p.Charts {
		area += c.Width() * c.Height()
	}
	return float64(area) / float64(textureSide*textureSide)
}

// PackCharts places finalized charts into as many pages as needed.
//
// Charts are sorted by decreasing width, then decreasing height. Each page is
// filled with the largest remaining charts until one does not fit, and then
// the leftover space is filled with the smallest remaining charts.
//
// The resulting placements are stored in each chart's TargetLU.
//
// If some chart cannot fit even in an empty page, ErrChartTooLarge is
// returned before anything is placed.
func PackCharts(charts []*Chart, textureSide, gutter int) ([]*Page, error) {
	if textureSide < 1 {
		return nil, errors.Errorf("pack charts: invalid texture side %d", textureSide)
	}
	if gutter < 0 {
		return nil, errors.Errorf("pack charts: invalid gutter size %d", gutter)
	}
	maxExtent := NewChartRect(textureSide).RD.X
	for _, c := range charts {
		w, h := c.Width()+gutter*2, c.Height()+gutter*2
		if w > maxExtent || h > maxExtent {
			return nil, errors.Wrapf(ErrChartTooLarge,
				"pack charts: chart %d is %dx%d with gutter %d (texture side %d)",
				c.ID, c.Width(), c.Height(), gutter, textureSide)
		}
	}

	sorted := append([]*Chart{}, charts...)
	slices.SortStableFunc(sorted, func(a, b *Chart) bool {
		if a.Width() == b.Width() {
			return a.Height() > b.Height()
		}
		return a.Width() > b.Width()
	})

	var pages []*Page
	i, j := 0, len(sorted)-1
	for i <= j {
		page := &Page{}
		root := NewChartRect(textureSide)
		insert := func(idx int) bool {
			chart := sorted[idx]
			rect := root.Insert(chart, gutter)
			if rect == nil {
				return false
			}
			chart.TargetLU = rect.LU.Add(Pixel{X: gutter, Y: gutter})
			page.Charts = append(page.Charts, chart)
			return true
		}
		for i <= j && insert(i) {
			i++
		}
		for j > i && insert(j) {
			j--
		}
		pages = append(pages, page)
	}
	return pages, nil
}
