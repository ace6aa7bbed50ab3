// style.go - chart-wide visual style and per-series style configuration,
// consumed by the render-frame builder (spec.md §4.8).

package chartgo

import "github.com/lucasmanoguerra/chart-go/core"

// ChartStyle is the chart-wide background/grid/axis appearance.
type ChartStyle struct {
	Background core.Color

	GridColor   core.Color
	GridWidthPx float64

	AxisLineColor       core.Color
	AxisLabelColor      core.Color
	AxisMajorLabelColor core.Color
	AxisFontSizePx      float64
	AxisMajorFontSizePx float64

	TimeAxisHeightPx float64
	PriceAxisWidthPx float64

	MinPlotWidthPx  float64
	MinPlotHeightPx float64
}

// DefaultChartStyle is a conservative dark-on-light theme matching common
// charting library defaults.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Background:          core.Color{R: 255, G: 255, B: 255, A: 255},
		GridColor:           core.Color{R: 230, G: 230, B: 230, A: 255},
		GridWidthPx:         1,
		AxisLineColor:       core.Color{R: 180, G: 180, B: 180, A: 255},
		AxisLabelColor:      core.Color{R: 80, G: 80, B: 80, A: 255},
		AxisMajorLabelColor: core.Color{R: 20, G: 20, B: 20, A: 255},
		AxisFontSizePx:      11,
		AxisMajorFontSizePx: 12,
		TimeAxisHeightPx:    24,
		PriceAxisWidthPx:    56,
		MinPlotWidthPx:      40,
		MinPlotHeightPx:     40,
	}
}

// PointSeriesKind selects the geometry a point series projects into.
type PointSeriesKind int

const (
	SeriesNone PointSeriesKind = iota
	SeriesLine
	SeriesArea
	SeriesBaseline
	SeriesHistogram
	SeriesBar
)

// PointSeriesStyle configures the point series' appearance and the extra
// parameters its geometry needs (baseline price, bar/histogram widths).
type PointSeriesStyle struct {
	Kind          PointSeriesKind
	Color         core.Color
	LineWidthPx   float64
	BaselinePrice float64 // Baseline, Histogram
	BarWidthPx    float64 // Histogram full width, or OHLC-bar tick half-width
}

// DefaultPointSeriesStyle renders a 1.5px blue line series.
func DefaultPointSeriesStyle() PointSeriesStyle {
	return PointSeriesStyle{
		Kind:        SeriesLine,
		Color:       core.Color{R: 33, G: 110, B: 220, A: 255},
		LineWidthPx: 1.5,
		BarWidthPx:  4,
	}
}
