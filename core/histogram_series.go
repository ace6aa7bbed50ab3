// histogram_series.go - rectangles spanning from a baseline to each value

package core

// HistogramBar is a single projected histogram rectangle, centered on the
// mapped x with a fixed pixel width.
type HistogramBar struct {
	CenterX   float64
	Top       float64
	Bottom    float64
	HalfWidth float64
}

// ProjectHistogram maps points to histogram rectangles spanning from
// baselinePrice's pixel y to each point's value y.
func ProjectHistogram(points []DataPoint, baselinePrice float64, widthPx float64, timeScale TimeScale, priceScale PriceScale, viewport Viewport) ([]HistogramBar, error) {
	if !isFinite(widthPx) || widthPx <= 0 {
		return nil, InvalidData("histogram bar width must be finite and > 0")
	}
	baselineY, err := priceScale.PriceToPixel(baselinePrice, viewport)
	if err != nil {
		return nil, err
	}
	bars := make([]HistogramBar, 0, len(points))
	half := widthPx / 2
	for _, p := range points {
		x, err := timeScale.TimeToPixel(p.X, viewport)
		if err != nil {
			return nil, err
		}
		y, err := priceScale.PriceToPixel(p.Y, viewport)
		if err != nil {
			return nil, err
		}
		top, bottom := y, baselineY
		if top > bottom {
			top, bottom = bottom, top
		}
		bars = append(bars, HistogramBar{CenterX: x, Top: top, Bottom: bottom, HalfWidth: half})
	}
	return bars, nil
}
