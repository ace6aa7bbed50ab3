// line_series.go - pure projection of windowed points into line segments

package core

// LineSegment is a single adjacent-point segment of a line series.
type LineSegment struct {
	X1, Y1, X2, Y2 float64
}

// ProjectLine maps consecutive projected points into segments. Fewer than
// two points yields an empty (non-nil) slice.
func ProjectLine(points []DataPoint, timeScale TimeScale, priceScale PriceScale, viewport Viewport) ([]LineSegment, error) {
	if len(points) < 2 {
		return []LineSegment{}, nil
	}
	xs, ys, err := projectXY(points, timeScale, priceScale, viewport)
	if err != nil {
		return nil, err
	}
	segs := make([]LineSegment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segs = append(segs, LineSegment{X1: xs[i-1], Y1: ys[i-1], X2: xs[i], Y2: ys[i]})
	}
	return segs, nil
}

func projectXY(points []DataPoint, timeScale TimeScale, priceScale PriceScale, viewport Viewport) (xs, ys []float64, err error) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		x, err := timeScale.TimeToPixel(p.X, viewport)
		if err != nil {
			return nil, nil, err
		}
		y, err := priceScale.PriceToPixel(p.Y, viewport)
		if err != nil {
			return nil, nil, err
		}
		xs[i] = x
		ys[i] = y
	}
	return xs, ys, nil
}
