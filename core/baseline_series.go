// baseline_series.go - polygons split above/below a baseline price

package core

// BaselineGeometry carries the above- and below-baseline filled polygons.
// Each polygon is closed against the baseline y (not the viewport bottom).
type BaselineGeometry struct {
	AbovePolygons [][]Point
	BelowPolygons [][]Point
}

// ProjectBaseline splits the line into polygons above and below
// baselinePrice, inserting an interpolated vertex at the baseline
// wherever two consecutive points straddle it (crossing interpolation is
// done in pixel space, matching how the line segments themselves are
// drawn as straight pixel-space segments).
func ProjectBaseline(points []DataPoint, baselinePrice float64, timeScale TimeScale, priceScale PriceScale, viewport Viewport) (BaselineGeometry, error) {
	geom := BaselineGeometry{AbovePolygons: [][]Point{}, BelowPolygons: [][]Point{}}
	if len(points) < 2 {
		return geom, nil
	}
	xs, ys, err := projectXY(points, timeScale, priceScale, viewport)
	if err != nil {
		return BaselineGeometry{}, err
	}
	baselineY, err := priceScale.PriceToPixel(baselinePrice, viewport)
	if err != nil {
		return BaselineGeometry{}, err
	}

	var above, below []Point
	flushAbove := func() {
		if len(above) >= 2 {
			poly := append([]Point(nil), above...)
			poly = append(poly, Point{X: poly[len(poly)-1].X, Y: baselineY})
			poly = append(poly, Point{X: poly[0].X, Y: baselineY})
			geom.AbovePolygons = append(geom.AbovePolygons, poly)
		}
		above = nil
	}
	flushBelow := func() {
		if len(below) >= 2 {
			poly := append([]Point(nil), below...)
			poly = append(poly, Point{X: poly[len(poly)-1].X, Y: baselineY})
			poly = append(poly, Point{X: poly[0].X, Y: baselineY})
			geom.BelowPolygons = append(geom.BelowPolygons, poly)
		}
		below = nil
	}

	// isAbove uses pixel-space y: smaller y is visually above the baseline.
	isAbove := func(y float64) bool { return y <= baselineY }

	for i := 0; i < len(points); i++ {
		cur := Point{X: xs[i], Y: ys[i]}
		curAbove := isAbove(ys[i])
		if i > 0 {
			prevAbove := isAbove(ys[i-1])
			if curAbove != prevAbove {
				// crossing: interpolate the baseline-touching vertex in
				// pixel space, then start the new run there.
				t := (baselineY - ys[i-1]) / (ys[i] - ys[i-1])
				crossX := xs[i-1] + t*(xs[i]-xs[i-1])
				crossing := Point{X: crossX, Y: baselineY}
				if prevAbove {
					above = append(above, crossing)
					flushAbove()
					below = append(below, crossing)
				} else {
					below = append(below, crossing)
					flushBelow()
					above = append(above, crossing)
				}
			}
		}
		if curAbove {
			above = append(above, cur)
		} else {
			below = append(below, cur)
		}
	}
	flushAbove()
	flushBelow()
	return geom, nil
}
