// area_series.go - line vertices plus an explicitly closed bottom polygon

package core

// AreaGeometry carries the line vertices (for the stroke) and the closed
// polygon vertices (for the fill), anchored at the viewport bottom.
type AreaGeometry struct {
	LineVertices    []Point
	PolygonVertices []Point
}

// Point is a projected pixel-space vertex.
type Point struct {
	X, Y float64
}

// ProjectArea builds line vertices plus a polygon closed at the viewport
// bottom; the first-baseline vertex is repeated so closure is explicit.
func ProjectArea(points []DataPoint, timeScale TimeScale, priceScale PriceScale, viewport Viewport) (AreaGeometry, error) {
	if len(points) < 2 {
		return AreaGeometry{LineVertices: []Point{}, PolygonVertices: []Point{}}, nil
	}
	xs, ys, err := projectXY(points, timeScale, priceScale, viewport)
	if err != nil {
		return AreaGeometry{}, err
	}
	line := make([]Point, len(points))
	for i := range points {
		line[i] = Point{X: xs[i], Y: ys[i]}
	}

	bottom := float64(viewport.Height)
	polygon := make([]Point, 0, len(points)+2)
	polygon = append(polygon, Point{X: xs[0], Y: bottom})
	polygon = append(polygon, line...)
	polygon = append(polygon, Point{X: xs[len(xs)-1], Y: bottom})
	polygon = append(polygon, Point{X: xs[0], Y: bottom}) // explicit closure

	return AreaGeometry{LineVertices: line, PolygonVertices: polygon}, nil
}
