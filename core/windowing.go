// windowing.go - selecting samples that fall inside a time window

package core

// PointsInTimeWindow returns points whose time falls inside the inclusive
// [start, end] window (order-independent).
func PointsInTimeWindow(points []DataPoint, start, end float64) []DataPoint {
	minT, maxT := orderedBounds(start, end)
	out := make([]DataPoint, 0, len(points))
	for _, p := range points {
		if p.X >= minT && p.X <= maxT {
			out = append(out, p)
		}
	}
	return out
}

// CandlesInTimeWindow returns candles whose time falls inside the
// inclusive [start, end] window (order-independent).
func CandlesInTimeWindow(candles []OhlcBar, start, end float64) []OhlcBar {
	minT, maxT := orderedBounds(start, end)
	out := make([]OhlcBar, 0, len(candles))
	for _, c := range candles {
		if c.Time >= minT && c.Time <= maxT {
			out = append(out, c)
		}
	}
	return out
}

func orderedBounds(start, end float64) (float64, float64) {
	if start <= end {
		return start, end
	}
	return end, start
}
