// types.go - core value types shared across the chart engine

package core

import "math"

// Viewport is the pixel dimensions of a render target. It is intentionally
// copyable since mapping/projection functions read it on every call.
type Viewport struct {
	Width  uint32
	Height uint32
}

// IsValid reports whether both dimensions are non-zero.
func (v Viewport) IsValid() bool {
	return v.Width > 0 && v.Height > 0
}

// DataPoint is a minimal XY sample used by line/area/baseline/histogram
// series.
type DataPoint struct {
	X float64 // domain time
	Y float64 // price
}

// IsFinite reports whether both fields are finite.
func (p DataPoint) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// OhlcBar is a single candle/bar sample.
type OhlcBar struct {
	Time  float64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// NewOhlcBar validates and constructs an OhlcBar.
//
// Invariants: all values finite; low <= open,close <= high; low <= high.
func NewOhlcBar(time, open, high, low, close float64) (OhlcBar, error) {
	if !isFinite(time) || !isFinite(open) || !isFinite(high) || !isFinite(low) || !isFinite(close) {
		return OhlcBar{}, InvalidData("ohlc values must be finite")
	}
	if low > high {
		return OhlcBar{}, InvalidData("ohlc low must be <= high")
	}
	if open < low || open > high || close < low || close > high {
		return OhlcBar{}, InvalidData("ohlc open/close must be within low/high range")
	}
	return OhlcBar{Time: time, Open: open, High: high, Low: low, Close: close}, nil
}

// IsBullish reports whether close >= open.
func (b OhlcBar) IsBullish() bool {
	return b.Close >= b.Open
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
