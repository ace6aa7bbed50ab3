// candlestick.go - candle body/wick projection, including the
// spacing-dependent body-width formula and density-aware overlap clamping.

package core

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CandleGeometry is a single projected candle: a body rectangle plus a
// wick stem.
type CandleGeometry struct {
	CenterX       float64
	BodyLeft      float64
	BodyRight     float64
	BodyTop       float64
	BodyBottom    float64
	WickTop       float64
	WickBottom    float64
	IsBullish     bool
	IsBorderOnly  bool // body_width <= 2*border_width: fill with border color, no stroke
}

// CandleBodyWidthPx derives the candle body width in pixels from the bar
// spacing and the backend's pixel ratio (DPI scale), per spec.md §4.2.
func CandleBodyWidthPx(barSpacingPx, pixelRatio float64) int {
	var raw float64
	if barSpacingPx >= 2.5 && barSpacingPx <= 4 {
		raw = 3 * pixelRatio
	} else {
		coeff := 1 - 0.2*math.Atan(barSpacingPx-4)/(math.Pi/2)
		raw = barSpacingPx * coeff * pixelRatio
	}
	width := math.Floor(raw)
	if maxWidth := math.Floor(barSpacingPx * pixelRatio); width > maxWidth {
		width = maxWidth
	}
	if minWidth := math.Floor(pixelRatio); width < minWidth {
		width = minWidth
	}

	intWidth := int(width)
	wickParity := int(math.Floor(pixelRatio)) % 2 // 1px wick (at pixelRatio 1) has odd parity
	if intWidth >= 2 && intWidth%2 != wickParity {
		intWidth--
	}
	if intWidth < 1 {
		intWidth = 1
	}
	return intWidth
}

// ProjectCandles projects OHLC candles into CandleGeometry, clamping
// adjacent horizontal bounds so a candle's left edge never overlaps the
// previous candle's right edge. Above parallelCandleThreshold bars, the
// per-candle projection (the expensive part: four PriceToPixel calls plus
// one TimeToPixel call) is fanned out across workers while output order
// stays deterministic, since each goroutine writes only to its own index.
func ProjectCandles(bars []OhlcBar, timeScale TimeScale, priceScale PriceScale, viewport Viewport, bodyWidthPx float64, borderWidthPx float64) ([]CandleGeometry, error) {
	if !isFinite(bodyWidthPx) || bodyWidthPx <= 0 {
		return nil, InvalidData("body width must be finite and > 0")
	}
	out := make([]CandleGeometry, len(bars))
	if err := projectCandlesInto(bars, timeScale, priceScale, viewport, bodyWidthPx, borderWidthPx, out); err != nil {
		return nil, err
	}
	clampAdjacentBounds(out)
	return out, nil
}

const parallelCandleThreshold = 2048

func projectCandlesInto(bars []OhlcBar, timeScale TimeScale, priceScale PriceScale, viewport Viewport, bodyWidthPx, borderWidthPx float64, out []CandleGeometry) error {
	if len(bars) < parallelCandleThreshold {
		return projectCandlesSequential(bars, timeScale, priceScale, viewport, bodyWidthPx, borderWidthPx, out)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	chunk := (len(bars) + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < len(bars); start += chunk {
		start := start
		end := start + chunk
		if end > len(bars) {
			end = len(bars)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				geom, err := projectSingleCandle(bars[i], timeScale, priceScale, viewport, bodyWidthPx, borderWidthPx)
				if err != nil {
					return err
				}
				out[i] = geom
			}
			return nil
		})
	}
	return g.Wait()
}

func projectCandlesSequential(bars []OhlcBar, timeScale TimeScale, priceScale PriceScale, viewport Viewport, bodyWidthPx, borderWidthPx float64, out []CandleGeometry) error {
	for i, b := range bars {
		geom, err := projectSingleCandle(b, timeScale, priceScale, viewport, bodyWidthPx, borderWidthPx)
		if err != nil {
			return err
		}
		out[i] = geom
	}
	return nil
}

func projectSingleCandle(bar OhlcBar, timeScale TimeScale, priceScale PriceScale, viewport Viewport, bodyWidthPx, borderWidthPx float64) (CandleGeometry, error) {
	half := bodyWidthPx / 2
	centerX, err := timeScale.TimeToPixel(bar.Time, viewport)
	if err != nil {
		return CandleGeometry{}, err
	}
	openY, err := priceScale.PriceToPixel(bar.Open, viewport)
	if err != nil {
		return CandleGeometry{}, err
	}
	closeY, err := priceScale.PriceToPixel(bar.Close, viewport)
	if err != nil {
		return CandleGeometry{}, err
	}
	wickTop, err := priceScale.PriceToPixel(bar.High, viewport)
	if err != nil {
		return CandleGeometry{}, err
	}
	wickBottom, err := priceScale.PriceToPixel(bar.Low, viewport)
	if err != nil {
		return CandleGeometry{}, err
	}

	bodyTop, bodyBottom := openY, closeY
	if bodyTop > bodyBottom {
		bodyTop, bodyBottom = bodyBottom, bodyTop
	}

	return CandleGeometry{
		CenterX:      centerX,
		BodyLeft:     centerX - half,
		BodyRight:    centerX + half,
		BodyTop:      bodyTop,
		BodyBottom:   bodyBottom,
		WickTop:      wickTop,
		WickBottom:   wickBottom,
		IsBullish:    bar.IsBullish(),
		IsBorderOnly: bodyWidthPx <= 2*borderWidthPx,
	}, nil
}

// clampAdjacentBounds enforces current-left > previous-right under dense
// spacing, per spec.md §4.2, preserving the candle's center and shrinking
// only the overlapping edge.
func clampAdjacentBounds(candles []CandleGeometry) {
	for i := 1; i < len(candles); i++ {
		prev := &candles[i-1]
		cur := &candles[i]
		if cur.BodyLeft <= prev.BodyRight {
			mid := (prev.BodyRight + cur.BodyLeft) / 2
			const eps = 1e-6
			prev.BodyRight = mid - eps/2
			cur.BodyLeft = mid + eps/2
		}
	}
}
