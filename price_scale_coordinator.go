// price_scale_coordinator.go - per-pane autoscale and axis-drag-scale,
// grounded on original_source/src/api/pane_price_scale_coordinator.rs.

package chartgo

import (
	"math"

	"github.com/lucasmanoguerra/chart-go/core"
)

// priceExtent is a finite [Min, Max] price range found in a pane's data.
type priceExtent struct {
	Min, Max float64
}

// paneDataPriceExtents scans the points/candles assigned to paneID and
// returns their price extent, optionally restricted to a visible time
// window. Returns false if the pane has no finite price samples.
func paneDataPriceExtents(points []core.DataPoint, pointsPane PaneID, candles []core.OhlcBar, candlesPane PaneID, paneID PaneID, visibleRange *[2]float64) (priceExtent, bool) {
	minPrice := math.Inf(1)
	maxPrice := math.Inf(-1)

	isVisible := func(t float64) bool {
		if visibleRange == nil {
			return true
		}
		lo, hi := visibleRange[0], visibleRange[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return t >= lo && t <= hi
	}

	if pointsPane == paneID {
		for _, p := range points {
			if !isFiniteLocal(p.Y) || !isVisible(p.X) {
				continue
			}
			minPrice = math.Min(minPrice, p.Y)
			maxPrice = math.Max(maxPrice, p.Y)
		}
	}

	if candlesPane == paneID {
		for _, c := range candles {
			if !isVisible(c.Time) {
				continue
			}
			if isFiniteLocal(c.Low) {
				minPrice = math.Min(minPrice, c.Low)
			}
			if isFiniteLocal(c.High) {
				maxPrice = math.Max(maxPrice, c.High)
			}
		}
	}

	if math.IsInf(minPrice, 0) || math.IsInf(maxPrice, 0) {
		return priceExtent{}, false
	}
	if math.Abs(maxPrice-minPrice) <= 1e-12 {
		center := minPrice
		pad := math.Max(math.Abs(center), 1.0) * 1e-6
		return priceExtent{Min: center - pad, Max: center + pad}, true
	}
	return priceExtent{Min: minPrice, Max: maxPrice}, true
}

// resolveRenderPriceScaleForPane rebuilds a pane's render-time price scale
// from its current data extent (preferring the visible window, falling
// back to the full series), preserving mode/base/margins/inversion from
// the pane's persisted scale. Falls back to persisted unchanged if no
// finite extent can be resolved or construction fails.
func resolveRenderPriceScaleForPane(persisted core.PriceScale, mode core.PriceScaleMode, points []core.DataPoint, pointsPane PaneID, candles []core.OhlcBar, candlesPane PaneID, paneID PaneID, visibleStart, visibleEnd float64) core.PriceScale {
	visible := [2]float64{visibleStart, visibleEnd}
	extent, ok := paneDataPriceExtents(points, pointsPane, candles, candlesPane, paneID, &visible)
	if !ok {
		extent, ok = paneDataPriceExtents(points, pointsPane, candles, candlesPane, paneID, nil)
	}
	if !ok {
		return persisted
	}

	top, bot := persisted.TopRatio, persisted.BotRatio
	inverted := persisted.Inverted
	base := persisted.Base

	scale, err := core.NewPriceScale(extent.Min, extent.Max, top, bot, inverted, mode, base)
	if err != nil {
		return persisted
	}
	return scale
}

// paneAutoscaleAppliesToSeries reports whether a pane's explicit per-pane
// parity invalidation requested autoscale (spec.md §4.4's per-pane
// autoscale gate, tracked by ParityMask.PaneInvalidations[pane].AutoScale);
// a pane with no explicit entry reports false.
func paneAutoscaleAppliesToSeries(mask *ParityMask, paneID PaneID) bool {
	return mask.InvalidationForPane(paneID).AutoScale
}

// applyAxisDragScale rescales a pane's price scale margins in response to
// a vertical drag on its price axis: dragging down (positive deltaPx)
// zooms in (shrinks margins), dragging up zooms out.
func applyAxisDragScale(scale core.PriceScale, deltaPx, heightPx float64) (core.PriceScale, error) {
	if heightPx <= 0 {
		return scale, core.InvalidData("axis drag scale requires a positive viewport height")
	}
	ratioDelta := deltaPx / heightPx
	top := clampFloat(scale.TopRatio-ratioDelta*0.5, 0, 0.49)
	bot := clampFloat(scale.BotRatio-ratioDelta*0.5, 0, 0.49)
	if top+bot >= 1 {
		excess := top + bot - 0.99
		top -= excess / 2
		bot -= excess / 2
	}
	min, max := scale.Domain()
	return core.NewPriceScale(min, max, top, bot, scale.Inverted, scale.Mode, scale.Base)
}
