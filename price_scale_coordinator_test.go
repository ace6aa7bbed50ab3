package chartgo

import (
	"testing"

	"github.com/lucasmanoguerra/chart-go/core"
)

func TestPaneDataPriceExtentsCandlesAndVisibleWindow(t *testing.T) {
	candles := []core.OhlcBar{
		{Time: 0, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: 10, Open: 11, High: 20, Low: 5, Close: 15},
	}
	visible := [2]float64{0, 5}
	extent, ok := paneDataPriceExtents(nil, MainPaneID, candles, MainPaneID, MainPaneID, &visible)
	if !ok {
		t.Fatalf("expected extent to resolve")
	}
	if extent.Min != 9 || extent.Max != 12 {
		t.Fatalf("expected extent restricted to visible candle [9,12], got %+v", extent)
	}
}

func TestPaneDataPriceExtentsFallsBackToFullWhenNoVisibleMatch(t *testing.T) {
	candles := []core.OhlcBar{{Time: 100, Open: 10, High: 12, Low: 9, Close: 11}}
	visible := [2]float64{0, 5}
	if _, ok := paneDataPriceExtents(nil, MainPaneID, candles, MainPaneID, MainPaneID, &visible); ok {
		t.Fatalf("expected no extent within an unmatched visible window")
	}
	if extent, ok := paneDataPriceExtents(nil, MainPaneID, candles, MainPaneID, MainPaneID, nil); !ok || extent.Min != 9 {
		t.Fatalf("expected full-range fallback to find the candle extent, got %+v ok=%v", extent, ok)
	}
}

func TestPaneDataPriceExtentsDegenerateRangePads(t *testing.T) {
	points := []core.DataPoint{{X: 0, Y: 50}, {X: 1, Y: 50}}
	extent, ok := paneDataPriceExtents(points, MainPaneID, nil, MainPaneID, MainPaneID, nil)
	if !ok {
		t.Fatalf("expected extent to resolve")
	}
	if extent.Min >= extent.Max {
		t.Fatalf("expected degenerate equal-price data to be padded into a non-empty range, got %+v", extent)
	}
}

func TestPaneDataPriceExtentsWrongPaneIgnored(t *testing.T) {
	points := []core.DataPoint{{X: 0, Y: 50}}
	if _, ok := paneDataPriceExtents(points, PaneID(1), nil, MainPaneID, MainPaneID, nil); ok {
		t.Fatalf("expected points owned by another pane to be ignored")
	}
}

func TestResolveRenderPriceScaleForPaneFallsBackOnNoData(t *testing.T) {
	persisted, err := core.NewPriceScale(0, 100, 0.1, 0.1, false, core.PriceScaleModeLinear, 1)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	got := resolveRenderPriceScaleForPane(persisted, core.PriceScaleModeLinear, nil, MainPaneID, nil, MainPaneID, MainPaneID, 0, 10)
	if got != persisted {
		t.Fatalf("expected fallback to persisted scale when no data present")
	}
}

func TestResolveRenderPriceScaleForPanePreservesMarginsAndMode(t *testing.T) {
	persisted, err := core.NewPriceScale(0, 100, 0.2, 0.05, true, core.PriceScaleModePercentage, 50)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	candles := []core.OhlcBar{{Time: 0, Open: 10, High: 12, Low: 9, Close: 11}}
	got := resolveRenderPriceScaleForPane(persisted, core.PriceScaleModePercentage, nil, MainPaneID, candles, MainPaneID, MainPaneID, 0, 10)

	if got.TopRatio != 0.2 || got.BotRatio != 0.05 {
		t.Fatalf("expected margins preserved, got top=%v bot=%v", got.TopRatio, got.BotRatio)
	}
	if !got.Inverted {
		t.Fatalf("expected inversion preserved")
	}
	if got.Mode != core.PriceScaleModePercentage {
		t.Fatalf("expected mode preserved")
	}
	min, max := got.Domain()
	if min != 9 || max != 12 {
		t.Fatalf("expected domain rebuilt from candle extent [9,12], got [%v,%v]", min, max)
	}
}

func TestApplyAxisDragScaleShrinksMarginsOnPositiveDelta(t *testing.T) {
	scale, err := core.NewPriceScale(0, 100, 0.1, 0.1, false, core.PriceScaleModeLinear, 1)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	got, err := applyAxisDragScale(scale, 40, 400)
	if err != nil {
		t.Fatalf("applyAxisDragScale: %v", err)
	}
	if got.TopRatio >= scale.TopRatio || got.BotRatio >= scale.BotRatio {
		t.Fatalf("expected positive drag to shrink margins, before top=%v bot=%v after top=%v bot=%v", scale.TopRatio, scale.BotRatio, got.TopRatio, got.BotRatio)
	}
}

func TestApplyAxisDragScaleRejectsZeroHeight(t *testing.T) {
	scale, _ := core.NewPriceScale(0, 100, 0.1, 0.1, false, core.PriceScaleModeLinear, 1)
	if _, err := applyAxisDragScale(scale, 10, 0); err == nil {
		t.Fatalf("expected error for zero viewport height")
	}
}
