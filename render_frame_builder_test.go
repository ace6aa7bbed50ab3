package chartgo

import (
	"testing"

	"github.com/lucasmanoguerra/chart-go/core"
	"github.com/lucasmanoguerra/chart-go/render"
)

func newTestRenderInput(t *testing.T, kind PointSeriesKind) RenderInput {
	t.Helper()
	priceScale, err := core.NewPriceScale(0, 100, 0.1, 0.1, false, core.PriceScaleModeLinear, 1)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	panes := NewPaneCollection()
	style := DefaultPointSeriesStyle()
	style.Kind = kind
	style.BaselinePrice = 50

	lastPrice := 75.0
	return RenderInput{
		Viewport:          core.Viewport{Width: 800, Height: 400},
		Style:             DefaultChartStyle(),
		Panes:             panes,
		PaneScales:        map[PaneID]core.PriceScale{MainPaneID: priceScale},
		VisibleTimeStart:  0,
		VisibleTimeEnd:    1000,
		Points:            []core.DataPoint{{X: 0, Y: 10}, {X: 250, Y: 40}, {X: 500, Y: 20}, {X: 1000, Y: 90}},
		PointsPane:        MainPaneID,
		PointStyle:        style,
		HasPoints:         true,
		CrosshairGuide:    CrosshairGuideStyle{LineColor: core.Color{A: 255}, LineWidth: 1},
		CrosshairLabel:    CrosshairLabelStyle{BackgroundColor: core.Color{A: 255}, TextColor: core.Color{A: 255}, FontSizePx: 10},
		LastPrice:         DefaultLastPriceBehavior(),
		LastPriceValue:    &lastPrice,
		LastPriceIsUp:     true,
		TimeAxisConfig:    DefaultTimeAxisLabelConfig(),
		PriceAxisConfig:   DefaultPriceAxisLabelConfig(),
		TickDensity:       DefaultAxisTickDensity(),
		MinTickSpacing:    20,
		Caches:            newAxisLabelCaches(),
		ProfileHash:       1,
		CandleStyle:       DefaultBehaviorConfig().Candlestick,
		CandleBodyWidthPx: 4,
	}
}

func TestBuildLayeredRenderFrameProducesOnePaneFrame(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	if len(frame.Panes) != 1 {
		t.Fatalf("expected 1 pane frame, got %d", len(frame.Panes))
	}
	pane := frame.Panes[0]
	if pane.LayerByKind(render.LayerBackground) == nil {
		t.Fatalf("expected a background layer to be present")
	}
}

func TestBuildLayeredRenderFrameRejectsInvalidViewport(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	in.Viewport = core.Viewport{}
	if _, err := BuildLayeredRenderFrame(in); err == nil {
		t.Fatalf("expected an error for a zero-size viewport")
	}
}

func TestBuildLayeredRenderFrameLineSeriesEmitsSegments(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	series := frame.Panes[0].LayerByKind(render.LayerSeries)
	if series == nil || len(series.Lines) != len(in.Points)-1 {
		t.Fatalf("expected %d line segments, got %+v", len(in.Points)-1, series)
	}
}

func TestBuildLayeredRenderFrameAreaSeriesApproximatesFillWithLines(t *testing.T) {
	in := newTestRenderInput(t, SeriesArea)
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	series := frame.Panes[0].LayerByKind(render.LayerSeries)
	if series == nil || len(series.Lines) == 0 {
		t.Fatalf("expected area approximation to emit stroke lines, got %+v", series)
	}
}

func TestBuildLayeredRenderFrameHistogramEmitsRects(t *testing.T) {
	in := newTestRenderInput(t, SeriesHistogram)
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	series := frame.Panes[0].LayerByKind(render.LayerSeries)
	if series == nil || len(series.Rects) != len(in.Points) {
		t.Fatalf("expected %d histogram bars, got %+v", len(in.Points), series)
	}
}

func TestBuildLayeredRenderFrameLastPriceOverlayDrawnWhenVisible(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	overlay := frame.Panes[0].LayerByKind(render.LayerOverlay)
	if overlay == nil || len(overlay.Lines) == 0 || len(overlay.Texts) == 0 {
		t.Fatalf("expected a last-price guide line and label, got %+v", overlay)
	}
}

func TestBuildLayeredRenderFrameLastPriceOverlayOmittedWhenHidden(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	in.LastPrice.Visible = false
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	overlay := frame.Panes[0].LayerByKind(render.LayerOverlay)
	if overlay == nil || len(overlay.Lines) != 0 {
		t.Fatalf("expected no overlay primitives when last price is hidden, got %+v", overlay)
	}
}

func TestBuildLayeredRenderFrameCrosshairDrawnWhenVisible(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	in.Crosshair = CrosshairState{Visible: true, X: 400, Y: 200}
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	crosshair := frame.Panes[0].LayerByKind(render.LayerCrosshair)
	if crosshair == nil || len(crosshair.Lines) == 0 {
		t.Fatalf("expected crosshair guide lines, got %+v", crosshair)
	}
}

func TestBuildLayeredRenderFrameCrosshairOmittedWhenHidden(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	in.Crosshair = CrosshairState{Visible: false}
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	crosshair := frame.Panes[0].LayerByKind(render.LayerCrosshair)
	if crosshair == nil || len(crosshair.Lines) != 0 {
		t.Fatalf("expected no crosshair primitives, got %+v", crosshair)
	}
}

func TestBuildLayeredRenderFrameAxisLayerHasTicksInBothAxes(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	axis := frame.Panes[0].LayerByKind(render.LayerAxis)
	if axis == nil || len(axis.Texts) == 0 {
		t.Fatalf("expected price and time axis labels, got %+v", axis)
	}
}

func TestBuildLayeredRenderFrameMultiplePanesOnlyLastGetsTimeAxis(t *testing.T) {
	in := newTestRenderInput(t, SeriesLine)
	secondPane := in.Panes.AddPane(1)
	in.PaneScales[secondPane] = in.PaneScales[MainPaneID]
	frame, err := BuildLayeredRenderFrame(in)
	if err != nil {
		t.Fatalf("BuildLayeredRenderFrame: %v", err)
	}
	if len(frame.Panes) != 2 {
		t.Fatalf("expected 2 pane frames, got %d", len(frame.Panes))
	}
	firstAxis := frame.Panes[0].LayerByKind(render.LayerAxis)
	lastAxis := frame.Panes[1].LayerByKind(render.LayerAxis)
	firstHasTimeLabelHeuristic := false
	for _, text := range firstAxis.Texts {
		if text.Y > frame.Panes[0].PlotBottom {
			firstHasTimeLabelHeuristic = true
		}
	}
	if firstHasTimeLabelHeuristic {
		t.Fatalf("non-last pane should not draw time-axis labels below its plot region")
	}
	if lastAxis == nil {
		t.Fatalf("expected the last pane to carry axis labels")
	}
}
