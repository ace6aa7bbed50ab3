// render_frame_builder.go - the pure layered render-frame builder
// (spec.md §4.8). Grounded on original_source/src/api/*_render_frame_builder.rs
// for composition order and on render/layer_stack.go's fixed layer kinds.

package chartgo

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lucasmanoguerra/chart-go/core"
	"github.com/lucasmanoguerra/chart-go/render"
)

// nominalLabelFontSizePx is basicfont.Face7x13's native pixel size; label
// box widths measured against it are scaled to the configured font size.
const nominalLabelFontSizePx = 13

// measureTextWidthPx estimates a label's rendered pixel width using
// basicfont's fixed-width glyph metrics, scaled from its native 13px size
// to fontSizePx.
func measureTextWidthPx(text string, fontSizePx float64) float64 {
	widthAtNominal := font.MeasureString(basicfont.Face7x13, text).Ceil()
	return float64(widthAtNominal) * fontSizePx / nominalLabelFontSizePx
}

// RenderInput bundles every piece of already-resolved engine state the
// builder needs. It holds no coordinator or cache references itself, only
// plain values and read-only pointers, so BuildLayeredRenderFrame can stay
// pure: same input always yields the same frame.
type RenderInput struct {
	Viewport core.Viewport
	Style    ChartStyle

	Panes      *PaneCollection
	PaneScales map[PaneID]core.PriceScale // resolved render-time scale per pane

	VisibleTimeStart, VisibleTimeEnd float64

	Points      []core.DataPoint
	PointsPane  PaneID
	PointStyle  PointSeriesStyle
	HasPoints   bool

	Candles             []core.OhlcBar
	CandlesPane         PaneID
	HasCandles          bool
	CandleStyle         CandlestickStyleBehavior
	CandleBodyWidthPx   float64
	CandleBorderWidthPx float64

	Crosshair      CrosshairState
	CrosshairGuide CrosshairGuideStyle
	CrosshairLabel CrosshairLabelStyle

	LastPrice      LastPriceBehavior
	LastPriceValue *float64
	LastPriceIsUp  bool

	TimeAxisConfig  TimeAxisLabelConfig
	PriceAxisConfig PriceAxisLabelConfig
	TickDensity     AxisTickDensity
	MinTickSpacing  float64

	Caches      *axisLabelCaches
	ProfileHash uint64
}

// plotRect is the resolved pixel region available for pane content, after
// reserving space for the fixed time axis strip and price axis column.
type plotRect struct {
	Left, Top, Right, Bottom float64
}

func (r plotRect) width() float64  { return r.Right - r.Left }
func (r plotRect) height() float64 { return r.Bottom - r.Top }

// resolvePlotRect reserves style.PriceAxisWidthPx on the right and
// style.TimeAxisHeightPx at the bottom, enforcing the style's minimum plot
// dimensions.
func resolvePlotRect(viewport core.Viewport, style ChartStyle) plotRect {
	width := float64(viewport.Width)
	height := float64(viewport.Height)

	right := width - style.PriceAxisWidthPx
	if right-0 < style.MinPlotWidthPx {
		right = style.MinPlotWidthPx
	}
	bottom := height - style.TimeAxisHeightPx
	if bottom-0 < style.MinPlotHeightPx {
		bottom = style.MinPlotHeightPx
	}
	return plotRect{Left: 0, Top: 0, Right: right, Bottom: bottom}
}

// BuildLayeredRenderFrame assembles the full per-pane layered frame.
// Composition order inside each pane is fixed: Background -> Grid ->
// Series -> Overlay -> Crosshair -> Axis (spec.md §4.8). The function
// performs no mutation of in or any of its pointer fields.
func BuildLayeredRenderFrame(in RenderInput) (render.LayeredRenderFrame, error) {
	if !in.Viewport.IsValid() {
		return render.LayeredRenderFrame{}, core.InvalidViewport(in.Viewport.Width, in.Viewport.Height)
	}
	rect := resolvePlotRect(in.Viewport, in.Style)
	paneIDs := in.Panes.IDs()
	layouts := in.Panes.Layouts(rect.Top, rect.Bottom)

	timeViewport := core.Viewport{Width: uint32(rect.width()), Height: in.Viewport.Height}
	timeScale, err := core.NewTimeScale(in.VisibleTimeStart, in.VisibleTimeEnd)
	if err != nil {
		return render.LayeredRenderFrame{}, err
	}
	timeToPixel := func(t float64) (float64, error) {
		x, err := timeScale.TimeToPixel(t, timeViewport)
		return x + rect.Left, err
	}
	visibleSpanAbs := in.VisibleTimeEnd - in.VisibleTimeStart
	if visibleSpanAbs < 0 {
		visibleSpanAbs = -visibleSpanAbs
	}
	timeTicks := resolveTimeAxisTicks(in.VisibleTimeStart, in.VisibleTimeEnd, rect.width(), in.MinTickSpacing, in.TickDensity, in.TimeAxisConfig, timeToPixel)

	frame := render.LayeredRenderFrame{Viewport: in.Viewport}
	for i, layout := range layouts {
		paneID := paneIDs[i]
		isLastPane := i == len(layouts)-1
		paneFrame := render.PaneLayerFrame{PaneID: int(paneID), PlotTop: layout.PlotTop, PlotBottom: layout.PlotBottom, Layers: render.NewLayerStack()}

		scale, ok := in.PaneScales[paneID]
		if !ok {
			paneFrame.Layers = render.NewLayerStack()
			frame.Panes = append(frame.Panes, paneFrame)
			continue
		}
		paneHeight := layout.PlotBottom - layout.PlotTop
		paneViewport := core.Viewport{Width: in.Viewport.Width, Height: uint32(paneHeight)}
		priceToPixel := func(p float64) (float64, error) {
			y, err := scale.PriceToPixel(p, paneViewport)
			return y + layout.PlotTop, err
		}

		buildBackgroundLayer(&paneFrame, rect, layout, in.Style)
		priceTicks := resolvePriceAxisTicks(transformedDomainMin(scale), transformedDomainMax(scale), paneHeight, in.MinTickSpacing, in.TickDensity, priceToPixel)
		buildGridLayer(&paneFrame, rect, timeTicks, priceTicks, in.Style)

		if in.HasPoints && in.PointsPane == paneID {
			if err := buildPointSeriesLayer(&paneFrame, in, timeScale, scale, timeViewport, paneViewport, layout.PlotTop); err != nil {
				return render.LayeredRenderFrame{}, err
			}
		}
		if in.HasCandles && in.CandlesPane == paneID {
			if err := buildCandleSeriesLayer(&paneFrame, in, timeScale, scale, timeViewport, paneViewport, layout.PlotTop); err != nil {
				return render.LayeredRenderFrame{}, err
			}
		}

		buildLastPriceOverlay(&paneFrame, in, paneID, priceToPixel, rect)
		buildCrosshairLayer(&paneFrame, in, layout, rect, scale, paneViewport, timeScale, timeViewport, isLastPane)
		buildPriceAxisLayer(&paneFrame, in, paneID, priceTicks, scale, rect, in.Style, priceToPixel)
		if isLastPane {
			buildTimeAxisLayer(&paneFrame, in, timeTicks, rect, layout, in.Style)
		}

		frame.Panes = append(frame.Panes, paneFrame)
	}
	return frame, nil
}

func transformedDomainMin(scale core.PriceScale) float64 {
	min, _ := scale.Domain()
	return scale.DisplayValue(min)
}

func transformedDomainMax(scale core.PriceScale) float64 {
	_, max := scale.Domain()
	return scale.DisplayValue(max)
}

func buildBackgroundLayer(pane *render.PaneLayerFrame, rect plotRect, layout PaneLayout, style ChartStyle) {
	layer := pane.LayerByKind(render.LayerBackground)
	layer.Rects = append(layer.Rects, core.RectPrimitive{
		X: rect.Left, Y: layout.PlotTop,
		Width: rect.width(), Height: layout.PlotBottom - layout.PlotTop,
		FillColor: style.Background,
	})
}

func buildGridLayer(pane *render.PaneLayerFrame, rect plotRect, timeTicks, priceTicks []AxisTick, style ChartStyle) {
	layer := pane.LayerByKind(render.LayerGrid)
	top, bottom := pane.PlotTop, pane.PlotBottom
	for _, tick := range timeTicks {
		layer.Lines = append(layer.Lines, core.LinePrimitive{
			X1: tick.PixelAt, Y1: top, X2: tick.PixelAt, Y2: bottom,
			StrokeWidth: style.GridWidthPx, Color: style.GridColor,
		})
	}
	for _, tick := range priceTicks {
		layer.Lines = append(layer.Lines, core.LinePrimitive{
			X1: rect.Left, Y1: tick.PixelAt, X2: rect.Right, Y2: tick.PixelAt,
			StrokeWidth: style.GridWidthPx, Color: style.GridColor,
		})
	}
}

func buildPointSeriesLayer(pane *render.PaneLayerFrame, in RenderInput, timeScale core.TimeScale, scale core.PriceScale, timeViewport, paneViewport core.Viewport, paneTop float64) error {
	layer := pane.LayerByKind(render.LayerSeries)
	style := in.PointStyle
	vp := blendViewports(timeViewport, paneViewport)

	switch style.Kind {
	case SeriesArea:
		geom, err := core.ProjectArea(in.Points, timeScale, scale, vp)
		if err != nil {
			return err
		}
		appendAreaLike(layer, geom.LineVertices, 0, paneTop, style)
	case SeriesBaseline:
		geom, err := core.ProjectBaseline(in.Points, style.BaselinePrice, timeScale, scale, vp)
		if err != nil {
			return err
		}
		for _, poly := range geom.AbovePolygons {
			appendAreaLike(layer, poly, 0, paneTop, style)
		}
		for _, poly := range geom.BelowPolygons {
			appendAreaLike(layer, poly, 0, paneTop, style)
		}
	case SeriesHistogram:
		width := style.BarWidthPx
		if width <= 0 {
			width = 4
		}
		bars, err := core.ProjectHistogram(in.Points, style.BaselinePrice, width, timeScale, scale, vp)
		if err != nil {
			return err
		}
		for _, b := range bars {
			layer.Rects = append(layer.Rects, core.RectPrimitive{
				X: b.CenterX - b.HalfWidth, Y: b.Top + paneTop,
				Width: b.HalfWidth * 2, Height: b.Bottom - b.Top,
				FillColor: style.Color,
			})
		}
	case SeriesBar:
		half := style.BarWidthPx
		if half <= 0 {
			half = 3
		}
		bars, err := core.ProjectBars(ohlcFromPoints(in.Points), half, timeScale, scale, vp)
		if err != nil {
			return err
		}
		for _, b := range bars {
			appendBarGeometry(layer, b, paneTop, style.Color)
		}
	default: // SeriesLine and SeriesNone fall back to a plain line
		segs, err := core.ProjectLine(in.Points, timeScale, scale, vp)
		if err != nil {
			return err
		}
		for _, s := range segs {
			layer.Lines = append(layer.Lines, core.LinePrimitive{
				X1: s.X1, Y1: s.Y1 + paneTop, X2: s.X2, Y2: s.Y2 + paneTop,
				StrokeWidth: style.LineWidthPx, Color: style.Color,
			})
		}
	}
	return nil
}

// blendViewports combines the time axis's width with the price axis's
// height into the single Viewport the core projectors expect.
func blendViewports(timeViewport, paneViewport core.Viewport) core.Viewport {
	return core.Viewport{Width: timeViewport.Width, Height: paneViewport.Height}
}

// ohlcFromPoints is a degenerate OHLC view of a point series (open=close=y,
// high=low=y), used only so SeriesBar can reuse core.ProjectBars when the
// host configures a point series as bars instead of candles.
func ohlcFromPoints(points []core.DataPoint) []core.OhlcBar {
	out := make([]core.OhlcBar, len(points))
	for i, p := range points {
		out[i] = core.OhlcBar{Time: p.X, Open: p.Y, High: p.Y, Low: p.Y, Close: p.Y}
	}
	return out
}

// appendAreaLike strokes a polygon's vertices as consecutive line segments.
// The primitive contract (core.LinePrimitive/RectPrimitive/TextPrimitive)
// has no arbitrary-polygon fill, so area/baseline shapes are drawn as their
// outline only; no fill rects are emitted.
func appendAreaLike(layer *render.Layer, vertices []core.Point, offsetX, offsetY float64, style PointSeriesStyle) {
	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]
		layer.Lines = append(layer.Lines, core.LinePrimitive{
			X1: a.X + offsetX, Y1: a.Y + offsetY, X2: b.X + offsetX, Y2: b.Y + offsetY,
			StrokeWidth: style.LineWidthPx, Color: style.Color,
		})
	}
}

func appendBarGeometry(layer *render.Layer, b core.BarGeometry, paneTop float64, color core.Color) {
	layer.Lines = append(layer.Lines,
		core.LinePrimitive{X1: b.CenterX, Y1: b.StemTop + paneTop, X2: b.CenterX, Y2: b.StemBottom + paneTop, StrokeWidth: 1, Color: color},
		core.LinePrimitive{X1: b.CenterX - b.TickHalf, Y1: b.OpenY + paneTop, X2: b.CenterX, Y2: b.OpenY + paneTop, StrokeWidth: 1, Color: color},
		core.LinePrimitive{X1: b.CenterX, Y1: b.CloseY + paneTop, X2: b.CenterX + b.TickHalf, Y2: b.CloseY + paneTop, StrokeWidth: 1, Color: color},
	)
}

func buildCandleSeriesLayer(pane *render.PaneLayerFrame, in RenderInput, timeScale core.TimeScale, scale core.PriceScale, timeViewport, paneViewport core.Viewport, paneTop float64) error {
	layer := pane.LayerByKind(render.LayerSeries)
	vp := blendViewports(timeViewport, paneViewport)
	candles, err := core.ProjectCandles(in.Candles, timeScale, scale, vp, in.CandleBodyWidthPx, in.CandleBorderWidthPx)
	if err != nil {
		return err
	}
	style := in.CandleStyle
	for _, c := range candles {
		bodyColor, borderColor := style.BearColor, style.BorderColor
		if c.IsBullish {
			bodyColor = style.BullColor
		}
		layer.Lines = append(layer.Lines, core.LinePrimitive{
			X1: c.CenterX, Y1: c.WickTop + paneTop, X2: c.CenterX, Y2: c.WickBottom + paneTop,
			StrokeWidth: 1, Color: style.WickColor,
		})
		rect := core.RectPrimitive{
			X: c.BodyLeft, Y: c.BodyTop + paneTop,
			Width: c.BodyRight - c.BodyLeft, Height: c.BodyBottom - c.BodyTop,
		}
		switch {
		case c.IsBorderOnly:
			rect.FillColor = borderColor
		case style.BodyMode == CandlestickBodyHollow && c.IsBullish:
			rect.BorderWidth = style.BorderWidthPx
			rect.BorderColor = borderColor
		default:
			rect.FillColor = bodyColor
			rect.BorderWidth = style.BorderWidthPx
			rect.BorderColor = borderColor
		}
		layer.Rects = append(layer.Rects, rect)
	}
	return nil
}

// buildLastPriceOverlay draws the last-price guide line and label in the
// Overlay layer of the pane that owns the relevant series, suppressing
// price-axis ticks that fall within its exclusion zone (handled by the
// axis layer builder consulting LastPriceValue directly).
func buildLastPriceOverlay(pane *render.PaneLayerFrame, in RenderInput, paneID PaneID, priceToPixel func(float64) (float64, error), rect plotRect) {
	if !in.LastPrice.Visible || in.LastPriceValue == nil {
		return
	}
	owningPane := in.PointsPane
	if in.HasCandles {
		owningPane = in.CandlesPane
	}
	if owningPane != paneID {
		return
	}
	y, err := priceToPixel(*in.LastPriceValue)
	if err != nil {
		return
	}
	color := in.CandleStyle.BearColor
	if in.LastPrice.UseTrendColor && in.LastPriceIsUp {
		color = in.CandleStyle.BullColor
	} else if !in.LastPrice.UseTrendColor {
		color = in.PointStyle.Color
	}
	layer := pane.LayerByKind(render.LayerOverlay)
	layer.Lines = append(layer.Lines, core.LinePrimitive{
		X1: rect.Left, Y1: y, X2: rect.Right, Y2: y,
		StrokeWidth: 1, Color: color, StrokeStyle: core.StrokeDashed,
	})
	layer.Texts = append(layer.Texts, core.TextPrimitive{
		Text: formatPriceAxisLabel(*in.LastPriceValue, in.PriceAxisConfig, 0),
		X:    rect.Right + 2, Y: y,
		FontSizePx: in.Style.AxisFontSizePx, Color: color, HAlign: core.HAlignLeft,
	})
}

// buildCrosshairLayer draws the vertical guide (spanning this pane), the
// horizontal guide (only in the pane the pointer is currently over), and
// their axis label boxes. This is a deliberately reduced-scope reading of
// the original's much more elaborate stabilization/overflow handling: one
// label box per axis, clipped or left to overflow per CrosshairOverflowPolicy
// only in the simple sense of clamping the box origin to the axis bounds.
func buildCrosshairLayer(pane *render.PaneLayerFrame, in RenderInput, layout PaneLayout, rect plotRect, scale core.PriceScale, paneViewport core.Viewport, timeScale core.TimeScale, timeViewport core.Viewport, isLastPane bool) {
	cross := in.Crosshair
	if !cross.Visible {
		return
	}
	layer := pane.LayerByKind(render.LayerCrosshair)
	guide := in.CrosshairGuide
	label := in.CrosshairLabel

	x := cross.X
	if cross.SnappedX != nil {
		x = *cross.SnappedX
	}
	layer.Lines = append(layer.Lines, core.LinePrimitive{
		X1: x, Y1: layout.PlotTop, X2: x, Y2: layout.PlotBottom,
		StrokeWidth: guide.LineWidth, Color: guide.LineColor, StrokeStyle: guide.StrokeStyle,
	})

	if isLastPane {
		timeValue := 0.0
		if cross.SnappedTime != nil {
			timeValue = *cross.SnappedTime
		} else if t, err := timeScale.PixelToTime(x-rect.Left, timeViewport); err == nil {
			timeValue = t
		}
		text := formatTimeAxisLabel(timeValue, in.TimeAxisConfig, in.VisibleTimeEnd-in.VisibleTimeStart)
		boxX := clampLabelOrigin(x, rect.Left, rect.Right, label.OverflowPolicy)
		layer.Rects = append(layer.Rects, core.RectPrimitive{
			X: boxX - 2, Y: rect.Bottom, Width: measureTextWidthPx(text, label.FontSizePx) + 4, Height: in.Style.TimeAxisHeightPx,
			FillColor: label.BackgroundColor,
		})
		layer.Texts = append(layer.Texts, core.TextPrimitive{
			Text: text, X: boxX, Y: rect.Bottom + in.Style.TimeAxisHeightPx/2,
			FontSizePx: label.FontSizePx, Color: label.TextColor, HAlign: core.HAlignLeft,
		})
	}

	y := cross.Y
	if cross.SnappedY != nil {
		y = *cross.SnappedY
	}
	if y < layout.PlotTop || y > layout.PlotBottom {
		return
	}
	layer.Lines = append(layer.Lines, core.LinePrimitive{
		X1: rect.Left, Y1: y, X2: rect.Right, Y2: y,
		StrokeWidth: guide.LineWidth, Color: guide.LineColor, StrokeStyle: guide.StrokeStyle,
	})

	price := 0.0
	if cross.SnappedPrice != nil {
		price = *cross.SnappedPrice
	} else if p, err := scale.PixelToPrice(y-layout.PlotTop, paneViewport); err == nil {
		price = p
	}
	text := formatPriceAxisLabel(scale.DisplayValue(price), in.PriceAxisConfig, 0) + scale.DisplaySuffix()
	boxY := clampLabelOrigin(y, layout.PlotTop, layout.PlotBottom, label.OverflowPolicy)
	boxWidth := measureTextWidthPx(text, label.FontSizePx) + 4
	layer.Rects = append(layer.Rects, core.RectPrimitive{
		X: rect.Right, Y: boxY - label.FontSizePx/2 - 2, Width: boxWidth, Height: label.FontSizePx + 4,
		FillColor: label.BackgroundColor,
	})
	layer.Texts = append(layer.Texts, core.TextPrimitive{
		Text: text, X: rect.Right + 2, Y: boxY,
		FontSizePx: label.FontSizePx, Color: label.TextColor, HAlign: core.HAlignLeft,
	})
}

// clampLabelOrigin keeps a label box origin within [lo, hi] when the
// overflow policy requests clipping; CrosshairOverflow leaves it untouched.
func clampLabelOrigin(v, lo, hi float64, policy CrosshairOverflowPolicy) float64 {
	if policy == CrosshairOverflow {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// buildPriceAxisLayer draws the price-axis tick marks and labels for one
// pane, using the resolved tick step between consecutive ticks to drive
// PriceAxisAdaptive's precision selection. In the pane that owns the
// last-price label, ticks within LastPrice.LabelExclusionZonePx of it are
// not drawn.
func buildPriceAxisLayer(pane *render.PaneLayerFrame, in RenderInput, paneID PaneID, ticks []AxisTick, scale core.PriceScale, rect plotRect, style ChartStyle, priceToPixel func(float64) (float64, error)) {
	layer := pane.LayerByKind(render.LayerAxis)
	stepAbs := 0.0
	if len(ticks) >= 2 {
		stepAbs = ticks[1].Value - ticks[0].Value
		if stepAbs < 0 {
			stepAbs = -stepAbs
		}
	}
	hasPercentSuffix := scale.DisplaySuffix() != ""
	lastPriceY, hasLastPrice := 0.0, false
	owningPane := in.PointsPane
	if in.HasCandles {
		owningPane = in.CandlesPane
	}
	if in.LastPrice.Visible && in.LastPriceValue != nil && owningPane == paneID {
		if y, err := priceToPixel(*in.LastPriceValue); err == nil {
			lastPriceY, hasLastPrice = y, true
		}
	}
	for _, tick := range ticks {
		if hasLastPrice && math.Abs(tick.PixelAt-lastPriceY) < in.LastPrice.LabelExclusionZonePx {
			continue
		}
		color, fontSize := style.AxisLabelColor, style.AxisFontSizePx
		layer.Lines = append(layer.Lines, core.LinePrimitive{
			X1: rect.Right, Y1: tick.PixelAt, X2: rect.Right + 4, Y2: tick.PixelAt,
			StrokeWidth: 1, Color: style.AxisLineColor,
		})
		text := in.Caches.resolvePriceLabel(paneID, in.ProfileHash, tick.Value, in.PriceAxisConfig, stepAbs, hasPercentSuffix) + scale.DisplaySuffix()
		layer.Texts = append(layer.Texts, core.TextPrimitive{
			Text: text, X: rect.Right + 6, Y: tick.PixelAt,
			FontSizePx: fontSize, Color: color, HAlign: core.HAlignLeft,
		})
	}
}

// buildTimeAxisLayer draws the shared time-axis tick marks and labels under
// the bottommost pane, styling major (day/session-boundary) ticks distinctly.
func buildTimeAxisLayer(pane *render.PaneLayerFrame, in RenderInput, ticks []AxisTick, rect plotRect, layout PaneLayout, style ChartStyle) {
	layer := pane.LayerByKind(render.LayerAxis)
	visibleSpanAbs := in.VisibleTimeEnd - in.VisibleTimeStart
	if visibleSpanAbs < 0 {
		visibleSpanAbs = -visibleSpanAbs
	}
	for _, tick := range ticks {
		color, fontSize := style.AxisLabelColor, style.AxisFontSizePx
		if tick.Major {
			color, fontSize = style.AxisMajorLabelColor, style.AxisMajorFontSizePx
		}
		layer.Lines = append(layer.Lines, core.LinePrimitive{
			X1: tick.PixelAt, Y1: rect.Bottom, X2: tick.PixelAt, Y2: rect.Bottom + 4,
			StrokeWidth: 1, Color: style.AxisLineColor,
		})
		text := in.Caches.resolveTimeLabel(in.ProfileHash, tick.Value, in.TimeAxisConfig, visibleSpanAbs)
		layer.Texts = append(layer.Texts, core.TextPrimitive{
			Text: text, X: tick.PixelAt, Y: rect.Bottom + 6 + fontSize,
			FontSizePx: fontSize, Color: color, HAlign: core.HAlignCenter,
		})
	}
}
