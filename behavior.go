// behavior.go - host-configurable behaviors, gating every coordinator
// operation named in spec.md §4.3-§4.5.

package chartgo

import "github.com/lucasmanoguerra/chart-go/core"

// TimeScaleEdgeBehavior fixes either edge of the visible range against the
// full range.
type TimeScaleEdgeBehavior struct {
	FixLeftEdge  bool
	FixRightEdge bool
}

// TimeScaleNavigationBehavior controls right-offset/bar-spacing anchored
// navigation.
type TimeScaleNavigationBehavior struct {
	RightOffsetBars float64
	BarSpacingPx    *float64
}

// DefaultTimeScaleNavigationBehavior mirrors the original's 6px default
// spacing with zero right offset.
func DefaultTimeScaleNavigationBehavior() TimeScaleNavigationBehavior {
	spacing := 6.0
	return TimeScaleNavigationBehavior{RightOffsetBars: 0, BarSpacingPx: &spacing}
}

// TimeScaleResizeBehavior controls what happens to the visible range when
// the viewport is resized.
type TimeScaleResizeAnchor int

const (
	ResizeAnchorLeft TimeScaleResizeAnchor = iota
	ResizeAnchorCenter
	ResizeAnchorRight
)

type TimeScaleResizeBehavior struct {
	LockVisibleRangeOnResize bool
	Anchor                   TimeScaleResizeAnchor
}

// TimeScaleZoomLimitBehavior bounds bar spacing.
type TimeScaleZoomLimitBehavior struct {
	MinBarSpacingPx *float64
	MaxBarSpacingPx *float64
}

// TimeScaleScrollZoomBehavior controls wheel-zoom anchor policy.
type TimeScaleScrollZoomBehavior struct {
	RightBarStaysOnScroll bool
}

// RealtimeAppendBehavior controls whether newly appended data that extends
// the full range drags the visible window along.
type RealtimeAppendBehavior struct {
	RightEdgeToleranceBars float64
	AutoscaleOnDataUpdate  bool
}

// DefaultRealtimeAppendBehavior resolves Open Question (a) from spec.md
// §9: a tolerance of half a bar width in logical-index units, matching
// the original's general hysteresis band for "was already at the edge".
func DefaultRealtimeAppendBehavior() RealtimeAppendBehavior {
	return RealtimeAppendBehavior{RightEdgeToleranceBars: 0.5, AutoscaleOnDataUpdate: true}
}

// PriceScaleMarginBehavior is the top/bottom margin ratio pair.
type PriceScaleMarginBehavior struct {
	TopRatio float64
	BotRatio float64
}

// DefaultPriceScaleMarginBehavior matches common chart defaults.
func DefaultPriceScaleMarginBehavior() PriceScaleMarginBehavior {
	return PriceScaleMarginBehavior{TopRatio: 0.1, BotRatio: 0.1}
}

// TransformedBaseBehavior resolves the Percentage/IndexedTo100 base price.
type TransformedBaseBehavior struct {
	Override *float64
	Source   core.BaseSource
}

// PriceScaleRealtimeBehavior controls autoscale reaction to realtime
// updates.
type PriceScaleRealtimeBehavior struct {
	AutoscaleVisibleOnly bool // true: scope to the visible window; false: scope to all data
}

// CrosshairMode selects crosshair interaction semantics.
type CrosshairMode int

const (
	CrosshairNormal CrosshairMode = iota
	CrosshairMagnet
	CrosshairHidden
)

// CrosshairVisibilityBehavior controls whether/how the crosshair appears.
type CrosshairVisibilityBehavior struct {
	Mode CrosshairMode
}

// CrosshairGuideStyle controls the crosshair's guide line rendering.
type CrosshairGuideStyle struct {
	LineColor   core.Color
	LineWidth   float64
	StrokeStyle core.StrokeStyle
}

// CrosshairLabelStyle controls the crosshair's axis label box rendering.
type CrosshairLabelStyle struct {
	BackgroundColor core.Color
	TextColor       core.Color
	FontSizePx      float64
	OverflowPolicy  CrosshairOverflowPolicy
}

// CrosshairOverflowPolicy controls how crosshair label boxes behave when
// they would overflow the axis bounds.
type CrosshairOverflowPolicy int

const (
	CrosshairClipToAxis CrosshairOverflowPolicy = iota
	CrosshairOverflow
)

// CandlestickBodyMode controls the candle body rectangle rendering policy.
type CandlestickBodyMode int

const (
	CandlestickBodySolid CandlestickBodyMode = iota
	CandlestickBodyHollow
)

// CandlestickStyleBehavior is the host-configurable candlestick palette.
type CandlestickStyleBehavior struct {
	BullColor     core.Color
	BearColor     core.Color
	BorderColor   core.Color
	WickColor     core.Color
	BodyMode      CandlestickBodyMode
	BorderWidthPx float64
}

// LastPriceSourceMode selects which sample the last-price marker reads.
type LastPriceSourceMode int

const (
	LastPriceFromLastBar LastPriceSourceMode = iota
	LastPriceFromLastPoint
)

// LastPriceBehavior controls the last-price marker/label.
type LastPriceBehavior struct {
	Visible              bool
	UseTrendColor        bool
	Source               LastPriceSourceMode
	LabelExclusionZonePx float64
}

// DefaultLastPriceBehavior matches common chart defaults.
func DefaultLastPriceBehavior() LastPriceBehavior {
	return LastPriceBehavior{Visible: true, UseTrendColor: true, Source: LastPriceFromLastBar, LabelExclusionZonePx: 4}
}

// InteractionInputBehavior gates each pointer/wheel/touch interaction
// family, mirroring Lightweight Charts' handleScroll/handleScale knobs.
type InteractionInputBehavior struct {
	HandleScroll              bool
	HandleScale               bool
	ScrollMouseWheel          bool
	ScrollPressedMouseMove    bool
	ScrollHorzTouchDrag       bool
	ScrollVertTouchDrag       bool
	ScaleMouseWheel           bool
	ScalePinch                bool
	ScaleAxisPressedMouseMove bool
	ScaleAxisDoubleClickReset bool
}

// DefaultInteractionInputBehavior enables every interaction family.
func DefaultInteractionInputBehavior() InteractionInputBehavior {
	return InteractionInputBehavior{
		HandleScroll: true, HandleScale: true,
		ScrollMouseWheel: true, ScrollPressedMouseMove: true,
		ScrollHorzTouchDrag: true, ScrollVertTouchDrag: true,
		ScaleMouseWheel: true, ScalePinch: true,
		ScaleAxisPressedMouseMove: true, ScaleAxisDoubleClickReset: true,
	}
}

func (b InteractionInputBehavior) AllowsDragPan() bool       { return b.HandleScroll && b.ScrollPressedMouseMove }
func (b InteractionInputBehavior) AllowsWheelPan() bool      { return b.HandleScroll && b.ScrollMouseWheel }
func (b InteractionInputBehavior) AllowsWheelZoom() bool     { return b.HandleScale && b.ScaleMouseWheel }
func (b InteractionInputBehavior) AllowsPinchZoom() bool     { return b.HandleScale && b.ScalePinch }
func (b InteractionInputBehavior) AllowsTouchDragPan() bool  { return b.HandleScroll && (b.ScrollHorzTouchDrag || b.ScrollVertTouchDrag) }
func (b InteractionInputBehavior) AllowsAxisDragScale() bool { return b.HandleScale && b.ScaleAxisPressedMouseMove }
func (b InteractionInputBehavior) AllowsAxisDoubleClickReset() bool {
	return b.HandleScale && b.ScaleAxisDoubleClickReset
}

// TimeCoordinateIndexPolicy controls how the Magnet crosshair mode resolves
// a pointer pixel to a filled logical slot over sparse/whitespace series.
type TimeCoordinateIndexPolicy int

const (
	AllowWhitespace TimeCoordinateIndexPolicy = iota
	IgnoreWhitespace
)

// BehaviorConfig aggregates every host-configurable behavior surface.
type BehaviorConfig struct {
	Edge             TimeScaleEdgeBehavior
	Navigation       TimeScaleNavigationBehavior
	Resize           TimeScaleResizeBehavior
	ZoomLimit        TimeScaleZoomLimitBehavior
	ScrollZoom       TimeScaleScrollZoomBehavior
	RightOffsetPxSet *float64
	RealtimeAppend   RealtimeAppendBehavior
	Margin           PriceScaleMarginBehavior
	TransformedBase  TransformedBaseBehavior
	PriceRealtime    PriceScaleRealtimeBehavior
	Interaction      InteractionInputBehavior
	CrosshairVisible CrosshairVisibilityBehavior
	CrosshairGuide   CrosshairGuideStyle
	CrosshairLabel   CrosshairLabelStyle
	Candlestick      CandlestickStyleBehavior
	LastPrice        LastPriceBehavior
	TimeIndexPolicy  TimeCoordinateIndexPolicy
}

// DefaultBehaviorConfig aggregates every sub-default.
func DefaultBehaviorConfig() BehaviorConfig {
	return BehaviorConfig{
		Navigation:     DefaultTimeScaleNavigationBehavior(),
		RealtimeAppend: DefaultRealtimeAppendBehavior(),
		Margin:         DefaultPriceScaleMarginBehavior(),
		Interaction:    DefaultInteractionInputBehavior(),
		LastPrice:      DefaultLastPriceBehavior(),
		Candlestick: CandlestickStyleBehavior{
			BullColor:     core.Color{G: 160, A: 255},
			BearColor:     core.Color{R: 200, A: 255},
			BorderColor:   core.Color{A: 255},
			WickColor:     core.Color{A: 255},
			BodyMode:      CandlestickBodySolid,
			BorderWidthPx: 1,
		},
	}
}

// NavigationActive reports whether any navigation-family knob is
// overriding the default "preserve current span" placement.
func (b BehaviorConfig) NavigationActive() bool {
	return b.Navigation.RightOffsetBars != 0 || b.Navigation.BarSpacingPx != nil || b.RightOffsetPxSet != nil
}
