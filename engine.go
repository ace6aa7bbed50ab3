// engine.go - the facade threading every coordinator, cache, and piece of
// host-configurable state into one object (spec.md §4.10).

package chartgo

import (
	"github.com/lucasmanoguerra/chart-go/core"
	"github.com/lucasmanoguerra/chart-go/render"
)

// Engine is the top-level chart state: scales, panes, series data, style,
// behaviors, caches, interaction, and pending invalidation. The host
// serializes calls into it; it performs no internal synchronization
// (spec.md §5).
type Engine struct {
	viewport core.Viewport
	style    ChartStyle
	behavior BehaviorConfig

	panes       *PaneCollection
	timeScale   timeScaleCoordinator
	priceScales map[PaneID]core.PriceScale

	points     []core.DataPoint
	pointsPane PaneID
	pointStyle PointSeriesStyle
	hasPoints  bool

	candles             []core.OhlcBar
	candlesPane         PaneID
	hasCandles          bool
	candleBodyWidthPx   float64
	candleBorderWidthPx float64
	candleOverrides     *CandleStyleOverrides

	metadata *SeriesMetadata

	timeAxisConfig  TimeAxisLabelConfig
	priceAxisConfig PriceAxisLabelConfig
	tickDensity     AxisTickDensity
	minTickSpacing  float64

	caches      *axisLabelCaches
	interaction *interactionMachine
	scheduler   *invalidationScheduler
	profileHash uint64

	snapshotHook             SnapshotJSONHookFn
	snapshotSampleRatio      float64
	snapshotSampleAcc        float64
	crosshairDiagnosticsHook CrosshairDiagnosticsJSONHookFn

	activeAnimation *TimeScaleAnimation
}

// NewEngine builds an engine with the conservative defaults every
// sub-behavior/style/config type provides, a single immortal main pane,
// and no series data.
func NewEngine() *Engine {
	return &Engine{
		style:               DefaultChartStyle(),
		behavior:            DefaultBehaviorConfig(),
		panes:               NewPaneCollection(),
		timeScale:           *newTimeScaleCoordinator(),
		priceScales:         make(map[PaneID]core.PriceScale),
		pointsPane:          MainPaneID,
		pointStyle:          DefaultPointSeriesStyle(),
		candlesPane:         MainPaneID,
		candleBodyWidthPx:   4,
		candleBorderWidthPx: 1,
		candleOverrides:     NewCandleStyleOverrides(),
		metadata:            NewSeriesMetadata(),
		timeAxisConfig:      DefaultTimeAxisLabelConfig(),
		priceAxisConfig:     DefaultPriceAxisLabelConfig(),
		tickDensity:         DefaultAxisTickDensity(),
		minTickSpacing:      48,
		caches:              newAxisLabelCaches(),
		interaction:         newInteractionMachine(),
		scheduler:           newInvalidationScheduler(),
	}
}

// --- accessors (spec.md §4.10) ---

func (e *Engine) Viewport() core.Viewport { return e.viewport }
func (e *Engine) Style() ChartStyle       { return e.style }

func (e *Engine) SetStyle(style ChartStyle) {
	e.style = style
	e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicStyle), noPaneTarget())
}

func (e *Engine) Panes() *PaneCollection       { return e.panes }
func (e *Engine) Behavior() BehaviorConfig     { return e.behavior }
func (e *Engine) Points() []core.DataPoint     { return e.points }
func (e *Engine) Candles() []core.OhlcBar      { return e.candles }
func (e *Engine) Crosshair() CrosshairState    { return e.interaction.crosshair }
func (e *Engine) InteractionState() InteractionState { return e.interaction.state }
func (e *Engine) SeriesMetadata() *SeriesMetadata    { return e.metadata }
func (e *Engine) CandleOverrides() *CandleStyleOverrides { return e.candleOverrides }

func (e *Engine) SetBehavior(behavior BehaviorConfig) {
	e.behavior = behavior
	e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicGeneral), noPaneTarget())
}

func (e *Engine) PriceScaleFor(pane PaneID) (core.PriceScale, bool) {
	scale, ok := e.priceScales[pane]
	return scale, ok
}

func (e *Engine) SetPriceScale(pane PaneID, scale core.PriceScale) {
	e.priceScales[pane] = scale
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPriceScale), forPane(pane, false))
}

func (e *Engine) PendingInvalidation() InvalidationMask { return e.scheduler.PendingInvalidation() }
func (e *Engine) HasPendingInvalidationTopic(t InvalidationTopic) bool {
	return e.scheduler.HasPendingInvalidationTopic(t)
}
func (e *Engine) PendingInvalidationPaneTargets() []PaneID {
	return e.scheduler.PendingInvalidationPaneTargets()
}
func (e *Engine) ClearPendingInvalidation() { e.scheduler.clear() }

// TryBuildPartialPlan resolves a partial-repaint plan from the currently
// pending invalidation, or ok=false when a full render is required
// (spec.md §4.9).
func (e *Engine) TryBuildPartialPlan() (PartialPlan, bool) {
	return e.scheduler.BuildPartialPlan(e.panes.IDs(), true)
}

// --- pane management ---

func (e *Engine) AddPane(stretchFactor float64) PaneID {
	id := e.panes.AddPane(stretchFactor)
	e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicPaneLayout), noPaneTarget())
	return id
}

func (e *Engine) RemovePane(id PaneID) bool {
	ok := e.panes.RemovePane(id)
	if ok {
		delete(e.priceScales, id)
		e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicPaneLayout), noPaneTarget())
	}
	return ok
}

func (e *Engine) SetStretchFactor(id PaneID, stretchFactor float64) bool {
	ok := e.panes.SetStretchFactor(id, stretchFactor)
	if ok {
		e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPaneLayout), forPane(id, false))
	}
	return ok
}

// --- series data ---

func (e *Engine) SetPoints(points []core.DataPoint, pane PaneID, style PointSeriesStyle) {
	e.points = points
	e.pointsPane = pane
	e.pointStyle = style
	e.hasPoints = len(points) > 0
	e.timeScale.points = points
	e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicSeries), forPane(pane, true))
}

func (e *Engine) SetCandles(candles []core.OhlcBar, pane PaneID) {
	e.candles = candles
	e.candlesPane = pane
	e.hasCandles = len(candles) > 0
	e.timeScale.candles = candles
	e.candleOverrides.Reindex(len(candles))
	e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicSeries), forPane(pane, true))
}

// AppendPoint adds a single realtime point sample, dragging the visible
// window along if the realtime-append behavior requests it.
func (e *Engine) AppendPoint(p core.DataPoint) {
	e.points = append(e.points, p)
	e.hasPoints = true
	e.timeScale.points = e.points
	if e.timeScale.handleRealtimeAppend(e.behavior, p.X) {
		e.commitTimeScaleChange()
	}
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), forPane(e.pointsPane, false))
}

// AppendCandle adds a single realtime bar, dragging the visible window
// along if the realtime-append behavior requests it.
func (e *Engine) AppendCandle(bar core.OhlcBar) {
	e.candles = append(e.candles, bar)
	e.hasCandles = true
	e.timeScale.candles = e.candles
	if e.timeScale.handleRealtimeAppend(e.behavior, bar.Time) {
		e.commitTimeScaleChange()
	}
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), forPane(e.candlesPane, false))
}

// --- time-scale coordinator operations (spec.md §4.3) ---

// commitTimeScaleChange drains the coordinator's pending intent into the
// parity mask and unions the equivalent API mask entry; a no-op if the
// preceding coordinator call didn't mutate anything.
func (e *Engine) commitTimeScaleChange() {
	switch e.timeScale.pendingIntent {
	case intentFitContent:
		e.scheduler.parity.SetFitContent()
	case intentApplyRightOffset:
		if space, _, ok := e.timeScale.resolveTimeIndexSpace(); ok {
			e.scheduler.parity.SetRightOffset(space.RightOffsetBars)
		}
	case intentApplyBarSpacingAndRightOffset:
		if space, _, ok := e.timeScale.resolveTimeIndexSpace(); ok {
			e.scheduler.parity.SetBarSpacing(space.BarSpacingPx)
			e.scheduler.parity.SetRightOffset(space.RightOffsetBars)
		}
	case intentApplyRange:
		start, end := e.timeScale.state.VisibleRange()
		e.scheduler.parity.ApplyRange(LogicalRange{From: start, To: end})
	default:
		return
	}
	e.timeScale.pendingIntent = intentNone
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicTimeScale), noPaneTarget())
}

func (e *Engine) PanBy(deltaTime float64) error {
	if err := e.timeScale.panVisibleByDelta(e.behavior, deltaTime); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) PanByPixels(deltaPx float64) error {
	if err := e.timeScale.panVisibleByPixels(e.behavior, deltaPx); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) ZoomAroundPixel(factor, anchorPx, minSpanAbsolute float64) error {
	if err := e.timeScale.zoomAroundPixel(e.behavior, factor, anchorPx, minSpanAbsolute); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) ZoomAroundTime(factor, anchorTime, minSpanAbsolute float64) error {
	if err := e.timeScale.zoomAroundTime(e.behavior, factor, anchorTime, minSpanAbsolute); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) FitToData() error {
	if err := e.timeScale.fitToData(e.behavior); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) ScrollToRealtime() {
	if e.timeScale.scrollToRealtime(e.behavior) {
		e.commitTimeScaleChange()
	}
}

func (e *Engine) ScrollToPositionBars(positionBars float64) error {
	changed, err := e.timeScale.scrollToPositionBars(e.behavior, positionBars)
	if err != nil {
		return err
	}
	if changed {
		e.commitTimeScaleChange()
	}
	return nil
}

func (e *Engine) WheelPan(wheelDeltaX, panStepRatio float64) error {
	if _, err := e.timeScale.wheelPan(e.behavior, wheelDeltaX, panStepRatio); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) WheelZoom(wheelDeltaY, anchorPx, zoomStepRatio, minSpanAbsolute float64) error {
	if _, err := e.timeScale.wheelZoom(e.behavior, wheelDeltaY, anchorPx, zoomStepRatio, minSpanAbsolute); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) PinchZoom(pinchScaleFactor, anchorPx, minSpanAbsolute float64) error {
	if _, err := e.timeScale.pinchZoom(e.behavior, pinchScaleFactor, anchorPx, minSpanAbsolute); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

func (e *Engine) TouchDragPan(deltaXPx, deltaYPx float64) error {
	if _, err := e.timeScale.touchDragPan(e.behavior, deltaXPx, deltaYPx); err != nil {
		return err
	}
	e.commitTimeScaleChange()
	return nil
}

// StartRightOffsetAnimation begins animating the visible window's
// right-offset-in-bars toward toOffsetBars over duration (same time units
// as the now passed to StepAnimation), installing the single animation
// slot the Non-goals permit (parity.go's TimeScaleAnimation). Replaces any
// previously active animation. Call StepAnimation once per host frame to
// advance it.
func (e *Engine) StartRightOffsetAnimation(toOffsetBars, now, duration float64) error {
	space, _, ok := e.timeScale.resolveTimeIndexSpace()
	if !ok {
		return core.InvalidData("right-offset animation requires a resolvable time index space")
	}
	anim := TimeScaleAnimation{From: space.RightOffsetBars, To: toOffsetBars, StartTime: now, Duration: duration}
	e.activeAnimation = &anim
	e.scheduler.parity.SetTimeScaleAnimation(anim)
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicTimeScale), noPaneTarget())
	return nil
}

// StepAnimation advances the active right-offset animation to now, applying
// its interpolated position to the time-scale coordinator. Returns
// finished=true, clearing the slot, once the animation has completed (or if
// none is active).
func (e *Engine) StepAnimation(now float64) (bool, error) {
	if e.activeAnimation == nil {
		return true, nil
	}
	anim := *e.activeAnimation
	changed, err := e.timeScale.scrollToPositionBars(e.behavior, anim.Position(now))
	if err != nil {
		return false, err
	}
	if changed {
		e.commitTimeScaleChange()
	}
	if anim.Finished(now) {
		e.activeAnimation = nil
		e.scheduler.parity.removeAnimation()
		return true, nil
	}
	return false, nil
}

// --- price-scale coordinator operations (spec.md §4.4) ---

func (e *Engine) autoscalePane(pane PaneID, candlesOnly, visibleOnly bool) error {
	persisted, ok := e.priceScales[pane]
	if !ok {
		return core.InvalidData("autoscale requires a known pane")
	}
	points, pointsPane := e.points, e.pointsPane
	if candlesOnly {
		points, pointsPane = nil, PaneID(-1)
	}
	var visibleRange *[2]float64
	if visibleOnly {
		start, end := e.timeScale.state.VisibleRange()
		visibleRange = &[2]float64{start, end}
	}
	extent, ok := paneDataPriceExtents(points, pointsPane, e.candles, e.candlesPane, pane, visibleRange)
	if !ok {
		return nil
	}
	scale, err := core.NewPriceScale(extent.Min, extent.Max, persisted.TopRatio, persisted.BotRatio, persisted.Inverted, persisted.Mode, persisted.Base)
	if err != nil {
		return err
	}
	e.priceScales[pane] = scale
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPriceScale), forPane(pane, true))
	return nil
}

func (e *Engine) AutoscaleFromData(pane PaneID) error         { return e.autoscalePane(pane, false, false) }
func (e *Engine) AutoscaleFromCandles(pane PaneID) error      { return e.autoscalePane(pane, true, false) }
func (e *Engine) AutoscaleFromVisibleData(pane PaneID) error  { return e.autoscalePane(pane, false, true) }
func (e *Engine) AutoscaleFromVisibleCandles(pane PaneID) error { return e.autoscalePane(pane, true, true) }

func (e *Engine) SetPriceScaleMode(pane PaneID, mode core.PriceScaleMode) error {
	persisted, ok := e.priceScales[pane]
	if !ok {
		return core.InvalidData("unknown pane")
	}
	min, max := persisted.Domain()
	scale, err := core.NewPriceScale(min, max, persisted.TopRatio, persisted.BotRatio, persisted.Inverted, mode, persisted.Base)
	if err != nil {
		return err
	}
	e.priceScales[pane] = scale
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPriceScale), forPane(pane, false))
	return nil
}

func (e *Engine) SetPriceScaleInverted(pane PaneID, inverted bool) error {
	persisted, ok := e.priceScales[pane]
	if !ok {
		return core.InvalidData("unknown pane")
	}
	min, max := persisted.Domain()
	scale, err := core.NewPriceScale(min, max, persisted.TopRatio, persisted.BotRatio, inverted, persisted.Mode, persisted.Base)
	if err != nil {
		return err
	}
	e.priceScales[pane] = scale
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPriceScale), forPane(pane, false))
	return nil
}

func (e *Engine) SetPriceScaleMarginBehavior(pane PaneID, margin PriceScaleMarginBehavior) error {
	persisted, ok := e.priceScales[pane]
	if !ok {
		return core.InvalidData("unknown pane")
	}
	min, max := persisted.Domain()
	scale, err := core.NewPriceScale(min, max, margin.TopRatio, margin.BotRatio, persisted.Inverted, persisted.Mode, persisted.Base)
	if err != nil {
		return err
	}
	e.priceScales[pane] = scale
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPriceScale), forPane(pane, false))
	return nil
}

func (e *Engine) AxisDragScalePrice(pane PaneID, deltaY, heightPx float64) error {
	if !e.interaction.allowsAxisDragScale(e.behavior) {
		return nil
	}
	persisted, ok := e.priceScales[pane]
	if !ok {
		return core.InvalidData("unknown pane")
	}
	scale, err := applyAxisDragScale(persisted, deltaY, heightPx)
	if err != nil {
		return err
	}
	e.priceScales[pane] = scale
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicPriceScale), forPane(pane, false))
	return nil
}

// AxisDragScaleTime zooms the time axis proportionally to a vertical drag
// on the time axis strip, reusing the anchor-preserving zoom solver with
// the current right edge as anchor.
func (e *Engine) AxisDragScaleTime(deltaPx float64) error {
	if !e.interaction.allowsAxisDragScale(e.behavior) {
		return nil
	}
	factor := 1 + deltaPx*0.01
	if factor <= 0 {
		factor = 0.01
	}
	return e.ZoomAroundPixel(factor, e.timeScale.viewportW, 1e-6)
}

// AxisDoubleClickResetTime resets the visible time range to fit all data.
func (e *Engine) AxisDoubleClickResetTime() error {
	if !e.interaction.allowsAxisDoubleClickReset(e.behavior) {
		return nil
	}
	start, end, ok := core.FitToMixedData(e.points, e.candles)
	if !ok {
		return nil
	}
	if err := e.timeScale.state.SetVisibleRange(start, end); err != nil {
		return err
	}
	e.scheduler.parity.ResetTimeScale()
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicTimeScale), noPaneTarget())
	return nil
}

// AxisDoubleClickResetPrice resets a pane's price scale to its full-data
// autoscale.
func (e *Engine) AxisDoubleClickResetPrice(pane PaneID) error {
	if !e.interaction.allowsAxisDoubleClickReset(e.behavior) {
		return nil
	}
	return e.AutoscaleFromData(pane)
}

// --- interaction state machine (spec.md §4.5) ---

func (e *Engine) buildFilledSlotsForPointer() []filledSlot {
	start, end := e.timeScale.state.VisibleRange()
	ts, err := core.NewTimeScale(start, end)
	if err != nil {
		return nil
	}
	owningPane := e.pointsPane
	if e.hasCandles {
		owningPane = e.candlesPane
	}
	scale, ok := e.priceScales[owningPane]
	if !ok {
		return nil
	}
	timeToPixel := func(t float64) (float64, error) { return ts.TimeToPixel(t, e.viewport) }
	priceToPixel := func(p float64) (float64, error) { return scale.PriceToPixel(p, e.viewport) }
	return buildFilledSlots(e.points, e.candles, timeToPixel, priceToPixel)
}

func (e *Engine) PointerMove(x, y float64) {
	mode := e.behavior.CrosshairVisible.Mode
	var slots []filledSlot
	if mode == CrosshairMagnet {
		slots = e.buildFilledSlotsForPointer()
	}
	e.interaction.pointerMove(mode, x, y, slots)
	e.scheduler.invalidateWithDetail(InvalidationCursor, TopicSet(TopicCursor), noPaneTarget())
}

func (e *Engine) PointerLeave() {
	e.interaction.pointerLeave()
	e.scheduler.invalidateWithDetail(InvalidationCursor, TopicSet(TopicCursor), noPaneTarget())
}

func (e *Engine) PanStart() { e.interaction.panStart(e.behavior) }
func (e *Engine) PanEnd()   { e.interaction.panEnd() }

func (e *Engine) StartKineticPan(velocityPerSec float64) {
	e.interaction.startKineticPan(velocityPerSec)
}

// StepKineticPan advances the kinetic-pan decay by dt seconds and applies
// the resulting pan delta, if any (spec.md §5: no internal timers, the
// host must drive this).
func (e *Engine) StepKineticPan(dt float64) error {
	delta := e.interaction.stepKineticPan(dt)
	if delta == 0 {
		return nil
	}
	return e.PanBy(delta)
}

// --- viewport (spec.md §4.10) ---

// SetViewport resizes the chart: resize -> zoom-limit -> edge adjustments
// run in order, and a single invalidation covering the new layout (plus any
// time-scale change) is emitted.
func (e *Engine) SetViewport(width, height uint32) error {
	if width == 0 || height == 0 {
		return core.InvalidViewport(width, height)
	}
	previousWidth := e.timeScale.viewportW
	e.viewport = core.Viewport{Width: width, Height: height}
	e.timeScale.viewportW = float64(width)
	e.timeScale.viewportH = float64(height)

	changed := e.timeScale.applyResizeBehavior(e.behavior, previousWidth)
	if e.timeScale.applyZoomLimitBehavior(e.behavior) {
		changed = true
	}
	if e.timeScale.applyEdgeBehavior(e.behavior) {
		changed = true
	}
	if changed {
		e.commitTimeScaleChange()
	}
	e.scheduler.invalidateWithDetail(InvalidationFull, TopicSet(TopicGeneral, TopicPaneLayout), noPaneTarget())
	return nil
}

// --- label formatters/caches (spec.md §4.6) ---

func (e *Engine) SetTimeLabelFormatter(fn TimeLabelFormatterFn) {
	e.caches.timeFormatter.SetTimeFormatter(fn)
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicAxis), noPaneTarget())
}

func (e *Engine) SetPriceLabelFormatter(pane PaneID, fn PriceLabelFormatterFn) {
	e.caches.priceFormatterFor(pane).SetPriceFormatter(fn)
	e.scheduler.invalidateWithDetail(InvalidationLight, TopicSet(TopicAxis), forPane(pane, false))
}

func (e *Engine) ClearTimeLabelCache()              { e.caches.timeCache.clear() }
func (e *Engine) ClearPriceLabelCache(pane PaneID)  { e.caches.priceCacheFor(pane).clear() }

// --- render-frame assembly (spec.md §4.8, §4.10) ---

func (e *Engine) resolveLastPrice() (*float64, bool) {
	if e.behavior.LastPrice.Source == LastPriceFromLastBar && len(e.candles) > 0 {
		last := e.candles[len(e.candles)-1]
		v := last.Close
		return &v, last.IsBullish()
	}
	if len(e.points) > 0 {
		v := e.points[len(e.points)-1].Y
		isUp := true
		if len(e.points) > 1 {
			isUp = v >= e.points[len(e.points)-2].Y
		}
		return &v, isUp
	}
	return nil, false
}

func (e *Engine) renderInput() RenderInput {
	visStart, visEnd := e.timeScale.state.VisibleRange()
	paneScales := make(map[PaneID]core.PriceScale, len(e.priceScales))
	for _, id := range e.panes.IDs() {
		persisted, ok := e.priceScales[id]
		if !ok {
			continue
		}
		paneScales[id] = resolveRenderPriceScaleForPane(persisted, persisted.Mode, e.points, e.pointsPane, e.candles, e.candlesPane, id, visStart, visEnd)
	}
	lastPriceValue, lastPriceIsUp := e.resolveLastPrice()

	return RenderInput{
		Viewport:            e.viewport,
		Style:               e.style,
		Panes:               e.panes,
		PaneScales:          paneScales,
		VisibleTimeStart:    visStart,
		VisibleTimeEnd:      visEnd,
		Points:              e.points,
		PointsPane:          e.pointsPane,
		PointStyle:          e.pointStyle,
		HasPoints:           e.hasPoints,
		Candles:             e.candles,
		CandlesPane:         e.candlesPane,
		HasCandles:          e.hasCandles,
		CandleStyle:         e.behavior.Candlestick,
		CandleBodyWidthPx:   e.candleBodyWidthPx,
		CandleBorderWidthPx: e.candleBorderWidthPx,
		Crosshair:           e.interaction.crosshair,
		CrosshairGuide:      e.behavior.CrosshairGuide,
		CrosshairLabel:      e.behavior.CrosshairLabel,
		LastPrice:           e.behavior.LastPrice,
		LastPriceValue:      lastPriceValue,
		LastPriceIsUp:       lastPriceIsUp,
		TimeAxisConfig:      e.timeAxisConfig,
		PriceAxisConfig:     e.priceAxisConfig,
		TickDensity:         e.tickDensity,
		MinTickSpacing:      e.minTickSpacing,
		Caches:              e.caches,
		ProfileHash:         e.profileHash,
	}
}

// BuildRenderFrame assembles the current engine state into a RenderInput
// and builds the layered frame, regardless of pending invalidation.
func (e *Engine) BuildRenderFrame() (render.LayeredRenderFrame, error) {
	return BuildLayeredRenderFrame(e.renderInput())
}

// BuildRenderFrameIfInvalidated builds and returns a frame only if an
// invalidation is pending, clearing it afterward; ok=false means nothing
// changed since the last build. On a successful build it fires the
// installed snapshot/diagnostics hooks (spec.md §6: "both invoked during
// build_render_frame_if_invalidated after a successful frame").
func (e *Engine) BuildRenderFrameIfInvalidated() (render.LayeredRenderFrame, bool, error) {
	if e.scheduler.pending.IsNone() {
		return render.LayeredRenderFrame{}, false, nil
	}
	frame, err := e.BuildRenderFrame()
	if err != nil {
		return render.LayeredRenderFrame{}, false, err
	}
	e.scheduler.clear()
	e.fireHooks()
	return frame, true, nil
}
