// time_scale_coordinator.go - pan/zoom/fit/navigation orchestration over
// core.TimeScaleState, grounded on the anchor-preserving zoom and
// navigation-target resolution spec.md §4.3 describes.

package chartgo

import (
	"math"

	"github.com/lucasmanoguerra/chart-go/core"
)

// timeScaleInvalidationIntent records which parity time-scale invalidation
// a coordinator operation should emit once it completes.
type timeScaleInvalidationIntent int

const (
	intentNone timeScaleInvalidationIntent = iota
	intentApplyRightOffset
	intentApplyBarSpacingAndRightOffset
	intentApplyRange
	intentFitContent
)

// timeScaleCoordinator wraps core.TimeScaleState with the host-configured
// behaviors that gate and shape every pan/zoom/navigation operation.
type timeScaleCoordinator struct {
	state        core.TimeScaleState
	viewportW    float64
	viewportH    float64
	points       []core.DataPoint
	candles      []core.OhlcBar
	pendingIntent timeScaleInvalidationIntent
}

func newTimeScaleCoordinator() *timeScaleCoordinator {
	return &timeScaleCoordinator{}
}

func (c *timeScaleCoordinator) referenceStep() (float64, bool) {
	return core.ReferenceTimeStep(c.points, c.candles)
}

func (c *timeScaleCoordinator) markZoomIntent(beforeStart, beforeEnd float64) {
	afterStart, afterEnd := c.state.VisibleRange()
	beforeSpan := math.Abs(beforeEnd - beforeStart)
	afterSpan := math.Abs(afterEnd - afterStart)
	if math.Abs(beforeSpan-afterSpan) <= 1e-9 {
		c.pendingIntent = intentApplyRightOffset
	} else {
		c.pendingIntent = intentApplyBarSpacingAndRightOffset
	}
}

// resolveTimeIndexSpace builds the TimeIndexSpace for the current visible
// range, or false if no reference step / viewport width is available.
func (c *timeScaleCoordinator) resolveTimeIndexSpace() (core.TimeIndexSpace, float64, bool) {
	if c.viewportW <= 0 {
		return core.TimeIndexSpace{}, 0, false
	}
	step, ok := c.referenceStep()
	if !ok || step <= 0 {
		return core.TimeIndexSpace{}, 0, false
	}
	spacing, rightOffset := c.state.DeriveVisibleBarSpacingAndRightOffset(step, c.viewportW)
	baseIndex := c.state.FullEnd / step
	if !isFiniteLocal(baseIndex) {
		return core.TimeIndexSpace{}, 0, false
	}
	return core.TimeIndexSpace{
		BaseIndex:       baseIndex,
		RightOffsetBars: rightOffset,
		BarSpacingPx:    spacing,
		WidthPx:         c.viewportW,
	}, step, true
}

func isFiniteLocal(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// --- navigation target resolution ---

// resolveNavigationTargetEnd computes the right edge the navigation
// behavior targets: fullEnd shifted by rightOffsetBars reference steps, or
// by rightOffsetPx pixels when set (rightOffsetPx takes priority).
func resolveNavigationTargetEnd(fullEnd, rightOffsetBars float64, rightOffsetPx *float64, referenceStep float64, hasStep bool, visibleSpan, widthPx float64) float64 {
	if rightOffsetPx != nil && widthPx > 0 && visibleSpan > 0 {
		pxPerUnit := widthPx / visibleSpan
		return fullEnd + (*rightOffsetPx)/pxPerUnit
	}
	if hasStep && referenceStep > 0 {
		return fullEnd + rightOffsetBars*referenceStep
	}
	return fullEnd
}

func resolveNavigationTargetRange(fullEnd, rightOffsetBars float64, rightOffsetPx *float64, referenceStep float64, hasStep bool, targetSpan, widthPx float64) (float64, float64) {
	end := resolveNavigationTargetEnd(fullEnd, rightOffsetBars, rightOffsetPx, referenceStep, hasStep, targetSpan, widthPx)
	return end - targetSpan, end
}

// --- pan ---

func (c *timeScaleCoordinator) panVisibleByDelta(behavior BehaviorConfig, deltaTime float64) error {
	beforeStart, beforeEnd := c.state.VisibleRange()
	if err := c.state.PanVisibleByDelta(deltaTime); err != nil {
		return err
	}
	c.applyZoomLimitBehavior(behavior)
	c.applyEdgeBehavior(behavior)
	c.markZoomIntent(beforeStart, beforeEnd)
	return nil
}

func (c *timeScaleCoordinator) panVisibleByPixels(behavior BehaviorConfig, deltaPx float64) error {
	if !behavior.Interaction.AllowsDragPan() {
		return nil
	}
	if !isFiniteLocal(deltaPx) {
		return core.InvalidData("pan pixel delta must be finite")
	}
	if space, step, ok := c.resolveTimeIndexSpace(); ok {
		beforeStart, beforeEnd := c.state.VisibleRange()
		barsPerPixel := 1.0 / space.BarSpacingPx
		targetRightOffset := space.RightOffsetBars - (-deltaPx)*barsPerPixel
		if err := c.state.SetVisibleRangeFromBarSpacingAndRightOffset(space.BarSpacingPx, targetRightOffset, step, space.WidthPx); err != nil {
			return err
		}
		c.applyZoomLimitBehavior(behavior)
		c.applyEdgeBehavior(behavior)
		c.markZoomIntent(beforeStart, beforeEnd)
		return nil
	}
	start, end := c.state.VisibleRange()
	span := end - start
	if c.viewportW <= 0 {
		return nil
	}
	deltaTime := -deltaPx * (span / c.viewportW)
	return c.panVisibleByDelta(behavior, deltaTime)
}

// --- zoom ---

func (c *timeScaleCoordinator) zoomAroundTime(behavior BehaviorConfig, factor, anchorTime, minSpanAbsolute float64) error {
	if err := c.state.ZoomVisibleByFactor(factor, anchorTime, minSpanAbsolute); err != nil {
		return err
	}
	c.applyZoomLimitBehavior(behavior)
	if behavior.RightOffsetPxSet != nil {
		c.applyNavigationBehavior(behavior)
	}
	c.applyEdgeBehavior(behavior)
	c.pendingIntent = intentApplyBarSpacingAndRightOffset
	return nil
}

func (c *timeScaleCoordinator) zoomAroundPixel(behavior BehaviorConfig, factor, anchorPx, minSpanAbsolute float64) error {
	if !isFiniteLocal(factor) || factor <= 0 || !isFiniteLocal(anchorPx) {
		return core.InvalidData("zoom factor and anchor must be finite, factor positive")
	}
	if space, step, ok := c.resolveTimeIndexSpace(); ok {
		start, end := c.state.VisibleRange()
		currentSpan := math.Max(end-start, 1e-9)
		targetSpan := math.Max(currentSpan/factor, minSpanAbsolute)
		effectiveFactor := currentSpan / targetSpan
		targetBarSpacing := math.Max(space.BarSpacingPx*effectiveFactor, math.SmallestNonzeroFloat64)

		anchorX := clampFloat(anchorPx, 0, c.viewportW)
		anchorLogicalIndex := space.LogicalIndexAtPixel(anchorX)
		zoomedSpace := space
		zoomedSpace.BarSpacingPx = targetBarSpacing
		targetRightOffset := zoomedSpace.SolveRightOffsetForAnchorPreservingZoom(space.BarSpacingPx, space.RightOffsetBars, anchorLogicalIndex)

		if err := c.state.SetVisibleRangeFromBarSpacingAndRightOffset(targetBarSpacing, targetRightOffset, step, space.WidthPx); err != nil {
			return err
		}
		c.applyZoomLimitBehavior(behavior)
		if behavior.RightOffsetPxSet != nil {
			c.applyNavigationBehavior(behavior)
		}
		c.applyEdgeBehavior(behavior)
		c.pendingIntent = intentApplyBarSpacingAndRightOffset
		return nil
	}

	start, end := c.state.VisibleRange()
	anchorTime := start + (anchorPx/maxFloat(c.viewportW, 1))*(end-start)
	return c.zoomAroundTime(behavior, factor, anchorTime, minSpanAbsolute)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// --- fit / reset ---

func (c *timeScaleCoordinator) fitToData(behavior BehaviorConfig) error {
	if len(c.points) == 0 && len(c.candles) == 0 {
		return nil
	}
	start, end, ok := core.FitToMixedData(c.points, c.candles)
	if !ok {
		return nil
	}
	if err := c.state.SetFullRange(start, end); err != nil {
		return err
	}
	if err := c.state.SetVisibleRange(start, end); err != nil {
		return err
	}
	c.applyConstraints(behavior)
	c.pendingIntent = intentFitContent
	return nil
}

// --- edge / zoom-limit / navigation / resize behaviors ---

func (c *timeScaleCoordinator) applyEdgeBehavior(behavior BehaviorConfig) bool {
	changed, _ := c.state.ClampVisibleRangeToFullEdges(behavior.Edge.FixLeftEdge, behavior.Edge.FixRightEdge)
	return changed
}

func (c *timeScaleCoordinator) applyZoomLimitBehavior(behavior BehaviorConfig) bool {
	if c.viewportW <= 0 {
		return false
	}
	step, ok := c.referenceStep()
	if !ok || step <= 0 {
		return false
	}
	minSpacing := behavior.ZoomLimit.MinBarSpacingPx
	maxSpacing := behavior.ZoomLimit.MaxBarSpacingPx

	maxSpan := step * math.Max(c.viewportW/valueOr(minSpacing, 0.001), 1.0)
	maxSpan = math.Max(maxSpan, 1e-9)
	minSpan := 1e-9
	if maxSpacing != nil {
		minSpan = math.Max(step*math.Max(c.viewportW/(*maxSpacing), 1.0), 1e-9)
	}

	start, end := c.state.VisibleRange()
	currentSpan := math.Max(end-start, 1e-9)
	targetSpan := clampFloat(currentSpan, minSpan, maxSpan)
	if math.Abs(targetSpan-currentSpan) <= 1e-12 {
		return false
	}

	beforeStart, beforeEnd := start, end
	navActive := behavior.NavigationActive()
	if navActive {
		step, hasStep := c.referenceStep()
		targetStart, targetEnd := resolveNavigationTargetRange(c.state.FullEnd, behavior.Navigation.RightOffsetBars, behavior.RightOffsetPxSet, step, hasStep, targetSpan, c.viewportW)
		_ = c.state.SetVisibleRange(targetStart, targetEnd)
	} else {
		center := (start + end) * 0.5
		half := targetSpan * 0.5
		_ = c.state.SetVisibleRange(center-half, center+half)
	}
	c.markZoomIntent(beforeStart, beforeEnd)
	return true
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func (c *timeScaleCoordinator) applyNavigationBehavior(behavior BehaviorConfig) bool {
	if !behavior.NavigationActive() {
		return false
	}
	beforeStart, beforeEnd := c.state.VisibleRange()
	step, hasStep := c.referenceStep()

	if behavior.RightOffsetPxSet == nil && hasStep && behavior.Navigation.BarSpacingPx != nil {
		previous := [2]float64{c.state.VisibleStart, c.state.VisibleEnd}
		if err := c.state.SetVisibleRangeFromBarSpacingAndRightOffset(*behavior.Navigation.BarSpacingPx, behavior.Navigation.RightOffsetBars, step, c.viewportW); err != nil {
			return false
		}
		changed := math.Abs(c.state.VisibleStart-previous[0]) > 1e-12 || math.Abs(c.state.VisibleEnd-previous[1]) > 1e-12
		if changed {
			c.markZoomIntent(beforeStart, beforeEnd)
		}
		return changed
	}

	currentSpan := math.Max(beforeEnd-beforeStart, 1e-9)
	targetSpan := currentSpan
	if behavior.Navigation.BarSpacingPx != nil && hasStep {
		visibleBars := math.Max(c.viewportW / *behavior.Navigation.BarSpacingPx, 1.0)
		targetSpan = math.Max(step*visibleBars, 1e-9)
	}
	targetStart, targetEnd := resolveNavigationTargetRange(c.state.FullEnd, behavior.Navigation.RightOffsetBars, behavior.RightOffsetPxSet, step, hasStep, targetSpan, c.viewportW)
	changed := math.Abs(targetStart-beforeStart) > 1e-12 || math.Abs(targetEnd-beforeEnd) > 1e-12
	if changed {
		_ = c.state.SetVisibleRange(targetStart, targetEnd)
		c.markZoomIntent(beforeStart, beforeEnd)
	}
	return changed
}

func (c *timeScaleCoordinator) applyConstraints(behavior BehaviorConfig) bool {
	changed := c.applyNavigationBehavior(behavior)
	if c.applyZoomLimitBehavior(behavior) {
		changed = true
	}
	if c.applyEdgeBehavior(behavior) {
		changed = true
	}
	return changed
}

func (c *timeScaleCoordinator) applyResizeBehavior(behavior BehaviorConfig, previousWidth float64) bool {
	if !behavior.Resize.LockVisibleRangeOnResize {
		return false
	}
	if previousWidth <= 0 || c.viewportW <= 0 || math.Abs(previousWidth-c.viewportW) <= 1e-12 {
		return false
	}
	start, end := c.state.VisibleRange()
	currentSpan := math.Max(end-start, 1e-9)
	center := (start + end) * 0.5

	targetSpan := currentSpan
	if behavior.Navigation.BarSpacingPx != nil {
		step, ok := c.referenceStep()
		if !ok {
			return false
		}
		visibleBars := math.Max(c.viewportW / *behavior.Navigation.BarSpacingPx, 1.0)
		targetSpan = math.Max(step*visibleBars, 1e-9)
	}

	var targetStart, targetEnd float64
	if behavior.RightOffsetPxSet != nil {
		step, hasStep := c.referenceStep()
		targetStart, targetEnd = resolveNavigationTargetRange(c.state.FullEnd, behavior.Navigation.RightOffsetBars, behavior.RightOffsetPxSet, step, hasStep, targetSpan, c.viewportW)
	} else {
		switch behavior.Resize.Anchor {
		case ResizeAnchorLeft:
			targetStart, targetEnd = start, start+targetSpan
		case ResizeAnchorRight:
			targetStart, targetEnd = end-targetSpan, end
		default:
			half := targetSpan * 0.5
			targetStart, targetEnd = center-half, center+half
		}
	}

	changed := math.Abs(targetStart-start) > 1e-12 || math.Abs(targetEnd-end) > 1e-12
	if changed {
		_ = c.state.SetVisibleRange(targetStart, targetEnd)
		c.markZoomIntent(start, end)
	}
	return changed
}

// handleRealtimeAppend extends the full range to cover appendedTime and,
// if the visible window was tracking the right edge within tolerance,
// drags it along.
func (c *timeScaleCoordinator) handleRealtimeAppend(behavior BehaviorConfig, appendedTime float64) bool {
	if !isFiniteLocal(appendedTime) {
		return false
	}
	beforeStart, beforeEnd := c.state.VisibleRange()
	stepBefore, hasStepBefore := c.referenceStep()

	rightEdgeBefore := resolveNavigationTargetEnd(c.state.FullEnd, behavior.Navigation.RightOffsetBars, behavior.RightOffsetPxSet, stepBefore, hasStepBefore, math.Max(beforeEnd-beforeStart, 1e-9), c.viewportW)
	tolerance := resolveRightEdgeTolerance(stepBefore, hasStepBefore, behavior.RealtimeAppend.RightEdgeToleranceBars)
	shouldTrack := behavior.RealtimeAppend.AutoscaleOnDataUpdate && math.Abs(beforeEnd-rightEdgeBefore) <= tolerance

	fullChanged := c.state.IncludeTimeInFullRange(appendedTime, 1.0)
	if !fullChanged || !shouldTrack {
		return false
	}

	if behavior.NavigationActive() {
		return c.applyConstraints(behavior)
	}

	stepAfter, hasStepAfter := c.referenceStep()
	if !hasStepAfter {
		stepAfter, hasStepAfter = stepBefore, hasStepBefore
	}
	rightEdgeAfter := resolveNavigationTargetEnd(c.state.FullEnd, behavior.Navigation.RightOffsetBars, behavior.RightOffsetPxSet, stepAfter, hasStepAfter, math.Max(beforeEnd-beforeStart, 1e-9), c.viewportW)
	delta := rightEdgeAfter - rightEdgeBefore

	changed := false
	if math.Abs(delta) > 1e-12 {
		if err := c.state.SetVisibleRange(beforeStart+delta, beforeEnd+delta); err == nil {
			changed = true
		}
	}
	if c.applyEdgeBehavior(behavior) {
		changed = true
	}
	if changed {
		c.markZoomIntent(beforeStart, beforeEnd)
	}
	return changed
}

func resolveRightEdgeTolerance(referenceStep float64, hasStep bool, toleranceBars float64) float64 {
	const epsilon = 1e-9
	if !isFiniteLocal(toleranceBars) || toleranceBars < 0 {
		return epsilon
	}
	if hasStep && referenceStep > 0 {
		return epsilon + referenceStep*toleranceBars
	}
	return epsilon
}

// --- scroll to realtime / to bar position ---

func (c *timeScaleCoordinator) scrollToRealtime(behavior BehaviorConfig) bool {
	beforeStart, beforeEnd := c.state.VisibleRange()
	changed := false
	if behavior.NavigationActive() {
		changed = c.applyConstraints(behavior)
	} else {
		step, hasStep := c.referenceStep()
		visibleSpan := math.Max(beforeEnd-beforeStart, 1e-9)
		targetEnd := resolveNavigationTargetEnd(c.state.FullEnd, behavior.Navigation.RightOffsetBars, behavior.RightOffsetPxSet, step, hasStep, visibleSpan, c.viewportW)
		delta := targetEnd - beforeEnd
		if math.Abs(delta) > 1e-12 {
			_ = c.state.SetVisibleRange(beforeStart+delta, beforeEnd+delta)
			changed = true
		}
	}
	if c.applyEdgeBehavior(behavior) {
		changed = true
	}
	if changed {
		c.markZoomIntent(beforeStart, beforeEnd)
	}
	return changed
}

// scrollToPositionBars moves the visible window so its right edge sits
// positionBars reference steps from the full range's end (0 == realtime).
func (c *timeScaleCoordinator) scrollToPositionBars(behavior BehaviorConfig, positionBars float64) (bool, error) {
	if !isFiniteLocal(positionBars) {
		return false, core.InvalidData("scroll position bars must be finite")
	}
	beforeStart, beforeEnd := c.state.VisibleRange()

	var targetEnd float64
	if positionBars == 0 {
		targetEnd = c.state.FullEnd
	} else {
		step, ok := c.referenceStep()
		if !ok {
			return false, core.InvalidData("cannot resolve scroll position without reference data step")
		}
		targetEnd = c.state.FullEnd + positionBars*step
	}

	delta := targetEnd - beforeEnd
	changed := false
	if math.Abs(delta) > 1e-12 {
		if err := c.state.SetVisibleRange(beforeStart+delta, beforeEnd+delta); err != nil {
			return false, err
		}
		changed = true
	}
	if c.applyEdgeBehavior(behavior) {
		changed = true
	}
	if changed {
		c.markZoomIntent(beforeStart, beforeEnd)
	}
	return changed, nil
}

// scrollPositionBars reports the current right-edge offset from the full
// range's end, in reference-step units, or false when no reference step
// can be resolved.
func (c *timeScaleCoordinator) scrollPositionBars() (float64, bool) {
	_, visibleEnd := c.state.VisibleRange()
	step, ok := c.referenceStep()
	if !ok || !isFiniteLocal(step) || step <= 0 {
		return 0, false
	}
	return (visibleEnd - c.state.FullEnd) / step, true
}
