// time_scale_input.go - wheel/touch/pinch input translated into the
// timeScaleCoordinator's pan/zoom primitives. The original's dedicated
// pan-delta and zoom-factor resolver modules were not present in the
// retrieval pack; the formulas below are inferred directly from how their
// call sites in time_scale_coordinator.rs consume them (ratio-based pan,
// step-scaled zoom) rather than guessed independently.

package chartgo

import (
	"math"

	"github.com/lucasmanoguerra/chart-go/core"
)

// resolveWheelPanDeltaTime converts a horizontal wheel delta into a domain
// time shift proportional to the visible span.
func resolveWheelPanDeltaTime(wheelDeltaX, visibleSpan, panStepRatio float64) (float64, bool, error) {
	if !isFiniteLocal(wheelDeltaX) || !isFiniteLocal(panStepRatio) || panStepRatio < 0 {
		return 0, false, core.InvalidData("wheel pan inputs must be finite, step ratio non-negative")
	}
	if wheelDeltaX == 0 {
		return 0, false, nil
	}
	return math.Copysign(visibleSpan*panStepRatio, wheelDeltaX), true, nil
}

// resolveTouchDragPanDeltaTime projects a 2D touch drag into a 1D domain
// time shift, honoring which axes are enabled.
func resolveTouchDragPanDeltaTime(deltaXPx, deltaYPx, widthPx, heightPx, visibleSpan float64, allowHorz, allowVert bool) (float64, bool, error) {
	if !isFiniteLocal(deltaXPx) || !isFiniteLocal(deltaYPx) {
		return 0, false, core.InvalidData("touch drag deltas must be finite")
	}
	dx := deltaXPx
	if !allowHorz {
		dx = 0
	}
	if !allowVert && !allowHorz {
		return 0, false, nil
	}
	if dx == 0 {
		return 0, false, nil
	}
	if widthPx <= 0 {
		return 0, false, nil
	}
	return -dx * (visibleSpan / widthPx), true, nil
}

// resolveWheelZoomFactor converts a vertical wheel delta into a zoom
// factor, or false for a delta too small to register.
func resolveWheelZoomFactor(wheelDeltaY, zoomStepRatio float64) (float64, bool, error) {
	if !isFiniteLocal(wheelDeltaY) || !isFiniteLocal(zoomStepRatio) || zoomStepRatio <= 0 {
		return 1, false, core.InvalidData("wheel zoom inputs must be finite, step ratio positive")
	}
	if wheelDeltaY == 0 {
		return 1, false, nil
	}
	if wheelDeltaY > 0 {
		return 1 + zoomStepRatio, true, nil
	}
	return 1 / (1 + zoomStepRatio), true, nil
}

// resolvePinchZoomFactor passes a pinch scale ratio through as a zoom
// factor, treating values indistinguishable from 1.0 as no-ops.
func resolvePinchZoomFactor(pinchScaleFactor float64) (float64, bool, error) {
	if !isFiniteLocal(pinchScaleFactor) || pinchScaleFactor <= 0 {
		return 1, false, core.InvalidData("pinch scale factor must be finite and positive")
	}
	if math.Abs(pinchScaleFactor-1) <= 1e-6 {
		return 1, false, nil
	}
	return pinchScaleFactor, true, nil
}

// resolveRightMarginZoomAnchorPx resolves the pixel anchor implied by a
// fixed right-offset-px navigation behavior, used when
// right_bar_stays_on_scroll is set.
func (c *timeScaleCoordinator) resolveRightMarginZoomAnchorPx(behavior BehaviorConfig) (float64, bool) {
	if behavior.RightOffsetPxSet == nil || c.viewportW <= 0 {
		return 0, false
	}
	return clampFloat(c.viewportW-*behavior.RightOffsetPxSet, 0, c.viewportW), true
}

func (c *timeScaleCoordinator) zoomWithScrollAnchorPolicy(behavior BehaviorConfig, factor, anchorPx, minSpanAbsolute float64) error {
	if !behavior.ScrollZoom.RightBarStaysOnScroll {
		return c.zoomAroundPixel(behavior, factor, anchorPx, minSpanAbsolute)
	}
	if px, ok := c.resolveRightMarginZoomAnchorPx(behavior); ok {
		return c.zoomAroundPixel(behavior, factor, px, minSpanAbsolute)
	}
	_, rightEdge := c.state.VisibleRange()
	return c.zoomAroundTime(behavior, factor, rightEdge, minSpanAbsolute)
}

func (c *timeScaleCoordinator) wheelPan(behavior BehaviorConfig, wheelDeltaX, panStepRatio float64) (float64, error) {
	if !behavior.Interaction.AllowsWheelPan() {
		return 0, nil
	}
	start, end := c.state.VisibleRange()
	deltaTime, ok, err := resolveWheelPanDeltaTime(wheelDeltaX, end-start, panStepRatio)
	if err != nil || !ok {
		return 0, err
	}
	if err := c.panVisibleByDelta(behavior, deltaTime); err != nil {
		return 0, err
	}
	return deltaTime, nil
}

func (c *timeScaleCoordinator) touchDragPan(behavior BehaviorConfig, deltaXPx, deltaYPx float64) (float64, error) {
	if !behavior.Interaction.HandleScroll || !behavior.Interaction.AllowsTouchDragPan() {
		return 0, nil
	}
	start, end := c.state.VisibleRange()
	deltaTime, ok, err := resolveTouchDragPanDeltaTime(deltaXPx, deltaYPx, c.viewportW, c.viewportH, end-start, behavior.Interaction.ScrollHorzTouchDrag, behavior.Interaction.ScrollVertTouchDrag)
	if err != nil || !ok {
		return 0, err
	}
	if err := c.panVisibleByDelta(behavior, deltaTime); err != nil {
		return 0, err
	}
	return deltaTime, nil
}

func (c *timeScaleCoordinator) wheelZoom(behavior BehaviorConfig, wheelDeltaY, anchorPx, zoomStepRatio, minSpanAbsolute float64) (float64, error) {
	if !behavior.Interaction.AllowsWheelZoom() {
		return 1, nil
	}
	factor, ok, err := resolveWheelZoomFactor(wheelDeltaY, zoomStepRatio)
	if err != nil || !ok {
		return 1, err
	}
	if err := c.zoomWithScrollAnchorPolicy(behavior, factor, anchorPx, minSpanAbsolute); err != nil {
		return 1, err
	}
	return factor, nil
}

func (c *timeScaleCoordinator) pinchZoom(behavior BehaviorConfig, pinchScaleFactor, anchorPx, minSpanAbsolute float64) (float64, error) {
	if !behavior.Interaction.AllowsPinchZoom() {
		return 1, nil
	}
	factor, ok, err := resolvePinchZoomFactor(pinchScaleFactor)
	if err != nil || !ok {
		return 1, err
	}
	if err := c.zoomWithScrollAnchorPolicy(behavior, factor, anchorPx, minSpanAbsolute); err != nil {
		return 1, err
	}
	return factor, nil
}
