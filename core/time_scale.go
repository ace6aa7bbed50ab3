// time_scale.go - time axis mapping, reference-step estimation, and the
// bar-spacing/right-offset coordinate space used by anchor-preserving zoom.

package core

import "sort"

// TimeScale wraps a LinearScale for the x (time) axis. It carries no
// visible/full range bookkeeping itself — that lives in the coordinator —
// it is purely the domain<->pixel mapping for the *currently visible*
// range, exactly like PriceScale is for price.
type TimeScale struct {
	linear LinearScale
}

// NewTimeScale constructs a TimeScale over [start, end].
func NewTimeScale(start, end float64) (TimeScale, error) {
	linear, err := NewLinearScale(start, end)
	if err != nil {
		return TimeScale{}, err
	}
	return TimeScale{linear: linear}, nil
}

// Domain returns the wrapped (start, end).
func (t TimeScale) Domain() (float64, float64) {
	return t.linear.Domain()
}

// TimeToPixel maps a time value to an x pixel within the viewport width.
func (t TimeScale) TimeToPixel(time float64, viewport Viewport) (float64, error) {
	if !viewport.IsValid() {
		return 0, InvalidViewport(viewport.Width, viewport.Height)
	}
	return t.linear.DomainToPixel(time, float64(viewport.Width))
}

// PixelToTime inverts TimeToPixel.
func (t TimeScale) PixelToTime(pixel float64, viewport Viewport) (float64, error) {
	if !viewport.IsValid() {
		return 0, InvalidViewport(viewport.Width, viewport.Height)
	}
	return t.linear.PixelToDomain(pixel, float64(viewport.Width))
}

// ReferenceTimeStep estimates the typical positive delta between
// consecutive sample times: the median of positive deltas across candles,
// then points, then falls back to span/(n-1). Returns false when no
// reference step can be resolved (fewer than two combined distinct times).
func ReferenceTimeStep(points []DataPoint, candles []OhlcBar) (float64, bool) {
	if step, ok := medianPositiveDelta(candleTimes(candles)); ok {
		return step, true
	}
	if step, ok := medianPositiveDelta(pointTimes(points)); ok {
		return step, true
	}
	times := make([]float64, 0, len(points)+len(candles))
	times = append(times, pointTimes(points)...)
	times = append(times, candleTimes(candles)...)
	if len(times) < 2 {
		return 0, false
	}
	sort.Float64s(times)
	span := times[len(times)-1] - times[0]
	if span <= 0 {
		return 0, false
	}
	return span / float64(len(times)-1), true
}

func pointTimes(points []DataPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func candleTimes(candles []OhlcBar) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Time
	}
	return out
}

func medianPositiveDelta(times []float64) (float64, bool) {
	if len(times) < 2 {
		return 0, false
	}
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	deltas := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		d := sorted[i] - sorted[i-1]
		if d > 0 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return 0, false
	}
	sort.Float64s(deltas)
	mid := len(deltas) / 2
	if len(deltas)%2 == 1 {
		return deltas[mid], true
	}
	return (deltas[mid-1] + deltas[mid]) / 2, true
}

// TimeIndexSpace is the bar-spacing/right-offset coordinate frame used by
// the anchor-preserving zoom solver (spec.md §4.3). BaseIndex is the
// logical-index distance from the full range's start to its end, measured
// in units of ReferenceStep: BaseIndex = (fullEnd-fullStart)/referenceStep.
// RightOffsetBars is the number of reference steps the visible right edge
// extends past the full range's end. BarSpacingPx/WidthPx complete the
// pixel<->logical-index mapping.
type TimeIndexSpace struct {
	BaseIndex       float64
	RightOffsetBars float64
	BarSpacingPx    float64
	WidthPx         float64
}

// LogicalIndexAtPixel maps a pixel x to a (possibly fractional) logical
// index, inverse of PixelAtLogicalIndex.
func (s TimeIndexSpace) LogicalIndexAtPixel(x float64) float64 {
	return (s.BaseIndex + s.RightOffsetBars) - (s.WidthPx-x)/s.BarSpacingPx
}

// PixelAtLogicalIndex maps a logical index back to a pixel x.
func (s TimeIndexSpace) PixelAtLogicalIndex(index float64) float64 {
	return s.WidthPx - (s.BaseIndex+s.RightOffsetBars-index)*s.BarSpacingPx
}

// SolveRightOffsetForAnchorPreservingZoom returns the right offset that,
// combined with s's own (already-updated) BarSpacingPx and BaseIndex, keeps
// anchorLogicalIndex fixed relative to the *original* spacing/offset pair.
// This is the closed-form relation named but not given by spec.md §4.3:
// with ratio = originalSpacing/s.BarSpacingPx,
//
//	target = (anchor - base) + ratio*(base + originalOffset - anchor)
//
// which reduces to originalOffset when ratio == 1 (no zoom).
func (s TimeIndexSpace) SolveRightOffsetForAnchorPreservingZoom(originalSpacing, originalRightOffset, anchorLogicalIndex float64) float64 {
	ratio := originalSpacing / s.BarSpacingPx
	return (anchorLogicalIndex - s.BaseIndex) + ratio*(s.BaseIndex+originalRightOffset-anchorLogicalIndex)
}

// DeriveSpacingAndOffset computes (barSpacingPx, rightOffsetBars) from a
// visible range, the full range's end, a reference step, and the viewport
// width — the forward half of the invertible mapping spec.md §4.3 requires.
func DeriveSpacingAndOffset(visibleStart, visibleEnd, fullEnd, referenceStep, widthPx float64) (spacing, rightOffset float64) {
	span := visibleEnd - visibleStart
	if span <= 0 || referenceStep <= 0 {
		return 0, 0
	}
	spacing = widthPx * referenceStep / span
	rightOffset = (visibleEnd - fullEnd) / referenceStep
	return spacing, rightOffset
}

// RangeFromSpacingAndOffset inverts DeriveSpacingAndOffset: given
// (spacing, rightOffset) and the same (fullEnd, referenceStep, widthPx),
// reconstructs the visible (start, end) range.
func RangeFromSpacingAndOffset(spacing, rightOffset, fullEnd, referenceStep, widthPx float64) (start, end float64) {
	if spacing <= 0 {
		return 0, 0
	}
	barsAcrossWidth := widthPx / spacing
	span := barsAcrossWidth * referenceStep
	end = fullEnd + rightOffset*referenceStep
	start = end - span
	return start, end
}

// TimeScaleState is the mutable time-axis model: a full range (the data's
// own span) and an independently positioned visible range, the pure-math
// half of the coordinator's pan/zoom/fit operations.
type TimeScaleState struct {
	FullStart, FullEnd       float64
	VisibleStart, VisibleEnd float64
	hasRange                 bool
}

// SetFullRange replaces the full range wholesale (e.g. on bulk data reset).
func (s *TimeScaleState) SetFullRange(start, end float64) error {
	if !isFinite(start) || !isFinite(end) || !(end > start) {
		return InvalidData("time scale full range must be finite with end > start")
	}
	s.FullStart, s.FullEnd = start, end
	s.hasRange = true
	return nil
}

// VisibleRange returns the current visible (start, end).
func (s TimeScaleState) VisibleRange() (float64, float64) { return s.VisibleStart, s.VisibleEnd }

// FullRange returns the current full (start, end).
func (s TimeScaleState) FullRange() (float64, float64) { return s.FullStart, s.FullEnd }

// SetVisibleRange sets the visible range directly; it need not lie within
// the full range (scrolling past the edge with FixLeftEdge/FixRightEdge
// unset is valid).
func (s *TimeScaleState) SetVisibleRange(start, end float64) error {
	if !isFinite(start) || !isFinite(end) || !(end > start) {
		return InvalidData("time scale visible range must be finite with end > start")
	}
	s.VisibleStart, s.VisibleEnd = start, end
	return nil
}

// PanVisibleByDelta shifts the visible range by deltaTime (domain units).
func (s *TimeScaleState) PanVisibleByDelta(deltaTime float64) error {
	if !isFinite(deltaTime) {
		return InvalidData("pan delta must be finite")
	}
	return s.SetVisibleRange(s.VisibleStart+deltaTime, s.VisibleEnd+deltaTime)
}

// ZoomVisibleByFactor rescales the visible span by 1/factor (factor > 1
// zooms in) around anchorTime, which stays fixed in domain space.
func (s *TimeScaleState) ZoomVisibleByFactor(factor, anchorTime, minSpanAbsolute float64) error {
	if !isFinite(factor) || factor <= 0 {
		return InvalidData("zoom factor must be finite and positive")
	}
	span := s.VisibleEnd - s.VisibleStart
	targetSpan := span / factor
	if targetSpan < minSpanAbsolute {
		targetSpan = minSpanAbsolute
	}
	ratio := (anchorTime - s.VisibleStart) / span
	start := anchorTime - ratio*targetSpan
	end := start + targetSpan
	return s.SetVisibleRange(start, end)
}

// ClampVisibleRangeToFullEdges clamps the visible range so it does not
// extend past the full range on whichever edges are fixed, preserving
// span. Reports whether anything changed.
func (s *TimeScaleState) ClampVisibleRangeToFullEdges(fixLeft, fixRight bool) (bool, error) {
	if !fixLeft && !fixRight {
		return false, nil
	}
	span := s.VisibleEnd - s.VisibleStart
	start, end := s.VisibleStart, s.VisibleEnd
	if fixLeft && start < s.FullStart {
		start = s.FullStart
		end = start + span
	}
	if fixRight && end > s.FullEnd {
		end = s.FullEnd
		start = end - span
	}
	if fixLeft && start < s.FullStart {
		start = s.FullStart
	}
	if start == s.VisibleStart && end == s.VisibleEnd {
		return false, nil
	}
	if err := s.SetVisibleRange(start, end); err != nil {
		return false, err
	}
	return true, nil
}

// IncludeTimeInFullRange extends the full range to cover t, with marginSteps
// time-domain units of headroom past the new edge (the value is added as
// is, not scaled by a reference step). Reports whether the full range
// actually changed.
func (s *TimeScaleState) IncludeTimeInFullRange(t, marginSteps float64) bool {
	if !isFinite(t) {
		return false
	}
	if !s.hasRange {
		s.FullStart, s.FullEnd = t, t+1
		s.hasRange = true
		return true
	}
	changed := false
	if t > s.FullEnd {
		s.FullEnd = t + marginSteps
		changed = true
	}
	if t < s.FullStart {
		s.FullStart = t - marginSteps
		changed = true
	}
	return changed
}

// DeriveVisibleBarSpacingAndRightOffset projects the current visible range
// into (barSpacingPx, rightOffsetBars) given a reference step and viewport
// width.
func (s TimeScaleState) DeriveVisibleBarSpacingAndRightOffset(referenceStep, widthPx float64) (float64, float64) {
	return DeriveSpacingAndOffset(s.VisibleStart, s.VisibleEnd, s.FullEnd, referenceStep, widthPx)
}

// SetVisibleRangeFromBarSpacingAndRightOffset sets the visible range from a
// (barSpacingPx, rightOffsetBars) pair, inverse of
// DeriveVisibleBarSpacingAndRightOffset.
func (s *TimeScaleState) SetVisibleRangeFromBarSpacingAndRightOffset(spacing, rightOffset, referenceStep, widthPx float64) error {
	start, end := RangeFromSpacingAndOffset(spacing, rightOffset, s.FullEnd, referenceStep, widthPx)
	return s.SetVisibleRange(start, end)
}

// FitToMixedData returns the earliest and latest sample time across
// points+candles, with no margin added. It mutates no state; ok is false
// when there are no samples or all share one time.
func FitToMixedData(points []DataPoint, candles []OhlcBar) (fullStart, fullEnd float64, ok bool) {
	hasMin, hasMax := false, false
	var min, max float64
	consider := func(t float64) {
		if !hasMin || t < min {
			min, hasMin = t, true
		}
		if !hasMax || t > max {
			max, hasMax = t, true
		}
	}
	for _, p := range points {
		consider(p.X)
	}
	for _, c := range candles {
		consider(c.Time)
	}
	if !hasMin || !hasMax || max <= min {
		return 0, 0, false
	}
	return min, max, true
}
