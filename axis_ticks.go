// axis_ticks.go - density-aware tick selection (spec.md §4.7).

package chartgo

import "math"

// AxisTickDensity tunes how many ticks a given axis length should target.
type AxisTickDensity struct {
	TargetSpacingPx float64
	DensityScale    float64
	MinCount        int
	MaxCount        int
}

// DefaultAxisTickDensity targets roughly one tick per 80px, scaled by 1.0,
// bounded to a sane [2, 12] count.
func DefaultAxisTickDensity() AxisTickDensity {
	return AxisTickDensity{TargetSpacingPx: 80, DensityScale: 1, MinCount: 2, MaxCount: 12}
}

// targetTickCount resolves the ideal tick count for an axis of the given
// pixel length, per spec.md §4.7's clamp(floor(...)) formula.
func targetTickCount(axisLengthPx float64, density AxisTickDensity) int {
	if axisLengthPx <= 0 || density.TargetSpacingPx <= 0 {
		return density.MinCount
	}
	raw := math.Floor(axisLengthPx / density.TargetSpacingPx * density.DensityScale)
	count := int(raw)
	if count < density.MinCount {
		count = density.MinCount
	}
	if count > density.MaxCount {
		count = density.MaxCount
	}
	return count
}

// niceNumber rounds v to a "nice" value (1, 2, 5, 10 times a power of ten),
// rounding up when roundUp is true (for a step) or to the nearest when
// false (for a range span).
func niceNumber(v float64, roundUp bool) float64 {
	if v <= 0 || !isFiniteLocal(v) {
		return v
	}
	exponent := math.Floor(math.Log10(v))
	magnitude := math.Pow(10, exponent)
	fraction := v / magnitude

	var nice float64
	if roundUp {
		switch {
		case fraction <= 1:
			nice = 1
		case fraction <= 2:
			nice = 2
		case fraction <= 5:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case fraction < 1.5:
			nice = 1
		case fraction < 3:
			nice = 2
		case fraction < 7:
			nice = 5
		default:
			nice = 10
		}
	}
	return nice * magnitude
}

// niceTickStep picks a nice step size that produces close to targetCount
// ticks across [domainMin, domainMax].
func niceTickStep(domainMin, domainMax float64, targetCount int) float64 {
	span := math.Abs(domainMax - domainMin)
	if span <= 0 || !isFiniteLocal(span) || targetCount <= 0 {
		return 1
	}
	rough := span / float64(targetCount)
	return niceNumber(rough, true)
}

// candidateTicks returns nice-number tick values covering
// [domainMin, domainMax] (inclusive edges tolerated), spaced by step,
// starting from the nearest step-aligned value at or below domainMin.
func candidateTicks(domainMin, domainMax, step float64) []float64 {
	if step <= 0 || !isFiniteLocal(step) {
		return nil
	}
	lo, hi := domainMin, domainMax
	if lo > hi {
		lo, hi = hi, lo
	}
	start := math.Floor(lo/step) * step
	var ticks []float64
	const maxTicks = 10000 // guards against pathological tiny steps
	for v := start; v <= hi+step*0.5 && len(ticks) < maxTicks; v += step {
		if v >= lo-step*0.5 {
			ticks = append(ticks, v)
		}
	}
	return ticks
}

// AxisTick is a resolved, pixel-placed tick mark.
type AxisTick struct {
	Value   float64
	PixelAt float64
	Major   bool
}

// pruneByMinSpacing sequentially drops ticks whose pixel position falls
// within minSpacingPx of the previously kept tick, per spec.md §4.7.
func pruneByMinSpacing(ticks []AxisTick, minSpacingPx float64) []AxisTick {
	if len(ticks) == 0 {
		return ticks
	}
	kept := make([]AxisTick, 0, len(ticks))
	kept = append(kept, ticks[0])
	for _, tick := range ticks[1:] {
		last := kept[len(kept)-1]
		if math.Abs(tick.PixelAt-last.PixelAt) >= minSpacingPx {
			kept = append(kept, tick)
		}
	}
	return kept
}

// resolveTimeAxisTicks selects time-axis ticks for the visible domain,
// projecting through toPixel and flagging major ticks via config.
func resolveTimeAxisTicks(visibleStart, visibleEnd, axisLengthPx, minSpacingPx float64, density AxisTickDensity, config TimeAxisLabelConfig, toPixel func(float64) (float64, error)) []AxisTick {
	count := targetTickCount(axisLengthPx, density)
	step := niceTickStep(visibleStart, visibleEnd, count)
	values := candidateTicks(visibleStart, visibleEnd, step)

	ticks := make([]AxisTick, 0, len(values))
	for _, v := range values {
		px, err := toPixel(v)
		if err != nil {
			continue
		}
		ticks = append(ticks, AxisTick{Value: v, PixelAt: px, Major: isMajorTimeTick(v, config)})
	}
	return pruneByMinSpacing(ticks, minSpacingPx)
}

// resolvePriceAxisTicks selects price-axis ticks for a (possibly
// transformed-mode) display domain, projecting through toPixel. Major
// ticks on the price axis have no day/session concept, so none are
// flagged; callers distinguish zero-line/base-line ticks separately if
// desired.
func resolvePriceAxisTicks(displayMin, displayMax, axisLengthPx, minSpacingPx float64, density AxisTickDensity, toPixel func(float64) (float64, error)) []AxisTick {
	count := targetTickCount(axisLengthPx, density)
	step := niceTickStep(displayMin, displayMax, count)
	values := candidateTicks(displayMin, displayMax, step)

	ticks := make([]AxisTick, 0, len(values))
	for _, v := range values {
		px, err := toPixel(v)
		if err != nil {
			continue
		}
		ticks = append(ticks, AxisTick{Value: v, PixelAt: px})
	}
	return pruneByMinSpacing(ticks, minSpacingPx)
}
