// price_scale.go - price axis mapping with transform modes, margins, and
// inversion.

package core

import "math"

// PriceScaleMode selects the value transform applied before mapping to
// pixels.
type PriceScaleMode int

const (
	PriceScaleModeLinear PriceScaleMode = iota
	PriceScaleModeLog
	PriceScaleModePercentage
	PriceScaleModeIndexedTo100
)

// baseEpsilon guards Log mode against non-positive inputs.
const baseEpsilon = 1e-12

// PriceScale maps a price domain onto a pixel axis, honoring a transform
// mode, asymmetric margins, and optional inversion.
type PriceScale struct {
	linear     LinearScale
	TopRatio   float64
	BotRatio   float64
	Inverted   bool
	Mode       PriceScaleMode
	Base       float64 // resolved transformed base; only meaningful for Percentage/IndexedTo100
}

// NewPriceScale constructs a PriceScale over [priceMin, priceMax] with the
// given margins (each in [0,1), sum < 1).
func NewPriceScale(priceMin, priceMax, topRatio, botRatio float64, inverted bool, mode PriceScaleMode, base float64) (PriceScale, error) {
	linear, err := NewLinearScale(priceMin, priceMax)
	if err != nil {
		return PriceScale{}, err
	}
	if !isFinite(topRatio) || !isFinite(botRatio) || topRatio < 0 || botRatio < 0 || topRatio+botRatio >= 1 {
		return PriceScale{}, InvalidData("price scale margins must be non-negative and sum to < 1")
	}
	if !isFinite(base) || base == 0 {
		base = 1.0
	}
	return PriceScale{linear: linear, TopRatio: topRatio, BotRatio: botRatio, Inverted: inverted, Mode: mode, Base: base}, nil
}

// Domain returns the untransformed (min, max) price domain.
func (s PriceScale) Domain() (float64, float64) {
	return s.linear.Domain()
}

// transform applies the mode's value transform with the sign-of-base
// correction spec.md §4.1 requires for Percentage/IndexedTo100.
func (s PriceScale) transform(value float64) float64 {
	switch s.Mode {
	case PriceScaleModeLog:
		return math.Log(math.Max(value, baseEpsilon))
	case PriceScaleModePercentage:
		sign := signOf(s.Base)
		return sign * 100 * (value - s.Base) / s.Base
	case PriceScaleModeIndexedTo100:
		sign := signOf(s.Base)
		return sign*100*(value-s.Base)/s.Base + 100
	default:
		return value
	}
}

// DisplayValue maps a raw domain price to the value an axis label should
// show: unchanged in Linear/Log mode, percent-from-base in Percentage mode,
// indexed-to-100 in IndexedTo100 mode. This is the same transform used for
// pixel placement, exposed so label formatters can render the number a
// viewer actually sees next to the plotted position.
func (s PriceScale) DisplayValue(price float64) float64 {
	return s.transform(price)
}

// DisplayStepAbs maps an absolute price step (e.g. a tick spacing) into the
// same display units as DisplayValue, without the value's own offset.
func (s PriceScale) DisplayStepAbs(stepAbs float64) float64 {
	if !isFinite(stepAbs) || stepAbs <= 0 {
		return stepAbs
	}
	switch s.Mode {
	case PriceScaleModePercentage, PriceScaleModeIndexedTo100:
		return math.Abs(stepAbs/s.Base) * 100
	default:
		return stepAbs
	}
}

// DisplaySuffix is the unit suffix an axis label should append for this
// scale's mode ("%" for Percentage, none otherwise).
func (s PriceScale) DisplaySuffix() string {
	if s.Mode == PriceScaleModePercentage {
		return "%"
	}
	return ""
}

func signOf(base float64) float64 {
	if base < 0 {
		return -1
	}
	return 1
}

// marginedAxis returns the usable pixel band [topPx, bottomPx) after
// contracting by the margins, within a viewport of the given height.
func (s PriceScale) marginedAxis(heightPx float64) (topPx, bottomPx float64) {
	topPx = heightPx * s.TopRatio
	bottomPx = heightPx * (1 - s.BotRatio)
	return
}

// PriceToPixel maps a domain price to a y pixel, larger prices mapping to
// smaller pixel values (unless inverted).
func (s PriceScale) PriceToPixel(price float64, viewport Viewport) (float64, error) {
	if !viewport.IsValid() {
		return 0, InvalidViewport(viewport.Width, viewport.Height)
	}
	if !isFinite(price) {
		return 0, InvalidData("price must be finite")
	}
	minT, maxT := s.transformedDomain()
	topPx, bottomPx := s.marginedAxis(float64(viewport.Height))
	usable := bottomPx - topPx
	transformed := s.transform(price)
	span := maxT - minT
	if span == 0 {
		span = 1
	}
	normalized := (transformed - minT) / span
	yFromTop := topPx + (1-normalized)*usable
	if s.Inverted {
		yFromTop = topPx + normalized*usable
	}
	return yFromTop, nil
}

// PixelToPrice inverts PriceToPixel.
func (s PriceScale) PixelToPrice(pixel float64, viewport Viewport) (float64, error) {
	if !viewport.IsValid() {
		return 0, InvalidViewport(viewport.Width, viewport.Height)
	}
	if !isFinite(pixel) {
		return 0, InvalidData("pixel must be finite")
	}
	minT, maxT := s.transformedDomain()
	topPx, bottomPx := s.marginedAxis(float64(viewport.Height))
	usable := bottomPx - topPx
	if usable == 0 {
		usable = 1
	}
	var normalized float64
	if s.Inverted {
		normalized = (pixel - topPx) / usable
	} else {
		normalized = 1 - (pixel-topPx)/usable
	}
	span := maxT - minT
	transformed := minT + normalized*span
	return s.inverseTransform(transformed), nil
}

func (s PriceScale) transformedDomain() (float64, float64) {
	min, max := s.linear.Domain()
	return s.transform(min), s.transform(max)
}

func (s PriceScale) inverseTransform(transformed float64) float64 {
	switch s.Mode {
	case PriceScaleModeLog:
		return math.Exp(transformed)
	case PriceScaleModePercentage:
		sign := signOf(s.Base)
		return s.Base + transformed*s.Base/(100*sign)
	case PriceScaleModeIndexedTo100:
		sign := signOf(s.Base)
		return s.Base + (transformed-100)*s.Base/(100*sign)
	default:
		return transformed
	}
}

// BaseSource selects how a transformed-mode base price is resolved when no
// explicit override is set.
type BaseSource int

const (
	BaseSourceDomainStart BaseSource = iota
	BaseSourceFirstData
	BaseSourceLastData
	BaseSourceFirstVisibleData
	BaseSourceLastVisibleData
)

// ResolveBase picks the transformed base in priority order: explicit
// override, then the dynamic source. Falls back to 1.0 if the resolved
// value is non-finite or zero.
func ResolveBase(override *float64, source BaseSource, domainStart float64, points []DataPoint, visiblePoints []DataPoint) float64 {
	if override != nil {
		if isFinite(*override) && *override != 0 {
			return *override
		}
		return 1.0
	}
	var candidate float64
	switch source {
	case BaseSourceDomainStart:
		candidate = domainStart
	case BaseSourceFirstData:
		if len(points) > 0 {
			candidate = points[0].Y
		}
	case BaseSourceLastData:
		if len(points) > 0 {
			candidate = points[len(points)-1].Y
		}
	case BaseSourceFirstVisibleData:
		if len(visiblePoints) > 0 {
			candidate = visiblePoints[0].Y
		}
	case BaseSourceLastVisibleData:
		if len(visiblePoints) > 0 {
			candidate = visiblePoints[len(visiblePoints)-1].Y
		}
	}
	if !isFinite(candidate) || candidate == 0 {
		return 1.0
	}
	return candidate
}
