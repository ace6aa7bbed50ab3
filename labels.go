// labels.go - axis label formatters (spec.md §4.6), grounded on
// original_source/src/api/axis_label_format.rs. The quantized label cache
// lives in label_cache.go.

package chartgo

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AxisLabelLocale selects the decimal separator and date convention used by
// axis-label formatters.
type AxisLabelLocale int

const (
	LocaleEnUS AxisLabelLocale = iota
	LocaleEsES
)

func (l AxisLabelLocale) tag() language.Tag {
	if l == LocaleEsES {
		return language.Spanish
	}
	return language.AmericanEnglish
}

func (l AxisLabelLocale) decimalSeparator() byte {
	if l == LocaleEsES {
		return ','
	}
	return '.'
}

// TimeLabelPattern is the resolved strftime-style shape of a time label.
type TimeLabelPattern int

const (
	TimeLabelDate TimeLabelPattern = iota
	TimeLabelDateMinute
	TimeLabelDateSecond
	TimeLabelTimeMinute
	TimeLabelTimeSecond
)

func (p TimeLabelPattern) layout(locale AxisLabelLocale) string {
	enUS := map[TimeLabelPattern]string{
		TimeLabelDate:       "2006-01-02",
		TimeLabelDateMinute: "2006-01-02 15:04",
		TimeLabelDateSecond: "2006-01-02 15:04:05",
		TimeLabelTimeMinute: "15:04",
		TimeLabelTimeSecond: "15:04:05",
	}
	esES := map[TimeLabelPattern]string{
		TimeLabelDate:       "02/01/2006",
		TimeLabelDateMinute: "02/01/2006 15:04",
		TimeLabelDateSecond: "02/01/2006 15:04:05",
		TimeLabelTimeMinute: "15:04",
		TimeLabelTimeSecond: "15:04:05",
	}
	if locale == LocaleEsES {
		return esES[p]
	}
	return enUS[p]
}

// TimeAxisLabelPolicy selects how a time-axis tick value is rendered.
type TimeAxisLabelPolicy int

const (
	TimeAxisLogicalDecimal TimeAxisLabelPolicy = iota
	TimeAxisUtcDateTime
	TimeAxisUtcAdaptive
)

// TimeAxisSessionConfig narrows in-session minutes to a time-only label,
// keeping session-boundary timestamps fully qualified.
type TimeAxisSessionConfig struct {
	StartMinuteOfDay uint16
	EndMinuteOfDay   uint16
}

func (c TimeAxisSessionConfig) containsLocalMinute(minuteOfDay uint16) bool {
	if c.StartMinuteOfDay <= c.EndMinuteOfDay {
		return minuteOfDay >= c.StartMinuteOfDay && minuteOfDay <= c.EndMinuteOfDay
	}
	return minuteOfDay >= c.StartMinuteOfDay || minuteOfDay <= c.EndMinuteOfDay
}

func (c TimeAxisSessionConfig) isBoundary(minuteOfDay uint16, second int) bool {
	return second == 0 && (minuteOfDay == c.StartMinuteOfDay || minuteOfDay == c.EndMinuteOfDay)
}

// TimeAxisLabelConfig configures time-axis label rendering.
type TimeAxisLabelConfig struct {
	Policy      TimeAxisLabelPolicy
	Precision   uint8 // used only by TimeAxisLogicalDecimal
	ShowSeconds bool  // used only by TimeAxisUtcDateTime
	Locale      AxisLabelLocale
	Zone        *time.Location
	Session     *TimeAxisSessionConfig
}

// DefaultTimeAxisLabelConfig renders UTC date/time labels adapted to the
// visible span, in US English, with no session narrowing.
func DefaultTimeAxisLabelConfig() TimeAxisLabelConfig {
	return TimeAxisLabelConfig{Policy: TimeAxisUtcAdaptive, Locale: LocaleEnUS, Zone: time.UTC}
}

func resolveTimeLabelPattern(policy TimeAxisLabelPolicy, showSeconds bool, visibleSpanAbs float64) (TimeLabelPattern, bool) {
	switch policy {
	case TimeAxisUtcDateTime:
		if showSeconds {
			return TimeLabelDateSecond, true
		}
		return TimeLabelDateMinute, true
	case TimeAxisUtcAdaptive:
		switch {
		case visibleSpanAbs <= 600:
			return TimeLabelDateSecond, true
		case visibleSpanAbs <= 172800:
			return TimeLabelDateMinute, true
		default:
			return TimeLabelDate, true
		}
	default:
		return 0, false
	}
}

func resolveSessionPattern(pattern TimeLabelPattern, session *TimeAxisSessionConfig, local time.Time) TimeLabelPattern {
	if session == nil {
		return pattern
	}
	minuteOfDay := uint16(local.Hour()*60 + local.Minute())
	if !session.containsLocalMinute(minuteOfDay) {
		return pattern
	}
	if session.isBoundary(minuteOfDay, local.Second()) {
		return pattern
	}
	switch pattern {
	case TimeLabelDateMinute:
		return TimeLabelTimeMinute
	case TimeLabelDateSecond:
		return TimeLabelTimeSecond
	default:
		return pattern
	}
}

// formatAxisDecimal renders value to a fixed number of decimals using the
// locale's decimal separator and grouping convention, via
// golang.org/x/text/number and golang.org/x/text/message — axis labels
// never want thousands grouping, so it's explicitly disabled.
func formatAxisDecimal(value float64, precision int, locale AxisLabelLocale) string {
	p := message.NewPrinter(locale.tag())
	return p.Sprintf("%v", number.Decimal(value, number.Scale(precision), number.NoSeparator()))
}

func trimAxisDecimal(text string, locale AxisLabelLocale) string {
	sep := locale.decimalSeparator()
	idx := strings.IndexByte(text, sep)
	if idx < 0 {
		return text
	}
	trimmed := strings.TrimRight(text, "0")
	trimmed = strings.TrimSuffix(trimmed, string(sep))
	if trimmed == "-0" {
		return "0"
	}
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func precisionFromStep(step float64) int {
	if !isFiniteLocal(step) || step <= 0 {
		return 2
	}
	text := formatAxisDecimal(step, 12, LocaleEnUS)
	idx := strings.IndexByte(text, '.')
	if idx < 0 {
		return 0
	}
	fraction := strings.TrimRight(text[idx+1:], "0")
	if len(fraction) > 12 {
		return 12
	}
	return len(fraction)
}

// formatTimeAxisLabel renders a logical time value per config, adapting to
// the visible span when the policy is UtcAdaptive.
func formatTimeAxisLabel(logicalTime float64, config TimeAxisLabelConfig, visibleSpanAbs float64) string {
	if !isFiniteLocal(logicalTime) {
		return "nan"
	}
	if config.Policy == TimeAxisLogicalDecimal {
		return formatAxisDecimal(logicalTime, int(config.Precision), config.Locale)
	}

	pattern, ok := resolveTimeLabelPattern(config.Policy, config.ShowSeconds, visibleSpanAbs)
	if !ok {
		return formatAxisDecimal(logicalTime, 2, config.Locale)
	}
	zone := config.Zone
	if zone == nil {
		zone = time.UTC
	}
	seconds := int64(logicalTime + 0.5)
	if logicalTime < 0 {
		seconds = int64(logicalTime - 0.5)
	}
	local := time.Unix(seconds, 0).In(zone)
	pattern = resolveSessionPattern(pattern, config.Session, local)
	return local.Format(pattern.layout(config.Locale))
}

// isMajorTimeTick reports whether logicalTime lands on a day boundary (or a
// configured session boundary), used by axis-tick rendering to style major
// ticks distinctly.
func isMajorTimeTick(logicalTime float64, config TimeAxisLabelConfig) bool {
	if !isFiniteLocal(logicalTime) || config.Policy == TimeAxisLogicalDecimal {
		return false
	}
	zone := config.Zone
	if zone == nil {
		zone = time.UTC
	}
	local := time.Unix(int64(logicalTime+0.5), 0).In(zone)
	minuteOfDay := uint16(local.Hour()*60 + local.Minute())
	if config.Session != nil && config.Session.isBoundary(minuteOfDay, local.Second()) {
		return true
	}
	return local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0
}

// PriceAxisLabelPolicy selects how a price-axis tick value is rendered.
type PriceAxisLabelPolicy int

const (
	PriceAxisFixedDecimals PriceAxisLabelPolicy = iota
	PriceAxisMinMove
	PriceAxisAdaptive
)

// PriceAxisLabelConfig configures price-axis label rendering.
type PriceAxisLabelConfig struct {
	Policy            PriceAxisLabelPolicy
	Precision         uint8   // PriceAxisFixedDecimals
	MinMove           float64 // PriceAxisMinMove
	TrimTrailingZeros bool    // PriceAxisMinMove
	Locale            AxisLabelLocale
}

// DefaultPriceAxisLabelConfig renders a nice-step-derived decimal count in
// US English.
func DefaultPriceAxisLabelConfig() PriceAxisLabelConfig {
	return PriceAxisLabelConfig{Policy: PriceAxisAdaptive, Locale: LocaleEnUS}
}

func normalizeStepForPrecision(stepAbs float64) float64 {
	if !isFiniteLocal(stepAbs) || stepAbs <= 0 {
		return 0.01
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(stepAbs)))
	if !isFiniteLocal(magnitude) || magnitude <= 0 {
		return stepAbs
	}
	normalized := stepAbs / magnitude
	var nice float64
	switch {
	case normalized < 1.5:
		nice = 1
	case normalized < 3:
		nice = 2
	case normalized < 7:
		nice = 5
	default:
		nice = 10
	}
	return nice * magnitude
}

// formatPriceAxisLabel renders value per config; tickStepAbs feeds the
// Adaptive policy's nice-step precision selection.
func formatPriceAxisLabel(value float64, config PriceAxisLabelConfig, tickStepAbs float64) string {
	if !isFiniteLocal(value) {
		return "nan"
	}
	switch config.Policy {
	case PriceAxisFixedDecimals:
		return formatAxisDecimal(value, int(config.Precision), config.Locale)
	case PriceAxisMinMove:
		precision := precisionFromStep(config.MinMove)
		snapped := value
		if isFiniteLocal(config.MinMove) && config.MinMove > 0 {
			snapped = roundToStep(value, config.MinMove)
		}
		text := formatAxisDecimal(snapped, precision, config.Locale)
		if config.TrimTrailingZeros {
			return trimAxisDecimal(text, config.Locale)
		}
		return text
	default: // PriceAxisAdaptive
		niceStep := normalizeStepForPrecision(tickStepAbs)
		return formatAxisDecimal(value, precisionFromStep(niceStep), config.Locale)
	}
}

func roundToStep(value, step float64) float64 {
	return math.Round(value/step) * step
}
