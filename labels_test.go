package chartgo

import (
	"testing"
	"time"
)

func TestFormatTimeAxisLabelLogicalDecimal(t *testing.T) {
	config := TimeAxisLabelConfig{Policy: TimeAxisLogicalDecimal, Precision: 2, Locale: LocaleEnUS}
	if got := formatTimeAxisLabel(3.14159, config, 0); got != "3.14" {
		t.Fatalf("expected 3.14, got %q", got)
	}
}

func TestFormatTimeAxisLabelAdaptiveThresholds(t *testing.T) {
	config := DefaultTimeAxisLabelConfig()
	ts := time.Date(2026, 7, 30, 12, 34, 56, 0, time.UTC).Unix()

	short := formatTimeAxisLabel(float64(ts), config, 60)
	if short != "2026-07-30 12:34:56" {
		t.Fatalf("expected seconds-precision label under the 600s threshold, got %q", short)
	}
	medium := formatTimeAxisLabel(float64(ts), config, 3600)
	if medium != "2026-07-30 12:34" {
		t.Fatalf("expected minute-precision label between thresholds, got %q", medium)
	}
	long := formatTimeAxisLabel(float64(ts), config, 1_000_000)
	if long != "2026-07-30" {
		t.Fatalf("expected date-only label above the long threshold, got %q", long)
	}
}

func TestFormatTimeAxisLabelLocaleEsES(t *testing.T) {
	config := TimeAxisLabelConfig{Policy: TimeAxisUtcDateTime, Locale: LocaleEsES, Zone: time.UTC}
	ts := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC).Unix()
	if got := formatTimeAxisLabel(float64(ts), config, 0); got != "05/01/2026 09:00" {
		t.Fatalf("expected es-ES d/m/Y layout, got %q", got)
	}
}

func TestFormatTimeAxisLabelNonFinite(t *testing.T) {
	config := DefaultTimeAxisLabelConfig()
	if got := formatTimeAxisLabel(posInf(), config, 0); got != "nan" {
		t.Fatalf("expected nan sentinel for a non-finite time, got %q", got)
	}
}

func TestIsMajorTimeTickMidnightBoundary(t *testing.T) {
	config := DefaultTimeAxisLabelConfig()
	midnight := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC).Unix()
	noon := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC).Unix()
	if !isMajorTimeTick(float64(midnight), config) {
		t.Fatalf("expected midnight to be a major tick")
	}
	if isMajorTimeTick(float64(noon), config) {
		t.Fatalf("expected noon not to be a major tick")
	}
}

func TestFormatPriceAxisLabelFixedDecimals(t *testing.T) {
	config := PriceAxisLabelConfig{Policy: PriceAxisFixedDecimals, Precision: 3, Locale: LocaleEnUS}
	if got := formatPriceAxisLabel(1.5, config, 0); got != "1.500" {
		t.Fatalf("expected 1.500, got %q", got)
	}
}

func TestFormatPriceAxisLabelMinMoveTrimsTrailingZeros(t *testing.T) {
	config := PriceAxisLabelConfig{Policy: PriceAxisMinMove, MinMove: 0.25, TrimTrailingZeros: true, Locale: LocaleEnUS}
	if got := formatPriceAxisLabel(1.0, config, 0); got != "1" {
		t.Fatalf("expected trimmed integer label, got %q", got)
	}
	if got := formatPriceAxisLabel(1.25, config, 0); got != "1.25" {
		t.Fatalf("expected 1.25, got %q", got)
	}
}

func TestFormatPriceAxisLabelAdaptivePrecision(t *testing.T) {
	config := PriceAxisLabelConfig{Policy: PriceAxisAdaptive, Locale: LocaleEnUS}
	if got := formatPriceAxisLabel(100.456, config, 1); got != "100" {
		t.Fatalf("expected whole-number precision for a step of 1, got %q", got)
	}
	if got := formatPriceAxisLabel(100.456, config, 0.01); got != "100.46" {
		t.Fatalf("expected two-decimal precision for a step of 0.01, got %q", got)
	}
}

func TestFormatPriceAxisLabelLocaleEsES(t *testing.T) {
	config := PriceAxisLabelConfig{Policy: PriceAxisFixedDecimals, Precision: 2, Locale: LocaleEsES}
	if got := formatPriceAxisLabel(1234.5, config, 0); got != "1234,50" {
		t.Fatalf("expected comma decimal separator, got %q", got)
	}
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}
