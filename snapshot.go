// snapshot.go - the snapshot/diagnostics JSON contracts and the host hooks
// that fire during BuildRenderFrameIfInvalidated (spec.md §6).

package chartgo

import "encoding/json"

// SnapshotJSONHookFn receives the marshaled snapshot_json_contract_v1
// payload.
type SnapshotJSONHookFn func(payload []byte)

// CrosshairDiagnosticsJSONHookFn receives the marshaled
// crosshair_formatter_diagnostics_json_contract_v1 payload.
type CrosshairDiagnosticsJSONHookFn func(payload []byte)

// ViewportSnapshot is the viewport section of snapshot_json_contract_v1.
type ViewportSnapshot struct {
	WidthPx  uint32 `json:"width_px"`
	HeightPx uint32 `json:"height_px"`
}

// CrosshairSnapshot is the crosshair section of snapshot_json_contract_v1.
type CrosshairSnapshot struct {
	Visible      bool     `json:"visible"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	SnappedTime  *float64 `json:"snapped_time,omitempty"`
	SnappedPrice *float64 `json:"snapped_price,omitempty"`
}

// StyleConstantsSnapshot is the style-derived-constants section of
// snapshot_json_contract_v1.
type StyleConstantsSnapshot struct {
	TimeAxisHeightPx float64 `json:"time_axis_height_px"`
	PriceAxisWidthPx float64 `json:"price_axis_width_px"`
	MinPlotWidthPx   float64 `json:"min_plot_width_px"`
	MinPlotHeightPx  float64 `json:"min_plot_height_px"`
}

// LabelCacheStatsSnapshot is the label-cache-stats section of
// snapshot_json_contract_v1.
type LabelCacheStatsSnapshot struct {
	Time  labelCacheStats            `json:"time"`
	Price map[PaneID]labelCacheStats `json:"price"`
}

// FormatterGenerationsSnapshot is the formatter-generations section of
// snapshot_json_contract_v1.
type FormatterGenerationsSnapshot struct {
	Time  uint64            `json:"time"`
	Price map[PaneID]uint64 `json:"price"`
}

// SnapshotV1 is snapshot_json_contract_v1 (spec.md §6): "a stable JSON
// object containing viewport, time full/visible ranges, price domain,
// crosshair state, visible point/candle counts, style-derived constants,
// label-cache stats, formatter generations, and series metadata."
type SnapshotV1 struct {
	Viewport             ViewportSnapshot             `json:"viewport"`
	TimeFullRange        [2]float64                   `json:"time_full_range"`
	TimeVisibleRange     [2]float64                   `json:"time_visible_range"`
	PriceDomain          map[PaneID][2]float64        `json:"price_domain"`
	Crosshair            CrosshairSnapshot            `json:"crosshair"`
	VisiblePointCount    int                          `json:"visible_point_count"`
	VisibleCandleCount   int                          `json:"visible_candle_count"`
	StyleConstants       StyleConstantsSnapshot       `json:"style_constants"`
	LabelCacheStats      LabelCacheStatsSnapshot      `json:"label_cache_stats"`
	FormatterGenerations FormatterGenerationsSnapshot `json:"formatter_generations"`
	SeriesMetadata       map[string]string            `json:"series_metadata"`
}

// formatterSourceName renders a FormatterSource as the stable string the
// diagnostics contract exposes.
func formatterSourceName(source FormatterSource) string {
	switch source {
	case FormatterLegacy:
		return "legacy"
	case FormatterContext:
		return "context"
	default:
		return "none"
	}
}

// AxisFormatterDiagnostics is one axis's entry in
// crosshair_formatter_diagnostics_json_contract_v1.
type AxisFormatterDiagnostics struct {
	OverrideMode string          `json:"override_mode"`
	Generation   uint64          `json:"generation"`
	CacheStats   labelCacheStats `json:"cache_stats"`
}

// CrosshairDiagnosticsV1 is
// crosshair_formatter_diagnostics_json_contract_v1 (spec.md §6): "formatter
// override modes per axis, current generations, and per-axis cache
// {hits, misses, size}."
type CrosshairDiagnosticsV1 struct {
	Time  AxisFormatterDiagnostics            `json:"time"`
	Price map[PaneID]AxisFormatterDiagnostics `json:"price"`
}

func isPointVisible(x, start, end float64) bool {
	if start > end {
		start, end = end, start
	}
	return x >= start && x <= end
}

// Snapshot builds snapshot_json_contract_v1 from the current engine state.
func (e *Engine) Snapshot() SnapshotV1 {
	visStart, visEnd := e.timeScale.state.VisibleRange()

	priceDomain := make(map[PaneID][2]float64, len(e.priceScales))
	for id, scale := range e.priceScales {
		min, max := scale.Domain()
		priceDomain[id] = [2]float64{min, max}
	}

	visiblePoints := 0
	for _, p := range e.points {
		if isPointVisible(p.X, visStart, visEnd) {
			visiblePoints++
		}
	}
	visibleCandles := 0
	for _, c := range e.candles {
		if isPointVisible(c.Time, visStart, visEnd) {
			visibleCandles++
		}
	}

	priceCacheStats := make(map[PaneID]labelCacheStats, len(e.caches.priceCaches))
	priceGenerations := make(map[PaneID]uint64, len(e.caches.priceFormatter))
	for _, id := range e.panes.IDs() {
		priceCacheStats[id] = e.caches.priceCacheFor(id).stats
		priceGenerations[id] = e.caches.priceFormatterFor(id).Generation
	}

	metadata := make(map[string]string, e.metadata.Len())
	for _, key := range e.metadata.Keys() {
		if value, ok := e.metadata.Get(key); ok {
			metadata[key] = value
		}
	}

	return SnapshotV1{
		Viewport:          ViewportSnapshot{WidthPx: e.viewport.Width, HeightPx: e.viewport.Height},
		TimeFullRange:     rangeAsArray(e.timeScale.state.FullRange()),
		TimeVisibleRange:  [2]float64{visStart, visEnd},
		PriceDomain:       priceDomain,
		Crosshair: CrosshairSnapshot{
			Visible:      e.interaction.crosshair.Visible,
			X:            e.interaction.crosshair.X,
			Y:            e.interaction.crosshair.Y,
			SnappedTime:  e.interaction.crosshair.SnappedTime,
			SnappedPrice: e.interaction.crosshair.SnappedPrice,
		},
		VisiblePointCount:  visiblePoints,
		VisibleCandleCount: visibleCandles,
		StyleConstants: StyleConstantsSnapshot{
			TimeAxisHeightPx: e.style.TimeAxisHeightPx,
			PriceAxisWidthPx: e.style.PriceAxisWidthPx,
			MinPlotWidthPx:   e.style.MinPlotWidthPx,
			MinPlotHeightPx:  e.style.MinPlotHeightPx,
		},
		LabelCacheStats: LabelCacheStatsSnapshot{
			Time:  e.caches.timeCache.stats,
			Price: priceCacheStats,
		},
		FormatterGenerations: FormatterGenerationsSnapshot{
			Time:  e.caches.timeFormatter.Generation,
			Price: priceGenerations,
		},
		SeriesMetadata: metadata,
	}
}

// CrosshairDiagnostics builds
// crosshair_formatter_diagnostics_json_contract_v1 from the current engine
// state.
func (e *Engine) CrosshairDiagnostics() CrosshairDiagnosticsV1 {
	price := make(map[PaneID]AxisFormatterDiagnostics, len(e.panes.IDs()))
	for _, id := range e.panes.IDs() {
		slot := e.caches.priceFormatterFor(id)
		price[id] = AxisFormatterDiagnostics{
			OverrideMode: formatterSourceName(slot.Source),
			Generation:   slot.Generation,
			CacheStats:   e.caches.priceCacheFor(id).stats,
		}
	}
	return CrosshairDiagnosticsV1{
		Time: AxisFormatterDiagnostics{
			OverrideMode: formatterSourceName(e.caches.timeFormatter.Source),
			Generation:   e.caches.timeFormatter.Generation,
			CacheStats:   e.caches.timeCache.stats,
		},
		Price: price,
	}
}

// SnapshotJSON marshals Snapshot to the snapshot_json_contract_v1 wire
// form.
func (e *Engine) SnapshotJSON() ([]byte, error) {
	return json.Marshal(e.Snapshot())
}

// CrosshairDiagnosticsJSON marshals CrosshairDiagnostics to the
// crosshair_formatter_diagnostics_json_contract_v1 wire form.
func (e *Engine) CrosshairDiagnosticsJSON() ([]byte, error) {
	return json.Marshal(e.CrosshairDiagnostics())
}

// SetSnapshotJSONHook installs fn to be called with the
// snapshot_json_contract_v1 payload during BuildRenderFrameIfInvalidated,
// sampled at sampleRatio (1.0 = every frame, 0.5 = every other frame) via a
// deterministic fixed-ratio accumulator rather than randomized sampling, so
// firing is reproducible for identical call sequences. Passing a nil fn
// disables the hook.
func (e *Engine) SetSnapshotJSONHook(sampleRatio float64, fn SnapshotJSONHookFn) {
	e.snapshotHook = fn
	e.snapshotSampleRatio = sampleRatio
	e.snapshotSampleAcc = 0
}

// SetCrosshairDiagnosticsHook installs fn to be called with the
// crosshair_formatter_diagnostics_json_contract_v1 payload on every
// successful BuildRenderFrameIfInvalidated call. Passing a nil fn disables
// the hook.
func (e *Engine) SetCrosshairDiagnosticsHook(fn CrosshairDiagnosticsJSONHookFn) {
	e.crosshairDiagnosticsHook = fn
}

// fireHooks invokes the installed snapshot/diagnostics hooks synchronously,
// per spec.md §5's "event hook callbacks fire synchronously during the call
// that triggers them."
func (e *Engine) fireHooks() {
	if e.snapshotHook != nil && e.snapshotSampleRatio > 0 {
		e.snapshotSampleAcc += e.snapshotSampleRatio
		if e.snapshotSampleAcc >= 1 {
			e.snapshotSampleAcc -= 1
			if payload, err := e.SnapshotJSON(); err == nil {
				e.snapshotHook(payload)
			}
		}
	}
	if e.crosshairDiagnosticsHook != nil {
		if payload, err := e.CrosshairDiagnosticsJSON(); err == nil {
			e.crosshairDiagnosticsHook(payload)
		}
	}
}

func rangeAsArray(start, end float64) [2]float64 { return [2]float64{start, end} }
