// label_cache.go - quantized label cache with pluggable formatter slots
// (spec.md §4.6). Grounded on the cache-key quantization in
// original_source/src/api/axis_label_format.rs
// (quantize_logical_time_millis/quantize_price_label_value) and on the
// teacher's bounded-map eviction style used for its sample-cache layer.

package chartgo

import "math"

// FormatterSource distinguishes a host-supplied formatter override from the
// built-in default.
type FormatterSource int

const (
	FormatterNone FormatterSource = iota
	FormatterLegacy
	FormatterContext
)

// TimeLabelFormatterFn is a host override for time-axis label text.
type TimeLabelFormatterFn func(logicalTime float64) string

// PriceLabelFormatterFn is a host override for price-axis label text.
type PriceLabelFormatterFn func(displayValue float64) string

// FormatterSlot tracks a host-installed formatter override and a monotonic
// generation counter, bumped on every install or clear and reported in the
// snapshot and diagnostics contracts. An installed override bypasses the
// label caches, so the generation is not part of any cache key.
type FormatterSlot struct {
	Source     FormatterSource
	Generation uint64
	Time       TimeLabelFormatterFn
	Price      PriceLabelFormatterFn
}

// SetTimeFormatter installs (or clears, passing nil) a time-axis formatter
// override and bumps the generation.
func (s *FormatterSlot) SetTimeFormatter(fn TimeLabelFormatterFn) {
	if fn == nil {
		s.Source = FormatterNone
		s.Time = nil
	} else {
		s.Source = FormatterContext
		s.Time = fn
	}
	s.Generation++
}

// SetPriceFormatter installs (or clears) a price-axis formatter override
// and bumps the generation.
func (s *FormatterSlot) SetPriceFormatter(fn PriceLabelFormatterFn) {
	if fn == nil {
		s.Source = FormatterNone
		s.Price = nil
	} else {
		s.Source = FormatterContext
		s.Price = fn
	}
	s.Generation++
}

// timeLabelCacheKey quantizes a time-axis label request to integer
// milliseconds so float jitter from repeated scale math doesn't thrash the
// cache. profileHash is the caller's profile value, into which
// resolveTimeLabel folds the span-dependent label pattern.
type timeLabelCacheKey struct {
	profileHash      uint64
	logicalTimeMilli int64
}

// priceLabelCacheKey quantizes a price-axis label request to integer
// nanos-of-price, plus the tick step (also quantized) since the Adaptive
// policy's precision depends on it.
type priceLabelCacheKey struct {
	profileHash       uint64
	displayPriceNanos int64
	tickStepNanos     int64
	hasPercentSuffix  bool
}

func quantizeLogicalTimeMillis(logicalTime float64) int64 {
	if !isFiniteLocal(logicalTime) {
		return 0
	}
	millis := math.Round(logicalTime * 1000)
	return clampToInt64(millis)
}

func quantizePriceLabelNanos(value float64) int64 {
	if !isFiniteLocal(value) {
		return 0
	}
	nanos := math.Round(value * 1e9)
	return clampToInt64(nanos)
}

func clampToInt64(v float64) int64 {
	const maxI64 = float64(math.MaxInt64)
	const minI64 = float64(math.MinInt64)
	if v > maxI64 {
		return math.MaxInt64
	}
	if v < minI64 {
		return math.MinInt64
	}
	return int64(v)
}

// labelCacheStats are the hit/miss/size counters spec.md §4.6/§6 requires
// surfacing through the snapshot diagnostics contract.
type labelCacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// labelCache is a bounded FIFO-eviction cache from quantized key to
// rendered label text, used independently for the time axis and the price
// axis. Capacity is a deliberate implementation choice (spec.md §9 Open
// Question (b) leaves exact eviction policy to the implementer): a simple
// bounded FIFO ring was chosen over LRU bookkeeping because axis labels are
// requested in a roughly monotonic sweep per frame (left-to-right ticks),
// so FIFO approximates LRU at a fraction of the overhead.
type labelCache[K comparable] struct {
	capacity int
	entries  map[K]string
	order    []K
	stats    labelCacheStats
}

// defaultLabelCacheCapacity bounds each axis's label cache; generous enough
// to cover a full tick sweep across a few consecutive frames without
// thrashing on minor zoom/pan jitter.
const defaultLabelCacheCapacity = 256

func newLabelCache[K comparable](capacity int) *labelCache[K] {
	if capacity <= 0 {
		capacity = defaultLabelCacheCapacity
	}
	return &labelCache[K]{capacity: capacity, entries: make(map[K]string, capacity)}
}

// getOrCompute returns the cached label for key, computing and storing it
// via compute on a miss.
func (c *labelCache[K]) getOrCompute(key K, compute func() string) string {
	if text, ok := c.entries[key]; ok {
		c.stats.Hits++
		return text
	}
	c.stats.Misses++
	text := compute()
	c.insert(key, text)
	return text
}

func (c *labelCache[K]) insert(key K, text string) {
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = text
	c.stats.Size = len(c.entries)
}

// clear drops all cached entries without resetting hit/miss counters.
func (c *labelCache[K]) clear() {
	c.entries = make(map[K]string, c.capacity)
	c.order = nil
	c.stats.Size = 0
}

// axisLabelCaches bundles the time-axis and price-axis label caches plus
// their formatter override slots, one pair per pane's price axis (time is
// shared chart-wide) per spec.md §4.6.
type axisLabelCaches struct {
	timeCache     *labelCache[timeLabelCacheKey]
	timeFormatter FormatterSlot

	priceCaches    map[PaneID]*labelCache[priceLabelCacheKey]
	priceFormatter map[PaneID]*FormatterSlot
}

func newAxisLabelCaches() *axisLabelCaches {
	return &axisLabelCaches{
		timeCache:      newLabelCache[timeLabelCacheKey](defaultLabelCacheCapacity),
		priceCaches:    make(map[PaneID]*labelCache[priceLabelCacheKey]),
		priceFormatter: make(map[PaneID]*FormatterSlot),
	}
}

func (c *axisLabelCaches) priceCacheFor(pane PaneID) *labelCache[priceLabelCacheKey] {
	cache, ok := c.priceCaches[pane]
	if !ok {
		cache = newLabelCache[priceLabelCacheKey](defaultLabelCacheCapacity)
		c.priceCaches[pane] = cache
	}
	return cache
}

func (c *axisLabelCaches) priceFormatterFor(pane PaneID) *FormatterSlot {
	slot, ok := c.priceFormatter[pane]
	if !ok {
		slot = &FormatterSlot{}
		c.priceFormatter[pane] = slot
	}
	return slot
}

// resolveTimeLabel renders (with caching) the label for logicalTime,
// preferring a host formatter override when one is installed.
func (c *axisLabelCaches) resolveTimeLabel(profileHash uint64, logicalTime float64, config TimeAxisLabelConfig, visibleSpanAbs float64) string {
	if c.timeFormatter.Source != FormatterNone && c.timeFormatter.Time != nil {
		return c.timeFormatter.Time(logicalTime)
	}
	if pattern, ok := resolveTimeLabelPattern(config.Policy, config.ShowSeconds, visibleSpanAbs); ok {
		profileHash = profileHash*31 + uint64(pattern) + 1
	}
	key := timeLabelCacheKey{profileHash: profileHash, logicalTimeMilli: quantizeLogicalTimeMillis(logicalTime)}
	return c.timeCache.getOrCompute(key, func() string {
		return formatTimeAxisLabel(logicalTime, config, visibleSpanAbs)
	})
}

// resolvePriceLabel renders (with caching) the label for a pane's
// display-space price value, preferring a per-pane host formatter override.
func (c *axisLabelCaches) resolvePriceLabel(pane PaneID, profileHash uint64, displayValue float64, config PriceAxisLabelConfig, tickStepAbs float64, hasPercentSuffix bool) string {
	slot := c.priceFormatterFor(pane)
	if slot.Source != FormatterNone && slot.Price != nil {
		return slot.Price(displayValue)
	}
	key := priceLabelCacheKey{
		profileHash:       profileHash,
		displayPriceNanos: quantizePriceLabelNanos(displayValue),
		tickStepNanos:     quantizePriceLabelNanos(tickStepAbs),
		hasPercentSuffix:  hasPercentSuffix,
	}
	return c.priceCacheFor(pane).getOrCompute(key, func() string {
		return formatPriceAxisLabel(displayValue, config, tickStepAbs)
	})
}
