package chartgo

import "testing"

func TestLabelCacheHitsAndMisses(t *testing.T) {
	c := newLabelCache[int](4)
	calls := 0
	compute := func() string {
		calls++
		return "x"
	}
	if got := c.getOrCompute(1, compute); got != "x" {
		t.Fatalf("expected computed value, got %q", got)
	}
	if got := c.getOrCompute(1, compute); got != "x" {
		t.Fatalf("expected cached value, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected compute called exactly once, got %d", calls)
	}
	if c.stats.Hits != 1 || c.stats.Misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %+v", c.stats)
	}
}

func TestLabelCacheEvictsOldestBeyondCapacity(t *testing.T) {
	c := newLabelCache[int](2)
	c.getOrCompute(1, func() string { return "a" })
	c.getOrCompute(2, func() string { return "b" })
	c.getOrCompute(3, func() string { return "c" })

	if c.stats.Size != 2 {
		t.Fatalf("expected capacity-bounded size 2, got %d", c.stats.Size)
	}
	if _, ok := c.entries[1]; ok {
		t.Fatalf("expected the oldest entry to be evicted")
	}
	if _, ok := c.entries[3]; !ok {
		t.Fatalf("expected the newest entry to be present")
	}
}

func TestLabelCacheClearResetsEntriesNotStatsCounters(t *testing.T) {
	c := newLabelCache[int](4)
	c.getOrCompute(1, func() string { return "a" })
	c.clear()
	if c.stats.Size != 0 {
		t.Fatalf("expected size reset after clear, got %d", c.stats.Size)
	}
	if c.stats.Misses != 1 {
		t.Fatalf("expected prior miss counter preserved across clear, got %d", c.stats.Misses)
	}
}

func TestQuantizeLogicalTimeMillisNonFinite(t *testing.T) {
	if got := quantizeLogicalTimeMillis(posInf()); got != 0 {
		t.Fatalf("expected 0 for a non-finite time, got %d", got)
	}
}

func TestFormatterSlotGenerationBumpsOnInstallAndClear(t *testing.T) {
	var slot FormatterSlot
	if slot.Generation != 0 {
		t.Fatalf("expected generation 0 initially")
	}
	slot.SetTimeFormatter(func(float64) string { return "t" })
	if slot.Generation != 1 || slot.Source != FormatterContext {
		t.Fatalf("expected generation bumped and source set, got gen=%d source=%v", slot.Generation, slot.Source)
	}
	slot.SetTimeFormatter(nil)
	if slot.Generation != 2 || slot.Source != FormatterNone {
		t.Fatalf("expected generation bumped again on clear, got gen=%d source=%v", slot.Generation, slot.Source)
	}
}

func TestAxisLabelCachesResolveTimeLabelPrefersFormatterOverride(t *testing.T) {
	caches := newAxisLabelCaches()
	caches.timeFormatter.SetTimeFormatter(func(t float64) string { return "override" })
	got := caches.resolveTimeLabel(1, 0, DefaultTimeAxisLabelConfig(), 60)
	if got != "override" {
		t.Fatalf("expected formatter override to take precedence, got %q", got)
	}
}

func TestAxisLabelCachesResolvePriceLabelPerPaneFormatter(t *testing.T) {
	caches := newAxisLabelCaches()
	caches.priceFormatterFor(MainPaneID).SetPriceFormatter(func(v float64) string { return "p" })
	got := caches.resolvePriceLabel(MainPaneID, 1, 42, DefaultPriceAxisLabelConfig(), 1, false)
	if got != "p" {
		t.Fatalf("expected per-pane formatter override, got %q", got)
	}
	otherPane := PaneID(1)
	gotOther := caches.resolvePriceLabel(otherPane, 1, 42, DefaultPriceAxisLabelConfig(), 1, false)
	if gotOther == "p" {
		t.Fatalf("expected the override to be scoped to its own pane")
	}
}
