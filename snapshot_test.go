package chartgo

import (
	"encoding/json"
	"testing"

	"github.com/lucasmanoguerra/chart-go/core"
)

func newSnapshotTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.SetViewport(400, 300); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	e.SetPoints([]core.DataPoint{{X: 0, Y: 10}, {X: 1, Y: 12}, {X: 2, Y: 9}}, MainPaneID, DefaultPointSeriesStyle())
	scale, err := core.NewPriceScale(9, 12, 0.1, 0.1, false, core.PriceScaleModeLinear, 0)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	e.SetPriceScale(MainPaneID, scale)
	if err := e.FitToData(); err != nil {
		t.Fatalf("FitToData: %v", err)
	}
	return e
}

func TestSnapshotJSONRoundTrips(t *testing.T) {
	e := newSnapshotTestEngine(t)
	payload, err := e.SnapshotJSON()
	if err != nil {
		t.Fatalf("SnapshotJSON: %v", err)
	}
	var decoded SnapshotV1
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if decoded.Viewport.WidthPx != 400 || decoded.Viewport.HeightPx != 300 {
		t.Fatalf("expected viewport 400x300 in snapshot, got %+v", decoded.Viewport)
	}
	if decoded.VisiblePointCount != 3 {
		t.Fatalf("expected 3 visible points, got %d", decoded.VisiblePointCount)
	}
}

func TestCrosshairDiagnosticsJSONReflectsFormatterOverride(t *testing.T) {
	e := newSnapshotTestEngine(t)
	e.SetPriceLabelFormatter(MainPaneID, func(v float64) string { return "x" })

	payload, err := e.CrosshairDiagnosticsJSON()
	if err != nil {
		t.Fatalf("CrosshairDiagnosticsJSON: %v", err)
	}
	var decoded CrosshairDiagnosticsV1
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal diagnostics: %v", err)
	}
	entry, ok := decoded.Price[MainPaneID]
	if !ok {
		t.Fatalf("expected main pane entry in diagnostics, got %+v", decoded.Price)
	}
	if entry.OverrideMode != "context" {
		t.Fatalf("expected override_mode context after installing a formatter, got %q", entry.OverrideMode)
	}
	if entry.Generation == 0 {
		t.Fatalf("expected a non-zero generation after installing a formatter")
	}
}

func TestSnapshotHookFiresAtSampleRatioOne(t *testing.T) {
	e := newSnapshotTestEngine(t)
	calls := 0
	e.SetSnapshotJSONHook(1.0, func(payload []byte) { calls++ })

	if _, built, err := e.BuildRenderFrameIfInvalidated(); err != nil || !built {
		t.Fatalf("expected a frame to build, built=%v err=%v", built, err)
	}
	if calls != 1 {
		t.Fatalf("expected the snapshot hook to fire once at sample ratio 1.0, got %d", calls)
	}
}

func TestSnapshotHookSamplesAtHalfRatio(t *testing.T) {
	e := newSnapshotTestEngine(t)
	calls := 0
	e.SetSnapshotJSONHook(0.5, func(payload []byte) { calls++ })

	for i := 0; i < 4; i++ {
		e.ClearPendingInvalidation()
		if err := e.PanBy(0.1); err != nil {
			t.Fatalf("PanBy: %v", err)
		}
		if _, _, err := e.BuildRenderFrameIfInvalidated(); err != nil {
			t.Fatalf("BuildRenderFrameIfInvalidated: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected the snapshot hook to fire twice across 4 frames at ratio 0.5, got %d", calls)
	}
}

func TestCrosshairDiagnosticsHookFiresOnEveryBuild(t *testing.T) {
	e := newSnapshotTestEngine(t)
	calls := 0
	e.SetCrosshairDiagnosticsHook(func(payload []byte) { calls++ })

	if _, _, err := e.BuildRenderFrameIfInvalidated(); err != nil {
		t.Fatalf("BuildRenderFrameIfInvalidated: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the diagnostics hook to fire once, got %d", calls)
	}
}

func TestNilHooksAreNoOps(t *testing.T) {
	e := newSnapshotTestEngine(t)
	if _, _, err := e.BuildRenderFrameIfInvalidated(); err != nil {
		t.Fatalf("BuildRenderFrameIfInvalidated with no hooks installed: %v", err)
	}
}
