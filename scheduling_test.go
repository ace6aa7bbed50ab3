package chartgo

import (
	"testing"

	"github.com/lucasmanoguerra/chart-go/render"
)

func TestInvalidateWithDetailMergesLevelAndTopics(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationCursor, TopicSet(TopicCursor), noPaneTarget())
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), noPaneTarget())

	if s.pending.Level != InvalidationLight {
		t.Fatalf("expected level to max to Light, got %v", s.pending.Level)
	}
	if !s.pending.Topics.Contains(TopicCursor) || !s.pending.Topics.Contains(TopicSeries) {
		t.Fatalf("expected both topics to be unioned, got %+v", s.pending.Topics)
	}
	if s.parity.GlobalLevel != ParityLight {
		t.Fatalf("expected parity global level to track Light, got %v", s.parity.GlobalLevel)
	}
}

func TestInvalidateWithDetailRecordsPaneTarget(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), forPane(2, true))

	inv := s.parity.InvalidationForPane(2)
	if inv.Level != ParityLight || !inv.AutoScale {
		t.Fatalf("expected pane 2 to carry Light+autoscale, got %+v", inv)
	}
	if !containsPane(s.PendingInvalidationPaneTargets(), 2) {
		t.Fatalf("expected pane 2 in pending pane targets")
	}
}

func TestInvalidateWithDetailDrainsTimeScaleIntent(t *testing.T) {
	s := newInvalidationScheduler()
	s.markTimeScaleIntent(tsIntentApplyBarSpacing, LogicalRange{}, 12, 0)
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicTimeScale), noPaneTarget())

	if !s.parity.HasTimeScaleMutation() {
		t.Fatalf("expected the drained ApplyBarSpacing to register as a time-scale mutation")
	}
	if s.intentKind != tsIntentNone {
		t.Fatalf("expected intent to be cleared after draining, got %v", s.intentKind)
	}
}

func TestBuildPartialPlanRejectsSinglePane(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationCursor, TopicSet(TopicCursor), noPaneTarget())
	if _, ok := s.BuildPartialPlan([]PaneID{MainPaneID}, true); ok {
		t.Fatalf("expected single-pane chart to reject a partial plan")
	}
}

func TestBuildPartialPlanRejectsFullLevel(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationFull, TopicSet(TopicSeries), noPaneTarget())
	if _, ok := s.BuildPartialPlan([]PaneID{0, 1}, true); ok {
		t.Fatalf("expected Full level to reject a partial plan")
	}
}

func TestBuildPartialPlanRejectsTimeScaleMutation(t *testing.T) {
	s := newInvalidationScheduler()
	s.markTimeScaleIntent(tsIntentApplyRightOffset, LogicalRange{}, 0, 5)
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicCursor), noPaneTarget())
	if _, ok := s.BuildPartialPlan([]PaneID{0, 1}, true); ok {
		t.Fatalf("expected a queued time-scale mutation to reject a partial plan")
	}
}

func TestBuildPartialPlanRejectsAutoScaleRequest(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), forPane(1, true))
	if _, ok := s.BuildPartialPlan([]PaneID{0, 1}, true); ok {
		t.Fatalf("expected an autoscale pane request to reject a partial plan")
	}
}

func TestBuildPartialPlanRejectsTimeScaleTopic(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicTimeScale), noPaneTarget())
	if _, ok := s.BuildPartialPlan([]PaneID{0, 1}, true); ok {
		t.Fatalf("expected the TimeScale topic to reject a partial plan")
	}
}

func TestBuildPartialPlanCursorLevelUsesCursorLayers(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationCursor, TopicSet(TopicCursor), noPaneTarget())
	plan, ok := s.BuildPartialPlan([]PaneID{0, 1}, false)
	if !ok {
		t.Fatalf("expected a partial plan to be built")
	}
	want := map[render.LayerKind]bool{render.LayerBackground: true, render.LayerOverlay: true, render.LayerCrosshair: true}
	if len(plan.Layers) != len(want) {
		t.Fatalf("expected %d cursor layers, got %+v", len(want), plan.Layers)
	}
	for _, l := range plan.Layers {
		if !want[l] {
			t.Fatalf("unexpected layer %v in cursor plan", l)
		}
	}
}

func TestBuildPartialPlanLightLevelUsesLightLayers(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), noPaneTarget())
	plan, ok := s.BuildPartialPlan([]PaneID{0, 1}, false)
	if !ok {
		t.Fatalf("expected a partial plan to be built")
	}
	want := map[render.LayerKind]bool{
		render.LayerBackground: true, render.LayerGrid: true, render.LayerSeries: true,
		render.LayerOverlay: true, render.LayerCrosshair: true,
	}
	if len(plan.Layers) != len(want) {
		t.Fatalf("expected %d light layers, got %+v", len(want), plan.Layers)
	}
	for _, l := range plan.Layers {
		if !want[l] {
			t.Fatalf("unexpected layer %v in light plan", l)
		}
	}
}

func TestBuildPartialPlanUsesExplicitParityPaneList(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), forPane(1, false))
	plan, ok := s.BuildPartialPlan([]PaneID{0, 1, 2}, false)
	if !ok {
		t.Fatalf("expected a partial plan to be built")
	}
	if len(plan.Panes) != 1 || plan.Panes[0] != 1 {
		t.Fatalf("expected plan to target only pane 1, got %+v", plan.Panes)
	}
}

func TestBuildPartialPlanFallsBackToAllKnownPanesWithoutHints(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), noPaneTarget())
	plan, ok := s.BuildPartialPlan([]PaneID{0, 1, 2}, false)
	if !ok {
		t.Fatalf("expected a partial plan to be built")
	}
	if len(plan.Panes) != 3 {
		t.Fatalf("expected all 3 known panes, got %+v", plan.Panes)
	}
}

func TestBuildPartialPlanAlwaysIncludesMainPaneAxisWhenNonEmpty(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationLight, TopicSet(TopicSeries), forPane(1, false))
	plan, ok := s.BuildPartialPlan([]PaneID{0, 1, 2}, true)
	if !ok {
		t.Fatalf("expected a partial plan to be built")
	}
	if !containsPane(plan.Panes, MainPaneID) {
		t.Fatalf("expected the main pane to be added for its axis layer, got %+v", plan.Panes)
	}
	hasAxis := false
	for _, l := range plan.Layers {
		if l == render.LayerAxis {
			hasAxis = true
		}
	}
	if !hasAxis {
		t.Fatalf("expected the Axis layer to be added, got %+v", plan.Layers)
	}
}

func TestClearResetsSchedulerState(t *testing.T) {
	s := newInvalidationScheduler()
	s.invalidateWithDetail(InvalidationFull, TopicSet(TopicSeries), forPane(1, true))
	s.clear()
	if !s.pending.IsNone() {
		t.Fatalf("expected pending mask to be cleared")
	}
	if s.parity.GlobalLevel != ParityNone {
		t.Fatalf("expected parity mask to be reset")
	}
	if len(s.PendingInvalidationPaneTargets()) != 0 {
		t.Fatalf("expected pane targets to be cleared")
	}
}
