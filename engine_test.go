package chartgo

import (
	"testing"

	"github.com/lucasmanoguerra/chart-go/core"
)

func samplePoints() []core.DataPoint {
	return []core.DataPoint{
		{X: 0, Y: 10},
		{X: 1, Y: 12},
		{X: 2, Y: 9},
		{X: 3, Y: 15},
	}
}

func TestNewEngineHasMainPaneAndDefaults(t *testing.T) {
	e := NewEngine()
	if !e.Panes().Contains(MainPaneID) {
		t.Fatalf("expected the main pane to exist by default")
	}
	if e.InteractionState() != StateIdle {
		t.Fatalf("expected initial interaction state Idle, got %v", e.InteractionState())
	}
}

func TestSetPointsThenFitToDataThenBuildRenderFrame(t *testing.T) {
	e := NewEngine()
	if err := e.SetViewport(400, 300); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	e.SetPoints(samplePoints(), MainPaneID, DefaultPointSeriesStyle())

	scale, err := core.NewPriceScale(9, 15, 0.1, 0.1, false, core.PriceScaleModeLinear, 0)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	e.SetPriceScale(MainPaneID, scale)

	if err := e.FitToData(); err != nil {
		t.Fatalf("FitToData: %v", err)
	}

	frame, err := e.BuildRenderFrame()
	if err != nil {
		t.Fatalf("BuildRenderFrame: %v", err)
	}
	if len(frame.Panes) == 0 {
		t.Fatalf("expected at least one pane in the built frame")
	}
}

func TestPanByMarksTimeScaleInvalidation(t *testing.T) {
	e := NewEngine()
	if err := e.SetViewport(400, 300); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	e.SetPoints(samplePoints(), MainPaneID, DefaultPointSeriesStyle())
	if err := e.FitToData(); err != nil {
		t.Fatalf("FitToData: %v", err)
	}
	e.ClearPendingInvalidation()

	if err := e.PanBy(0.5); err != nil {
		t.Fatalf("PanBy: %v", err)
	}
	if !e.HasPendingInvalidationTopic(TopicTimeScale) {
		t.Fatalf("expected PanBy to mark the TimeScale topic as invalidated")
	}
}

func TestBuildRenderFrameIfInvalidatedRequiresPendingInvalidation(t *testing.T) {
	e := NewEngine()
	if err := e.SetViewport(400, 300); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	e.SetPoints(samplePoints(), MainPaneID, DefaultPointSeriesStyle())
	scale, err := core.NewPriceScale(9, 15, 0.1, 0.1, false, core.PriceScaleModeLinear, 0)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	e.SetPriceScale(MainPaneID, scale)
	if err := e.FitToData(); err != nil {
		t.Fatalf("FitToData: %v", err)
	}

	if _, built, err := e.BuildRenderFrameIfInvalidated(); err != nil || !built {
		t.Fatalf("expected a frame to build on the first pending invalidation, built=%v err=%v", built, err)
	}
	if _, built, err := e.BuildRenderFrameIfInvalidated(); err != nil || built {
		t.Fatalf("expected no frame to build once invalidation is cleared, built=%v err=%v", built, err)
	}
}

func TestAddPaneAndRemovePane(t *testing.T) {
	e := NewEngine()
	id := e.AddPane(1)
	if !e.Panes().Contains(id) {
		t.Fatalf("expected new pane to be tracked")
	}
	if !e.HasPendingInvalidationTopic(TopicPaneLayout) {
		t.Fatalf("expected AddPane to mark PaneLayout invalidated")
	}
	e.ClearPendingInvalidation()

	if !e.RemovePane(id) {
		t.Fatalf("expected RemovePane to succeed")
	}
	if e.Panes().Contains(id) {
		t.Fatalf("expected pane to be removed")
	}
}

func TestAutoscaleFromDataRecomputesPriceScale(t *testing.T) {
	e := NewEngine()
	if err := e.SetViewport(400, 300); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	e.SetPoints(samplePoints(), MainPaneID, DefaultPointSeriesStyle())
	scale, err := core.NewPriceScale(0, 1, 0.1, 0.1, false, core.PriceScaleModeLinear, 0)
	if err != nil {
		t.Fatalf("NewPriceScale: %v", err)
	}
	e.SetPriceScale(MainPaneID, scale)
	e.ClearPendingInvalidation()

	if err := e.AutoscaleFromData(MainPaneID); err != nil {
		t.Fatalf("AutoscaleFromData: %v", err)
	}
	updated, ok := e.PriceScaleFor(MainPaneID)
	if !ok {
		t.Fatalf("expected pane price scale to still be tracked")
	}
	min, max := updated.Domain()
	if min != 9 || max != 15 {
		t.Fatalf("expected autoscale to derive [9, 15], got [%v, %v]", min, max)
	}
	if !e.HasPendingInvalidationTopic(TopicPriceScale) {
		t.Fatalf("expected AutoscaleFromData to mark PriceScale invalidated")
	}
}

func TestAutoscaleFromDataRejectsUnknownPane(t *testing.T) {
	e := NewEngine()
	if err := e.AutoscaleFromData(PaneID(99)); err == nil {
		t.Fatalf("expected an error autoscaling an unknown pane")
	}
}

func TestRightOffsetAnimationStepsToCompletion(t *testing.T) {
	e := NewEngine()
	if err := e.SetViewport(400, 300); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	e.SetPoints(samplePoints(), MainPaneID, DefaultPointSeriesStyle())
	if err := e.FitToData(); err != nil {
		t.Fatalf("FitToData: %v", err)
	}

	if err := e.StartRightOffsetAnimation(2, 0, 10); err != nil {
		t.Fatalf("StartRightOffsetAnimation: %v", err)
	}
	if e.activeAnimation == nil {
		t.Fatalf("expected an active animation after Start")
	}

	finished, err := e.StepAnimation(5)
	if err != nil {
		t.Fatalf("StepAnimation (mid): %v", err)
	}
	if finished {
		t.Fatalf("expected the animation to still be running halfway through")
	}

	finished, err = e.StepAnimation(10)
	if err != nil {
		t.Fatalf("StepAnimation (end): %v", err)
	}
	if !finished {
		t.Fatalf("expected the animation to report finished at its end time")
	}
	if e.activeAnimation != nil {
		t.Fatalf("expected the active animation slot to clear once finished")
	}
}

func TestStepAnimationWithNoActiveAnimationIsFinished(t *testing.T) {
	e := NewEngine()
	finished, err := e.StepAnimation(0)
	if err != nil {
		t.Fatalf("StepAnimation: %v", err)
	}
	if !finished {
		t.Fatalf("expected finished=true when no animation is active")
	}
}
