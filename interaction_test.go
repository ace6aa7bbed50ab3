package chartgo

import "testing"

func TestPointerMoveHiddenModeStaysInvisible(t *testing.T) {
	m := newInteractionMachine()
	m.pointerMove(CrosshairHidden, 10, 20, nil)
	if m.crosshair.Visible {
		t.Fatalf("expected hidden mode to keep the crosshair invisible")
	}
}

func TestPointerMoveNormalModeTracksRawPosition(t *testing.T) {
	m := newInteractionMachine()
	m.pointerMove(CrosshairNormal, 10, 20, nil)
	if !m.crosshair.Visible || m.crosshair.X != 10 || m.crosshair.Y != 20 {
		t.Fatalf("expected normal mode to track raw pointer position, got %+v", m.crosshair)
	}
	if m.crosshair.SnappedX != nil {
		t.Fatalf("expected normal mode not to populate a snap")
	}
}

func TestPointerMoveMagnetModeSnapsToNearestSlot(t *testing.T) {
	m := newInteractionMachine()
	slots := []filledSlot{
		{PxX: 0, PxY: 0, Time: 0, Price: 1},
		{PxX: 100, PxY: 100, Time: 10, Price: 2},
	}
	m.pointerMove(CrosshairMagnet, 90, 95, slots)
	if m.crosshair.SnappedTime == nil || *m.crosshair.SnappedTime != 10 {
		t.Fatalf("expected snap to the nearer slot at time 10, got %+v", m.crosshair.SnappedTime)
	}
	if m.crosshair.SnappedPrice == nil || *m.crosshair.SnappedPrice != 2 {
		t.Fatalf("expected snap price 2, got %+v", m.crosshair.SnappedPrice)
	}
}

func TestPointerLeaveHidesCrosshair(t *testing.T) {
	m := newInteractionMachine()
	m.pointerMove(CrosshairNormal, 5, 5, nil)
	m.pointerLeave()
	if m.crosshair.Visible {
		t.Fatalf("expected pointer leave to hide the crosshair")
	}
}

func TestPanStartGatedByBehavior(t *testing.T) {
	m := newInteractionMachine()
	behavior := DefaultBehaviorConfig()
	behavior.Interaction.ScrollPressedMouseMove = false
	m.panStart(behavior)
	if m.state != StateIdle {
		t.Fatalf("expected pan start to be a no-op when drag pan is disabled, got state %v", m.state)
	}

	behavior.Interaction.ScrollPressedMouseMove = true
	m.panStart(behavior)
	if m.state != StatePanning {
		t.Fatalf("expected pan start to enter Panning, got %v", m.state)
	}
	m.panEnd()
	if m.state != StateIdle {
		t.Fatalf("expected pan end to return to Idle, got %v", m.state)
	}
}

func TestKineticPanDecaysToIdle(t *testing.T) {
	m := newInteractionMachine()
	m.startKineticPan(500)
	if m.state != StateKineticPanning {
		t.Fatalf("expected kinetic pan to start in KineticPanning")
	}
	total := 0.0
	for i := 0; i < 200 && m.state == StateKineticPanning; i++ {
		total += m.stepKineticPan(0.05)
	}
	if m.state != StateIdle {
		t.Fatalf("expected kinetic pan to eventually decay to Idle")
	}
	if total == 0 {
		t.Fatalf("expected kinetic pan to have produced nonzero displacement")
	}
}

func TestStepKineticPanNoopOutsideKineticState(t *testing.T) {
	m := newInteractionMachine()
	if delta := m.stepKineticPan(0.1); delta != 0 {
		t.Fatalf("expected no displacement while Idle, got %v", delta)
	}
}

func TestAxisDragScaleAndDoubleClickResetGating(t *testing.T) {
	m := newInteractionMachine()
	behavior := DefaultBehaviorConfig()
	behavior.Interaction.ScaleAxisPressedMouseMove = false
	behavior.Interaction.ScaleAxisDoubleClickReset = false
	if m.allowsAxisDragScale(behavior) {
		t.Fatalf("expected axis drag scale disallowed with its flag switched off")
	}
	if m.allowsAxisDoubleClickReset(behavior) {
		t.Fatalf("expected axis double click reset disallowed with its flag switched off")
	}

	behavior.Interaction.HandleScale = true
	behavior.Interaction.ScaleAxisPressedMouseMove = true
	behavior.Interaction.ScaleAxisDoubleClickReset = true
	if !m.allowsAxisDragScale(behavior) {
		t.Fatalf("expected axis drag scale allowed once enabled")
	}
	if !m.allowsAxisDoubleClickReset(behavior) {
		t.Fatalf("expected axis double click reset allowed once enabled")
	}
}

func TestNearestFilledSlotEmpty(t *testing.T) {
	if _, ok := nearestFilledSlot(0, 0, nil); ok {
		t.Fatalf("expected no slot found in an empty set")
	}
}
