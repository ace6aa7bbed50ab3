// interaction.go - the pointer/crosshair/pan state machine (spec.md §4.5).

package chartgo

import (
	"math"

	"github.com/lucasmanoguerra/chart-go/core"
)

// InteractionState identifies which of the three pointer states is active.
type InteractionState int

const (
	StateIdle InteractionState = iota
	StatePanning
	StateKineticPanning
)

// CrosshairState is the current crosshair position and any snapped values.
type CrosshairState struct {
	Visible bool
	X, Y    float64

	SnappedX     *float64
	SnappedY     *float64
	SnappedTime  *float64
	SnappedPrice *float64
}

// filledSlot is a candidate snap target for Magnet mode: a data sample's
// pixel position plus the domain (time, price) it represents.
type filledSlot struct {
	PxX, PxY   float64
	Time, Price float64
}

// kineticPanState is the decaying-velocity state tracked while
// StateKineticPanning.
type kineticPanState struct {
	VelocityPerSec float64 // domain units per second
}

// interactionMachine is the pointer state machine plus its crosshair.
type interactionMachine struct {
	state     InteractionState
	crosshair CrosshairState
	kinetic   kineticPanState
}

func newInteractionMachine() *interactionMachine {
	return &interactionMachine{}
}

// kineticPanDecayPerSecond is the exponential decay constant applied to
// kinetic-pan velocity; matches a ~250ms half-life.
const kineticPanDecayPerSecond = 2.77

// kineticPanStopThreshold is the velocity magnitude (domain units/sec)
// below which kinetic panning transitions back to Idle.
const kineticPanStopThreshold = 1e-4

// pointerMove updates the crosshair for the given pixel position, per the
// active CrosshairMode. slots is the set of candidate filled-slot
// positions consulted in Magnet mode; pass nil/empty outside Magnet mode.
func (m *interactionMachine) pointerMove(mode CrosshairMode, x, y float64, slots []filledSlot) {
	if mode == CrosshairHidden {
		m.crosshair = CrosshairState{Visible: false}
		return
	}
	m.crosshair.Visible = true
	m.crosshair.X, m.crosshair.Y = x, y
	m.crosshair.SnappedX, m.crosshair.SnappedY = nil, nil
	m.crosshair.SnappedTime, m.crosshair.SnappedPrice = nil, nil

	if mode != CrosshairMagnet || len(slots) == 0 {
		return
	}
	best := slots[0]
	bestDist := math.Hypot(best.PxX-x, best.PxY-y)
	for _, s := range slots[1:] {
		d := math.Hypot(s.PxX-x, s.PxY-y)
		if d < bestDist {
			best, bestDist = s, d
		}
	}
	px, py, t, price := best.PxX, best.PxY, best.Time, best.Price
	m.crosshair.SnappedX = &px
	m.crosshair.SnappedY = &py
	m.crosshair.SnappedTime = &t
	m.crosshair.SnappedPrice = &price
}

// pointerLeave hides the crosshair.
func (m *interactionMachine) pointerLeave() {
	m.crosshair = CrosshairState{Visible: false}
}

// panStart transitions Idle -> Panning iff the behavior allows drag pan;
// otherwise a no-op.
func (m *interactionMachine) panStart(behavior BehaviorConfig) {
	if !behavior.Interaction.HandleScroll || !behavior.Interaction.ScrollPressedMouseMove {
		return
	}
	m.state = StatePanning
}

// panEnd transitions back to Idle from Panning.
func (m *interactionMachine) panEnd() {
	if m.state == StatePanning {
		m.state = StateIdle
	}
}

// startKineticPan transitions into KineticPanning with the given initial
// velocity (domain units per second).
func (m *interactionMachine) startKineticPan(velocityPerSec float64) {
	m.state = StateKineticPanning
	m.kinetic = kineticPanState{VelocityPerSec: velocityPerSec}
}

// stepKineticPan advances kinetic-pan velocity by dt seconds of
// exponential decay, returning the domain-space delta to apply this step.
// Transitions to Idle once the velocity magnitude drops below threshold.
func (m *interactionMachine) stepKineticPan(dt float64) float64 {
	if m.state != StateKineticPanning || dt <= 0 {
		return 0
	}
	delta := m.kinetic.VelocityPerSec * dt
	decay := math.Exp(-kineticPanDecayPerSecond * dt)
	m.kinetic.VelocityPerSec *= decay
	if math.Abs(m.kinetic.VelocityPerSec) < kineticPanStopThreshold {
		m.state = StateIdle
	}
	return delta
}

// allowsAxisDragScale reports whether an axis-drag-scale gesture (on either
// axis) is currently permitted.
func (m *interactionMachine) allowsAxisDragScale(behavior BehaviorConfig) bool {
	return behavior.Interaction.AllowsAxisDragScale()
}

func (m *interactionMachine) allowsAxisDoubleClickReset(behavior BehaviorConfig) bool {
	return behavior.Interaction.AllowsAxisDoubleClickReset()
}

// nearestFilledSlot finds the filled slot nearest to (x, y) by Euclidean
// pixel distance, or false if slots is empty. pointerMove does not call it;
// it runs the same scan inline.
func nearestFilledSlot(x, y float64, slots []filledSlot) (filledSlot, bool) {
	if len(slots) == 0 {
		return filledSlot{}, false
	}
	best := slots[0]
	bestDist := math.Hypot(best.PxX-x, best.PxY-y)
	for _, s := range slots[1:] {
		d := math.Hypot(s.PxX-x, s.PxY-y)
		if d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}

// buildFilledSlots projects points/candles into pixel-space filled slots
// for Magnet-mode snapping: one slot per point and one per candle close.
// It takes no TimeCoordinateIndexPolicy; BehaviorConfig.TimeIndexPolicy is
// not consulted here or by pointerMove.
func buildFilledSlots(points []core.DataPoint, candles []core.OhlcBar, timeScale func(float64) (float64, error), priceScale func(float64) (float64, error)) []filledSlot {
	out := make([]filledSlot, 0, len(points)+len(candles))
	for _, p := range points {
		x, errX := timeScale(p.X)
		y, errY := priceScale(p.Y)
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, filledSlot{PxX: x, PxY: y, Time: p.X, Price: p.Y})
	}
	for _, c := range candles {
		x, errX := timeScale(c.Time)
		y, errY := priceScale(c.Close)
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, filledSlot{PxX: x, PxY: y, Time: c.Time, Price: c.Close})
	}
	return out
}
