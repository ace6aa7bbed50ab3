// scheduling.go - invalidation bookkeeping and the partial-repaint planner
// (spec.md §4.9).

package chartgo

import (
	"sort"

	"github.com/lucasmanoguerra/chart-go/render"
)

// parityTimeScaleIntent is the pending parity time-scale intent recorded by
// a coordinator call and drained into a specific TimeScaleInvalidation the
// next time invalidateWithDetail runs, per spec.md §4.9's "drains any
// pending time-scale intent" step.
type parityTimeScaleIntent int

const (
	tsIntentNone parityTimeScaleIntent = iota
	tsIntentFitContent
	tsIntentApplyRange
	tsIntentApplyBarSpacing
	tsIntentApplyRightOffset
	tsIntentReset
)

// invalidationScheduler owns the pending API mask and the parity mask it is
// kept in sync with, plus the intent drained on the next invalidation call.
type invalidationScheduler struct {
	pending InvalidationMask
	parity  *ParityMask

	intentKind    parityTimeScaleIntent
	intentRange   LogicalRange
	intentSpacing float64
	intentOffset  float64

	panTargets map[PaneID]bool
}

func newInvalidationScheduler() *invalidationScheduler {
	return &invalidationScheduler{parity: NewParityMask(ParityNone), panTargets: make(map[PaneID]bool)}
}

// markTimeScaleIntent records the pending time-scale intent a coordinator
// call produced, to be drained by the next invalidateWithDetail.
func (s *invalidationScheduler) markTimeScaleIntent(kind parityTimeScaleIntent, r LogicalRange, spacing, offset float64) {
	s.intentKind = kind
	s.intentRange = r
	s.intentSpacing = spacing
	s.intentOffset = offset
}

// paneTarget is an optional pane_target argument to invalidateWithDetail.
type paneTarget struct {
	Pane      PaneID
	AutoScale bool
	set       bool
}

func noPaneTarget() paneTarget { return paneTarget{} }

func forPane(id PaneID, autoScale bool) paneTarget {
	return paneTarget{Pane: id, AutoScale: autoScale, set: true}
}

// invalidateWithDetail unions topics into the pending API mask, maxes the
// level, records the equivalent parity mask entry, and drains any pending
// time-scale intent — the single entry point every state-mutating
// coordinator call routes through (spec.md §4.9).
func (s *invalidationScheduler) invalidateWithDetail(level InvalidationLevel, topics InvalidationTopics, target paneTarget) {
	s.pending.Merge(InvalidationMask{Level: level, Topics: topics})
	s.parity.GlobalLevel = s.parity.GlobalLevel.Max(parityFromAPILevel(level))

	if target.set {
		s.parity.InvalidatePane(target.Pane, PaneInvalidation{Level: parityFromAPILevel(level), AutoScale: target.AutoScale})
		s.panTargets[target.Pane] = true
	}

	s.drainTimeScaleIntent()
}

func (s *invalidationScheduler) drainTimeScaleIntent() {
	switch s.intentKind {
	case tsIntentFitContent:
		s.parity.SetFitContent()
	case tsIntentApplyRange:
		s.parity.ApplyRange(s.intentRange)
	case tsIntentApplyBarSpacing:
		s.parity.SetBarSpacing(s.intentSpacing)
	case tsIntentApplyRightOffset:
		s.parity.SetRightOffset(s.intentOffset)
	case tsIntentReset:
		s.parity.ResetTimeScale()
	default:
		return
	}
	s.intentKind = tsIntentNone
}

// PendingInvalidation returns the current pending API mask.
func (s *invalidationScheduler) PendingInvalidation() InvalidationMask {
	return s.pending
}

// HasPendingInvalidationTopic reports whether topic is set in the pending
// API mask.
func (s *invalidationScheduler) HasPendingInvalidationTopic(topic InvalidationTopic) bool {
	return s.pending.Topics.Contains(topic)
}

// PendingInvalidationPaneTargets returns the panes with an explicit pending
// invalidation (API-hinted, not just inherited from the global level).
func (s *invalidationScheduler) PendingInvalidationPaneTargets() []PaneID {
	out := make([]PaneID, 0, len(s.panTargets))
	for id := range s.panTargets {
		out = append(out, id)
	}
	return out
}

// clear resets the pending API mask, parity mask, and pane-target hints
// after a frame has been built and consumed.
func (s *invalidationScheduler) clear() {
	s.pending.Clear()
	s.parity = NewParityMask(ParityNone)
	s.panTargets = make(map[PaneID]bool)
}

// PartialPlan names the subset of panes and layers a partial repaint should
// re-emit, per spec.md §4.9.
type PartialPlan struct {
	Panes  []PaneID
	Layers []render.LayerKind
}

var cursorLayers = []render.LayerKind{render.LayerBackground, render.LayerOverlay, render.LayerCrosshair}
var lightLayers = []render.LayerKind{render.LayerBackground, render.LayerGrid, render.LayerSeries, render.LayerOverlay, render.LayerCrosshair}

// BuildPartialPlan resolves a partial-repaint plan from the scheduler's
// current pending state, or reports ok=false when any gate fails and a full
// render is required instead (spec.md §4.9).
func (s *invalidationScheduler) BuildPartialPlan(paneIDs []PaneID, mainPaneHasAxisContent bool) (PartialPlan, bool) {
	if len(paneIDs) <= 1 {
		return PartialPlan{}, false
	}
	level := s.pending.Level
	if level != InvalidationCursor && level != InvalidationLight {
		return PartialPlan{}, false
	}
	if s.parity.HasTimeScaleMutation() {
		return PartialPlan{}, false
	}
	if s.parity.AnyPaneRequestsAutoScale() {
		return PartialPlan{}, false
	}
	if s.pending.Topics.Contains(TopicTimeScale) {
		return PartialPlan{}, false
	}

	layers := lightLayers
	if level == InvalidationCursor {
		layers = cursorLayers
	}

	panes := restrictToKnown(explicitParityPaneList(s.parity), paneIDs)
	if len(panes) == 0 {
		panes = restrictToKnown(s.PendingInvalidationPaneTargets(), paneIDs)
	}
	if len(panes) == 0 {
		panes = append([]PaneID(nil), paneIDs...)
	}

	if mainPaneHasAxisContent && !containsPane(panes, MainPaneID) {
		layers = append(append([]render.LayerKind(nil), layers...), render.LayerAxis)
		panes = append(panes, MainPaneID)
	}
	sort.Slice(panes, func(i, j int) bool { return panes[i] < panes[j] })

	return PartialPlan{Panes: panes, Layers: layers}, true
}

func explicitParityPaneList(parity *ParityMask) []PaneID {
	explicit := parity.ExplicitPaneInvalidations()
	if len(explicit) == 0 {
		return nil
	}
	out := make([]PaneID, 0, len(explicit))
	for id := range explicit {
		out = append(out, id)
	}
	return out
}

func restrictToKnown(hints []PaneID, known []PaneID) []PaneID {
	if len(hints) == 0 {
		return nil
	}
	knownSet := make(map[PaneID]bool, len(known))
	for _, id := range known {
		knownSet[id] = true
	}
	out := make([]PaneID, 0, len(hints))
	for _, id := range hints {
		if knownSet[id] {
			out = append(out, id)
		}
	}
	return out
}

func containsPane(panes []PaneID, id PaneID) bool {
	for _, p := range panes {
		if p == id {
			return true
		}
	}
	return false
}
