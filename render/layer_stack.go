// layer_stack.go - ordered layer kinds for a single pane's render stack

package render

import "github.com/lucasmanoguerra/chart-go/core"

// LayerKind identifies one of the fixed composition layers within a pane.
// Composition order is always Background -> Grid -> Series -> Overlay ->
// Crosshair -> Axis (spec.md §4.8).
type LayerKind int

const (
	LayerBackground LayerKind = iota
	LayerGrid
	LayerSeries
	LayerOverlay
	LayerCrosshair
	LayerAxis
)

// AllLayerKinds lists every layer kind in composition order.
var AllLayerKinds = [...]LayerKind{
	LayerBackground, LayerGrid, LayerSeries, LayerOverlay, LayerCrosshair, LayerAxis,
}

func (k LayerKind) String() string {
	switch k {
	case LayerBackground:
		return "Background"
	case LayerGrid:
		return "Grid"
	case LayerSeries:
		return "Series"
	case LayerOverlay:
		return "Overlay"
	case LayerCrosshair:
		return "Crosshair"
	case LayerAxis:
		return "Axis"
	default:
		return "Unknown"
	}
}

// Layer holds the ordered primitive collections for one LayerKind.
type Layer struct {
	Kind  LayerKind
	Lines []core.LinePrimitive
	Rects []core.RectPrimitive
	Texts []core.TextPrimitive
}

// IsEmpty reports whether the layer carries no primitives at all.
func (l Layer) IsEmpty() bool {
	return len(l.Lines) == 0 && len(l.Rects) == 0 && len(l.Texts) == 0
}

// NewLayerStack builds the six fixed, empty layers in composition order.
func NewLayerStack() []Layer {
	stack := make([]Layer, len(AllLayerKinds))
	for i, k := range AllLayerKinds {
		stack[i] = Layer{Kind: k}
	}
	return stack
}
