// layered_frame.go - the per-pane layered frame and its flattened form

package render

import "github.com/lucasmanoguerra/chart-go/core"

// PaneLayerFrame is one pane's ordered layer stack, positioned within the
// plot strip.
type PaneLayerFrame struct {
	PaneID    int
	PlotTop   float64
	PlotBottom float64
	Layers    []Layer
}

// LayerByKind returns a pointer to the layer of the given kind, or nil if
// absent (it is always present by construction of NewLayerStack, but nil
// is returned defensively for frames built by hand in tests).
func (p *PaneLayerFrame) LayerByKind(kind LayerKind) *Layer {
	for i := range p.Layers {
		if p.Layers[i].Kind == kind {
			return &p.Layers[i]
		}
	}
	return nil
}

// LayeredRenderFrame is the full per-pane layered output of the render
// frame builder.
type LayeredRenderFrame struct {
	Viewport core.Viewport
	Panes    []PaneLayerFrame
}

// RenderFrame is the flattened, backend-consumable form: all primitives in
// composition order across all panes, without per-layer or per-pane
// boundaries. Backends that do not need partial-repaint structure can
// consume this directly.
type RenderFrame struct {
	Viewport core.Viewport
	Lines    []core.LinePrimitive
	Rects    []core.RectPrimitive
	Texts    []core.TextPrimitive
}

// Flatten concatenates every pane's layers, in composition order, into a
// single RenderFrame.
func (f LayeredRenderFrame) Flatten() RenderFrame {
	out := RenderFrame{Viewport: f.Viewport}
	for _, pane := range f.Panes {
		for _, layer := range pane.Layers {
			out.Lines = append(out.Lines, layer.Lines...)
			out.Rects = append(out.Rects, layer.Rects...)
			out.Texts = append(out.Texts, layer.Texts...)
		}
	}
	return out
}
