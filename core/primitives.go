// primitives.go - the primitive contract handed to rasterizer backends

package core

// StrokeStyle selects a line dash pattern. Backends render it without
// modification.
type StrokeStyle int

const (
	StrokeSolid StrokeStyle = iota
	StrokeDashed
	StrokeDotted
)

// HAlign selects horizontal text anchoring.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// Color is a packed RGBA color; backends interpret the channel order.
type Color struct {
	R, G, B, A uint8
}

// LinePrimitive is a single straight stroke segment.
type LinePrimitive struct {
	X1, Y1, X2, Y2 float64
	StrokeWidth    float64
	Color          Color
	StrokeStyle    StrokeStyle
}

// RectPrimitive is an axis-aligned filled/stroked rectangle.
type RectPrimitive struct {
	X, Y, Width, Height float64
	FillColor           Color
	BorderWidth         float64
	BorderColor         Color
	CornerRadius        float64
}

// TextPrimitive is a single run of text anchored at (X, Y).
type TextPrimitive struct {
	Text       string
	X, Y       float64
	FontSizePx float64
	Color      Color
	HAlign     HAlign
}
