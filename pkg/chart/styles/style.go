package styles

import "bytes"

// Style defines the visual appearance for chart rendering.
// Implementations control how backgrounds, tree shapes, and axes are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes one background band (sky or ground).
	RenderBackground(buf *bytes.Buffer, r Region)
	// RenderLine writes a root strand.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderRect writes a trunk rectangle.
	RenderRect(buf *bytes.Buffer, r Rect)
	// RenderEllipse writes a crown ellipse.
	RenderEllipse(buf *bytes.Buffer, e Ellipse)
	// RenderCircle writes a fruit circle.
	RenderCircle(buf *bytes.Buffer, c Circle)
	// RenderAxisX writes the horizontal axis with one tick per tree.
	RenderAxisX(buf *bytes.Buffer, a Axis)
	// RenderAxisY writes the vertical value axis.
	RenderAxisY(buf *bytes.Buffer, a Axis)
}

// Shape carries the attributes shared by every drawn tree primitive.
// Tree and Trait become data attributes on the SVG element so click
// handlers receive a typed identity instead of re-deriving it from
// presentation state.
type Shape struct {
	Tree  string
	Trait string
	Color string
}

// Line is a root strand segment.
type Line struct {
	Shape
	X1, Y1, X2, Y2 float64
}

// Rect is a trunk rectangle.
type Rect struct {
	Shape
	X, Y, W, H float64
}

// Ellipse is a crown.
type Ellipse struct {
	Shape
	CX, CY, RX, RY float64
}

// Circle is a single fruit.
type Circle struct {
	Shape
	CX, CY, R float64
}

// Region is a background band.
type Region struct {
	Name       string // "sky" or "ground"
	X, Y, W, H float64
}

// Tick is one axis tick: pixel position plus label.
type Tick struct {
	Pos   float64
	Label string
}

// Axis describes one chart axis. Cross is the fixed coordinate the axis
// line sits on (y for the horizontal axis, x for the vertical one);
// Start and End bound the line along its own direction.
type Axis struct {
	Ticks      []Tick
	Start, End float64
	Cross      float64
}
