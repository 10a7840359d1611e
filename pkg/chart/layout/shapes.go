package layout

import "github.com/parentevalerio/infovis-trees/pkg/dataset"

// Frame describes the drawing surface in user units (pixels in SVG).
type Frame struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginLeft   float64 `json:"marginLeft"`
	MarginRight  float64 `json:"marginRight"`
	MarginTop    float64 `json:"marginTop"`
	MarginBottom float64 `json:"marginBottom"`
}

// DefaultFrame returns the standard 3000x800 surface.
func DefaultFrame() Frame {
	return Frame{
		Width:        3000,
		Height:       800,
		MarginLeft:   40,
		MarginRight:  10,
		MarginTop:    20,
		MarginBottom: 30,
	}
}

// PlotLeft returns the left edge of the plot area.
func (f Frame) PlotLeft() float64 { return f.MarginLeft }

// PlotRight returns the right edge of the plot area.
func (f Frame) PlotRight() float64 { return f.Width - f.MarginRight }

// PlotTop returns the top edge of the plot area.
func (f Frame) PlotTop() float64 { return f.MarginTop }

// PlotBottom returns the bottom edge of the plot area.
func (f Frame) PlotBottom() float64 { return f.Height - f.MarginBottom }

// Mark is the typed identity every tree shape carries. Trait and score
// are fixed when the shape is constructed, never recovered from rendered
// output.
type Mark struct {
	Tree  dataset.TreeID `json:"tree"`
	Trait dataset.Trait  `json:"trait"`
	Score float64        `json:"score"`
}

// Line is a straight segment, used for root strands.
type Line struct {
	Mark
	X1, Y1 float64
	X2, Y2 float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Mark
	X, Y float64
	W, H float64
}

// Bottom returns the y coordinate of the rectangle's lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Ellipse is centered at (CX, CY) with horizontal and vertical radii.
type Ellipse struct {
	Mark
	CX, CY float64
	RX, RY float64
}

// Circle is centered at (CX, CY) with radius R.
type Circle struct {
	Mark
	CX, CY float64
	R      float64
}

// Tick is one axis tick: a pixel position plus its label. Value holds
// the data-space value for y ticks and is zero for x ticks.
type Tick struct {
	Pos   float64 `json:"pos"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}
