package styles

import (
	"bytes"
	"fmt"
)

const (
	flatSkyColor    = "#e3f2fd"
	flatGroundColor = "#efebe9"
	flatAxisColor   = "#424242"
	flatTickLen     = 6.0
	flatFontSize    = 14.0
)

// Flat is the default style: solid trait colors, thin axis lines, no
// texture. It is the cheapest style to rasterize.
type Flat struct{}

// NewFlat returns the default flat style.
func NewFlat() Flat { return Flat{} }

func (Flat) RenderDefs(buf *bytes.Buffer) {}

func (Flat) RenderBackground(buf *bytes.Buffer, r Region) {
	fmt.Fprintf(buf, `  <rect class="region region-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		r.Name, r.X, r.Y, r.W, r.H, regionColor(r.Name))
}

func (Flat) RenderLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `  <line class="shape" %s x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" stroke-linecap="round"/>`+"\n",
		shapeAttrs(l.Shape), l.X1, l.Y1, l.X2, l.Y2, l.Color)
}

func (Flat) RenderRect(buf *bytes.Buffer, r Rect) {
	fmt.Fprintf(buf, `  <rect class="shape" %s x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		shapeAttrs(r.Shape), r.X, r.Y, r.W, r.H, r.Color)
}

func (Flat) RenderEllipse(buf *bytes.Buffer, e Ellipse) {
	fmt.Fprintf(buf, `  <ellipse class="shape" %s cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s"/>`+"\n",
		shapeAttrs(e.Shape), e.CX, e.CY, e.RX, e.RY, e.Color)
}

func (Flat) RenderCircle(buf *bytes.Buffer, c Circle) {
	fmt.Fprintf(buf, `  <circle class="shape" %s cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
		shapeAttrs(c.Shape), c.CX, c.CY, c.R, c.Color)
}

func (Flat) RenderAxisX(buf *bytes.Buffer, a Axis) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
		a.Start, a.Cross, a.End, a.Cross, flatAxisColor)
	for _, t := range a.Ticks {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			t.Pos, a.Cross, t.Pos, a.Cross+flatTickLen, flatAxisColor)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" fill="%s">%s</text>`+"\n",
			t.Pos, a.Cross+flatTickLen+flatFontSize, flatFontSize, flatAxisColor, escapeText(t.Label))
	}
}

func (Flat) RenderAxisY(buf *bytes.Buffer, a Axis) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
		a.Cross, a.Start, a.Cross, a.End, flatAxisColor)
	for _, t := range a.Ticks {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			a.Cross-flatTickLen, t.Pos, a.Cross, t.Pos, flatAxisColor)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="end" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
			a.Cross-flatTickLen-4, t.Pos, flatFontSize, flatAxisColor, escapeText(t.Label))
	}
}

func regionColor(name string) string {
	if name == "ground" {
		return flatGroundColor
	}
	return flatSkyColor
}
