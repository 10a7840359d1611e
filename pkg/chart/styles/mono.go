package styles

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	monoInk   = "#212121"
	monoPaper = "#fafafa"
)

// Mono is a grayscale outline style for print output. Trait colors are
// ignored; shapes are distinguished by outline only.
type Mono struct{}

// NewMono returns the print-friendly monochrome style.
func NewMono() Mono { return Mono{} }

func (Mono) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs><pattern id="hatch" width="6" height="6" patternUnits="userSpaceOnUse" patternTransform="rotate(45)"><line x1="0" y1="0" x2="0" y2="6" stroke="%s" stroke-width="1"/></pattern></defs>`+"\n", monoInk)
}

func (Mono) RenderBackground(buf *bytes.Buffer, r Region) {
	fill := monoPaper
	if r.Name == "ground" {
		fill = "url(#hatch)"
	}
	fmt.Fprintf(buf, `  <rect class="region region-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
		r.Name, r.X, r.Y, r.W, r.H, fill, monoInk)
}

func (Mono) RenderLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `  <line class="shape" %s x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		shapeAttrs(l.Shape), l.X1, l.Y1, l.X2, l.Y2, monoInk)
}

func (Mono) RenderRect(buf *bytes.Buffer, r Rect) {
	fmt.Fprintf(buf, `  <rect class="shape" %s x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		shapeAttrs(r.Shape), r.X, r.Y, r.W, r.H, monoPaper, monoInk)
}

func (Mono) RenderEllipse(buf *bytes.Buffer, e Ellipse) {
	fmt.Fprintf(buf, `  <ellipse class="shape" %s cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		shapeAttrs(e.Shape), e.CX, e.CY, e.RX, e.RY, monoPaper, monoInk)
}

func (Mono) RenderCircle(buf *bytes.Buffer, c Circle) {
	fmt.Fprintf(buf, `  <circle class="shape" %s cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		shapeAttrs(c.Shape), c.CX, c.CY, c.R, monoInk, monoInk)
}

// Axes share the flat rendering; they are already monochrome.
func (Mono) RenderAxisX(buf *bytes.Buffer, a Axis) { Flat{}.RenderAxisX(buf, a) }
func (Mono) RenderAxisY(buf *bytes.Buffer, a Axis) { Flat{}.RenderAxisY(buf, a) }

// shapeAttrs renders the identity data attributes shared by every tree
// shape. The click script reads these instead of inspecting geometry.
func shapeAttrs(s Shape) string {
	return fmt.Sprintf(`data-tree="%s" data-trait="%s"`, escapeText(s.Tree), escapeText(s.Trait))
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeText(s string) string { return textEscaper.Replace(s) }
