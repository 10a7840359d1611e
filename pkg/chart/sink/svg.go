package sink

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
	"github.com/parentevalerio/infovis-trees/pkg/chart/styles"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/scale"
)

const shapeInteractionCSS = `
    .shape { cursor: pointer; transition: opacity 0.2s ease; }
    .shape:hover { opacity: 0.75; }
    .tree { transition: transform 0.4s ease; }
    a { cursor: pointer; }`

// The reorder script sorts the tree groups ascending by the clicked
// shape's trait and slides each group to the band of its new position.
// Band centers are fixed, so the axis labels are reassigned in place
// rather than moved. Array.prototype.sort is stable, which keeps a
// repeated click on the same trait a no-op.
const shapeInteractionJS = `
    const step = %g;
    const trees = Array.from(document.querySelectorAll('#trees .tree'));
    function reorder(trait) {
      const sorted = trees.slice().sort((a, b) =>
        parseFloat(a.getAttribute('data-' + trait)) - parseFloat(b.getAttribute('data-' + trait)));
      sorted.forEach((g, i) => {
        const dx = (i - parseInt(g.getAttribute('data-index'), 10)) * step;
        g.setAttribute('transform', 'translate(' + dx + ',0)');
      });
      const labels = document.querySelectorAll('#axis-x text');
      sorted.forEach((g, i) => { if (labels[i]) labels[i].textContent = g.getAttribute('data-tree'); });
    }
    document.querySelectorAll('.shape').forEach(el => {
      el.addEventListener('click', () => reorder(el.getAttribute('data-trait')));
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    styles.Style
	script   bool
	sortBase string
	title    string
}

// WithStyle selects the visual style (default [styles.Flat]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithReorderScript embeds the client-side click-to-reorder script.
// Intended for standalone SVG files opened in a browser.
func WithReorderScript() SVGOption { return func(r *svgRenderer) { r.script = true } }

// WithSortLinks wraps every shape in a link to base with the shape's
// trait as the sort query parameter. Intended for server-rendered charts
// where reordering is a round trip instead of a script.
func WithSortLinks(base string) SVGOption { return func(r *svgRenderer) { r.sortBase = base } }

// WithTitle adds an SVG <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders the layout as a self-contained SVG document. The
// trait color assignment is positional over the layout's stacking order,
// matching the shape assignment made during layout.
func RenderSVG(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)

	traits := traitOrder(l)
	colors, err := scale.NewColorScale(traits)
	if err != nil {
		return nil, err
	}

	f := l.Frame
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", r.title)
	}

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, region("sky", l.Sky))
	r.style.RenderBackground(&buf, region("ground", l.Ground))

	buf.WriteString(`  <g id="trees">` + "\n")
	for i, tree := range l.Trees {
		r.renderTree(&buf, tree, i, colors)
	}
	buf.WriteString("  </g>\n")

	renderAxes(&buf, r.style, l)

	if r.script {
		renderShapeInteraction(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Flat{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// traitOrder recovers the stacking order from the first tree's shapes.
// Layout construction guarantees every tree carries the same traits.
func traitOrder(l *layout.Layout) []dataset.Trait {
	if len(l.Trees) == 0 {
		return nil
	}
	t := l.Trees[0]
	var traits []dataset.Trait
	if len(t.Roots) > 0 {
		traits = append(traits, t.Roots[0].Trait)
	}
	if t.Trunk != nil {
		traits = append(traits, t.Trunk.Trait)
	}
	if t.Crown != nil {
		traits = append(traits, t.Crown.Trait)
	}
	if len(t.Fruit) > 0 {
		traits = append(traits, t.Fruit[0].Trait)
	}
	return traits
}

func (r *svgRenderer) renderTree(buf *bytes.Buffer, tree layout.Tree, index int, colors *scale.Ordinal[string]) {
	fmt.Fprintf(buf, `  <g class="tree" data-tree="%s" data-index="%d"%s>`+"\n",
		tree.ID, index, scoreAttrs(tree))

	for _, ln := range tree.Roots {
		r.openLink(buf, ln.Trait)
		r.style.RenderLine(buf, styles.Line{
			Shape: shapeFor(ln.Mark, colors),
			X1:    ln.X1, Y1: ln.Y1, X2: ln.X2, Y2: ln.Y2,
		})
		r.closeLink(buf)
	}
	if t := tree.Trunk; t != nil {
		r.openLink(buf, t.Trait)
		r.style.RenderRect(buf, styles.Rect{
			Shape: shapeFor(t.Mark, colors),
			X:     t.X, Y: t.Y, W: t.W, H: t.H,
		})
		r.closeLink(buf)
	}
	if c := tree.Crown; c != nil {
		r.openLink(buf, c.Trait)
		r.style.RenderEllipse(buf, styles.Ellipse{
			Shape: shapeFor(c.Mark, colors),
			CX:    c.CX, CY: c.CY, RX: c.RX, RY: c.RY,
		})
		r.closeLink(buf)
	}
	for _, c := range tree.Fruit {
		r.openLink(buf, c.Trait)
		r.style.RenderCircle(buf, styles.Circle{
			Shape: shapeFor(c.Mark, colors),
			CX:    c.CX, CY: c.CY, R: c.R,
		})
		r.closeLink(buf)
	}

	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) openLink(buf *bytes.Buffer, trait dataset.Trait) {
	if r.sortBase == "" {
		return
	}
	fmt.Fprintf(buf, `  <a href="%s?sort=%s">`+"\n", r.sortBase, url.QueryEscape(string(trait)))
}

func (r *svgRenderer) closeLink(buf *bytes.Buffer) {
	if r.sortBase == "" {
		return
	}
	buf.WriteString("  </a>\n")
}

// scoreAttrs exposes every trait score as a data attribute on the tree
// group, which is all the state the reorder script needs.
func scoreAttrs(tree layout.Tree) string {
	var b bytes.Buffer
	if len(tree.Roots) > 0 {
		fmt.Fprintf(&b, ` data-%s="%g"`, tree.Roots[0].Trait, tree.Roots[0].Score)
	}
	if tree.Trunk != nil {
		fmt.Fprintf(&b, ` data-%s="%g"`, tree.Trunk.Trait, tree.Trunk.Score)
	}
	if tree.Crown != nil {
		fmt.Fprintf(&b, ` data-%s="%g"`, tree.Crown.Trait, tree.Crown.Score)
	}
	if len(tree.Fruit) > 0 {
		fmt.Fprintf(&b, ` data-%s="%g"`, tree.Fruit[0].Trait, tree.Fruit[0].Score)
	}
	return b.String()
}

func shapeFor(m layout.Mark, colors *scale.Ordinal[string]) styles.Shape {
	color, _ := colors.Value(m.Trait)
	return styles.Shape{Tree: string(m.Tree), Trait: string(m.Trait), Color: color}
}

func region(name string, r layout.Rect) styles.Region {
	return styles.Region{Name: name, X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func renderAxes(buf *bytes.Buffer, style styles.Style, l *layout.Layout) {
	f := l.Frame

	buf.WriteString(`  <g id="axis-x">` + "\n")
	style.RenderAxisX(buf, styles.Axis{
		Ticks: axisTicks(l.XTicks),
		Start: f.PlotLeft(), End: f.PlotRight(), Cross: f.PlotBottom(),
	})
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g id="axis-y">` + "\n")
	style.RenderAxisY(buf, styles.Axis{
		Ticks: axisTicks(l.YTicks),
		Start: f.PlotBottom(), End: f.PlotTop(), Cross: f.PlotLeft(),
	})
	buf.WriteString("  </g>\n")
}

func axisTicks(ticks []layout.Tick) []styles.Tick {
	out := make([]styles.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = styles.Tick{Pos: t.Pos, Label: t.Label}
	}
	return out
}

func renderShapeInteraction(buf *bytes.Buffer, l *layout.Layout) {
	step := 0.0
	if len(l.XTicks) > 1 {
		step = l.XTicks[1].Pos - l.XTicks[0].Pos
	}
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", shapeInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA["+shapeInteractionJS+"\n  ]]></script>\n", step)
}
