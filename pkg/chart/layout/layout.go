// Package layout turns a stacked series and a pair of scales into
// positioned shape primitives. It knows nothing about SVG or any other
// output format; sinks consume the computed geometry.
//
// Every tree's stack is shifted in value space by groundLevel minus that
// tree's own root score before the vertical scale is applied, so all
// trunks stand on one shared ground line no matter how deep each tree's
// roots reach.
package layout

import (
	"math"
	"strconv"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
	"github.com/parentevalerio/infovis-trees/pkg/scale"
	"github.com/parentevalerio/infovis-trees/pkg/series"
)

// flanneryPow is the power-law exponent applied to normalized scores when
// sizing crowns and fruit. Scaling both radii by score^0.57 makes the
// perceived area of a mark track the underlying value (Flannery's
// correction for graduated symbols).
const flanneryPow = 0.57

// Band-relative horizontal anchors for the three root strands.
var rootFan = [3]float64{0.1, 0.5, 0.9}

// fruitDropFraction is the share of the crown score that separates the
// lowest fruit from the trunk top, in value space.
const fruitDropFraction = 0.25

// yTickCount is the target number of vertical axis ticks.
const yTickCount = 8

// Tree holds the positioned shapes of a single tree.
type Tree struct {
	ID      dataset.TreeID
	CenterX float64
	Roots   []Line
	Trunk   *Rect
	Crown   *Ellipse
	Fruit   []Circle
}

// Layout is the complete positioned chart: background bands, per-tree
// shapes, and both axes. It is immutable once built; reordering produces
// a new Layout via Relayout.
type Layout struct {
	Frame       Frame
	GroundLevel float64
	GroundY     float64
	Sky         Rect
	Ground      Rect
	Trees       []Tree
	XTicks      []Tick
	YTicks      []Tick
}

// Build computes the full layout for a dataset against a horizontal band
// ordering. The vertical scale is derived from the series maximum and the
// frame; shape kinds are assigned positionally from the dataset's trait
// order via the shape scale.
func Build(ds *dataset.Dataset, ser *series.Series, frame Frame, band *scale.Band) (*Layout, error) {
	if ds == nil || ser == nil || band == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout requires a dataset, series, and band scale")
	}
	if frame.PlotRight() <= frame.PlotLeft() || frame.PlotBottom() <= frame.PlotTop() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"frame %gx%g leaves no plot area inside its margins", frame.Width, frame.Height)
	}

	shapes, err := scale.NewShapeScale(ds.Traits())
	if err != nil {
		return nil, err
	}
	vert, err := scale.NewLinear(ser.Max(), frame.PlotBottom(), frame.PlotTop())
	if err != nil {
		return nil, err
	}

	ground := ds.GroundLevel()
	groundY := vert.Y(ground)
	rootTrait := ds.RootTrait()

	l := &Layout{
		Frame:       frame,
		GroundLevel: ground,
		GroundY:     groundY,
		Sky: Rect{
			X: frame.PlotLeft(), Y: frame.PlotTop(),
			W: frame.PlotRight() - frame.PlotLeft(),
			H: groundY - frame.PlotTop(),
		},
		Ground: Rect{
			X: frame.PlotLeft(), Y: groundY,
			W: frame.PlotRight() - frame.PlotLeft(),
			H: frame.PlotBottom() - groundY,
		},
	}

	for _, id := range band.Domain() {
		rootScore, ok := ds.Score(id, rootTrait)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal,
				"band domain names unknown tree %s", id)
		}
		// Value-space shift that puts this trunk base on the ground line.
		offset := ground - rootScore

		tree, err := buildTree(ds, ser, shapes, band, vert, id, offset, groundY)
		if err != nil {
			return nil, err
		}
		l.Trees = append(l.Trees, tree)
	}

	l.XTicks = xTicks(band)
	l.YTicks = yTicks(vert)
	return l, nil
}

func buildTree(
	ds *dataset.Dataset,
	ser *series.Series,
	shapes *scale.Ordinal[scale.ShapeKind],
	band *scale.Band,
	vert *scale.Linear,
	id dataset.TreeID,
	offset, groundY float64,
) (Tree, error) {
	cx, _ := band.Center(id)
	left, _ := band.X(id)
	bw := band.Width()

	tree := Tree{ID: id, CenterX: cx}

	// Trunk geometry is needed by the fruit placement below.
	var trunkSpan series.Span
	var crownScore float64

	for _, layer := range ser.Layers {
		span, ok := layer.Spans[id]
		if !ok {
			return Tree{}, errors.New(errors.ErrCodeInternal,
				"series layer %q has no span for tree %s", layer.Trait, id)
		}
		kind, ok := shapes.Value(layer.Trait)
		if !ok {
			return Tree{}, errors.New(errors.ErrCodeInternal,
				"no shape assigned to trait %q", layer.Trait)
		}
		mark := Mark{Tree: id, Trait: layer.Trait, Score: span.Size()}

		switch kind {
		case scale.ShapeRootLines:
			// Strands share one anchor on the ground line and fan out to
			// fixed band offsets at the root layer's full depth.
			depthY := vert.Y(span.Lower + offset)
			for _, f := range rootFan {
				tree.Roots = append(tree.Roots, Line{
					Mark: mark,
					X1:   cx, Y1: groundY,
					X2: left + f*bw, Y2: depthY,
				})
			}

		case scale.ShapeTrunkRect:
			trunkSpan = span
			topY := vert.Y(span.Upper + offset)
			baseY := vert.Y(span.Lower + offset)
			w := bw / 4
			tree.Trunk = &Rect{
				Mark: mark,
				X:    cx - w/2, Y: topY,
				W: w, H: baseY - topY,
			}

		case scale.ShapeCrownOval:
			crownScore = span.Size()
			k := flannerize(span.Size(), ds.MaxScore(layer.Trait))
			tree.Crown = &Ellipse{
				Mark: mark,
				CX:   cx,
				CY:   vert.Y(span.Mid() + offset),
				RX:   bw / 2 * k,
				RY:   vert.Dist(ds.MaxScore(layer.Trait)) / 2 * k,
			}

		case scale.ShapeFruitCircle:
			r := bw / 12 * flannerize(span.Size(), ds.MaxScore(layer.Trait))
			crown := tree.Crown
			if crown == nil {
				return Tree{}, errors.New(errors.ErrCodeInternal,
					"fruit layer %q precedes its crown for tree %s", layer.Trait, id)
			}
			// The lowest fruit hangs a fixed fraction of the crown score
			// above the trunk top; the other two sit in the crown.
			lowY := vert.Y(trunkSpan.Upper + fruitDropFraction*crownScore + offset)
			tree.Fruit = append(tree.Fruit,
				Circle{Mark: mark, CX: cx - crown.RX/2, CY: crown.CY, R: r},
				Circle{Mark: mark, CX: cx + crown.RX/2, CY: crown.CY - crown.RY/2, R: r},
				Circle{Mark: mark, CX: cx, CY: lowY, R: r},
			)
		}
	}

	return tree, nil
}

// flannerize normalizes score against max and applies the perceptual
// power law. A non-positive max yields zero rather than NaN.
func flannerize(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Pow(score/max, flanneryPow)
}

func xTicks(band *scale.Band) []Tick {
	domain := band.Domain()
	ticks := make([]Tick, 0, len(domain))
	for _, id := range domain {
		c, _ := band.Center(id)
		ticks = append(ticks, Tick{Pos: c, Label: string(id)})
	}
	return ticks
}

func yTicks(vert *scale.Linear) []Tick {
	values := vert.Ticks(yTickCount)
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{
			Pos:   vert.Y(v),
			Value: v,
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}
	return ticks
}

// Relayout shifts an existing layout's x positions to a new band
// ordering. Vertical geometry, colors, and shape sizes are untouched;
// only horizontal positions and the x axis change. The band must cover
// exactly the trees of the original layout.
func Relayout(l *Layout, band *scale.Band) (*Layout, error) {
	if l == nil || band == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "relayout requires a layout and a band scale")
	}
	byID := make(map[dataset.TreeID]Tree, len(l.Trees))
	for _, t := range l.Trees {
		byID[t.ID] = t
	}
	domain := band.Domain()
	if len(domain) != len(byID) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"band domain has %d trees, layout has %d", len(domain), len(byID))
	}

	out := &Layout{
		Frame:       l.Frame,
		GroundLevel: l.GroundLevel,
		GroundY:     l.GroundY,
		Sky:         l.Sky,
		Ground:      l.Ground,
		YTicks:      append([]Tick(nil), l.YTicks...),
	}

	for _, id := range domain {
		tree, ok := byID[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"band domain names tree %s missing from layout", id)
		}
		cx, _ := band.Center(id)
		out.Trees = append(out.Trees, shiftTree(tree, cx-tree.CenterX))
	}

	out.XTicks = xTicks(band)
	return out, nil
}

func shiftTree(t Tree, dx float64) Tree {
	out := Tree{ID: t.ID, CenterX: t.CenterX + dx}

	out.Roots = make([]Line, len(t.Roots))
	for i, ln := range t.Roots {
		ln.X1 += dx
		ln.X2 += dx
		out.Roots[i] = ln
	}
	if t.Trunk != nil {
		trunk := *t.Trunk
		trunk.X += dx
		out.Trunk = &trunk
	}
	if t.Crown != nil {
		crown := *t.Crown
		crown.CX += dx
		out.Crown = &crown
	}
	out.Fruit = make([]Circle, len(t.Fruit))
	for i, c := range t.Fruit {
		c.CX += dx
		out.Fruit[i] = c
	}
	return out
}
