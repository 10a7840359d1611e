package sink

import (
	"encoding/json"

	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	sort  string
}

// WithJSONStyle records the style name (e.g. "flat", "mono") in the
// output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONSort records the trait the chart is currently sorted by, or
// empty for the default total-descending ordering.
func WithJSONSort(trait string) JSONOption { return func(r *jsonRenderer) { r.sort = trait } }

type jsonOutput struct {
	Frame       layout.Frame  `json:"frame"`
	GroundLevel float64       `json:"groundLevel"`
	GroundY     float64       `json:"groundY"`
	Style       string        `json:"style,omitempty"`
	Sort        string        `json:"sort,omitempty"`
	Ordering    []string      `json:"ordering"`
	Trees       []jsonTree    `json:"trees"`
	XTicks      []layout.Tick `json:"xTicks"`
	YTicks      []layout.Tick `json:"yTicks"`
}

type jsonTree struct {
	ID      string       `json:"id"`
	CenterX float64      `json:"centerX"`
	Roots   []jsonLine   `json:"roots"`
	Trunk   *jsonRect    `json:"trunk,omitempty"`
	Crown   *jsonEllipse `json:"crown,omitempty"`
	Fruit   []jsonCircle `json:"fruit,omitempty"`
}

type jsonLine struct {
	Trait string  `json:"trait"`
	Score float64 `json:"score"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

type jsonRect struct {
	Trait string  `json:"trait"`
	Score float64 `json:"score"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"width"`
	H     float64 `json:"height"`
}

type jsonEllipse struct {
	Trait string  `json:"trait"`
	Score float64 `json:"score"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	RX    float64 `json:"rx"`
	RY    float64 `json:"ry"`
}

type jsonCircle struct {
	Trait string  `json:"trait"`
	Score float64 `json:"score"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
}

// RenderJSON exports the computed layout as a pretty-printed JSON
// document: frame, ground line, tree ordering, and every positioned
// shape with its trait identity. The JSON is sufficient to re-render the
// chart or to feed an external visualization tool.
//
// RenderJSON returns an error only if marshaling fails, which should not
// happen with well-formed layouts. It does not modify l and is safe to
// call concurrently.
func RenderJSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Frame:       l.Frame,
		GroundLevel: l.GroundLevel,
		GroundY:     l.GroundY,
		Style:       r.style,
		Sort:        r.sort,
		Ordering:    make([]string, 0, len(l.Trees)),
		Trees:       make([]jsonTree, 0, len(l.Trees)),
		XTicks:      l.XTicks,
		YTicks:      l.YTicks,
	}

	for _, tree := range l.Trees {
		out.Ordering = append(out.Ordering, string(tree.ID))
		out.Trees = append(out.Trees, buildJSONTree(tree))
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONTree(tree layout.Tree) jsonTree {
	jt := jsonTree{ID: string(tree.ID), CenterX: tree.CenterX}

	for _, ln := range tree.Roots {
		jt.Roots = append(jt.Roots, jsonLine{
			Trait: string(ln.Trait), Score: ln.Score,
			X1: ln.X1, Y1: ln.Y1, X2: ln.X2, Y2: ln.Y2,
		})
	}
	if t := tree.Trunk; t != nil {
		jt.Trunk = &jsonRect{
			Trait: string(t.Trait), Score: t.Score,
			X: t.X, Y: t.Y, W: t.W, H: t.H,
		}
	}
	if c := tree.Crown; c != nil {
		jt.Crown = &jsonEllipse{
			Trait: string(c.Trait), Score: c.Score,
			CX: c.CX, CY: c.CY, RX: c.RX, RY: c.RY,
		}
	}
	for _, c := range tree.Fruit {
		jt.Fruit = append(jt.Fruit, jsonCircle{
			Trait: string(c.Trait), Score: c.Score,
			CX: c.CX, CY: c.CY, R: c.R,
		})
	}
	return jt
}
