package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestFlatShapesCarryDataAttributes(t *testing.T) {
	var buf bytes.Buffer
	Flat{}.RenderRect(&buf, Rect{
		Shape: Shape{Tree: "T1", Trait: "trunk", Color: "#795548"},
		X:     10, Y: 20, W: 30, H: 40,
	})

	out := buf.String()
	for _, want := range []string{`data-tree="T1"`, `data-trait="trunk"`, `fill="#795548"`, `class="shape"`} {
		if !strings.Contains(out, want) {
			t.Errorf("rect output missing %s:\n%s", want, out)
		}
	}
}

func TestFlatBackgroundRegions(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "sky", want: `region-sky`},
		{name: "ground", want: `region-ground`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Flat{}.RenderBackground(&buf, Region{Name: tt.name, W: 100, H: 50})
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("background missing class %s:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestFlatAxisXTicksAndLabels(t *testing.T) {
	var buf bytes.Buffer
	Flat{}.RenderAxisX(&buf, Axis{
		Ticks: []Tick{{Pos: 100, Label: "T1"}, {Pos: 200, Label: "T2"}},
		Start: 40, End: 2990, Cross: 770,
	})

	out := buf.String()
	if got := strings.Count(out, "<text"); got != 2 {
		t.Errorf("axis has %d labels, want 2", got)
	}
	if !strings.Contains(out, ">T1</text>") || !strings.Contains(out, ">T2</text>") {
		t.Errorf("axis labels missing:\n%s", out)
	}
}

func TestMonoIgnoresShapeColor(t *testing.T) {
	var buf bytes.Buffer
	Mono{}.RenderEllipse(&buf, Ellipse{
		Shape: Shape{Tree: "T1", Trait: "crown", Color: "#66bb6a"},
		CX:    50, CY: 60, RX: 20, RY: 10,
	})
	if strings.Contains(buf.String(), "#66bb6a") {
		t.Errorf("mono style leaked trait color:\n%s", buf.String())
	}
}

func TestMonoDefsDefineHatch(t *testing.T) {
	var buf bytes.Buffer
	Mono{}.RenderDefs(&buf)
	if !strings.Contains(buf.String(), `id="hatch"`) {
		t.Errorf("mono defs missing hatch pattern:\n%s", buf.String())
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a<b", want: "a&lt;b"},
		{in: `x"y`, want: "x&quot;y"},
		{in: "p&q", want: "p&amp;q"},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
