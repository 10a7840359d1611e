package sink

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(testLayout(t), WithJSONStyle("flat"), WithJSONSort("crown"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var doc jsonOutput
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Frame.Width != 3000 || doc.Frame.Height != 800 {
		t.Errorf("frame = %gx%g, want 3000x800", doc.Frame.Width, doc.Frame.Height)
	}
	if doc.GroundLevel != 30 {
		t.Errorf("groundLevel = %g, want 30", doc.GroundLevel)
	}
	if doc.Style != "flat" || doc.Sort != "crown" {
		t.Errorf("style/sort = %q/%q, want flat/crown", doc.Style, doc.Sort)
	}
	if len(doc.Ordering) != 2 || doc.Ordering[0] != "T1" || doc.Ordering[1] != "T2" {
		t.Errorf("ordering = %v, want [T1 T2]", doc.Ordering)
	}
}

func TestRenderJSONShapes(t *testing.T) {
	out, err := RenderJSON(testLayout(t))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var doc jsonOutput
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Trees) != 2 {
		t.Fatalf("trees = %d, want 2", len(doc.Trees))
	}

	for _, tree := range doc.Trees {
		if len(tree.Roots) != 3 {
			t.Errorf("tree %s roots = %d, want 3", tree.ID, len(tree.Roots))
		}
		if tree.Trunk == nil || tree.Trunk.Trait != "trunk" {
			t.Errorf("tree %s trunk missing or mislabeled", tree.ID)
		}
		if tree.Crown == nil || tree.Crown.Trait != "crown" {
			t.Errorf("tree %s crown missing or mislabeled", tree.ID)
		}
		if len(tree.Fruit) != 0 {
			t.Errorf("tree %s has fruit without a fruits trait", tree.ID)
		}
	}

	t1 := doc.Trees[0]
	if t1.Trunk.Score != 20 {
		t.Errorf("T1 trunk score = %g, want 20", t1.Trunk.Score)
	}
}
