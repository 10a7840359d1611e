package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
)

func exploreFixture(t *testing.T) ExploreModel {
	t.Helper()
	ds, err := dataset.New([]dataset.Record{
		{Tree: "T1", Trait: "roots", Score: 10},
		{Tree: "T1", Trait: "trunk", Score: 20},
		{Tree: "T1", Trait: "crown", Score: 15},
		{Tree: "T2", Trait: "roots", Score: 30},
		{Tree: "T2", Trait: "trunk", Score: 10},
		{Tree: "T2", Trait: "crown", Score: 5},
	})
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return newExploreModel(ds)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExploreDefaultOrder(t *testing.T) {
	m := exploreFixture(t)

	// Equal totals keep the input order.
	if m.Order[0] != "T1" || m.Order[1] != "T2" {
		t.Errorf("default order = %v, want [T1 T2]", m.Order)
	}
	if m.SortTrait != "" {
		t.Errorf("default sort trait should be empty, got %q", m.SortTrait)
	}
}

func TestExploreTraitKeyReorders(t *testing.T) {
	m := exploreFixture(t)

	// "3" selects crown (traits are in first-seen order).
	updated, _ := m.Update(keyMsg("3"))
	m = updated.(ExploreModel)

	if m.SortTrait != "crown" {
		t.Errorf("sort trait = %q, want crown", m.SortTrait)
	}
	if m.Order[0] != "T2" || m.Order[1] != "T1" {
		t.Errorf("order = %v, want [T2 T1] (ascending crown)", m.Order)
	}
}

func TestExploreTotalKeyResets(t *testing.T) {
	m := exploreFixture(t)

	updated, _ := m.Update(keyMsg("3"))
	m = updated.(ExploreModel)
	updated, _ = m.Update(keyMsg("t"))
	m = updated.(ExploreModel)

	if m.SortTrait != "" {
		t.Errorf("sort trait = %q, want empty after reset", m.SortTrait)
	}
	if m.Order[0] != "T1" || m.Order[1] != "T2" {
		t.Errorf("order = %v, want [T1 T2]", m.Order)
	}
}

func TestExploreCursorBounds(t *testing.T) {
	m := exploreFixture(t)

	updated, _ := m.Update(keyMsg("k"))
	m = updated.(ExploreModel)
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.Cursor)
	}

	for i := 0; i < 5; i++ {
		updated, _ = m.Update(keyMsg("j"))
		m = updated.(ExploreModel)
	}
	if m.Cursor != len(m.Order)-1 {
		t.Errorf("cursor = %d, want last row %d", m.Cursor, len(m.Order)-1)
	}
}

func TestExploreQuit(t *testing.T) {
	m := exploreFixture(t)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestExploreViewShowsOrder(t *testing.T) {
	m := exploreFixture(t)

	view := m.View()
	if !strings.Contains(view, "T1") || !strings.Contains(view, "T2") {
		t.Error("view should list all trees")
	}
	if !strings.Contains(view, "total descending") {
		t.Error("view should name the active order")
	}

	updated, _ := m.Update(keyMsg("3"))
	m = updated.(ExploreModel)
	if !strings.Contains(m.View(), "crown ascending") {
		t.Error("view should name the trait order after reordering")
	}
}

func TestTraitIndex(t *testing.T) {
	tests := []struct {
		key        string
		traitCount int
		want       int
	}{
		{"1", 3, 0},
		{"3", 3, 2},
		{"4", 3, -1},
		{"0", 3, -1},
		{"a", 3, -1},
		{"12", 3, -1},
	}

	for _, tt := range tests {
		if got := traitIndex(tt.key, tt.traitCount); got != tt.want {
			t.Errorf("traitIndex(%q, %d) = %d, want %d", tt.key, tt.traitCount, got, tt.want)
		}
	}
}
