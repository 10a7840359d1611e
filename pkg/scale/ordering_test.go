package scale

import (
	"testing"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

func referenceDataset(t *testing.T) *dataset.Dataset {
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
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func assertOrder(t *testing.T, got []dataset.TreeID, want ...dataset.TreeID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

// Both trees total 45: the tie must break by stable original order.
func TestByTotalDescTieBreaksStably(t *testing.T) {
	ds := referenceDataset(t)
	assertOrder(t, ByTotalDesc(ds), "T1", "T2")
}

// Clicking a crown shape reorders ascending by crown score: T2 (5) first.
func TestByTraitAscCrown(t *testing.T) {
	ds := referenceDataset(t)
	got, err := ByTraitAsc(ds, "crown")
	if err != nil {
		t.Fatalf("ByTraitAsc: %v", err)
	}
	assertOrder(t, got, "T2", "T1")
}

// Sorting the same trait twice in succession yields the same ordering.
func TestReorderIdempotence(t *testing.T) {
	ds := referenceDataset(t)

	first, err := ByTraitAsc(ds, "crown")
	if err != nil {
		t.Fatalf("ByTraitAsc: %v", err)
	}
	second, err := ByTraitAsc(ds, "crown")
	if err != nil {
		t.Fatalf("ByTraitAsc: %v", err)
	}
	assertOrder(t, second, first...)
}

func TestByTraitAscUnknownTrait(t *testing.T) {
	ds := referenceDataset(t)
	if _, err := ByTraitAsc(ds, "bark"); !errors.Is(err, errors.ErrCodeInvalidTrait) {
		t.Errorf("expected INVALID_TRAIT, got %v", err)
	}
}

func TestOrderingDoesNotMutateDataset(t *testing.T) {
	ds := referenceDataset(t)
	if _, err := ByTraitAsc(ds, "crown"); err != nil {
		t.Fatalf("ByTraitAsc: %v", err)
	}
	// First-seen order must survive a sort.
	assertOrder(t, ds.Trees(), "T1", "T2")
}

func TestOrderDomainEmptyKeyUsesDefault(t *testing.T) {
	ds := referenceDataset(t)
	got, err := OrderDomain(ds, "")
	if err != nil {
		t.Fatalf("OrderDomain: %v", err)
	}
	assertOrder(t, got, "T1", "T2")
}

func TestBuildHorizontalScale(t *testing.T) {
	ds := referenceDataset(t)

	b, err := BuildHorizontalScale(ds, "crown", Range{Min: 40, Max: 2990}, 0.2)
	if err != nil {
		t.Fatalf("BuildHorizontalScale: %v", err)
	}
	assertOrder(t, b.Domain(), "T2", "T1")

	x2, _ := b.X("T2")
	x1, _ := b.X("T1")
	if x2 >= x1 {
		t.Errorf("T2 band at %g should sit left of T1 at %g", x2, x1)
	}
}
