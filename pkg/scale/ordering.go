package scale

import (
	"sort"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Tree ordering for the horizontal scale's domain. The chart has exactly
// two ordering modes:
//
//   - default: descending total score (the initial draw)
//   - trait-filtered: ascending score of one clicked trait
//
// Both sorts are stable over the dataset's first-seen tree order, so ties
// keep their input order and repeating a sort is idempotent.

// ByTotalDesc returns tree identifiers ordered by descending total score.
func ByTotalDesc(ds *dataset.Dataset) []dataset.TreeID {
	ids := ds.Trees()
	sort.SliceStable(ids, func(i, j int) bool {
		return ds.Total(ids[i]) > ds.Total(ids[j])
	})
	return ids
}

// ByTraitAsc returns tree identifiers ordered by ascending score of one
// trait. The trait must exist in the dataset.
func ByTraitAsc(ds *dataset.Dataset, trait dataset.Trait) ([]dataset.TreeID, error) {
	trait = dataset.NormalizeTrait(trait)
	if !ds.HasTrait(trait) {
		return nil, errors.New(errors.ErrCodeInvalidTrait, "unknown trait %q", trait)
	}

	ids := ds.Trees()
	sort.SliceStable(ids, func(i, j int) bool {
		si, _ := ds.Score(ids[i], trait)
		sj, _ := ds.Score(ids[j], trait)
		return si < sj
	})
	return ids, nil
}

// OrderDomain resolves the domain ordering for a sort key: an empty trait
// selects the default total-descending order, anything else the
// trait-ascending order.
func OrderDomain(ds *dataset.Dataset, sortTrait dataset.Trait) ([]dataset.TreeID, error) {
	if sortTrait == "" {
		return ByTotalDesc(ds), nil
	}
	return ByTraitAsc(ds, sortTrait)
}

// BuildHorizontalScale derives the band scale for a sort key in one step:
// order the domain, then bind it to the pixel range. Callers hold the
// result as explicit state; nothing here is shared or mutated on reorder.
func BuildHorizontalScale(ds *dataset.Dataset, sortTrait dataset.Trait, r Range, padding float64) (*Band, error) {
	domain, err := OrderDomain(ds, sortTrait)
	if err != nil {
		return nil, err
	}
	return NewBand(domain, r, padding)
}
