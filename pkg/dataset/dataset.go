// Package dataset defines the tree-trait record model and its loaders.
//
// A dataset is a flat list of (tree, trait, score) records. Validation is
// strict: every tree must carry a score for every trait that appears in
// the dataset, scores must be non-negative and finite, and each
// (tree, trait) cell may appear at most once. Anything less would make
// stacking ill-defined, so loaders fail fast instead of rendering
// NaN-valued geometry.
//
// The order in which trees and traits first appear is preserved; it
// determines the stacking order of layers and the tie-break order for
// sorting.
package dataset

import (
	"math"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Trait is a scored category of tree anatomy (e.g. "roots", "trunk").
type Trait string

// Canonical trait vocabulary. Input accepts "fruit" as an alias for
// TraitFruits.
const (
	TraitRoots  Trait = "roots"
	TraitTrunk  Trait = "trunk"
	TraitCrown  Trait = "crown"
	TraitFruits Trait = "fruits"
)

// TreeID identifies a single tree. Numeric identifiers from input files
// are kept as their decimal string form.
type TreeID string

// Record is one scored observation of one trait on one tree.
type Record struct {
	Tree  TreeID  `json:"treeNumber" bson:"treeNumber"`
	Trait Trait   `json:"trait" bson:"trait"`
	Score float64 `json:"score" bson:"score"`
}

// Dataset is a validated, order-preserving record collection.
type Dataset struct {
	records []Record
	trees   []TreeID
	traits  []Trait
	scores  map[TreeID]map[Trait]float64
}

// NormalizeTrait maps input trait labels onto the canonical vocabulary.
// Currently this folds the singular "fruit" into "fruits"; all other
// labels pass through unchanged.
func NormalizeTrait(t Trait) Trait {
	if t == "fruit" {
		return TraitFruits
	}
	return t
}

// New validates records and builds a Dataset.
//
// Validation failures are typed:
//   - EMPTY_DATASET: no records
//   - INVALID_DATASET: empty identifiers, non-finite scores
//   - NEGATIVE_SCORE: score below zero
//   - DUPLICATE_RECORD: the same (tree, trait) cell twice
//   - MISSING_TRAIT: a tree lacking a score for a trait present elsewhere
func New(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "dataset contains no records")
	}

	ds := &Dataset{
		records: make([]Record, 0, len(records)),
		scores:  make(map[TreeID]map[Trait]float64),
	}

	for _, r := range records {
		r.Trait = NormalizeTrait(r.Trait)
		if r.Tree == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "record with empty tree identifier")
		}
		if r.Trait == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "tree %s has a record with an empty trait", r.Tree)
		}
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "tree %s trait %s has a non-finite score", r.Tree, r.Trait)
		}
		if r.Score < 0 {
			return nil, errors.New(errors.ErrCodeNegativeScore, "tree %s trait %s has negative score %g", r.Tree, r.Trait, r.Score)
		}

		byTrait, seen := ds.scores[r.Tree]
		if !seen {
			byTrait = make(map[Trait]float64)
			ds.scores[r.Tree] = byTrait
			ds.trees = append(ds.trees, r.Tree)
		}
		if _, dup := byTrait[r.Trait]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateRecord, "tree %s has two %q records", r.Tree, r.Trait)
		}
		byTrait[r.Trait] = r.Score

		if !containsTrait(ds.traits, r.Trait) {
			ds.traits = append(ds.traits, r.Trait)
		}
		ds.records = append(ds.records, r)
	}

	// Complete grid: every tree must score every trait.
	for _, tree := range ds.trees {
		for _, trait := range ds.traits {
			if _, ok := ds.scores[tree][trait]; !ok {
				return nil, errors.New(errors.ErrCodeMissingTrait,
					"incomplete record set for tree %s: missing %q", tree, trait)
			}
		}
	}

	return ds, nil
}

func containsTrait(traits []Trait, t Trait) bool {
	for _, have := range traits {
		if have == t {
			return true
		}
	}
	return false
}

// Records returns the validated records in input order.
func (d *Dataset) Records() []Record { return d.records }

// Trees returns the distinct tree identifiers in first-seen order.
// The slice is a copy; callers may reorder it freely.
func (d *Dataset) Trees() []TreeID {
	return append([]TreeID(nil), d.trees...)
}

// Traits returns the distinct traits in first-seen order.
// The slice is a copy; callers may reorder it freely.
func (d *Dataset) Traits() []Trait {
	return append([]Trait(nil), d.traits...)
}

// HasTrait reports whether the trait appears in the dataset.
// The lookup normalizes the label first, so "fruit" finds "fruits".
func (d *Dataset) HasTrait(t Trait) bool {
	return containsTrait(d.traits, NormalizeTrait(t))
}

// Score returns the score of one (tree, trait) cell.
func (d *Dataset) Score(tree TreeID, trait Trait) (float64, bool) {
	byTrait, ok := d.scores[tree]
	if !ok {
		return 0, false
	}
	s, ok := byTrait[NormalizeTrait(trait)]
	return s, ok
}

// Total returns the sum of all trait scores for one tree.
func (d *Dataset) Total(tree TreeID) float64 {
	var sum float64
	for _, s := range d.scores[tree] {
		sum += s
	}
	return sum
}

// MaxScore returns the maximum score of one trait across all trees.
func (d *Dataset) MaxScore(trait Trait) float64 {
	trait = NormalizeTrait(trait)
	var m float64
	for _, byTrait := range d.scores {
		if s := byTrait[trait]; s > m {
			m = s
		}
	}
	return m
}

// RootTrait returns the trait stacked first (the anatomy drawn below the
// ground line). Trait semantics follow stacking position, matching the
// positional color and shape assignment.
func (d *Dataset) RootTrait() Trait {
	return d.traits[0]
}

// GroundLevel returns the maximum root-layer score across all trees.
// Every tree's shapes are offset by GroundLevel minus its own root score
// so all trunks start on one shared ground line.
func (d *Dataset) GroundLevel() float64 {
	return d.MaxScore(d.RootTrait())
}
