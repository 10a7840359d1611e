package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// jsonRecord mirrors the input schema. treeNumber may arrive as a JSON
// string or number; scores must be numeric.
type jsonRecord struct {
	Tree  flexID   `json:"treeNumber"`
	Trait Trait    `json:"trait"`
	Score *float64 `json:"score"`
}

// flexID accepts a JSON string or number and stores the string form.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// Read decodes a JSON record array from r and validates it.
//
// The input must be a JSON array of objects:
//
//	[
//	  {"treeNumber": 1, "trait": "roots", "score": 10},
//	  {"treeNumber": 1, "trait": "trunk", "score": 20}
//	]
//
// Read returns an error if the JSON is malformed, a record lacks a score
// field, or the record set fails dataset validation (duplicates, missing
// cells, negative scores). Read does not close r.
func Read(r io.Reader) (*Dataset, error) {
	var raw []jsonRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode dataset")
	}

	records := make([]Record, 0, len(raw))
	for i, jr := range raw {
		if jr.Score == nil {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "record %d has no score field", i)
		}
		records = append(records, Record{
			Tree:  TreeID(jr.Tree),
			Trait: jr.Trait,
			Score: *jr.Score,
		})
	}

	return New(records)
}

// Load reads and validates a dataset from a JSON file.
func Load(path string) (*Dataset, error) {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "dataset file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
