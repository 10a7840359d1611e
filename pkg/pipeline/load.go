package pipeline

import (
	"context"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/dataset/mongo"
)

// Load reads the dataset from the source configured in opts: a local
// JSON file, a remote URL, or a MongoDB collection. The returned dataset
// is validated (complete grid, no duplicates, non-negative scores).
func Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	switch {
	case opts.URL != "":
		opts.Logger.Debug("loading dataset", "url", opts.URL)
		return dataset.LoadURL(ctx, opts.URL)
	case opts.MongoCollection != "":
		opts.Logger.Debug("loading dataset",
			"database", opts.MongoDatabase, "collection", opts.MongoCollection)
		return mongo.Load(ctx, mongo.Config{
			URI:        opts.MongoURI,
			Database:   opts.MongoDatabase,
			Collection: opts.MongoCollection,
		})
	default:
		opts.Logger.Debug("loading dataset", "path", opts.Input)
		return dataset.Load(opts.Input)
	}
}
