// Package mongo loads tree-trait datasets from a MongoDB collection.
//
// Each document in the collection is one record:
//
//	{"treeNumber": "1", "trait": "roots", "score": 10}
//
// The loader reads the full collection in one pass and validates it with
// the same rules as the file loader; partial or malformed collections fail
// fast instead of producing broken geometry.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Config locates the record collection.
type Config struct {
	URI        string // MongoDB connection string
	Database   string
	Collection string
}

// Load connects to MongoDB, reads all records from the configured
// collection, and validates them into a Dataset. The connection is closed
// before returning.
func Load(ctx context.Context, cfg Config) (*dataset.Dataset, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI cannot be empty")
	}
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo database and collection are required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s.%s", cfg.Database, cfg.Collection)
	}
	defer cursor.Close(ctx)

	var records []dataset.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode records from %s.%s", cfg.Database, cfg.Collection)
	}

	return dataset.New(records)
}
