// Package cache provides pluggable caching for the treechart pipeline.
//
// The pipeline caches three classes of data, each with its own TTL:
//   - Datasets: parsed and validated record sets (keyed by source)
//   - Layouts: computed shape geometry (keyed by dataset hash + frame options)
//   - Artifacts: rendered outputs (keyed by layout hash + render options)
//
// Backends:
//   - FileCache: sha256-pathed JSON entries on disk, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are generated by a Keyer so that CLI and server produce identical
// keys for identical inputs. Use ScopedKeyer to namespace keys per tenant.
package cache

import (
	"context"
	"time"
)

// TTLs per cached data class. Datasets change rarely; rendered artifacts
// are cheap to regenerate, so they expire sooner.
const (
	TTLDataset  = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 6 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DatasetKeyOpts captures the options that affect dataset identity.
type DatasetKeyOpts struct {
	Source string // file path, URL, or mongo collection spec
}

// LayoutKeyOpts captures the options that affect computed geometry.
type LayoutKeyOpts struct {
	VizType      string
	Width        float64
	Height       float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	SortTrait    string
}

// ArtifactKeyOpts captures the options that affect rendered output.
type ArtifactKeyOpts struct {
	Format        string
	Style         string
	ReorderScript bool
	SortLinks     bool
	Title         string
}

// Keyer generates cache keys for the three pipeline stages.
type Keyer interface {
	// DatasetKey generates a key for a parsed dataset.
	DatasetKey(opts DatasetKeyOpts) string

	// LayoutKey generates a key for computed geometry, scoped by the
	// content hash of the dataset it was built from.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, scoped by the
	// content hash of the layout it was rendered from.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys by hashing the option structs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for a parsed dataset.
func (k *DefaultKeyer) DatasetKey(opts DatasetKeyOpts) string {
	return hashKey("dataset", opts)
}

// LayoutKey generates a key for computed geometry.
func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
