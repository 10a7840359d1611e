package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parentevalerio/infovis-trees/pkg/cache"
	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
	"github.com/parentevalerio/infovis-trees/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source())
	ds, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Source(), treeCount(ds), time.Since(loadStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load")
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.TreeCount = len(ds.Trees())
	result.Stats.TraitCount = len(ds.Traits())
	result.CacheInfo.LoadHit = loadHit

	// Content hash for cache keys and server responses.
	if data, err := json.Marshal(ds.Records()); err == nil {
		result.DatasetHash = cache.Hash(data)
	}

	r.Logger.Info("loaded dataset",
		"trees", result.Stats.TreeCount,
		"traits", result.Stats.TraitCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Compose. Nodelink renders straight from the dataset and
	// has no geometry stage.
	var l *layout.Layout
	if opts.IsChart() {
		composeStart := time.Now()
		observability.Pipeline().OnComposeStart(ctx, opts.SortTrait, result.Stats.TreeCount)
		composed, composeHit, err := r.ComposeWithCacheInfo(ctx, ds, opts)
		observability.Pipeline().OnComposeComplete(ctx, opts.SortTrait, time.Since(composeStart), err)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "compose")
		}
		l = composed
		result.Layout = l
		result.Stats.ComposeTime = time.Since(composeStart)
		result.CacheInfo.ComposeHit = composeHit

		r.Logger.Info("composed layout",
			"trees", result.Stats.TreeCount,
			"sort", opts.SortTrait,
			"duration", result.Stats.ComposeTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, ds, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*dataset.Dataset, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.DatasetKey(opts.DatasetKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if ds, err := unmarshalDataset(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return ds, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "dataset")

	ds, err := Load(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if data, err := json.Marshal(ds.Records()); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
			observability.Cache().OnCacheSet(ctx, "dataset", len(data))
		}
	}

	return ds, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	ds, _, err := r.LoadWithCacheInfo(ctx, opts)
	return ds, err
}

// ComposeWithCacheInfo composes the layout with caching and returns cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, ds *dataset.Dataset, opts Options) (*layout.Layout, bool, error) {
	if err := opts.ValidateForCompose(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	dsData, _ := json.Marshal(ds.Records())
	datasetHash := cache.Hash(dsData)
	cacheKey := r.Keyer.LayoutKey(datasetHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached layout.Layout
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return &cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l, err := Compose(ds, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, ds *dataset.Dataset, opts Options) (*layout.Layout, error) {
	l, _, err := r.ComposeWithCacheInfo(ctx, ds, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, ds *dataset.Dataset, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Artifact keys hash the layout; nodelink runs have none, so the
	// dataset content stands in.
	var hashSource []byte
	if l != nil {
		data, err := json.Marshal(l)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
		}
		hashSource = data
	} else {
		data, err := json.Marshal(ds.Records())
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize dataset for cache key")
		}
		hashSource = data
	}
	layoutHash := cache.Hash(hashSource)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(l, ds, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, ds, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func treeCount(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return len(ds.Trees())
}

func unmarshalDataset(data []byte) (*dataset.Dataset, error) {
	var records []dataset.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return dataset.New(records)
}
