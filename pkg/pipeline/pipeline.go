// Package pipeline provides the core visualization pipeline for treechart.
//
// This package implements the complete load → compose → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read tree-trait records from a file, URL, or MongoDB collection
//  2. Compose: Stack the records, build scales, and compute shape geometry
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "trees.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	ds, err := runner.Load(ctx, opts)
//
//	// Compose with an existing dataset
//	l, err := runner.Compose(ctx, ds, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, ds, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parentevalerio/infovis-trees/pkg/cache"
	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 3000.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultPadding is the default inter-band padding fraction.
	DefaultPadding = 0.2
)

// Visualization types.
const (
	VizTypeChart    = "chart"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeChart

// Visual styles.
const (
	StyleFlat = "flat"
	StyleMono = "mono"
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleFlat

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleFlat: true,
	StyleMono: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeChart:    true,
	VizTypeNodelink: true,
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options. Exactly one source must be set.
	Input           string `json:"input,omitempty"`            // local JSON file
	URL             string `json:"url,omitempty"`              // remote JSON document
	MongoURI        string `json:"mongo_uri,omitempty"`        // MongoDB connection string
	MongoDatabase   string `json:"mongo_database,omitempty"`   // database holding the records
	MongoCollection string `json:"mongo_collection,omitempty"` // collection of records
	Refresh         bool   `json:"refresh,omitempty"`          // bypass the dataset cache

	// Compose options
	VizType   string  `json:"viz_type,omitempty"`
	SortTrait string  `json:"sort_trait,omitempty"` // empty = total descending
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Padding   float64 `json:"padding,omitempty"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	Style         string   `json:"style,omitempty"`
	ReorderScript bool     `json:"reorder_script,omitempty"` // embed the client-side reorder script
	SortLinkBase  string   `json:"sort_link_base,omitempty"` // wrap shapes in server sort links
	Title         string   `json:"title,omitempty"`
	Detailed      bool     `json:"detailed,omitempty"` // nodelink: include scores in labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded and validated record set.
	Dataset *dataset.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Layout is the computed shape geometry (nil for nodelink runs).
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TreeCount   int
	TraitCount  int
	LoadTime    time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit    bool // Whether the dataset came from cache
	ComposeHit bool // Whether the layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: flat, mono)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: chart, nodelink)", vizType)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetComposeDefaults()
	o.SetRenderDefaults()
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	sources := 0
	if o.Input != "" {
		sources++
	}
	if o.URL != "" {
		sources++
	}
	if o.MongoCollection != "" {
		sources++
	}
	if sources == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input, url, or mongo_collection is required")
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "input, url, and mongo_collection are mutually exclusive")
	}
	if o.MongoCollection != "" && (o.MongoURI == "" || o.MongoDatabase == "") {
		return errors.New(errors.ErrCodeInvalidInput, "mongo_uri and mongo_database are required with mongo_collection")
	}
	if o.Input != "" {
		if err := errors.ValidateDatasetPath(o.Input); err != nil {
			return err
		}
	}
	if o.URL != "" {
		if err := errors.ValidateURL(o.URL); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetComposeDefaults sets default values for layout composition.
func (o *Options) SetComposeDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForCompose validates and sets defaults for layout composition.
func (o *Options) ValidateForCompose() error {
	o.SetComposeDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.SortTrait != "" {
		if err := errors.ValidateTraitName(o.SortTrait); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetComposeDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsChart returns true if this is a chart visualization.
func (o *Options) IsChart() bool {
	return o.VizType == "" || o.VizType == VizTypeChart
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// Source returns the canonical identifier of the configured data source,
// used for dataset cache keys.
func (o *Options) Source() string {
	switch {
	case o.URL != "":
		return o.URL
	case o.MongoCollection != "":
		return "mongodb:" + o.MongoDatabase + "/" + o.MongoCollection
	default:
		return o.Input
	}
}

// Frame returns the drawing frame for these options: the default margins
// with the configured width and height.
func (o *Options) Frame() layout.Frame {
	f := layout.DefaultFrame()
	f.Width = o.Width
	f.Height = o.Height
	return f
}

// DatasetKeyOpts returns cache key options for dataset loading.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	return cache.DatasetKeyOpts{Source: o.Source()}
}

// LayoutKeyOpts returns cache key options for layout composition.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	f := o.Frame()
	return cache.LayoutKeyOpts{
		VizType:      o.VizType,
		Width:        f.Width,
		Height:       f.Height,
		MarginLeft:   f.MarginLeft,
		MarginRight:  f.MarginRight,
		MarginTop:    f.MarginTop,
		MarginBottom: f.MarginBottom,
		SortTrait:    o.SortTrait,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:        format,
		Style:         o.Style,
		ReorderScript: o.ReorderScript,
		SortLinks:     o.SortLinkBase != "",
		Title:         o.Title,
	}
}
