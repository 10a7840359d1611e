// Package cli implements the treechart command-line interface.
//
// This package provides commands for rendering trait datasets as tree
// infographics, serving them over HTTP, exploring datasets interactively,
// and managing the artifact cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PDF, PNG, or JSON visualizations from a dataset
//   - serve: Serve the chart over HTTP with click-to-reorder links
//   - explore: Interactive terminal view with trait-key reordering
//   - inspect: Print dataset scores and totals as a table
//   - cache: Manage the artifact cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/parentevalerio/infovis-trees/pkg/buildinfo"
	"github.com/parentevalerio/infovis-trees/pkg/cache"
	"github.com/parentevalerio/infovis-trees/pkg/config"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "treechart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Treechart draws trait datasets as a row of trees",
		Long:         `Treechart renders per-tree trait scores as anatomical tree drawings: roots, trunk, crown, and fruit sized by their scores, planted on a shared ground line. Clicking a shape reorders the row ascending by that trait.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/treechart/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sourceFlags holds the dataset source flags shared by data-consuming commands.
type sourceFlags struct {
	url       string
	mongoURI  string
	mongoDB   string
	mongoColl string
}

// register adds the source flags to cmd.
func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.url, "url", "", "fetch the dataset from an HTTP(S) URL")
	cmd.Flags().StringVar(&s.mongoURI, "mongo-uri", "", "load the dataset from MongoDB at this URI")
	cmd.Flags().StringVar(&s.mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&s.mongoColl, "mongo-collection", "", "MongoDB collection name (default \"records\")")
}

// apply copies the source flags onto opts. A positional file argument wins
// only when no remote source was given.
func (s *sourceFlags) apply(opts *pipeline.Options, args []string) {
	opts.URL = s.url
	opts.MongoURI = s.mongoURI
	opts.MongoDatabase = s.mongoDB
	opts.MongoCollection = s.mongoColl
	if len(args) > 0 {
		opts.Input = args[0]
	}
}

// applyConfig copies file-config defaults onto zero-valued options.
func applyConfig(opts *pipeline.Options, cfg config.Config) {
	if opts.Width == 0 {
		opts.Width = cfg.Chart.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Chart.Height
	}
	if opts.Padding == 0 {
		opts.Padding = cfg.Chart.Padding
	}
	if opts.Style == "" {
		opts.Style = cfg.Chart.Style
	}
	if opts.Title == "" {
		opts.Title = cfg.Chart.Title
	}
	if opts.MongoURI == "" && cfg.Mongo.URI != "" {
		opts.MongoURI = cfg.Mongo.URI
		opts.MongoDatabase = cfg.Mongo.Database
		opts.MongoCollection = cfg.Mongo.Collection
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
