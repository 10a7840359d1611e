package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/parentevalerio/infovis-trees/internal/server"
	"github.com/parentevalerio/infovis-trees/pkg/cache"
	"github.com/parentevalerio/infovis-trees/pkg/config"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP chart server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		src        sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve [dataset.json]",
		Short: "Serve the tree infographic over HTTP",
		Long: `Serve the tree infographic over HTTP.

The server renders the configured dataset at /chart.svg. Every shape in the
SVG links back to /chart.svg?sort=<trait>, so clicking a root, trunk, crown,
or fruit re-renders the row ascending by that trait. No client-side script
is needed.

Configuration is read from --config, $TREECHART_CONFIG, or
~/.config/treechart/config.toml. Flags override the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.apply(&opts, args)
			return c.runServe(cmd.Context(), opts, addr, configPath)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: flat (default), mono")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")

	return cmd
}

// runServe builds the cache backend from config, wires the runner into the
// HTTP server, and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyConfig(&opts, cfg)

	if addr == "" {
		addr = cfg.Server.Addr
	}

	store, err := serverCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	opts.Logger = c.Logger
	srv := server.New(runner, opts, c.Logger)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving chart", "addr", addr, "source", opts.Source())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Discover()
}

// serverCache builds the cache backend named in config.
func serverCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}
