// Package server exposes the chart pipeline over HTTP.
//
// The server renders a dataset configured at startup and serves it as an
// interactive SVG. Reordering works without client-side script: every shape
// links back to /chart.svg?sort=<trait>, so each click is a fresh render with
// a different horizontal ordering.
//
// Routes:
//
//	GET /            HTML page embedding the chart
//	GET /chart.svg   SVG artifact, ?sort=<trait> reorders ascending by trait
//	GET /chart.json  layout geometry as JSON
//	GET /healthz     liveness probe
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
)

// Config holds server settings.
type Config struct {
	Addr string
}

// Server wires the pipeline runner to HTTP handlers.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
}

// New builds a server around a runner and a base option set. The base options
// name the dataset source and visual defaults; per-request query parameters
// override the sort trait and style.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		base:   base,
		logger: logger,
	}
	s.router.Use(requestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(recoverer(logger))
	s.router.Get("/", s.handleIndex)
	s.router.Get("/chart.svg", s.handleChartSVG)
	s.router.Get("/chart.json", s.handleChartJSON)
	s.router.Get("/healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(cfg Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", cfg.Addr)
	return srv.ListenAndServe()
}

// requestOptions clones the base options and applies query parameters.
func (s *Server) requestOptions(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.base
	opts.Formats = []string{format}
	opts.ReorderScript = false
	opts.SortLinkBase = "/chart.svg"
	opts.Logger = s.logger

	if sort := r.URL.Query().Get("sort"); sort != "" {
		if err := errors.ValidateTraitName(sort); err != nil {
			return opts, err
		}
		opts.SortTrait = sort
	}
	if style := r.URL.Query().Get("style"); style != "" {
		if err := pipeline.ValidateStyle(style); err != nil {
			return opts, err
		}
		opts.Style = style
	}
	return opts, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format, contentType string) {
	opts, err := s.requestOptions(r, format)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data, ok := result.Artifacts[format]
	if !ok {
		writeError(w, errors.New(errors.ErrCodeInternal, "pipeline produced no %s artifact", format))
		return
	}

	w.Header().Set("Content-Type", contentType)
	if result.DatasetHash != "" {
		w.Header().Set("ETag", fmt.Sprintf("%q", result.DatasetHash))
	}
	w.Write(data)
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.FormatSVG, "image/svg+xml; charset=utf-8")
}

func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.FormatJSON, "application/json; charset=utf-8")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, s.base.Title)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(`{"status":"ok"}`))
}

// writeError maps pipeline error codes to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidTrait,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidVizType,
		errors.ErrCodeEmptyDataset, errors.ErrCodeMissingTrait:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q,"code":%q}`+"\n", err.Error(), code)
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { margin: 0; font-family: sans-serif; background: #fafafa; }
main { max-width: 1400px; margin: 2rem auto; padding: 0 1rem; }
object { width: 100%%; height: auto; }
</style>
</head>
<body>
<main>
<object type="image/svg+xml" data="/chart.svg"></object>
</main>
</body>
</html>
`
