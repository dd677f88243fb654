// Package server exposes the lineage pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	GET  /v1/members         the member directory
//	GET  /v1/members/{id}    one member
//	POST /v1/layout          layout for a roster sent in the body
//	GET  /v1/tree            layout for the directory
//	GET  /v1/tree.svg        rendered tree for the directory
//
// Layout options come from the server defaults and can be overridden per
// request with the query parameters width, height, margin, type, style and
// detailed. Failures are answered with a JSON body of the form
// {"code": ..., "message": ..., "kind": ..., "ids": [...]}; the tree.svg
// route answers engine failures with an SVG error card instead.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/pipeline"
	"github.com/matzehuels/lineage/pkg/source"
)

// KeyPrefix scopes the cache keys written by the server, so that a cache
// shared with the CLI never mixes entries.
const KeyPrefix = "server:"

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	source   source.Source
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// New creates a server that lays out the members of src with runner.
// defaults are the options used when a request does not override them.
func New(runner *pipeline.Runner, src source.Source, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	scoped := *runner
	scoped.Keyer = cache.NewScopedKeyer(runner.Keyer, KeyPrefix)
	scoped.Logger = logger

	s := &Server{
		runner:   &scoped,
		source:   src,
		defaults: defaults,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/members", s.handleMembers)
		r.Get("/members/{id}", s.handleMember)
		r.Post("/layout", s.handleLayout)
		r.Get("/tree", s.handleTree)
		r.Get("/tree.svg", s.handleTreeSVG)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
