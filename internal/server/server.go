// Package server exposes dependency queries over HTTP.
//
// The repository index is loaded once and shared by all requests; every
// request builds its own graph.
//
//	GET /healthz
//	GET /packages/{name}/deps?version=latest&format=json|tree|d2|dot
//	GET /packages/{name}/rdeps?format=json|tree|d2
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/apkgraph/pkg/deps"
	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/graph"
	"github.com/matzehuels/apkgraph/pkg/render/diagram"
	"github.com/matzehuels/apkgraph/pkg/render/nodelink"
	"github.com/matzehuels/apkgraph/pkg/render/tree"
	"github.com/matzehuels/apkgraph/pkg/source"
)

const shutdownTimeout = 5 * time.Second

// Server serves dependency queries for one source.
type Server struct {
	src    deps.Source
	logger *log.Logger
	router chi.Router
}

// New creates a server over src. A nil logger uses log.Default().
func New(src deps.Source, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{src: src, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/packages/{name}", func(r chi.Router) {
		r.Get("/deps", s.handleDeps)
		r.Get("/rdeps", s.handleReverse)
	})
	s.router = r
	return s
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
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"packages": len(s.src.Packages()),
	})
}

func (s *Server) handleDeps(w http.ResponseWriter, r *http.Request) {
	name, err := apperrors.ValidatePackageName(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	version := r.URL.Query().Get("version")
	if version == "" {
		version = source.Latest
	}
	if version, err = apperrors.ValidateVersion(version); err != nil {
		writeError(w, err)
		return
	}
	format, err := queryFormat(r, "json", "tree", "d2", "dot")
	if err != nil {
		writeError(w, err)
		return
	}

	g := deps.Build(r.Context(), name, s.src, version, s.buildOptions(r))
	switch format {
	case "tree":
		writeText(w, strings.Join(tree.Render(g, name), "\n")+"\n")
	case "d2":
		writeText(w, diagram.Render(g, name))
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write([]byte(nodelink.ToDOT(g, nodelink.Options{Root: name})))
	default:
		writeJSON(w, http.StatusOK, graphResponse{Root: name, Version: version, Graph: g})
	}
}

func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	name, err := apperrors.ValidatePackageName(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := queryFormat(r, "json", "tree", "d2")
	if err != nil {
		writeError(w, err)
		return
	}

	rg := deps.Reverse(r.Context(), name, s.src, s.buildOptions(r))
	switch format {
	case "tree":
		writeText(w, strings.Join(tree.RenderReverse(rg, name), "\n")+"\n")
	case "d2":
		writeText(w, diagram.RenderDirection(rg, name, diagram.Reverse))
	default:
		writeJSON(w, http.StatusOK, graphResponse{Target: name, Graph: rg})
	}
}

func (s *Server) buildOptions(r *http.Request) deps.Options {
	reqID := middleware.GetReqID(r.Context())
	return deps.Options{
		Logger: func(format string, args ...any) {
			s.logger.Debug(fmt.Sprintf(format, args...), "request_id", reqID)
		},
	}
}

type graphResponse struct {
	Root    string       `json:"root,omitempty"`
	Target  string       `json:"target,omitempty"`
	Version string       `json:"version,omitempty"`
	Graph   *graph.Graph `json:"graph"`
}

func queryFormat(r *http.Request, allowed ...string) (string, error) {
	f := r.URL.Query().Get("format")
	if f == "" {
		return allowed[0], nil
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat,
		"unsupported format %q (want %s)", f, strings.Join(allowed, ", "))
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, apperrors.HTTPStatus(err), map[string]string{
		"code":  string(code),
		"error": apperrors.UserMessage(err),
	})
}
