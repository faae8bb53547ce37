// Package http exposes stored machine definitions and runs over a JSON API.
//
//	GET    /healthz
//	GET    /machines
//	PUT    /machines/{name}
//	GET    /machines/{name}
//	DELETE /machines/{name}
//	POST   /machines/{name}/run
//	POST   /run
//	GET    /metrics
//
// Request bodies are definition documents, JSON by default or YAML when the
// Content-Type says so. Runs are bounded by the request context and the
// configured timeout.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// DefaultTimeout bounds a single run when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

const maxBodySize = 1 << 20

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the machine API.
type Server struct {
	Store   ports.DefinitionStore
	Logger  *slog.Logger
	Hooks   domain.LifecycleHooks
	Timeout time.Duration
	Metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithHooks registers lifecycle hooks on every run.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.Hooks = hooks
	}
}

// WithTimeout bounds each run. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.Timeout = d
		}
	}
}

// WithMetricsHandler mounts h at /metrics, typically promhttp.HandlerFor(...).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler backed by store.
func NewHandler(store ports.DefinitionStore, opts ...Option) http.Handler {
	server := &Server{
		Store:   store,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.Health)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", server.ListMachines)
		r.Put("/{name}", server.PutMachine)
		r.Get("/{name}", server.GetMachine)
		r.Delete("/{name}", server.DeleteMachine)
		r.Post("/{name}/run", server.RunMachine)
	})
	r.Post("/run", server.RunInline)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.Store.(Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.Logger.Error("Health: store unreachable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.Logger.Error("ListMachines failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list machines")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"machines": names})
}

// PutMachine handles PUT /machines/{name}. The definition must compile.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, ok := s.readDefinition(w, r)
	if !ok {
		return
	}
	def.Name = name

	if _, err := def.Compile(); err != nil {
		s.Logger.Warn("PutMachine: definition rejected", "machine", name, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.Store.Save(r.Context(), name, def); err != nil {
		s.Logger.Error("PutMachine: save failed", "machine", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save machine")
		return
	}

	s.Logger.Info("machine saved", "machine", name)
	writeJSON(w, http.StatusCreated, def)
}

// GetMachine handles GET /machines/{name}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	def, ok := s.loadDefinition(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// DeleteMachine handles DELETE /machines/{name}.
func (s *Server) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Store.Delete(r.Context(), name); err != nil {
		s.Logger.Error("DeleteMachine failed", "machine", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete machine")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunMachine handles POST /machines/{name}/run.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	def, ok := s.loadDefinition(w, r)
	if !ok {
		return
	}
	s.run(w, r, def)
}

// RunInline handles POST /run with the definition in the body.
func (s *Server) RunInline(w http.ResponseWriter, r *http.Request) {
	def, ok := s.readDefinition(w, r)
	if !ok {
		return
	}
	s.run(w, r, def)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, def *definition.Definition) {
	prog, err := def.Compile()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := prog.NewMachine()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.Timeout)
	defer cancel()

	res, err := runner.New(
		runner.WithLogger(s.Logger),
		runner.WithName(def.Name),
		runner.WithHooks(s.Hooks),
	).Run(ctx, m)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case res != nil && res.Outcome == runner.OutcomeStuck:
		writeJSON(w, http.StatusUnprocessableEntity, res)
	case res != nil && res.Outcome == runner.OutcomeCancelled:
		writeJSON(w, http.StatusServiceUnavailable, res)
	default:
		s.Logger.Error("run failed", "machine", def.Name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) loadDefinition(w http.ResponseWriter, r *http.Request) (*definition.Definition, bool) {
	name := chi.URLParam(r, "name")
	def, err := s.Store.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrDefinitionNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("machine %q not found", name))
			return nil, false
		}
		s.Logger.Error("load failed", "machine", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load machine")
		return nil, false
	}
	return def, true
}

func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (*definition.Definition, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}

	def, err := definition.Parse(body, requestFormat(r))
	if err != nil {
		s.Logger.Warn("invalid definition", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return def, true
}

func requestFormat(r *http.Request) definition.Format {
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		return definition.FormatYAML
	}
	return definition.FormatJSON
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
