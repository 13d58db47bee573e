package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/samrat0033/financial-agent/bridge"
)

// Messages rendered in place of agent output. Agent outcomes always render
// as HTTP 200 with explanatory text in the body; the structured error is
// logged before it is flattened.
const (
	emptyResultMessage = "No response received from the agent."
	errorPrefix        = "An error occurred: "
)

const shutdownGrace = 5 * time.Second

type Server struct {
	runner  bridge.Runner
	logger  *slog.Logger
	timeout time.Duration
}

func New(runner bridge.Runner, logger *slog.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Server{
		runner:  runner,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/", s.home)
	r.Post("/search", s.search)
	r.Get("/healthz", s.healthz)
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	renderHome(w)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}
	query := strings.TrimSpace(r.PostFormValue("query"))
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	result := s.dispatch(r.Context(), query)
	renderResult(w, result)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// dispatch offloads the blocking agent call, bounds it with the configured
// timeout, and flattens every failure into display text.
func (s *Server) dispatch(ctx context.Context, query string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		text, err := bridge.Capture(ctx, s.runner, query)
		ch <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		s.logger.Error("agent call aborted", "error", ctx.Err(), "query", query)
		return errorPrefix + ctx.Err().Error()
	case out := <-ch:
		if out.err != nil {
			s.logger.Error("agent call failed", "error", out.err, "query", query)
			return errorPrefix + out.err.Error()
		}
		if strings.TrimSpace(out.text) == "" {
			return emptyResultMessage
		}
		return out.text
	}
}
