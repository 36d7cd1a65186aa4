// Package server provides the thin HTTP surface over the guardrail
// engine: question answering, health, and API info.
package server

// #region imports
import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/factfence/rag-controller/internal/config"
	"github.com/factfence/rag-controller/internal/engine"
)

// #endregion

// #region interfaces

// Answerer is the engine surface the server consumes.
type Answerer interface {
	Answer(ctx context.Context, question string) engine.AnswerResult
}

// CorpusCounter reports indexed document counts for health checks.
type CorpusCounter interface {
	Counts() (facts, external int)
}

// #endregion interfaces

// #region server

// Server is the HTTP front end.
type Server struct {
	engine Answerer
	counts CorpusCounter
	config config.ServerConfig
	log    zerolog.Logger
	server *http.Server
}

// New creates a server with the given dependencies.
func New(eng Answerer, counts CorpusCounter, cfg config.ServerConfig, log zerolog.Logger) *Server {
	return &Server{engine: eng, counts: counts, config: cfg, log: log}
}

// Router builds the chi router. Exposed for handler tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/ask", s.handleAsk)
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.log.Info().Str("addr", addr).Msg("starting server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// #endregion server
